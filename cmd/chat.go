package cmd

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// demoUser is registered when a terminal session starts.
var demoUser = struct {
	name, vehicle, insuranceType string
}{"João", "Carro XYZ", "seguro_veicular"}

func newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			return runChat(ctx, a, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runChat(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	user, err := a.registration.RegisterUser(ctx, demoUser.name, demoUser.vehicle, demoUser.insuranceType)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Usuário %s cadastrado com sucesso!\n", user.Name)

	return a.chatbot.RunConversation(ctx, in, out)
}
