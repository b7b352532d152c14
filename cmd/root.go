package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "insurance-chatbot",
	Short: "Portuguese-language insurance customer service chatbot",
	Long: `insurance-chatbot answers policy holders' questions about vehicle insurance,
claims, coverage and payments, and collects appointment and claim details.

Run "serve" for the HTTP, WebSocket and WhatsApp front ends or "chat" for an
interactive terminal session.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ./configs/config.yaml)")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newChatCommand())
}
