package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"insurance-chatbot-backend/followup"
	"insurance-chatbot-backend/models"
)

const (
	botPrefix  = "Chatbot: "
	userPrompt = "Você: "
)

// linePrompter asks questions on a terminal-style stream, one answer per line.
type linePrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (p *linePrompter) Ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s%s\n%s", botPrefix, prompt, userPrompt)
	return p.readLine()
}

func (p *linePrompter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(p.scanner.Text(), "\r"), nil
}

// RunConversation runs the interactive loop over in and out until an exit command, end of
// input or context cancellation. Follow-up answers are read from the same stream.
func (s *ChatbotService) RunConversation(ctx context.Context, in io.Reader, out io.Writer) error {
	prompter := &linePrompter{scanner: bufio.NewScanner(in), out: out}
	sessionID := s.newID()

	fmt.Fprintln(out, s.Greeting())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, userPrompt)
		line, err := prompter.readLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		if IsExitCommand(line) {
			fmt.Fprintln(out, botPrefix+s.Farewell())
			return nil
		}

		classification, text := s.ClassifyAndRespond(line)
		fmt.Fprintln(out, botPrefix+text)

		if err := s.runTriggeredFlow(ctx, sessionID, classification, prompter); err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}
	}
}

func (s *ChatbotService) runTriggeredFlow(ctx context.Context, sessionID string, classification models.Classification, prompter *linePrompter) error {
	kind, ok := followup.Trigger(classification)
	if !ok {
		return nil
	}

	fmt.Fprintln(prompter.out, botPrefix+followup.Intro(kind))
	switch kind {
	case followup.KindScheduling:
		appointment, err := s.RunSchedulingFlow(ctx, sessionID, prompter)
		if err != nil {
			return err
		}
		fmt.Fprintln(prompter.out, botPrefix+followup.AppointmentConfirmation(appointment))
	case followup.KindClaim:
		claim, err := s.RunClaimFlow(ctx, sessionID, prompter)
		if err != nil {
			return err
		}
		fmt.Fprintln(prompter.out, botPrefix+followup.ClaimConfirmation(claim))
	}
	return nil
}
