package followup

import (
	"context"
	"fmt"
)

// Prompter asks one question and blocks until the answer arrives.
type Prompter interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// Run drives flow to completion, asking each pending field in turn.
func Run(ctx context.Context, flow *Flow, prompter Prompter) error {
	for {
		field, ok := flow.Next()
		if !ok {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		answer, err := prompter.Ask(ctx, field.Prompt)
		if err != nil {
			return fmt.Errorf("ask %s: %w", field.Name, err)
		}
		if err := flow.Submit(answer); err != nil {
			return err
		}
	}
}
