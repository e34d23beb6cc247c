package cli

import (
	"context"
	"fmt"
	"strings"
)

// RunSend posts a single message to the assistant and returns without
// waiting for a reply; the reply arrives on the next poll in run mode.
func (c *Cli) RunSend(ctx context.Context, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("send requires message text")
	}

	if err := c.syncService.Send(ctx, text); err != nil {
		return err
	}

	fmt.Println("Sent.")
	return nil
}
