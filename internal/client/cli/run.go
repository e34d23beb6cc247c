package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// RunPoll starts the sync service and blocks until the process is
// interrupted. This is the long-running mode the desktop shell embeds.
func (c *Cli) RunPoll(ctx context.Context) error {
	c.syncService.Start(ctx)
	defer c.syncService.Stop()

	fmt.Println("Polling channel. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	return nil
}
