package cli

import (
	"context"
	"fmt"
)

// RunReset wipes the local cache: conversation log, schedules and sync
// metadata. Equivalent to a fresh install.
func (c *Cli) RunReset(ctx context.Context) error {
	if err := c.syncService.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset cache: %w", err)
	}

	fmt.Println("Local cache cleared.")
	return nil
}
