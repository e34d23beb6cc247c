package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) RunStatus(ctx context.Context) error {
	schedules := c.syncService.Schedules()
	messages := c.syncService.Messages()
	lastSync := c.syncService.LastSync()

	fmt.Println("=== Cache Status ===")
	fmt.Printf("Schedules: %d\n", len(schedules))
	fmt.Printf("Messages:  %d\n", len(messages))

	if lastSync.IsZero() {
		fmt.Println("Last sync: never")
	} else {
		fmt.Printf("Last sync: %s\n", lastSync.Format(time.RFC3339))
	}

	return nil
}
