package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runSync(ctx context.Context) error {
	if _, err := c.requireUser(ctx); err != nil {
		return err
	}

	c.io.Println("=== Synchronization ===")
	c.io.Println()

	if !c.env.Probe(ctx) {
		return fmt.Errorf("server is unreachable, pending actions stay queued")
	}

	result, err := c.syncService.Process(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	c.io.Printf("Confirmed:          %d\n", result.Confirmed)
	if result.Retried > 0 {
		c.io.Printf("Will retry:         %d\n", result.Retried)
	}
	if result.Deferred > 0 {
		c.io.Printf("Deferred:           %d\n", result.Deferred)
	}
	if result.Dropped > 0 {
		c.io.Printf("Dropped:            %d\n", result.Dropped)
	}
	if result.Purged > 0 {
		c.io.Printf("Purged from cache:  %d\n", result.Purged)
	}
	c.io.Printf("Still pending:      %d\n", result.Pending)
	c.io.Println()

	if result.Pending == 0 {
		c.io.Println("✓ All local changes are synchronized with the server.")
	} else {
		c.io.Println("⚠️  Some changes are still pending. Run 'moodkeeper sync' again later.")
	}
	return nil
}
