package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/moodkeeper/internal/client/backup"
)

func (c *Cli) runBackupCreate(ctx context.Context) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}
	if !c.env.Probe(ctx) {
		return fmt.Errorf("server is unreachable, backup needs the remote store")
	}

	info, err := c.backups.CreateManual(ctx, user.UserID)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	c.io.Println("✓ Backup created")
	return c.render(backupInfoTmpl, info)
}

func (c *Cli) runBackupList(ctx context.Context) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}
	history, err := c.backups.History(ctx, user.UserID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		c.io.Println("No backups yet. Run 'moodkeeper backup create'.")
		return nil
	}
	for _, info := range history {
		if err := c.render(backupInfoTmpl, info); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cli) runBackupRestore(ctx context.Context, id string) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}
	if !c.env.Probe(ctx) {
		return fmt.Errorf("server is unreachable, restore needs the remote store")
	}

	if err := c.backups.Restore(ctx, user.UserID, id); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	c.io.Printf("✓ Backup %s restored\n", id)
	return nil
}

func (c *Cli) runBackupDelete(ctx context.Context, id string) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}
	if err := c.backups.DeleteBackup(ctx, user.UserID, id); err != nil {
		if errors.Is(err, backup.ErrBackupNotFound) {
			return fmt.Errorf("backup %s not found", id)
		}
		return err
	}
	c.io.Printf("✓ Backup %s deleted\n", id)
	return nil
}

func (c *Cli) runBackupVerify(ctx context.Context, id string) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}
	if !c.backups.VerifyIntegrity(ctx, user.UserID, id) {
		return fmt.Errorf("backup %s is missing or corrupted", id)
	}
	c.io.Printf("✓ Backup %s is intact\n", id)
	return nil
}

func (c *Cli) runBackupExport(ctx context.Context, id string) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}
	location, err := c.backups.Export(ctx, user.UserID, id)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Backup exported to %s\n", location)
	return nil
}

func (c *Cli) runBackupCleanup(ctx context.Context) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}
	removed, err := c.backups.CleanupOldBackups(ctx, user.UserID)
	if err != nil {
		return err
	}
	c.io.Printf("✓ Removed %d old backup(s)\n", removed)
	return nil
}

// runBackupConfig применяет изменения (если есть) и выводит итоговые настройки
func (c *Cli) runBackupConfig(ctx context.Context, updates []backup.ConfigUpdate) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	var cfg any
	if len(updates) > 0 {
		cfg, err = c.backups.UpdateConfig(ctx, user.UserID, updates...)
	} else {
		cfg, err = c.backups.Config(ctx, user.UserID)
	}
	if err != nil {
		return err
	}
	return c.render(backupConfigTmpl, cfg)
}
