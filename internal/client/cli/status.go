package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/iudanet/moodkeeper/internal/client/auth"
	"github.com/iudanet/moodkeeper/internal/client/budget"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle = lipgloss.NewStyle().Width(16).Faint(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func (c *Cli) runStatus(ctx context.Context) error {
	lines := []string{titleStyle.Render("MoodKeeper status"), ""}

	user, err := c.authService.Restore(ctx)
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		lines = append(lines, row("Session", warnStyle.Render("not authenticated")))
	case err != nil:
		return fmt.Errorf("failed to check authentication: %w", err)
	default:
		expires := time.Unix(user.ExpiresAt, 0)
		lines = append(lines,
			row("Session", okStyle.Render(user.Username)),
			row("Expires", humanize.Time(expires)),
		)
	}

	online := c.env.Probe(ctx)
	if online {
		lines = append(lines, row("Server", okStyle.Render("online")))
	} else {
		lines = append(lines, row("Server", errStyle.Render("offline")))
	}

	st := c.syncService.Status(ctx)
	lastSync := "never"
	if !st.LastSync.IsZero() {
		lastSync = humanize.Time(st.LastSync)
	}
	lines = append(lines,
		row("Pending", fmt.Sprintf("%d action(s)", st.Pending)),
		row("Last sync", lastSync),
	)
	if st.LastError != "" {
		lines = append(lines, row("Sync error", errStyle.Render(st.LastError)))
	}

	usage, err := c.env.Usage(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute storage usage: %w", err)
	}
	storageLine := fmt.Sprintf("%s used, %s free (%.1f%%)",
		humanize.IBytes(uint64(usage.Used)), humanize.IBytes(uint64(usage.Available)), usage.Percentage)
	if usage.Percentage >= budget.FullThreshold {
		storageLine = errStyle.Render(storageLine + ", full")
	}
	lines = append(lines, row("Storage", storageLine))

	// backup принадлежат пользователю, без сессии секция не выводится
	if user != nil {
		cfg, err := c.backups.Config(ctx, user.UserID)
		if err != nil {
			return fmt.Errorf("failed to load backup config: %w", err)
		}
		history, err := c.backups.History(ctx, user.UserID)
		if err != nil {
			return fmt.Errorf("failed to load backup history: %w", err)
		}
		backupLine := fmt.Sprintf("%d stored, %s", len(history), cfg.Frequency)
		if !cfg.Enabled || !cfg.AutoBackup {
			backupLine = fmt.Sprintf("%d stored, automatic disabled", len(history))
		}
		lines = append(lines, row("Backups", backupLine))
		if cfg.NextBackup != nil && cfg.Enabled && cfg.AutoBackup {
			lines = append(lines, row("Next backup", humanize.Time(*cfg.NextBackup)))
		}
	}
	if msg := c.backups.LastError(); msg != "" {
		lines = append(lines, row("Backup error", errStyle.Render(msg)))
	}

	c.io.Println(strings.Join(lines, "\n"))
	return nil
}
