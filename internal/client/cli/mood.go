package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/moodkeeper/internal/client/data"
	"github.com/iudanet/moodkeeper/internal/models"
)

// moodView строка вывода списка записей настроения
type moodView struct {
	RecordedAt time.Time
	ID         string
	Note       string
	Tags       []string
	Mood       int
	Offline    bool
}

func (c *Cli) runMoodAdd(ctx context.Context, mood int, note string, tags []string) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	c.env.Probe(ctx)

	rec, err := c.dataService.AddMoodEntry(ctx, user.UserID, &models.MoodEntry{
		Mood: mood,
		Note: note,
		Tags: tags,
	})
	if err != nil {
		return err
	}

	if rec.IsOffline {
		c.io.Printf("✓ Mood entry saved offline (%s). It will be synchronized when the server is reachable.\n", rec.ID)
		return nil
	}
	c.io.Printf("✓ Mood entry saved (%s)\n", rec.ID)
	return nil
}

func (c *Cli) runMoodList(ctx context.Context, since time.Duration, limit int) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	c.env.Probe(ctx)

	filter := models.Filter{UserID: user.UserID, Limit: limit}
	if since > 0 {
		filter.Since = time.Now().Add(-since)
	}

	records, err := c.dataService.List(ctx, models.CollectionMoodLogs, filter)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		c.io.Println("No mood entries found.")
		return nil
	}

	for _, rec := range records {
		entry, err := data.DecodeMoodEntry(rec)
		if err != nil {
			c.io.Printf("%s  <unreadable entry: %v>\n", rec.ID, err)
			continue
		}
		view := moodView{
			RecordedAt: entry.RecordedAt,
			ID:         rec.ID,
			Note:       entry.Note,
			Tags:       entry.Tags,
			Mood:       entry.Mood,
			Offline:    rec.IsOffline,
		}
		if view.RecordedAt.IsZero() {
			view.RecordedAt = rec.CreatedAt
		}
		if err := c.render(moodEntryTmpl, view); err != nil {
			return err
		}
	}
	c.io.Printf("\nTotal: %d\n", len(records))
	return nil
}

func (c *Cli) runMoodDelete(ctx context.Context, id string) error {
	user, err := c.requireUser(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("record id is required")
	}

	c.env.Probe(ctx)

	if err := c.dataService.Delete(ctx, user.UserID, models.CollectionMoodLogs, id); err != nil {
		return err
	}
	c.io.Printf("✓ Mood entry %s deleted\n", id)
	return nil
}
