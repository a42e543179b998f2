package backup

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/iudanet/moodkeeper/internal/client/api"
	"github.com/iudanet/moodkeeper/internal/models"
)

// RemoteImporter re-creates every snapshot record in the remote store.
// Records get new ids; original creation times are kept.
type RemoteImporter struct {
	remote api.RemoteStore
	logger *slog.Logger
}

// NewRemoteImporter создает RemoteImporter
func NewRemoteImporter(remote api.RemoteStore, logger *slog.Logger) *RemoteImporter {
	return &RemoteImporter{remote: remote, logger: logger}
}

// Import восстанавливает коллекции в алфавитном порядке; первая ошибка прерывает импорт
func (i *RemoteImporter) Import(ctx context.Context, snapshot *models.BackupSnapshot) error {
	collections := make([]string, 0, len(snapshot.Collections))
	for name := range snapshot.Collections {
		collections = append(collections, name)
	}
	sort.Strings(collections)

	imported := 0
	for _, collection := range collections {
		for _, rec := range snapshot.Collections[collection] {
			draft := &models.Record{
				Collection: collection,
				UserID:     rec.UserID,
				Data:       rec.Data,
				CreatedAt:  rec.CreatedAt,
			}
			if _, err := i.remote.Create(ctx, collection, draft); err != nil {
				return fmt.Errorf("failed to restore record %s into %s: %w", rec.ID, collection, err)
			}
			imported++
		}
	}

	i.logger.Info("Snapshot imported", "records", imported, "collections", len(collections))
	return nil
}
