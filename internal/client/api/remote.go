package api

import (
	"context"
	"encoding/json"

	"github.com/iudanet/moodkeeper/internal/models"
)

//go:generate moq -out remotestore_mock.go . RemoteStore

// RemoteStore is the remote document store the sync and backup engine writes to.
// Errors are classified with ErrTransient, ErrRejected, ErrNotFound and ErrUnauthorized.
type RemoteStore interface {
	// Create stores draft.Data in collection; the store assigns the id.
	// draft.CreatedAt is preserved when set.
	Create(ctx context.Context, collection string, draft *models.Record) (*models.Record, error)

	// Update replaces the data of an existing document
	Update(ctx context.Context, collection, id string, data json.RawMessage) error

	// Delete removes a document
	Delete(ctx context.Context, collection, id string) error

	// Query returns the caller's documents matching filter
	Query(ctx context.Context, collection string, filter models.Filter) ([]*models.Record, error)
}
