package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/iudanet/moodkeeper/internal/models"
)

//go:generate moq -out document_mock.go . DocumentStorage

// DocumentQuery описывает выборку документов одной коллекции пользователя
type DocumentQuery struct {
	Since      time.Time // только документы, созданные не раньше Since
	UserID     string
	Collection string
	Limit      int // 0 - без ограничения
}

// DocumentStorage defines interface for the per-user document store.
// Every operation is scoped to userID: documents of other users are invisible.
type DocumentStorage interface {
	// CreateDocument stores a new document; rec.ID must be set by the caller
	CreateDocument(ctx context.Context, rec *models.Record) error

	// QueryDocuments returns documents ordered by created_at ascending
	QueryDocuments(ctx context.Context, q DocumentQuery) ([]*models.Record, error)

	// UpdateDocument replaces document data and bumps updated_at
	// Returns ErrDocumentNotFound if document doesn't exist
	UpdateDocument(ctx context.Context, userID, collection, id string, data json.RawMessage, updatedAt time.Time) (*models.Record, error)

	// DeleteDocument removes the document
	// Returns ErrDocumentNotFound if document doesn't exist
	DeleteDocument(ctx context.Context, userID, collection, id string) error
}
