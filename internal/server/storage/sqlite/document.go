package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/moodkeeper/internal/models"
	"github.com/iudanet/moodkeeper/internal/server/storage"
)

// CreateDocument inserts a document owned by rec.UserID
func (s *Storage) CreateDocument(ctx context.Context, rec *models.Record) error {
	query := `
		INSERT INTO documents (id, user_id, collection, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.Collection,
		[]byte(rec.Data),
		rec.CreatedAt.UnixNano(),
		rec.UpdatedAt.UnixNano(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("document %s already exists", rec.ID)
		}
		return fmt.Errorf("failed to insert document: %w", err)
	}

	return nil
}

// QueryDocuments returns the user's documents of one collection
func (s *Storage) QueryDocuments(ctx context.Context, q storage.DocumentQuery) ([]*models.Record, error) {
	query := `
		SELECT id, user_id, collection, data, created_at, updated_at
		FROM documents
		WHERE user_id = ? AND collection = ? AND created_at >= ?
		ORDER BY created_at ASC, id ASC
	`
	args := []any{q.UserID, q.Collection, int64(0)}
	if !q.Since.IsZero() {
		args[2] = q.Since.UnixNano()
	}
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	docs := make([]*models.Record, 0)
	for rows.Next() {
		rec, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}

// UpdateDocument replaces data of an existing document and returns it
func (s *Storage) UpdateDocument(ctx context.Context, userID, collection, id string, data json.RawMessage, updatedAt time.Time) (*models.Record, error) {
	query := `
		UPDATE documents
		SET data = ?, updated_at = ?
		WHERE user_id = ? AND collection = ? AND id = ?
		RETURNING id, user_id, collection, data, created_at, updated_at
	`

	rec, err := scanDocument(s.db.QueryRowContext(ctx, query,
		[]byte(data), updatedAt.UnixNano(), userID, collection, id))
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteDocument removes a document
func (s *Storage) DeleteDocument(ctx context.Context, userID, collection, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE user_id = ? AND collection = ? AND id = ?`,
		userID, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrDocumentNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*models.Record, error) {
	var (
		rec                  models.Record
		data                 []byte
		createdAt, updatedAt int64
	)

	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Collection, &data, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	rec.Data = json.RawMessage(data)
	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	rec.UpdatedAt = time.Unix(0, updatedAt).UTC()

	return &rec, nil
}
