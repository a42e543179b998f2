package sqlite

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/moodkeeper/internal/models"
	"github.com/iudanet/moodkeeper/internal/server/storage"
)

func newDocument(id, userID, collection string, createdAt time.Time) *models.Record {
	return &models.Record{
		ID:         id,
		UserID:     userID,
		Collection: collection,
		Data:       json.RawMessage(`{"mood":5}`),
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
}

func TestDocumentStorage_CreateAndQuery(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, ctx, s, "alice")
	bob := createTestUser(t, ctx, s, "bob")

	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateDocument(ctx, newDocument("d2", alice, models.CollectionMoodLogs, base.Add(time.Hour))))
	require.NoError(t, s.CreateDocument(ctx, newDocument("d1", alice, models.CollectionMoodLogs, base)))
	require.NoError(t, s.CreateDocument(ctx, newDocument("d3", alice, models.CollectionMoodLogs, base.Add(2*time.Hour))))
	require.NoError(t, s.CreateDocument(ctx, newDocument("n1", alice, models.CollectionNotifications, base)))
	require.NoError(t, s.CreateDocument(ctx, newDocument("b1", bob, models.CollectionMoodLogs, base)))

	tests := []struct {
		name  string
		query storage.DocumentQuery
		want  []string
	}{
		{
			name:  "all documents of collection ordered by creation",
			query: storage.DocumentQuery{UserID: alice, Collection: models.CollectionMoodLogs},
			want:  []string{"d1", "d2", "d3"},
		},
		{
			name:  "since is inclusive",
			query: storage.DocumentQuery{UserID: alice, Collection: models.CollectionMoodLogs, Since: base.Add(time.Hour)},
			want:  []string{"d2", "d3"},
		},
		{
			name:  "limit",
			query: storage.DocumentQuery{UserID: alice, Collection: models.CollectionMoodLogs, Limit: 2},
			want:  []string{"d1", "d2"},
		},
		{
			name:  "other collection",
			query: storage.DocumentQuery{UserID: alice, Collection: models.CollectionNotifications},
			want:  []string{"n1"},
		},
		{
			name:  "documents are scoped to user",
			query: storage.DocumentQuery{UserID: bob, Collection: models.CollectionMoodLogs},
			want:  []string{"b1"},
		},
		{
			name:  "empty collection",
			query: storage.DocumentQuery{UserID: bob, Collection: models.CollectionSessions},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := s.QueryDocuments(ctx, tt.query)
			require.NoError(t, err)

			ids := make([]string, 0, len(docs))
			for _, d := range docs {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestDocumentStorage_CreateDocument_PreservesFields(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s, "alice")
	created := time.Date(2026, 5, 1, 10, 0, 0, 123456789, time.UTC)
	doc := newDocument("d1", userID, models.CollectionMoodLogs, created)

	require.NoError(t, s.CreateDocument(ctx, doc))

	docs, err := s.QueryDocuments(ctx, storage.DocumentQuery{UserID: userID, Collection: models.CollectionMoodLogs})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc, docs[0])

	// повторный id в той же коллекции отклоняется
	assert.Error(t, s.CreateDocument(ctx, doc))
}

func TestDocumentStorage_UpdateDocument(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, ctx, s, "alice")
	bob := createTestUser(t, ctx, s, "bob")
	created := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateDocument(ctx, newDocument("d1", alice, models.CollectionMoodLogs, created)))

	updated := created.Add(time.Hour)
	rec, err := s.UpdateDocument(ctx, alice, models.CollectionMoodLogs, "d1", json.RawMessage(`{"mood":9}`), updated)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mood":9}`, string(rec.Data))
	assert.Equal(t, created, rec.CreatedAt)
	assert.Equal(t, updated, rec.UpdatedAt)

	_, err = s.UpdateDocument(ctx, bob, models.CollectionMoodLogs, "d1", json.RawMessage(`{}`), updated)
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)

	_, err = s.UpdateDocument(ctx, alice, models.CollectionMoodLogs, "missing", json.RawMessage(`{}`), updated)
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)
}

func TestDocumentStorage_DeleteDocument(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s, "alice")
	require.NoError(t, s.CreateDocument(ctx, newDocument("d1", userID, models.CollectionMoodLogs, time.Now())))

	require.NoError(t, s.DeleteDocument(ctx, userID, models.CollectionMoodLogs, "d1"))
	assert.ErrorIs(t, s.DeleteDocument(ctx, userID, models.CollectionMoodLogs, "d1"), storage.ErrDocumentNotFound)

	docs, err := s.QueryDocuments(ctx, storage.DocumentQuery{UserID: userID, Collection: models.CollectionMoodLogs})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStorage_Ping(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	assert.NoError(t, s.Ping(context.Background()))
}
