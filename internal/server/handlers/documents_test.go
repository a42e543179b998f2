package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/moodkeeper/internal/models"
	"github.com/iudanet/moodkeeper/internal/server/storage"
	"github.com/iudanet/moodkeeper/pkg/api"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestDocumentHandler(ds *storage.DocumentStorageMock) *DocumentHandler {
	h := NewDocumentHandler(setupTestLogger(), ds)
	h.now = func() time.Time { return fixedNow }
	return h
}

// documentRequest строит запрос с path values и аутентифицированным пользователем
func documentRequest(t *testing.T, method, target, userID, collection, id string, body interface{}) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.SetPathValue("collection", collection)
	if id != "" {
		req.SetPathValue("id", id)
	}
	if userID != "" {
		req = req.WithContext(WithUser(req.Context(), userID, "alice"))
	}
	return req
}

func TestDocumentHandler_Create(t *testing.T) {
	offlineCreated := time.Date(2026, 5, 30, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		body          interface{}
		wantCreatedAt time.Time
		name          string
		collection    string
		userID        string
		wantCode      int
	}{
		{
			name:          "server assigns creation time",
			userID:        "u-1",
			collection:    models.CollectionMoodLogs,
			body:          api.CreateDocumentRequest{Data: json.RawMessage(`{"mood":7}`)},
			wantCode:      http.StatusCreated,
			wantCreatedAt: fixedNow,
		},
		{
			name:          "client creation time is preserved",
			userID:        "u-1",
			collection:    models.CollectionMoodLogs,
			body:          api.CreateDocumentRequest{Data: json.RawMessage(`{"mood":7}`), CreatedAt: &offlineCreated},
			wantCode:      http.StatusCreated,
			wantCreatedAt: offlineCreated,
		},
		{
			name:       "data must be an object",
			userID:     "u-1",
			collection: models.CollectionMoodLogs,
			body:       api.CreateDocumentRequest{Data: json.RawMessage(`[1,2]`)},
			wantCode:   http.StatusBadRequest,
		},
		{
			name:       "invalid collection",
			userID:     "u-1",
			collection: "bad-name",
			body:       api.CreateDocumentRequest{Data: json.RawMessage(`{}`)},
			wantCode:   http.StatusBadRequest,
		},
		{
			name:       "no user in context",
			collection: models.CollectionMoodLogs,
			body:       api.CreateDocumentRequest{Data: json.RawMessage(`{}`)},
			wantCode:   http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := &storage.DocumentStorageMock{
				CreateDocumentFunc: func(ctx context.Context, rec *models.Record) error { return nil },
			}
			h := newTestDocumentHandler(ds)

			w := httptest.NewRecorder()
			h.Create(w, documentRequest(t, http.MethodPost, "/", tt.userID, tt.collection, "", tt.body))
			assert.Equal(t, tt.wantCode, w.Code)

			if tt.wantCode != http.StatusCreated {
				assert.Empty(t, ds.CreateDocumentCalls())
				return
			}

			var doc api.Document
			require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
			assert.NotEmpty(t, doc.ID)
			assert.Equal(t, tt.userID, doc.UserID)
			assert.Equal(t, tt.collection, doc.Collection)
			assert.True(t, tt.wantCreatedAt.Equal(doc.CreatedAt))
			assert.True(t, fixedNow.Equal(doc.UpdatedAt))
			assert.JSONEq(t, `{"mood":7}`, string(doc.Data))

			require.Len(t, ds.CreateDocumentCalls(), 1)
			assert.Equal(t, doc.ID, ds.CreateDocumentCalls()[0].Rec.ID)
		})
	}
}

func TestDocumentHandler_Query(t *testing.T) {
	stored := []*models.Record{
		{ID: "d1", UserID: "u-1", Collection: models.CollectionMoodLogs, Data: json.RawMessage(`{"mood":1}`), CreatedAt: fixedNow, UpdatedAt: fixedNow},
	}

	tests := []struct {
		wantQuery storage.DocumentQuery
		name      string
		target    string
		wantCode  int
	}{
		{
			name:      "no filters",
			target:    "/",
			wantCode:  http.StatusOK,
			wantQuery: storage.DocumentQuery{UserID: "u-1", Collection: models.CollectionMoodLogs},
		},
		{
			name:     "since and limit",
			target:   "/?since=2026-05-01T00:00:00Z&limit=10",
			wantCode: http.StatusOK,
			wantQuery: storage.DocumentQuery{
				UserID:     "u-1",
				Collection: models.CollectionMoodLogs,
				Since:      time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
				Limit:      10,
			},
		},
		{
			name:      "limit is capped",
			target:    "/?limit=100000",
			wantCode:  http.StatusOK,
			wantQuery: storage.DocumentQuery{UserID: "u-1", Collection: models.CollectionMoodLogs, Limit: MaxQueryLimit},
		},
		{name: "invalid since", target: "/?since=yesterday", wantCode: http.StatusBadRequest},
		{name: "negative limit", target: "/?limit=-1", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := &storage.DocumentStorageMock{
				QueryDocumentsFunc: func(ctx context.Context, q storage.DocumentQuery) ([]*models.Record, error) {
					return stored, nil
				},
			}
			h := newTestDocumentHandler(ds)

			w := httptest.NewRecorder()
			h.Query(w, documentRequest(t, http.MethodGet, tt.target, "u-1", models.CollectionMoodLogs, "", nil))
			assert.Equal(t, tt.wantCode, w.Code)

			if tt.wantCode != http.StatusOK {
				assert.Empty(t, ds.QueryDocumentsCalls())
				return
			}

			require.Len(t, ds.QueryDocumentsCalls(), 1)
			got := ds.QueryDocumentsCalls()[0].Q
			assert.Equal(t, tt.wantQuery.UserID, got.UserID)
			assert.Equal(t, tt.wantQuery.Collection, got.Collection)
			assert.Equal(t, tt.wantQuery.Limit, got.Limit)
			assert.True(t, tt.wantQuery.Since.Equal(got.Since))

			var resp api.QueryResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			require.Len(t, resp.Documents, 1)
			assert.Equal(t, "d1", resp.Documents[0].ID)
		})
	}
}

func TestDocumentHandler_Query_EmptyIsArray(t *testing.T) {
	ds := &storage.DocumentStorageMock{
		QueryDocumentsFunc: func(ctx context.Context, q storage.DocumentQuery) ([]*models.Record, error) {
			return nil, nil
		},
	}
	h := newTestDocumentHandler(ds)

	w := httptest.NewRecorder()
	h.Query(w, documentRequest(t, http.MethodGet, "/", "u-1", models.CollectionMoodLogs, "", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"documents":[]}`, w.Body.String())
}

func TestDocumentHandler_Update(t *testing.T) {
	tests := []struct {
		storeErr error
		name     string
		wantCode int
	}{
		{name: "success", wantCode: http.StatusOK},
		{name: "not found", storeErr: storage.ErrDocumentNotFound, wantCode: http.StatusNotFound},
		{name: "storage failure", storeErr: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := &storage.DocumentStorageMock{
				UpdateDocumentFunc: func(ctx context.Context, userID, collection, id string, data json.RawMessage, updatedAt time.Time) (*models.Record, error) {
					if tt.storeErr != nil {
						return nil, tt.storeErr
					}
					return &models.Record{ID: id, UserID: userID, Collection: collection, Data: data, UpdatedAt: updatedAt}, nil
				},
			}
			h := newTestDocumentHandler(ds)

			body := api.UpdateDocumentRequest{Data: json.RawMessage(`{"mood":3}`)}
			w := httptest.NewRecorder()
			h.Update(w, documentRequest(t, http.MethodPut, "/", "u-1", models.CollectionMoodLogs, "d1", body))
			assert.Equal(t, tt.wantCode, w.Code)

			require.Len(t, ds.UpdateDocumentCalls(), 1)
			call := ds.UpdateDocumentCalls()[0]
			assert.Equal(t, "u-1", call.UserID)
			assert.Equal(t, "d1", call.Id)
			assert.Equal(t, fixedNow, call.UpdatedAt)
		})
	}
}

func TestDocumentHandler_Delete(t *testing.T) {
	tests := []struct {
		storeErr error
		name     string
		wantCode int
	}{
		{name: "success", wantCode: http.StatusNoContent},
		{name: "not found", storeErr: storage.ErrDocumentNotFound, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := &storage.DocumentStorageMock{
				DeleteDocumentFunc: func(ctx context.Context, userID, collection, id string) error {
					return tt.storeErr
				},
			}
			h := newTestDocumentHandler(ds)

			w := httptest.NewRecorder()
			h.Delete(w, documentRequest(t, http.MethodDelete, "/", "u-1", models.CollectionMoodLogs, "d1", nil))
			assert.Equal(t, tt.wantCode, w.Code)

			require.Len(t, ds.DeleteDocumentCalls(), 1)
			assert.Equal(t, "u-1", ds.DeleteDocumentCalls()[0].UserID)
		})
	}
}
