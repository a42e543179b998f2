package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/moodkeeper/internal/models"
	"github.com/iudanet/moodkeeper/internal/server/storage"
	"github.com/iudanet/moodkeeper/internal/validation"
	"github.com/iudanet/moodkeeper/pkg/api"
)

// MaxQueryLimit верхняя граница limit для одной выборки
const MaxQueryLimit = 1000

// DocumentHandler обслуживает CRUD документов коллекций
type DocumentHandler struct {
	logger  *slog.Logger
	storage storage.DocumentStorage
	now     func() time.Time
}

// NewDocumentHandler создает новый handler документов
func NewDocumentHandler(logger *slog.Logger, s storage.DocumentStorage) *DocumentHandler {
	return &DocumentHandler{
		logger:  logger,
		storage: s,
		now:     time.Now,
	}
}

// Create обрабатывает POST /api/v1/collections/{collection}/documents
func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, collection, ok := h.scope(w, r)
	if !ok {
		return
	}

	var req api.CreateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !isJSONObject(req.Data) {
		sendError(h.logger, w, "data must be a JSON object", http.StatusBadRequest)
		return
	}

	now := h.now().UTC()
	createdAt := now
	if req.CreatedAt != nil && !req.CreatedAt.IsZero() {
		// офлайн-записи сохраняют исходное время создания
		createdAt = req.CreatedAt.UTC()
	}

	rec := &models.Record{
		ID:         uuid.New().String(),
		Collection: collection,
		UserID:     userID,
		Data:       req.Data,
		CreatedAt:  createdAt,
		UpdatedAt:  now,
	}

	if err := h.storage.CreateDocument(ctx, rec); err != nil {
		h.logger.ErrorContext(ctx, "failed to create document", slog.String("collection", collection), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.DebugContext(ctx, "document created",
		slog.String("collection", collection),
		slog.String("id", rec.ID))

	sendJSON(h.logger, w, toDocument(rec), http.StatusCreated)
}

// Query обрабатывает GET /api/v1/collections/{collection}/documents?since=&limit=
func (h *DocumentHandler) Query(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, collection, ok := h.scope(w, r)
	if !ok {
		return
	}

	q := storage.DocumentQuery{UserID: userID, Collection: collection}

	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			sendError(h.logger, w, "since must be an RFC3339 timestamp", http.StatusBadRequest)
			return
		}
		q.Since = since
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			sendError(h.logger, w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		q.Limit = min(limit, MaxQueryLimit)
	}

	records, err := h.storage.QueryDocuments(ctx, q)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to query documents", slog.String("collection", collection), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.QueryResponse{Documents: make([]api.Document, 0, len(records))}
	for _, rec := range records {
		resp.Documents = append(resp.Documents, toDocument(rec))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Update обрабатывает PUT /api/v1/collections/{collection}/documents/{id}
func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, collection, ok := h.scope(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	var req api.UpdateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !isJSONObject(req.Data) {
		sendError(h.logger, w, "data must be a JSON object", http.StatusBadRequest)
		return
	}

	rec, err := h.storage.UpdateDocument(ctx, userID, collection, id, req.Data, h.now().UTC())
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			sendError(h.logger, w, "document not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update document", slog.String("id", id), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, toDocument(rec), http.StatusOK)
}

// Delete обрабатывает DELETE /api/v1/collections/{collection}/documents/{id}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, collection, ok := h.scope(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	if err := h.storage.DeleteDocument(ctx, userID, collection, id); err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			sendError(h.logger, w, "document not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete document", slog.String("id", id), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// scope извлекает пользователя из контекста и проверяет имя коллекции
func (h *DocumentHandler) scope(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), "user ID not found in context")
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return "", "", false
	}

	collection := r.PathValue("collection")
	if err := validation.ValidateCollection(collection); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return "", "", false
	}

	return userID, collection, true
}

func isJSONObject(data json.RawMessage) bool {
	var obj map[string]json.RawMessage
	return len(data) > 0 && json.Unmarshal(data, &obj) == nil && obj != nil
}

func toDocument(rec *models.Record) api.Document {
	return api.Document{
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
		ID:         rec.ID,
		Collection: rec.Collection,
		UserID:     rec.UserID,
		Data:       rec.Data,
	}
}
