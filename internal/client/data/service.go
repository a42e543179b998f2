// Package data is the record write path: writes go to the remote store first
// and fall back to the local cache plus pending-action queue when it fails.
package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/moodkeeper/internal/client/api"
	"github.com/iudanet/moodkeeper/internal/client/cache"
	"github.com/iudanet/moodkeeper/internal/client/queue"
	"github.com/iudanet/moodkeeper/internal/models"
	"github.com/iudanet/moodkeeper/internal/validation"
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс клиентского data сервиса
type Service interface {
	// Create создает запись; при недоступности сервера запись сохраняется офлайн
	Create(ctx context.Context, userID, collection string, data json.RawMessage) (*models.Record, error)
	// Update заменяет данные записи пользователя userID
	Update(ctx context.Context, userID, collection, id string, data json.RawMessage) error
	// Delete удаляет запись пользователя userID
	Delete(ctx context.Context, userID, collection, id string) error
	// List возвращает записи коллекции (кэш + сервер, если доступен)
	List(ctx context.Context, collection string, filter models.Filter) ([]*models.Record, error)

	// AddMoodEntry проверяет и сохраняет запись настроения
	AddMoodEntry(ctx context.Context, userID string, entry *models.MoodEntry) (*models.Record, error)
}

// RecordCache is the subset of cache.Store the write path needs
type RecordCache interface {
	Append(ctx context.Context, rec *models.Record) error
	Update(ctx context.Context, collection, id string, data json.RawMessage) error
	Remove(ctx context.Context, collection, id string) error
	Read(ctx context.Context, collection string, filter models.Filter) ([]*models.Record, error)
}

// ActionQueue is the subset of queue.Queue the write path needs
type ActionQueue interface {
	Enqueue(ctx context.Context, userID string, typ models.ActionType, collection string, payload json.RawMessage) (string, error)
	Dequeue(ctx context.Context, ids ...string) error
	Snapshot(ctx context.Context) ([]*models.PendingAction, error)
}

// Budget rejects offline writes when local storage is full
type Budget interface {
	Check(ctx context.Context) error
}

// OnlineChecker reports current reachability of the remote store
type OnlineChecker interface {
	IsOnline() bool
}

// offlineIDPrefix префикс локально сгенерированных ID
const offlineIDPrefix = "offline_"

type service struct {
	remote api.RemoteStore
	cache  RecordCache
	queue  ActionQueue
	budget Budget
	online OnlineChecker
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new data service
func NewService(remote api.RemoteStore, c RecordCache, q ActionQueue, b Budget, online OnlineChecker, logger *slog.Logger) Service {
	return &service{
		remote: remote,
		cache:  c,
		queue:  q,
		budget: b,
		online: online,
		logger: logger,
		now:    time.Now,
	}
}

// Create tries the remote store first; on a transient failure or while
// offline the record is cached as an offline placeholder and a create is queued.
func (s *service) Create(ctx context.Context, userID, collection string, data json.RawMessage) (*models.Record, error) {
	if err := validation.ValidateCollection(collection); err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, queue.ErrInvalidPayload
	}

	now := s.now()
	draft := &models.Record{
		Collection: collection,
		UserID:     userID,
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if s.online.IsOnline() {
		confirmed, err := s.remote.Create(ctx, collection, draft)
		if err == nil {
			if err := s.cache.Append(ctx, confirmed); err != nil {
				s.logger.Warn("Failed to cache confirmed record", "id", confirmed.ID, "error", err)
			}
			return confirmed, nil
		}
		if errors.Is(err, api.ErrRejected) {
			return nil, err
		}
		s.logger.Warn("Remote create failed, storing offline", "collection", collection, "error", err)
	}

	if err := s.budget.Check(ctx); err != nil {
		return nil, err
	}

	draft.ID = offlineIDPrefix + uuid.NewString()
	draft.IsOffline = true

	if err := s.cache.Append(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to cache offline record: %w", err)
	}
	if err := s.enqueue(ctx, userID, models.ActionCreate, collection, draft.ID, data); err != nil {
		// откатываем placeholder, чтобы он не остался без действия в очереди
		if rmErr := s.cache.Remove(ctx, collection, draft.ID); rmErr != nil {
			s.logger.Warn("Failed to roll back offline record", "id", draft.ID, "error", rmErr)
		}
		return nil, err
	}

	return draft, nil
}

// Update applies the change remotely when possible, otherwise queues it.
// Records that still have queued actions are always updated offline to keep order.
func (s *service) Update(ctx context.Context, userID, collection, id string, data json.RawMessage) error {
	if err := validation.ValidateCollection(collection); err != nil {
		return err
	}
	if !json.Valid(data) {
		return queue.ErrInvalidPayload
	}

	pending, err := s.pendingActionsFor(ctx, userID, id)
	if err != nil {
		return err
	}

	if s.online.IsOnline() && len(pending) == 0 {
		err := s.remote.Update(ctx, collection, id, data)
		if err == nil {
			s.updateCached(ctx, collection, id, data)
			return nil
		}
		if errors.Is(err, api.ErrRejected) {
			return err
		}
		s.logger.Warn("Remote update failed, queuing", "collection", collection, "id", id, "error", err)
	}

	if err := s.budget.Check(ctx); err != nil {
		return err
	}
	s.updateCached(ctx, collection, id, data)
	return s.enqueue(ctx, userID, models.ActionUpdate, collection, id, data)
}

// Delete removes the record. A record that never reached the remote store is
// dropped locally together with its queued actions.
func (s *service) Delete(ctx context.Context, userID, collection, id string) error {
	if err := validation.ValidateCollection(collection); err != nil {
		return err
	}

	pending, err := s.pendingActionsFor(ctx, userID, id)
	if err != nil {
		return err
	}
	if hasCreate(pending) {
		ids := make([]string, 0, len(pending))
		for _, a := range pending {
			ids = append(ids, a.ID)
		}
		if err := s.queue.Dequeue(ctx, ids...); err != nil {
			return err
		}
		return s.cache.Remove(ctx, collection, id)
	}

	if s.online.IsOnline() {
		err := s.remote.Delete(ctx, collection, id)
		if err == nil || errors.Is(err, api.ErrNotFound) {
			return s.cache.Remove(ctx, collection, id)
		}
		if errors.Is(err, api.ErrRejected) {
			return err
		}
		s.logger.Warn("Remote delete failed, queuing", "collection", collection, "id", id, "error", err)
	}

	// удаление не проверяет бюджет: оно освобождает место в кэше
	if err := s.cache.Remove(ctx, collection, id); err != nil {
		return err
	}
	return s.enqueue(ctx, userID, models.ActionDelete, collection, id, nil)
}

// List возвращает объединенное представление кэша и сервера
func (s *service) List(ctx context.Context, collection string, filter models.Filter) ([]*models.Record, error) {
	if err := validation.ValidateCollection(collection); err != nil {
		return nil, err
	}
	return s.cache.Read(ctx, collection, filter)
}

// AddMoodEntry validates entry and stores it in moodLogs
func (s *service) AddMoodEntry(ctx context.Context, userID string, entry *models.MoodEntry) (*models.Record, error) {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = s.now()
	}
	if err := entry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mood entry: %w", err)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mood entry: %w", err)
	}
	return s.Create(ctx, userID, models.CollectionMoodLogs, data)
}

// DecodeMoodEntry разбирает данные записи moodLogs
func DecodeMoodEntry(rec *models.Record) (*models.MoodEntry, error) {
	var entry models.MoodEntry
	if err := json.Unmarshal(rec.Data, &entry); err != nil {
		return nil, fmt.Errorf("failed to decode mood entry %s: %w", rec.ID, err)
	}
	return &entry, nil
}

func (s *service) enqueue(ctx context.Context, userID string, typ models.ActionType, collection, recordID string, data json.RawMessage) error {
	payload, err := queue.EncodePayload(recordID, data)
	if err != nil {
		return err
	}
	if _, err := s.queue.Enqueue(ctx, userID, typ, collection, payload); err != nil {
		return fmt.Errorf("failed to queue %s: %w", typ, err)
	}
	return nil
}

func (s *service) updateCached(ctx context.Context, collection, id string, data json.RawMessage) {
	err := s.cache.Update(ctx, collection, id, data)
	if err != nil && !errors.Is(err, cache.ErrRecordNotFound) {
		s.logger.Warn("Failed to update cached record", "id", id, "error", err)
	}
}

// pendingActionsFor возвращает действия пользователя userID, относящиеся к записи id
func (s *service) pendingActionsFor(ctx context.Context, userID, id string) ([]*models.PendingAction, error) {
	actions, err := s.queue.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var related []*models.PendingAction
	for _, a := range actions {
		if a.UserID != userID {
			continue
		}
		p, err := queue.DecodePayload(a.Payload)
		if err != nil {
			continue
		}
		if p.RecordID == id {
			related = append(related, a)
		}
	}
	return related, nil
}

func hasCreate(actions []*models.PendingAction) bool {
	for _, a := range actions {
		if a.Type == models.ActionCreate {
			return true
		}
	}
	return false
}
