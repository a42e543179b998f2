// Package queue implements the durable FIFO of mutations that could not be
// applied to the remote store right away.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/moodkeeper/internal/client/storage"
	"github.com/iudanet/moodkeeper/internal/models"
)

var (
	// ErrInvalidPayload payload не является корректным JSON ActionPayload
	ErrInvalidPayload = errors.New("invalid action payload")

	// ErrInvalidAction неизвестный тип действия
	ErrInvalidAction = errors.New("invalid action type")

	// ErrNoOwner действие без владельца
	ErrNoOwner = errors.New("action owner is required")
)

// Settlement is the outcome of one replay pass applied in a single write.
type Settlement struct {
	// Retries новые значения счетчиков для оставшихся действий
	Retries map[string]int
	// Remap локальный ID записи -> ID, присвоенный удаленным хранилищем
	Remap map[string]string
	// Removed действия, которые нужно удалить из очереди
	Removed []string
}

// Queue очередь отложенных действий поверх KVStorage (ключ pending_actions)
type Queue struct {
	kv     storage.KVStorage
	logger *slog.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// New создает очередь
func New(kv storage.KVStorage, logger *slog.Logger) *Queue {
	return &Queue{
		kv:     kv,
		logger: logger,
		now:    time.Now,
	}
}

// EncodePayload сериализует ActionPayload
func EncodePayload(recordID string, data json.RawMessage) (json.RawMessage, error) {
	raw, err := json.Marshal(models.ActionPayload{RecordID: recordID, Data: data})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return raw, nil
}

// DecodePayload разбирает PendingAction.Payload
func DecodePayload(raw json.RawMessage) (models.ActionPayload, error) {
	var p models.ActionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	if p.RecordID == "" {
		return p, fmt.Errorf("%w: record id is empty", ErrInvalidPayload)
	}
	return p, nil
}

// Enqueue appends a new action owned by userID with zero retries and returns its id.
func (q *Queue) Enqueue(ctx context.Context, userID string, typ models.ActionType, collection string, payload json.RawMessage) (string, error) {
	if userID == "" {
		return "", ErrNoOwner
	}
	if !typ.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, typ)
	}
	if !json.Valid(payload) {
		return "", ErrInvalidPayload
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	actions, err := q.load(ctx)
	if err != nil {
		return "", err
	}

	now := q.now()
	action := &models.PendingAction{
		ID:         newActionID(typ, now),
		UserID:     userID,
		Type:       typ,
		Collection: collection,
		Payload:    payload,
		Timestamp:  now,
	}
	actions = append(actions, action)

	if err := q.save(ctx, actions); err != nil {
		return "", err
	}

	q.logger.Debug("Action queued",
		"id", action.ID,
		"type", typ,
		"collection", collection,
		"user_id", userID)

	return action.ID, nil
}

// Dequeue удаляет действия по ID; отсутствующие ID игнорируются
func (q *Queue) Dequeue(ctx context.Context, ids ...string) error {
	return q.Settle(ctx, Settlement{Removed: ids})
}

// Snapshot returns queued actions in insertion order
func (q *Queue) Snapshot(ctx context.Context) ([]*models.PendingAction, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.load(ctx)
}

// Len возвращает количество действий в очереди
func (q *Queue) Len(ctx context.Context) (int, error) {
	actions, err := q.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return len(actions), nil
}

// Settle applies a pass outcome. Actions enqueued after the pass snapshot
// are only touched by Remap.
func (q *Queue) Settle(ctx context.Context, s Settlement) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	actions, err := q.load(ctx)
	if err != nil {
		return err
	}

	removed := make(map[string]struct{}, len(s.Removed))
	for _, id := range s.Removed {
		removed[id] = struct{}{}
	}

	kept := actions[:0]
	for _, a := range actions {
		if _, ok := removed[a.ID]; ok {
			continue
		}
		if retries, ok := s.Retries[a.ID]; ok {
			a.Retries = retries
		}
		if len(s.Remap) > 0 {
			q.remap(a, s.Remap)
		}
		kept = append(kept, a)
	}

	return q.save(ctx, kept)
}

// remap переписывает RecordID действия на подтвержденный ID
func (q *Queue) remap(a *models.PendingAction, remap map[string]string) {
	p, err := DecodePayload(a.Payload)
	if err != nil {
		// битый payload будет отброшен при воспроизведении
		return
	}
	target, ok := remap[p.RecordID]
	if !ok {
		return
	}

	raw, err := EncodePayload(target, p.Data)
	if err != nil {
		q.logger.Warn("Failed to remap action payload", "id", a.ID, "error", err)
		return
	}
	a.Payload = raw
}

func (q *Queue) load(ctx context.Context) ([]*models.PendingAction, error) {
	data, err := q.kv.Get(ctx, storage.KeyPendingActions)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []*models.PendingAction{}, nil
		}
		return nil, fmt.Errorf("failed to read pending actions: %w", err)
	}

	var actions []*models.PendingAction
	if err := json.Unmarshal(data, &actions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending actions: %w", err)
	}
	return actions, nil
}

func (q *Queue) save(ctx context.Context, actions []*models.PendingAction) error {
	data, err := json.Marshal(actions)
	if err != nil {
		return fmt.Errorf("failed to marshal pending actions: %w", err)
	}
	if err := q.kv.Set(ctx, storage.KeyPendingActions, data); err != nil {
		return fmt.Errorf("failed to save pending actions: %w", err)
	}
	return nil
}

// newActionID формат "<type>_<unixMillis>_<suffix>"
func newActionID(typ models.ActionType, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", typ, now.UnixMilli(), suffix)
}
