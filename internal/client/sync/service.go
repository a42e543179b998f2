// Package sync replays queued mutations against the remote store once it
// becomes reachable.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/moodkeeper/internal/client/api"
	"github.com/iudanet/moodkeeper/internal/client/auth"
	"github.com/iudanet/moodkeeper/internal/client/connectivity"
	"github.com/iudanet/moodkeeper/internal/client/queue"
	"github.com/iudanet/moodkeeper/internal/client/storage"
	"github.com/iudanet/moodkeeper/internal/models"
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс движка синхронизации
type Service interface {
	// Process выполняет один проход по очереди отложенных действий
	Process(ctx context.Context) (*Result, error)

	// Start подписывается на переходы в online и запускает Process на каждом из них
	Start(ctx context.Context)

	// Close отменяет подписку и ждет завершения текущего прохода
	Close()

	// Status возвращает счетчики состояния синхронизации
	Status(ctx context.Context) Status
}

// ActionQueue is the subset of queue.Queue the engine needs
type ActionQueue interface {
	Snapshot(ctx context.Context) ([]*models.PendingAction, error)
	Settle(ctx context.Context, s queue.Settlement) error
	Len(ctx context.Context) (int, error)
}

// RecordCache is the subset of cache.Store the engine needs
type RecordCache interface {
	Confirm(ctx context.Context, localID string, confirmed *models.Record) error
	Remove(ctx context.Context, collection, id string) error
	PurgeOlderThan(ctx context.Context, window time.Duration) (int, error)
	SetLastSync(ctx context.Context, t time.Time) error
	Snapshot(ctx context.Context) (*models.OfflineCache, error)
}

// Monitor is the subset of connectivity.Monitor the engine needs
type Monitor interface {
	IsOnline() bool
	Subscribe(onChange func(online bool)) *connectivity.Subscription
}

// UserSource returns the logged-in user; only that user's actions are replayed
type UserSource interface {
	Restore(ctx context.Context) (*storage.AuthData, error)
}

// RetryPolicy ограничивает повторы воспроизведения действий
type RetryPolicy struct {
	MaxRetries        int           // после MaxRetries неудачных проходов действие отбрасывается
	PerAttemptTimeout time.Duration // таймаут одного обращения к удаленному хранилищу
}

// DefaultRetryPolicy returns {MaxRetries: 3, PerAttemptTimeout: 15s}
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:        3,
		PerAttemptTimeout: 15 * time.Second,
	}
}

// Options настройки движка синхронизации
type Options struct {
	Retry RetryPolicy
	// Retention окно хранения подтвержденных записей в кэше
	Retention time.Duration
}

// Result contains one pass outcome
type Result struct {
	Skipped   bool // офлайн или нет сессии, проход не выполнялся
	Stopped   bool // проход прерван: сервер не принял токен
	Confirmed int  // успешно применено
	Retried   int  // временная ошибка, действие осталось в очереди
	Deferred  int  // ждет подтверждения create той же записи
	Dropped   int  // отброшено без возможности повтора
	Purged    int  // удалено устаревших записей из кэша
	Pending   int  // осталось в очереди после прохода
}

// Status снимок состояния синхронизации
type Status struct {
	LastSync   time.Time
	LastResult *Result
	LastError  string
	Pending    int
	Online     bool
	Running    bool
}

type service struct {
	remote  api.RemoteStore
	queue   ActionQueue
	cache   RecordCache
	monitor Monitor
	users   UserSource
	logger  *slog.Logger
	now     func() time.Time
	opts    Options

	// passMu сериализует проходы
	passMu sync.Mutex

	mu         sync.Mutex
	wg         sync.WaitGroup
	sub        *connectivity.Subscription
	lastResult *Result
	lastError  string
	running    bool
	closed     bool
}

// NewService creates a new sync service
func NewService(remote api.RemoteStore, q ActionQueue, c RecordCache, monitor Monitor, users UserSource, opts Options, logger *slog.Logger) Service {
	if opts.Retry.PerAttemptTimeout <= 0 {
		opts.Retry.PerAttemptTimeout = DefaultRetryPolicy().PerAttemptTimeout
	}
	if opts.Retry.MaxRetries < 0 {
		opts.Retry.MaxRetries = 0
	}
	if opts.Retention <= 0 {
		opts.Retention = 7 * 24 * time.Hour
	}

	return &service{
		remote:  remote,
		queue:   q,
		cache:   c,
		monitor: monitor,
		users:   users,
		logger:  logger,
		now:     time.Now,
		opts:    opts,
	}
}

type outcome int

const (
	outcomeConfirmed outcome = iota
	outcomeRetry
	outcomeDeferred
	outcomeDropped
	outcomeUnauthorized
)

// Process drains the queue once. Actions are replayed in FIFO order; a failed
// action never blocks the ones after it.
func (s *service) Process(ctx context.Context) (*Result, error) {
	s.passMu.Lock()
	defer s.passMu.Unlock()

	if !s.monitor.IsOnline() {
		s.logger.Debug("Offline, skipping sync pass")
		return &Result{Skipped: true}, nil
	}

	user, err := s.users.Restore(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			s.logger.Debug("No active session, skipping sync pass")
			return &Result{Skipped: true}, nil
		}
		return nil, fmt.Errorf("failed to resolve current user: %w", err)
	}

	s.setRunning(true)
	defer s.setRunning(false)

	result, err := s.process(ctx, user.UserID)
	s.finish(result, err)
	return result, err
}

func (s *service) process(ctx context.Context, userID string) (*Result, error) {
	queued, err := s.queue.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending actions: %w", err)
	}

	// действия других пользователей ждут их входа
	actions := make([]*models.PendingAction, 0, len(queued))
	for _, a := range queued {
		if a.UserID == userID {
			actions = append(actions, a)
		}
	}

	s.logger.Info("Starting sync pass", "user_id", userID, "pending", len(actions))

	result := &Result{}
	settlement := queue.Settlement{
		Retries: make(map[string]int),
		Remap:   make(map[string]string),
	}

	// Локальные ID записей, create которых еще не подтвержден
	unconfirmed := make(map[string]struct{})
	for _, a := range actions {
		if a.Type != models.ActionCreate {
			continue
		}
		if p, err := queue.DecodePayload(a.Payload); err == nil {
			unconfirmed[p.RecordID] = struct{}{}
		}
	}

	var authErr error
	for _, a := range actions {
		if ctx.Err() != nil || authErr != nil {
			// оставшиеся действия будут обработаны в следующем проходе
			break
		}

		switch s.replay(ctx, a, settlement.Remap, unconfirmed, &authErr) {
		case outcomeConfirmed:
			settlement.Removed = append(settlement.Removed, a.ID)
			result.Confirmed++
		case outcomeDropped:
			settlement.Removed = append(settlement.Removed, a.ID)
			s.discard(ctx, a)
			result.Dropped++
		case outcomeDeferred:
			result.Deferred++
		case outcomeUnauthorized:
			// остается в очереди без расхода попытки
		case outcomeRetry:
			retries := a.Retries + 1
			if retries > s.opts.Retry.MaxRetries {
				s.logger.Warn("Dropping action after max retries",
					"action_id", a.ID,
					"type", a.Type,
					"collection", a.Collection,
					"retries", retries)
				settlement.Removed = append(settlement.Removed, a.ID)
				s.discard(ctx, a)
				result.Dropped++
				continue
			}
			settlement.Retries[a.ID] = retries
			result.Retried++
		}
	}

	if err := s.queue.Settle(ctx, settlement); err != nil {
		return result, fmt.Errorf("failed to settle pending actions: %w", err)
	}

	if authErr != nil {
		result.Stopped = true
		if pending, err := s.queue.Len(ctx); err == nil {
			result.Pending = pending
		}
		s.logger.Warn("Sync pass stopped, session rejected by server",
			"confirmed", result.Confirmed,
			"pending", result.Pending)
		return result, fmt.Errorf("sync pass stopped, log in again: %w", authErr)
	}

	purged, err := s.cache.PurgeOlderThan(ctx, s.opts.Retention)
	if err != nil {
		s.logger.Warn("Failed to purge stale cache entries", "error", err)
	}
	result.Purged = purged

	if err := s.cache.SetLastSync(ctx, s.now()); err != nil {
		return result, fmt.Errorf("failed to save last sync time: %w", err)
	}

	pending, err := s.queue.Len(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to count pending actions: %w", err)
	}
	result.Pending = pending

	s.logger.Info("Sync pass completed",
		"confirmed", result.Confirmed,
		"retried", result.Retried,
		"deferred", result.Deferred,
		"dropped", result.Dropped,
		"purged", result.Purged,
		"pending", result.Pending)

	return result, nil
}

// replay применяет одно действие к удаленному хранилищу
func (s *service) replay(ctx context.Context, a *models.PendingAction, remap map[string]string, unconfirmed map[string]struct{}, authErr *error) outcome {
	logger := s.logger.With("action_id", a.ID, "type", a.Type, "collection", a.Collection)

	p, err := queue.DecodePayload(a.Payload)
	if err != nil {
		logger.Error("Dropping action with undecodable payload", "error", err)
		return outcomeDropped
	}
	if target, ok := remap[p.RecordID]; ok {
		p.RecordID = target
	}

	if a.Type != models.ActionCreate {
		if _, waiting := unconfirmed[p.RecordID]; waiting {
			logger.Debug("Deferring action until record create is confirmed", "record_id", p.RecordID)
			return outcomeDeferred
		}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, s.opts.Retry.PerAttemptTimeout)
	defer cancel()

	switch a.Type {
	case models.ActionCreate:
		draft := &models.Record{
			ID:         p.RecordID,
			Collection: a.Collection,
			Data:       p.Data,
			CreatedAt:  a.Timestamp,
		}
		confirmed, err := s.remote.Create(attemptCtx, a.Collection, draft)
		if err != nil {
			if errors.Is(err, api.ErrRejected) {
				delete(unconfirmed, p.RecordID)
			}
			return s.classify(logger, err, authErr)
		}

		delete(unconfirmed, p.RecordID)
		remap[p.RecordID] = confirmed.ID
		if err := s.cache.Confirm(ctx, p.RecordID, confirmed); err != nil {
			// запись уже на сервере: placeholder убираем, чтобы не было дубля
			logger.Warn("Failed to confirm cached record, removing placeholder",
				"local_id", p.RecordID,
				"remote_id", confirmed.ID,
				"error", err)
			if err := s.cache.Remove(ctx, a.Collection, p.RecordID); err != nil {
				logger.Error("Failed to remove placeholder", "local_id", p.RecordID, "error", err)
			}
		}
		logger.Debug("Create confirmed", "local_id", p.RecordID, "remote_id", confirmed.ID)
		return outcomeConfirmed

	case models.ActionUpdate:
		if err := s.remote.Update(attemptCtx, a.Collection, p.RecordID, p.Data); err != nil {
			return s.classify(logger, err, authErr)
		}
		return outcomeConfirmed

	case models.ActionDelete:
		err := s.remote.Delete(attemptCtx, a.Collection, p.RecordID)
		if err != nil && !errors.Is(err, api.ErrNotFound) {
			return s.classify(logger, err, authErr)
		}
		// уже удалено на сервере
		if err := s.cache.Remove(ctx, a.Collection, p.RecordID); err != nil {
			logger.Warn("Failed to remove cached record", "record_id", p.RecordID, "error", err)
		}
		return outcomeConfirmed

	default:
		logger.Error("Dropping action of unknown type")
		return outcomeDropped
	}
}

// discard убирает из кэша placeholder отброшенного create
func (s *service) discard(ctx context.Context, a *models.PendingAction) {
	if a.Type != models.ActionCreate {
		return
	}
	p, err := queue.DecodePayload(a.Payload)
	if err != nil {
		return
	}
	if err := s.cache.Remove(ctx, a.Collection, p.RecordID); err != nil {
		s.logger.Warn("Failed to remove dropped placeholder", "record_id", p.RecordID, "error", err)
	}
}

// classify решает, повторять ли действие после ошибки
func (s *service) classify(logger *slog.Logger, err error, authErr *error) outcome {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()

	if errors.Is(err, api.ErrUnauthorized) {
		logger.Warn("Remote store rejected session token, stopping pass", "error", err)
		*authErr = err
		return outcomeUnauthorized
	}
	if errors.Is(err, api.ErrRejected) {
		logger.Error("Remote store rejected action, dropping", "error", err)
		return outcomeDropped
	}
	logger.Warn("Action replay failed, will retry", "error", err)
	return outcomeRetry
}

// Start subscribes to connectivity transitions. A pass is started right away
// when the monitor is already online.
func (s *service) Start(ctx context.Context) {
	s.mu.Lock()
	if s.sub != nil || s.closed {
		s.mu.Unlock()
		return
	}
	s.sub = s.monitor.Subscribe(func(online bool) {
		if online {
			s.trigger(ctx)
		}
	})
	s.mu.Unlock()

	if s.monitor.IsOnline() {
		s.trigger(ctx)
	}
}

func (s *service) trigger(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		if _, err := s.Process(ctx); err != nil {
			s.logger.Error("Sync pass failed", "error", err)
		}
	}()
}

// Close releases the subscription and waits for in-flight passes
func (s *service) Close() {
	s.mu.Lock()
	s.closed = true
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	sub.Release()
	s.wg.Wait()
}

// Status возвращает текущие счетчики
func (s *service) Status(ctx context.Context) Status {
	st := Status{Online: s.monitor.IsOnline()}

	if pending, err := s.queue.Len(ctx); err == nil {
		st.Pending = pending
	} else {
		s.logger.Warn("Failed to count pending actions", "error", err)
	}
	if snap, err := s.cache.Snapshot(ctx); err == nil {
		st.LastSync = snap.LastSync
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st.LastError = s.lastError
	st.Running = s.running
	if s.lastResult != nil {
		r := *s.lastResult
		st.LastResult = &r
	}
	return st
}

func (s *service) setRunning(running bool) {
	s.mu.Lock()
	s.running = running
	s.mu.Unlock()
}

func (s *service) finish(result *Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result != nil {
		r := *result
		s.lastResult = &r
	}
	if err != nil {
		s.lastError = err.Error()
	} else if result != nil && result.Retried == 0 && result.Dropped == 0 {
		s.lastError = ""
	}
}
