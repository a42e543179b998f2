// Package cache implements the local durable record cache used while the
// remote store is unreachable.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/moodkeeper/internal/client/api"
	"github.com/iudanet/moodkeeper/internal/client/storage"
	"github.com/iudanet/moodkeeper/internal/models"
)

// DefaultRetention окно хранения подтвержденных записей в кэше
const DefaultRetention = 7 * 24 * time.Hour

// OnlineChecker reports current reachability of the remote store
type OnlineChecker interface {
	IsOnline() bool
}

// Store локальный кэш записей поверх KVStorage (ключ offline_cache)
type Store struct {
	kv     storage.KVStorage
	remote api.RemoteStore
	online OnlineChecker
	logger *slog.Logger
	now    func() time.Time
	mu     sync.Mutex
}

// NewStore создает кэш записей
func NewStore(kv storage.KVStorage, remote api.RemoteStore, online OnlineChecker, logger *slog.Logger) *Store {
	return &Store{
		kv:     kv,
		remote: remote,
		online: online,
		logger: logger,
		now:    time.Now,
	}
}

// Append сохраняет запись; запись с тем же ID заменяется
func (s *Store) Append(ctx context.Context, rec *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return err
	}

	if idx := indexOf(c.Records, rec.ID); idx >= 0 {
		c.Records[idx] = rec.Clone()
	} else {
		c.Records = append(c.Records, rec.Clone())
	}

	return s.save(ctx, c)
}

// Read returns cached records of collection matching filter, merged with a
// fresh remote query when online. A failed remote query degrades to the
// cached view.
func (s *Store) Read(ctx context.Context, collection string, filter models.Filter) ([]*models.Record, error) {
	s.mu.Lock()
	c, err := s.load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	local := make([]*models.Record, 0, len(c.Records))
	for _, rec := range c.Records {
		if rec.Collection == collection && filter.Match(rec) {
			local = append(local, rec)
		}
	}

	var remote []*models.Record
	if s.online.IsOnline() {
		// сервер отдает записи от старых к новым, limit применяется после слияния
		remoteFilter := filter
		remoteFilter.Limit = 0
		remote, err = s.remote.Query(ctx, collection, remoteFilter)
		if err != nil {
			s.logger.Warn("Remote query failed, serving cached records",
				"collection", collection,
				"error", err)
			remote = nil
		}
	}

	merged := MergeRecords(local, remote)
	if filter.Limit > 0 && len(merged) > filter.Limit {
		merged = merged[:filter.Limit]
	}
	return merged, nil
}

// Confirm заменяет офлайн-запись localID подтвержденной записью удаленного хранилища.
// Если placeholder уже удален из кэша, подтвержденная запись просто добавляется.
func (s *Store) Confirm(ctx context.Context, localID string, confirmed *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return err
	}

	rec := confirmed.Clone()
	rec.IsOffline = false

	// удаляем возможный дубликат подтвержденной записи
	if idx := indexOf(c.Records, rec.ID); idx >= 0 && rec.ID != localID {
		c.Records = append(c.Records[:idx], c.Records[idx+1:]...)
	}

	if idx := indexOf(c.Records, localID); idx >= 0 {
		c.Records[idx] = rec
	} else {
		c.Records = append(c.Records, rec)
	}

	return s.save(ctx, c)
}

// Update заменяет данные закэшированной записи
func (s *Store) Update(ctx context.Context, collection, id string, data json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(c.Records, id)
	if idx < 0 || c.Records[idx].Collection != collection {
		return ErrRecordNotFound
	}
	c.Records[idx].Data = data
	c.Records[idx].UpdatedAt = s.now()

	return s.save(ctx, c)
}

// Remove удаляет запись из кэша; отсутствие записи не ошибка
func (s *Store) Remove(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(c.Records, id)
	if idx < 0 || c.Records[idx].Collection != collection {
		return nil
	}
	c.Records = append(c.Records[:idx], c.Records[idx+1:]...)

	return s.save(ctx, c)
}

// PurgeOlderThan removes confirmed records created before now-window and
// returns how many were removed. Unconfirmed offline records are kept.
func (s *Store) PurgeOlderThan(ctx context.Context, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-window)
	kept := c.Records[:0]
	for _, rec := range c.Records {
		if !rec.IsOffline && rec.CreatedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, rec)
	}

	removed := len(c.Records) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	c.Records = kept

	if err := s.save(ctx, c); err != nil {
		return 0, err
	}
	return removed, nil
}

// SetLastSync сохраняет время последней синхронизации
func (s *Store) SetLastSync(ctx context.Context, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return err
	}
	c.LastSync = t

	return s.save(ctx, c)
}

// Snapshot возвращает копию текущего состояния кэша
func (s *Store) Snapshot(ctx context.Context) (*models.OfflineCache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) (*models.OfflineCache, error) {
	data, err := s.kv.Get(ctx, storage.KeyOfflineCache)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return &models.OfflineCache{}, nil
		}
		return nil, fmt.Errorf("failed to read offline cache: %w", err)
	}

	var c models.OfflineCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal offline cache: %w", err)
	}
	return &c, nil
}

func (s *Store) save(ctx context.Context, c *models.OfflineCache) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal offline cache: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyOfflineCache, data); err != nil {
		return fmt.Errorf("failed to save offline cache: %w", err)
	}
	return nil
}

func indexOf(records []*models.Record, id string) int {
	for i, rec := range records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
