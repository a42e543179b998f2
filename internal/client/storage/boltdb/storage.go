package boltdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/iudanet/moodkeeper/internal/client/storage"
)

var (
	// BoltDB bucket names
	bucketAuth  = []byte("auth")
	bucketState = []byte("state")
)

// lockTimeout ожидание файловой блокировки, которую держит другой процесс
const lockTimeout = time.Second

// DefaultQuota квота состояния синхронизации по умолчанию (5 MiB)
const DefaultQuota int64 = 5 * 1024 * 1024

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db    *bbolt.DB
	quota int64
}

// Option настраивает Storage при создании
type Option func(*Storage)

// WithQuota задает максимальный суммарный размер ключей и значений в bucket state.
// Значение <= 0 отключает проверку.
func WithQuota(bytes int64) Option {
	return func(s *Storage) {
		s.quota = bytes
	}
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string, opts ...Option) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: lockTimeout})
	if err != nil {
		if errors.Is(err, berrors.ErrTimeout) {
			return nil, fmt.Errorf("%w: %s", storage.ErrDatabaseLocked, dbPath)
		}
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db, quota: DefaultQuota}
	for _, opt := range opts {
		opt(s)
	}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Quota returns the configured byte quota of the state bucket.
func (s *Storage) Quota() int64 {
	return s.quota
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		// Создаем bucket для аутентификационных данных
		if _, err := tx.CreateBucketIfNotExists(bucketAuth); err != nil {
			return fmt.Errorf("failed to create auth bucket: %w", err)
		}

		// Создаем bucket для состояния синхронизации и backup
		if _, err := tx.CreateBucketIfNotExists(bucketState); err != nil {
			return fmt.Errorf("failed to create state bucket: %w", err)
		}

		return nil
	})
}
