package boltdb

import (
	"bytes"
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/moodkeeper/internal/client/storage"
)

// Get returns the value stored under key
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		if bucket == nil {
			return fmt.Errorf("state bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return storage.ErrKeyNotFound
		}

		// Значение валидно только внутри транзакции, копируем
		value = bytes.Clone(data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Set stores value under key, enforcing the byte quota
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		if bucket == nil {
			return fmt.Errorf("state bucket not found")
		}

		if s.quota > 0 {
			used, err := bucketSize(bucket)
			if err != nil {
				return err
			}
			old := bucket.Get([]byte(key))
			if old != nil {
				used -= int64(len(key) + len(old))
			}
			// запись, не увеличивающая ключ, проходит даже сверх квоты,
			// иначе очередь не сможет сократиться после уменьшения квоты
			grows := old == nil || len(value) > len(old)
			if grows && used+int64(len(key)+len(value)) > s.quota {
				return storage.ErrQuotaExceeded
			}
		}

		if err := bucket.Put([]byte(key), value); err != nil {
			return fmt.Errorf("failed to save key %q: %w", key, err)
		}
		return nil
	})
}

// Remove deletes key; missing key is not an error
func (s *Storage) Remove(ctx context.Context, key string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		if bucket == nil {
			return fmt.Errorf("state bucket not found")
		}

		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete key %q: %w", key, err)
		}
		return nil
	})
}

// bucketSize суммирует длины всех ключей и значений bucket
func bucketSize(bucket *bbolt.Bucket) (int64, error) {
	var total int64
	err := bucket.ForEach(func(k, v []byte) error {
		total += int64(len(k) + len(v))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to compute state size: %w", err)
	}
	return total, nil
}
