package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/moodkeeper/internal/client/storage"
)

// authKey единственная сессия устройства
var authKey = []byte("current")

var errAuthBucketMissing = errors.New("auth bucket not found")

// SaveAuth stores the session, replacing any previous one
func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	data, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to marshal auth data: %w", err)
	}

	return s.updateAuth(func(b *bbolt.Bucket) error {
		if err := b.Put(authKey, data); err != nil {
			return fmt.Errorf("failed to save auth data: %w", err)
		}
		return nil
	})
}

// GetAuth retrieves the stored session
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var auth storage.AuthData
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketAuth)
		if b == nil {
			return errAuthBucketMissing
		}

		data := b.Get(authKey)
		if data == nil {
			return storage.ErrAuthNotFound
		}
		if err := json.Unmarshal(data, &auth); err != nil {
			return fmt.Errorf("failed to unmarshal auth data: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &auth, nil
}

// DeleteAuth removes the stored session; no session is not an error
func (s *Storage) DeleteAuth(ctx context.Context) error {
	return s.updateAuth(func(b *bbolt.Bucket) error {
		if err := b.Delete(authKey); err != nil {
			return fmt.Errorf("failed to delete auth data: %w", err)
		}
		return nil
	})
}

func (s *Storage) updateAuth(fn func(b *bbolt.Bucket) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketAuth)
		if b == nil {
			return errAuthBucketMissing
		}
		return fn(b)
	})
}
