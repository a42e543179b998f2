package storage

import "context"

//go:generate moq -out kvstorage_mock.go . KVStorage

// KVStorage defines the local durable key-value storage used by the sync
// and backup engine. Values are opaque bytes (JSON documents in practice).
type KVStorage interface {
	// Get returns the value stored under key
	// Returns ErrKeyNotFound if key doesn't exist
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	// Returns ErrQuotaExceeded if the write would exceed the storage quota
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key; removing a missing key is not an error
	Remove(ctx context.Context, key string) error
}

// Ключи локального хранилища, которыми владеет подсистема синхронизации
const (
	KeyOfflineCache   = "offline_cache"
	KeyPendingActions = "pending_actions"
	KeyBackupConfig   = "backup_config"
	KeyBackupHistory  = "backup_history"
)

// OwnedKeys returns every key the sync and backup engine persists.
func OwnedKeys() []string {
	return []string{KeyOfflineCache, KeyPendingActions, KeyBackupConfig, KeyBackupHistory}
}
