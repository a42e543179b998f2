// Package budget accounts for bytes the sync engine keeps in local storage.
package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/moodkeeper/internal/client/storage"
	"github.com/iudanet/moodkeeper/internal/models"
)

const (
	// DefaultQuota квота локального хранилища по умолчанию (5 MiB)
	DefaultQuota int64 = 5 * 1024 * 1024

	// FullThreshold процент заполнения, начиная с которого хранилище считается заполненным
	FullThreshold = 80.0
)

// ErrStorageFull новые офлайн-записи отклоняются, пока хранилище заполнено
var ErrStorageFull = errors.New("local storage is full")

// Manager считает объем ключей, которыми владеет подсистема синхронизации
type Manager struct {
	kv     storage.KVStorage
	logger *slog.Logger
	keys   []string
	quota  int64
}

// NewManager создает Manager; quota <= 0 заменяется на DefaultQuota
func NewManager(kv storage.KVStorage, quota int64, logger *slog.Logger) *Manager {
	if quota <= 0 {
		quota = DefaultQuota
	}
	return &Manager{
		kv:     kv,
		logger: logger,
		keys:   storage.OwnedKeys(),
		quota:  quota,
	}
}

// Quota returns the configured quota in bytes
func (m *Manager) Quota() int64 {
	return m.quota
}

// Usage sums byte length of every owned key and its value.
func (m *Manager) Usage(ctx context.Context) (models.StorageUsage, error) {
	var used int64
	for _, key := range m.keys {
		value, err := m.kv.Get(ctx, key)
		if err != nil {
			if errors.Is(err, storage.ErrKeyNotFound) {
				continue
			}
			return models.StorageUsage{}, fmt.Errorf("failed to read %s: %w", key, err)
		}
		used += int64(len(key) + len(value))
	}

	available := m.quota - used
	if available < 0 {
		available = 0
	}

	return models.StorageUsage{
		Used:       used,
		Available:  available,
		Percentage: float64(used) / float64(m.quota) * 100,
	}, nil
}

// IsFull reports whether usage reached FullThreshold percent
func (m *Manager) IsFull(ctx context.Context) (bool, error) {
	usage, err := m.Usage(ctx)
	if err != nil {
		return false, err
	}
	return usage.Percentage >= FullThreshold, nil
}

// Check returns ErrStorageFull when new offline writes must be rejected
func (m *Manager) Check(ctx context.Context) error {
	usage, err := m.Usage(ctx)
	if err != nil {
		return err
	}
	if usage.Percentage >= FullThreshold {
		m.logger.Warn("Local storage is full, rejecting offline write",
			"used", usage.Used,
			"quota", m.quota,
			"percentage", usage.Percentage)
		return fmt.Errorf("%w: %.1f%% used", ErrStorageFull, usage.Percentage)
	}
	return nil
}
