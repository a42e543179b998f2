// Package backup creates, rotates, verifies, restores and exports full
// snapshots of the user's records.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/moodkeeper/internal/client/api"
	"github.com/iudanet/moodkeeper/internal/client/storage"
	"github.com/iudanet/moodkeeper/internal/crypto"
	"github.com/iudanet/moodkeeper/internal/models"
)

//go:generate moq -out importer_mock.go . Importer
//go:generate moq -out exporter_mock.go . Exporter

// Importer re-applies a verified snapshot
type Importer interface {
	Import(ctx context.Context, snapshot *models.BackupSnapshot) error
}

// Exporter hands a backup payload to the user and returns its location
type Exporter interface {
	Export(ctx context.Context, filename string, payload []byte) (string, error)
}

// OnlineChecker reports current reachability of the remote store
type OnlineChecker interface {
	IsOnline() bool
}

// Options настройки Manager
type Options struct {
	// Collections коллекции, попадающие в snapshot
	Collections []string
}

// Manager управляет историей backup (ключи backup_history и backup_config).
// История и настройки хранятся раздельно для каждого пользователя.
type Manager struct {
	kv       storage.KVStorage
	remote   api.RemoteStore
	online   OnlineChecker
	importer Importer
	exporter Exporter
	logger   *slog.Logger
	now      func() time.Time

	collections []string

	mu      sync.Mutex
	lastErr string
}

// NewManager создает Manager; пустой список коллекций заменяется на models.DefaultCollections
func NewManager(kv storage.KVStorage, remote api.RemoteStore, online OnlineChecker, importer Importer, exporter Exporter, opts Options, logger *slog.Logger) *Manager {
	collections := opts.Collections
	if len(collections) == 0 {
		collections = models.DefaultCollections()
	}

	return &Manager{
		kv:          kv,
		remote:      remote,
		online:      online,
		importer:    importer,
		exporter:    exporter,
		logger:      logger,
		now:         time.Now,
		collections: collections,
	}
}

// CreateManual creates a backup on explicit request.
func (m *Manager) CreateManual(ctx context.Context, userID string) (*models.BackupInfo, error) {
	info, err := m.create(ctx, userID, models.BackupManual)
	if err != nil {
		m.setLastError(err)
		return nil, err
	}
	return info, nil
}

// CreateAutomatic creates a backup only when backups are enabled, automatic
// backups are on, the remote store is reachable and the schedule is due.
// Otherwise it returns nil, nil without side effects.
func (m *Manager) CreateAutomatic(ctx context.Context, userID string) (*models.BackupInfo, error) {
	cfg, err := m.Config(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !cfg.Enabled || !cfg.AutoBackup {
		return nil, nil
	}
	if !m.online.IsOnline() {
		m.logger.Debug("Offline, automatic backup postponed")
		return nil, nil
	}
	if !ShouldCreateBackup(cfg, m.now()) {
		return nil, nil
	}

	info, err := m.create(ctx, userID, models.BackupAutomatic)
	if err != nil {
		m.setLastError(err)
		return nil, err
	}

	period, err := cfg.Frequency.Period()
	if err != nil {
		return info, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// перечитываем: настройки могли измениться во время создания
	cfg, err = m.loadConfig(ctx, userID)
	if err != nil {
		return info, err
	}
	last := info.Timestamp
	next := last.Add(period)
	cfg.LastBackup = &last
	cfg.NextBackup = &next
	if err := m.saveConfig(ctx, userID, cfg); err != nil {
		return info, err
	}

	return info, nil
}

// ShouldCreateBackup reports whether an automatic backup is due at now.
func ShouldCreateBackup(cfg models.BackupConfig, now time.Time) bool {
	if cfg.LastBackup == nil {
		return true
	}
	period, err := cfg.Frequency.Period()
	if err != nil {
		return false
	}
	return now.Sub(*cfg.LastBackup) >= period
}

// create собирает snapshot и добавляет его в начало истории
func (m *Manager) create(ctx context.Context, userID string, typ models.BackupType) (*models.BackupInfo, error) {
	now := m.now()

	// Обращения к удаленному хранилищу выполняются без блокировки
	snapshot := &models.BackupSnapshot{
		Version:     models.SnapshotVersion,
		UserID:      userID,
		CreatedAt:   now,
		Collections: make(map[string][]*models.Record, len(m.collections)),
	}
	for _, collection := range m.collections {
		records, err := m.remote.Query(ctx, collection, models.Filter{UserID: userID})
		if err != nil {
			return nil, fmt.Errorf("failed to query %s: %w", collection, err)
		}
		if records == nil {
			records = []*models.Record{}
		}
		snapshot.Collections[collection] = records
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	info := &models.BackupInfo{
		ID:        uuid.NewString(),
		UserID:    userID,
		Timestamp: now,
		Size:      int64(len(payload)),
		Type:      typ,
		Version:   models.SnapshotVersion,
		Checksum:  crypto.Checksum(payload),
		Payload:   string(payload),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := m.loadConfig(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := m.loadHistory(ctx)
	if err != nil {
		return nil, err
	}

	history = append([]*models.BackupInfo{info}, history...)
	history, _ = trim(history, userID, cfg.MaxBackups)

	if err := m.saveHistory(ctx, history); err != nil {
		return nil, err
	}

	m.logger.Info("Backup created",
		"backup_id", info.ID,
		"user_id", userID,
		"type", typ,
		"size", info.Size,
		"records", snapshot.RecordCount())

	return info, nil
}

// Restore verifies a backup and hands its snapshot to the importer.
// Local state is not modified when the backup is missing or corrupted.
func (m *Manager) Restore(ctx context.Context, userID, id string) error {
	info, err := m.find(ctx, userID, id)
	if err != nil {
		return err
	}

	snapshot, err := decode(info)
	if err != nil {
		m.setLastError(err)
		return err
	}

	if err := m.importer.Import(ctx, snapshot); err != nil {
		err = fmt.Errorf("failed to import backup %s: %w", id, err)
		m.setLastError(err)
		return err
	}

	m.logger.Info("Backup restored", "backup_id", id, "records", snapshot.RecordCount())
	return nil
}

// DeleteBackup удаляет backup пользователя из истории
func (m *Manager) DeleteBackup(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	history, err := m.loadHistory(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(history, userID, id)
	if idx < 0 {
		return ErrBackupNotFound
	}
	history = append(history[:idx], history[idx+1:]...)

	return m.saveHistory(ctx, history)
}

// VerifyIntegrity reports whether the backup exists and its payload is intact
func (m *Manager) VerifyIntegrity(ctx context.Context, userID, id string) bool {
	info, err := m.find(ctx, userID, id)
	if err != nil {
		return false
	}
	return Verify(info) == nil
}

// Verify checks that payload is present, parses as a snapshot and matches
// the recorded checksum.
func Verify(info *models.BackupInfo) error {
	_, err := decode(info)
	return err
}

// Export передает payload backup в Exporter и возвращает путь к файлу
func (m *Manager) Export(ctx context.Context, userID, id string) (string, error) {
	info, err := m.find(ctx, userID, id)
	if err != nil {
		return "", err
	}

	filename := ExportFilename(m.now())
	location, err := m.exporter.Export(ctx, filename, []byte(info.Payload))
	if err != nil {
		return "", fmt.Errorf("failed to export backup %s: %w", id, err)
	}

	m.logger.Info("Backup exported", "backup_id", id, "location", location)
	return location, nil
}

// ExportFilename returns mood-log-backup-<YYYY-MM-DD>.json
func ExportFilename(t time.Time) string {
	return "mood-log-backup-" + t.Format("2006-01-02") + ".json"
}

// CleanupOldBackups trims the user's history to MaxBackups and returns the
// number removed.
func (m *Manager) CleanupOldBackups(ctx context.Context, userID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := m.loadConfig(ctx, userID)
	if err != nil {
		return 0, err
	}
	return m.trimLocked(ctx, userID, cfg.MaxBackups)
}

// History returns the user's backups, newest first
func (m *Manager) History(ctx context.Context, userID string) ([]*models.BackupInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	history, err := m.loadHistory(ctx)
	if err != nil {
		return nil, err
	}
	own := make([]*models.BackupInfo, 0, len(history))
	for _, info := range history {
		if info.UserID == userID {
			own = append(own, info)
		}
	}
	return own, nil
}

// Config возвращает настройки пользователя
func (m *Manager) Config(ctx context.Context, userID string) (models.BackupConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.loadConfig(ctx, userID)
}

// UpdateConfig applies updates atomically: if any update fails nothing is saved.
// Shrinking MaxBackups trims history immediately.
func (m *Manager) UpdateConfig(ctx context.Context, userID string, updates ...ConfigUpdate) (models.BackupConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := m.loadConfig(ctx, userID)
	if err != nil {
		return cfg, err
	}
	updated := cfg
	for _, update := range updates {
		if err := update(&updated); err != nil {
			return cfg, err
		}
	}

	// пересчитываем следующий запуск при смене периодичности
	if updated.LastBackup != nil && updated.Frequency != cfg.Frequency {
		period, err := updated.Frequency.Period()
		if err != nil {
			return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		next := updated.LastBackup.Add(period)
		updated.NextBackup = &next
	}

	if err := m.saveConfig(ctx, userID, updated); err != nil {
		return cfg, err
	}
	if updated.MaxBackups < cfg.MaxBackups {
		if _, err := m.trimLocked(ctx, userID, updated.MaxBackups); err != nil {
			return updated, err
		}
	}

	m.logger.Info("Backup config updated",
		"user_id", userID,
		"enabled", updated.Enabled,
		"auto_backup", updated.AutoBackup,
		"frequency", updated.Frequency,
		"max_backups", updated.MaxBackups)

	return updated, nil
}

// LastError возвращает текст последней ошибки создания или восстановления
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) setLastError(err error) {
	m.logger.Error("Backup operation failed", "error", err)
	m.mu.Lock()
	m.lastErr = err.Error()
	m.mu.Unlock()
}

// find ищет backup среди записей пользователя; чужие backup не находятся
func (m *Manager) find(ctx context.Context, userID, id string) (*models.BackupInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	history, err := m.loadHistory(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(history, userID, id)
	if idx < 0 {
		return nil, ErrBackupNotFound
	}
	return history[idx], nil
}

func (m *Manager) trimLocked(ctx context.Context, userID string, limit int) (int, error) {
	history, err := m.loadHistory(ctx)
	if err != nil {
		return 0, err
	}
	trimmed, removed := trim(history, userID, limit)
	if removed == 0 {
		return 0, nil
	}
	if err := m.saveHistory(ctx, trimmed); err != nil {
		return 0, err
	}
	m.logger.Info("Old backups removed", "user_id", userID, "count", removed)
	return removed, nil
}

func (m *Manager) loadConfig(ctx context.Context, userID string) (models.BackupConfig, error) {
	configs, err := m.loadConfigs(ctx)
	if err != nil {
		return models.BackupConfig{}, err
	}
	cfg, ok := configs[userID]
	if !ok {
		return models.DefaultBackupConfig(), nil
	}
	return cfg, nil
}

// loadConfigs читает настройки всех пользователей, ключ - userID
func (m *Manager) loadConfigs(ctx context.Context) (map[string]models.BackupConfig, error) {
	data, err := m.kv.Get(ctx, storage.KeyBackupConfig)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return map[string]models.BackupConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read backup config: %w", err)
	}

	var configs map[string]models.BackupConfig
	if err := json.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal backup config: %w", err)
	}
	if configs == nil {
		configs = map[string]models.BackupConfig{}
	}
	return configs, nil
}

func (m *Manager) saveConfig(ctx context.Context, userID string, cfg models.BackupConfig) error {
	configs, err := m.loadConfigs(ctx)
	if err != nil {
		return err
	}
	configs[userID] = cfg

	data, err := json.Marshal(configs)
	if err != nil {
		return fmt.Errorf("failed to marshal backup config: %w", err)
	}
	if err := m.kv.Set(ctx, storage.KeyBackupConfig, data); err != nil {
		return fmt.Errorf("failed to save backup config: %w", err)
	}
	return nil
}

func (m *Manager) loadHistory(ctx context.Context) ([]*models.BackupInfo, error) {
	data, err := m.kv.Get(ctx, storage.KeyBackupHistory)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []*models.BackupInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read backup history: %w", err)
	}

	var history []*models.BackupInfo
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal backup history: %w", err)
	}
	return history, nil
}

func (m *Manager) saveHistory(ctx context.Context, history []*models.BackupInfo) error {
	data, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to marshal backup history: %w", err)
	}
	if err := m.kv.Set(ctx, storage.KeyBackupHistory, data); err != nil {
		return fmt.Errorf("failed to save backup history: %w", err)
	}
	return nil
}

func decode(info *models.BackupInfo) (*models.BackupSnapshot, error) {
	if info.Payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrIntegrity)
	}
	if err := crypto.VerifyChecksum([]byte(info.Payload), info.Checksum); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIntegrity, err)
	}

	var snapshot models.BackupSnapshot
	if err := json.Unmarshal([]byte(info.Payload), &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIntegrity, err)
	}
	if snapshot.Collections == nil {
		return nil, fmt.Errorf("%w: snapshot has no collections", ErrIntegrity)
	}
	return &snapshot, nil
}

// trim оставляет limit самых новых backup пользователя, записи других
// пользователей не трогаются
func trim(history []*models.BackupInfo, userID string, limit int) ([]*models.BackupInfo, int) {
	if limit <= 0 {
		return history, 0
	}

	kept := make([]*models.BackupInfo, 0, len(history))
	own, removed := 0, 0
	for _, info := range history {
		if info.UserID == userID {
			own++
			if own > limit {
				removed++
				continue
			}
		}
		kept = append(kept, info)
	}
	return kept, removed
}

func indexOf(history []*models.BackupInfo, userID, id string) int {
	for i, info := range history {
		if info.ID == id && info.UserID == userID {
			return i
		}
	}
	return -1
}
