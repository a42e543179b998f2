package models

import (
	"fmt"
	"time"
)

// BackupType способ создания backup
type BackupType string

const (
	BackupManual    BackupType = "manual"
	BackupAutomatic BackupType = "automatic"
)

// BackupFrequency периодичность автоматических backup
type BackupFrequency string

const (
	FrequencyDaily   BackupFrequency = "daily"
	FrequencyWeekly  BackupFrequency = "weekly"
	FrequencyMonthly BackupFrequency = "monthly"
)

// Period returns the interval between automatic backups.
// Monthly is approximated as 30 days.
func (f BackupFrequency) Period() (time.Duration, error) {
	switch f {
	case FrequencyDaily:
		return 24 * time.Hour, nil
	case FrequencyWeekly:
		return 7 * 24 * time.Hour, nil
	case FrequencyMonthly:
		return 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown backup frequency: %q", f)
	}
}

// SnapshotVersion версия формата BackupSnapshot
const SnapshotVersion = "1.0"

// BackupInfo описывает один созданный backup. После создания не изменяется,
// может быть только удален.
type BackupInfo struct {
	Timestamp time.Time  `json:"timestamp"` // Timestamp момент создания
	ID        string     `json:"id"`        // ID уникальный идентификатор backup
	UserID    string     `json:"user_id"`   // UserID владелец данных
	Type      BackupType `json:"type"`      // Type manual / automatic
	Version   string     `json:"version"`   // Version версия формата payload
	Checksum  string     `json:"checksum"`  // Checksum SHA-256 от payload (hex)
	Payload   string     `json:"payload"`   // Payload сериализованный BackupSnapshot
	Size      int64      `json:"size"`      // Size размер payload в байтах
}

// BackupSnapshot is the structure serialized into BackupInfo.Payload.
type BackupSnapshot struct {
	CreatedAt   time.Time            `json:"created_at"`
	Collections map[string][]*Record `json:"collections"`
	Version     string               `json:"version"`
	UserID      string               `json:"user_id"`
}

// RecordCount returns the total number of records across all collections.
func (s *BackupSnapshot) RecordCount() int {
	n := 0
	for _, records := range s.Collections {
		n += len(records)
	}
	return n
}

// BackupConfig настройки автоматического резервного копирования (одна на пользователя)
type BackupConfig struct {
	LastBackup *time.Time      `json:"last_backup,omitempty"`
	NextBackup *time.Time      `json:"next_backup,omitempty"`
	Frequency  BackupFrequency `json:"frequency"`
	MaxBackups int             `json:"max_backups"`
	Enabled    bool            `json:"enabled"`
	AutoBackup bool            `json:"auto_backup"`
}

// DefaultBackupConfig возвращает настройки по умолчанию
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{
		Enabled:    true,
		Frequency:  FrequencyWeekly,
		MaxBackups: 7,
		AutoBackup: true,
	}
}

// StorageUsage describes local durable storage consumption.
type StorageUsage struct {
	Used       int64   `json:"used"`
	Available  int64   `json:"available"`
	Percentage float64 `json:"percentage"`
}
