package backup

import (
	"fmt"

	"github.com/iudanet/moodkeeper/internal/models"
)

// ConfigUpdate изменяет одну секцию BackupConfig с проверкой значения
type ConfigUpdate func(cfg *models.BackupConfig) error

// SetEnabled включает или выключает резервное копирование
func SetEnabled(enabled bool) ConfigUpdate {
	return func(cfg *models.BackupConfig) error {
		cfg.Enabled = enabled
		return nil
	}
}

// SetAutoBackup включает или выключает автоматическое создание backup
func SetAutoBackup(auto bool) ConfigUpdate {
	return func(cfg *models.BackupConfig) error {
		cfg.AutoBackup = auto
		return nil
	}
}

// SetFrequency задает периодичность автоматических backup
func SetFrequency(freq models.BackupFrequency) ConfigUpdate {
	return func(cfg *models.BackupConfig) error {
		if _, err := freq.Period(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		cfg.Frequency = freq
		return nil
	}
}

// SetMaxBackups задает максимальный размер истории backup
func SetMaxBackups(n int) ConfigUpdate {
	return func(cfg *models.BackupConfig) error {
		if n < 1 {
			return fmt.Errorf("%w: max backups must be at least 1, got %d", ErrInvalidConfig, n)
		}
		cfg.MaxBackups = n
		return nil
	}
}
