// Package cli implements the moodkeeper command handlers on top of the
// client session.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/moodkeeper/internal/client/auth"
	"github.com/iudanet/moodkeeper/internal/client/backup"
	"github.com/iudanet/moodkeeper/internal/client/data"
	"github.com/iudanet/moodkeeper/internal/client/iocli"
	"github.com/iudanet/moodkeeper/internal/client/storage"
	"github.com/iudanet/moodkeeper/internal/client/sync"
	"github.com/iudanet/moodkeeper/internal/models"
)

//go:generate moq -out backupservice_mock.go . BackupService

// BackupService is the part of backup.Manager used by the CLI
type BackupService interface {
	CreateManual(ctx context.Context, userID string) (*models.BackupInfo, error)
	Restore(ctx context.Context, userID, id string) error
	DeleteBackup(ctx context.Context, userID, id string) error
	VerifyIntegrity(ctx context.Context, userID, id string) bool
	Export(ctx context.Context, userID, id string) (string, error)
	CleanupOldBackups(ctx context.Context, userID string) (int, error)
	History(ctx context.Context, userID string) ([]*models.BackupInfo, error)
	Config(ctx context.Context, userID string) (models.BackupConfig, error)
	UpdateConfig(ctx context.Context, userID string, updates ...backup.ConfigUpdate) (models.BackupConfig, error)
	LastError() string
}

//go:generate moq -out environment_mock.go . Environment

// Environment предоставляет состояние клиента, не относящееся к отдельным сервисам
type Environment interface {
	// Probe проверяет доступность сервера и обновляет монитор
	Probe(ctx context.Context) bool
	// Usage возвращает занятость локального хранилища
	Usage(ctx context.Context) (models.StorageUsage, error)
}

// Cli содержит зависимости обработчиков команд
type Cli struct {
	io          iocli.IO
	env         Environment
	authService auth.Service
	dataService data.Service
	syncService sync.Service
	backups     BackupService
}

// New создает Cli
func New(io iocli.IO, env Environment, authService auth.Service, dataService data.Service, syncService sync.Service, backups BackupService) *Cli {
	return &Cli{
		io:          io,
		env:         env,
		authService: authService,
		dataService: dataService,
		syncService: syncService,
		backups:     backups,
	}
}

// requireUser возвращает текущую сессию или понятную пользователю ошибку
func (c *Cli) requireUser(ctx context.Context) (*storage.AuthData, error) {
	user, err := c.authService.Restore(ctx)
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			return nil, fmt.Errorf("not authenticated. Please run 'moodkeeper login' first")
		}
		return nil, err
	}
	return user, nil
}
