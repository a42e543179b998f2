// Package session wires the offline-first engine for one client process:
// one bbolt store and one API client shared by every component.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gosync "sync"

	"github.com/iudanet/moodkeeper/internal/client/api"
	"github.com/iudanet/moodkeeper/internal/client/auth"
	"github.com/iudanet/moodkeeper/internal/client/backup"
	"github.com/iudanet/moodkeeper/internal/client/budget"
	"github.com/iudanet/moodkeeper/internal/client/cache"
	"github.com/iudanet/moodkeeper/internal/client/connectivity"
	"github.com/iudanet/moodkeeper/internal/client/data"
	"github.com/iudanet/moodkeeper/internal/client/queue"
	"github.com/iudanet/moodkeeper/internal/client/storage"
	"github.com/iudanet/moodkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/moodkeeper/internal/client/sync"
	"github.com/iudanet/moodkeeper/internal/config"
	"github.com/iudanet/moodkeeper/internal/models"
)

// Session владеет всеми компонентами клиента на время жизни процесса
type Session struct {
	Store   *boltdb.Storage
	API     *api.Client
	Monitor *connectivity.Monitor
	Prober  *connectivity.Prober
	Cache   *cache.Store
	Queue   *queue.Queue
	Budget  *budget.Manager
	Sync    sync.Service
	Backups *backup.Manager
	Data    data.Service
	Auth    auth.Service

	logger *slog.Logger

	mu        gosync.Mutex
	cfg       config.BackupConfig
	runCtx    context.Context
	cancel    context.CancelFunc
	wg        gosync.WaitGroup
	scheduler *backup.Scheduler
	userID    string
	started   bool
	closed    bool
}

// New открывает локальное хранилище и собирает компоненты. Фоновые задачи
// не запускаются до вызова Start.
func New(ctx context.Context, cfg *config.ClientConfig, logger *slog.Logger) (*Session, error) {
	store, err := boltdb.New(ctx, cfg.DBPath, boltdb.WithQuota(cfg.StorageQuota))
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	apiClient := api.NewClient(cfg.ServerURL)
	monitor := connectivity.New(false, logger.With("component", "connectivity"))
	recordCache := cache.NewStore(store, apiClient, monitor, logger.With("component", "cache"))
	actionQueue := queue.New(store, logger.With("component", "queue"))
	budgetManager := budget.NewManager(store, cfg.StorageQuota, logger.With("component", "budget"))
	authService := auth.NewService(apiClient, store, logger.With("component", "auth"))

	syncService := sync.NewService(apiClient, actionQueue, recordCache, monitor, authService, sync.Options{
		Retry: sync.RetryPolicy{
			MaxRetries:        cfg.Sync.MaxRetries,
			PerAttemptTimeout: cfg.Sync.PerAttemptTimeout,
		},
		Retention: cfg.Sync.Retention,
	}, logger.With("component", "sync"))

	backups := backup.NewManager(
		store,
		apiClient,
		monitor,
		backup.NewRemoteImporter(apiClient, logger.With("component", "backup")),
		backup.NewFileExporter(cfg.Backup.ExportDir),
		backup.Options{Collections: cfg.Backup.Collections},
		logger.With("component", "backup"),
	)

	return &Session{
		Store:   store,
		API:     apiClient,
		Monitor: monitor,
		Prober:  connectivity.NewProber(apiClient, monitor, cfg.Sync.ProbeInterval, logger.With("component", "prober")),
		Cache:   recordCache,
		Queue:   actionQueue,
		Budget:  budgetManager,
		Sync:    syncService,
		Backups: backups,
		Data:    data.NewService(apiClient, recordCache, actionQueue, budgetManager, monitor, logger.With("component", "data")),
		Auth:    authService,
		logger:  logger,
		cfg:     cfg.Backup,
	}, nil
}

// CurrentUser восстанавливает сохраненную сессию пользователя
func (s *Session) CurrentUser(ctx context.Context) (*storage.AuthData, error) {
	return s.Auth.Restore(ctx)
}

// Probe выполняет одну проверку доступности сервера
func (s *Session) Probe(ctx context.Context) bool {
	return s.Prober.Probe(ctx)
}

// Usage возвращает занятость локального хранилища
func (s *Session) Usage(ctx context.Context) (models.StorageUsage, error) {
	return s.Budget.Usage(ctx)
}

// Start запускает периодическую проверку связи, синхронизацию при
// восстановлении связи и (если включен) планировщик backup.
func (s *Session) Start(ctx context.Context) error {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("session is closed")
	}
	if s.started {
		return nil
	}
	s.started = true
	s.userID = user.UserID
	s.runCtx, s.cancel = context.WithCancel(ctx)

	s.Sync.Start(s.runCtx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Prober.Run(s.runCtx)
	}()

	s.startSchedulerLocked()

	s.logger.Info("Session started", "user_id", user.UserID)
	return nil
}

// ApplyBackupSchedule применяет новые настройки планировщика к запущенной сессии
func (s *Session) ApplyBackupSchedule(cfg config.BackupConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.Scheduler == cfg.Scheduler && s.cfg.CheckInterval == cfg.CheckInterval {
		s.cfg = cfg
		return
	}
	s.cfg = cfg
	if !s.started || s.closed {
		return
	}

	s.stopSchedulerLocked()
	s.startSchedulerLocked()
	s.logger.Info("Backup schedule applied", "enabled", cfg.Scheduler, "interval", cfg.CheckInterval)
}

// BackupState возвращает состояние планировщика backup
func (s *Session) BackupState(ctx context.Context) (backup.State, error) {
	s.mu.Lock()
	scheduler := s.scheduler
	s.mu.Unlock()

	if scheduler == nil {
		return backup.StateDisabled, nil
	}
	return scheduler.State(ctx)
}

// Close останавливает фоновые задачи в обратном порядке и закрывает хранилище
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.stopSchedulerLocked()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	s.Sync.Close()

	if err := s.Store.Close(); err != nil {
		return fmt.Errorf("failed to close local storage: %w", err)
	}
	s.logger.Debug("Session closed")
	return nil
}

func (s *Session) startSchedulerLocked() {
	if !s.cfg.Scheduler {
		return
	}
	s.scheduler = backup.NewScheduler(s.Backups, s.userID, s.cfg.CheckInterval, s.logger.With("component", "scheduler"))
	s.scheduler.Start(s.runCtx)
}

func (s *Session) stopSchedulerLocked() {
	if s.scheduler == nil {
		return
	}
	s.scheduler.Stop()
	s.scheduler = nil
}
