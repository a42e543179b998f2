package backup

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultCheckInterval как часто планировщик проверяет расписание
const DefaultCheckInterval = time.Hour

// State состояние планировщика автоматических backup
type State string

const (
	StateDisabled State = "disabled"
	StateIdle     State = "idle"
	StateDue      State = "due"
	StateRunning  State = "running"
)

// Scheduler periodically calls Manager.CreateAutomatic for one user.
type Scheduler struct {
	manager  *Manager
	logger   *slog.Logger
	stopCh   chan struct{}
	done     chan struct{}
	userID   string
	interval time.Duration

	mu      sync.Mutex
	running bool
	started bool
}

// NewScheduler создает планировщик; interval <= 0 заменяется на DefaultCheckInterval
func NewScheduler(manager *Manager, userID string, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Scheduler{
		manager:  manager,
		logger:   logger,
		userID:   userID,
		interval: interval,
	}
}

// Start checks the schedule immediately and then on every tick until Stop
// or ctx cancellation. Calling Start on a started scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	stopCh, done := s.stopCh, s.done
	s.mu.Unlock()

	s.logger.Info("Backup scheduler started", "interval", s.interval)

	go func() {
		defer close(done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.RunOnce(ctx)
		for {
			select {
			case <-ticker.C:
				s.RunOnce(ctx)
			case <-stopCh:
				s.logger.Info("Backup scheduler stopped")
				return
			case <-ctx.Done():
				s.logger.Info("Backup scheduler context cancelled")
				return
			}
		}
	}()
}

// Stop stops the scheduler and waits for a running check. Safe to call twice.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	close(s.stopCh)
	done := s.done
	s.mu.Unlock()

	<-done
}

// RunOnce выполняет одну проверку расписания
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.setRunning(true)
	defer s.setRunning(false)

	info, err := s.manager.CreateAutomatic(ctx, s.userID)
	if err != nil {
		s.logger.Error("Automatic backup failed", "error", err)
		return
	}
	if info != nil {
		s.logger.Info("Automatic backup created", "backup_id", info.ID, "size", info.Size)
	}
}

// State вычисляет текущее состояние по настройкам и расписанию
func (s *Scheduler) State(ctx context.Context) (State, error) {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if running {
		return StateRunning, nil
	}

	cfg, err := s.manager.Config(ctx, s.userID)
	if err != nil {
		return "", err
	}
	if !cfg.Enabled || !cfg.AutoBackup {
		return StateDisabled, nil
	}
	if ShouldCreateBackup(cfg, s.manager.now()) {
		return StateDue, nil
	}
	return StateIdle, nil
}

func (s *Scheduler) setRunning(running bool) {
	s.mu.Lock()
	s.running = running
	s.mu.Unlock()
}
