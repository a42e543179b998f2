package connectivity

import (
	"context"
	"log/slog"
	"time"
)

// DefaultProbeInterval интервал опроса удаленного хранилища по умолчанию
const DefaultProbeInterval = 30 * time.Second

//go:generate moq -out healthchecker_mock.go . HealthChecker

// HealthChecker reports whether the remote store answers
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Prober периодически опрашивает HealthChecker и передает результат в Monitor
type Prober struct {
	checker  HealthChecker
	monitor  *Monitor
	logger   *slog.Logger
	interval time.Duration
	timeout  time.Duration
}

// NewProber создает Prober; interval <= 0 заменяется на DefaultProbeInterval
func NewProber(checker HealthChecker, monitor *Monitor, interval time.Duration, logger *slog.Logger) *Prober {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	timeout := interval / 2
	if timeout > 10*time.Second {
		timeout = 10 * time.Second
	}
	return &Prober{
		checker:  checker,
		monitor:  monitor,
		logger:   logger,
		interval: interval,
		timeout:  timeout,
	}
}

// Probe выполняет одну проверку и обновляет Monitor
func (p *Prober) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.checker.Health(ctx)
	if err != nil {
		p.logger.Debug("Health probe failed", "error", err)
	}
	online := err == nil
	p.monitor.SetOnline(online)
	return online
}

// Run probes immediately and then on every tick until ctx is cancelled.
func (p *Prober) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Probe(ctx)
		}
	}
}
