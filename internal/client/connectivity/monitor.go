// Package connectivity tracks whether the remote store is reachable and
// notifies subscribers on online/offline transitions.
package connectivity

import (
	"log/slog"
	"sort"
	"sync"
)

// Monitor хранит текущее состояние сети и рассылает события переходов
type Monitor struct {
	logger      *slog.Logger
	subscribers map[uint64]func(online bool)

	mu     sync.Mutex
	nextID uint64
	online bool
}

// Subscription handle returned by Subscribe
type Subscription struct {
	monitor *Monitor
	once    sync.Once
	id      uint64
}

// New создает Monitor с начальным состоянием initial
func New(initial bool, logger *slog.Logger) *Monitor {
	return &Monitor{
		logger:      logger,
		online:      initial,
		subscribers: make(map[uint64]func(online bool)),
	}
}

// IsOnline возвращает текущее состояние
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// SetOnline is the host signal entry point. Callbacks fire once per
// transition; repeated identical values are ignored.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	callbacks := m.snapshotLocked()
	m.mu.Unlock()

	m.logger.Info("Connectivity changed", "online", online)

	// Колбэки вызываются вне блокировки, в порядке подписки
	for _, fn := range callbacks {
		fn(online)
	}
}

// Subscribe регистрирует onChange; вызывается на каждом переходе
func (m *Monitor) Subscribe(onChange func(online bool)) *Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.subscribers[m.nextID] = onChange

	return &Subscription{monitor: m, id: m.nextID}
}

// Release отменяет подписку; повторный вызов ничего не делает
func (s *Subscription) Release() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.monitor.mu.Lock()
		delete(s.monitor.subscribers, s.id)
		s.monitor.mu.Unlock()
	})
}

func (m *Monitor) snapshotLocked() []func(online bool) {
	ids := make([]uint64, 0, len(m.subscribers))
	for id := range m.subscribers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	callbacks := make([]func(online bool), 0, len(ids))
	for _, id := range ids {
		callbacks = append(callbacks, m.subscribers[id])
	}
	return callbacks
}
