package backup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_StartCreatesDueBackup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	// реальные часы: тикер срабатывает многократно, но backup создается один раз за период
	env.manager.now = time.Now

	s := NewScheduler(env.manager, "user-1", 10*time.Millisecond, testLogger())
	s.Start(ctx)
	s.Start(ctx) // повторный Start ничего не делает

	require.Eventually(t, func() bool {
		history, err := env.manager.History(ctx, "user-1")
		return err == nil && len(history) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	s.Stop()
	s.Stop()

	history, err := env.manager.History(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, history, 1)

	state, err := s.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, state)
}

func TestScheduler_State(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	s := NewScheduler(env.manager, "user-1", 0, testLogger())
	assert.Equal(t, DefaultCheckInterval, s.interval)

	state, err := s.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateDue, state)

	s.RunOnce(ctx)
	state, err = s.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, state)

	_, err = env.manager.UpdateConfig(ctx, "user-1", SetAutoBackup(false))
	require.NoError(t, err)
	state, err = s.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateDisabled, state)

	// Ручное создание доступно при выключенном расписании
	_, err = env.manager.CreateManual(ctx, "user-1")
	require.NoError(t, err)
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	env := newTestEnv(t)
	s := NewScheduler(env.manager, "user-1", time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	// Stop после отмены контекста не блокируется
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
