package backup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/moodkeeper/internal/client/api"
	"github.com/iudanet/moodkeeper/internal/client/connectivity"
	"github.com/iudanet/moodkeeper/internal/client/storage"
	"github.com/iudanet/moodkeeper/internal/client/storage/boltdb"
	"github.com/iudanet/moodkeeper/internal/models"
)

type testEnv struct {
	kv       *boltdb.Storage
	remote   *api.RemoteStoreMock
	importer *ImporterMock
	exporter *ExporterMock
	monitor  *connectivity.Monitor
	manager  *Manager
	clock    time.Time
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	kv, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "backup.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	env := &testEnv{
		kv: kv,
		remote: &api.RemoteStoreMock{
			QueryFunc: func(ctx context.Context, collection string, filter models.Filter) ([]*models.Record, error) {
				if collection != models.CollectionMoodLogs {
					return nil, nil
				}
				return []*models.Record{{
					ID:         "srv-1",
					Collection: collection,
					UserID:     filter.UserID,
					Data:       json.RawMessage(`{"mood":6}`),
					CreatedAt:  time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
				}}, nil
			},
		},
		importer: &ImporterMock{
			ImportFunc: func(ctx context.Context, snapshot *models.BackupSnapshot) error { return nil },
		},
		exporter: &ExporterMock{},
		monitor:  connectivity.New(true, testLogger()),
		clock:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	env.manager = NewManager(kv, env.remote, env.monitor, env.importer, env.exporter, Options{}, testLogger())
	env.manager.now = func() time.Time { return env.clock }
	return env
}

func (e *testEnv) advance(d time.Duration) {
	e.clock = e.clock.Add(d)
}

func TestShouldCreateBackup_Boundaries(t *testing.T) {
	last := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		freq models.BackupFrequency
		now  time.Time
		want bool
	}{
		{name: "daily exactly 24h", freq: models.FrequencyDaily, now: last.Add(24 * time.Hour), want: true},
		{name: "daily 24h minus 1ms", freq: models.FrequencyDaily, now: last.Add(24*time.Hour - time.Millisecond), want: false},
		{name: "weekly 6 days", freq: models.FrequencyWeekly, now: last.Add(6 * 24 * time.Hour), want: false},
		{name: "weekly 7 days", freq: models.FrequencyWeekly, now: last.Add(7 * 24 * time.Hour), want: true},
		{name: "monthly 30 days", freq: models.FrequencyMonthly, now: last.Add(30 * 24 * time.Hour), want: true},
		{name: "unknown frequency", freq: "hourly", now: last.Add(365 * 24 * time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.BackupConfig{Frequency: tt.freq, LastBackup: &last}
			assert.Equal(t, tt.want, ShouldCreateBackup(cfg, tt.now))
		})
	}

	// Без lastBackup backup нужен всегда
	assert.True(t, ShouldCreateBackup(models.DefaultBackupConfig(), last))
}

func TestManager_CreateManual(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	info, err := env.manager.CreateManual(ctx, "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, info.ID)
	assert.Equal(t, "user-1", info.UserID)
	assert.Equal(t, models.BackupManual, info.Type)
	assert.Equal(t, models.SnapshotVersion, info.Version)
	assert.Equal(t, int64(len(info.Payload)), info.Size)
	assert.Len(t, info.Checksum, 64)
	assert.True(t, env.clock.Equal(info.Timestamp))

	var snap models.BackupSnapshot
	require.NoError(t, json.Unmarshal([]byte(info.Payload), &snap))
	assert.Equal(t, 1, snap.RecordCount())
	assert.Len(t, snap.Collections, len(models.DefaultCollections()))

	// Каждая коллекция запрошена с фильтром по пользователю
	calls := env.remote.QueryCalls()
	require.Len(t, calls, len(models.DefaultCollections()))
	for _, c := range calls {
		assert.Equal(t, "user-1", c.Filter.UserID)
	}

	assert.True(t, env.manager.VerifyIntegrity(ctx, "user-1", info.ID))
}

func TestManager_HistoryBound(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	var created []string
	for i := 0; i < 8; i++ {
		info, err := env.manager.CreateManual(ctx, "user-1")
		require.NoError(t, err)
		created = append(created, info.ID)
		env.advance(time.Minute)
	}

	history, err := env.manager.History(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, history, 7)

	// Новые в начале, самый старый удален
	for i, info := range history {
		assert.Equal(t, created[7-i], info.ID)
	}
	for i := 1; i < len(history); i++ {
		assert.True(t, history[i-1].Timestamp.After(history[i].Timestamp))
	}
}

func TestManager_CreateManual_RemoteFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.remote.QueryFunc = func(ctx context.Context, collection string, filter models.Filter) ([]*models.Record, error) {
		return nil, api.ErrTransient
	}

	_, err := env.manager.CreateManual(ctx, "user-1")
	require.ErrorIs(t, err, api.ErrTransient)

	history, err := env.manager.History(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.NotEmpty(t, env.manager.LastError())
}

func TestManager_CreateAutomatic_Gating(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.manager.UpdateConfig(ctx, "user-1", SetEnabled(false))
		require.NoError(t, err)

		info, err := env.manager.CreateAutomatic(ctx, "user-1")
		require.NoError(t, err)
		assert.Nil(t, info)
		assert.Empty(t, env.remote.QueryCalls())
	})

	t.Run("auto backup off", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.manager.UpdateConfig(ctx, "user-1", SetAutoBackup(false))
		require.NoError(t, err)

		info, err := env.manager.CreateAutomatic(ctx, "user-1")
		require.NoError(t, err)
		assert.Nil(t, info)
	})

	t.Run("offline", func(t *testing.T) {
		env := newTestEnv(t)
		env.monitor.SetOnline(false)

		info, err := env.manager.CreateAutomatic(ctx, "user-1")
		require.NoError(t, err)
		assert.Nil(t, info)
		assert.Empty(t, env.remote.QueryCalls())

		cfg, err := env.manager.Config(ctx, "user-1")
		require.NoError(t, err)
		assert.Nil(t, cfg.LastBackup)
	})

	t.Run("due then not due", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.manager.UpdateConfig(ctx, "user-1", SetFrequency(models.FrequencyDaily))
		require.NoError(t, err)

		info, err := env.manager.CreateAutomatic(ctx, "user-1")
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, models.BackupAutomatic, info.Type)

		cfg, err := env.manager.Config(ctx, "user-1")
		require.NoError(t, err)
		require.NotNil(t, cfg.LastBackup)
		require.NotNil(t, cfg.NextBackup)
		assert.True(t, env.clock.Equal(*cfg.LastBackup))
		assert.True(t, env.clock.Add(24*time.Hour).Equal(*cfg.NextBackup))

		env.advance(24*time.Hour - time.Millisecond)
		info, err = env.manager.CreateAutomatic(ctx, "user-1")
		require.NoError(t, err)
		assert.Nil(t, info)

		env.advance(time.Millisecond)
		info, err = env.manager.CreateAutomatic(ctx, "user-1")
		require.NoError(t, err)
		assert.NotNil(t, info)

		history, err := env.manager.History(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})
}

func TestManager_RestoreUnknownLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.manager.CreateManual(ctx, "user-1")
	require.NoError(t, err)
	require.NoError(t, env.kv.Set(ctx, storage.KeyPendingActions, []byte(`[]`)))
	require.NoError(t, env.kv.Set(ctx, storage.KeyOfflineCache, []byte(`{"records":[]}`)))

	before := make(map[string][]byte)
	for _, key := range storage.OwnedKeys() {
		v, err := env.kv.Get(ctx, key)
		if errors.Is(err, storage.ErrKeyNotFound) {
			continue
		}
		require.NoError(t, err)
		before[key] = v
	}

	err = env.manager.Restore(ctx, "user-1", "does-not-exist")
	assert.ErrorIs(t, err, ErrBackupNotFound)
	assert.Empty(t, env.importer.ImportCalls())

	for key, v := range before {
		after, err := env.kv.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, v, after, key)
	}
}

func TestManager_Restore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	info, err := env.manager.CreateManual(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, env.manager.Restore(ctx, "user-1", info.ID))
	require.Len(t, env.importer.ImportCalls(), 1)
	snap := env.importer.ImportCalls()[0].Snapshot
	assert.Equal(t, "user-1", snap.UserID)
	assert.Equal(t, 1, snap.RecordCount())

	env.importer.ImportFunc = func(ctx context.Context, snapshot *models.BackupSnapshot) error {
		return errors.New("remote unavailable")
	}
	err = env.manager.Restore(ctx, "user-1", info.ID)
	assert.ErrorContains(t, err, "remote unavailable")
}

// tamper портит payload backup прямо в хранилище
func tamper(t *testing.T, env *testEnv, fn func(info *models.BackupInfo)) {
	t.Helper()
	ctx := context.Background()

	data, err := env.kv.Get(ctx, storage.KeyBackupHistory)
	require.NoError(t, err)
	var history []*models.BackupInfo
	require.NoError(t, json.Unmarshal(data, &history))
	fn(history[0])
	data, err = json.Marshal(history)
	require.NoError(t, err)
	require.NoError(t, env.kv.Set(ctx, storage.KeyBackupHistory, data))
}

func TestManager_IntegrityDetection(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(info *models.BackupInfo)
	}{
		{name: "payload changed", mutate: func(info *models.BackupInfo) {
			info.Payload = strings.Replace(info.Payload, `"mood":6`, `"mood":1`, 1)
		}},
		{name: "payload truncated", mutate: func(info *models.BackupInfo) {
			info.Payload = info.Payload[:len(info.Payload)/2]
			info.Checksum = ""
		}},
		{name: "payload empty", mutate: func(info *models.BackupInfo) { info.Payload = "" }},
		{name: "not a snapshot", mutate: func(info *models.BackupInfo) {
			info.Payload = `{"version":"1.0"}`
			info.Checksum = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t)

			info, err := env.manager.CreateManual(ctx, "user-1")
			require.NoError(t, err)
			tamper(t, env, tt.mutate)

			assert.False(t, env.manager.VerifyIntegrity(ctx, "user-1", info.ID))

			err = env.manager.Restore(ctx, "user-1", info.ID)
			assert.ErrorIs(t, err, ErrIntegrity)
			assert.Empty(t, env.importer.ImportCalls())
		})
	}
}

func TestManager_VerifyUnknown(t *testing.T) {
	env := newTestEnv(t)
	assert.False(t, env.manager.VerifyIntegrity(context.Background(), "missing"))
}

func TestManager_DeleteBackup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	info, err := env.manager.CreateManual(ctx, "user-1")
	require.NoError(t, err)

	require.NoError(t, env.manager.DeleteBackup(ctx, "user-1", info.ID))
	assert.ErrorIs(t, env.manager.DeleteBackup(ctx, "user-1", info.ID), ErrBackupNotFound)

	history, err := env.manager.History(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestManager_ScopedByUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	alice, err := env.manager.CreateManual(ctx, "user-1")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		env.advance(time.Second)
		_, err = env.manager.CreateManual(ctx, "user-2")
		require.NoError(t, err)
	}

	history, err := env.manager.History(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, history, 3)
	for _, info := range history {
		assert.Equal(t, "user-2", info.UserID)
	}

	// чужой backup не виден ни для одной операции
	assert.ErrorIs(t, env.manager.Restore(ctx, "user-2", alice.ID), ErrBackupNotFound)
	assert.ErrorIs(t, env.manager.DeleteBackup(ctx, "user-2", alice.ID), ErrBackupNotFound)
	assert.False(t, env.manager.VerifyIntegrity(ctx, "user-2", alice.ID))
	_, err = env.manager.Export(ctx, "user-2", alice.ID)
	assert.ErrorIs(t, err, ErrBackupNotFound)
	assert.Empty(t, env.importer.ImportCalls())

	// настройки и обрезка истории одного пользователя не влияют на другого
	_, err = env.manager.UpdateConfig(ctx, "user-2", SetMaxBackups(1), SetFrequency(models.FrequencyDaily))
	require.NoError(t, err)

	cfg, err := env.manager.Config(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBackupConfig().MaxBackups, cfg.MaxBackups)
	assert.Equal(t, models.DefaultBackupConfig().Frequency, cfg.Frequency)

	history, err = env.manager.History(ctx, "user-2")
	require.NoError(t, err)
	assert.Len(t, history, 1)

	history, err = env.manager.History(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, alice.ID, history[0].ID)
	assert.True(t, env.manager.VerifyIntegrity(ctx, "user-1", alice.ID))
}

func TestManager_UpdateConfig(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		_, err := env.manager.CreateManual(ctx, "user-1")
		require.NoError(t, err)
		env.advance(time.Second)
	}

	// Ошибка в одном обновлении отменяет все
	_, err := env.manager.UpdateConfig(ctx, "user-1", SetEnabled(false), SetMaxBackups(0))
	assert.ErrorIs(t, err, ErrInvalidConfig)
	cfg, err := env.manager.Config(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)

	_, err = env.manager.UpdateConfig(ctx, "user-1", SetFrequency("hourly"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	// Уменьшение MaxBackups сразу обрезает историю
	cfg, err = env.manager.UpdateConfig(ctx, "user-1", SetMaxBackups(2), SetFrequency(models.FrequencyMonthly))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxBackups)
	assert.Equal(t, models.FrequencyMonthly, cfg.Frequency)

	history, err := env.manager.History(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, history, 2)

	// Cleanup идемпотентен
	removed, err := env.manager.CleanupOldBackups(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestManager_UpdateConfigRecomputesNextBackup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	info, err := env.manager.CreateAutomatic(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, info)

	cfg, err := env.manager.UpdateConfig(ctx, "user-1", SetFrequency(models.FrequencyDaily))
	require.NoError(t, err)
	require.NotNil(t, cfg.NextBackup)
	assert.True(t, info.Timestamp.Add(24*time.Hour).Equal(*cfg.NextBackup))
}

func TestManager_Export(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	info, err := env.manager.CreateManual(ctx, "user-1")
	require.NoError(t, err)

	env.exporter.ExportFunc = func(ctx context.Context, filename string, payload []byte) (string, error) {
		return "/exports/" + filename, nil
	}

	location, err := env.manager.Export(ctx, "user-1", info.ID)
	require.NoError(t, err)
	assert.Equal(t, "/exports/mood-log-backup-2026-03-01.json", location)

	calls := env.exporter.ExportCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, info.Payload, string(calls[0].Payload))

	_, err = env.manager.Export(ctx, "user-1", "missing")
	assert.ErrorIs(t, err, ErrBackupNotFound)
}

func TestFileExporter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	exp := NewFileExporter(dir)

	path, err := exp.Export(context.Background(), "mood-log-backup-2026-03-01.json", []byte(`{"ok":true}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mood-log-backup-2026-03-01.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), st.Mode().Perm())
}

func TestRemoteImporter(t *testing.T) {
	var created atomic.Int32
	remote := &api.RemoteStoreMock{
		CreateFunc: func(ctx context.Context, collection string, draft *models.Record) (*models.Record, error) {
			created.Add(1)
			if collection == models.CollectionSessions {
				return nil, api.ErrTransient
			}
			return draft, nil
		},
	}
	imp := NewRemoteImporter(remote, testLogger())

	createdAt := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	snap := &models.BackupSnapshot{
		Collections: map[string][]*models.Record{
			models.CollectionNotifications: {{ID: "n1", Data: json.RawMessage(`{}`)}},
			models.CollectionMoodLogs:      {{ID: "m1", Data: json.RawMessage(`{"mood":2}`), CreatedAt: createdAt}},
		},
	}
	require.NoError(t, imp.Import(context.Background(), snap))

	calls := remote.CreateCalls()
	require.Len(t, calls, 2)
	// коллекции в алфавитном порядке, ID не переносится
	assert.Equal(t, models.CollectionMoodLogs, calls[0].Collection)
	assert.Empty(t, calls[0].Draft.ID)
	assert.True(t, createdAt.Equal(calls[0].Draft.CreatedAt))
	assert.Equal(t, models.CollectionNotifications, calls[1].Collection)

	snap.Collections[models.CollectionSessions] = []*models.Record{{ID: "s1"}}
	err := imp.Import(context.Background(), snap)
	assert.ErrorIs(t, err, api.ErrTransient)
}
