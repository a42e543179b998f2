package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/moodkeeper/internal/client/auth"
	"github.com/iudanet/moodkeeper/internal/client/backup"
	"github.com/iudanet/moodkeeper/internal/client/data"
	"github.com/iudanet/moodkeeper/internal/client/iocli"
	"github.com/iudanet/moodkeeper/internal/client/storage"
	"github.com/iudanet/moodkeeper/internal/client/sync"
	"github.com/iudanet/moodkeeper/internal/models"
)

// testCli собирает Cli на моках и накапливает вывод
type testCli struct {
	cli     *Cli
	auth    *auth.ServiceMock
	data    *data.ServiceMock
	sync    *sync.ServiceMock
	backups *BackupServiceMock
	env     *EnvironmentMock
	output  *strings.Builder
	inputs  []string
}

func newTestCli(online bool) *testCli {
	out := &strings.Builder{}
	tc := &testCli{
		output: out,
		auth: &auth.ServiceMock{
			RestoreFunc: func(ctx context.Context) (*storage.AuthData, error) {
				return &storage.AuthData{
					Username:  "alice",
					UserID:    "user-1",
					ExpiresAt: time.Now().Add(time.Hour).Unix(),
				}, nil
			},
		},
		data:    &data.ServiceMock{},
		sync:    &sync.ServiceMock{},
		backups: &BackupServiceMock{},
		env: &EnvironmentMock{
			ProbeFunc: func(ctx context.Context) bool { return online },
		},
	}

	io := &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			fmt.Fprintln(out, a...)
		},
		PrintfFunc: func(format string, a ...any) {
			fmt.Fprintf(out, format, a...)
		},
		WriteFunc: func(p []byte) (int, error) {
			return out.Write(p)
		},
		ReadInputFunc: func(prompt string) (string, error) {
			return tc.next()
		},
		ReadPasswordFunc: func(prompt string) (string, error) {
			return tc.next()
		},
	}

	tc.cli = New(io, tc.env, tc.auth, tc.data, tc.sync, tc.backups)
	return tc
}

func (tc *testCli) next() (string, error) {
	if len(tc.inputs) == 0 {
		return "", errors.New("no more input")
	}
	v := tc.inputs[0]
	tc.inputs = tc.inputs[1:]
	return v, nil
}

func (tc *testCli) notAuthenticated() {
	tc.auth.RestoreFunc = func(ctx context.Context) (*storage.AuthData, error) {
		return nil, auth.ErrNotAuthenticated
	}
}

func TestCli_runRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tc := newTestCli(true)
		tc.inputs = []string{"alice", "password123", "password123"}
		tc.auth.RegisterFunc = func(ctx context.Context, username, password string) (string, error) {
			return "user-1", nil
		}

		require.NoError(t, tc.cli.runRegister(context.Background()))
		require.Len(t, tc.auth.RegisterCalls(), 1)
		assert.Equal(t, "alice", tc.auth.RegisterCalls()[0].Username)
		assert.Contains(t, tc.output.String(), "User ID: user-1")
	})

	t.Run("password mismatch", func(t *testing.T) {
		tc := newTestCli(true)
		tc.inputs = []string{"alice", "password123", "password124"}

		err := tc.cli.runRegister(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "do not match")
		assert.Empty(t, tc.auth.RegisterCalls())
	})
}

func TestCli_runLogin(t *testing.T) {
	tc := newTestCli(true)
	tc.inputs = []string{"alice", "password123"}
	tc.auth.LoginFunc = func(ctx context.Context, username, password string) (*storage.AuthData, error) {
		return &storage.AuthData{Username: username, UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour).Unix()}, nil
	}

	require.NoError(t, tc.cli.runLogin(context.Background()))
	assert.Contains(t, tc.output.String(), "Login successful")
	assert.Equal(t, "password123", tc.auth.LoginCalls()[0].Password)
}

func TestCli_runMoodAdd(t *testing.T) {
	tests := []struct {
		name       string
		offline    bool
		wantOutput string
	}{
		{name: "online", wantOutput: "Mood entry saved (srv-1)"},
		{name: "offline", offline: true, wantOutput: "saved offline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestCli(!tt.offline)
			tc.data.AddMoodEntryFunc = func(ctx context.Context, userID string, entry *models.MoodEntry) (*models.Record, error) {
				id := "srv-1"
				if tt.offline {
					id = "offline_1"
				}
				return &models.Record{ID: id, IsOffline: tt.offline}, nil
			}

			err := tc.cli.runMoodAdd(context.Background(), 7, "walked", []string{"outdoor"})
			require.NoError(t, err)

			require.Len(t, tc.data.AddMoodEntryCalls(), 1)
			call := tc.data.AddMoodEntryCalls()[0]
			assert.Equal(t, "user-1", call.UserID)
			assert.Equal(t, 7, call.Entry.Mood)
			assert.Len(t, tc.env.ProbeCalls(), 1)
			assert.Contains(t, tc.output.String(), tt.wantOutput)
		})
	}
}

func TestCli_RequiresLogin(t *testing.T) {
	tc := newTestCli(true)
	tc.notAuthenticated()

	err := tc.cli.runMoodAdd(context.Background(), 5, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "moodkeeper login")

	assert.Error(t, tc.cli.runSync(context.Background()))
	assert.Error(t, tc.cli.runBackupCreate(context.Background()))
	assert.Empty(t, tc.data.AddMoodEntryCalls())
}

func TestCli_runMoodList(t *testing.T) {
	tc := newTestCli(true)
	recordedAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)
	tc.data.ListFunc = func(ctx context.Context, collection string, filter models.Filter) ([]*models.Record, error) {
		return []*models.Record{
			{ID: "abcdef123456", Data: []byte(`{"mood":8,"note":"sunny","tags":["walk","friends"],"recorded_at":"` + recordedAt.Format(time.RFC3339) + `"}`)},
			{ID: "offline_x", IsOffline: true, CreatedAt: recordedAt, Data: []byte(`{"mood":3}`)},
		}, nil
	}

	require.NoError(t, tc.cli.runMoodList(context.Background(), 24*time.Hour, 10))

	call := tc.data.ListCalls()[0]
	assert.Equal(t, models.CollectionMoodLogs, call.Collection)
	assert.Equal(t, "user-1", call.Filter.UserID)
	assert.Equal(t, 10, call.Filter.Limit)
	assert.False(t, call.Filter.Since.IsZero())

	out := tc.output.String()
	assert.Contains(t, out, "abcdef12  2026-03-01 09:30  mood  8/10  sunny  #walk #friends")
	assert.Contains(t, out, "mood  3/10  [offline]")
	assert.Contains(t, out, "Total: 2")
}

func TestCli_runMoodDelete(t *testing.T) {
	tc := newTestCli(false)
	tc.data.DeleteFunc = func(ctx context.Context, userID, collection, id string) error {
		return nil
	}

	require.NoError(t, tc.cli.runMoodDelete(context.Background(), "srv-1"))
	assert.Equal(t, "srv-1", tc.data.DeleteCalls()[0].Id)
	assert.Equal(t, "user-1", tc.data.DeleteCalls()[0].UserID)
}

func TestCli_runSync(t *testing.T) {
	t.Run("offline", func(t *testing.T) {
		tc := newTestCli(false)

		err := tc.cli.runSync(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unreachable")
		assert.Empty(t, tc.sync.ProcessCalls())
	})

	t.Run("pass with retries", func(t *testing.T) {
		tc := newTestCli(true)
		tc.sync.ProcessFunc = func(ctx context.Context) (*sync.Result, error) {
			return &sync.Result{Confirmed: 2, Retried: 1, Pending: 1}, nil
		}

		require.NoError(t, tc.cli.runSync(context.Background()))
		out := tc.output.String()
		assert.Contains(t, out, "Confirmed:          2")
		assert.Contains(t, out, "Will retry:         1")
		assert.Contains(t, out, "still pending")
	})

	t.Run("all synchronized", func(t *testing.T) {
		tc := newTestCli(true)
		tc.sync.ProcessFunc = func(ctx context.Context) (*sync.Result, error) {
			return &sync.Result{Confirmed: 3}, nil
		}

		require.NoError(t, tc.cli.runSync(context.Background()))
		assert.Contains(t, tc.output.String(), "All local changes are synchronized")
	})
}

func TestCli_runStatus(t *testing.T) {
	tc := newTestCli(false)
	tc.sync.StatusFunc = func(ctx context.Context) sync.Status {
		return sync.Status{Pending: 4, LastError: "server error (503): unavailable"}
	}
	tc.env.UsageFunc = func(ctx context.Context) (models.StorageUsage, error) {
		return models.StorageUsage{Used: 4500 * 1024, Available: 620 * 1024, Percentage: 87.9}, nil
	}
	tc.backups.ConfigFunc = func(ctx context.Context, userID string) (models.BackupConfig, error) {
		return models.DefaultBackupConfig(), nil
	}
	tc.backups.HistoryFunc = func(ctx context.Context, userID string) ([]*models.BackupInfo, error) {
		return []*models.BackupInfo{{ID: "b1"}, {ID: "b2"}}, nil
	}
	tc.backups.LastErrorFunc = func() string { return "" }

	require.NoError(t, tc.cli.runStatus(context.Background()))

	out := tc.output.String()
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "offline")
	assert.Contains(t, out, "4 action(s)")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "server error (503)")
	assert.Contains(t, out, "4.4 MiB used")
	assert.Contains(t, out, "full")
	assert.Contains(t, out, "2 stored, weekly")
}

func TestCli_runBackupCreate(t *testing.T) {
	tc := newTestCli(true)
	tc.backups.CreateManualFunc = func(ctx context.Context, userID string) (*models.BackupInfo, error) {
		return &models.BackupInfo{ID: "backup-1", Type: models.BackupManual, Size: 2048, Timestamp: time.Now()}, nil
	}

	require.NoError(t, tc.cli.runBackupCreate(context.Background()))
	assert.Equal(t, "user-1", tc.backups.CreateManualCalls()[0].UserID)
	out := tc.output.String()
	assert.Contains(t, out, "backup-1")
	assert.Contains(t, out, "manual")
	assert.Contains(t, out, "2.0 KiB")
}

func TestCli_runBackupRestore(t *testing.T) {
	tc := newTestCli(true)
	tc.backups.RestoreFunc = func(ctx context.Context, userID, id string) error {
		return backup.ErrBackupNotFound
	}

	err := tc.cli.runBackupRestore(context.Background(), "missing")
	assert.ErrorIs(t, err, backup.ErrBackupNotFound)
}

func TestCli_runBackupVerify(t *testing.T) {
	tc := newTestCli(true)
	tc.backups.VerifyIntegrityFunc = func(ctx context.Context, userID, id string) bool {
		return id == "good"
	}

	require.NoError(t, tc.cli.runBackupVerify(context.Background(), "good"))
	assert.Error(t, tc.cli.runBackupVerify(context.Background(), "bad"))
}

func TestCli_runBackupConfig(t *testing.T) {
	t.Run("show", func(t *testing.T) {
		tc := newTestCli(true)
		tc.backups.ConfigFunc = func(ctx context.Context, userID string) (models.BackupConfig, error) {
			return models.DefaultBackupConfig(), nil
		}

		require.NoError(t, tc.cli.runBackupConfig(context.Background(), nil))
		assert.Contains(t, tc.output.String(), "Frequency:   weekly")
		assert.Empty(t, tc.backups.UpdateConfigCalls())
	})

	t.Run("update", func(t *testing.T) {
		tc := newTestCli(true)
		tc.backups.UpdateConfigFunc = func(ctx context.Context, userID string, updates ...backup.ConfigUpdate) (models.BackupConfig, error) {
			cfg := models.DefaultBackupConfig()
			for _, u := range updates {
				require.NoError(t, u(&cfg))
			}
			return cfg, nil
		}

		updates := []backup.ConfigUpdate{backup.SetFrequency(models.FrequencyDaily), backup.SetMaxBackups(3)}
		require.NoError(t, tc.cli.runBackupConfig(context.Background(), updates))
		require.Len(t, tc.backups.UpdateConfigCalls(), 1)
		assert.Equal(t, "user-1", tc.backups.UpdateConfigCalls()[0].UserID)
		assert.Len(t, tc.backups.UpdateConfigCalls()[0].Updates, 2)
		out := tc.output.String()
		assert.Contains(t, out, "Frequency:   daily")
		assert.Contains(t, out, "Max backups: 3")
	})
}
