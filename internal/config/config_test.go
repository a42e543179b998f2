package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "moodkeeper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadClient_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	v, err := NewViper(ClientEnvPrefix, "", SetClientDefaults)
	require.NoError(t, err)

	cfg, err := LoadClient(v)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, int64(5*1024*1024), cfg.StorageQuota)
	assert.Equal(t, 3, cfg.Sync.MaxRetries)
	assert.Equal(t, 7*24*time.Hour, cfg.Sync.Retention)
	assert.Equal(t, time.Hour, cfg.Backup.CheckInterval)
	assert.Len(t, cfg.Backup.Collections, 4)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadClient_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
server_url: http://portal.local:9000
sync:
  max_retries: 5
  probe_interval: 10s
backup:
  collections: [moodLogs]
log:
  level: debug
`)
	t.Setenv("MOODKEEPER_DB_PATH", "/tmp/override.db")

	v, err := NewViper(ClientEnvPrefix, path, SetClientDefaults)
	require.NoError(t, err)

	cfg, err := LoadClient(v)
	require.NoError(t, err)
	assert.Equal(t, "http://portal.local:9000", cfg.ServerURL)
	assert.Equal(t, "/tmp/override.db", cfg.DBPath)
	assert.Equal(t, 5, cfg.Sync.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.Sync.ProbeInterval)
	assert.Equal(t, []string{"moodLogs"}, cfg.Backup.Collections)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestNewViper_MissingExplicitFile(t *testing.T) {
	_, err := NewViper(ClientEnvPrefix, filepath.Join(t.TempDir(), "absent.yaml"), SetClientDefaults)
	assert.Error(t, err)
}

func TestClientConfig_Validate(t *testing.T) {
	valid := func() ClientConfig {
		return ClientConfig{
			ServerURL:    "http://localhost:8080",
			DBPath:       "c.db",
			StorageQuota: 1024,
			Sync:         SyncConfig{MaxRetries: 3, ProbeInterval: time.Second},
			Backup:       BackupConfig{CheckInterval: time.Minute, Collections: []string{"moodLogs"}},
		}
	}

	tests := []struct {
		mutate  func(*ClientConfig)
		name    string
		wantErr string
	}{
		{name: "valid", mutate: func(c *ClientConfig) {}},
		{name: "no server url", mutate: func(c *ClientConfig) { c.ServerURL = "" }, wantErr: "server_url"},
		{name: "zero quota", mutate: func(c *ClientConfig) { c.StorageQuota = 0 }, wantErr: "storage_quota"},
		{name: "negative retries", mutate: func(c *ClientConfig) { c.Sync.MaxRetries = -1 }, wantErr: "max_retries"},
		{name: "no collections", mutate: func(c *ClientConfig) { c.Backup.Collections = nil }, wantErr: "collections"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadServer(t *testing.T) {
	t.Chdir(t.TempDir())

	v, err := NewViper(ServerEnvPrefix, "", SetServerDefaults)
	require.NoError(t, err)

	// без секрета сервер не стартует
	_, err = LoadServer(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")

	t.Setenv("MOODKEEPER_SERVER_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("MOODKEEPER_SERVER_ADDR", ":9090")
	cfg, err := LoadServer(v)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 20, cfg.RateLimitBurst)
}

func TestNewViper_DefaultFileNamePerPrefix(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "moodkeeper-server.yaml"), []byte("addr: \":7070\"\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "moodkeeper.yaml"), []byte("server_url: http://client.example\n"), 0o600))

	sv, err := NewViper(ServerEnvPrefix, "", SetServerDefaults)
	require.NoError(t, err)
	assert.Equal(t, ":7070", sv.GetString("addr"))

	cv, err := NewViper(ClientEnvPrefix, "", SetClientDefaults)
	require.NoError(t, err)
	assert.Equal(t, "http://client.example", cv.GetString("server_url"))
}
