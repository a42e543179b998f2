// Package config loads client and server settings with viper:
// defaults, an optional YAML file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// ClientEnvPrefix префикс переменных окружения клиента (MOODKEEPER_SERVER_URL и т.д.)
	ClientEnvPrefix = "MOODKEEPER"
	// ServerEnvPrefix префикс переменных окружения сервера
	ServerEnvPrefix = "MOODKEEPER_SERVER"
)

// LogConfig настройки логирования
type LogConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // text или json
	File       string `mapstructure:"file"`        // пустая строка = stderr
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // ротация lumberjack
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// SyncConfig настройки движка синхронизации
type SyncConfig struct {
	MaxRetries        int           `mapstructure:"max_retries"`
	PerAttemptTimeout time.Duration `mapstructure:"per_attempt_timeout"`
	ProbeInterval     time.Duration `mapstructure:"probe_interval"`
	Retention         time.Duration `mapstructure:"retention"`
}

// BackupConfig настройки резервного копирования на стороне процесса
type BackupConfig struct {
	ExportDir     string        `mapstructure:"export_dir"`
	CheckInterval time.Duration `mapstructure:"check_interval"`
	Collections   []string      `mapstructure:"collections"`
	Scheduler     bool          `mapstructure:"scheduler"` // запускать планировщик в `run`
}

// ClientConfig конфигурация клиента
type ClientConfig struct {
	Log          LogConfig    `mapstructure:"log"`
	Backup       BackupConfig `mapstructure:"backup"`
	ServerURL    string       `mapstructure:"server_url"`
	DBPath       string       `mapstructure:"db_path"`
	Sync         SyncConfig   `mapstructure:"sync"`
	StorageQuota int64        `mapstructure:"storage_quota"`
}

// ServerConfig конфигурация сервера документов
type ServerConfig struct {
	Log            LogConfig     `mapstructure:"log"`
	Addr           string        `mapstructure:"addr"`
	DBPath         string        `mapstructure:"db_path"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

func setLogDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
}

// SetClientDefaults регистрирует значения по умолчанию клиента
func SetClientDefaults(v *viper.Viper) {
	setLogDefaults(v)
	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("db_path", "moodkeeper-client.db")
	v.SetDefault("storage_quota", 5*1024*1024)
	v.SetDefault("sync.max_retries", 3)
	v.SetDefault("sync.per_attempt_timeout", 30*time.Second)
	v.SetDefault("sync.probe_interval", 30*time.Second)
	v.SetDefault("sync.retention", 7*24*time.Hour)
	v.SetDefault("backup.export_dir", "backups")
	v.SetDefault("backup.check_interval", time.Hour)
	v.SetDefault("backup.collections", []string{"moodLogs", "notifications", "journalEntries", "sessions"})
	v.SetDefault("backup.scheduler", true)
}

// SetServerDefaults регистрирует значения по умолчанию сервера
func SetServerDefaults(v *viper.Viper) {
	setLogDefaults(v)
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "moodkeeper-server.db")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("rate_limit_rps", 10.0)
	v.SetDefault("rate_limit_burst", 20)
}

// NewViper создает экземпляр viper с env-переопределениями и (опционально) файлом конфигурации.
// Отсутствующий файл, заданный явно, является ошибкой; файл по умолчанию не обязателен.
// Имя файла по умолчанию выводится из prefix: ./moodkeeper.yaml, ./moodkeeper-server.yaml.
func NewViper(prefix, configFile string, defaults func(*viper.Viper)) (*viper.Viper, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
		return v, nil
	}

	v.SetConfigName(strings.ToLower(strings.ReplaceAll(prefix, "_", "-")))
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// LoadClient декодирует и проверяет конфигурацию клиента
func LoadClient(v *viper.Viper) (*ClientConfig, error) {
	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode client config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadServer декодирует и проверяет конфигурацию сервера
func LoadServer(v *viper.Viper) (*ServerConfig, error) {
	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode server config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет конфигурацию клиента
func (c *ClientConfig) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.StorageQuota <= 0 {
		return fmt.Errorf("storage_quota must be positive, got %d", c.StorageQuota)
	}
	if c.Sync.MaxRetries < 0 {
		return fmt.Errorf("sync.max_retries must not be negative")
	}
	if c.Sync.ProbeInterval <= 0 {
		return fmt.Errorf("sync.probe_interval must be positive")
	}
	if c.Backup.CheckInterval <= 0 {
		return fmt.Errorf("backup.check_interval must be positive")
	}
	if len(c.Backup.Collections) == 0 {
		return fmt.Errorf("backup.collections must not be empty")
	}
	return nil
}

// Validate проверяет конфигурацию сервера
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 bytes")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}
	return nil
}
