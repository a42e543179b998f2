package config

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// WatchClient следит за файлом конфигурации и передает в onChange
// новую проверенную конфигурацию. Невалидные изменения игнорируются.
// Ничего не делает, если конфигурация загружена без файла.
func WatchClient(v *viper.Viper, logger *slog.Logger, onChange func(*ClientConfig)) {
	if v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := LoadClient(v)
		if err != nil {
			logger.Warn("Ignoring invalid config change", "file", e.Name, "error", err)
			return
		}
		logger.Info("Config reloaded", "file", e.Name)
		onChange(cfg)
	})
	v.WatchConfig()
}
