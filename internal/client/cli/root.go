package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iudanet/moodkeeper/internal/client/backup"
	"github.com/iudanet/moodkeeper/internal/client/iocli"
	"github.com/iudanet/moodkeeper/internal/client/session"
	"github.com/iudanet/moodkeeper/internal/config"
	"github.com/iudanet/moodkeeper/internal/logger"
	"github.com/iudanet/moodkeeper/internal/models"
)

// app хранит состояние одного запуска CLI
type app struct {
	io         iocli.IO
	v          *viper.Viper
	cfg        *config.ClientConfig
	logger     *slog.Logger
	logCloser  io.Closer
	session    *session.Session
	cli        *Cli
	configFile string
}

// Execute запускает дерево команд и возвращает код выхода процесса
func Execute(ctx context.Context, version string) int {
	a := &app{io: iocli.NewStdio()}
	defer a.close()

	root := a.rootCommand(version)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) rootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "moodkeeper",
		Short:         "Offline-first mood journal client with sync and backups",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./moodkeeper.yaml)")
	flags.String("server", "", "server URL")
	flags.String("db", "", "path to local database")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.statusCmd(),
		a.moodCmd(),
		a.syncCmd(),
		a.runCmd(),
		a.backupCmd(),
	)
	return root
}

// open загружает конфигурацию и собирает сессию
func (a *app) open(cmd *cobra.Command) error {
	v, err := config.NewViper(config.ClientEnvPrefix, a.configFile, config.SetClientDefaults)
	if err != nil {
		return err
	}
	flags := cmd.Root().PersistentFlags()
	for key, name := range map[string]string{
		"server_url": "server",
		"db_path":    "db",
		"log.level":  "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	cfg, err := config.LoadClient(v)
	if err != nil {
		return err
	}

	log, closer, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	a.logger, a.logCloser = log, closer

	s, err := session.New(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	a.v, a.cfg, a.session = v, cfg, s
	a.cli = New(a.io, s, s.Auth, s.Data, s.Sync, s.Backups)
	return nil
}

func (a *app) close() {
	if a.session != nil {
		if err := a.session.Close(); err != nil {
			a.logger.Error("Failed to close session", "error", err)
		}
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

func (a *app) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register a new account on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runRegister(cmd.Context())
		},
	}
}

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runLogin(cmd.Context())
		},
	}
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runLogout(cmd.Context())
		},
	}
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show session, connectivity, sync and storage status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runStatus(cmd.Context())
		},
	}
}

func (a *app) moodCmd() *cobra.Command {
	mood := &cobra.Command{
		Use:   "mood",
		Short: "Record and browse mood entries",
	}

	var (
		score int
		note  string
		tags  []string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a mood entry (works offline)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runMoodAdd(cmd.Context(), score, note, tags)
		},
	}
	add.Flags().IntVarP(&score, "mood", "m", 0, fmt.Sprintf("mood score %d-%d", models.MinMood, models.MaxMood))
	add.Flags().StringVarP(&note, "note", "n", "", "optional note")
	add.Flags().StringSliceVarP(&tags, "tags", "t", nil, "comma separated tags")
	_ = add.MarkFlagRequired("mood")

	var (
		since time.Duration
		limit int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List mood entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runMoodList(cmd.Context(), since, limit)
		},
	}
	list.Flags().DurationVar(&since, "since", 0, "only entries newer than this (e.g. 168h)")
	list.Flags().IntVar(&limit, "limit", 0, "maximum number of entries")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a mood entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runMoodDelete(cmd.Context(), args[0])
		},
	}

	mood.AddCommand(add, list, del)
	return mood
}

func (a *app) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay pending offline changes against the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cli.runSync(cmd.Context())
		},
	}
}

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Keep a session running: connectivity probes, sync on reconnect, scheduled backups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := a.session.Start(ctx); err != nil {
				return err
			}
			config.WatchClient(a.v, a.logger, func(cfg *config.ClientConfig) {
				a.session.ApplyBackupSchedule(cfg.Backup)
			})

			a.io.Println("Session running. Press Ctrl+C to stop.")
			<-ctx.Done()
			a.io.Println("Stopping...")
			return nil
		},
	}
}

func (a *app) backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage full-account backups",
	}

	// a.cli создается в PersistentPreRunE, поэтому обработчики оборачиваются в замыкания
	idCommand := func(use, short string, run func(context.Context, string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd.Context(), args[0])
			},
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create",
			Short: "Create a manual backup now",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.cli.runBackupCreate(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List backups, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.cli.runBackupList(cmd.Context())
			},
		},
		idCommand("restore", "Restore a backup into the remote store", func(ctx context.Context, id string) error {
			return a.cli.runBackupRestore(ctx, id)
		}),
		idCommand("delete", "Delete a backup", func(ctx context.Context, id string) error {
			return a.cli.runBackupDelete(ctx, id)
		}),
		idCommand("verify", "Verify backup integrity", func(ctx context.Context, id string) error {
			return a.cli.runBackupVerify(ctx, id)
		}),
		idCommand("export", "Export a backup to a JSON file", func(ctx context.Context, id string) error {
			return a.cli.runBackupExport(ctx, id)
		}),
		&cobra.Command{
			Use:   "cleanup",
			Short: "Remove backups beyond the configured maximum",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.cli.runBackupCleanup(cmd.Context())
			},
		},
		a.backupConfigCmd(),
	)
	return cmd
}

func (a *app) backupConfigCmd() *cobra.Command {
	var (
		enabled    bool
		auto       bool
		frequency  string
		maxBackups int
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change backup settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var updates []backup.ConfigUpdate
			flags := cmd.Flags()
			if flags.Changed("enabled") {
				updates = append(updates, backup.SetEnabled(enabled))
			}
			if flags.Changed("auto") {
				updates = append(updates, backup.SetAutoBackup(auto))
			}
			if flags.Changed("frequency") {
				updates = append(updates, backup.SetFrequency(models.BackupFrequency(frequency)))
			}
			if flags.Changed("max") {
				updates = append(updates, backup.SetMaxBackups(maxBackups))
			}
			return a.cli.runBackupConfig(cmd.Context(), updates)
		},
	}
	cmd.Flags().BoolVar(&enabled, "enabled", true, "enable backups")
	cmd.Flags().BoolVar(&auto, "auto", true, "enable automatic backups")
	cmd.Flags().StringVar(&frequency, "frequency", "", "daily, weekly or monthly")
	cmd.Flags().IntVar(&maxBackups, "max", 0, "number of backups to keep")
	return cmd
}
