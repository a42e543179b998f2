package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/moodkeeper/internal/config"
	"github.com/iudanet/moodkeeper/internal/logger"
	"github.com/iudanet/moodkeeper/internal/server"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "moodkeeper-server",
		Short:         "Reference document store for moodkeeper clients",
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, configFile)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (default ./moodkeeper-server.yaml)")
	flags.String("addr", "", "listen address")
	flags.String("db", "", "path to SQLite database")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	return cmd
}

func serve(cmd *cobra.Command, configFile string) error {
	v, err := config.NewViper(config.ServerEnvPrefix, configFile, config.SetServerDefaults)
	if err != nil {
		return err
	}
	for key, name := range map[string]string{
		"addr":      "addr",
		"db_path":   "db",
		"log.level": "log-level",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	cfg, err := config.LoadServer(v)
	if err != nil {
		return err
	}

	log, closer, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting moodkeeper server", "version", Version, "addr", cfg.Addr, "db", cfg.DBPath)

	srv, err := server.New(ctx, cfg, Version, log)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
