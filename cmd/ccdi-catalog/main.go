package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccdi-federation/ccdi-catalog/internal/config"
	"github.com/ccdi-federation/ccdi-catalog/internal/store"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ccdi-catalog",
		Short: "ccdi-catalog serves a federated catalog of subjects, samples and files",
		Long: "ccdi-catalog exposes an in-memory catalog of pediatric cancer research metadata " +
			"over a paginated, filterable HTTP API and an MCP tool server.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		serveCmd(),
		mcpCmd(),
		listCmd(),
		getCmd(),
		countCmd(),
		summaryCmd(),
		exportCmd(),
		healthCmd(),
	)
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch cfg.Logging.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newStore builds the in-memory store from the seed file, or from the
// generator when no seed file is configured.
func newStore(logger *slog.Logger) (*store.MemoryStore, error) {
	var (
		c   store.Catalog
		err error
	)
	if cfg.Store.SeedFile != "" {
		c, err = store.LoadFile(cfg.Store.SeedFile)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded seed file", "path", cfg.Store.SeedFile)
	} else {
		c = store.Generate(store.GenerateOptions{
			Subjects: cfg.Store.Subjects,
			Samples:  cfg.Store.Samples,
			Files:    cfg.Store.Files,
			Seed:     cfg.Store.RandomSeed,
		})
		logger.Debug("generated catalog", "seed", cfg.Store.RandomSeed)
	}

	if len(c.Subjects) == 0 || len(c.Samples) == 0 || len(c.Files) == 0 {
		return nil, fmt.Errorf("store: catalog must hold at least one subject, sample and file (got %d, %d, %d)",
			len(c.Subjects), len(c.Samples), len(c.Files))
	}

	st, err := store.NewMemoryStore(c)
	if err != nil {
		return nil, err
	}
	logger.Info("catalog loaded", "subjects", len(c.Subjects), "samples", len(c.Samples), "files", len(c.Files))
	return st, nil
}

// linkBaseURL is the origin used for pagination links outside of an HTTP
// request.
func linkBaseURL() string {
	if cfg.API.BaseURL != "" {
		return cfg.API.BaseURL
	}
	return "http://localhost" + listenPort()
}

func listenPort() string {
	_, port, err := net.SplitHostPort(cfg.API.ListenAddr)
	if err != nil || port == "" {
		return ""
	}
	return ":" + port
}
