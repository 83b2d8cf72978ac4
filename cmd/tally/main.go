package main

import (
	"context"
	"os"

	"tally/internal/backend"
	"tally/internal/cli"
	"tally/internal/services"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	store, cleanup, err := backend.Open(logger, backend.Config{
		Type:         backend.Type(cfg.Backend),
		LedgerPath:   cfg.LedgerFile,
		SQLiteDBPath: cfg.SQLiteDBPath,
	})
	if err != nil {
		logger.Error("Failed to initialize storage backend", "error", err, "backend", cfg.Backend)
		os.Exit(1)
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	ctx := context.Background()
	if err := store.EnsureExists(ctx); err != nil {
		logger.Error("Failed to bootstrap ledger", "error", err)
		os.Exit(1)
	}

	app := cli.NewApp(services.NewLedger(store), os.Stdin, os.Stdout, cfg.ListLimit, cfg.DeletePreviewLimit)
	if err := app.Run(ctx); err != nil {
		logger.Error("Shell error", "error", err)
		os.Exit(1)
	}
}
