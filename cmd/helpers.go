package cmd

import (
	"context"
	"fmt"
	"time"

	"follow-check/core/config"
	"follow-check/core/database"
	"follow-check/core/history"
	"follow-check/core/logger"
	"follow-check/core/snapshot"
	"follow-check/core/storage"

	"go.uber.org/zap"
)

// bootstrap loads configuration and builds the application logger.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logg, nil
}

// buildStore creates the configured snapshot store. dirOverride comes from
// the --snapshot-dir flag and wins over configuration when non-empty.
func buildStore(cfg *config.Config, dirOverride string) (snapshot.Store, error) {
	if !cfg.Snapshot.IsValidBackend() {
		return nil, fmt.Errorf("invalid snapshot backend %q", cfg.Snapshot.Backend)
	}

	if cfg.Snapshot.Backend == snapshot.BackendS3 {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}

		timeout := cfg.Storage.TimeoutSeconds
		if timeout <= 0 {
			timeout = 30
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
		defer cancel()
		return snapshot.NewObjectStore(ctx, client, cfg.Storage.Bucket)
	}

	dir := cfg.Snapshot.Dir
	if dirOverride != "" {
		dir = dirOverride
	}
	return snapshot.NewFileStore(dir), nil
}

// buildRecorder connects the optional history database. Returns nil when
// recording is disabled or the database is unreachable; a checker run never
// fails because history is unavailable.
func buildRecorder(cfg *config.Config, logg *zap.Logger) *history.Recorder {
	if !cfg.Database.Enabled {
		return nil
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Warn("History database unavailable, continuing without recording", zap.Error(err))
		return nil
	}

	rec, err := history.NewRecorder(db, logg)
	if err != nil {
		logg.Warn("History schema migration failed, continuing without recording", zap.Error(err))
		return nil
	}

	logg.Info("Run history recording enabled")
	return rec
}
