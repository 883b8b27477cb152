package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/crmlens/context-engine/pkg/adapters/snapshot"
	"github.com/crmlens/context-engine/pkg/config"
	"github.com/crmlens/context-engine/pkg/database"
	"github.com/crmlens/context-engine/pkg/handlers"
	"github.com/crmlens/context-engine/pkg/middleware"
	"github.com/crmlens/context-engine/pkg/retry"
	"github.com/crmlens/context-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	source, cleanup, err := newSnapshotSource(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to create snapshot source", zap.Error(err))
	}
	defer cleanup()

	// The metadata database may still be starting when we are. Retry the
	// first build before giving up.
	svc := services.NewContextService(source, cfg.Search.FilterStrategy, logger)
	if err := retry.Do(ctx, retry.DefaultConfig(), func() error {
		return svc.Rebuild(ctx)
	}); err != nil {
		logger.Fatal("Initial index build failed", zap.Error(err))
	}

	if fileSource, ok := source.(*snapshot.FileSource); ok && cfg.Snapshot.Watch {
		watcher, err := snapshot.NewWatcher(logger)
		if err != nil {
			logger.Fatal("Failed to create snapshot watcher", zap.Error(err))
		}
		defer watcher.Stop() //nolint:errcheck

		err = watcher.Watch(fileSource.Path(), func() {
			if err := svc.Rebuild(context.Background()); err != nil {
				logger.Error("Automatic index rebuild failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Fatal("Failed to watch snapshot file", zap.Error(err))
		}
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, svc, logger).RegisterRoutes(mux)
	handlers.NewContextHandler(svc, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting context-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version),
		zap.String("snapshot_source", cfg.Snapshot.Source))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds the process logger: human-readable in local
// development, JSON elsewhere.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newSnapshotSource wires the configured snapshot source. The returned
// cleanup releases the database pool for the postgres source and is a
// no-op for the file source.
func newSnapshotSource(ctx context.Context, cfg *config.Config) (snapshot.Source, func(), error) {
	switch cfg.Snapshot.Source {
	case "postgres":
		db, err := database.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return snapshot.NewPostgresSource(db.Pool), db.Close, nil
	default:
		return snapshot.NewFileSource(cfg.Snapshot.Path), func() {}, nil
	}
}
