package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/klyra-app/ephemera-go/internal/config"
	"github.com/klyra-app/ephemera-go/internal/db"
	workerHandler "github.com/klyra-app/ephemera-go/internal/handler/worker"
	"github.com/klyra-app/ephemera-go/internal/logger"
	"github.com/klyra-app/ephemera-go/internal/notifier"
	"github.com/klyra-app/ephemera-go/internal/port"
	"github.com/klyra-app/ephemera-go/internal/repository/mariadb"
	"github.com/klyra-app/ephemera-go/internal/storage"
	"github.com/klyra-app/ephemera-go/internal/task"
	mediaSvc "github.com/klyra-app/ephemera-go/internal/usecase/media"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error(ctx, "⚠️  REDIS_ADDR must be set to run the worker")
		os.Exit(1)
	}

	logger.Init()

	database := initDb(ctx, cfg)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	strg := initStorage(ctx, cfg)

	mediaRepo := mariadb.NewMediaRepository(database.DB)
	burnSvc := mediaSvc.NewMediaBurner(strg, cfg.MediaBucket)
	notifySvc := mediaSvc.NewScreenshotNotifier(mediaRepo, notifier.NewRedisNotifier(cfg.RedisAddr, cfg.RedisPassword))

	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeBurnMedia, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseBurnMediaPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.BurnMediaHandler(ctx, p, burnSvc)
	})
	mux.HandleFunc(task.TypeNotifyScreenshot, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseNotifyScreenshotPayload(t)
		if err != nil {
			return err
		}
		return workerHandler.NotifyScreenshotHandler(ctx, p, notifySvc)
	})

	runWorker(ctx, mux, cfg, database)
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(cfg.MariaDBDSN, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	return database
}

func initStorage(ctx context.Context, cfg *config.Settings) port.Storage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	if err := strg.InitBucket(cfg.MediaBucket); err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", cfg.MediaBucket, err)
		os.Exit(1)
	}

	return strg
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings, database *db.Database) {
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{Concurrency: 10})

	// Run server in background
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "❌  Worker failed: %v", err)
			os.Exit(1)
		}
	}()
	logger.Info(ctx, "🚀 Worker started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// Give Asynq up to 30 sec to finish tasks
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	srv.Shutdown()       // stop accepting new tasks, finish in-flight
	<-shutdownCtx.Done() // either timeout or done

	// Close DB
	if err := database.Close(); err != nil {
		logger.Warnf(ctx, "DB close error: %v", err)
	}
	logger.Info(ctx, "✅  Worker gracefully stopped")
}
