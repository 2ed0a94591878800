package testutil

import (
	"context"
	"database/sql"

	"github.com/hibiken/asynq"

	workerHandler "github.com/klyra-app/ephemera-go/internal/handler/worker"
	"github.com/klyra-app/ephemera-go/internal/logger"
	"github.com/klyra-app/ephemera-go/internal/notifier"
	"github.com/klyra-app/ephemera-go/internal/port"
	"github.com/klyra-app/ephemera-go/internal/repository/mariadb"
	"github.com/klyra-app/ephemera-go/internal/task"
	mediaSvc "github.com/klyra-app/ephemera-go/internal/usecase/media"
)

// StartWorker runs an asynq worker wired to the burn and screenshot-alert
// handlers. It returns a function to gracefully shut the worker down.
func StartWorker(dbConn *sql.DB, strg port.Storage, bucket, redisAddr string) func() {
	mediaRepo := mariadb.NewMediaRepository(dbConn)
	burnSvc := mediaSvc.NewMediaBurner(strg, bucket)
	notifySvc := mediaSvc.NewScreenshotNotifier(mediaRepo, notifier.NewRedisNotifier(redisAddr, ""))

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

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{Concurrency: 5})
	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorf(context.Background(), "worker stopped: %v", err)
		}
	}()

	return func() {
		srv.Shutdown()
	}
}
