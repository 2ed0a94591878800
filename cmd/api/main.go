package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klyra-app/ephemera-go/internal/cache"
	"github.com/klyra-app/ephemera-go/internal/config"
	"github.com/klyra-app/ephemera-go/internal/db"
	"github.com/klyra-app/ephemera-go/internal/handler/api"
	"github.com/klyra-app/ephemera-go/internal/logger"
	cMiddleware "github.com/klyra-app/ephemera-go/internal/middleware"
	"github.com/klyra-app/ephemera-go/internal/port"
	"github.com/klyra-app/ephemera-go/internal/renderer"
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

	logger.Init()

	database := initDb(ctx, cfg)

	r := initRouter(ctx, cfg.JWTSecret)

	strg := initStorage(ctx, cfg)

	mediaRepo := mariadb.NewMediaRepository(database.DB)
	permRepo := mariadb.NewPermissionRepository(database.DB)
	eventRepo := mariadb.NewEventRepository(database.DB)

	var ca port.Cache
	var dispatcher port.TaskDispatcher
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
		dispatcher = task.NewDispatcher(cfg.RedisAddr, cfg.RedisPassword)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		dispatcher = task.NewNoopDispatcher()
		logger.Warn(ctx, "⚠️  Redis not configured, caching and async tasks are disabled")
	}

	createMediaSvc := mediaSvc.NewMediaCreator(mediaRepo, eventRepo, db.NewUUID, time.Now)
	r.Post("/medias", api.CreateMediaHandler(createMediaSvc))

	openMediaSvc := mediaSvc.NewMediaOpener(mediaRepo, permRepo, strg, ca, db.NewUUID, time.Now, cfg.MediaBucket, cfg.DownloadTTL)
	r.With(cMiddleware.WithMediaID()).
		Post("/medias/{id}/open", api.OpenMediaHandler(openMediaSvc))

	closeMediaSvc := mediaSvc.NewMediaCloser(mediaRepo, permRepo, ca, dispatcher, db.NewUUID, time.Now)
	r.With(cMiddleware.WithMediaID()).
		Post("/medias/{id}/close", api.CloseMediaHandler(closeMediaSvc))

	granterSvc := mediaSvc.NewScreenshotGranter(mediaRepo, permRepo, eventRepo, ca, db.NewUUID, time.Now)
	r.With(cMiddleware.WithMediaID()).
		Put("/medias/{id}/screenshot_permission", api.SetScreenshotPermissionHandler(granterSvc))

	requesterSvc := mediaSvc.NewAccessRequester(mediaRepo, permRepo, eventRepo, ca, db.NewUUID, time.Now)
	r.With(cMiddleware.WithMediaID()).
		Post("/medias/{id}/request_screenshot", api.RequestScreenshotAccessHandler(requesterSvc))

	reporterSvc := mediaSvc.NewScreenshotReporter(mediaRepo, permRepo, eventRepo, ca, dispatcher, db.NewUUID, time.Now)
	r.With(cMiddleware.WithMediaID()).
		Post("/medias/{id}/screenshot", api.ReportScreenshotHandler(reporterSvc))

	listerSvc := mediaSvc.NewSecurityEventsLister(mediaRepo, eventRepo, time.Now)
	rendererSvc := renderer.NewHTTPRenderer(ca)
	r.With(cMiddleware.WithMediaID()).
		Get("/medias/{id}/security_events", api.GetSecurityEventsHandler(rendererSvc, listerSvc))

	listenRouter(ctx, r, cfg, database)
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

func initRouter(ctx context.Context, jwtSecret string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(cMiddleware.WithAuth(jwtSecret))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
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

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
