package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/match-tagger/config"
	"github.com/Dosada05/match-tagger/db"
	"github.com/Dosada05/match-tagger/handlers"
	"github.com/Dosada05/match-tagger/realtime"
	"github.com/Dosada05/match-tagger/repositories"
	"github.com/Dosada05/match-tagger/routes"
	"github.com/Dosada05/match-tagger/services"
	"github.com/Dosada05/match-tagger/storage"
	"github.com/go-chi/chi/v5"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageDriver),
		slog.Bool("auth", cfg.AuthEnabled()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Хранилище состояния
	snapshotRepo, closer, err := openSnapshotRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open snapshot storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	// Хранилище экспортов
	uploader, err := openUploader(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize export storage", slog.Any("error", err))
		os.Exit(1)
	}

	// WebSocket Hub
	wsHub := realtime.NewHub()
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	// Сессия: загрузка сохранённого состояния до старта сервера
	session := services.NewSession(snapshotRepo, wsHub, logger)
	if err := session.Load(ctx); err != nil {
		logger.Error("failed to load session state", slog.Any("error", err))
		os.Exit(1)
	}
	exportService := services.NewExportService(session, uploader, logger)
	authService := services.NewAuthService(cfg.OperatorPasswordHash, cfg.JWTSecretKey)

	// Часы матча
	go services.StartClock(ctx, cfg.ClockInterval, session, logger)

	// Маршрутизатор
	router := chi.NewRouter()
	routes.SetupRoutes(router, routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Teams:       handlers.NewTeamHandler(session),
		ActionTypes: handlers.NewActionTypeHandler(session),
		Match:       handlers.NewMatchHandler(session),
		Archive:     handlers.NewArchiveHandler(session, exportService),
		WebSocket:   handlers.NewWebSocketHandler(wsHub, session, cfg.CORSAllowedOrigins),
	}, cfg.JWTSecretKey, cfg.CORSAllowedOrigins)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func openSnapshotRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.SnapshotRepository, io.Closer, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.EnsurePostgresSchema(ctx, dbConn); err != nil {
			dbConn.Close()
			return nil, nil, err
		}
		logger.Info("database connection established", slog.String("driver", "postgres"))
		return repositories.NewPostgresSnapshotRepository(dbConn), dbConn, nil

	case config.StorageSQLite:
		gdb, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, err
		}
		repo, err := repositories.NewGormSnapshotRepository(gdb)
		if err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		logger.Info("database opened", slog.String("driver", "sqlite"), slog.String("path", cfg.SQLitePath))
		return repo, sqlDB, nil

	default:
		logger.Warn("using in-memory storage, state is lost on restart")
		return repositories.NewMemorySnapshotRepository(), closerFunc(func() error { return nil }), nil
	}
}

func openUploader(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.FileUploader, error) {
	r2 := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
		Prefix:          "exports/",
	}
	if r2.Complete() {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, r2)
		if err != nil {
			return nil, err
		}
		logger.Info("Cloudflare R2 uploader initialized")
		return uploader, nil
	}

	uploader, err := storage.NewLocalUploader(cfg.ExportDir, cfg.ExportPublicBaseURL)
	if err != nil {
		return nil, err
	}
	logger.Info("local export directory initialized", slog.String("dir", cfg.ExportDir))
	return uploader, nil
}
