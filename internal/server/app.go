// Package server initializes and runs the plant-data service: PostgreSQL
// storage with migrations, the Redis collection cache, and the HTTP API,
// with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sireesha-siri/geotag-plants/internal/logging"
	"github.com/sireesha-siri/geotag-plants/internal/server/cache"
	"github.com/sireesha-siri/geotag-plants/internal/server/config"
	"github.com/sireesha-siri/geotag-plants/internal/server/repositories/repomanager"
	"github.com/sireesha-siri/geotag-plants/internal/server/rest"
	"github.com/sireesha-siri/geotag-plants/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	server *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	zl, err := logging.NewServerZap(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := logging.NewZapLogger(zl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var plantCache cache.PlantCache = cache.Noop{}
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		plantCache = cache.NewRedisCache(redisClient, cfg.CacheTTL, logger)
	}

	userService := services.NewUserService(db, rm, cfg)
	plantService := services.NewPlantService(db, rm, plantCache, logger)
	uploadService := services.NewUploadService(cfg)
	geoService := services.NewGeoService(logger)

	router := rest.NewRouter(cfg, zl, rest.Handlers{
		Auth:    rest.NewAuthHandler(userService),
		Plants:  rest.NewPlantHandler(plantService, geoService),
		Uploads: rest.NewUploadHandler(uploadService),
	})

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
		server: &http.Server{Addr: cfg.EndpointAddr, Handler: router},
	}, nil
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error(shutdownCtx, "redis close error", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(shutdownCtx, "db close error", "error", err)
	}

	return nil
}
