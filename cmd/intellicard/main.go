package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"intellicard/internal/backend"
	"intellicard/internal/cache"
	"intellicard/internal/config"
	apphttp "intellicard/internal/http"
	"intellicard/internal/log"
	"intellicard/internal/projection"
	"intellicard/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err, log.FieldOperation, log.OpStartup)
		os.Exit(1)
	}

	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("backend configuration failed", log.FieldError, err, log.FieldOperation, log.OpStartup)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(context.Background(), backendConfig)
	if err != nil {
		logger.Error("backend initialization failed",
			log.FieldError, err,
			log.FieldBackend, cfg.DataBackend,
			log.FieldOperation, log.OpStartup)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("backend cleanup failed", log.FieldError, err)
			}
		}()
	}

	projectionCache := cache.NewLRUCache[[]projection.MonthlyProjection](
		cfg.ProjectionCacheSize, cfg.ProjectionCacheTTL)
	cacheManager := cache.NewManager()
	cacheManager.Register(projectionCache)
	cacheManager.StartCleanup(cfg.ProjectionCacheTTL)
	defer cacheManager.Stop()

	tracker := services.NewTrackerService(result.Backend)
	proj := services.NewProjectionService(result.Backend, projection.NewEngine(nil), projectionCache)
	tracker.OnChange(proj.Invalidate)

	srv := apphttp.NewServer(":"+cfg.Port, tracker, proj, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting intellicard server",
			"port", cfg.Port,
			log.FieldBackend, cfg.DataBackend,
			log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("server stopped gracefully", log.FieldOperation, log.OpShutdown)
}
