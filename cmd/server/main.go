package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/amal-thomson/pixelphraser/internal/commercetools"
	"github.com/amal-thomson/pixelphraser/internal/config"
	"github.com/amal-thomson/pixelphraser/internal/repository"
	"github.com/amal-thomson/pixelphraser/internal/routes"
	"github.com/amal-thomson/pixelphraser/internal/services"
	"github.com/amal-thomson/pixelphraser/internal/webhook"
	"github.com/amal-thomson/pixelphraser/pkg/logger"
	"github.com/amal-thomson/pixelphraser/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logr := logger.New(cfg.LogLevel, cfg.AppName)
	logr.Info("starting description service", slog.String("app", cfg.AppName))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var runStore *repository.RunStore
	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			logr.Error("failed to connect database", slog.Any("error", err))
			os.Exit(1)
		}
		runStore = repository.NewRunStore(db, cfg.RunTable)
	}

	var typeKeyCache *repository.TypeKeyCache
	if cfg.RedisURL != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		typeKeyCache = repository.NewTypeKeyCache(rdb, cfg.TypeKeyTTL)
		defer typeKeyCache.Close()
	}

	platform := commercetools.New(ctx, cfg)
	descriptionStore := repository.NewDescriptionStore(platform, logr)
	typeKeyResolver := services.NewCachedTypeKeyResolver(platform, typeKeyCache, logr)
	runRecorder := services.NewRunRecorder(runStore, logr)

	visionClient := services.NewVisionClient(cfg.VisionURL, cfg.AIAPIKey, cfg.ProviderTimeout)
	generationClient := services.NewGenerationClient(cfg.GenerationURL, cfg.AIAPIKey, cfg.ProviderTimeout)
	translationClient := services.NewTranslationClient(cfg.TranslationURL, cfg.AIAPIKey, cfg.ProviderTimeout)
	metricsCollector := metrics.New()

	pipeline := services.NewDescriptionPipeline(
		platform,
		typeKeyResolver,
		visionClient,
		generationClient,
		translationClient,
		descriptionStore,
		runRecorder,
		metricsCollector,
		logr,
	)
	handler := webhook.NewEventHandler(pipeline, logr)

	started := time.Now()
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: routes.NewRouter(handler, metricsCollector, started),
	}
	go func() {
		logr.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Error("http server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownHTTP(srv, logr)
	logr.Info("description service stopped")
}

func shutdownHTTP(srv *http.Server, logr *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("failed to shutdown http server", slog.Any("error", err))
	}
}
