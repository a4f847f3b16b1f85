package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	"wanderplan/internal/api"
	"wanderplan/internal/config"
	"wanderplan/internal/domain"
	"wanderplan/internal/events"
	"wanderplan/internal/logging"
	"wanderplan/internal/metrics"
	"wanderplan/internal/models"
	"wanderplan/internal/repository"
	"wanderplan/internal/service"
	"wanderplan/internal/storage"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	store, storeCloser, err := initStore(cfg, &logger)
	if err != nil {
		return err
	}
	if storeCloser != nil {
		defer (func() { _ = storeCloser.Close() })()
	}

	bus := events.NewEventBus()
	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		metrics.BindEvents(bus)
	}

	tripRepo := repository.NewTripRepository(store)
	activityRepo := repository.NewActivityRepository(store)
	extrasRepo := repository.NewExtrasRepository(store)

	if err := seedActivities(context.Background(), cfg, activityRepo, &logger); err != nil {
		return err
	}

	svcs := api.Services{
		Trips:      service.NewTripService(tripRepo, extrasRepo, bus, cfg.Trip.MaxDays, &logger),
		Activities: service.NewActivityService(activityRepo, tripRepo, bus, &logger),
		Plans:      service.NewPlanService(tripRepo, bus, &logger),
		Extras:     service.NewExtrasService(extrasRepo, &logger),
		Transfer:   service.NewTransferService(tripRepo, activityRepo, extrasRepo, &logger),
	}

	httpServer := api.NewHTTPServer(cfg.API, cfg.Exports.Path, svcs, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startMetrics(ctx, cfg, &logger)

	return startServer(ctx, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

// initStore builds the key-value backend selected in config. With the
// redis driver and failover enabled, reads and writes degrade to an
// in-process store when Redis goes away.
func initStore(cfg *config.Config, logger *zerolog.Logger) (domain.KVStore, io.Closer, error) {
	switch cfg.Storage.Driver {
	case "memory":
		logger.Warn().Msg("memory storage driver selected, state is lost on restart")
		return storage.NewMemoryStore(), nil, nil

	case "redis":
		client := storage.NewRedisClient(cfg.Storage.Redis)
		if err := storage.Ping(context.Background(), client); err != nil {
			if !cfg.Storage.FailoverToMemory {
				return nil, nil, fmt.Errorf("redis ping: %w", err)
			}
			logger.Warn().Err(err).Msg("redis unreachable at startup, failover store will cover")
		}

		redisStore := storage.NewRedisStore(client, cfg.Storage.KeyPrefix)
		if !cfg.Storage.FailoverToMemory {
			return redisStore, client, nil
		}

		failover := storage.NewFailoverStore(redisStore, storage.NewMemoryStore(), logger)
		failover.OnDowngrade(metrics.IncStoreFailover)
		return failover, client, nil

	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("init sqlite store: %w", err)
		}
		return store, store, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// seedActivities loads the starter activity pool into an empty store so a
// fresh install has something to drag onto the calendar. A store that
// already holds activities is left alone.
func seedActivities(ctx context.Context, cfg *config.Config, repo *repository.ActivityRepository, logger *zerolog.Logger) error {
	path := cfg.Trip.SeedActivitiesPath
	if path == "" {
		return nil
	}

	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing activities: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error().Err(err).Str("seed_path", path).Msg("read seed activities")
		return err
	}

	var seed struct {
		Activities []models.Activity `yaml:"activities"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		logger.Error().Err(err).Str("seed_path", path).Msg("parse seed activities")
		return err
	}

	if err := config.ValidateActivities(seed.Activities); err != nil {
		return fmt.Errorf("validate seed activities: %w", err)
	}

	if err := repo.Save(ctx, seed.Activities); err != nil {
		return fmt.Errorf("seed activities: %w", err)
	}
	logger.Info().Int("count", len(seed.Activities)).Msg("seeded activity pool")
	return nil
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.API.Port).Msg("API server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
