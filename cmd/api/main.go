package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/export"
	"shareit/internal/logging"
	"shareit/internal/metrics"
	"shareit/internal/repository"
	"shareit/internal/seed"
	"shareit/internal/service"
	"shareit/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := initStore(ctx, cfg, &logger)
	if err != nil {
		return err
	}
	defer store.Close()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	bus := events.NewEventBus()
	relay := initEventRelay(cfg, bus, redisClient, &logger)
	if relay != nil {
		go relay.Start(ctx)
	}

	query := service.NewQueryEngine(nil)
	bookings := service.NewBookingService(store, bus, query, logging.Component(&logger, "booking_service"))
	items := service.NewItemService(store, query, logging.Component(&logger, "item_service"))
	users := service.NewUserService(store, logging.Component(&logger, "user_service"))

	if err := applySeed(ctx, cfg, users, items, &logger); err != nil {
		return err
	}

	svc := api.Services{
		Bookings: bookings,
		Items:    items,
		Users:    users,
		Exporter: export.NewOwnerExporter(bookings, store, logging.Component(&logger, "export")),
		Limiter:  initCallerLimiter(cfg, redisClient, &logger),
		Store:    store,
	}

	var grpcServer *api.GRPCServer
	if cfg.API.GRPC.Enabled {
		grpcServer, err = api.NewGRPCServer(&cfg.API, store, &logger)
		if err != nil {
			logger.Error().Err(err).Msg("create grpc server")
			return err
		}
	}
	httpServer := api.NewHTTPServer(cfg.API, svc, &logger)

	startMetrics(ctx, cfg, &logger)

	err = startServers(ctx, grpcServer, httpServer, cfg, &logger)
	stop()
	if relay != nil {
		<-relay.Done()
	}
	return err
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
	logging.RedirectStdLog(baseLogger)
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func initStore(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (domain.Store, error) {
	if cfg.Database.Driver == "memory" {
		logger.Warn().Msg("using in-memory store, data is lost on restart")
		return repository.NewMemoryStore(), nil
	}

	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return nil, err
	}

	if cfg.Database.Backup.Enabled {
		backups := database.NewBackupService(db, cfg.Database.Backup, logger)
		go backups.Start(ctx)
	}
	return db, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := repository.Ping(pingCtx, redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		_ = redisClient.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initCallerLimiter prefers redis and falls back to process memory.
func initCallerLimiter(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.RateLimiter {
	if !cfg.API.CallerLimit.Enabled {
		return nil
	}

	memory := repository.NewMemoryRateLimiter()
	if redisClient == nil {
		return memory
	}
	return repository.NewFailoverRateLimiter(
		repository.NewRedisRateLimiter(redisClient),
		memory,
		logging.Component(logger, "rate_limiter"),
	)
}

func initEventRelay(cfg *config.Config, bus *events.EventBus, redisClient *redis.Client, logger *zerolog.Logger) *worker.EventRelay {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info().Msg("kafka brokers not configured, booking events stay in process")
		return nil
	}

	writer := worker.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	relay := worker.NewEventRelay(writer, redisClient, worker.DefaultRetryPolicy(), logger)
	relay.Attach(bus)

	logger.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("event relay configured")
	return relay
}

func applySeed(
	ctx context.Context,
	cfg *config.Config,
	users domain.UserService,
	items domain.ItemService,
	logger *zerolog.Logger,
) error {
	if cfg.Seed.Path == "" {
		return nil
	}

	fixture, err := seed.Load(cfg.Seed.Path)
	if err != nil {
		logger.Error().Err(err).Str("seed_path", cfg.Seed.Path).Msg("load seed")
		return err
	}
	if _, _, err := seed.Apply(ctx, fixture, users, items, logging.Component(logger, "seed")); err != nil {
		logger.Error().Err(err).Str("seed_path", cfg.Seed.Path).Msg("apply seed")
		return err
	}
	return nil
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, logger)
}

func startServers(
	ctx context.Context,
	grpcServer *api.GRPCServer,
	httpServer *api.HTTPServer,
	cfg *config.Config,
	logger *zerolog.Logger,
) error {
	errCh := make(chan error, 2)

	if grpcServer != nil {
		go grpcServer.WatchStore(ctx)
		go func() {
			if err := grpcServer.Serve(); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	logger.Info().Int("http_port", cfg.API.HTTP.Port).Bool("grpc", grpcServer != nil).Msg("API server started")

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case runErr = <-errCh:
		logger.Error().Err(runErr).Msg("server stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if grpcServer != nil {
		grpcServer.Shutdown(shutdownCtx)
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http shutdown")
	}

	logger.Info().Msg("API server stopped")
	return runErr
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
