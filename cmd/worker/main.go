package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hotelworks/hotel-api/internal/repository/postgres"
	housekeepingService "github.com/hotelworks/hotel-api/internal/service/housekeeping"
	sweepService "github.com/hotelworks/hotel-api/internal/service/sweep"
	"github.com/hotelworks/hotel-api/internal/worker"
	applog "github.com/hotelworks/hotel-api/pkg/logger"
	"github.com/hotelworks/hotel-api/pkg/messaging/redis"
	"github.com/hotelworks/hotel-api/pkg/metrics"
)

// WorkerConfig is read from the environment. The worker runs headless
// next to the API, so it carries its own flat config instead of the
// API's config file.
type WorkerConfig struct {
	DatabaseURL     string        `envconfig:"DATABASE_URL" required:"true"`
	RedisURL        string        `envconfig:"REDIS_URL" default:"redis://localhost:6379"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	SweepInterval   time.Duration `envconfig:"SWEEP_INTERVAL" default:"15m"`
	MetricsAddr     string        `envconfig:"METRICS_ADDR" default:":9090"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func main() {
	var cfg WorkerConfig
	if err := envconfig.Process("hotel_worker", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load worker config")
	}

	logger := applog.New("hotel-worker", applog.Config{Level: cfg.LogLevel})

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{URL: cfg.RedisURL}, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	shiftRepo := postgres.NewShiftRepository(db)
	housekeepingRepo := postgres.NewHousekeepingRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	roomRepo := postgres.NewRoomRepository(db)

	m := metrics.NewMetrics("hotel_api", "sweep")
	housekeepingSvc := housekeepingService.NewService(
		housekeepingRepo, shiftRepo, profileRepo, roomRepo, nil, m, logger)
	sweepSvc := sweepService.NewService(shiftRepo, housekeepingRepo, housekeepingSvc, broker, m, logger)

	sweepWorker := worker.NewSweepWorker(sweepSvc, cfg.SweepInterval, logger)

	metricsSrv := serveMetrics(cfg.MetricsAddr, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info().Msg("shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown failed")
		}
	}()

	logger.Info().Dur("interval", cfg.SweepInterval).Msg("sweep worker started")
	sweepWorker.Start(ctx)
}

func serveMetrics(addr string, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server failed")
			os.Exit(1)
		}
	}()
	return srv
}
