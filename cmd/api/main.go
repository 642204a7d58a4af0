package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/hotelworks/hotel-api/internal/config"
	"github.com/hotelworks/hotel-api/internal/email"
	authHandler "github.com/hotelworks/hotel-api/internal/handler/auth"
	bookingHandler "github.com/hotelworks/hotel-api/internal/handler/booking"
	catalogHandler "github.com/hotelworks/hotel-api/internal/handler/catalog"
	healthHandler "github.com/hotelworks/hotel-api/internal/handler/health"
	housekeepingHandler "github.com/hotelworks/hotel-api/internal/handler/housekeeping"
	roomHandler "github.com/hotelworks/hotel-api/internal/handler/room"
	shiftHandler "github.com/hotelworks/hotel-api/internal/handler/shift"
	userHandler "github.com/hotelworks/hotel-api/internal/handler/user"
	"github.com/hotelworks/hotel-api/internal/middleware"
	"github.com/hotelworks/hotel-api/internal/repository/postgres"
	"github.com/hotelworks/hotel-api/internal/router"
	authService "github.com/hotelworks/hotel-api/internal/service/auth"
	bookingService "github.com/hotelworks/hotel-api/internal/service/booking"
	catalogService "github.com/hotelworks/hotel-api/internal/service/catalog"
	housekeepingService "github.com/hotelworks/hotel-api/internal/service/housekeeping"
	roomService "github.com/hotelworks/hotel-api/internal/service/room"
	shiftService "github.com/hotelworks/hotel-api/internal/service/shift"
	userService "github.com/hotelworks/hotel-api/internal/service/user"
	"github.com/hotelworks/hotel-api/pkg/auth"
	"github.com/hotelworks/hotel-api/pkg/logger"
	"github.com/hotelworks/hotel-api/pkg/messaging/redis"
	"github.com/hotelworks/hotel-api/pkg/metrics"
	"github.com/hotelworks/hotel-api/pkg/security"
	"github.com/hotelworks/hotel-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	appLogger := logger.New("hotel-api", logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	shiftRepo := postgres.NewShiftRepository(db)
	housekeepingRepo := postgres.NewHousekeepingRepository(db)
	roomRepo := postgres.NewRoomRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpiryHours)*time.Hour,
		time.Duration(cfg.JWT.RefreshExpiryHours)*time.Hour,
	)
	hasher := security.NewBcryptHasher(0)
	var encryptor security.Encryptor
	if key := cfg.Security.EncryptionKey; key != "" {
		encryptor, err = security.NewAESEncryptor([]byte(key))
		if err != nil {
			log.Fatal().Err(err).Msg("invalid identity document encryption key")
		}
	}
	emailSvc := email.NewService(cfg.Email)
	m := metrics.NewMetrics("hotel_api", "workflow")
	go func() {
		for range time.Tick(15 * time.Second) {
			m.DatabaseConnections.Set(float64(db.Stats().OpenConnections))
		}
	}()

	authSvc := authService.NewService(userRepo, profileRepo, jwtSvc, hasher, emailSvc, appLogger)
	userSvc := userService.NewService(userRepo, profileRepo, hasher)
	shiftSvc := shiftService.NewService(shiftRepo, profileRepo, broker, emailSvc, appLogger)
	housekeepingSvc := housekeepingService.NewService(housekeepingRepo, shiftRepo, profileRepo, roomRepo, broker, m, appLogger)
	roomSvc := roomService.NewService(roomRepo)
	catalogSvc := catalogService.NewService(catalogRepo, housekeepingRepo, shiftRepo)
	bookingSvc := bookingService.NewService(bookingRepo, roomRepo, encryptor, emailSvc, appLogger)

	// The workflow depends on well known status rows. Refuse to serve
	// requests against a database missing them.
	if err := catalogSvc.ValidateStatusCatalogs(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("status catalog validation failed")
	}

	validate := validator.New()
	authMiddleware := middleware.NewAuthMiddleware(authSvc, userSvc)

	healthH := healthHandler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc, validate)
	userH := userHandler.NewHandler(userSvc, validate)
	shiftH := shiftHandler.NewHandler(shiftSvc, validate)
	housekeepingH := housekeepingHandler.NewHandler(housekeepingSvc, validate)
	roomH := roomHandler.NewHandler(roomSvc, validate)
	catalogH := catalogHandler.NewHandler(catalogSvc, validate)
	bookingH := bookingHandler.NewHandler(bookingSvc, validate)

	r := router.NewRouter(
		authMiddleware,
		authH,
		userH,
		shiftH,
		housekeepingH,
		roomH,
		catalogH,
		bookingH,
		healthH,
		router.RouterConfig{
			RateLimit:     rate.Limit(100),
			RateBurst:     200,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "hotel_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
