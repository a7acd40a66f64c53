package api

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/carewatch/monitoring-api/internal/api/handler"
	"github.com/carewatch/monitoring-api/internal/api/middleware"
	"github.com/carewatch/monitoring-api/internal/core/service"
	"github.com/carewatch/monitoring-api/internal/infrastructure/db/postgres"
	redisdb "github.com/carewatch/monitoring-api/internal/infrastructure/db/redis"
	"github.com/carewatch/monitoring-api/internal/infrastructure/mlclient"
	"github.com/carewatch/monitoring-api/internal/infrastructure/queue"
)

// Options carries the process-wide settings the router needs.
type Options struct {
	JWTSecret     string
	TokenTTL      time.Duration
	IngestWorkers int
}

// NewRouter builds the Echo instance with all routes registered and starts
// the ingest dispatcher workers. Workers stop when ctx is cancelled.
func NewRouter(ctx context.Context, pool *pgxpool.Pool, rdb *goredis.Client, ml *mlclient.Client, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("monitor"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	readingRepo := postgres.NewReadingRepository(pool)
	dedup := redisdb.NewDedupChecker(rdb)

	tokenService := service.NewTokenService(opts.JWTSecret, opts.TokenTTL)
	authService := service.NewAuthService(userRepo, service.NewBcryptHasher(), tokenService, log)
	readingService := service.NewReadingService(readingRepo, dedup, log)

	dispatcher := queue.NewDispatcher(opts.IngestWorkers, readingService, log)
	dispatcher.Start(ctx)

	authHandler := handler.NewAuthHandler(authService)
	readingHandler := handler.NewReadingHandler(dispatcher, readingRepo)
	mlHandler := handler.NewMLHandler(ml, log)
	requireAuth := middleware.Auth(tokenService)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.GET("/verify", authHandler.Verify)
	auth.GET("/me", authHandler.Me)

	// --- Telemetry routes (bearer token required) ---
	readings := e.Group("/v1/readings", requireAuth)
	readings.POST("", readingHandler.Receive)
	readings.POST("/batch", readingHandler.ReceiveBatch)
	readings.GET("", readingHandler.List)

	// --- ML routes ---
	e.POST("/v1/ml/classify", mlHandler.Classify, requireAuth)
	e.GET("/v1/ml/health", mlHandler.Health)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb, ml)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
