package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carewatch/monitoring-api/internal/api"
	"github.com/carewatch/monitoring-api/internal/infrastructure/config"
	"github.com/carewatch/monitoring-api/internal/infrastructure/db/postgres"
	redisdb "github.com/carewatch/monitoring-api/internal/infrastructure/db/redis"
	"github.com/carewatch/monitoring-api/internal/infrastructure/mlclient"
	"github.com/carewatch/monitoring-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, using development fallback (NOT SECURE FOR PRODUCTION)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, cfg.Postgres.URL, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()

	if err := postgres.InitSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("schema init failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	ml := mlclient.New(cfg.ML.ServiceURL, 0)

	e := api.NewRouter(ctx, pool, rdb, ml, api.Options{
		JWTSecret:     cfg.JWTSecret,
		TokenTTL:      time.Duration(cfg.TokenExpirationHours) * time.Hour,
		IngestWorkers: cfg.IngestWorkers,
	}, logger.Component("http"))

	go func() {
		log.Info().Str("port", cfg.Port).Msg("monitoring api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
