// Command server runs the store rating API.
//
// @title                       Store Rating API
// @version                     1.0
// @description                 Users rate stores from 1 to 5; owners and admins read aggregated feedback.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	_ "github.com/storerating/rating-api/docs"
	"github.com/storerating/rating-api/internal/api"
	"github.com/storerating/rating-api/internal/api/handler"
	"github.com/storerating/rating-api/internal/core/service"
	"github.com/storerating/rating-api/internal/infrastructure/db/mongo"
	"github.com/storerating/rating-api/internal/infrastructure/db/redis"
	"github.com/storerating/rating-api/internal/infrastructure/queue"
	"github.com/storerating/rating-api/internal/pkg/config"
	"github.com/storerating/rating-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "rating-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server exited")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Storage ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "rating-api",
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	users := mongo.NewUserRepository(db, cfg.Mongo.Timeout)
	stores := mongo.NewStoreRepository(db, cfg.Mongo.Timeout)
	ratings := mongo.NewRatingRepository(db, cfg.Mongo.Timeout)
	events := mongo.NewEventRepository(db, cfg.Mongo.Timeout)

	if err := mongo.EnsureIndexes(ctx, users, stores, ratings, events); err != nil {
		return err
	}
	cache := redis.NewStoreCache(rdb, cfg.Redis.CacheTTL)

	// --- Core services ---
	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}
	authService := service.NewAuthService(users, tokens, logger.Component("auth"))
	storeService := service.NewStoreService(stores, users, ratings, cache, logger.Component("stores"))
	eventService := service.NewRatingEventService(events, stores, logger.Component("rating_events"))

	dispatcher := queue.NewDispatcher(cfg.EventWorkers, eventService, logger.Component("dispatcher"))
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	ratingService := service.NewRatingService(ratings, stores, users, cache, dispatcher, logger.Component("ratings"))

	// --- HTTP ---
	e := api.NewRouter(api.Services{
		Tokens:     tokens,
		Auth:       authService,
		Stores:     storeService,
		Ratings:    ratingService,
		Admin:      service.NewAdminService(authService, storeService, users),
		Events:     eventService,
		Dashboards: service.NewDashboardService(users, stores, ratings),
		HealthChecks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error {
				return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
			},
			"redis": func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
			"mongodb_breakers": mongo.BreakerCheck(users, stores, ratings, events),
		},
	}, log, prometheus.DefaultRegisterer)

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
