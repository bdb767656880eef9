// @title        Iron Guard Inventory API
// @version      1.0
// @description  Inventory server with token-based sign-in and admin-guarded writes.
// @BasePath     /
//
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironguard/inventory-server/internal/api"
	"github.com/ironguard/inventory-server/internal/api/handler"
	"github.com/ironguard/inventory-server/internal/core/service"
	"github.com/ironguard/inventory-server/internal/infrastructure/db/mongo"
	"github.com/ironguard/inventory-server/internal/infrastructure/db/redis"
	"github.com/ironguard/inventory-server/internal/infrastructure/password"
	"github.com/ironguard/inventory-server/internal/infrastructure/queue"
	"github.com/ironguard/inventory-server/internal/infrastructure/token"
	"github.com/ironguard/inventory-server/internal/pkg/config"
	"github.com/ironguard/inventory-server/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "iron-guard",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongo")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() { _ = rdb.Close() }()

	codec, err := token.NewJWTCodec(cfg.JWTSecret, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("token codec")
	}

	pool := queue.NewVerifierPool(cfg.VerifyWorkers, password.Verify, logger.Component("verifier"))
	pool.Start(ctx)

	users := mongo.NewUserRepository(db)
	categories := mongo.NewCategoryRepository(db)
	items := mongo.NewItemRepository(db)
	idem := redis.NewIdempotencyStore(rdb, cfg.IdempotencyTTL)

	userService := service.NewUserService(users, password.Hash, idem, logger.Component("users"))
	if cfg.Seed.Enabled() {
		if _, err := userService.EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("seed admin")
		}
	}

	e := api.NewRouter(api.Dependencies{
		Auth:       service.NewAuthService(users, pool, codec, nil, logger.Component("auth")),
		Users:      userService,
		Categories: service.NewCategoryService(categories, items, idem, logger.Component("categories")),
		Items:      service.NewItemService(items, categories, idem, logger.Component("items")),
		Overview:   service.NewOverviewService(users, categories, items),
		Codec:      codec,
		Checks: []handler.HealthCheck{
			{Name: "mongodb", Ping: func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) }},
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
		Logger: logger.Component("http"),
	})
	e.Server.ReadHeaderTimeout = cfg.ReadTimeout
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
