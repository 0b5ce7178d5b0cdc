// @title                       E-commerce API
// @version                     1.0
// @description                 Authentication and catalog service for the marketplace storefront.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dawa-marketplace/ecommerce-api/internal/api"
	"github.com/dawa-marketplace/ecommerce-api/internal/api/handler"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/ports"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/service"
	mongostore "github.com/dawa-marketplace/ecommerce-api/internal/infrastructure/db/mongo"
	"github.com/dawa-marketplace/ecommerce-api/internal/infrastructure/db/postgres"
	rediscache "github.com/dawa-marketplace/ecommerce-api/internal/infrastructure/db/redis"
	"github.com/dawa-marketplace/ecommerce-api/internal/infrastructure/queue"
	"github.com/dawa-marketplace/ecommerce-api/internal/pkg/config"
	"github.com/dawa-marketplace/ecommerce-api/pkg/logger"
)

const (
	serviceName     = "ecommerce-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		// Init is a no-op when run got far enough to configure the logger.
		log := logger.Init(logger.Options{Service: serviceName})
		log.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	// --- Relational store (users, roles, catalog) ---
	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN, AutoMigrate: cfg.Postgres.AutoMigrate})
	if err != nil {
		return err
	}
	defer func() { _ = postgres.Close(db) }()
	log.Info().Bool("auto_migrate", cfg.Postgres.AutoMigrate).Msg("postgres connected")

	readiness := map[string]handler.Pinger{
		"postgres": func(ctx context.Context) error { return postgres.Ping(ctx, db) },
	}

	// --- Audit trail store (optional) ---
	var auditRepo ports.AuditRepository
	if cfg.Mongo.URI != "" {
		store, err := mongostore.OpenAuditStore(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return err
		}
		defer func() { _ = store.Close(context.Background()) }()

		auditRepo = store.Audit()
		readiness["mongodb"] = store.Ping
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected, audit trail persisted")
	} else {
		log.Warn().Msg("MONGO_URI not set, audit events are only logged")
	}

	// --- Catalog cache (optional) ---
	var cache ports.CatalogCache
	if cfg.Redis.Addr != "" {
		catalogCache, err := rediscache.OpenCatalogCache(ctx, rediscache.Config{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			ClientName: serviceName,
			CacheTTL:   cfg.Redis.CacheTTL,
		})
		if err != nil {
			return err
		}
		defer func() { _ = catalogCache.Close() }()

		cache = catalogCache
		readiness["redis"] = catalogCache.Ping
		log.Info().Dur("ttl", cfg.Redis.CacheTTL).Msg("redis connected, catalog cache enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, catalog cache disabled")
	}

	// --- Services ---
	tokens, err := service.NewTokenService(service.TokenConfig{Secret: cfg.Auth.JWTSecret})
	if err != nil {
		return err
	}

	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, service.NewAuditService(auditRepo, log), log)
	authService := service.NewAuthService(
		postgres.NewAuthRepository(db),
		service.NewBcryptHasher(cfg.Auth.BcryptCost),
		tokens,
		dispatcher,
		cfg.Auth.JWTExpiresIn,
		log,
	)

	e := api.NewRouter(api.Deps{
		Auth:           authService,
		Tokens:         tokens,
		Products:       service.NewProductService(postgres.NewProductRepository(db), cache, log),
		Categories:     service.NewCategoryService(postgres.NewCategoryRepository(db), cache, log),
		Readiness:      readiness,
		AllowedOrigins: cfg.Origins(),
		ExposeErrors:   !cfg.IsProduction(),
		Log:            log,
	})

	g, gctx := errgroup.WithContext(ctx)

	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	dispatcher.Start(workersCtx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := e.Shutdown(shutdownCtx)

		// in-flight requests are done; let the audit workers stop
		stopWorkers()
		dispatcher.Wait()
		return err
	})

	return g.Wait()
}
