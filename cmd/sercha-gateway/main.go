package main

// @title           Sercha Gateway API
// @version         1.0
// @description     Credential authentication and an authenticated gateway to the upstream product API.

// @contact.name   Sercha OSS
// @contact.url    https://github.com/custodia-labs/sercha-gateway/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"log/slog"
	"os"

	"github.com/custodia-labs/sercha-gateway/internal/adapters/driven/auth"
	"github.com/custodia-labs/sercha-gateway/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/sercha-gateway/internal/adapters/driven/redis"
	"github.com/custodia-labs/sercha-gateway/internal/adapters/driven/transport"
	"github.com/custodia-labs/sercha-gateway/internal/adapters/driving/http"
	"github.com/custodia-labs/sercha-gateway/internal/config"
	"github.com/custodia-labs/sercha-gateway/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-gateway/internal/core/services"
	"github.com/custodia-labs/sercha-gateway/internal/logger"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.LogLevel)
	log.Info("sercha-gateway starting", "version", version)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// ===== Initialize PostgreSQL =====
	log.Info("connecting to PostgreSQL")
	db, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      cfg.Database.RetryDelay,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	// Initialize schema (idempotent)
	if err := db.InitSchema(ctx); err != nil {
		return err
	}
	log.Info("PostgreSQL connected and schema initialized")

	// ===== Initialize Redis (optional) =====
	var (
		cache       driven.Cache
		cachePinger http.Pinger
	)
	if cfg.Redis.URL != "" {
		log.Info("connecting to Redis")
		client, err := redisadapter.NewClient(redisadapter.ClientConfig{
			URL:        cfg.Redis.URL,
			MaxRetries: cfg.Redis.MaxRetries,
			RetryDelay: cfg.Redis.RetryDelay,
		})
		if err != nil {
			return err
		}
		defer client.Close()

		redisCache := redisadapter.NewCache(client, cfg.Redis.Namespace)
		if err := redisCache.Ping(ctx); err != nil {
			return err
		}
		cache, cachePinger = redisCache, redisCache
		log.Info("Redis connected")
	} else {
		log.Warn("REDIS_URL not set, caching disabled")
	}

	// ===== Driven adapters =====
	authAdapter := auth.NewAdapterWithCost(cfg.Auth.JWTSecret, cfg.Auth.BcryptCost).
		WithTokenTTL(cfg.Auth.JWTTTL)
	directory := postgres.NewUserDirectory(db)
	httpTransport := transport.NewHTTPTransport(cfg.Upstream.Timeout)

	// ===== Services =====
	authService := services.NewAuthService(directory, authAdapter, log)
	userService := services.NewUserService(directory, cache, cfg.Cache.UserTTL, log)
	gateway := services.NewGateway(httpTransport, services.GatewayConfig{
		BaseURL: cfg.Upstream.BaseURL,
		Token:   cfg.Upstream.Token,
	}, log)
	productService := services.NewProductService(gateway, cache, cfg.Cache.ProductsTTL, log)

	// ===== HTTP server =====
	server := http.NewServer(
		http.Config{Host: cfg.Host, Port: cfg.Port, Version: version},
		authService,
		userService,
		productService,
		db,
		cachePinger,
		log,
	)
	return server.Start()
}
