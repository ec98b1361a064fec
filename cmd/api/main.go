package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/olsam100/lendsqr-admin-api/api/routes"
	"github.com/olsam100/lendsqr-admin-api/internal/auth"
	"github.com/olsam100/lendsqr-admin-api/internal/search"
	"github.com/olsam100/lendsqr-admin-api/internal/users"
	"github.com/olsam100/lendsqr-admin-api/pkg/auth/session"
	"github.com/olsam100/lendsqr-admin-api/pkg/config"
	"github.com/olsam100/lendsqr-admin-api/pkg/logger"
	"github.com/olsam100/lendsqr-admin-api/pkg/metrics"
	"github.com/olsam100/lendsqr-admin-api/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	cacheMetrics := metrics.NewCacheMetrics(registry)

	gateway := users.NewHTTPGateway(cfg, logg)
	cache := users.NewCache(cfg.Cache, gateway, logg, cacheMetrics)
	searchBus := search.NewBus()
	usersService := users.NewService(cache, searchBus, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting admin api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:         cfg,
			Logger:         logg,
			Redis:          redisClient,
			SessionChecker: sessionManager,
			AuthService:    authService,
			UsersService:   usersService,
			SearchBus:      searchBus,
			Upstream:       gateway,
			HTTPMetrics:    httpMetrics,
			Gatherer:       registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "admin api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
