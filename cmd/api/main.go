// CatalogHQ | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cataloghq/catalog-api/internal/admin"
	"github.com/cataloghq/catalog-api/internal/auth"
	"github.com/cataloghq/catalog-api/internal/category"
	"github.com/cataloghq/catalog-api/internal/config"
	"github.com/cataloghq/catalog-api/internal/core"
	"github.com/cataloghq/catalog-api/internal/health"
	"github.com/cataloghq/catalog-api/internal/middleware"
	"github.com/cataloghq/catalog-api/internal/product"
	"github.com/cataloghq/catalog-api/internal/server"
	"github.com/cataloghq/catalog-api/internal/staff"
	"github.com/cataloghq/catalog-api/internal/storage"
	"github.com/cataloghq/catalog-api/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("object store initialized",
		"backend", cfg.Storage.Backend,
		"public_base_url", cfg.Storage.PublicBaseURL,
	)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, userSvc, cfg.Auth.TokenTTL)
	authSvc.StartTokenJanitor(ctx, time.Hour)
	authHandler := auth.NewHandler(authSvc)

	staffRepo := staff.NewRepository(db.DB)
	staffSvc := staff.NewService(staffRepo)
	staffHandler := staff.NewHandler()

	categoryRepo := category.NewRepository(db.DB)
	categorySvc := category.NewService(categoryRepo, store)
	categoryHandler := category.NewHandler(categorySvc)

	productRepo := product.NewRepository(db.DB)
	productSvc := product.NewService(productRepo, store)
	productHandler := product.NewHandler(productSvc)

	healthHandler := health.NewHandler(
		health.NamedChecker{Name: "database", Checker: db},
		health.NamedChecker{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:      db.Stats,
		RedisStats:   redis.PoolStats,
		DBPing:       db.Ping,
		RedisPing:    redis.Ping,
		RegisterUser: authHandler.Register,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	if cfg.Storage.Backend == "disk" {
		fileServer := http.StripPrefix(
			"/storage/",
			http.FileServer(http.Dir(cfg.Storage.DiskRoot)),
		)
		router.Get("/storage/*", fileServer.ServeHTTP)
	}

	authenticator := middleware.Authenticator(authSvc)
	requireStaff := middleware.RequireStaff(staffSvc)

	router.Route(cfg.Server.BasePath, func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		categoryHandler.RegisterRoutes(r, authenticator)
		productHandler.RegisterRoutes(r, authenticator)
		staffHandler.RegisterRoutes(r, authenticator, requireStaff)
		adminHandler.RegisterRoutes(r, authenticator, requireStaff)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
