// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/washtrack/washtrack/internal/admin"
	"github.com/washtrack/washtrack/internal/analytics"
	"github.com/washtrack/washtrack/internal/auth"
	"github.com/washtrack/washtrack/internal/billing"
	"github.com/washtrack/washtrack/internal/config"
	"github.com/washtrack/washtrack/internal/core"
	"github.com/washtrack/washtrack/internal/expense"
	"github.com/washtrack/washtrack/internal/health"
	"github.com/washtrack/washtrack/internal/middleware"
	"github.com/washtrack/washtrack/internal/order"
	"github.com/washtrack/washtrack/internal/server"
	"github.com/washtrack/washtrack/internal/settings"
	"github.com/washtrack/washtrack/internal/storage"
	"github.com/washtrack/washtrack/internal/user"
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
	core.SetExposeInternals(!cfg.IsProduction())

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

	blobStore, err := storage.NewLocalStore(
		cfg.Uploads.Dir,
		cfg.Uploads.MaxSizeBytes,
	)
	if err != nil {
		return err
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	sessions := auth.NewSessionStore(redis.Client, cfg.Session.TTL)
	authSvc := auth.NewService(userSvc, sessions)
	authHandler := auth.NewHandler(authSvc, cfg.Session)

	settingsRepo := settings.NewRepository(db.DB)
	settingsSvc := settings.NewService(settingsRepo, blobStore, logger)
	settingsHandler := settings.NewHandler(settingsSvc, cfg.Uploads.MaxSizeBytes)

	orderRepo := order.NewRepository(db.DB)
	orderSvc := order.NewService(orderRepo, logger)
	orderHandler := order.NewHandler(orderSvc, billing.NewPDFRenderer(), settingsSvc)

	expenseRepo := expense.NewRepository(db.DB)
	expenseSvc := expense.NewService(expenseRepo, blobStore, logger)
	expenseHandler := expense.NewHandler(expenseSvc, cfg.Uploads.MaxSizeBytes)

	analyticsRepo := analytics.NewRepository(db.DB)
	analyticsSvc := analytics.NewService(analyticsRepo)
	analyticsHandler := analytics.NewHandler(analyticsSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
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

	authenticator := middleware.NewAuthenticator(
		userSvc,
		sessions,
		cfg.Session.CookieName,
	)

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator.Optional)

		orderHandler.RegisterRoutes(r, authenticator.Require)
		expenseHandler.RegisterRoutes(r, authenticator.Require)
		analyticsHandler.RegisterRoutes(r, authenticator.Require)
		settingsHandler.RegisterRoutes(r, authenticator.Require)
		userHandler.RegisterRoutes(r, authenticator.Require)
		adminHandler.RegisterRoutes(r, authenticator.Require)
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
