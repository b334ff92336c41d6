package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"vgauth/internal/caching"
	"vgauth/internal/config"
	"vgauth/internal/handlers"
	"vgauth/internal/metrics"
	"vgauth/internal/middleware"
	"vgauth/internal/repositories"
	"vgauth/internal/services"
	"vgauth/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	os.Exit(finish(logger, run(cfg, logger)))
}

// finish logs the outcome of run and flushes the logger before the process
// exits, returning the exit code.
func finish(logger *zap.Logger, err error) int {
	code := 0
	if err != nil {
		logger.Error("Server stopped", zap.Error(err))
		code = 1
	}
	_ = logger.Sync()
	return code
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.GeneratedJWTSecret {
		logger.Warn("No JWT secret configured, using a generated one; issued tokens will not survive a restart")
	}

	// Database connection
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	// Tenant cache
	cache := caching.NewNoopCacheService()
	if cfg.Redis.Addr != "" {
		cache = caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	} else {
		logger.Info("REDIS_ADDR not set, tenant cache disabled")
	}

	m := metrics.New()

	// Initialize repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	userRepo := repositories.NewUserRepo(pool)

	// Initialize services
	passwordService := services.NewPasswordService(cfg.BcryptCost, cfg.HashConcurrency, m)
	tokenService := services.NewTokenService(cfg.JWTSecret)
	tenantService := services.NewTenantService(tenantRepo, cache, cfg.Redis.TenantCacheTTL, logger)
	userService := services.NewUserService(userRepo, tenantService, passwordService, logger)
	authService := services.NewAuthService(userRepo, passwordService, tokenService, m, logger)

	router := &handlers.Router{
		Tenants:     handlers.NewTenantHandlers(tenantService, logger),
		Users:       handlers.NewUserHandlers(userService, logger),
		Auth:        handlers.NewAuthHandlers(authService, logger),
		Health:      handlers.NewHealthHandlers(pool, cache, version, logger),
		Tokens:      tokenService,
		AdminSecret: cfg.AuthenticateSecret,
		Metrics:     m,
		Logger:      logger,
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.RequestMetrics(m))
	e.Use(middleware.VersionHeader(version))

	router.RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", cfg.Addr()), zap.String("version", version))
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
