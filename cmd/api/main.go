package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lettertrail/platform/internal/app"
	"github.com/lettertrail/platform/internal/auth"
	"github.com/lettertrail/platform/internal/infra"
	"github.com/lettertrail/platform/internal/repository"
	"github.com/lettertrail/platform/internal/service"
	"github.com/lettertrail/platform/internal/ws"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Apply migrations
	if err := infra.RunMigrations(cfg.DSN(), logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Connect to Postgres
	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to postgres")

	// Redis challenge cache (optional)
	redisClient, err := infra.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("connected to redis")
	} else {
		logger.Info("redis disabled, challenge cache off")
	}

	adminExpiry, err := time.ParseDuration(cfg.JWTAdminExpiry)
	if err != nil {
		return fmt.Errorf("parse admin JWT expiry: %w", err)
	}
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, adminExpiry)

	// Bootstrap the console operator account
	adminAuthSvc := service.NewAdminAuthService(pool, repository.NewAdminUserRepository(), jwtMgr)
	if err := adminAuthSvc.EnsureBootstrapAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	// Live location feed for the console
	hub := ws.NewHub(logger)

	r := app.NewRouter(app.RouterDeps{
		Pool:                  pool,
		Redis:                 redisClient,
		JWTMgr:                jwtMgr,
		Logger:                logger,
		Hub:                   hub,
		EnforceChallengeOrder: cfg.EnforceChallengeOrder,
		LocationRetention:     cfg.LocationRetention,
		CORSAllowedOrigins:    cfg.CORSAllowedOrigins,
		RateLimitPerMinute:    cfg.RateLimitPerMinute,
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}

	// Shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.Shutdown(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
