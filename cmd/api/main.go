package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/profitpulse/profitpulse-api/internal/config"
	appHTTP "github.com/profitpulse/profitpulse-api/internal/handler/http"
	"github.com/profitpulse/profitpulse-api/internal/pkg/cache"
	"github.com/profitpulse/profitpulse-api/internal/pkg/cron"
	"github.com/profitpulse/profitpulse-api/internal/pkg/database"
	"github.com/profitpulse/profitpulse-api/internal/pkg/jwt"
	"github.com/profitpulse/profitpulse-api/internal/repository/postgresql"
	serviceAuth "github.com/profitpulse/profitpulse-api/internal/service/auth"
	dashboardService "github.com/profitpulse/profitpulse-api/internal/service/dashboard"
	rbacService "github.com/profitpulse/profitpulse-api/internal/service/rbac"
	settingsService "github.com/profitpulse/profitpulse-api/internal/service/settings"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.MigrationsDir != "" {
		if err := db.Migrate(ctx, cfg.Database.MigrationsDir); err != nil {
			return fmt.Errorf("error applying migrations: %w", err)
		}
	}

	var factsCache cache.Cache = cache.NoopCache{}
	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, "profitpulse:")
		if err != nil {
			return fmt.Errorf("error connecting to redis: %w", err)
		}
		factsCache = redisCache
		slog.Info("Facts cache enabled", "ttl", cfg.Cache.TTL)
	}
	defer factsCache.Close()

	accessExpiration, err := time.ParseDuration(cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("invalid access token expiration: %w", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	profitabilityRepo := postgresql.NewProfitabilityRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, accessExpiration)
	evaluator := rbacService.NewEvaluator(settingsRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo, evaluator)
	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)
	dashboardSvc := dashboardService.NewDashboardService(profitabilityRepo, settingsSvc, factsCache, cfg.Cache.TTL)

	// Surface a broken override document at boot; the evaluator falls back to defaults either way.
	if err := evaluator.Reload(ctx); err != nil {
		slog.Warn("Starting with default RBAC matrix", "error", err)
	}

	scheduler := cron.NewScheduler()
	cron.NewRBACJobs(evaluator, cfg.RBAC.RefreshInterval).RegisterJobs(scheduler)
	if cfg.Cache.RedisURL != "" {
		cron.NewFactsJobs(dashboardSvc, cfg.Cache.RefreshInterval).RegisterJobs(scheduler)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, JWTService, evaluator, appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(JWTService, authSvc),
		Dashboard: appHTTP.NewDashboardHandler(dashboardSvc),
		Settings:  appHTTP.NewSettingsHandler(settingsSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		slog.Info("Server shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
