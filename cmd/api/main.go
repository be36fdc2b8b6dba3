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
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/api/controllers"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/api/middleware"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/api/routes"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/internal/auth"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/internal/settings"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/internal/users"
	pkgauth "github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/auth"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/auth/session"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/config"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/db"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/logger"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/metrics"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/migrate"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/redis"
	"github.com/Himanshu-Suchak7/jalaram-khakhra-oms-be/pkg/security"
)

const shutdownTimeout = 15 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}

	defer func() {
		if err := multierr.Combine(dbClient.Close(), redisClient.Close()); err != nil {
			logg.Error(context.Background(), "error closing clients", err)
		}
	}()

	tokens, err := pkgauth.NewTokenService(cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create token service", err)
		os.Exit(1)
	}
	hasher := security.NewHasher(cfg.Password)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	authMetrics := metrics.NewAuthMetrics(registry)

	userRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:         userRepo,
		Tokens:           tokens,
		Hasher:           hasher,
		Metrics:          authMetrics,
		Logger:           logg,
		UnifyLoginErrors: cfg.Password.UnifyLoginErrors,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(users.ServiceParams{Repo: userRepo, Hasher: hasher, Logger: logg})
	if err != nil {
		logg.Error(ctx, "failed to create users service", err)
		os.Exit(1)
	}

	settingsService, err := settings.NewService(settings.NewRepository(dbClient), logg)
	if err != nil {
		logg.Error(ctx, "failed to create settings service", err)
		os.Exit(1)
	}

	readiness := map[string]controllers.Pinger{"database": dbClient}
	var rateLimiter middleware.RateLimitStore
	if redisClient != nil {
		readiness["redis"] = redisClient
		rateLimiter = redisClient
	}

	handler := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		Tokens:      tokens,
		Cookies:     session.NewCookiePolicy(*cfg),
		Auth:        authService,
		Users:       usersService,
		Settings:    settingsService,
		Readiness:   readiness,
		RateLimiter: rateLimiter,
		AuthMetrics: authMetrics,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		Gatherer:    registry,
	})

	addr := ":" + cfg.App.Port
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":            cfg.App.Env,
		"addr":           addr,
		"rate_limiting":  rateLimiter != nil,
		"secure_cookies": cfg.Cookie.SecureFor(cfg.App),
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(serverCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(serverCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(serverCtx, "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(serverCtx, "graceful shutdown failed", err)
	}
}
