package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"clinic-auth/internal/auth"
	"clinic-auth/internal/db"
	"clinic-auth/internal/maintenance"
	"clinic-auth/internal/observability"
)

type Options struct {
	LoadDotEnv    bool
	RunMigrations bool
}

type Runtime struct {
	Handler http.Handler
	Close   func()
}

// Build wires the session core, its Postgres stores and the HTTP surface
// into a ready-to-serve handler.
func Build(ctx context.Context, options Options) (*Runtime, error) {
	if options.LoadDotEnv {
		_ = godotenv.Load()
	}

	logger := observability.NewLogger()

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return nil, err
	}

	if err := observability.InitSentry(os.Getenv("SENTRY_DSN"), envOrDefault("APP_ENV", "development")); err != nil {
		logger.Error("init_sentry_failed", map[string]any{"error": err.Error()})
	}

	pool, err := db.NewPool(ctx, databaseURL, int32(envIntOrDefault("DB_MAX_CONNS", 10)))
	if err != nil {
		return nil, err
	}

	if options.RunMigrations {
		if err := db.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	securityCfg := auth.Config{
		MaxAttempts:   envIntOrDefault("LOGIN_MAX_ATTEMPTS", 5),
		LockDuration:  envMinutesOrDefault("LOGIN_LOCK_MINUTES", 15),
		AccessTTL:     envMinutesOrDefault("ACCESS_TOKEN_TTL_MINUTES", 15),
		RefreshTTL:    envHoursOrDefault("REFRESH_TOKEN_TTL_HOURS", 24),
		RememberMeTTL: envHoursOrDefault("REMEMBER_ME_TTL_HOURS", 720),
		BackoffBase:   envSecondsOrDefault("LOGIN_BACKOFF_BASE_SECONDS", 2),
		BackoffCap:    envSecondsOrDefault("LOGIN_BACKOFF_CAP_SECONDS", 60),
		StoreTimeout:  envSecondsOrDefault("STORE_TIMEOUT_SECONDS", 5),
	}

	repo := auth.NewRepository(pool)
	guard := auth.NewLockoutGuard(repo, securityCfg)
	sessions := auth.NewSessionManager(repo, securityCfg, logger)
	service := auth.NewService(repo, guard, sessions, securityCfg)
	handler := auth.NewHandler(service, guard, sessions)

	cleanupHandler := maintenance.NewCleanupHandler(
		sessions,
		guard,
		logger,
		os.Getenv("CRON_SECRET"),
		envIntOrDefault("TOKEN_CLEANUP_BATCH_SIZE", 500),
	)

	loginLimiter := auth.NewLoginRateLimiter(
		envIntOrDefault("LOGIN_RATE_LIMIT_MAX", 10),
		envSecondsOrDefault("LOGIN_RATE_LIMIT_WINDOW_SECONDS", 60),
	)

	mux := http.NewServeMux()
	mux.Handle("POST /auth/login", loginLimiter.Middleware(http.HandlerFunc(handler.Login)))
	mux.HandleFunc("POST /auth/refresh", handler.Refresh)
	mux.HandleFunc("POST /auth/logout", handler.Logout)
	mux.Handle("GET /admin/security-status", auth.Middleware(sessions, http.HandlerFunc(handler.SecurityStatus)))
	mux.Handle("POST /admin/unlock", auth.Middleware(sessions, http.HandlerFunc(handler.Unlock)))
	mux.HandleFunc("GET /internal/maintenance/cleanup", cleanupHandler.Handle)
	mux.HandleFunc("POST /internal/maintenance/cleanup", cleanupHandler.Handle)
	mux.HandleFunc("GET /health", healthHandler(pool))

	wrapped := observability.RecoverMiddleware(logger, observability.RequestLoggingMiddleware(logger, mux))

	return &Runtime{
		Handler: wrapped,
		Close: func() {
			observability.FlushSentry()
			pool.Close()
		},
	}, nil
}

func healthHandler(pool interface {
	Ping(ctx context.Context) error
}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		body := `{"status":"ok"}`
		if err := pool.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body = `{"status":"degraded"}`
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func mustEnv(name string) (string, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return "", fmt.Errorf("missing required env: %s", name)
	}
	return value, nil
}

func envOrDefault(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envIntOrDefault(name string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envMinutesOrDefault(name string, fallback int) time.Duration {
	return time.Duration(envIntOrDefault(name, fallback)) * time.Minute
}

func envHoursOrDefault(name string, fallback int) time.Duration {
	return time.Duration(envIntOrDefault(name, fallback)) * time.Hour
}

func envSecondsOrDefault(name string, fallback int) time.Duration {
	return time.Duration(envIntOrDefault(name, fallback)) * time.Second
}
