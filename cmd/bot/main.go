package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	glowbotroot "github.com/glowhaven/glowbot"
	"github.com/glowhaven/glowbot/internal/config"
	"github.com/glowhaven/glowbot/internal/handler"
	"github.com/glowhaven/glowbot/internal/middleware"
	"github.com/glowhaven/glowbot/internal/repository"
	"github.com/glowhaven/glowbot/internal/server"
	"github.com/glowhaven/glowbot/internal/service"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load salon time zone", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(glowbotroot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := repository.NewStore(pool)

	// Initialize services
	sessionService := service.NewSessionService(store)
	catalogService := service.NewCatalogService(store)
	availabilityService := service.NewAvailabilityService(store, cfg, loc)
	bookingService := service.NewBookingService(store)
	paymentService := service.NewPaymentService(store)
	feedbackService := service.NewFeedbackService(store)

	// Initialize handler
	h := handler.New(handler.Deps{
		Sessions:     sessionService,
		Catalog:      catalogService,
		Availability: availabilityService,
		Bookings:     bookingService,
		Payments:     paymentService,
		Feedback:     feedbackService,
		Location:     loc,
	})

	// Optional redis-backed rate limiting
	var limiter *middleware.RateLimiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("failed to parse redis url", "error", err)
			os.Exit(1)
		}
		limiter = middleware.NewRateLimiter(redis.NewClient(opts), cfg.RateLimitPerMinute)
	}

	router := server.NewRouter(h, pool, limiter)
	srv := server.New(cfg, router)

	go func() {
		slog.Info("starting webhook server", "port", cfg.Port, "timezone", cfg.TimeZone)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}

	slog.Info("bot stopped gracefully")
}
