// Package main is the entry point for the Reenam Hotel web server: the
// public site pages plus the booking API.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/reenamhotel/site/internal/bookingclient"
	"github.com/reenamhotel/site/internal/catalog"
	"github.com/reenamhotel/site/internal/config"
	"github.com/reenamhotel/site/internal/handler"
	"github.com/reenamhotel/site/internal/middleware"
	"github.com/reenamhotel/site/internal/notify"
	"github.com/reenamhotel/site/internal/repo"
	"github.com/reenamhotel/site/internal/service"
	"github.com/reenamhotel/site/internal/site"
	"github.com/reenamhotel/site/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Content ----------------------------------------------------------
	cat, err := catalog.Load()
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	// --- Storage ----------------------------------------------------------
	bookingRepo, closeRepo, err := openBookingRepo(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to open booking store", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	// --- Notifications ----------------------------------------------------
	notifier, err := newNotifier(cfg.Notify)
	if err != nil {
		slog.Error("failed to configure notifications", "error", err)
		os.Exit(1)
	}
	dispatcher := notify.NewDispatcher(notifier, logger)

	// --- Services ---------------------------------------------------------
	bookings := service.NewBookingService(bookingRepo, cat, dispatcher, service.WithLogger(logger))
	export := service.NewExportService(bookingRepo)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RealIP runs before the rate limiter so limits key on the client, not the proxy.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	api := handler.NewServer(bookings, export, cat, logger)
	api.Mount(r, handler.RouteOptions{
		Staff:  middleware.NewBearerAuth(cfg.AdminToken),
		Intake: middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger).Handler,
	})

	pages, err := site.New(cat, bookingclient.NewClient(cfg.BookingAPIURL), logger, site.WithAssetsDir(cfg.AssetsDir))
	if err != nil {
		slog.Error("failed to parse page templates", "error", err)
		os.Exit(1)
	}
	pages.Mount(r)
	pages.Start(ctx)

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	// Emails queued by the last requests still go out.
	if err := dispatcher.Close(shutdownCtx); err != nil {
		slog.Error("pending booking emails not sent", "error", err)
	}
	slog.Info("server stopped")
}

// openBookingRepo returns the Postgres store when DATABASE_URL is set, after
// applying migrations, and the JSON file store otherwise.
func openBookingRepo(ctx context.Context, cfg config.Config, log *slog.Logger) (repo.BookingRepo, func(), error) {
	if cfg.DatabaseURL == "" {
		store := repo.NewFileBookingRepo(cfg.BookingsFile, log)
		slog.Info("storing bookings in file", "path", store.Path())
		return store, func() {}, nil
	}

	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	db := stdlib.OpenDBFromPool(pool)
	applied, err := migrations.Up(ctx, db)
	_ = db.Close()
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	slog.Info("database connection established", "migrations_applied", applied)

	return repo.NewBookingRepo(pool), pool.Close, nil
}

// newNotifier picks the staff email transport. Missing SMTP settings are not
// an error: bookings are still accepted and stored, just not emailed.
func newNotifier(cfg config.Notify) (notify.Notifier, error) {
	switch {
	case cfg.Transport == config.TransportSES:
		client, err := notify.NewSESClient(cfg.SESRegion)
		if err != nil {
			return nil, err
		}
		slog.Info("booking emails via SES", "region", cfg.SESRegion)
		return notify.NewSESNotifier(client, cfg.SESSender, cfg.Recipient), nil
	case cfg.SMTPReady():
		slog.Info("booking emails via SMTP", "host", cfg.SMTPHost, "port", cfg.SMTPPort)
		return notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPass,
			To:       cfg.Recipient,
		}), nil
	default:
		slog.Info("SMTP or BOOKING_NOTIFY_EMAIL not fully configured; skipping email send")
		return notify.Noop{}, nil
	}
}
