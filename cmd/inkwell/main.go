// Package main is the entry point for the inkwell API server.
// It loads configuration, connects to local state and the content store,
// sets up routing, and starts the HTTP server with graceful shutdown.
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

	"golang.org/x/time/rate"

	"inkwell/internal/app"
	"inkwell/internal/config"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/router"
)

func main() {
	// Bootstrap logger until the configured one is known.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(app.NewLogger(cfg, os.Stdout))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store_backend", cfg.StoreBackend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}
	defer services.Close()

	adminHandlers := handlers.NewAdmin(handlers.AdminDeps{
		Sessions:    services.Sessions,
		Credentials: services.Credentials,
		Store:       services.Store,
		Backend:     cfg.StoreBackend,
		Catalog:     services.Catalog,
		Ledger:      services.Ledger,
		Summaries:   services.Summaries,
		AI:          services.AI,
	})
	publicHandlers := handlers.NewPublic(services.Catalog, services.Ledger, services.Summaries)

	// Five login attempts, then one every 12 seconds per client.
	loginLimiter := middleware.NewRateLimiter(rate.Every(12*time.Second), 5)
	loginLimiter.TrustProxy = cfg.TrustProxy
	defer loginLimiter.Stop()

	// WriteTimeout covers summary requests waiting on the LLM.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.New(services.Sessions, loginLimiter, adminHandlers, publicHandlers),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		slog.Error("server failed", "error", err)
		services.Close()
		os.Exit(1)
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
