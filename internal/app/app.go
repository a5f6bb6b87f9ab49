// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package app wires the storefront's services from configuration. The API
// server and the inkctl command line share it, so both see the same local
// state, credentials and content store.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"inkwell/internal/ai"
	"inkwell/internal/catalog"
	"inkwell/internal/config"
	"inkwell/internal/contentstore"
	"inkwell/internal/credentials"
	"inkwell/internal/notify"
	"inkwell/internal/pgstore"
	"inkwell/internal/sales"
	"inkwell/internal/session"
	"inkwell/internal/state"
	"inkwell/internal/summary"
)

// App holds the wired services. Close releases the connections it opened.
type App struct {
	Config      *config.Config
	State       state.Store
	Credentials *credentials.Manager
	Store       *contentstore.Swappable
	Catalog     *catalog.Catalog
	Ledger      *sales.Ledger
	AI          *ai.Registry
	Summaries   *summary.Service
	Sessions    *session.Store
	Notifier    *notify.Slack

	closers []func()
}

// New connects local state and the configured content store backend and
// builds every service on top of them.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	if err := a.openState(ctx); err != nil {
		return nil, err
	}

	a.Credentials = credentials.NewManager(ctx, a.State, credentials.Credentials{
		URL: cfg.StoreURL,
		Key: cfg.StoreKey,
	})

	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	stopWatch, err := a.Credentials.Watch(ctx)
	if err != nil {
		slog.Warn("not watching credential changes, overrides saved elsewhere apply after a restart", "error", err)
	} else {
		a.closers = append(a.closers, stopWatch)
	}

	a.Catalog = catalog.New(a.Store)
	a.Notifier = notify.NewSlack(cfg.SlackToken, cfg.SlackSalesChannel)
	a.Ledger = sales.NewLedger(a.Store, a.Catalog, a.State, a.Notifier)

	a.AI = ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		ai.ProviderGemini: {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL},
		ai.ProviderOpenAI: {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
	})
	a.Summaries = summary.New(a.AI, summary.DefaultCacheSize)
	a.Sessions = session.NewStore(a.State, cfg.AdminKey, !cfg.IsDev())

	slog.Info("services initialized",
		"store_backend", cfg.StoreBackend,
		"store_configured", a.Store.Configured(),
		"ai_active", a.AI.ActiveName(),
		"ai_available", a.AI.Available(),
		"slack_enabled", a.Notifier.Enabled(),
		"admin_enabled", a.Sessions.Enabled(),
	)
	return a, nil
}

func (a *App) openState(ctx context.Context) error {
	if !a.Config.UsesValkey() {
		slog.Warn("VALKEY_HOST not set, using in-memory state; overrides and pending orders are lost on restart")
		a.State = state.NewMemory()
		return nil
	}

	client, err := state.ConnectValkey(ctx, a.Config.ValkeyHost, a.Config.ValkeyPort, a.Config.ValkeyPassword)
	if err != nil {
		return fmt.Errorf("connecting to valkey: %w", err)
	}
	a.closers = append(a.closers, func() { client.Close() })
	a.State = state.NewValkey(client)
	return nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.Config.StoreBackend {
	case config.BackendPostgres:
		dsn := a.Config.DSN()
		pool, err := pgstore.Connect(ctx, dsn)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, pool.Close)
		if err := pgstore.Migrate(ctx, dsn); err != nil {
			return err
		}
		a.Store = contentstore.NewSwappable(pgstore.New(pool))

	default:
		hc := &http.Client{Timeout: a.Config.StoreTimeout}
		a.Store = contentstore.NewSwappable(contentstore.NewClient(a.Credentials.Current(), hc))
		a.Credentials.OnReload(func(c credentials.Credentials) {
			a.Store.Swap(contentstore.NewClient(c, hc))
		})
		if p := a.Credentials.Current().Problem(); p != "" {
			slog.Warn("content store not configured, serving bundled articles only", "reason", p)
		}
	}
	return nil
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// NewLogger builds the process logger: JSON when LOG_FORMAT=json, text
// otherwise, at the configured level.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
