// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package credentials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/state"
)

// StateSource reads the manually entered override from local state.
// Read failures are logged and treated as "no override".
type StateSource struct {
	Store state.Store
}

func (s StateSource) Lookup(ctx context.Context) Credentials {
	return Credentials{
		URL: s.get(ctx, state.KeyCredentialsURL),
		Key: s.get(ctx, state.KeyCredentialsKey),
	}
}

func (s StateSource) get(ctx context.Context, key string) string {
	if s.Store == nil {
		return ""
	}
	v, err := s.Store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, state.ErrNotFound) {
			slog.Warn("credential override unreadable", "key", key, "error", err)
		}
		return ""
	}
	return v
}

// ErrNothingToSave is returned by Set when both values are blank.
var ErrNothingToSave = errors.New("credentials: nothing to save")

// ReloadHook is called with the newly resolved credentials after every reload.
type ReloadHook func(Credentials)

// watchReloadTimeout bounds a reload triggered by another process.
const watchReloadTimeout = 5 * time.Second

// Manager owns the current resolved credentials. The local override takes
// precedence over the environment configuration. Set and Clear persist the
// override and then reload, so every registered consumer sees the new pair.
// When the store is shared between processes, they also announce the change
// so that managers running Watch elsewhere reload too.
type Manager struct {
	id     string
	store  state.Store
	env    Credentials
	mu     sync.RWMutex
	cur    Credentials
	hooks  []ReloadHook
	hookMu sync.Mutex
}

// NewManager creates a manager over the given override store and the
// environment-provided pair, and resolves once.
func NewManager(ctx context.Context, store state.Store, env Credentials) *Manager {
	m := &Manager{id: uuid.NewString(), store: store, env: env}
	m.cur = m.resolve(ctx)
	return m
}

// OnReload registers a hook. Hooks run synchronously in registration order.
func (m *Manager) OnReload(h ReloadHook) {
	m.hookMu.Lock()
	m.hooks = append(m.hooks, h)
	m.hookMu.Unlock()
}

// Current returns the credentials resolved by the last reload.
func (m *Manager) Current() Credentials {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cur
}

// Sources returns the lookup chain in precedence order.
func (m *Manager) Sources() []Source {
	return []Source{StateSource{Store: m.store}, Static(m.env)}
}

// Set persists a cleaned override and reloads. Empty fields are left
// untouched, so a key can be replaced without retyping the URL.
func (m *Manager) Set(ctx context.Context, url, key string) (Credentials, error) {
	url, key = CleanURL(url), Clean(key)
	if url == "" && key == "" {
		return m.Current(), ErrNothingToSave
	}
	if url != "" {
		if err := m.store.Set(ctx, state.KeyCredentialsURL, url, 0); err != nil {
			return m.Current(), fmt.Errorf("saving credential url: %w", err)
		}
	}
	if key != "" {
		if err := m.store.Set(ctx, state.KeyCredentialsKey, key, 0); err != nil {
			return m.Current(), fmt.Errorf("saving credential key: %w", err)
		}
	}
	c := m.Reload(ctx)
	m.announce(ctx)
	return c, nil
}

// Clear removes the override and reloads, falling back to the environment.
func (m *Manager) Clear(ctx context.Context) (Credentials, error) {
	for _, k := range []string{state.KeyCredentialsURL, state.KeyCredentialsKey} {
		if err := m.store.Delete(ctx, k); err != nil {
			return m.Current(), fmt.Errorf("clearing %s: %w", k, err)
		}
	}
	c := m.Reload(ctx)
	m.announce(ctx)
	return c, nil
}

// announce tells other processes sharing the store that the override
// changed. The override is already saved, so a failure only delays them
// until their next restart.
func (m *Manager) announce(ctx context.Context) {
	b, ok := m.store.(state.Broadcaster)
	if !ok {
		return
	}
	if err := b.Publish(ctx, state.ChannelCredentials, m.id); err != nil {
		slog.Warn("announcing credential change failed", "error", err)
	}
}

// Watch reloads whenever another manager sharing the store changes the
// override. It returns a stop function; with a store that cannot broadcast
// it does nothing.
func (m *Manager) Watch(ctx context.Context) (stop func(), err error) {
	b, ok := m.store.(state.Broadcaster)
	if !ok {
		return func() {}, nil
	}
	return b.Subscribe(ctx, state.ChannelCredentials, func(origin string) {
		if origin == m.id {
			return
		}
		rctx, cancel := context.WithTimeout(context.Background(), watchReloadTimeout)
		defer cancel()
		m.Reload(rctx)
	})
}

// Reload re-resolves every source and notifies the hooks.
func (m *Manager) Reload(ctx context.Context) Credentials {
	c := m.resolve(ctx)

	m.mu.Lock()
	m.cur = c
	m.mu.Unlock()

	m.hookMu.Lock()
	hooks := append([]ReloadHook(nil), m.hooks...)
	m.hookMu.Unlock()

	slog.Info("content store credentials reloaded", "url", c.Masked().URL, "key", c.Masked().Key)
	for _, h := range hooks {
		h(c)
	}
	return c
}

func (m *Manager) resolve(ctx context.Context) Credentials {
	return Resolve(ctx, m.Sources()...)
}
