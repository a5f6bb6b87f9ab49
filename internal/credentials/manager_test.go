// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package credentials

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"inkwell/internal/state"
)

// sharedValkey returns a store on a fresh miniredis server. Each call gets
// its own client, as two processes would.
func sharedValkey(t *testing.T) func() *state.Valkey {
	t.Helper()
	mr := miniredis.RunT(t)
	return func() *state.Valkey {
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })
		return state.NewValkey(client)
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWatchReloadsOnChangeFromAnotherManager(t *testing.T) {
	ctx := context.Background()
	newStore := sharedValkey(t)
	env := Credentials{URL: "https://env.example.co", Key: "env-key"}

	server := NewManager(ctx, newStore(), env)
	var reloads atomic.Int32
	server.OnReload(func(Credentials) { reloads.Add(1) })

	stop, err := server.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	cli := NewManager(ctx, newStore(), env)
	if _, err := cli.Set(ctx, "https://manual.supabase.co", "manual-key"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	want := Credentials{URL: "https://manual.supabase.co", Key: "manual-key"}
	waitFor(t, "server reload after set", func() bool { return server.Current() == want })
	if reloads.Load() == 0 {
		t.Error("server reload hooks did not run")
	}

	if _, err := cli.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	waitFor(t, "server reload after clear", func() bool { return server.Current() == env })
}

func TestWatchIgnoresOwnChanges(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ctx, sharedValkey(t)(), Credentials{})

	var reloads atomic.Int32
	m.OnReload(func(Credentials) { reloads.Add(1) })

	stop, err := m.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	if _, err := m.Set(ctx, "https://manual.supabase.co", "k"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if got := reloads.Load(); got != 1 {
		t.Errorf("reloads: got %d, want 1 (the local one)", got)
	}
}

func TestWatchWithoutBroadcastIsNoop(t *testing.T) {
	m := NewManager(context.Background(), state.NewMemory(), Credentials{})
	stop, err := m.Watch(context.Background())
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	stop()
}
