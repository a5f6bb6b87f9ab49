// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package state

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultSweepInterval is how often Memory drops expired entries.
const DefaultSweepInterval = time.Minute

// Memory is a process-local Store. Values are lost on restart, so it is
// only meant for development and tests. Expired entries are swept in the
// background, so claims and markers nobody reads again do not accumulate.
type Memory struct {
	items *cache.Cache
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return newMemory(DefaultSweepInterval)
}

func newMemory(sweep time.Duration) *Memory {
	return &Memory{items: cache.New(cache.NoExpiration, sweep)}
}

// Len reports the number of entries held, including expired ones that
// have not been swept yet.
func (m *Memory) Len() int {
	return m.items.ItemCount()
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	v, ok := m.items.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	return v.(string), nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.items.Set(key, value, expiration(ttl))
	return nil
}

func (m *Memory) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	// Add fails only when a live entry exists; an expired one is replaced.
	if err := m.items.Add(key, value, expiration(ttl)); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.items.Delete(key)
	return nil
}

// expiration maps a Store ttl onto go-cache, where zero means the cache
// default rather than forever.
func expiration(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return cache.NoExpiration
	}
	return ttl
}
