// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces every key so the Valkey instance can be shared.
const keyPrefix = "inkwell:"

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(ctx context.Context, host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return client, nil
}

// Valkey is a Store backed by a Valkey (Redis-compatible) server.
type Valkey struct {
	client *redis.Client
}

// NewValkey wraps an existing client.
func NewValkey(client *redis.Client) *Valkey {
	return &Valkey{client: client}
}

func (v *Valkey) Get(ctx context.Context, key string) (string, error) {
	val, err := v.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("valkey get %s: %w", key, err)
	}
	return val, nil
}

func (v *Valkey) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := v.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("valkey set %s: %w", key, err)
	}
	return nil
}

func (v *Valkey) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := v.client.SetNX(ctx, keyPrefix+key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("valkey setnx %s: %w", key, err)
	}
	return ok, nil
}

func (v *Valkey) Delete(ctx context.Context, key string) error {
	if err := v.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("valkey del %s: %w", key, err)
	}
	return nil
}

var _ Broadcaster = (*Valkey)(nil)

func (v *Valkey) Publish(ctx context.Context, channel, message string) error {
	if err := v.client.Publish(ctx, keyPrefix+channel, message).Err(); err != nil {
		return fmt.Errorf("valkey publish %s: %w", channel, err)
	}
	return nil
}

func (v *Valkey) Subscribe(ctx context.Context, channel string, fn func(message string)) (func(), error) {
	sub := v.client.Subscribe(ctx, keyPrefix+channel)
	// Wait for the confirmation so no message published after return is missed.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("valkey subscribe %s: %w", channel, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range sub.Channel() {
			fn(msg.Payload)
		}
	}()

	return func() {
		sub.Close()
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}, nil
}
