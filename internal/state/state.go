// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package state holds small pieces of persisted, server-side state that the
// storefront needs between requests: the manually entered content store
// credentials, pending-payment markers, sale claims and admin sessions.
// Valkey is the primary backend; an in-memory store is available for
// development and tests.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by Get when the key does not exist or has expired.
var ErrNotFound = errors.New("state: key not found")

// Well-known keys. They are stable across releases because values written
// by an older binary must still be found after an upgrade.
const (
	KeyCredentialsURL = "credentials:url"
	KeyCredentialsKey = "credentials:key"
)

// PendingPaymentKey returns the key of the pending-payment marker for an order.
func PendingPaymentKey(orderID string) string {
	return "pending_payment:" + orderID
}

// SaleClaimKey returns the key used to claim the recording of an order's sale.
func SaleClaimKey(orderID string) string {
	return "sale_claim:" + orderID
}

// AdminSessionKey returns the key holding an admin session flag.
func AdminSessionKey(id string) string {
	return "admin_session:" + id
}

// Store is a string key/value store with optional expiry. A ttl of zero
// means the value never expires.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SetNX stores value only if key is absent and reports whether it did.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// Broadcaster is implemented by stores shared between processes. It
// carries change notifications so every process sharing the store can
// react, not just the one that wrote.
type Broadcaster interface {
	Publish(ctx context.Context, channel, message string) error
	// Subscribe calls fn for every message on channel until stop is called.
	// The subscription is active when Subscribe returns.
	Subscribe(ctx context.Context, channel string, fn func(message string)) (stop func(), err error)
}

// ChannelCredentials announces a change of the credential override.
const ChannelCredentials = "credentials:changed"

// GetJSON loads key and decodes it into v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("state decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("state encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(payload), ttl)
}
