// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sales records purchases. Checkout writes a pending-payment marker
// to local state; confirming the payment turns the marker into a sale in the
// content store, at most once per order id.
package sales

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/godruoyi/go-snowflake"

	"inkwell/internal/catalog"
	"inkwell/internal/contentstore"
	"inkwell/internal/metrics"
	"inkwell/internal/models"
	"inkwell/internal/state"
)

const (
	// OrderPrefix starts every generated order id.
	OrderPrefix = "ord-"

	// PendingTTL is how long a checkout can wait for confirmation.
	PendingTTL = 7 * 24 * time.Hour

	// claimTTL bounds how long a crashed confirmation blocks a retry.
	claimTTL = 2 * time.Minute
)

var (
	ErrUnknownOrder = errors.New("sales: no pending payment for order")
	ErrClaimed      = errors.New("sales: order is being recorded")
)

// Notifier is told about every newly recorded sale.
type Notifier interface {
	SaleRecorded(ctx context.Context, s models.Sale)
}

// Ledger coordinates checkout, payment confirmation and sales reporting.
type Ledger struct {
	store    contentstore.Backend
	catalog  *catalog.Catalog
	state    state.Store
	notifier Notifier
	now      func() time.Time
	newID    func() string
}

// NewLedger creates a ledger. notifier may be nil.
func NewLedger(store contentstore.Backend, cat *catalog.Catalog, st state.Store, notifier Notifier) *Ledger {
	return &Ledger{
		store:    store,
		catalog:  cat,
		state:    st,
		notifier: notifier,
		now:      time.Now,
		newID: func() string {
			return OrderPrefix + strconv.FormatUint(snowflake.ID(), 10)
		},
	}
}

// BeginCheckout creates an order for a purchasable item and stores its
// pending-payment marker.
func (l *Ledger) BeginCheckout(ctx context.Context, itemID string) (*models.PendingPayment, error) {
	item, err := l.catalog.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	p := &models.PendingPayment{
		OrderID:   l.newID(),
		ItemID:    item.ID,
		ItemName:  item.Name,
		Price:     item.Price,
		CreatedAt: l.now().UTC(),
	}
	if err := state.SetJSON(ctx, l.state, state.PendingPaymentKey(p.OrderID), p, PendingTTL); err != nil {
		return nil, fmt.Errorf("saving pending payment: %w", err)
	}

	slog.Info("checkout started", "order_id", p.OrderID, "item_id", p.ItemID, "price", p.Price)
	return p, nil
}

// Confirmation is the result of ConfirmPayment. Recorded is true when this
// call stored the sale; Duplicate when the order already had one. Err holds
// the reason the sale could not be stored. The buyer is told the payment
// went through either way, since payments are verified by hand.
type Confirmation struct {
	OrderID   string
	ItemName  string
	Price     float64
	Recorded  bool
	Duplicate bool
	Err       error
}

// ConfirmPayment records the sale for a pending order. Calling it again for
// the same order never creates a second sale.
func (l *Ledger) ConfirmPayment(ctx context.Context, orderID string) Confirmation {
	c := Confirmation{OrderID: orderID}

	var p models.PendingPayment
	if err := state.GetJSON(ctx, l.state, state.PendingPaymentKey(orderID), &p); err != nil {
		if errors.Is(err, state.ErrNotFound) {
			err = ErrUnknownOrder
		}
		slog.Warn("payment confirmation without pending order", "order_id", orderID, "error", err)
		c.Err = err
		return c
	}
	c.ItemName, c.Price = p.ItemName, p.Price

	recorded, err := l.Record(ctx, p.Sale(l.now().UTC()))
	if errors.Is(err, ErrClaimed) {
		// Another confirmation of this order is in flight and owns the marker.
		c.Duplicate = true
		return c
	}
	if err != nil {
		slog.Error("recording sale failed", "order_id", orderID, "kind", contentstore.KindOf(err), "error", err)
		c.Err = err
		return c
	}
	c.Recorded, c.Duplicate = recorded, !recorded

	if err := l.state.Delete(ctx, state.PendingPaymentKey(orderID)); err != nil {
		slog.Warn("clearing pending payment failed", "order_id", orderID, "error", err)
	}
	return c
}

// Record stores s unless a sale for its order already exists. It reports
// whether a new sale was written. A short-lived claim in local state keeps
// concurrent confirmations of the same order from racing past the check.
func (l *Ledger) Record(ctx context.Context, s models.Sale) (bool, error) {
	claimKey := state.SaleClaimKey(s.OrderID)
	claimed, err := l.state.SetNX(ctx, claimKey, strconv.FormatInt(l.now().Unix(), 10), claimTTL)
	if err != nil {
		return false, fmt.Errorf("claiming order %s: %w", s.OrderID, err)
	}
	if !claimed {
		return false, ErrClaimed
	}

	existing, err := l.store.FindSale(ctx, s.OrderID)
	if err != nil {
		l.release(ctx, claimKey)
		return false, err
	}
	if existing != nil {
		slog.Info("sale already recorded", "order_id", s.OrderID)
		return false, nil
	}

	if err := l.store.InsertSale(ctx, s); err != nil {
		if errors.Is(err, contentstore.ErrDuplicateSale) {
			slog.Info("sale already recorded", "order_id", s.OrderID)
			return false, nil
		}
		l.release(ctx, claimKey)
		return false, err
	}

	metrics.RecordSale()
	slog.Info("sale recorded", "order_id", s.OrderID, "item_id", s.ItemID, "price", s.Price)
	if l.notifier != nil {
		l.notifier.SaleRecorded(ctx, s)
	}
	return true, nil
}

func (l *Ledger) release(ctx context.Context, key string) {
	if err := l.state.Delete(ctx, key); err != nil {
		slog.Warn("releasing sale claim failed", "key", key, "error", err)
	}
}

// List returns all recorded sales, newest first.
func (l *Ledger) List(ctx context.Context) ([]models.Sale, error) {
	sales, err := l.store.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(sales, func(a, b models.Sale) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return sales, nil
}
