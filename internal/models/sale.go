// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Sale records a claimed payment for an article or a service. OrderID is
// the idempotency key: at most one sale exists per order.
type Sale struct {
	OrderID   string    `json:"orderId"`
	ItemID    string    `json:"itemId"`
	ItemName  string    `json:"itemName"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"timestamp"`
}

// PendingPayment is written at checkout and consumed once the buyer lands
// on the confirmation step. Payments are verified manually, so the marker
// only tells us what the buyer claims to have paid for.
type PendingPayment struct {
	OrderID   string    `json:"orderId"`
	ItemID    string    `json:"itemId"`
	ItemName  string    `json:"itemName"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// Sale converts the pending marker into the sale that confirms it.
func (p *PendingPayment) Sale(at time.Time) Sale {
	return Sale{
		OrderID:   p.OrderID,
		ItemID:    p.ItemID,
		ItemName:  p.ItemName,
		Price:     p.Price,
		CreatedAt: at,
	}
}
