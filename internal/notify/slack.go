// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package notify tells the site owner about new sales over Slack.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"

	"inkwell/internal/models"
)

// Slack posts sale notifications to a channel. A Slack without token or
// channel does nothing.
type Slack struct {
	api     *slack.Client
	channel string
}

// NewSlack creates a notifier. Extra options are passed to the Slack
// client, e.g. slack.OptionAPIURL in tests.
func NewSlack(token, channel string, opts ...slack.Option) *Slack {
	if token == "" || channel == "" {
		return &Slack{}
	}
	return &Slack{
		api:     slack.New(token, opts...),
		channel: channel,
	}
}

// Enabled returns true if messages will be sent.
func (s *Slack) Enabled() bool {
	return s.api != nil
}

// SendMsg posts text to the configured channel.
func (s *Slack) SendMsg(ctx context.Context, text string) error {
	if !s.Enabled() {
		return nil
	}
	_, _, err := s.api.PostMessageContext(ctx, s.channel, slack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("slack post to %s: %w", s.channel, err)
	}
	slog.Debug("slack message sent", "channel", s.channel)
	return nil
}

// SaleRecorded implements sales.Notifier. Failures are logged only; a lost
// notification never affects the sale.
func (s *Slack) SaleRecorded(ctx context.Context, sale models.Sale) {
	if err := s.SendMsg(ctx, SaleMessage(sale)); err != nil {
		slog.Error("sale notification failed", "order_id", sale.OrderID, "error", err)
	}
}

// SaleMessage formats the notification text for a sale.
func SaleMessage(s models.Sale) string {
	return fmt.Sprintf("New sale: %s ($%.2f) order %s", s.ItemName, s.Price, s.OrderID)
}
