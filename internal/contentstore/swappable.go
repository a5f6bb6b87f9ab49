// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contentstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"inkwell/internal/metrics"
	"inkwell/internal/models"
)

// MsgNotReady is reported while no backend has been installed yet.
const MsgNotReady = "content store not ready"

// Swappable is a Backend that forwards to whichever backend was installed
// last. Credential reloads install a freshly built client, so in-flight
// calls finish against the old one. Every call is recorded in metrics.
type Swappable struct {
	mu      sync.RWMutex
	backend Backend
}

// NewSwappable creates a holder, optionally with an initial backend.
func NewSwappable(b Backend) *Swappable {
	return &Swappable{backend: b}
}

// Swap installs b as the current backend.
func (s *Swappable) Swap(b Backend) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backend = b
}

// Current returns the installed backend, or nil.
func (s *Swappable) Current() Backend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.backend
}

func (s *Swappable) get(op string) (Backend, error) {
	b := s.Current()
	if b == nil {
		return nil, configError(op, MsgNotReady)
	}
	return b, nil
}

func (s *Swappable) Configured() bool {
	b := s.Current()
	return b != nil && b.Configured()
}

func (s *Swappable) CheckConnection(ctx context.Context) Diagnosis {
	b, err := s.get("check")
	if err != nil {
		return DiagnosisFrom(err)
	}
	start := time.Now()
	d := b.CheckConnection(ctx)
	outcome := "ok"
	if !d.Success {
		outcome = "failed"
	}
	metrics.RecordStore("check", outcome, time.Since(start).Seconds())
	return d
}

func (s *Swappable) ListArticles(ctx context.Context) ([]models.Article, error) {
	var out []models.Article
	err := s.call("list_articles", func(b Backend) (err error) {
		out, err = b.ListArticles(ctx)
		return err
	})
	return out, err
}

func (s *Swappable) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	var out *models.Article
	err := s.call("get_article", func(b Backend) (err error) {
		out, err = b.GetArticle(ctx, id)
		return err
	})
	return out, err
}

func (s *Swappable) InsertArticle(ctx context.Context, a models.Article) error {
	return s.call("insert_article", func(b Backend) error { return b.InsertArticle(ctx, a) })
}

func (s *Swappable) DeleteArticle(ctx context.Context, id string) error {
	return s.call("delete_article", func(b Backend) error { return b.DeleteArticle(ctx, id) })
}

func (s *Swappable) ListSales(ctx context.Context) ([]models.Sale, error) {
	var out []models.Sale
	err := s.call("list_sales", func(b Backend) (err error) {
		out, err = b.ListSales(ctx)
		return err
	})
	return out, err
}

func (s *Swappable) FindSale(ctx context.Context, orderID string) (*models.Sale, error) {
	var out *models.Sale
	err := s.call("find_sale", func(b Backend) (err error) {
		out, err = b.FindSale(ctx, orderID)
		return err
	})
	return out, err
}

func (s *Swappable) InsertSale(ctx context.Context, sale models.Sale) error {
	return s.call("insert_sale", func(b Backend) error { return b.InsertSale(ctx, sale) })
}

// call runs fn against the current backend and records the outcome.
func (s *Swappable) call(op string, fn func(Backend) error) error {
	b, err := s.get(op)
	if err != nil {
		metrics.RecordStore(op, string(KindConfig), 0)
		return err
	}

	start := time.Now()
	err = fn(b)

	outcome := "ok"
	switch {
	case errors.Is(err, ErrDuplicateSale):
		outcome = "duplicate"
	case err != nil:
		outcome = string(KindOf(err))
		if outcome == "" {
			outcome = "error"
		}
	}
	metrics.RecordStore(op, outcome, time.Since(start).Seconds())
	return err
}
