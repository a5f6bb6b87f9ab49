// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storetest

import (
	"context"
	"sync"

	"inkwell/internal/contentstore"
	"inkwell/internal/models"
)

// Fake is an in-memory contentstore.Backend. Setting Err makes every
// data call fail with it; Unconfigured makes the fake report itself as
// not configured and fail with KindConfig.
type Fake struct {
	mu           sync.Mutex
	Articles     []models.Article
	Sales        []models.Sale
	Err          error
	Unconfigured bool
	Calls        int
}

var _ contentstore.Backend = (*Fake)(nil)

func (f *Fake) Configured() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.Unconfigured
}

func (f *Fake) begin() error {
	f.Calls++
	if f.Unconfigured {
		return &contentstore.Error{Kind: contentstore.KindConfig, Message: "Missing Project URL"}
	}
	return f.Err
}

func (f *Fake) CheckConnection(context.Context) contentstore.Diagnosis {
	f.mu.Lock()
	defer f.mu.Unlock()
	return contentstore.DiagnosisFrom(f.begin())
}

func (f *Fake) ListArticles(context.Context) ([]models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return append([]models.Article(nil), f.Articles...), nil
}

func (f *Fake) GetArticle(_ context.Context, id string) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	for _, a := range f.Articles {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *Fake) InsertArticle(_ context.Context, a models.Article) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return err
	}
	f.Articles = append(f.Articles, a)
	return nil
}

func (f *Fake) DeleteArticle(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return err
	}
	kept := f.Articles[:0]
	for _, a := range f.Articles {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	f.Articles = kept
	return nil
}

func (f *Fake) ListSales(context.Context) ([]models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	return append([]models.Sale(nil), f.Sales...), nil
}

func (f *Fake) FindSale(_ context.Context, orderID string) (*models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return nil, err
	}
	for _, s := range f.Sales {
		if s.OrderID == orderID {
			return &s, nil
		}
	}
	return nil, nil
}

func (f *Fake) InsertSale(_ context.Context, s models.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin(); err != nil {
		return err
	}
	for _, existing := range f.Sales {
		if existing.OrderID == s.OrderID {
			return contentstore.ErrDuplicateSale
		}
	}
	f.Sales = append(f.Sales, s)
	return nil
}

// SaleCount returns the number of stored sales for orderID.
func (f *Fake) SaleCount(orderID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.Sales {
		if s.OrderID == orderID {
			n++
		}
	}
	return n
}
