// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"testing"

	"inkwell/internal/contentstore"
	"inkwell/internal/models"
)

type listing struct {
	Articles []models.Article `json:"articles"`
	Outcome  string           `json:"outcome"`
}

func TestListArticles(t *testing.T) {
	t.Run("unconfigured store is not contacted", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.Unconfigured = true

		rr := do(env.public.ListArticles, http.MethodGet, "/api/articles", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		got := decode[listing](t, rr)
		if got.Outcome != "unconfigured" || len(got.Articles) != 5 {
			t.Errorf("got outcome %q with %d articles, want unconfigured with 5", got.Outcome, len(got.Articles))
		}
		if env.store.Calls != 0 {
			t.Errorf("store calls: got %d, want 0", env.store.Calls)
		}
	})

	t.Run("stored articles follow the seed list", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.Articles = []models.Article{{ID: "art-1", Title: "Stored"}}

		got := decode[listing](t, do(env.public.ListArticles, http.MethodGet, "/api/articles", ""))
		if len(got.Articles) != 6 || got.Articles[5].ID != "art-1" {
			t.Fatalf("articles: got %+v", got.Articles)
		}

		newest := decode[listing](t, do(env.public.ListArticles, http.MethodGet, "/api/articles?order=newest", ""))
		if newest.Articles[0].ID != "art-1" {
			t.Errorf("newest first: got %q", newest.Articles[0].ID)
		}
	})

	t.Run("store failure still answers with the seed list", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.Err = &contentstore.Error{Kind: contentstore.KindNetwork, Message: contentstore.MsgConnectionFailed}

		rr := do(env.public.ListArticles, http.MethodGet, "/api/articles", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rr.Code)
		}
		got := decode[listing](t, rr)
		if got.Outcome != "failed" || len(got.Articles) != 5 {
			t.Errorf("got outcome %q with %d articles", got.Outcome, len(got.Articles))
		}
	})
}

func TestGetArticle(t *testing.T) {
	env := newTestEnv(t)
	env.store.Articles = []models.Article{{ID: "art-7", Title: "Stored"}}

	tests := []struct {
		id       string
		wantCode int
	}{
		{"1", http.StatusOK},
		{"art-7", http.StatusOK},
		{"art-404", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			rr := do(env.public.GetArticle, http.MethodGet, "/api/articles/"+tt.id, "", "id", tt.id)
			if rr.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
		})
	}

	t.Run("store error carries its kind", func(t *testing.T) {
		env.store.Err = &contentstore.Error{Kind: contentstore.KindUnauthorized, Message: contentstore.MsgInvalidKey}
		defer func() { env.store.Err = nil }()

		rr := do(env.public.GetArticle, http.MethodGet, "/api/articles/art-7", "", "id", "art-7")
		if rr.Code != http.StatusBadGateway {
			t.Fatalf("status: got %d, want 502", rr.Code)
		}
		got := decode[errorResponse](t, rr)
		if got.Kind != "unauthorized" || got.Error != contentstore.MsgInvalidKey {
			t.Errorf("body: got %+v", got)
		}
	})
}

func TestArticleSummary(t *testing.T) {
	env := newTestEnv(t)

	rr := do(env.public.ArticleSummary, http.MethodGet, "/api/articles/2/summary", "", "id", "2")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if got := decode[map[string]string](t, rr)["summary"]; got != "A short summary." {
		t.Errorf("summary: got %q", got)
	}

	rr = do(env.public.ArticleSummary, http.MethodGet, "/api/articles/nope/summary", "", "id", "nope")
	if rr.Code != http.StatusNotFound {
		t.Errorf("missing article: got %d, want 404", rr.Code)
	}
}

func TestListServices(t *testing.T) {
	env := newTestEnv(t)
	got := decode[map[string][]models.Service](t, do(env.public.ListServices, http.MethodGet, "/api/services", ""))
	if len(got["services"]) != 3 {
		t.Errorf("services: got %d, want 3", len(got["services"]))
	}
}

type checkout struct {
	Success  bool    `json:"success"`
	OrderID  string  `json:"orderId"`
	ItemName string  `json:"itemName"`
	Price    float64 `json:"price"`
}

func TestCheckout(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"service", `{"itemId":"seo-audit"}`, http.StatusCreated},
		{"priced article", `{"itemId":"1"}`, http.StatusCreated},
		{"article without price", `{"itemId":"4"}`, http.StatusBadRequest},
		{"unknown item", `{"itemId":"nope"}`, http.StatusNotFound},
		{"missing item id", `{}`, http.StatusBadRequest},
		{"not json", `itemId=1`, http.StatusBadRequest},
		{"empty body", ``, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			rr := do(env.public.Checkout, http.MethodPost, "/api/checkout", tt.body)
			if rr.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d (%s)", rr.Code, tt.wantCode, rr.Body.String())
			}
		})
	}
}

func TestConfirmPaymentIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	c := decode[checkout](t, do(env.public.Checkout, http.MethodPost, "/api/checkout", `{"itemId":"plr-package"}`))
	if c.OrderID == "" || c.Price != 250 {
		t.Fatalf("checkout: got %+v", c)
	}

	for i := 0; i < 2; i++ {
		rr := do(env.public.ConfirmPayment, http.MethodPost, "/api/payments/"+c.OrderID+"/confirm", "", "orderId", c.OrderID)
		if rr.Code != http.StatusOK {
			t.Fatalf("confirm %d: got %d, want 200", i, rr.Code)
		}
		if got := decode[checkout](t, rr); !got.Success || got.OrderID != c.OrderID {
			t.Errorf("confirm %d: got %+v", i, got)
		}
	}

	if n := env.store.SaleCount(c.OrderID); n != 1 {
		t.Errorf("stored sales for order: got %d, want 1", n)
	}
}

func TestConfirmPaymentAlwaysSucceeds(t *testing.T) {
	t.Run("unknown order", func(t *testing.T) {
		env := newTestEnv(t)
		rr := do(env.public.ConfirmPayment, http.MethodPost, "/api/payments/ord-0/confirm", "", "orderId", "ord-0")
		if rr.Code != http.StatusOK || !decode[checkout](t, rr).Success {
			t.Errorf("got %d %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("store failure", func(t *testing.T) {
		env := newTestEnv(t)
		c := decode[checkout](t, do(env.public.Checkout, http.MethodPost, "/api/checkout", `{"itemId":"seo-audit"}`))
		env.store.Err = errors.New("boom")

		rr := do(env.public.ConfirmPayment, http.MethodPost, "/", "", "orderId", c.OrderID)
		if rr.Code != http.StatusOK || !decode[checkout](t, rr).Success {
			t.Errorf("got %d %s", rr.Code, rr.Body.String())
		}

		env.store.Err = nil
		if n := env.store.SaleCount(c.OrderID); n != 0 {
			t.Errorf("stored sales: got %d, want 0", n)
		}
	})
}
