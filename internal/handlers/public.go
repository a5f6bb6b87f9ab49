// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/catalog"
	"inkwell/internal/contentstore"
	"inkwell/internal/models"
	"inkwell/internal/sales"
	"inkwell/internal/summary"
)

// Public groups the storefront endpoints: browsing articles and services,
// summaries, checkout and payment confirmation.
type Public struct {
	catalog   *catalog.Catalog
	ledger    *sales.Ledger
	summaries *summary.Service
}

// NewPublic creates the public handler group.
func NewPublic(cat *catalog.Catalog, ledger *sales.Ledger, summaries *summary.Service) *Public {
	return &Public{
		catalog:   cat,
		ledger:    ledger,
		summaries: summaries,
	}
}

// Health answers liveness probes.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type listingResponse struct {
	Articles []models.Article `json:"articles"`
	Outcome  catalog.Outcome  `json:"outcome"`
}

// ListArticles returns the seed articles followed by the stored ones, or
// newest first with ?order=newest. A store failure still answers 200 with
// the seed list; the outcome field tells the client what happened.
func (p *Public) ListArticles(w http.ResponseWriter, r *http.Request) {
	l := p.catalog.List(r.Context())

	articles := l.Articles
	if r.URL.Query().Get("order") == "newest" {
		articles = l.Newest()
	}
	writeJSON(w, http.StatusOK, listingResponse{Articles: articles, Outcome: l.Outcome})
}

// GetArticle returns one article by id.
func (p *Public) GetArticle(w http.ResponseWriter, r *http.Request) {
	a, ok := p.article(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// ArticleSummary returns a short AI summary of an article. The summary
// text is always present; failures produce a fallback sentence.
func (p *Public) ArticleSummary(w http.ResponseWriter, r *http.Request) {
	a, ok := p.article(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": p.summaries.Summarize(r.Context(), a)})
}

// article loads the {id} article or writes the error response.
func (p *Public) article(w http.ResponseWriter, r *http.Request) (*models.Article, bool) {
	id := chi.URLParam(r, "id")
	a, err := p.catalog.Get(r.Context(), id)
	if err != nil {
		slog.Warn("article lookup failed", "id", id, "error", err)
		writeStoreError(w, err)
		return nil, false
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "Article not found")
		return nil, false
	}
	return a, true
}

// ListServices returns the fixed-price services.
func (p *Public) ListServices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"services": p.catalog.Services()})
}

type checkoutResponse struct {
	Success  bool    `json:"success"`
	OrderID  string  `json:"orderId"`
	ItemID   string  `json:"itemId"`
	ItemName string  `json:"itemName"`
	Price    float64 `json:"price"`
}

// Checkout opens an order for an item and returns the order id the buyer
// quotes when paying.
func (p *Public) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pending, err := p.ledger.BeginCheckout(r.Context(), req.ItemID)
	switch {
	case errors.Is(err, catalog.ErrUnknownItem):
		writeError(w, http.StatusNotFound, "Item not found")
		return
	case errors.Is(err, catalog.ErrNotPurchasable):
		writeError(w, http.StatusBadRequest, "Item is not for sale")
		return
	case contentstore.KindOf(err) != "":
		writeStoreError(w, err)
		return
	case err != nil:
		slog.Error("checkout failed", "item_id", req.ItemID, "error", err)
		writeError(w, http.StatusInternalServerError, "Checkout is unavailable, please try again")
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{
		Success:  true,
		OrderID:  pending.OrderID,
		ItemID:   pending.ItemID,
		ItemName: pending.ItemName,
		Price:    pending.Price,
	})
}

type confirmationResponse struct {
	Success  bool    `json:"success"`
	OrderID  string  `json:"orderId"`
	ItemName string  `json:"itemName,omitempty"`
	Price    float64 `json:"price,omitempty"`
}

// ConfirmPayment records the sale for an order. The buyer always sees
// success: payments are checked by hand and a failed write must not make
// them pay twice. Failures are logged by the ledger.
func (p *Public) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	c := p.ledger.ConfirmPayment(r.Context(), chi.URLParam(r, "orderId"))
	writeJSON(w, http.StatusOK, confirmationResponse{
		Success:  true,
		OrderID:  c.OrderID,
		ItemName: c.ItemName,
		Price:    c.Price,
	})
}
