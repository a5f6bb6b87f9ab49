// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/ai"
	"inkwell/internal/catalog"
	"inkwell/internal/contentstore"
	"inkwell/internal/credentials"
	"inkwell/internal/models"
	"inkwell/internal/sales"
	"inkwell/internal/session"
	"inkwell/internal/summary"
)

// Admin groups the admin panel endpoints. Everything except Login sits
// behind middleware.RequireAdmin.
type Admin struct {
	sessions  *session.Store
	creds     *credentials.Manager
	store     contentstore.Backend
	backend   string
	catalog   *catalog.Catalog
	ledger    *sales.Ledger
	summaries *summary.Service
	ai        *ai.Registry
}

// AdminDeps are the collaborators of the admin handlers. Backend names the
// configured store kind ("rest" or "postgres") for the connection view.
type AdminDeps struct {
	Sessions    *session.Store
	Credentials *credentials.Manager
	Store       contentstore.Backend
	Backend     string
	Catalog     *catalog.Catalog
	Ledger      *sales.Ledger
	Summaries   *summary.Service
	AI          *ai.Registry
}

// NewAdmin creates the admin handler group.
func NewAdmin(d AdminDeps) *Admin {
	return &Admin{
		sessions:  d.Sessions,
		creds:     d.Credentials,
		store:     d.Store,
		backend:   d.Backend,
		catalog:   d.Catalog,
		ledger:    d.Ledger,
		summaries: d.Summaries,
		ai:        d.AI,
	}
}

// Login starts an admin session when the submitted key matches.
func (a *Admin) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := a.sessions.Login(r.Context(), w, req.Key)
	switch {
	case errors.Is(err, session.ErrDisabled):
		writeError(w, http.StatusServiceUnavailable, "Admin access is disabled")
		return
	case errors.Is(err, session.ErrBadKey):
		slog.Warn("admin login rejected", "remote", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "Invalid admin key")
		return
	case err != nil:
		slog.Error("admin login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not start a session")
		return
	}

	slog.Info("admin logged in", "remote", r.RemoteAddr)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Logout ends the admin session.
func (a *Admin) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("admin logout failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type connectionResponse struct {
	contentstore.Diagnosis
	Backend     string             `json:"backend"`
	Credentials credentials.Masked `json:"credentials"`
}

// Connection runs a live connectivity check and shows the masked
// credentials it used.
func (a *Admin) Connection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.connection(r))
}

func (a *Admin) connection(r *http.Request) connectionResponse {
	return connectionResponse{
		Diagnosis:   a.store.CheckConnection(r.Context()),
		Backend:     a.backend,
		Credentials: a.creds.Current().Masked(),
	}
}

// SetCredentials saves a manual URL/key override, reloads every consumer
// and reports the new connection status.
func (a *Admin) SetCredentials(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := a.creds.Set(r.Context(), req.URL, req.Key); err != nil {
		if errors.Is(err, credentials.ErrNothingToSave) {
			writeError(w, http.StatusBadRequest, "Enter a project URL or an anon key")
			return
		}
		slog.Error("saving credentials failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not save credentials")
		return
	}
	writeJSON(w, http.StatusOK, a.connection(r))
}

// ClearCredentials drops the manual override and falls back to the
// environment configuration.
func (a *Admin) ClearCredentials(w http.ResponseWriter, r *http.Request) {
	if _, err := a.creds.Clear(r.Context()); err != nil {
		slog.Error("clearing credentials failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not clear credentials")
		return
	}
	writeJSON(w, http.StatusOK, a.connection(r))
}

// adminArticle marks which articles the admin may delete.
type adminArticle struct {
	models.Article
	Deletable bool `json:"deletable"`
}

type adminListingResponse struct {
	Articles []adminArticle    `json:"articles"`
	Outcome  catalog.Outcome   `json:"outcome"`
	Error    string            `json:"error,omitempty"`
	Kind     contentstore.Kind `json:"kind,omitempty"`
}

// ListArticles returns every article newest first. Unlike the public
// listing it surfaces the store error next to the seed fallback.
func (a *Admin) ListArticles(w http.ResponseWriter, r *http.Request) {
	l := a.catalog.List(r.Context())

	newest := l.Newest()
	out := make([]adminArticle, len(newest))
	for i, art := range newest {
		out[i] = adminArticle{Article: art, Deletable: !catalog.IsStatic(art.ID)}
	}

	resp := adminListingResponse{Articles: out, Outcome: l.Outcome}
	if l.Err != nil {
		resp.Error = contentstore.MessageOf(l.Err)
		resp.Kind = contentstore.KindOf(l.Err)
	}
	writeJSON(w, http.StatusOK, resp)
}

type publishResponse struct {
	Success bool            `json:"success"`
	Article *models.Article `json:"article"`
}

// PublishArticle validates and stores a new article.
func (a *Admin) PublishArticle(w http.ResponseWriter, r *http.Request) {
	var d catalog.Draft
	if err := readJSON(w, r, &d); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	art, err := a.catalog.Publish(r.Context(), d)
	switch {
	case errors.Is(err, catalog.ErrInvalidDraft):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, catalog.ErrStaticID):
		writeError(w, http.StatusConflict, "That id belongs to a bundled article")
		return
	case err != nil:
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, publishResponse{Success: true, Article: art})
}

// DeleteArticle removes a stored article. Bundled articles are refused.
func (a *Admin) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if catalog.IsStatic(id) {
		writeError(w, http.StatusForbidden, "Bundled articles cannot be deleted")
		return
	}
	if err := a.catalog.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	a.summaries.Forget(id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListSales returns every recorded sale, newest first.
func (a *Admin) ListSales(w http.ResponseWriter, r *http.Request) {
	list, err := a.ledger.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if list == nil {
		list = []models.Sale{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sales": list})
}

type statsResponse struct {
	sales.Stats
	Error string            `json:"error,omitempty"`
	Kind  contentstore.Kind `json:"kind,omitempty"`
}

// Stats returns the dashboard figures. A store failure yields zeroed sales
// figures plus the error, still with 200.
func (a *Admin) Stats(w http.ResponseWriter, r *http.Request) {
	s := a.ledger.Stats(r.Context())
	resp := statsResponse{Stats: s}
	if s.Err != nil {
		resp.Error = contentstore.MessageOf(s.Err)
		resp.Kind = contentstore.KindOf(s.Err)
	}
	writeJSON(w, http.StatusOK, resp)
}
