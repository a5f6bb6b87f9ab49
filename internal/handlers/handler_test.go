// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure: handlers wired to an
// in-memory content store and in-memory local state.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/ai"
	"inkwell/internal/catalog"
	"inkwell/internal/contentstore/storetest"
	"inkwell/internal/credentials"
	"inkwell/internal/sales"
	"inkwell/internal/session"
	"inkwell/internal/state"
	"inkwell/internal/summary"
)

const testAdminKey = "let-me-in"

// mockAIProvider implements ai.Provider for handler tests.
type mockAIProvider struct {
	name     string
	response string
	err      error
}

func (m *mockAIProvider) Name() string { return m.name }
func (m *mockAIProvider) Generate(_ context.Context, _, _ string) (string, error) {
	return m.response, m.err
}

type testEnv struct {
	store    *storetest.Fake
	state    *state.Memory
	creds    *credentials.Manager
	sessions *session.Store
	ai       *ai.Registry
	public   *Public
	admin    *Admin
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fake := &storetest.Fake{}
	st := state.NewMemory()
	cat := catalog.New(fake)
	ledger := sales.NewLedger(fake, cat, st, nil)

	registry := ai.NewRegistry(ai.ProviderGemini, nil)
	registry.Register(ai.ProviderGemini, &mockAIProvider{name: ai.ProviderGemini, response: "A short summary."})
	summaries := summary.New(registry, 16)

	creds := credentials.NewManager(context.Background(), st, credentials.Credentials{})
	sessions := session.NewStore(st, testAdminKey, false)

	return &testEnv{
		store:    fake,
		state:    st,
		creds:    creds,
		sessions: sessions,
		ai:       registry,
		public:   NewPublic(cat, ledger, summaries),
		admin: NewAdmin(AdminDeps{
			Sessions:    sessions,
			Credentials: creds,
			Store:       fake,
			Backend:     "rest",
			Catalog:     cat,
			Ledger:      ledger,
			Summaries:   summaries,
			AI:          registry,
		}),
	}
}

// do runs handler h for a request, with optional chi URL params given as
// name/value pairs.
func do(h http.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for i := 0; i+1 < len(params); i += 2 {
			rctx.URLParams.Add(params[i], params[i+1])
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
	return v
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Kind    string `json:"kind"`
}
