// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storetest provides test doubles for the content store: an
// in-process fake PostgREST server and an in-memory Backend.
package storetest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// Server is a minimal PostgREST lookalike serving the articles and sales
// tables from memory. Rows are kept as raw column maps so tests can assert
// on the exact wire format.
type Server struct {
	*httptest.Server

	Key string // required apikey; requests with another key get 401

	mu       sync.Mutex
	tables   map[string][]map[string]any
	requests atomic.Int64
	last     *http.Request
	fail     map[string]failure
}

type failure struct {
	status int
	body   string
}

// NewServer starts a fake TLS server accepting key and closes it on cleanup.
// Use s.Client() as the HTTP client so its certificate is trusted.
func NewServer(t *testing.T, key string) *Server {
	t.Helper()
	s := &Server{
		Key:    key,
		tables: map[string][]map[string]any{"articles": nil, "sales": nil},
		fail:   make(map[string]failure),
	}
	s.Server = httptest.NewTLSServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Requests returns how many requests reached the server.
func (s *Server) Requests() int {
	return int(s.requests.Load())
}

// LastRequest returns the most recent request, or nil.
func (s *Server) LastRequest() *http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Fail makes every request for "METHOD table" answer with status and body.
func (s *Server) Fail(method, table string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[method+" "+table] = failure{status: status, body: body}
}

// Rows returns a copy of a table's rows.
func (s *Server) Rows(table string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]any(nil), s.tables[table]...)
}

// Seed appends raw rows to a table.
func (s *Server) Seed(table string, rows ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], rows...)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	s.requests.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = r

	table, ok := strings.CutPrefix(r.URL.Path, "/rest/v1/")
	if _, exists := s.tables[table]; !ok || !exists {
		writeError(w, http.StatusNotFound, "PGRST205", "Could not find the table 'public."+table+"' in the schema cache")
		return
	}
	if r.Header.Get("apikey") != s.Key || r.Header.Get("Authorization") != "Bearer "+s.Key {
		writeError(w, http.StatusUnauthorized, "", "Invalid API key")
		return
	}
	if f, ok := s.fail[r.Method+" "+table]; ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		io.WriteString(w, f.body)
		return
	}

	switch r.Method {
	case http.MethodGet:
		rows := s.filter(table, r)
		if limit := r.URL.Query().Get("limit"); limit == "1" && len(rows) > 1 {
			rows = rows[:1]
		}
		if rows == nil {
			rows = []map[string]any{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rows)

	case http.MethodPost:
		var row map[string]any
		if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
			writeError(w, http.StatusBadRequest, "PGRST102", "Empty or invalid json")
			return
		}
		s.tables[table] = append(s.tables[table], row)
		w.WriteHeader(http.StatusCreated)

	case http.MethodDelete:
		keep := s.tables[table][:0:0]
		matched := s.filter(table, r)
		for _, row := range s.tables[table] {
			if !contains(matched, row) {
				keep = append(keep, row)
			}
		}
		s.tables[table] = keep
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// filter applies col=eq.value query filters.
func (s *Server) filter(table string, r *http.Request) []map[string]any {
	var out []map[string]any
	q := r.URL.Query()
rows:
	for _, row := range s.tables[table] {
		for col, vals := range q {
			v, ok := strings.CutPrefix(vals[0], "eq.")
			if !ok {
				continue
			}
			if got, _ := row[col].(string); got != v {
				continue rows
			}
		}
		out = append(out, row)
	}
	return out
}

func contains(rows []map[string]any, row map[string]any) bool {
	for _, r := range rows {
		if r["id"] == row["id"] && r["order_id"] == row["order_id"] {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"code": code, "message": msg})
}
