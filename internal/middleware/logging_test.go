// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Run("passes status through", func(t *testing.T) {
		handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/articles/nope", nil))

		if rr.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rr.Code)
		}
	})

	t.Run("write without WriteHeader defaults to 200", func(t *testing.T) {
		handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("hello"))
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		if rr.Code != http.StatusOK || rr.Body.String() != "hello" {
			t.Errorf("got %d %q, want 200 %q", rr.Code, rr.Body.String(), "hello")
		}
	})
}

func TestStatusRecorder(t *testing.T) {
	t.Run("first WriteHeader wins", func(t *testing.T) {
		rw := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
		rw.WriteHeader(http.StatusCreated)
		rw.WriteHeader(http.StatusInternalServerError)
		rw.Write([]byte("x"))

		if rw.status != http.StatusCreated {
			t.Errorf("status: got %d, want 201", rw.status)
		}
	})

	t.Run("Write marks 200", func(t *testing.T) {
		rw := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
		if _, err := rw.Write([]byte("test")); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if rw.status != http.StatusOK || !rw.written {
			t.Errorf("got status %d written %v", rw.status, rw.written)
		}
	})
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromCtx(r.Context())
	}))

	t.Run("generates an id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		got := rr.Header().Get(RequestIDHeader)
		if len(got) != 36 {
			t.Errorf("generated id: got %q, want a uuid", got)
		}
		if seen != got {
			t.Errorf("context id %q differs from header %q", seen, got)
		}
	})

	t.Run("keeps an incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if got := rr.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("got %q, want abc-123", got)
		}
		if seen != "abc-123" {
			t.Errorf("context id: got %q", seen)
		}
	})
}
