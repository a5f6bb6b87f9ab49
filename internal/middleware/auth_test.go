// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeSessions bool

func (f fakeSessions) Valid(context.Context, *http.Request) bool { return bool(f) }

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		valid    bool
		wantCode int
	}{
		{"live session", true, http.StatusOK},
		{"no session", false, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := RequireAdmin(fakeSessions(tt.valid))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))

			if rr.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantCode)
			}
			if called != tt.valid {
				t.Errorf("next called: got %v, want %v", called, tt.valid)
			}
		})
	}
}
