// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"itemId":"seo-audit"}`, ""},
		{"empty", ``, "request body is empty"},
		{"malformed", `{"itemId":`, "request body is not valid JSON"},
		{"missing field", `{"itemId":""}`, "invalid request: itemid: required"},
		{"too long", `{"itemId":"` + strings.Repeat("x", 65) + `"}`, "invalid request: itemid: max"},
		{"too large", `{"itemId":"` + strings.Repeat("x", maxBodyBytes) + `"}`, "request body too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(tt.body))
			var dst checkoutRequest
			err := decodeJSON(httptest.NewRecorder(), req, &dst)

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if dst.ItemID != "seo-audit" {
					t.Errorf("ItemID: got %q", dst.ItemID)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("error: got %v, want %q", err, tt.wantErr)
			}
		})
	}
}
