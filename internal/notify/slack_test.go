// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/slack-go/slack"

	"inkwell/internal/models"
)

func TestSaleMessage(t *testing.T) {
	got := SaleMessage(models.Sale{OrderID: "ord-42", ItemName: "Custom Tech Article", Price: 120})
	want := "New sale: Custom Tech Article ($120.00) order ord-42"
	if got != want {
		t.Errorf("SaleMessage: got %q, want %q", got, want)
	}
}

func TestDisabledWithoutConfig(t *testing.T) {
	for _, s := range []*Slack{NewSlack("", "C1"), NewSlack("xoxb-1", "")} {
		if s.Enabled() {
			t.Error("notifier should be disabled without token and channel")
		}
		if err := s.SendMsg(context.Background(), "hi"); err != nil {
			t.Errorf("SendMsg on disabled notifier: %v", err)
		}
	}
}

func TestSaleRecordedPostsToChannel(t *testing.T) {
	var form url.Values
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		form, _ = url.ParseQuery(string(body))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ok":true,"channel":"C123","ts":"1700000000.000100"}`)
	}))
	defer srv.Close()

	s := NewSlack("xoxb-test", "C123", slack.OptionAPIURL(srv.URL+"/"))
	s.SaleRecorded(context.Background(), models.Sale{OrderID: "ord-1", ItemName: "PLR / Full Rights Bundle", Price: 250})

	if path != "/chat.postMessage" {
		t.Errorf("path: got %q", path)
	}
	if form.Get("channel") != "C123" {
		t.Errorf("channel: got %q", form.Get("channel"))
	}
	if form.Get("text") != "New sale: PLR / Full Rights Bundle ($250.00) order ord-1" {
		t.Errorf("text: got %q", form.Get("text"))
	}
}

func TestSendMsgReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ok":false,"error":"channel_not_found"}`)
	}))
	defer srv.Close()

	s := NewSlack("xoxb-test", "C404", slack.OptionAPIURL(srv.URL+"/"))
	if err := s.SendMsg(context.Background(), "hello"); err == nil {
		t.Error("expected error for channel_not_found")
	}
}
