// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the inkwell JSON API.
// Handlers are grouped by audience (public storefront, admin panel) and
// receive their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"inkwell/internal/contentstore"
)

// errorBody is the failure shape shared by every endpoint.
type errorBody struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Kind    contentstore.Kind `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encoding response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeStoreError reports a content store failure with its kind. A missing
// configuration is the operator's problem (503); everything else happened
// upstream (502).
func writeStoreError(w http.ResponseWriter, err error) {
	kind := contentstore.KindOf(err)
	status := http.StatusBadGateway
	switch kind {
	case contentstore.KindConfig:
		status = http.StatusServiceUnavailable
	case "":
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorBody{Error: contentstore.MessageOf(err), Kind: kind})
}
