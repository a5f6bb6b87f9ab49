// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
)

type aiStatusResponse struct {
	Active    string   `json:"active"`
	Available []string `json:"available"`
}

type aiProviderRequest struct {
	Provider string `json:"provider" validate:"required,oneof=gemini openai"`
}

// AIStatus shows which summary provider is active and which have keys.
func (a *Admin) AIStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, aiStatusResponse{
		Active:    a.ai.ActiveName(),
		Available: a.ai.Available(),
	})
}

// SetAIProvider switches the summary provider at runtime. Cached summaries
// are kept; only new ones come from the new provider.
func (a *Admin) SetAIProvider(w http.ResponseWriter, r *http.Request) {
	var req aiProviderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := a.ai.SetActive(req.Provider); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Info("ai provider switched", "provider", req.Provider)
	a.AIStatus(w, r)
}
