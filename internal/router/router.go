// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains of the
// inkwell API. Routes are grouped into public storefront and admin
// endpoints.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// New creates the chi router with all middleware and route groups wired
// up. loginLimiter throttles admin login attempts per client IP.
func New(sessions middleware.SessionChecker, loginLimiter *middleware.RateLimiter, admin *handlers.Admin, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware, outermost first.
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", public.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", public.ListArticles)
			r.Get("/{id}", public.GetArticle)
			r.Get("/{id}/summary", public.ArticleSummary)
		})
		r.Get("/services", public.ListServices)
		r.Post("/checkout", public.Checkout)
		r.Post("/payments/{orderId}/confirm", public.ConfirmPayment)

		r.Route("/admin", func(r chi.Router) {
			r.With(loginLimiter.Middleware).Post("/login", admin.Login)
			r.Post("/logout", admin.Logout)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(sessions))

				r.Get("/connection", admin.Connection)
				r.Put("/credentials", admin.SetCredentials)
				r.Delete("/credentials", admin.ClearCredentials)

				r.Route("/articles", func(r chi.Router) {
					r.Get("/", admin.ListArticles)
					r.Post("/", admin.PublishArticle)
					r.Delete("/{id}", admin.DeleteArticle)
				})

				r.Get("/sales", admin.ListSales)
				r.Get("/stats", admin.Stats)

				r.Get("/ai", admin.AIStatus)
				r.Put("/ai", admin.SetAIProvider)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"Not found"}`))
	})

	return r
}
