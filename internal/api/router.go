// Package api provides HTTP router setup.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/notaryai/notaryd/internal/analysis"
	"github.com/notaryai/notaryd/internal/config"
	"github.com/notaryai/notaryd/internal/database"
)

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(cfg *config.Config, service *analysis.Service, store database.Store) http.Handler {
	r := chi.NewRouter()

	handler := NewHandler(service, store)

	// Global middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health check (no limits applied)
	r.Get("/health", handler.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Use(BodyLimitMiddleware(cfg.Limits.MaxRequestBytes))
		r.Use(TimeoutMiddleware(cfg.Limits.HandlerTimeout))
		r.Use(RateLimitMiddleware(cfg.RateLimits.RequestsPerMinute))
		r.Use(AuditMiddleware(store))

		// AI proxy endpoints
		r.Post("/gpt", handler.Gpt)
		r.Post("/ai", handler.Assist)
		r.Post("/ai/chat", handler.Chat)
		r.Post("/ai/analyze-document", handler.AnalyzeDocumentLegacy)

		// Activity log
		r.Get("/activity", handler.ListActivities)
		r.Post("/activity", handler.AppendActivity)

		// Audit logs
		r.Get("/audit", handler.GetAuditLogs)
	})

	return r
}
