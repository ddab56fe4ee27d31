package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// Service info
	r.Get("/", s.handleRoot)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", s.handleListContacts)
			r.Post("/", s.handleCreateContact)
			r.Get("/export", s.handleExportContacts)
			r.Get("/stats", s.handleContactStats)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetContact)
				r.Put("/", s.handleUpdateContact)
				r.Delete("/", s.handleDeleteContact)
			})
		})
	})

	return r
}

// handleRoot returns basic service information and the endpoint map.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "crm-core",
		"version": s.version,
		"endpoints": map[string]string{
			"list_contacts":   "GET /api/v1/contacts",
			"get_contact":     "GET /api/v1/contacts/{id}",
			"create_contact":  "POST /api/v1/contacts",
			"update_contact":  "PUT /api/v1/contacts/{id}",
			"delete_contact":  "DELETE /api/v1/contacts/{id}",
			"export_contacts": "GET /api/v1/contacts/export",
			"contact_stats":   "GET /api/v1/contacts/stats",
			"health":          "GET /api/v1/health",
		},
	})
}

// healthCheckTimeout bounds the database ping from the health endpoint.
const healthCheckTimeout = 2 * time.Second

// handleHealth returns the server health status, including database
// reachability when a database was wired in.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbStatus := "unconfigured"
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		dbStatus = "connected"
		if err := s.db.HealthCheck(ctx); err != nil {
			s.logger.Error("health check database ping failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":   "degraded",
				"version":  s.version,
				"database": "unreachable",
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  s.version,
		"database": dbStatus,
	})
}
