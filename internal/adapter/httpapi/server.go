// Package httpapi exposes the CropPilot HTTP API: risk analysis, scheme
// matching, accounts, the farm logbook, and the operational endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/croppilot/croppilot/internal/advisor"
	"github.com/croppilot/croppilot/internal/auth"
	"github.com/croppilot/croppilot/internal/catalog"
	"github.com/croppilot/croppilot/internal/domain"
	"github.com/croppilot/croppilot/internal/observability"
	"github.com/croppilot/croppilot/internal/store"
)

// Server routes API traffic to the advisor, matcher, and stores.
type Server struct {
	httpServer *http.Server
	advisor    *advisor.Analyzer
	catalog    *catalog.Catalog
	auth       *auth.Service
	logs       store.LogStore
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer wires all routes. All collaborators must be non-nil; optional
// backends (live weather, geocoder, alerts) are handled inside the advisor.
func NewServer(addr string, adv *advisor.Analyzer, cat *catalog.Catalog, authSvc *auth.Service, logs store.LogStore, logger *slog.Logger, metrics *observability.Metrics) *Server {
	s := &Server{
		advisor: adv,
		catalog: cat,
		auth:    authSvc,
		logs:    logs,
		logger:  logger,
		metrics: metrics,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/risk", s.handleRisk)
		r.Get("/schemes/meta", s.handleSchemesMeta)
		r.Post("/schemes/match", s.handleSchemesMatch)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.Middleware)
			r.Get("/logbook", s.handleLogbookList)
			r.Post("/logbook", s.handleLogbookCreate)
			r.Delete("/logbook/{id}", s.handleLogbookDelete)
		})
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.advisor.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON rejects bodies that are not valid JSON for the target type.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeDomainError maps the shared error taxonomy onto HTTP statuses. Invalid
// input carries the corrective message to the farmer; unavailable backends ask
// them to retry.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrCatalogUnavailable):
		writeError(w, http.StatusServiceUnavailable, "scheme information is temporarily unavailable, please try again later")
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable, please try again later")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, store.ErrDuplicatePhone):
		writeError(w, http.StatusConflict, "an account with this phone number already exists")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
