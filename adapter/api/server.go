// Package api provides the HTTP surface for agenda generation and the
// scheduling directory.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dimun/agendalo/pkg/observability"
)

// Server is the HTTP API server.
type Server struct {
	mux     *http.ServeMux
	server  *http.Server
	logger  *slog.Logger
	handler *Handler
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration. The write
// timeout leaves room for a full solver budget.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8000",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates the API server.
func NewServer(cfg ServerConfig, handler *Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		handler: handler,
	}
	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withRequestID(s.mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Handler returns the routed handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Agendas
	s.mux.HandleFunc("POST /agendas/generate", s.handler.GenerateAgenda)
	s.mux.HandleFunc("GET /agendas/{agendaID}", s.handler.GetAgenda)
	s.mux.HandleFunc("GET /agendas", s.handler.ListAgendas)

	// People
	s.mux.HandleFunc("POST /people", s.handler.CreatePerson)
	s.mux.HandleFunc("GET /people", s.handler.ListPeople)
	s.mux.HandleFunc("GET /people/{personID}", s.handler.GetPerson)
	s.mux.HandleFunc("PUT /people/{personID}", s.handler.UpdatePerson)
	s.mux.HandleFunc("DELETE /people/{personID}", s.handler.DeletePerson)

	// Roles
	s.mux.HandleFunc("POST /roles", s.handler.CreateRole)
	s.mux.HandleFunc("GET /roles", s.handler.ListRoles)
	s.mux.HandleFunc("GET /roles/{roleID}", s.handler.GetRole)

	// Availability hours
	s.mux.HandleFunc("POST /people/{personID}/availability-hours", s.handler.CreateAvailability)
	s.mux.HandleFunc("GET /people/{personID}/availability-hours", s.handler.ListAvailabilityByPerson)
	s.mux.HandleFunc("DELETE /availability-hours/{ruleID}", s.handler.DeleteAvailability)

	// Business service hours
	s.mux.HandleFunc("POST /roles/{roleID}/business-hours", s.handler.CreateBusinessHours)
	s.mux.HandleFunc("GET /roles/{roleID}/business-hours", s.handler.ListBusinessHoursByRole)
	s.mux.HandleFunc("GET /business-hours", s.handler.ListBusinessHours)
	s.mux.HandleFunc("DELETE /business-hours/{ruleID}", s.handler.DeleteBusinessHours)

	// Calendar views
	s.mux.HandleFunc("GET /calendar/week", s.handler.CalendarWeek)
	s.mux.HandleFunc("GET /calendar/month", s.handler.CalendarMonth)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// withRequestID tags each request with an ID and logs its completion.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := observability.WithRequestID(r.Context(), r.Header.Get("X-Request-ID"))
		next.ServeHTTP(w, r.WithContext(ctx))
		s.logger.DebugContext(ctx, "request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
