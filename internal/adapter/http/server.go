package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/metar-etl-service/internal/metar"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes health, readiness, metrics, and schema HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// /schema routes.
func NewServer(addr string, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.HandleFunc("GET /schema", handleSchema)
	mux.Handle("GET /metrics", promhttp.Handler())

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

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// schemaEntry is the wire form of one property schema entry.
type schemaEntry struct {
	Name       string   `json:"name"`
	WireName   string   `json:"wire_name"`
	Kind       string   `json:"kind"`
	UnitFamily string   `json:"unit_family,omitempty"`
	Units      []string `json:"units,omitempty"`
	Default    string   `json:"default_unit,omitempty"`
	MultiValue bool     `json:"multi_value,omitempty"`
	MultiEntry bool     `json:"multi_entry,omitempty"`
}

// handleSchema serves the full METAR property schema for consumers that need
// to discover property names, units, and defaults.
func handleSchema(w http.ResponseWriter, _ *http.Request) {
	entries := metar.Entries()
	out := make([]schemaEntry, len(entries))
	for i, e := range entries {
		se := schemaEntry{
			Name:       e.Name,
			WireName:   e.WireName,
			Kind:       e.Kind.String(),
			MultiValue: e.MultiValue,
			MultiEntry: e.MultiEntry,
		}
		if e.Family != metar.FamilyNone {
			se.UnitFamily = string(e.Family)
			for _, u := range e.Family.Units() {
				se.Units = append(se.Units, string(u))
			}
			se.Default = string(e.Family.Default())
		}
		out[i] = se
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
