package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aretw0/tracentm"
	"github.com/aretw0/tracentm/pkg/domain"
	"github.com/aretw0/tracentm/pkg/ports"
	"github.com/aretw0/tracentm/pkg/service"
	"github.com/go-chi/chi/v5"
)

// ReportBrowser exposes stored reports. *service.Service implements it.
type ReportBrowser interface {
	Report(ctx context.Context, id string) (*domain.Report, error)
	Reports(ctx context.Context) ([]string, error)
	DeleteReport(ctx context.Context, id string) error
}

// SimulateRequest is the body of POST /simulate.
type SimulateRequest struct {
	Machine  string `json:"machine"`
	Input    string `json:"input"`
	MaxDepth *int   `json:"max_depth,omitempty"`
}

// Server serves a Simulator over HTTP.
type Server struct {
	Simulator ports.Simulator
	Reports   ReportBrowser
	Streams   *StreamManager
	Logger    *slog.Logger

	metrics      http.Handler
	defaultDepth int
}

// Option configures the handler.
type Option func(*Server)

// WithReports enables the /reports endpoints.
func WithReports(r ReportBrowser) Option {
	return func(s *Server) {
		s.Reports = r
	}
}

// WithMetrics mounts a Prometheus handler at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithDefaultDepth sets the depth bound used when a request omits max_depth.
func WithDefaultDepth(depth int) Option {
	return func(s *Server) {
		s.defaultDepth = depth
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the simulator.
func NewHandler(sim ports.Simulator, opts ...Option) http.Handler {
	server := &Server{
		Simulator:    sim,
		Streams:      NewStreamManager(),
		Logger:       slog.Default(),
		defaultDepth: domain.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		if _, err := GetSwagger(); err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			server.Logger.Error("Failed to load OpenAPI spec", "error", err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Post("/simulate", server.Simulate)
	r.Get("/machines", server.ListMachines)
	r.Get("/machines/{id}", server.GetMachine)
	r.Get("/reports", server.ListReports)
	r.Get("/reports/{id}", server.GetReport)
	r.Delete("/reports/{id}", server.DeleteReport)
	r.Get("/events", server.SubscribeEvents)
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)

	if server.metrics != nil {
		r.Handle("/metrics", server.metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>tracentm API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// Simulate handles the POST /simulate request.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	var body SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("Simulate: Invalid request body", "error", err)
		return
	}
	if body.Machine == "" {
		http.Error(w, "machine is required", http.StatusBadRequest)
		return
	}

	depth := s.defaultDepth
	if body.MaxDepth != nil {
		depth = *body.MaxDepth
	}

	rep, err := s.Simulator.Simulate(r.Context(), body.Machine, body.Input, depth)
	if err != nil {
		s.writeError(w, "Simulate", err)
		return
	}

	if data, err := json.Marshal(rep); err == nil {
		s.Streams.Broadcast(body.Machine, string(data))
	}
	writeJSON(w, s.Logger, http.StatusOK, rep)
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Simulator.Machines()
	if err != nil {
		s.writeError(w, "ListMachines", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, s.Logger, http.StatusOK, ids)
}

// GetMachine handles the GET /machines/{id} request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	m, err := s.Simulator.Machine(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "GetMachine", err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, m.Definition())
}

// ListReports handles the GET /reports request.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	if s.Reports == nil {
		s.writeError(w, "ListReports", service.ErrNoStore)
		return
	}
	ids, err := s.Reports.Reports(r.Context())
	if err != nil {
		s.writeError(w, "ListReports", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, s.Logger, http.StatusOK, ids)
}

// GetReport handles the GET /reports/{id} request.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	if s.Reports == nil {
		s.writeError(w, "GetReport", service.ErrNoStore)
		return
	}
	rep, err := s.Reports.Report(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "GetReport", err)
		return
	}
	writeJSON(w, s.Logger, http.StatusOK, rep)
}

// DeleteReport handles the DELETE /reports/{id} request.
func (s *Server) DeleteReport(w http.ResponseWriter, r *http.Request) {
	if s.Reports == nil {
		s.writeError(w, "DeleteReport", service.ErrNoStore)
		return
	}
	if err := s.Reports.DeleteReport(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, "DeleteReport", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}

	writeJSON(w, s.Logger, http.StatusOK, map[string]string{
		"app":         "tracentm-http",
		"version":     tracentm.Version,
		"api_version": apiVersion,
	})
}

// SubscribeEvents handles the GET /events request (SSE).
// Every report produced by POST /simulate is pushed as one data frame.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	machine := r.URL.Query().Get("machine")
	ch, cancel := s.Streams.Subscribe(machine)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE Client Disconnected", "machine", machine)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: report\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Warn(op+" rejected", "error", err)
	}
	http.Error(w, err.Error(), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMachineNotFound), errors.Is(err, domain.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDepthLimit),
		errors.Is(err, service.ErrInputTooLarge),
		errors.Is(err, service.ErrInvalidUTF8),
		errors.Is(err, service.ErrControlChar):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoStore):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}
