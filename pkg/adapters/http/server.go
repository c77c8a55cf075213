package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/supraja777/multiagent/internal/presentation/graph"
	"github.com/supraja777/multiagent/pkg/domain"
	"github.com/supraja777/multiagent/pkg/ports"
	"github.com/supraja777/multiagent/pkg/runner"
)

// Engine defines what the HTTP surface needs from multiagent.Engine.
type Engine interface {
	Run(ctx context.Context, request string) (*domain.Transcript, error)
	Graph() *domain.Graph
}

// RunRequest is the body of POST /runs.
type RunRequest struct {
	Request string `json:"request"`
}

// RunResponse is the body returned by POST /runs.
type RunResponse struct {
	Transcript *domain.Transcript `json:"transcript"`
	Answer     string             `json:"answer,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Server serves runs over HTTP.
type Server struct {
	Engine  Engine
	Store   ports.TranscriptStore
	Metrics http.Handler
	Version string
	Logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStore exposes archived transcripts under /runs.
func WithStore(store ports.TranscriptStore) Option {
	return func(s *Server) { s.Store = store }
}

// WithMetrics mounts a Prometheus handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.Metrics = h }
}

// WithVersion reports v on /healthz.
func WithVersion(v string) Option {
	return func(s *Server) { s.Version = v }
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{Engine: engine, Logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/runs", s.CreateRun)
	r.Get("/runs", s.ListRuns)
	r.Get("/runs/{runID}", s.GetRun)
	r.Get("/graph", s.GetGraph)
	r.Get("/healthz", s.GetHealth)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CreateRun handles POST /runs. A halted run answers 422 with the partial
// transcript.
func (s *Server) CreateRun(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("CreateRun: Invalid request body", "err", err)
		return
	}

	request, err := runner.SanitizeInput(strings.TrimSpace(body.Request))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.Logger.Warn("CreateRun: Input rejected", "err", err, "size", len(body.Request))
		return
	}
	if request == "" {
		http.Error(w, "request must not be empty", http.StatusBadRequest)
		return
	}

	tr, runErr := s.Engine.Run(r.Context(), request)
	if tr == nil {
		http.Error(w, fmt.Sprintf("Run error: %v", runErr), http.StatusInternalServerError)
		s.Logger.Error("CreateRun failed", "err", runErr)
		return
	}

	resp := RunResponse{Transcript: tr}
	if answer, ok := tr.Answer(); ok {
		resp.Answer = answer.Content
	}
	status := http.StatusOK
	if runErr != nil {
		status = http.StatusUnprocessableEntity
		resp.Error = runErr.Error()
		s.Logger.Warn("CreateRun: run halted", "run_id", tr.RunID, "err", runErr)
	}
	writeJSON(w, status, resp, s.Logger)
}

// GetRun handles GET /runs/{runID}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		http.Error(w, "run archive disabled", http.StatusNotFound)
		return
	}
	id := chi.URLParam(r, "runID")
	tr, err := s.Store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRunNotFound) {
			http.Error(w, fmt.Sprintf("run %s not found", id), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		s.Logger.Error("GetRun failed", "run_id", id, "err", err)
		return
	}
	writeJSON(w, http.StatusOK, tr, s.Logger)
}

// ListRuns handles GET /runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	ids := []string{}
	if s.Store != nil {
		listed, err := s.Store.List(r.Context())
		if err != nil {
			http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
			s.Logger.Error("ListRuns failed", "err", err)
			return
		}
		ids = append(ids, listed...)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"runs": ids}, s.Logger)
}

// GetGraph handles GET /graph. JSON is returned when asked for through the
// Accept header, Mermaid text otherwise.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	g := s.Engine.Graph()
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, g, s.Logger)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(g, nil)))
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	if s.Version != "" {
		resp["version"] = s.Version
	}
	writeJSON(w, http.StatusOK, resp, s.Logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
