// Package service exposes the compile pipeline over HTTP. Requests carry a
// system's files inline; responses are JSON. The service is stateless apart
// from the optional run history store.
package service

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/matlang/go-matlang/compile"
	"github.com/matlang/go-matlang/export"
	"github.com/matlang/go-matlang/history"
)

// Service handles compile requests over HTTP.
type Service struct {
	log     *slog.Logger
	store   *history.Store
	started time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithHistory enables run recording into the given store.
func WithHistory(store *history.Store) Option {
	return func(s *Service) { s.store = store }
}

// New creates a service.
func New(opts ...Option) *Service {
	s := &Service{
		log:     slog.Default(),
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler for the service.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /systems/validate", s.handleValidate)
	mux.HandleFunc("POST /systems/graph", s.handleGraph)
	mux.HandleFunc("GET /runs", s.handleRuns)

	return mux
}

// CompileRequest is the request body for validate and graph endpoints.
type CompileRequest struct {
	Name  string               `json:"name"`
	Files []compile.SourceFile `json:"files"`
}

// Summary counts the tables of a validated system and its graph.
type Summary struct {
	Roles     int `json:"roles"`
	States    int `json:"states"`
	Sequences int `json:"sequences"`
	Groups    int `json:"groups"`
	Nodes     int `json:"nodes"`
	Edges     int `json:"edges"`
	SelfLoops int `json:"self_loops"`
}

// ValidateResponse reports one pipeline run.
type ValidateResponse struct {
	RunID   string   `json:"run_id"`
	System  string   `json:"system"`
	Valid   bool     `json:"valid"`
	Errors  []string `json:"errors,omitempty"`
	Summary *Summary `json:"summary,omitempty"`
}

// HealthResponse is the response for the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.started).String(),
	})
}

func (s *Service) compile(r *http.Request) (*compile.Result, *CompileRequest, error) {
	var req CompileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, nil, err
	}

	result := compile.Compile(req.Name, req.Files)
	s.log.Info("compiled system",
		"run_id", result.RunID,
		"system", req.Name,
		"files", len(req.Files),
		"valid", result.Valid(),
		"errors", len(result.Diagnostics))

	if s.store != nil {
		if err := s.store.Record(result); err != nil {
			s.log.Error("record run", "run_id", result.RunID, "error", err)
		}
	}
	return result, &req, nil
}

func (s *Service) handleValidate(w http.ResponseWriter, r *http.Request) {
	result, _, err := s.compile(r)
	if err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp := ValidateResponse{
		RunID:  result.RunID,
		System: result.SystemName,
		Valid:  result.Valid(),
	}
	for _, diag := range result.Diagnostics {
		resp.Errors = append(resp.Errors, diag.Error())
	}
	if result.Valid() {
		resp.Summary = &Summary{
			Roles:     len(result.System.Roles),
			States:    len(result.System.States),
			Sequences: len(result.System.Sequences),
			Groups:    len(result.System.Groups),
			Nodes:     len(result.Graph.Nodes),
			Edges:     len(result.Graph.Edges),
			SelfLoops: result.Graph.SelfLoops(),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleGraph(w http.ResponseWriter, r *http.Request) {
	result, _, err := s.compile(r)
	if err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !result.Valid() {
		resp := ValidateResponse{RunID: result.RunID, System: result.SystemName, Valid: false}
		for _, diag := range result.Diagnostics {
			resp.Errors = append(resp.Errors, diag.Error())
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	data, err := export.JSON(result.Graph)
	if err != nil {
		http.Error(w, "encode graph: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Service) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "run history is not configured", http.StatusNotFound)
		return
	}

	runs, err := s.store.Recent(0)
	if err != nil {
		s.log.Error("list runs", "error", err)
		http.Error(w, "list runs: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
