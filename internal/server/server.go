// Package server exposes the parameter descriptor over HTTP using the
// host's descriptorByName URL layout.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sourceplane/dynparam/internal/descriptor"
	"github.com/sourceplane/dynparam/internal/lookup"
	"github.com/sourceplane/dynparam/internal/param"
	"github.com/sourceplane/dynparam/internal/registry"
	"github.com/sourceplane/dynparam/internal/runner"
)

const descriptorSegment = "/descriptorByName/" + param.Kind + "/"

// Server wires the descriptor and job registry to HTTP handlers.
type Server struct {
	Descriptor *descriptor.Descriptor
	Jobs       registry.JobRegistry
	Runner     *runner.Runner // optional; builds are only bound when nil
	Logger     *slog.Logger

	httpServer *http.Server
}

// ListResponse is the body of the fill endpoints
type ListResponse struct {
	Values descriptor.ListBox `json:"values"`
	Error  string             `json:"error,omitempty"`
}

// BuildResponse is the body of the build endpoint
type BuildResponse struct {
	Job        string                `json:"job"`
	Parameters []param.SelectedValue `json:"parameters"`
	Error      string                `json:"error,omitempty"`
}

// New creates a server
func New(d *descriptor.Descriptor, jobs registry.JobRegistry, r *runner.Runner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Descriptor: d, Jobs: jobs, Runner: r, Logger: logger}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /job/{job}"+descriptorSegment+"fillValueItems", s.handleFillValueItems)
	mux.HandleFunc("GET /job/{job}"+descriptorSegment+"fillDynamicValueItems", s.handleFillDynamicValueItems)
	mux.HandleFunc("POST /job/{job}/build", s.handleBuild)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("Server starting", "address", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) handleFillValueItems(w http.ResponseWriter, r *http.Request) {
	identity := identityOf(r)
	name := r.URL.Query().Get("name")
	s.writeJSON(w, http.StatusOK, ListResponse{Values: s.Descriptor.FillValueItems(identity, name)})
}

func (s *Server) handleFillDynamicValueItems(w http.ResponseWriter, r *http.Request) {
	identity := identityOf(r)
	q := r.URL.Query()

	// Resolution failures still answer with an empty list so the form keeps
	// working; the error field tells them apart from "no options".
	values, err := s.Descriptor.FillDynamicValueItems(identity, q.Get("name"), q.Get("value"))
	resp := ListResponse{Values: values}
	if err != nil {
		resp.Error = err.Error()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	identity := identityOf(r)

	jobName, err := lookup.JobNameFromIdentity(identity)
	if err != nil {
		s.Logger.Warn("Rejected build request", "identity", identity, "error", err)
		s.writeJSON(w, http.StatusBadRequest, BuildResponse{Error: err.Error()})
		return
	}
	job, ok := s.Jobs.JobByFullName(jobName)
	if !ok {
		s.writeJSON(w, http.StatusNotFound, BuildResponse{Job: jobName, Error: "job not found"})
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeJSON(w, http.StatusBadRequest, BuildResponse{Job: jobName, Error: err.Error()})
		return
	}

	values, err := s.Descriptor.BindJob(identity, job, r.PostForm)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, BuildResponse{Job: jobName, Error: err.Error()})
		return
	}
	resp := BuildResponse{Job: jobName, Parameters: values}

	if s.Runner != nil {
		if err := s.Runner.Run(r.Context(), job.FullName, job.Steps, resp.Parameters...); err != nil {
			s.Logger.Error("Build failed", "job", job.FullName, "error", err)
			resp.Error = err.Error()
			s.writeJSON(w, http.StatusInternalServerError, resp)
			return
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.Logger.Error("Failed to write response", "error", err)
	}
}

// identityOf returns the still-encoded request path up to the job segment,
// e.g. "/job/deploy%20app".
func identityOf(r *http.Request) string {
	path := r.URL.EscapedPath()
	if i := strings.Index(path, "/descriptorByName/"); i >= 0 {
		return path[:i]
	}
	return strings.TrimSuffix(path, "/build")
}
