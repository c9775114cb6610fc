// Package server exposes the backend wire protocol over HTTP.
//
// The four endpoints mirror the gateway contract exactly: JSON over POST,
// results and error text carried in the body, HTTP status codes secondary.
// File state lives in the workspace store; code execution is delegated to
// the runner.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/codepadhq/codepad/internal/runner"
	"github.com/codepadhq/codepad/internal/workspace"
)

// Logger is the logging surface the server needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Server serves the backend API over a workspace store and a runner.
type Server struct {
	files     *workspace.Store
	runner    *runner.Runner
	log       Logger
	csrfToken string

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(log Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithCSRFToken makes storage endpoints require the given anti-forgery
// token in the X-CSRFToken header. An empty token disables the check.
// The execute endpoint is exempt, matching the original backend.
func WithCSRFToken(token string) Option {
	return func(s *Server) {
		s.csrfToken = token
	}
}

// New creates a Server over the given workspace store and runner.
func New(files *workspace.Store, run *runner.Runner, opts ...Option) *Server {
	s := &Server{
		files:  files,
		runner: run,
		log:    nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler for the backend API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/list/", s.requireToken(s.handleList))
	mux.HandleFunc("/api/load/", s.requireToken(s.handleLoad))
	mux.HandleFunc("/api/save/", s.requireToken(s.handleSave))
	mux.HandleFunc("/api/execute/", s.handleExecute)
	return mux
}

// ListenAndServe serves the API on addr until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.log.Info("listening on %s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// requireToken enforces the anti-forgery token when one is configured.
func (s *Server) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.csrfToken != "" && r.Header.Get("X-CSRFToken") != s.csrfToken {
			s.log.Warn("rejected %s: bad anti-forgery token", r.URL.Path)
			writeJSON(w, http.StatusForbidden, map[string]any{"error": "Invalid CSRF token"})
			return
		}
		next(w, r)
	}
}
