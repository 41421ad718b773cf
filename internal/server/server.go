// Package server exposes stored diagrams over HTTP.
//
// Routes:
//
//	GET    /health                          liveness probe
//	GET    /metrics                         Prometheus metrics (when a gatherer is set)
//	GET    /api/diagrams                    list diagram names
//	GET    /api/diagrams/{name}             diagram document as JSON
//	PUT    /api/diagrams/{name}             create or replace a diagram
//	DELETE /api/diagrams/{name}             delete a diagram
//	POST   /api/diagrams/{name}/resolve     connected set and neighbours for seeds/focus
//	POST   /api/diagrams/{name}/sessions    start a viewer session
//	GET    /api/sessions/{id}               session state and its resolved classes
//	POST   /api/sessions/{id}/{action}      toggle, hover, leave, clear or expand
//	GET    /api/sessions/{id}/svg           SVG rendered with the session state
//	DELETE /api/sessions/{id}               end a session
//	GET    /diagrams/{name}/{format}        rendered diagram (svg, dot, json, pdf, png)
//
// Render routes read the highlight state from the query string
// (?seed=a&seed=b&focus=c&expand=d&view=nodelink). Rendered SVGs link every
// node back to the same route with that node toggled, so the diagram is
// explorable in a plain browser.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/tocview/pkg/pipeline"
	"github.com/matzehuels/tocview/pkg/session"
	"github.com/matzehuels/tocview/pkg/store"
)

// DefaultAddr is the listen address used when Config.Addr is empty.
const DefaultAddr = "127.0.0.1:8080"

// maxBodyBytes caps diagram uploads.
const maxBodyBytes = 4 << 20

const sessionSweepInterval = 10 * time.Minute

// Config holds the dependencies of a Server.
type Config struct {
	Addr     string
	Store    store.Store
	Runner   *pipeline.Runner
	Logger   *log.Logger
	Gatherer prometheus.Gatherer // Serves /metrics when non-nil
	Sessions session.Store       // Viewer sessions, in memory when nil
}

// Server is the tocview HTTP server.
type Server struct {
	store    store.Store
	sessions session.Store
	runner   *pipeline.Runner
	logger   *log.Logger
	addr     string
	router   chi.Router
}

// New creates a server. Store is required; a nil Runner gets an uncached
// one and a nil Logger the default logger.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("server: store is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Sessions == nil {
		cfg.Sessions = session.NewMemoryStore()
	}

	s := &Server{
		store:    cfg.Store,
		sessions: cfg.Sessions,
		runner:   cfg.Runner,
		logger:   cfg.Logger,
		addr:     cfg.Addr,
	}
	s.router = s.buildRouter(cfg.Gatherer)
	return s, nil
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.addr }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	go s.sweepSessions(ctx)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// sweepSessions drops expired sessions every sessionSweepInterval until ctx
// is cancelled.
func (s *Server) sweepSessions(ctx context.Context) {
	t := time.NewTicker(sessionSweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.sessions.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "error", err)
			}
		}
	}
}

func (s *Server) buildRouter(gatherer prometheus.Gatherer) chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/diagrams", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handlePut)
			r.Delete("/", s.handleDelete)
			r.Post("/resolve", s.handleResolve)
			r.Post("/sessions", s.handleSessionCreate)
		})
	})
	r.Route("/api/sessions/{id}", s.sessionRouter)

	r.Get("/diagrams/{name}/{format}", s.handleRender)

	return r
}
