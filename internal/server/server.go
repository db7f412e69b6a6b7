// Package server exposes the content engine over HTTP.
//
// The server owns one live [state.Store]. Clients push events into it and
// read back the resolved page, or post a complete state for a one-off
// resolution. Routes:
//
//	GET    /healthz                       liveness and readiness
//	GET    /v1/state                      current state
//	PUT    /v1/state                      replace the state
//	POST   /v1/events                     dispatch an event log
//	GET    /v1/tree?format=json|dot|svg   resolve and render the live state
//	POST   /v1/resolve                    resolve a posted state
//	GET    /v1/snapshots                  list saved snapshots
//	POST   /v1/snapshots                  save the live state
//	GET    /v1/snapshots/{id}             fetch a snapshot
//	DELETE /v1/snapshots/{id}             delete a snapshot
//	POST   /v1/snapshots/{id}/restore     load a snapshot into the live store
//
// Snapshot routes are only mounted when a [snapshot.Store] is configured.
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/contentstack/pkg/pipeline"
	"github.com/matzehuels/contentstack/pkg/snapshot"
	"github.com/matzehuels/contentstack/pkg/state"
)

// Defaults for [Config].
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 8 << 20
	DefaultTimeout      = 30 * time.Second
)

// Config controls the HTTP listener.
type Config struct {
	Addr         string
	MaxBodyBytes int64
	Timeout      time.Duration
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Server serves the content engine API.
type Server struct {
	cfg       Config
	runner    *pipeline.Runner
	store     *state.Store
	snapshots snapshot.Store
	logger    *log.Logger
}

// New creates a server. snapshots may be nil to disable the snapshot routes;
// a nil logger discards output.
func New(cfg Config, runner *pipeline.Runner, store *state.Store, snapshots snapshot.Store, logger *log.Logger) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{
		cfg:       cfg,
		runner:    runner,
		store:     store,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Handler returns the routed API handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", s.handleGetState)
		r.Put("/state", s.handlePutState)
		r.Post("/events", s.handleEvents)
		r.Get("/tree", s.handleTree)
		r.Post("/resolve", s.handleResolve)

		if s.snapshots != nil {
			r.Route("/snapshots", func(r chi.Router) {
				r.Get("/", s.handleListSnapshots)
				r.Post("/", s.handleSaveSnapshot)
				r.Get("/{id}", s.handleGetSnapshot)
				r.Delete("/{id}", s.handleDeleteSnapshot)
				r.Post("/{id}/restore", s.handleRestoreSnapshot)
			})
		}
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// body limits the request body to the configured size.
func (s *Server) body(w http.ResponseWriter, r *http.Request) io.Reader {
	return http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
}
