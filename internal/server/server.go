// Package server exposes the solver over HTTP.
//
// Routes:
//
//	GET  /healthz           liveness probe, always "ok"
//	GET  /version           build information as JSON
//	POST /v1/solve          solve one grid, JSON in and out
//	GET  /v1/solve/stream   WebSocket: one request in, step events and the result out
//
// Every request gets a fresh grid parsed from its body, so handlers share
// nothing but the solver Runner and its cache.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gridpath/pkg/solver"
)

// DefaultMaxBodyBytes caps solve request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Options configures a Server. Zero values select the defaults.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// CORSOrigins enables CORS for the listed origins; "*" allows any.
	// It also decides which origins may open the stream endpoint.
	CORSOrigins []string

	MaxBodyBytes int64
}

// Server routes HTTP requests to a solver Runner.
type Server struct {
	runner   *solver.Runner
	logger   *log.Logger
	opts     Options
	decoder  *schema.Decoder
	upgrader websocket.Upgrader
}

// New creates a Server. A nil logger uses log.Default().
func New(runner *solver.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	s := &Server{
		runner:  runner,
		logger:  logger,
		opts:    opts,
		decoder: decoder,
	}
	s.upgrader.CheckOrigin = checkOrigin(opts.CORSOrigins)
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if len(s.opts.CORSOrigins) > 0 {
		r.Use(corsHandler(s.opts.CORSOrigins))
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/solve/stream", s.handleStream)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// A clean shutdown returns nil.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	return s.serve(ctx, srv, srv.ListenAndServe)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Addr:         l.Addr().String(),
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	return s.serve(ctx, srv, func() error { return srv.Serve(l) })
}

func (s *Server) serve(ctx context.Context, srv *http.Server, listen func() error) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", srv.Addr)
		if err := listen(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
