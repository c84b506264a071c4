// Package server exposes the probe, status and acknowledgement routes.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/jonwraymond/ackworker/ack"
	"github.com/jonwraymond/ackworker/health"
	"github.com/jonwraymond/ackworker/observe"
)

// AckResponse is the body returned by the acknowledge route.
const AckResponse = "ok"

// Options configures a Server.
type Options struct {
	// Addr is the listen address used by Run.
	// Default: "0.0.0.0:8080"
	Addr string

	// Probe runs on every GET /. Required.
	Probe health.Checker

	// Readiness checkers back GET /readyz. They must not have side effects.
	Readiness []health.Checker

	// Middleware records per-request telemetry.
	// Default: observe.NopMiddleware()
	Middleware *observe.Middleware

	// MetricsHandler is mounted at GET /metrics when non-nil.
	MetricsHandler http.Handler

	// WriteTimeout bounds response writes; it must exceed the publish timeout.
	// Default: 10 seconds
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10 seconds
	ShutdownTimeout time.Duration
}

// Server owns the acknowledgement state and the HTTP routes over it.
type Server struct {
	opts   Options
	state  *ack.State
	logger observe.Logger
	mux    *http.ServeMux
}

// New creates a Server with a fresh acknowledgement state.
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = "0.0.0.0:8080"
	}
	if opts.Middleware == nil {
		opts.Middleware = observe.NopMiddleware()
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		opts:   opts,
		state:  ack.New(),
		logger: opts.Middleware.Logger(),
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	mw := s.opts.Middleware

	s.mux.Handle("GET /{$}", mw.HTTP("http.probe", health.ProbeHandler(s.opts.Probe)))
	s.mux.Handle("GET /status", mw.HTTP("http.status", http.HandlerFunc(s.handleStatus)))
	s.mux.Handle("POST /ack", mw.HTTP("http.ack", http.HandlerFunc(s.handleAck)))

	s.mux.Handle("GET /healthz", health.LivenessHandler())
	s.mux.Handle("GET /readyz", health.ReadinessHandler(s.opts.Readiness...))
	if s.opts.MetricsHandler != nil {
		s.mux.Handle("GET /metrics", s.opts.MetricsHandler)
	}
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// State returns the acknowledgement state owned by this server.
func (s *Server) State() *ack.State {
	return s.state
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, s.state.Status().String())
}

func (s *Server) handleAck(w http.ResponseWriter, r *http.Request) {
	if s.state.Acknowledge() {
		s.logger.Info(r.Context(), "notification acknowledged", observe.F("status", ack.StatusConsumed.String()))
	}
	writeText(w, http.StatusOK, AckResponse)
}

func writeText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

// Run listens on Options.Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.opts.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "server listening", observe.F("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.logger.Info(ctx, "server stopped")
	return nil
}
