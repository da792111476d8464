package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/handlers"

	"github.com/jonwraymond/healthmock/health"
	"github.com/jonwraymond/healthmock/observe"
)

// Server is the mock health-check HTTP server.
//
// Contract:
//   - Concurrency: Handler is safe for concurrent use; table updates are
//     last-write-wins.
//   - Errors: request content never terminates the process; handler panics
//     are answered with 500.
//   - Side effects: only toggles are logged.
type Server struct {
	cfg       Config
	table     *health.Table
	logger    observe.Logger
	telemetry *observe.HTTPMiddleware
	handler   http.Handler

	mu     sync.Mutex
	srv    *http.Server
	closed bool
}

// Option configures a Server.
type Option func(*Server)

// WithTable uses t instead of a freshly seeded table. Configured components
// are still seeded into it when absent.
func WithTable(t *health.Table) Option {
	return func(s *Server) {
		s.table = t
	}
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(l observe.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithTelemetry sets the tracing and metrics middleware. Default: no-op.
func WithTelemetry(m *observe.HTTPMiddleware) Option {
	return func(s *Server) {
		s.telemetry = m
	}
}

// New creates a Server. Defaults are applied to cfg before validation.
func New(cfg Config, opts ...Option) (*Server, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}

	if s.table == nil {
		s.table = health.NewTable(cfg.Components...)
	} else {
		for _, name := range cfg.Components {
			if !s.table.Known(name) {
				s.table.Set(name, true)
			}
		}
	}
	if s.logger == nil {
		s.logger = observe.NopLogger()
	}
	if s.telemetry == nil {
		s.telemetry = observe.NoopMiddleware()
	}
	s.logger = s.logger.With(observe.F("profile", cfg.Profile.String()))

	if err := s.telemetry.Metrics().ObserveComponents(s.table.Snapshot); err != nil {
		return nil, fmt.Errorf("server: observe components: %w", err)
	}

	s.handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger: s.logger}),
	)(s.newRouter())

	return s, nil
}

// Handler returns the mock HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Table returns the component health table.
func (s *Server) Table() *health.Table {
	return s.table
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.cfg
}

// ListenAndServe listens on the configured address and serves until
// Shutdown. It returns http.ErrServerClosed after a graceful shutdown.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ln)
}

// Serve serves on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	hs := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           s.handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ErrorLog:          log.New(serverErrorWriter{logger: s.logger}, "", 0),
	}

	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		_ = ln.Close()
		return http.ErrServerClosed
	case s.srv != nil:
		s.mu.Unlock()
		_ = ln.Close()
		return ErrAlreadyServing
	}
	s.srv = hs
	s.mu.Unlock()

	s.logger.Info(context.Background(), "mock server listening",
		observe.F("addr", ln.Addr().String()),
		observe.F("components", s.table.Names()),
	)
	return hs.Serve(ln)
}

// Shutdown gracefully stops the server. A server shut down before Serve
// never starts serving.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	hs := s.srv
	s.mu.Unlock()

	if hs == nil {
		return nil
	}

	s.logger.Info(ctx, "mock server shutting down")
	if err := hs.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// recoveryLogger adapts observe.Logger to handlers.RecoveryHandlerLogger.
type recoveryLogger struct {
	logger observe.Logger
}

func (l recoveryLogger) Println(v ...any) {
	l.logger.Error(context.Background(), "recovered from handler panic",
		observe.F("panic", fmt.Sprint(v...)),
	)
}

// serverErrorWriter routes net/http's own error log to the structured logger
// at debug level. It includes the warning net/http emits for queries that
// contain ';', which the toggle parser accepts.
type serverErrorWriter struct {
	logger observe.Logger
}

func (w serverErrorWriter) Write(p []byte) (int, error) {
	w.logger.Debug(context.Background(), "http server error",
		observe.F("error", strings.TrimSpace(string(p))),
	)
	return len(p), nil
}
