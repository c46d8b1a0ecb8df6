package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/mailforge/pkg/logger"
)

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	ready           []func(addr string)
	closers         []func() error
}

// Server runs the editor API with graceful shutdown on context
// cancellation or SIGINT/SIGTERM.
type Server struct {
	cfg  config
	once sync.Once

	mu  sync.Mutex
	srv *http.Server
	ln  net.Listener
}

// New returns a Server listening on :8080 unless WithAddr says otherwise.
func New(opts ...Option) *Server {
	cfg := config{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.Discard()
	}
	return &Server{cfg: cfg}
}

// Addr returns the bound listener address once Run has started, or the
// configured address before that.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.cfg.addr
}

func (s *Server) prepare(handler http.Handler) (*http.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return nil, errors.Join(ErrStart, ErrAlreadyRunning)
	}

	srv := &http.Server{
		Addr:         s.cfg.addr,
		Handler:      handler,
		ReadTimeout:  s.cfg.readTimeout,
		WriteTimeout: s.cfg.writeTimeout,
		IdleTimeout:  s.cfg.idleTimeout,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, errors.Join(ErrStart, err)
	}
	s.srv, s.ln = srv, ln
	return srv, nil
}

// Run serves handler and blocks until ctx is done, a termination signal
// arrives or the listener fails. A nil handler answers 404 to everything.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	srv, err := s.prepare(handler)
	if err != nil {
		return err
	}

	log := s.cfg.logger
	addr := s.Addr()
	log.InfoContext(ctx, "http server listening", slog.String("addr", addr))
	for _, fn := range s.cfg.ready {
		fn(addr)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(s.ln) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	var runErr, shutdownErr error
	select {
	case <-ctx.Done():
		shutdownErr = s.Shutdown(context.WithoutCancel(ctx))
		runErr = <-errCh
	case got := <-sig:
		log.InfoContext(ctx, "shutdown signal received", slog.String("signal", got.String()))
		shutdownErr = s.Shutdown(context.WithoutCancel(ctx))
		runErr = <-errCh
	case runErr = <-errCh:
		shutdownErr = s.Shutdown(context.WithoutCancel(ctx))
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr, shutdownErr)
	}
	return shutdownErr
}

// Shutdown drains in-flight requests within the shutdown timeout, then runs
// the OnShutdown closers. Calls after the first are no-ops.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
		for _, closeFn := range s.cfg.closers {
			if err := closeFn(); err != nil {
				errs = append(errs, err)
			}
		}
		s.cfg.logger.InfoContext(ctx, "http server stopped")
	})

	if len(errs) > 0 {
		return errors.Join(append([]error{ErrShutdown}, errs...)...)
	}
	return nil
}
