// Package relay implements the HTTP service that mediates between the
// search frontends and the TMDb API: it maps filter parameters onto the
// upstream query contract, injects the credential, and reshapes responses
// into the {results, total_pages} envelope.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// shutdownTimeout is the maximum time to wait for the HTTP server to shut down.
const shutdownTimeout = 5 * time.Second

// Server wraps the relay HTTP server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	mu         sync.RWMutex
	ready      chan struct{}
	started    atomic.Bool
	logger     *slog.Logger
}

// NewServer creates a relay server listening on the given port.
func NewServer(port int, handler *Handler, proxy *Proxy, logger *slog.Logger) *Server {
	if handler == nil {
		panic("relay.NewServer: handler must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Get("/api/test", handler.Test)
	r.Get("/api/movies", handler.Movies)
	r.Get("/api/genres", handler.Genres)
	if proxy != nil {
		r.Post("/api/proxy", proxy.ServeHTTP)
	}
	r.Get("/health", healthHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      15 * time.Second,
		},
		ready:  make(chan struct{}),
		logger: logger,
	}
}

// Ready returns a channel that is closed once the server is listening.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the listener address once the server has started.
// Returns empty string if the server hasn't started yet.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// Start begins serving relay requests. It blocks until the server stops or
// an error occurs. The server shuts down gracefully when ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return fmt.Errorf("relay server already started")
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.httpServer.Addr)
	if err != nil {
		s.started.Store(false)
		return fmt.Errorf("relay server listen: %w", err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	close(s.ready)

	s.logger.Info("relay server started", slog.String("addr", ln.Addr().String()))

	serveDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-serveDone:
			return
		}
		s.logger.Info("relay server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		//nolint:contextcheck // parent ctx is canceled; we need a fresh context for graceful shutdown
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("relay server shutdown error", slog.String("error", err.Error()))
		}
	}()

	err = s.httpServer.Serve(ln)
	close(serveDone)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("relay server: %w", err)
	}
	return nil
}

// requestLogger logs each request with method, path, and remote address.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.Info("HTTP request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
			)
			next.ServeHTTP(w, r)
		})
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}
