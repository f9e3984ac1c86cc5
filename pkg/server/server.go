// Package server implements the collage preview server.
//
// The server exposes presets, the catalog, computed layouts and rendered
// artifacts over HTTP. Every request recomputes placements from the current
// catalog; nothing is cached, so a reloaded catalog or a different query is
// visible immediately.
//
// Routes:
//
//	GET /healthz
//	GET /api/presets
//	GET /api/presets/{name}
//	GET /api/catalog?category=
//	GET /api/catalog/projects/{slug}
//	GET /api/layout/{preset}?category=&project=
//	GET /render/{preset}.{format}?category=&project=&focus=&width=&images=
//
// Errors are JSON objects {"code": ..., "message": ...}. INVALID_* codes map
// to 400, NOT_FOUND codes to 404 and everything else to 500.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/collage/pkg/catalog"
	"github.com/matzehuels/collage/pkg/pipeline"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":8080"

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithCatalogSource sets where the served catalog comes from.
func WithCatalogSource(src *CatalogSource) Option { return func(s *Server) { s.source = src } }

// WithAddr sets the listen address.
func WithAddr(addr string) Option { return func(s *Server) { s.addr = addr } }

// Server is the preview HTTP server.
type Server struct {
	addr   string
	logger *log.Logger
	source *CatalogSource
	runner *pipeline.Runner
	router chi.Router
}

// New creates a server. Without a catalog source it serves the built-in
// catalog.
func New(opts ...Option) *Server {
	s := &Server{addr: DefaultAddr}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.source == nil {
		s.source = NewCatalogSource(catalog.Default())
	}
	s.runner = pipeline.NewRunner(s.logger)
	s.router = s.routes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(noCache)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/presets", s.handlePresets)
		r.Get("/presets/{name}", s.handlePreset)
		r.Get("/catalog", s.handleCatalog)
		r.Get("/catalog/projects/{slug}", s.handleProject)
		r.Get("/layout/{preset}", s.handleLayout)
	})

	r.Get("/render/{preset}.{format}", s.handleRender)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, notFound(r))
	})
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
