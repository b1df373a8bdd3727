// Package server exposes the layout pipeline over HTTP.
//
// # Routes
//
//	GET    /healthz                   liveness and build info
//	POST   /v1/layouts                build a layout from a TOML or JSON config
//	GET    /v1/layouts                list stored layouts
//	GET    /v1/layouts/{id}           layout document
//	GET    /v1/layouts/{id}/{format}  rendered artifact (def, svg, dot, ...)
//	DELETE /v1/layouts/{id}           remove a stored layout
//
// A config body is TOML unless the request has Content-Type
// application/json. Configs that reference a LEF file are rejected since
// the path would be resolved on the server.
//
// Errors are JSON objects {"code": ..., "message": ...}. Configuration and
// layout errors map to 422, unknown layouts and formats to 404 and anything
// else to 500.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/padring/pkg/observability"
	"github.com/matzehuels/padring/pkg/pipeline"
	"github.com/matzehuels/padring/pkg/store"
)

// DefaultMaxBody is the largest accepted config body.
const DefaultMaxBody = 1 << 20

// ShutdownTimeout bounds graceful shutdown in Run.
const ShutdownTimeout = 10 * time.Second

// Server serves the HTTP API. It is safe for concurrent use.
type Server struct {
	Runner  *pipeline.Runner
	Store   store.Store
	Logger  *log.Logger
	MaxBody int64
}

// New creates a server. A nil store keeps layouts in memory.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Store: st, Logger: logger, MaxBody: DefaultMaxBody}
}

// Handler returns the router of the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/v1/layouts", func(r chi.Router) {
		r.Post("/", s.createLayout)
		r.Get("/", s.listLayouts)
		r.Get("/{id}", s.getLayout)
		r.Delete("/{id}", s.deleteLayout)
		r.Get("/{id}/{format}", s.getArtifact)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, notFound("no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// instrument reports every request to the server hooks: OnRequest with the
// raw path before the handler runs, OnResponse with the route pattern after.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}
