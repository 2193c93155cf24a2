// Package server serves articles and the selection wheel over HTTP.
//
// # Routes
//
//	GET  /healthz               liveness probe
//	GET  /                      article index (HTML)
//	GET  /articles/{name}?page=N one article page with navigation (HTML)
//	GET  /api/articles          article folders (JSON)
//	GET  /api/articles/{name}   converted pages of one article (JSON)
//	GET  /api/articles/{name}/outline?page=N  page headings (JSON)
//	POST /api/wheel/spin        run one spin and return the result (JSON)
//
// Article names may contain slashes for nested folders.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/codelabs/pkg/articles"
	"github.com/matzehuels/codelabs/pkg/wheel"
)

// Library is the article store the server reads from.
type Library interface {
	Folders(ctx context.Context) ([]articles.Folder, error)
	Pages(ctx context.Context, name string) ([]articles.Page, error)
}

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	lib      Library
	wheelCfg wheel.Config
	logger   *log.Logger
	tmpl     *template.Template
	router   chi.Router
	title    string
	sectors  int
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the logger used for request and error logs.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWheelConfig sets the animation parameters used by the spin endpoint.
func WithWheelConfig(cfg wheel.Config) Option {
	return func(s *Server) { s.wheelCfg = cfg }
}

// WithSectors sets the sector count of spins that do not name one.
func WithSectors(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.sectors = n
		}
	}
}

// WithTitle sets the site title shown in page headers.
func WithTitle(title string) Option {
	return func(s *Server) { s.title = title }
}

// New creates a server over lib.
func New(lib Library, opts ...Option) *Server {
	s := &Server{
		lib:      lib,
		wheelCfg: wheel.DefaultConfig(),
		logger:   log.Default(),
		tmpl:     parseTemplates(),
		title:    "Codelabs",
		sectors:  DefaultSectors,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	r.Get("/", s.handleIndex)
	r.Get("/articles/*", s.handleArticle)

	r.Route("/api", func(r chi.Router) {
		r.Get("/articles", s.handleAPIFolders)
		r.Get("/articles/*", s.handleAPIArticle)
		r.Post("/wheel/spin", s.handleSpin)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.fail(w, r, errNotFoundRoute)
	})
	return r
}

// Timeouts bounds request handling and shutdown.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Shutdown time.Duration
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, waiting at most t.Shutdown for in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string, t Timeouts) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, t)
}

// Serve is [Server.ListenAndServe] on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, t Timeouts) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       t.Read,
		WriteTimeout:      t.Write,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.Shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
