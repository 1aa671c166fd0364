// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

Routing is split by dashboard: the admin console owns the entity CRUD
surfaces under /api, while the author dashboard gets its scoped variants
under /api/author.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/maktaba/internal/core/author"
	"github.com/taibuivan/maktaba/internal/core/book"
	"github.com/taibuivan/maktaba/internal/core/category"
	"github.com/taibuivan/maktaba/internal/core/chapter"
	"github.com/taibuivan/maktaba/internal/core/favorite"
	"github.com/taibuivan/maktaba/internal/core/review"
	"github.com/taibuivan/maktaba/internal/core/user"
	"github.com/taibuivan/maktaba/internal/platform/config"
	"github.com/taibuivan/maktaba/internal/platform/constants"
	"github.com/taibuivan/maktaba/internal/platform/middleware"
	"github.com/taibuivan/maktaba/internal/platform/sec"
	"github.com/taibuivan/maktaba/internal/uploads"
	"github.com/taibuivan/maktaba/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles login, logout, session introspection, and the author
	// self-service profile.
	Auth *auth.Handler

	// User handles the admin account directory.
	User *user.Handler

	// Book handles the catalogue plus its author-scoped variants.
	Book *book.Handler

	// Author handles admin management of writer profiles.
	Author *author.Handler

	// Category handles the taxonomy.
	Category *category.Handler

	// Chapter handles chapters plus their author-scoped variants.
	Chapter *chapter.Handler

	// Favorite handles bookmarks.
	Favorite *favorite.Handler

	// Review handles ratings and questionnaire answers.
	Review *review.Handler

	// Uploads handles image upload and the read proxy.
	Uploads *uploads.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, resolver middleware.SessionResolver, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(resolver))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {

		// ## Public: credentials and the image read proxy
		api.Mount("/", h.Auth.PublicRoutes())
		api.Mount("/uploads", h.Uploads.ProxyRoutes())

		// ## Any authenticated session
		api.Group(func(authed chi.Router) {
			authed.Use(middleware.RequireSession)

			authed.Mount("/", h.Auth.SessionRoutes())
			authed.Mount("/upload", h.Uploads.UploadRoutes())
		})

		// ## Admin console
		api.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireSession)
			admin.Use(middleware.RequireDashboard(sec.DashboardAdmin))

			admin.Mount("/users", h.User.Routes())
			admin.Mount("/books", h.Book.Routes())
			admin.Mount("/authors", h.Author.Routes())
			admin.Mount("/categories", h.Category.Routes())
			admin.Mount("/chapters", h.Chapter.Routes())
			admin.Mount("/favorites", h.Favorite.Routes())
			admin.Mount("/reviews", h.Review.Routes())
		})

		// ## Author dashboard
		api.Route("/author", func(own chi.Router) {
			own.Use(middleware.RequireSession)
			own.Use(middleware.RequireDashboard(sec.DashboardAuthor))

			own.Mount("/books", h.Book.AuthorRoutes())
			own.Mount("/chapters", h.Chapter.AuthorRoutes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
