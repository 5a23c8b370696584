// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api is the composition root of the HTTP transport.

It assembles the middleware chain, mounts every domain handler under
/api/v1 and owns the [http.Server] lifecycle.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/konstra/internal/core/content"
	"github.com/taibuivan/konstra/internal/core/media"
	"github.com/taibuivan/konstra/internal/core/spectable"
	"github.com/taibuivan/konstra/internal/platform/config"
	"github.com/taibuivan/konstra/internal/platform/constants"
	"github.com/taibuivan/konstra/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups every HTTP handler set mounted by [NewServer].
type Handlers struct {
	// Health serves /health and /ready.
	Health *HealthHandler

	// Projects and Insights are the two content collections.
	Projects *content.Handler
	Insights *content.Handler

	// SpecDrafts edits specification tables between saves.
	SpecDrafts *spectable.Handler

	// Media uploads, resolves and deletes images.
	Media *media.Handler
}

// # Server Initialization

// NewServer builds the router with the full middleware chain. The rate
// limiter sweeps idle clients until context is cancelled.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	limiter := middleware.NewRateLimiter(constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)
	go limiter.Run(context, constants.RateLimitCleanupInterval)

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.ClientIP(cfg.ProxyPrefixes()))
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(limiter.Handler)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Health.Liveness)
	r.Get("/ready", h.Health.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/"+string(content.CollectionProjects), h.Projects.Routes())
		api.Mount("/"+string(content.CollectionInsights), h.Insights.Routes())
		api.Mount("/spec-drafts", h.SpecDrafts.Routes())
		api.Mount("/media", h.Media.Routes())
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

// Handler exposes the assembled router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe blocks until the server is closed or fails.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits up to timeout for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
