// Package web provides the HTTP server and handlers for the roster
// administration API.
package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/capitolyouth/admin/internal/config"
	"github.com/capitolyouth/admin/internal/roster"
	appmw "github.com/capitolyouth/admin/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the admin API.
type Server struct {
	cfg     *config.Config
	service *roster.Service
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(cfg *config.Config, service *roster.Service) *Server {
	s := &Server{
		cfg:     cfg,
		service: service,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(appmw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	// CSV payloads arrive inside JSON bodies, so the body limit bounds them.
	s.router.Use(middleware.RequestSize(s.cfg.Import.MaxCSVBytes))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/program-years/{yearID}", func(r chi.Router) {
		r.Use(appmw.BearerAuth(&s.cfg.Auth))

		// Import pipeline
		r.Post("/import/preview", s.handleImportPreview)
		r.Post("/import", s.handleImport)
		r.Get("/import/template", s.handleImportTemplate)

		// Assignment engine
		r.Post("/assignments/preview", s.handleAssignmentPreview)
		r.Post("/assignments/commit", s.handleAssignmentCommit)

		// Reference listings
		r.Get("/groupings", s.handleListGroupings)
		r.Get("/parties", s.handleListParties)
	})
}

// Start begins listening for HTTP requests. Blocks until the server stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
