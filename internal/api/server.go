// Package api provides the HTTP server and fragment handlers for the
// Rolodex application.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rolodexapp/rolodex-server/internal/config"
	"github.com/rolodexapp/rolodex-server/internal/fragcache"
	"github.com/rolodexapp/rolodex-server/internal/render"
	"github.com/rolodexapp/rolodex-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	contacts   *service.ContactService
	companies  *service.CompanyService
	activities *service.ActivityService
	tags       *service.TagService
	cache      *fragcache.Cache
	renderer   render.Renderer
	router     *chi.Mux
	logger     *slog.Logger
	demo       config.DemoConfig
}

// NewServer creates the HTTP server with all routes configured.
func NewServer(
	contacts *service.ContactService,
	companies *service.CompanyService,
	activities *service.ActivityService,
	tags *service.TagService,
	cache *fragcache.Cache,
	renderer render.Renderer,
	demo config.DemoConfig,
	logger *slog.Logger,
) *Server {
	s := &Server{
		contacts:   contacts,
		companies:  companies,
		activities: activities,
		tags:       tags,
		cache:      cache,
		renderer:   renderer,
		router:     chi.NewRouter(),
		logger:     logger,
		demo:       demo,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders: []string{"*"},
	}))
	if s.demo.Enabled {
		s.router.Use(demoDelay(s.demo.Delay))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/contacts", http.StatusSeeOther)
	})

	s.router.Route("/contacts", func(r chi.Router) {
		r.Get("/", s.handleListContacts)
		r.Post("/", s.handleCreateContact)
		r.Get("/new", s.handleNewContact)
		r.With(s.loadSidebar).Get("/{id}", s.handleShowContact)
		r.Get("/{id}/edit", s.handleEditContact)
		r.Patch("/{id}", s.handleUpdateContact)
		r.Delete("/{id}", s.handleDeleteContact)
		r.Patch("/{id}/star", s.handleStarContact)
		r.Patch("/{id}/archive", s.handleArchiveContact)
		r.With(s.loadSidebar).Get("/{id}/activities", s.handleListContactActivities)
		r.Post("/{id}/activities", s.handleCreateContactActivity)
	})

	s.router.Route("/activities", func(r chi.Router) {
		r.With(s.loadSidebar).Get("/", s.handleListActivities)
		r.Post("/", s.handleCreateActivity)
		r.Get("/new", s.handleNewActivity)
		r.Get("/{id}", s.handleShowActivity)
		r.Get("/{id}/edit", s.handleEditActivity)
		r.Patch("/{id}", s.handleUpdateActivity)
		r.Delete("/{id}", s.handleDeleteActivity)
	})

	s.router.Route("/companies", func(r chi.Router) {
		r.Get("/", s.handleListCompanies)
		r.Post("/", s.handleCreateCompany)
		r.Get("/new", s.handleNewCompany)
		r.Get("/{id}", s.handleShowCompany)
		r.Get("/{id}/edit", s.handleEditCompany)
		r.Patch("/{id}", s.handleUpdateCompany)
	})
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
