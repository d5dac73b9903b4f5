// Package server exposes the resolution engine over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftplan/internal/equipment"
	"github.com/claude/liftplan/internal/progression"
	"github.com/claude/liftplan/internal/storage"
	"github.com/claude/liftplan/internal/warmup"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db          *storage.DB
	engine      *equipment.Service
	planner     *warmup.Planner
	plans       *warmup.PlanStore
	progression *progression.Engine
	log         *slog.Logger
	apiKey      string
	router      chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, engine *equipment.Service, planner *warmup.Planner, plans *warmup.PlanStore, prog *progression.Engine, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:          db,
		engine:      engine,
		planner:     planner,
		plans:       plans,
		progression: prog,
		log:         log,
		apiKey:      apiKey,
		router:      chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Resolution endpoints — never fail on missing configuration.
	s.router.Post("/api/v1/resolve", s.handleResolve)
	s.router.Get("/api/v1/weights", s.handleAvailableWeights)

	// Warm-up planning.
	s.router.Post("/api/v1/warmup", s.handleWarmupGenerate)
	s.router.Post("/api/v1/warmup/feedback", s.handleWarmupFeedback)
	s.router.Get("/api/v1/warmup/{instanceID}", s.handleWarmupGet)

	// Progression.
	s.router.Post("/api/v1/progression/target", s.handleSuggestTarget)

	// Inventory editing (API key required) — the one surface where
	// validation errors reach the user.
	s.router.Route("/api/v1/inventory", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Get("/profiles", s.handleListProfiles)
		r.Post("/profiles", s.handleCreateProfile)
		r.Put("/association", s.handleUpsertAssociation)
		r.Get("/plates/{profileID}", s.handleListPlates)
		r.Post("/plates/{profileID}", s.handleUpsertPlate)
		r.Delete("/plates/{profileID}", s.handleDeletePlate)
		r.Get("/dumbbells/{profileID}", s.handleListDumbbells)
		r.Post("/dumbbells/{profileID}", s.handleUpsertDumbbell)
		r.Delete("/dumbbells/{profileID}", s.handleDeleteDumbbell)
		r.Get("/stacks/{profileID}", s.handleListStackSteps)
		r.Post("/stacks/{profileID}", s.handleUpsertStackStep)
		r.Delete("/stacks/{profileID}", s.handleDeleteStackStep)
		r.Put("/bars", s.handleSetBarWeight)
	})
}

// MountMCP attaches the MCP transport handler (streamable HTTP) at /mcp.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
	s.router.Handle("/mcp/*", h)
}
