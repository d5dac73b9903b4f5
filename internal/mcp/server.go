package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(engine Engine, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftPlan", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftPlan equipment load resolution server. Snap target weights to what is physically loadable with the user's barbell plates, dumbbells, or machine stacks; build and adjust warm-up ramps; suggest next-session targets. All weights default to kilograms unless a unit is given."),
	)

	h := &handlers{engine: engine, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolResolveWeight, Handler: h.resolveWeight},
		server.ServerTool{Tool: toolAvailableWeights, Handler: h.availableWeights},
		server.ServerTool{Tool: toolWarmupPlan, Handler: h.warmupPlan},
		server.ServerTool{Tool: toolWarmupFeedback, Handler: h.warmupFeedback},
		server.ServerTool{Tool: toolSuggestTarget, Handler: h.suggestTarget},
		server.ServerTool{Tool: toolListProfiles, Handler: h.listProfiles},
	)

	s.AddResources(
		server.ServerResource{Resource: resEquipmentCatalog, Handler: h.equipmentCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	engine Engine
	log    *slog.Logger
}

// --- Resource definitions ---

var resEquipmentCatalog = mcp.NewResource(
	"liftplan://equipment_catalog",
	"Equipment Catalog",
	mcp.WithResourceDescription("All configured equipment profiles: plate sets, dumbbell racks, machine stacks, and bars"),
	mcp.WithMIMEType("application/json"),
)
