// Package mcp exposes the resolution engine to AI assistants over the
// Model Context Protocol.
package mcp

import (
	"context"

	"github.com/claude/liftplan/internal/equipment"
	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/progression"
	"github.com/claude/liftplan/internal/units"
	"github.com/claude/liftplan/internal/warmup"
	"github.com/google/uuid"
)

// Engine abstracts the resolution core for MCP tools. Local (in-process)
// and HTTPClient (remote via REST API) both satisfy it.
type Engine interface {
	ResolveWeight(ctx context.Context, targetWeight float64, unit units.Unit, exerciseID *uuid.UUID, barType string, lt equipment.LoadType, userID int64) (equipment.Resolution, error)
	AvailableWeights(ctx context.Context, lt equipment.LoadType, exerciseID *uuid.UUID, barType string, userID int64, maxWeight float64, unit units.Unit) ([]float64, error)
	GenerateWarmup(ctx context.Context, userID int64, instanceID string, topWeightKg float64) (*warmup.Plan, error)
	RecordWarmupFeedback(ctx context.Context, userID int64, instanceID string, fb warmup.Feedback) (*warmup.Plan, error)
	SuggestTarget(ctx context.Context, in progression.Input) (progression.Target, error)
	ListProfiles(ctx context.Context, kind string) ([]models.EquipmentProfile, error)
}

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
