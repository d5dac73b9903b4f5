package mcp

import (
	"context"
	"fmt"

	"github.com/claude/liftplan/internal/equipment"
	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/progression"
	"github.com/claude/liftplan/internal/storage"
	"github.com/claude/liftplan/internal/units"
	"github.com/claude/liftplan/internal/warmup"
	"github.com/google/uuid"
)

// Local implements Engine against the in-process components, for MCP
// served from the main binary.
type Local struct {
	Service     *equipment.Service
	Planner     *warmup.Planner
	Plans       *warmup.PlanStore
	Progression *progression.Engine
	DB          *storage.DB
}

// Compile-time check: *Local satisfies Engine.
var _ Engine = (*Local)(nil)

func (l *Local) ResolveWeight(ctx context.Context, targetWeight float64, unit units.Unit, exerciseID *uuid.UUID, barType string, lt equipment.LoadType, userID int64) (equipment.Resolution, error) {
	return l.Service.ResolveWeightForExercise(ctx, targetWeight, unit, exerciseID, barType, lt, userID), nil
}

func (l *Local) AvailableWeights(ctx context.Context, lt equipment.LoadType, exerciseID *uuid.UUID, barType string, userID int64, maxWeight float64, unit units.Unit) ([]float64, error) {
	return l.Service.AvailableWeights(ctx, lt, exerciseID, barType, userID, maxWeight, unit), nil
}

func (l *Local) GenerateWarmup(ctx context.Context, userID int64, instanceID string, topWeightKg float64) (*warmup.Plan, error) {
	existing, err := l.Plans.GetPlan(userID, instanceID)
	if err != nil {
		return nil, fmt.Errorf("loading warmup plan: %w", err)
	}

	var plan *warmup.Plan
	if existing == nil {
		plan = l.Planner.Generate(topWeightKg)
	} else {
		plan = l.Planner.Rebase(existing, topWeightKg)
	}

	if err := l.Plans.SavePlan(userID, instanceID, plan); err != nil {
		return nil, fmt.Errorf("saving warmup plan: %w", err)
	}
	return plan, nil
}

func (l *Local) RecordWarmupFeedback(ctx context.Context, userID int64, instanceID string, fb warmup.Feedback) (*warmup.Plan, error) {
	plan, err := l.Plans.GetPlan(userID, instanceID)
	if err != nil {
		return nil, fmt.Errorf("loading warmup plan: %w", err)
	}
	if plan == nil {
		return nil, fmt.Errorf("no warmup plan for instance %q", instanceID)
	}

	revised := l.Planner.ApplyFeedback(plan, fb)
	if err := l.Plans.SavePlan(userID, instanceID, revised); err != nil {
		return nil, fmt.Errorf("saving warmup plan: %w", err)
	}
	if err := l.Plans.SaveFeedback(userID, instanceID, fb); err != nil {
		return nil, fmt.Errorf("saving feedback: %w", err)
	}
	return revised, nil
}

func (l *Local) SuggestTarget(ctx context.Context, in progression.Input) (progression.Target, error) {
	return l.Progression.SuggestTarget(in), nil
}

func (l *Local) ListProfiles(ctx context.Context, kind string) ([]models.EquipmentProfile, error) {
	return l.DB.ListProfiles(ctx, kind)
}
