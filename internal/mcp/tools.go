package mcp

import (
	"context"

	"github.com/claude/liftplan/internal/equipment"
	"github.com/claude/liftplan/internal/progression"
	"github.com/claude/liftplan/internal/units"
	"github.com/claude/liftplan/internal/warmup"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolResolveWeight = mcp.NewTool("resolve_weight",
	mcp.WithDescription("Snap a target training weight to the closest weight physically loadable with the user's equipment. Returns the resolved weight, whether it matches the request, a per-side plate breakdown for barbells, and the minimum increment."),
	mcp.WithNumber("target_weight", mcp.Required(), mcp.Description("Desired training weight")),
	mcp.WithString("unit", mcp.Description("Weight unit, kg or lb. Defaults to kg."), mcp.Enum("kg", "lb")),
	mcp.WithString("load_type", mcp.Required(), mcp.Description("Loading mechanism"), mcp.Enum("dual_load", "single_load", "stack")),
	mcp.WithString("exercise_id", mcp.Description("Exercise UUID, used for bar weight overrides")),
	mcp.WithString("bar_type", mcp.Description("Bar type for dual_load: barbell, ez, or fixed. Defaults to barbell."), mcp.Enum("barbell", "ez", "fixed")),
)

var toolAvailableWeights = mcp.NewTool("get_available_weights",
	mcp.WithDescription("List every weight loadable with the user's equipment for a load type, ascending, capped at max_weight."),
	mcp.WithString("load_type", mcp.Required(), mcp.Description("Loading mechanism"), mcp.Enum("dual_load", "single_load", "stack")),
	mcp.WithNumber("max_weight", mcp.Description("Upper cap. Defaults to 300.")),
	mcp.WithString("unit", mcp.Description("Weight unit, kg or lb. Defaults to kg."), mcp.Enum("kg", "lb")),
)

var toolWarmupPlan = mcp.NewTool("get_warmup_plan",
	mcp.WithDescription("Get (or generate) the warm-up ramp for an exercise instance, anchored to the given top working weight. Steps are percentages of the top weight with reps and rest."),
	mcp.WithString("instance_id", mcp.Required(), mcp.Description("Exercise instance identifier")),
	mcp.WithNumber("top_weight_kg", mcp.Required(), mcp.Description("Top working weight in kilograms")),
)

var toolWarmupFeedback = mcp.NewTool("record_warmup_feedback",
	mcp.WithDescription("Rate the completed warm-up for an exercise instance. The ramp is adjusted for next time: too_much shifts percentages down, not_enough shifts up, excellent keeps it."),
	mcp.WithString("instance_id", mcp.Required(), mcp.Description("Exercise instance identifier")),
	mcp.WithString("feedback", mcp.Required(), mcp.Description("Rating"), mcp.Enum("not_enough", "excellent", "too_much")),
)

var toolSuggestTarget = mcp.NewTool("suggest_next_target",
	mcp.WithDescription("Suggest the next session's target weight and reps from the previous working set using linear progressive overload. Feel is derived from notes (priority) or RPE."),
	mcp.WithNumber("last_weight_kg", mcp.Description("Previous working weight in kilograms")),
	mcp.WithNumber("last_reps", mcp.Description("Reps completed in the previous working set")),
	mcp.WithString("notes", mcp.Description("Free-text session notes, parsed for effort sentiment")),
	mcp.WithNumber("rpe", mcp.Description("Rate of Perceived Exertion 1-10")),
	mcp.WithNumber("target_reps", mcp.Description("Programmed rep target. Defaults to 8.")),
	mcp.WithNumber("step_kg", mcp.Description("Progression increment in kilograms. Defaults to 2.5.")),
)

var toolListProfiles = mcp.NewTool("list_equipment_profiles",
	mcp.WithDescription("List equipment profiles (plate sets, dumbbell racks, machine stacks, bars)."),
	mcp.WithString("kind", mcp.Description("Filter by profile kind"), mcp.Enum("plate", "dumbbell", "stack", "bar")),
)

// --- Tool handlers ---

func (h *handlers) resolveWeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := req.RequireFloat("target_weight")
	if err != nil {
		return mcp.NewToolResultError("target_weight parameter is required"), nil
	}
	ltStr, err := req.RequireString("load_type")
	if err != nil {
		return mcp.NewToolResultError("load_type parameter is required"), nil
	}
	lt, err := equipment.ParseLoadType(ltStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	unit, err := units.Parse(req.GetString("unit", "kg"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var exerciseID *uuid.UUID
	if e := req.GetString("exercise_id", ""); e != "" {
		id, err := uuid.Parse(e)
		if err != nil {
			return mcp.NewToolResultError("invalid exercise_id"), nil
		}
		exerciseID = &id
	}

	res, err := h.engine.ResolveWeight(ctx, target, unit, exerciseID, req.GetString("bar_type", ""), lt, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp resolve_weight", "error", err)
		return mcp.NewToolResultError("resolution failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(res)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) availableWeights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ltStr, err := req.RequireString("load_type")
	if err != nil {
		return mcp.NewToolResultError("load_type parameter is required"), nil
	}
	lt, err := equipment.ParseLoadType(ltStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	unit, err := units.Parse(req.GetString("unit", "kg"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	weights, err := h.engine.AvailableWeights(ctx, lt, nil, "", UserIDFromContext(ctx), req.GetFloat("max_weight", 300), unit)
	if err != nil {
		h.log.Error("mcp get_available_weights", "error", err)
		return mcp.NewToolResultError("listing failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"unit": unit, "weights": weights})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) warmupPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instanceID, err := req.RequireString("instance_id")
	if err != nil {
		return mcp.NewToolResultError("instance_id parameter is required"), nil
	}
	topKg, err := req.RequireFloat("top_weight_kg")
	if err != nil || topKg <= 0 {
		return mcp.NewToolResultError("positive top_weight_kg parameter is required"), nil
	}

	plan, err := h.engine.GenerateWarmup(ctx, UserIDFromContext(ctx), instanceID, topKg)
	if err != nil {
		h.log.Error("mcp get_warmup_plan", "error", err)
		return mcp.NewToolResultError("warmup generation failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) warmupFeedback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instanceID, err := req.RequireString("instance_id")
	if err != nil {
		return mcp.NewToolResultError("instance_id parameter is required"), nil
	}
	fbStr, err := req.RequireString("feedback")
	if err != nil {
		return mcp.NewToolResultError("feedback parameter is required"), nil
	}
	fb, err := warmup.ParseFeedback(fbStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	plan, err := h.engine.RecordWarmupFeedback(ctx, UserIDFromContext(ctx), instanceID, fb)
	if err != nil {
		h.log.Error("mcp record_warmup_feedback", "error", err)
		return mcp.NewToolResultError("feedback failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(plan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) suggestTarget(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := progression.Input{
		LastWeightKg:       req.GetFloat("last_weight_kg", 0),
		LastReps:           req.GetInt("last_reps", 0),
		Notes:              req.GetString("notes", ""),
		RPE:                req.GetFloat("rpe", 0),
		TemplateTargetReps: req.GetInt("target_reps", 0),
		StepKg:             req.GetFloat("step_kg", 0),
	}

	target, err := h.engine.SuggestTarget(ctx, in)
	if err != nil {
		h.log.Error("mcp suggest_next_target", "error", err)
		return mcp.NewToolResultError("suggestion failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(target)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listProfiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profiles, err := h.engine.ListProfiles(ctx, req.GetString("kind", ""))
	if err != nil {
		h.log.Error("mcp list_equipment_profiles", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(profiles)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
