package equipment

import (
	"context"
	"log/slog"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/units"
	"github.com/google/uuid"
)

// InventorySource is the read contract the engine depends on for concrete
// equipment. *storage.DB satisfies it.
type InventorySource interface {
	FetchPlateItems(ctx context.Context, profileID uuid.UUID) ([]models.PlateItem, error)
	FetchDumbbells(ctx context.Context, profileID uuid.UUID) ([]models.DumbbellItem, error)
	FetchStackSteps(ctx context.Context, profileID uuid.UUID) ([]models.StackStep, error)
	FetchBarWeight(ctx context.Context, exerciseID *uuid.UUID, barType string) (float64, error)
}

// Service is the resolution engine's public surface: it combines the
// loading context, the user's inventory, and the type-specific resolver,
// converting units at this boundary. Like the resolver underneath, it
// never fails — every provider problem degrades to a usable result.
type Service struct {
	src      InventorySource
	contexts *ContextResolver
	resolver *Resolver
	log      *slog.Logger
}

// NewService wires the resolution service.
func NewService(src InventorySource, contexts *ContextResolver, resolver *Resolver, log *slog.Logger) *Service {
	return &Service{src: src, contexts: contexts, resolver: resolver, log: log}
}

// Contexts exposes the context resolver for cache invalidation by
// inventory-mutation handlers.
func (s *Service) Contexts() *ContextResolver {
	return s.contexts
}

// ResolveWeightForExercise snaps targetWeight (in targetUnit) to the
// closest weight loadable with the user's equipment, returned in the same
// unit. barType may be empty; it defaults to a standard barbell.
func (s *Service) ResolveWeightForExercise(ctx context.Context, targetWeight float64, targetUnit units.Unit, exerciseID *uuid.UUID, barType string, lt LoadType, userID int64) Resolution {
	lc := s.contexts.Resolve(ctx, userID)
	inv := s.loadInventory(ctx, lc, lt, exerciseID, barType)

	res := s.resolver.Resolve(units.ToKg(targetWeight, targetUnit), lt, inv)
	res.Weight = units.FromKg(res.Weight, targetUnit)
	res.MinIncrement = units.FromKg(res.MinIncrement, targetUnit)
	res.Unit = targetUnit
	return res
}

// AvailableWeights lists the loadable weights for the user's equipment up
// to maxWeight, ascending, in the requested unit.
func (s *Service) AvailableWeights(ctx context.Context, lt LoadType, exerciseID *uuid.UUID, barType string, userID int64, maxWeight float64, unit units.Unit) []float64 {
	lc := s.contexts.Resolve(ctx, userID)
	inv := s.loadInventory(ctx, lc, lt, exerciseID, barType)

	weightsKg := s.resolver.AvailableWeights(lt, inv, units.ToKg(maxWeight, unit))
	out := make([]float64, len(weightsKg))
	for i, w := range weightsKg {
		out[i] = units.FromKg(w, unit)
	}
	return out
}

// loadInventory assembles the kg-canonical inventory for one load type.
// Fetch failures are logged and leave that part of the inventory empty;
// the resolver's fallback handles the rest.
func (s *Service) loadInventory(ctx context.Context, lc LoadingContext, lt LoadType, exerciseID *uuid.UUID, barType string) Inventory {
	var inv Inventory

	switch lt {
	case DualLoad:
		if barType == "" {
			barType = "barbell"
		}
		barKg, err := s.src.FetchBarWeight(ctx, exerciseID, barType)
		if err != nil {
			s.log.Warn("bar weight lookup failed, using 20 kg", "bar_type", barType, "error", err)
			barKg = 20
		}
		inv.BarKg = barKg

		if lc.PlateProfileID == nil {
			return inv
		}
		plates, err := s.src.FetchPlateItems(ctx, *lc.PlateProfileID)
		if err != nil {
			s.log.Warn("plate lookup failed", "profile_id", lc.PlateProfileID, "error", err)
			return inv
		}
		for _, p := range plates {
			u, err := units.Parse(p.Unit)
			if err != nil {
				continue
			}
			count := 0 // unlimited
			if p.CountPerSide != nil {
				if *p.CountPerSide == 0 {
					// Explicitly none of this size.
					continue
				}
				count = *p.CountPerSide
			}
			inv.PlateSizesKg = append(inv.PlateSizesKg, units.ToKg(p.Weight, u))
			inv.CountsPerSide = append(inv.CountsPerSide, count)
		}

	case SingleLoad:
		if lc.DumbbellProfileID == nil {
			return inv
		}
		dumbbells, err := s.src.FetchDumbbells(ctx, *lc.DumbbellProfileID)
		if err != nil {
			s.log.Warn("dumbbell lookup failed", "profile_id", lc.DumbbellProfileID, "error", err)
			return inv
		}
		for _, d := range dumbbells {
			u, err := units.Parse(d.Unit)
			if err != nil {
				continue
			}
			inv.DumbbellsKg = append(inv.DumbbellsKg, units.ToKg(d.Weight, u))
		}

	case Stack:
		if lc.StackProfileID == nil {
			return inv
		}
		steps, err := s.src.FetchStackSteps(ctx, *lc.StackProfileID)
		if err != nil {
			s.log.Warn("stack lookup failed", "profile_id", lc.StackProfileID, "error", err)
			return inv
		}
		for _, st := range steps {
			u, err := units.Parse(st.Unit)
			if err != nil {
				continue
			}
			kg := units.ToKg(st.StepWeight, u)
			if st.IsAux {
				inv.AuxKg = append(inv.AuxKg, kg)
			} else {
				inv.StepsKg = append(inv.StepsKg, kg)
			}
		}
	}

	return inv
}
