package equipment

import (
	"log/slog"
	"math"
	"sort"

	"github.com/claude/liftplan/internal/units"
)

const (
	// fitEpsilon absorbs float error when checking whether a plate still
	// fits under the remaining per-side target.
	fitEpsilon = 1e-6
	// achievableTolKg is the residual below which a barbell resolution
	// counts as matching the request.
	achievableTolKg = 0.1
	// defaultPlateCount stands in for "unlimited" when a plate size has no
	// configured per-side count.
	defaultPlateCount = 999
	// gridCap bounds the barbell weight grid so an oversized cap from the
	// API cannot grow the response without bound.
	gridCap = 2000
)

// Resolver snaps target weights to loadable ones. All methods take and
// return kilograms; unit conversion happens at the API boundary.
type Resolver struct {
	// DumbbellStepKg and StackStepKg drive UI granularity when the
	// inventory itself does not imply an increment.
	DumbbellStepKg float64
	StackStepKg    float64
	Log            *slog.Logger
}

// NewResolver returns a Resolver with the standard increment defaults.
func NewResolver(log *slog.Logger) *Resolver {
	return &Resolver{DumbbellStepKg: 2.5, StackStepKg: 5, Log: log}
}

// Resolve snaps targetKg to the closest loadable weight for the given load
// type. It never fails: missing inventory degrades to increment-only
// rounding of the target, and any panic inside a type-specific algorithm
// (malformed inventory) is caught and degrades the same way. Logging a set
// must never be blocked by equipment configuration.
func (r *Resolver) Resolve(targetKg float64, lt LoadType, inv Inventory) (res Resolution) {
	minInc := r.MinIncrement(lt, inv)

	defer func() {
		if p := recover(); p != nil {
			if r.Log != nil {
				r.Log.Error("load resolution panicked, returning target unchanged",
					"load_type", lt, "target_kg", targetKg, "panic", p)
			}
			res = r.fallback(targetKg, minInc, ReasonResolutionFailure)
		}
	}()

	switch lt {
	case DualLoad:
		if len(inv.PlateSizesKg) == 0 {
			return r.fallback(targetKg, minInc, ReasonMissingInventory)
		}
		return resolveDualLoad(r, targetKg, inv, minInc)
	case SingleLoad:
		if len(inv.DumbbellsKg) == 0 {
			return r.fallback(targetKg, minInc, ReasonMissingInventory)
		}
		return resolveSingleLoad(r, targetKg, inv, minInc)
	case Stack:
		if len(inv.StepsKg) == 0 {
			return r.fallback(targetKg, minInc, ReasonMissingInventory)
		}
		return resolveStackLoad(r, targetKg, inv, minInc)
	default:
		return r.fallback(targetKg, minInc, ReasonResolutionFailure)
	}
}

// The type-specific algorithms are dispatched through function values so
// the recovery path in Resolve can be exercised directly.
var (
	resolveDualLoad   = (*Resolver).resolveBarbell
	resolveSingleLoad = (*Resolver).resolveDumbbell
	resolveStackLoad  = (*Resolver).resolveStack
)

// fallback returns the requested weight rounded to the minimum increment,
// flagged achievable so the user flow proceeds, with the degradation reason
// attached for callers that care.
func (r *Resolver) fallback(targetKg, minInc float64, reason string) Resolution {
	return Resolution{
		ResolvedWeight: ResolvedWeight{
			Weight:       units.RoundTo(targetKg, minInc),
			Unit:         units.Kg,
			Achievable:   true,
			MinIncrement: minInc,
		},
		Degraded: true,
		Reason:   reason,
	}
}

// resolveBarbell greedily loads plates per side, largest first. This is a
// coin-change style approximation: it is exact for complete plate sets
// (every size at least the sum of all smaller distinct sizes) and can
// under-load for gappy sets, which is an accepted trade-off.
func (r *Resolver) resolveBarbell(targetKg float64, inv Inventory, minInc float64) Resolution {
	perSideTarget := (targetKg - inv.BarKg) / 2

	if perSideTarget <= 0 {
		residual := targetKg - inv.BarKg
		return Resolution{ResolvedWeight: ResolvedWeight{
			Weight:       inv.BarKg,
			Unit:         units.Kg,
			Achievable:   math.Abs(residual) < achievableTolKg,
			Breakdown:    &Breakdown{BarKg: inv.BarKg, PerSideKg: []float64{}, ResidualKg: residual},
			MinIncrement: minInc,
		}}
	}

	type plate struct {
		size  float64
		count int
	}
	plates := make([]plate, 0, len(inv.PlateSizesKg))
	for i, size := range inv.PlateSizesKg {
		count := defaultPlateCount
		if i < len(inv.CountsPerSide) && inv.CountsPerSide[i] > 0 {
			count = inv.CountsPerSide[i]
		}
		plates = append(plates, plate{size: size, count: count})
	}
	sort.SliceStable(plates, func(i, j int) bool { return plates[i].size > plates[j].size })

	var perSide []float64
	acc := 0.0
	for _, p := range plates {
		if p.size <= 0 {
			continue
		}
		for p.count > 0 && acc+p.size <= perSideTarget+fitEpsilon {
			perSide = append(perSide, p.size)
			acc += p.size
			p.count--
		}
	}

	total := inv.BarKg + 2*acc
	residual := targetKg - total
	return Resolution{ResolvedWeight: ResolvedWeight{
		Weight:       total,
		Unit:         units.Kg,
		Achievable:   math.Abs(residual) < achievableTolKg,
		Breakdown:    &Breakdown{BarKg: inv.BarKg, PerSideKg: perSide, ResidualKg: residual},
		MinIncrement: minInc,
	}}
}

// resolveDumbbell picks the single closest available dumbbell. The first
// weight encountered wins ties, so identical inputs give identical outputs.
func (r *Resolver) resolveDumbbell(targetKg float64, inv Inventory, minInc float64) Resolution {
	best := inv.DumbbellsKg[0]
	bestDiff := math.Abs(best - targetKg)
	for _, w := range inv.DumbbellsKg[1:] {
		if d := math.Abs(w - targetKg); d < bestDiff {
			best, bestDiff = w, d
		}
	}
	return Resolution{ResolvedWeight: ResolvedWeight{
		Weight:       best,
		Unit:         units.Kg,
		Achievable:   true,
		MinIncrement: minInc,
	}}
}

// resolveStack scans every pin position, and every pin position plus one
// aux add-on weight, keeping the combination closest to the target. Both
// bare steps and step+aux combinations are physically loadable and so
// count as achievable.
func (r *Resolver) resolveStack(targetKg float64, inv Inventory, minInc float64) Resolution {
	best := inv.StepsKg[0]
	bestDiff := math.Abs(best - targetKg)
	consider := func(w float64) {
		if d := math.Abs(w - targetKg); d < bestDiff {
			best, bestDiff = w, d
		}
	}
	for _, step := range inv.StepsKg {
		consider(step)
		for _, aux := range inv.AuxKg {
			consider(step + aux)
		}
	}
	return Resolution{ResolvedWeight: ResolvedWeight{
		Weight:       best,
		Unit:         units.Kg,
		Achievable:   true,
		MinIncrement: minInc,
	}}
}

// MinIncrement is the smallest weight change the inventory supports, used
// by the UI for stepper granularity. Barbells move in 2x the smallest
// plate (plates load symmetrically); dumbbells and stacks use the
// configured defaults.
func (r *Resolver) MinIncrement(lt LoadType, inv Inventory) float64 {
	switch lt {
	case DualLoad:
		smallest := 0.0
		for _, size := range inv.PlateSizesKg {
			if size > 0 && (smallest == 0 || size < smallest) {
				smallest = size
			}
		}
		if smallest > 0 {
			return 2 * smallest
		}
		return 2.5
	case SingleLoad:
		if r.DumbbellStepKg > 0 {
			return r.DumbbellStepKg
		}
		return 2.5
	case Stack:
		if r.StackStepKg > 0 {
			return r.StackStepKg
		}
		return 5
	}
	return 2.5
}

// AvailableWeights lists every loadable weight up to maxKg, ascending. For
// discrete inventories this is the inventory itself (plus stack aux
// combinations); for barbells it is the increment grid from the bar up,
// which is what a weight picker needs.
func (r *Resolver) AvailableWeights(lt LoadType, inv Inventory, maxKg float64) []float64 {
	var out []float64
	switch lt {
	case DualLoad:
		inc := r.MinIncrement(lt, inv)
		for i := 0; i < gridCap; i++ {
			w := inv.BarKg + float64(i)*inc
			// Inverted comparison so a NaN cap terminates immediately.
			if !(w <= maxKg+fitEpsilon) {
				break
			}
			out = append(out, w)
		}
	case SingleLoad:
		for _, w := range inv.DumbbellsKg {
			if w <= maxKg+fitEpsilon {
				out = append(out, w)
			}
		}
	case Stack:
		seen := make(map[float64]struct{})
		add := func(w float64) {
			if w <= maxKg+fitEpsilon {
				if _, dup := seen[w]; !dup {
					seen[w] = struct{}{}
					out = append(out, w)
				}
			}
		}
		for _, step := range inv.StepsKg {
			add(step)
			for _, aux := range inv.AuxKg {
				add(step + aux)
			}
		}
	}
	sort.Float64s(out)
	return out
}
