package equipment

import (
	"context"
	"log/slog"

	"github.com/claude/liftplan/internal/models"
	"github.com/claude/liftplan/internal/units"
)

// AssociationSource is the profile-association lookup the context resolver
// depends on. *storage.DB satisfies it.
type AssociationSource interface {
	GetProfileAssociation(ctx context.Context, userID int64) (*models.ProfileAssociation, error)
}

// ContextResolver determines which equipment profiles and unit apply to a
// user right now. Resolution fails open: any lookup problem yields the
// hard-coded default context, because this call gates whether a user can
// log a set at all.
type ContextResolver struct {
	src   AssociationSource
	cache *ContextCache
	log   *slog.Logger
}

// NewContextResolver wires the resolver to its association source and an
// explicitly constructed cache.
func NewContextResolver(src AssociationSource, cache *ContextCache, log *slog.Logger) *ContextResolver {
	return &ContextResolver{src: src, cache: cache, log: log}
}

// Resolve returns the loading context for userID. userID <= 0 means an
// anonymous caller and always yields the default context. This method
// never returns an error.
func (r *ContextResolver) Resolve(ctx context.Context, userID int64) LoadingContext {
	if userID <= 0 {
		return DefaultContext()
	}

	if cached, ok := r.cache.Get(userID); ok {
		return cached
	}

	assoc, err := r.src.GetProfileAssociation(ctx, userID)
	if err != nil {
		r.log.Warn("profile association lookup failed, using default context",
			"user_id", userID, "error", err)
		return DefaultContext()
	}

	lc := DefaultContext()
	if assoc != nil {
		if u, err := units.Parse(assoc.Unit); err == nil {
			lc.Unit = u
		}
		lc.BarProfileID = assoc.BarProfileID
		lc.PlateProfileID = assoc.PlateProfileID
		lc.DumbbellProfileID = assoc.DumbbellProfileID
		lc.StackProfileID = assoc.StackProfileID
		lc.GymID = assoc.GymID
		if assoc.MinIncrementKg != nil && *assoc.MinIncrementKg > 0 {
			lc.MinIncKg = *assoc.MinIncrementKg
		}
		if assoc.MinIncrementLb != nil && *assoc.MinIncrementLb > 0 {
			lc.MinIncLb = *assoc.MinIncrementLb
		}
	}

	r.cache.Put(userID, lc)
	return lc
}

// Invalidate drops the cached context for userID. Every mutation of
// equipment profiles or associations must call this.
func (r *ContextResolver) Invalidate(userID int64) {
	r.cache.Invalidate(userID)
}
