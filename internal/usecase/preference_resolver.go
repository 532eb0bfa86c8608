package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/domain/repository"
	"github.com/spot-discovery/internal/pkg/errors"
	"go.uber.org/zap"
)

// PreferenceResolver turns an optional viewer into the effective discovery
// preferences. It never fails: any lookup problem yields the permissive default.
type PreferenceResolver struct {
	profileRepo repository.ProfileRepository
	cacheRepo   repository.CacheRepository
	ttl         time.Duration
	logger      *zap.Logger
}

// NewPreferenceResolver creates a resolver. cacheRepo may be nil.
func NewPreferenceResolver(
	profileRepo repository.ProfileRepository,
	cacheRepo repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *PreferenceResolver {
	return &PreferenceResolver{
		profileRepo: profileRepo,
		cacheRepo:   cacheRepo,
		ttl:         ttl,
		logger:      logger,
	}
}

// PreferencesFromProfile applies the resolution rules to a loaded profile.
func PreferencesFromProfile(p *domain.UserProfile) domain.Preferences {
	if p == nil {
		return domain.DefaultPreferences()
	}

	safety := p.SafetyPriority
	if !safety.Valid() {
		safety = domain.SafetyHigh
	}

	if p.ShowAllSpots {
		return domain.Preferences{TransportModes: domain.TransportModes{}, SafetyPriority: safety}
	}

	modes := p.TravelModes.Normalize()
	return domain.Preferences{TransportModes: modes, SafetyPriority: safety}
}

// Resolve returns the viewer's preferences. A cache fill is tagged with the
// version read before the profile, so an invalidation that commits in between
// keeps the older preferences out of the cache.
func (r *PreferenceResolver) Resolve(ctx context.Context, userID *uuid.UUID) domain.Preferences {
	if userID == nil {
		return domain.DefaultPreferences()
	}

	cacheUp := r.cacheRepo != nil
	var version int64
	if cacheUp {
		cached, err := r.cacheRepo.GetPreferences(ctx, *userID)
		switch {
		case err != nil:
			r.logger.Warn("Preferences cache unavailable", zap.String("user_id", userID.String()), zap.Error(err))
			cacheUp = false
		case cached != nil:
			return *cached
		}
	}
	if cacheUp {
		v, err := r.cacheRepo.PreferencesVersion(ctx, *userID)
		if err != nil {
			r.logger.Warn("Failed to read preferences version", zap.String("user_id", userID.String()), zap.Error(err))
			cacheUp = false
		}
		version = v
	}

	profile, err := r.profileRepo.GetByUserID(ctx, *userID)
	if err != nil {
		if errors.KindOf(err) != errors.CodeNotFound {
			// Not cached: the next call retries the store.
			r.logger.Warn("Failed to load profile for preferences, using defaults",
				zap.String("user_id", userID.String()),
				zap.Error(err))
			return domain.DefaultPreferences()
		}
		profile = nil
	}

	prefs := PreferencesFromProfile(profile)

	if cacheUp {
		if _, err := r.cacheRepo.SetPreferences(ctx, *userID, prefs, version, r.ttl); err != nil {
			r.logger.Warn("Failed to cache preferences", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	return prefs
}

// Invalidate drops cached preferences after a profile change.
func (r *PreferenceResolver) Invalidate(ctx context.Context, userID uuid.UUID) {
	if r.cacheRepo == nil {
		return
	}
	if err := r.cacheRepo.InvalidatePreferences(ctx, userID); err != nil {
		r.logger.Warn("Failed to invalidate cached preferences",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
}
