package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/domain/repository"
	"github.com/spot-discovery/internal/pkg/errors"
	"github.com/spot-discovery/internal/pkg/utils"
	"github.com/spot-discovery/internal/pkg/validator"
	"github.com/spot-discovery/internal/usecase/dto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSpotLimit = 50
	MaxSpotLimit     = 100
	DefaultRadiusKm  = 10.0
)

type SpotUseCase struct {
	spotRepo    repository.SpotRepository
	profileRepo repository.ProfileRepository
	resolver    *PreferenceResolver
	events      *ProfileEvents
	logger      *zap.Logger
}

func NewSpotUseCase(
	spotRepo repository.SpotRepository,
	profileRepo repository.ProfileRepository,
	resolver *PreferenceResolver,
	events *ProfileEvents,
	logger *zap.Logger,
) *SpotUseCase {
	return &SpotUseCase{
		spotRepo:    spotRepo,
		profileRepo: profileRepo,
		resolver:    resolver,
		events:      events,
		logger:      logger,
	}
}

// BuildSpotQuery validates a filter and resolves its defaults. prefs, when
// non-nil, fills the mode and safety fields the caller left unset.
func BuildSpotQuery(f domain.SpotFilter, prefs *domain.Preferences) (domain.SpotQuery, error) {
	q := domain.SpotQuery{Limit: DefaultSpotLimit}

	if f.Limit != nil {
		if *f.Limit < 1 || *f.Limit > MaxSpotLimit {
			return q, errors.ErrInvalidLimit
		}
		q.Limit = *f.Limit
	}
	if f.Offset != nil {
		if *f.Offset < 0 {
			return q, errors.ErrInvalidOffset
		}
		q.Offset = *f.Offset
	}

	if (f.Latitude == nil) != (f.Longitude == nil) {
		return q, errors.ErrIncompletePoint
	}
	if f.Latitude != nil {
		if !utils.ValidateCoordinates(*f.Latitude, *f.Longitude) {
			return q, errors.ErrInvalidCoordinates
		}
		q.Near = &domain.Point{Lat: *f.Latitude, Lon: *f.Longitude}
		q.RadiusKm = DefaultRadiusKm
	}
	if f.RadiusKm != nil {
		if !utils.ValidateRadius(*f.RadiusKm) {
			return q, errors.ErrInvalidRadius
		}
		if q.Near != nil {
			q.RadiusKm = *f.RadiusKm
		}
	}

	if f.MinRating != nil {
		if v := *f.MinRating; !(v >= 0 && v <= 5) {
			return q, errors.ErrInvalidMinRating
		}
		q.MinRating = f.MinRating
	}

	if f.SpotType != nil {
		if !f.SpotType.Valid() {
			return q, errors.ErrInvalidSpotType.WithDetails(map[string]interface{}{"spot_type": string(*f.SpotType)})
		}
		q.SpotType = f.SpotType
	}

	if bad := f.TransportModes.Invalid(); len(bad) > 0 {
		return q, errors.ErrInvalidMode.WithDetails(map[string]interface{}{"transport_modes": bad})
	}
	q.TransportModes = f.TransportModes.Normalize()

	safety := f.SafetyPriority
	if safety != nil && !safety.Valid() {
		return q, errors.ErrInvalidSafety.WithDetails(map[string]interface{}{"safety_priority": string(*safety)})
	}

	if prefs != nil {
		if len(q.TransportModes) == 0 {
			q.TransportModes = prefs.TransportModes.Normalize()
		}
		if safety == nil {
			p := prefs.SafetyPriority
			safety = &p
		}
	}

	if safety != nil {
		if floor, ok := safety.MinSafetyRating(); ok {
			q.MinSafetyRating = &floor
		}
	}

	return q, nil
}

// FindSpots returns one page of active spots matching the filter together
// with the total number of matches.
func (uc *SpotUseCase) FindSpots(ctx context.Context, f domain.SpotFilter) (*domain.SpotPage, error) {
	var prefs *domain.Preferences
	if f.UsePreferences && f.ViewerID != nil && (len(f.TransportModes) == 0 || f.SafetyPriority == nil) {
		p := uc.resolver.Resolve(ctx, f.ViewerID)
		prefs = &p
	}

	q, err := BuildSpotQuery(f, prefs)
	if err != nil {
		return nil, err
	}

	var (
		spots []*domain.Spot
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		spots, err = uc.spotRepo.Find(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = uc.spotRepo.Count(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("Failed to find spots", zap.Error(err))
		return nil, err
	}

	if spots == nil {
		spots = []*domain.Spot{}
	}

	return &domain.SpotPage{
		Spots:  spots,
		Total:  total,
		Limit:  q.Limit,
		Offset: q.Offset,
	}, nil
}

func (uc *SpotUseCase) GetSpot(ctx context.Context, id uuid.UUID) (*domain.Spot, error) {
	return uc.spotRepo.GetByID(ctx, id)
}

// CreateSpot adds a spot on behalf of userID and credits the creator.
func (uc *SpotUseCase) CreateSpot(ctx context.Context, userID uuid.UUID, req dto.CreateSpotRequest) (*domain.Spot, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	spot, err := uc.spotRepo.Create(ctx, domain.NewSpot{
		Name:           req.Name,
		Description:    req.Description,
		Lat:            req.Lat,
		Lon:            req.Lon,
		SpotType:       domain.SpotType(req.SpotType),
		TransportModes: domain.TransportModesFromStrings(req.TransportModes),
		CreatedBy:      userID,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Spot created",
		zap.String("spot_id", spot.ID.String()),
		zap.String("user_id", userID.String()))

	uc.credit(ctx, userID, domain.CounterDelta{SpotsAdded: 1}, domain.ReasonSpotAdded)
	return spot, nil
}

func (uc *SpotUseCase) UpdateSpot(ctx context.Context, id uuid.UUID, req dto.UpdateSpotRequest) (*domain.Spot, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	u := domain.SpotUpdate{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.SpotType != nil {
		t := domain.SpotType(*req.SpotType)
		u.SpotType = &t
	}
	if req.TransportModes != nil {
		modes := domain.TransportModesFromStrings(*req.TransportModes)
		u.TransportModes = &modes
	}
	if u.IsEmpty() {
		return nil, errors.ErrValidation.WithMessage("No fields to update")
	}

	return uc.spotRepo.Update(ctx, id, u)
}

// VerifySpot marks an active spot as verified and credits the verifier the
// first time only.
func (uc *SpotUseCase) VerifySpot(ctx context.Context, id, verifierID uuid.UUID) (*domain.Spot, error) {
	spot, err := uc.spotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if spot.IsVerified {
		return spot, nil
	}

	verified := true
	spot, err = uc.spotRepo.Update(ctx, id, domain.SpotUpdate{IsVerified: &verified})
	if err != nil {
		return nil, err
	}

	uc.credit(ctx, verifierID, domain.CounterDelta{VerifiedSpots: 1}, domain.ReasonSpotVerified)
	return spot, nil
}

func (uc *SpotUseCase) credit(ctx context.Context, userID uuid.UUID, delta domain.CounterDelta, reason string) {
	if err := uc.profileRepo.IncrementCounters(ctx, userID, delta); err != nil {
		uc.logger.Warn(fmt.Sprintf("Failed to credit profile for %s", reason),
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return
	}
	uc.events.Publish(ctx, userID, reason)
}
