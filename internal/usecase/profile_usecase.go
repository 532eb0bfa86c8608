package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/domain/repository"
	"github.com/spot-discovery/internal/pkg/errors"
	"github.com/spot-discovery/internal/pkg/validator"
	"github.com/spot-discovery/internal/usecase/dto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	badgeRepo   repository.BadgeRepository
	resolver    *PreferenceResolver
	events      *ProfileEvents
	logger      *zap.Logger
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	badgeRepo repository.BadgeRepository,
	resolver *PreferenceResolver,
	events *ProfileEvents,
	logger *zap.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		badgeRepo:   badgeRepo,
		resolver:    resolver,
		events:      events,
		logger:      logger,
	}
}

// GetProfile loads the profile and its badges concurrently.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	var (
		profile *domain.UserProfile
		badges  []*domain.Badge
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = uc.profileRepo.GetByUserID(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		badges, err = uc.badgeRepo.ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if badges == nil {
		badges = []*domain.Badge{}
	}
	return &dto.ProfileResponse{UserProfile: profile, Badges: badges}, nil
}

func (uc *ProfileUseCase) CreateProfile(ctx context.Context, userID uuid.UUID, req dto.CreateProfileRequest) (*domain.UserProfile, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	modes := domain.TransportModesFromStrings(req.TravelModes).Normalize()
	if len(modes) == 0 {
		return nil, errors.ErrEmptyTravelModes
	}

	// Default primary mode is the first one the user listed.
	primary := domain.TransportMode(req.TravelModes[0])
	if req.PrimaryMode != "" {
		primary = domain.TransportMode(req.PrimaryMode)
	}
	if !modes.Contains(primary) {
		return nil, errors.ErrPrimaryModeInvalid
	}

	safety := domain.SafetyHigh
	if req.SafetyPriority != "" {
		safety = domain.SafetyPriority(req.SafetyPriority)
	}

	profile := &domain.UserProfile{
		UserID:           userID,
		DisplayName:      req.DisplayName,
		Username:         req.Username,
		TravelModes:      modes,
		PrimaryMode:      primary,
		ShowAllSpots:     req.ShowAllSpots,
		SafetyPriority:   safety,
		CountriesVisited: req.CountriesVisited,
		Languages:        req.Languages,
	}
	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	uc.logger.Info("Profile created", zap.String("user_id", userID.String()))

	// A default may have been cached while the profile did not exist.
	uc.resolver.Invalidate(ctx, userID)
	uc.events.Publish(ctx, userID, domain.ReasonProfileCreated)
	return profile, nil
}

// UpdateProfile applies a partial update. The resulting primary mode must be
// one of the resulting travel modes.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*domain.UserProfile, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	u := req.ToUpdate()
	if u.IsEmpty() {
		return nil, errors.ErrValidation.WithMessage("No fields to update")
	}

	if u.TravelModes != nil {
		if len(*u.TravelModes) == 0 {
			return nil, errors.ErrEmptyTravelModes
		}
		if bad := u.TravelModes.Invalid(); len(bad) > 0 {
			return nil, errors.ErrInvalidMode.WithDetails(map[string]interface{}{"travel_modes": bad})
		}
	}
	if u.PrimaryMode != nil && !u.PrimaryMode.Valid() {
		return nil, errors.ErrInvalidMode.WithDetails(map[string]interface{}{"primary_mode": string(*u.PrimaryMode)})
	}
	if u.SafetyPriority != nil && !u.SafetyPriority.Valid() {
		return nil, errors.ErrInvalidSafety
	}

	current, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := u.Apply(*current)
	if !merged.TravelModes.Contains(merged.PrimaryMode) {
		return nil, errors.ErrPrimaryModeInvalid.WithDetails(map[string]interface{}{
			"primary_mode": string(merged.PrimaryMode),
			"travel_modes": merged.TravelModes.Strings(),
		})
	}

	updated, err := uc.profileRepo.Update(ctx, userID, u)
	if err != nil {
		return nil, err
	}

	uc.resolver.Invalidate(ctx, userID)
	uc.events.Publish(ctx, userID, domain.ReasonProfileUpdated)
	return updated, nil
}

// Vouch records voucherID's endorsement of userID and credits the user's
// community_vouches. Each voucher counts once per user.
func (uc *ProfileUseCase) Vouch(ctx context.Context, userID, voucherID uuid.UUID) (*domain.Vouch, error) {
	if userID == voucherID {
		return nil, errors.ErrSelfVouch
	}
	if _, err := uc.profileRepo.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}

	recorded, err := uc.profileRepo.AddVouch(ctx, userID, voucherID)
	if err != nil {
		return nil, err
	}
	if !recorded {
		return nil, errors.ErrAlreadyVouched
	}

	if err := uc.profileRepo.IncrementCounters(ctx, userID, domain.CounterDelta{CommunityVouches: 1}); err != nil {
		uc.logger.Warn("Failed to credit vouch",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	} else {
		uc.events.Publish(ctx, userID, domain.ReasonCommunityVouch)
	}

	return &domain.Vouch{UserID: userID, VoucherID: voucherID}, nil
}
