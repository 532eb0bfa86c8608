package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spot-discovery/internal/domain"
	apperrors "github.com/spot-discovery/internal/pkg/errors"
	"github.com/spot-discovery/internal/usecase"
	"github.com/spot-discovery/internal/usecase/dto"
)

type profileFixture struct {
	profiles *MockProfileRepository
	badges   *MockBadgeRepository
	cache    *MockCacheRepository
	stream   *MockStreamRepository
	uc       *usecase.ProfileUseCase
}

func newProfileFixture() *profileFixture {
	logger := zap.NewNop()
	f := &profileFixture{
		profiles: &MockProfileRepository{},
		badges:   &MockBadgeRepository{},
		cache:    &MockCacheRepository{},
		stream:   &MockStreamRepository{},
	}
	resolver := usecase.NewPreferenceResolver(f.profiles, f.cache, prefsTTL, logger)
	events := usecase.NewProfileEvents(f.stream, logger)
	f.uc = usecase.NewProfileUseCase(f.profiles, f.badges, resolver, events, logger)
	return f
}

func strPtr(s string) *string { return &s }

func TestProfileUseCase_GetProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	f := newProfileFixture()

	profile := &domain.UserProfile{UserID: userID, DisplayName: "Mara"}
	f.profiles.On("GetByUserID", mock.Anything, userID).Return(profile, nil)
	f.badges.On("ListByUser", mock.Anything, userID).Return(nil, nil)

	resp, err := f.uc.GetProfile(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, profile, resp.UserProfile)
	assert.NotNil(t, resp.Badges)
	assert.Empty(t, resp.Badges)
}

func TestProfileUseCase_CreateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults primary mode and safety", func(t *testing.T) {
		f := newProfileFixture()
		userID := uuid.New()

		f.profiles.On("Create", ctx, mock.MatchedBy(func(p *domain.UserProfile) bool {
			return p.UserID == userID &&
				p.PrimaryMode == domain.ModeVanLife &&
				p.SafetyPriority == domain.SafetyHigh &&
				len(p.TravelModes) == 2
		})).Return(nil)
		f.cache.On("InvalidatePreferences", ctx, userID).Return(nil)
		f.stream.On("PublishToStream", ctx, domain.StreamProfileChanged, mock.MatchedBy(func(e domain.ProfileChangedEvent) bool {
			return e.Reason == domain.ReasonProfileCreated
		})).Return(nil)

		p, err := f.uc.CreateProfile(ctx, userID, dto.CreateProfileRequest{
			TravelModes: []string{"van_life", "cycling"},
		})

		require.NoError(t, err)
		assert.Equal(t, domain.TransportModes{domain.ModeCycling, domain.ModeVanLife}, p.TravelModes)
		f.profiles.AssertExpectations(t)
		f.cache.AssertExpectations(t)
		f.stream.AssertExpectations(t)
	})

	t.Run("primary mode outside travel modes conflicts", func(t *testing.T) {
		f := newProfileFixture()

		_, err := f.uc.CreateProfile(ctx, uuid.New(), dto.CreateProfileRequest{
			TravelModes: []string{"walking"},
			PrimaryMode: "cycling",
		})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		f.profiles.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("empty travel modes rejected", func(t *testing.T) {
		f := newProfileFixture()

		_, err := f.uc.CreateProfile(ctx, uuid.New(), dto.CreateProfileRequest{})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestProfileUseCase_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	current := &domain.UserProfile{
		UserID:         userID,
		TravelModes:    domain.TransportModes{domain.ModeHitchhiking, domain.ModeCycling},
		PrimaryMode:    domain.ModeHitchhiking,
		SafetyPriority: domain.SafetyHigh,
	}

	t.Run("dropping the primary mode conflicts", func(t *testing.T) {
		f := newProfileFixture()
		f.profiles.On("GetByUserID", ctx, userID).Return(current, nil)

		modes := []string{"cycling"}
		_, err := f.uc.UpdateProfile(ctx, userID, dto.UpdateProfileRequest{TravelModes: &modes})

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		f.profiles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("switching primary with modes succeeds", func(t *testing.T) {
		f := newProfileFixture()
		f.profiles.On("GetByUserID", ctx, userID).Return(current, nil)

		updated := &domain.UserProfile{
			UserID:      userID,
			TravelModes: domain.TransportModes{domain.ModeCycling},
			PrimaryMode: domain.ModeCycling,
		}
		f.profiles.On("Update", ctx, userID, mock.MatchedBy(func(u domain.ProfileUpdate) bool {
			return u.PrimaryMode != nil && *u.PrimaryMode == domain.ModeCycling && u.TravelModes != nil
		})).Return(updated, nil)
		f.cache.On("InvalidatePreferences", ctx, userID).Return(nil)
		f.stream.On("PublishToStream", ctx, domain.StreamProfileChanged, mock.Anything).Return(nil)

		modes := []string{"cycling"}
		p, err := f.uc.UpdateProfile(ctx, userID, dto.UpdateProfileRequest{
			TravelModes: &modes,
			PrimaryMode: strPtr("cycling"),
		})

		require.NoError(t, err)
		assert.Equal(t, domain.ModeCycling, p.PrimaryMode)
		f.cache.AssertExpectations(t)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		f := newProfileFixture()

		_, err := f.uc.UpdateProfile(ctx, userID, dto.UpdateProfileRequest{})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("empty travel modes rejected", func(t *testing.T) {
		f := newProfileFixture()

		modes := []string{}
		_, err := f.uc.UpdateProfile(ctx, userID, dto.UpdateProfileRequest{TravelModes: &modes})

		require.ErrorIs(t, err, apperrors.ErrValidation)
		appErr, _ := apperrors.As(err)
		assert.Equal(t, apperrors.ErrEmptyTravelModes.Message, appErr.Message)
	})

	t.Run("trust inputs in the body are ignored", func(t *testing.T) {
		f := newProfileFixture()

		var req dto.UpdateProfileRequest
		body := `{"email_verified":true,"phone_verified":true,"social_connected":true,"reviewer_rating":5}`
		require.NoError(t, json.Unmarshal([]byte(body), &req))

		u := req.ToUpdate()
		assert.Nil(t, u.EmailVerified)
		assert.Nil(t, u.PhoneVerified)
		assert.Nil(t, u.SocialConnected)
		assert.Nil(t, u.ReviewerRating)

		_, err := f.uc.UpdateProfile(ctx, userID, req)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		f.profiles.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("trust inputs do not ride along with a display name", func(t *testing.T) {
		f := newProfileFixture()
		f.profiles.On("GetByUserID", ctx, userID).Return(current, nil)
		f.profiles.On("Update", ctx, userID, mock.MatchedBy(func(u domain.ProfileUpdate) bool {
			return u.DisplayName != nil && *u.DisplayName == "Mara" &&
				u.EmailVerified == nil && u.PhoneVerified == nil &&
				u.SocialConnected == nil && u.ReviewerRating == nil && u.TrustScore == nil
		})).Return(current, nil)
		f.cache.On("InvalidatePreferences", ctx, userID).Return(nil)
		f.stream.On("PublishToStream", ctx, domain.StreamProfileChanged, mock.Anything).Return(nil)

		var req dto.UpdateProfileRequest
		body := `{"display_name":"Mara","email_verified":true,"reviewer_rating":5}`
		require.NoError(t, json.Unmarshal([]byte(body), &req))

		_, err := f.uc.UpdateProfile(ctx, userID, req)

		require.NoError(t, err)
		f.profiles.AssertExpectations(t)
	})

	t.Run("unknown safety priority rejected", func(t *testing.T) {
		f := newProfileFixture()

		_, err := f.uc.UpdateProfile(ctx, userID, dto.UpdateProfileRequest{SafetyPriority: strPtr("reckless")})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestProfileUseCase_Vouch(t *testing.T) {
	ctx := context.Background()
	userID, voucherID := uuid.New(), uuid.New()
	profile := &domain.UserProfile{UserID: userID}

	t.Run("credits community vouches and publishes", func(t *testing.T) {
		f := newProfileFixture()
		f.profiles.On("GetByUserID", ctx, userID).Return(profile, nil)
		f.profiles.On("AddVouch", ctx, userID, voucherID).Return(true, nil)
		f.profiles.On("IncrementCounters", ctx, userID, domain.CounterDelta{CommunityVouches: 1}).Return(nil)
		f.stream.On("PublishToStream", ctx, domain.StreamProfileChanged, mock.MatchedBy(func(e domain.ProfileChangedEvent) bool {
			return e.UserID == userID && e.Reason == domain.ReasonCommunityVouch
		})).Return(nil)

		v, err := f.uc.Vouch(ctx, userID, voucherID)

		require.NoError(t, err)
		assert.Equal(t, &domain.Vouch{UserID: userID, VoucherID: voucherID}, v)
		f.profiles.AssertExpectations(t)
		f.stream.AssertExpectations(t)
	})

	t.Run("self vouch rejected", func(t *testing.T) {
		f := newProfileFixture()

		_, err := f.uc.Vouch(ctx, userID, userID)

		require.ErrorIs(t, err, apperrors.ErrValidation)
		appErr, _ := apperrors.As(err)
		assert.Equal(t, apperrors.ErrSelfVouch.Message, appErr.Message)
		f.profiles.AssertNotCalled(t, "AddVouch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newProfileFixture()
		f.profiles.On("GetByUserID", ctx, userID).Return(nil, apperrors.ErrProfileNotFound)

		_, err := f.uc.Vouch(ctx, userID, voucherID)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		f.profiles.AssertNotCalled(t, "AddVouch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("repeat vouch conflicts without crediting", func(t *testing.T) {
		f := newProfileFixture()
		f.profiles.On("GetByUserID", ctx, userID).Return(profile, nil)
		f.profiles.On("AddVouch", ctx, userID, voucherID).Return(false, nil)

		_, err := f.uc.Vouch(ctx, userID, voucherID)

		assert.ErrorIs(t, err, apperrors.ErrConflict)
		f.profiles.AssertNotCalled(t, "IncrementCounters", mock.Anything, mock.Anything, mock.Anything)
		f.stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("counter failure keeps the vouch", func(t *testing.T) {
		f := newProfileFixture()
		f.profiles.On("GetByUserID", ctx, userID).Return(profile, nil)
		f.profiles.On("AddVouch", ctx, userID, voucherID).Return(true, nil)
		f.profiles.On("IncrementCounters", ctx, userID, mock.Anything).Return(apperrors.ErrStoreUnavailable)

		_, err := f.uc.Vouch(ctx, userID, voucherID)

		require.NoError(t, err)
		f.stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
	})
}
