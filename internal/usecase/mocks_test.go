package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/domain/repository"
)

type MockSpotRepository struct {
	mock.Mock
}

func (m *MockSpotRepository) Find(ctx context.Context, q domain.SpotQuery) ([]*domain.Spot, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Spot), args.Error(1)
}

func (m *MockSpotRepository) Count(ctx context.Context, q domain.SpotQuery) (int, error) {
	args := m.Called(ctx, q)
	return args.Int(0), args.Error(1)
}

func (m *MockSpotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Spot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Spot), args.Error(1)
}

func (m *MockSpotRepository) Create(ctx context.Context, s domain.NewSpot) (*domain.Spot, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Spot), args.Error(1)
}

func (m *MockSpotRepository) Update(ctx context.Context, id uuid.UUID, u domain.SpotUpdate) (*domain.Spot, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Spot), args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, r *domain.SpotReview) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) Exists(ctx context.Context, spotID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, spotID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SpotReview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpotReview), args.Error(1)
}

func (m *MockReviewRepository) ListBySpot(ctx context.Context, spotID uuid.UUID, mode *domain.TransportMode, page domain.Page) ([]*domain.SpotReview, int, error) {
	args := m.Called(ctx, spotID, mode, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.SpotReview), args.Int(1), args.Error(2)
}

func (m *MockReviewRepository) AddHelpfulVote(ctx context.Context, reviewID, voterID uuid.UUID) (*domain.HelpfulVoteResult, error) {
	args := m.Called(ctx, reviewID, voterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HelpfulVoteResult), args.Error(1)
}

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) Stats(ctx context.Context, spotID uuid.UUID, mode *domain.TransportMode) (domain.ReviewStats, error) {
	args := m.Called(ctx, spotID, mode)
	return args.Get(0).(domain.ReviewStats), args.Error(1)
}

func (m *MockRatingRepository) RecomputeSpot(ctx context.Context, spotID uuid.UUID, modes domain.TransportModes, compute repository.RatingComputeFunc) (*domain.SpotRatingsUpdate, error) {
	args := m.Called(ctx, spotID, modes, compute)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpotRatingsUpdate), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, p *domain.UserProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, userID uuid.UUID, u domain.ProfileUpdate) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) IncrementCounters(ctx context.Context, userID uuid.UUID, d domain.CounterDelta) error {
	args := m.Called(ctx, userID, d)
	return args.Error(0)
}

func (m *MockProfileRepository) SetTrustScore(ctx context.Context, userID uuid.UUID, score int) error {
	args := m.Called(ctx, userID, score)
	return args.Error(0)
}

func (m *MockProfileRepository) AddVouch(ctx context.Context, userID, voucherID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, voucherID)
	return args.Bool(0), args.Error(1)
}

type MockBadgeRepository struct {
	mock.Mock
}

func (m *MockBadgeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Badge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Badge), args.Error(1)
}

func (m *MockBadgeRepository) Award(ctx context.Context, userID uuid.UUID, badges []*domain.Badge) ([]*domain.Badge, error) {
	args := m.Called(ctx, userID, badges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Badge), args.Error(1)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetPreferences(ctx context.Context, userID uuid.UUID) (*domain.Preferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Preferences), args.Error(1)
}

func (m *MockCacheRepository) PreferencesVersion(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) SetPreferences(ctx context.Context, userID uuid.UUID, prefs domain.Preferences, version int64, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, userID, prefs, version, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) InvalidatePreferences(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ClaimStale(ctx context.Context, stream, group, consumer string, minIdle time.Duration, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, minIdle, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}
