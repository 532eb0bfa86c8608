package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/usecase/dto"
)

// SpotService is implemented by usecase.SpotUseCase.
type SpotService interface {
	FindSpots(ctx context.Context, f domain.SpotFilter) (*domain.SpotPage, error)
	GetSpot(ctx context.Context, id uuid.UUID) (*domain.Spot, error)
	CreateSpot(ctx context.Context, userID uuid.UUID, req dto.CreateSpotRequest) (*domain.Spot, error)
	UpdateSpot(ctx context.Context, id uuid.UUID, req dto.UpdateSpotRequest) (*domain.Spot, error)
	VerifySpot(ctx context.Context, id, verifierID uuid.UUID) (*domain.Spot, error)
}

// ReviewService is implemented by usecase.ReviewUseCase.
type ReviewService interface {
	SubmitReview(ctx context.Context, spotID, userID uuid.UUID, req dto.SubmitReviewRequest) (*domain.SpotReview, error)
	ListReviews(ctx context.Context, spotID uuid.UUID, req dto.ListReviewsRequest) (*dto.ReviewListResponse, error)
	VoteHelpful(ctx context.Context, reviewID, voterID uuid.UUID) (*domain.HelpfulVoteResult, error)
	GetReviewStats(ctx context.Context, spotID uuid.UUID, mode *domain.TransportMode) (*dto.ReviewStatsResponse, error)
	RecomputeSpot(ctx context.Context, spotID uuid.UUID) (*domain.SpotRatingsUpdate, error)
}

// ProfileService is implemented by usecase.ProfileUseCase.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	CreateProfile(ctx context.Context, userID uuid.UUID, req dto.CreateProfileRequest) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*domain.UserProfile, error)
	Vouch(ctx context.Context, userID, voucherID uuid.UUID) (*domain.Vouch, error)
}

// TrustService is implemented by usecase.TrustUseCase.
type TrustService interface {
	CalculateTrustScore(ctx context.Context, userID uuid.UUID) (int, error)
	EvaluateBadges(ctx context.Context, userID uuid.UUID) ([]*domain.Badge, error)
	ListBadges(ctx context.Context, userID uuid.UUID) ([]*domain.Badge, error)
}
