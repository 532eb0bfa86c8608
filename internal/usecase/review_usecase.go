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
)

const (
	DefaultReviewLimit = 20
	MaxReviewLimit     = 100
)

type ReviewUseCase struct {
	spotRepo    repository.SpotRepository
	reviewRepo  repository.ReviewRepository
	ratingRepo  repository.RatingRepository
	profileRepo repository.ProfileRepository
	events      *ProfileEvents
	logger      *zap.Logger
}

func NewReviewUseCase(
	spotRepo repository.SpotRepository,
	reviewRepo repository.ReviewRepository,
	ratingRepo repository.RatingRepository,
	profileRepo repository.ProfileRepository,
	events *ProfileEvents,
	logger *zap.Logger,
) *ReviewUseCase {
	return &ReviewUseCase{
		spotRepo:    spotRepo,
		reviewRepo:  reviewRepo,
		ratingRepo:  ratingRepo,
		profileRepo: profileRepo,
		events:      events,
		logger:      logger,
	}
}

// NewReviewFromRequest validates the request, including the mode-specific
// optional fields, and builds the review to persist.
func NewReviewFromRequest(spotID, userID uuid.UUID, req dto.SubmitReviewRequest) (*domain.SpotReview, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	mode := domain.TransportMode(req.TransportMode)
	if !mode.Valid() {
		return nil, errors.ErrInvalidMode
	}

	irrelevant := map[string]interface{}{}
	if req.WaitTimeMinutes != nil && !mode.TracksWaitTime() {
		irrelevant["wait_time_minutes"] = "not applicable to " + req.TransportMode
	}
	if req.LegalStatus != nil && !mode.TracksLegalStatus() {
		irrelevant["legal_status"] = "not applicable to " + req.TransportMode
	}
	if req.FacilityRating != nil && !mode.TracksFacilities() {
		irrelevant["facility_rating"] = "not applicable to " + req.TransportMode
	}
	if req.AccessibilityRating != nil && !mode.TracksFacilities() {
		irrelevant["accessibility_rating"] = "not applicable to " + req.TransportMode
	}
	if len(irrelevant) > 0 {
		return nil, errors.ErrValidation.
			WithMessage("Review contains fields that do not apply to its transport mode").
			WithDetails(irrelevant)
	}

	review := &domain.SpotReview{
		SpotID:              spotID,
		UserID:              userID,
		TransportMode:       mode,
		SafetyRating:        req.SafetyRating,
		EffectivenessRating: req.EffectivenessRating,
		OverallRating:       req.OverallRating,
		WaitTimeMinutes:     req.WaitTimeMinutes,
		FacilityRating:      req.FacilityRating,
		AccessibilityRating: req.AccessibilityRating,
		Comment:             req.Comment,
	}
	if req.LegalStatus != nil {
		status := domain.LegalStatus(*req.LegalStatus)
		review.LegalStatus = &status
	}
	return review, nil
}

// SubmitReview stores a review and refreshes the spot's aggregates. When the
// refresh fails the review stays stored and is returned together with an
// AGGREGATE_STALE error.
func (uc *ReviewUseCase) SubmitReview(
	ctx context.Context,
	spotID, userID uuid.UUID,
	req dto.SubmitReviewRequest,
) (*domain.SpotReview, error) {
	review, err := NewReviewFromRequest(spotID, userID, req)
	if err != nil {
		return nil, err
	}

	if _, err := uc.spotRepo.GetByID(ctx, spotID); err != nil {
		return nil, err
	}

	// Fast path only; the unique index on (user_id, spot_id) is the guard.
	exists, err := uc.reviewRepo.Exists(ctx, spotID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.ErrDuplicateReview
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	uc.logger.Info("Review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("spot_id", spotID.String()),
		zap.String("mode", string(review.TransportMode)))

	var stale error
	if _, err := uc.ratingRepo.RecomputeSpot(ctx, spotID, domain.TransportModes{review.TransportMode}, ComputeSpotRatings); err != nil {
		uc.logger.Error("Failed to refresh spot ratings after review",
			zap.String("spot_id", spotID.String()),
			zap.String("review_id", review.ID.String()),
			zap.Error(err))
		stale = errors.ErrAggregateStale.Wrap(err)
	}

	if err := uc.profileRepo.IncrementCounters(ctx, userID, domain.CounterDelta{TotalReviews: 1}); err != nil {
		uc.logger.Warn("Failed to increment review counter",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	} else {
		uc.events.Publish(ctx, userID, domain.ReasonReviewSubmitted)
	}

	if stale != nil {
		return review, stale
	}
	return review, nil
}

func (uc *ReviewUseCase) ListReviews(ctx context.Context, spotID uuid.UUID, req dto.ListReviewsRequest) (*dto.ReviewListResponse, error) {
	page := domain.Page{Limit: DefaultReviewLimit}
	if req.Limit != nil {
		if *req.Limit < 1 || *req.Limit > MaxReviewLimit {
			return nil, errors.ErrInvalidLimit
		}
		page.Limit = *req.Limit
	}
	if req.Offset != nil {
		if *req.Offset < 0 {
			return nil, errors.ErrInvalidOffset
		}
		page.Offset = *req.Offset
	}

	var mode *domain.TransportMode
	if req.TransportMode != nil {
		m := domain.TransportMode(*req.TransportMode)
		if !m.Valid() {
			return nil, errors.ErrInvalidMode
		}
		mode = &m
	}

	if _, err := uc.spotRepo.GetByID(ctx, spotID); err != nil {
		return nil, err
	}

	reviews, total, err := uc.reviewRepo.ListBySpot(ctx, spotID, mode, page)
	if err != nil {
		return nil, err
	}

	return &dto.ReviewListResponse{
		Reviews: reviews,
		Total:   total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	}, nil
}

// VoteHelpful records a helpful vote. The first helpful vote on a review
// counts towards its author's helpful_reviews.
func (uc *ReviewUseCase) VoteHelpful(ctx context.Context, reviewID, voterID uuid.UUID) (*domain.HelpfulVoteResult, error) {
	review, err := uc.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID == voterID {
		return nil, errors.ErrSelfVote
	}

	result, err := uc.reviewRepo.AddHelpfulVote(ctx, reviewID, voterID)
	if err != nil {
		return nil, err
	}
	if !result.Recorded {
		return nil, errors.ErrAlreadyVoted
	}

	if result.HelpfulVotes == 1 {
		if err := uc.profileRepo.IncrementCounters(ctx, result.AuthorID, domain.CounterDelta{HelpfulReviews: 1}); err != nil {
			uc.logger.Warn("Failed to credit helpful review",
				zap.String("user_id", result.AuthorID.String()),
				zap.Error(err))
		} else {
			uc.events.Publish(ctx, result.AuthorID, domain.ReasonReviewHelpful)
		}
	}

	return result, nil
}

// GetReviewStats is the aggregate (mean) query over a spot's reviews,
// optionally restricted to one mode.
func (uc *ReviewUseCase) GetReviewStats(ctx context.Context, spotID uuid.UUID, mode *domain.TransportMode) (*dto.ReviewStatsResponse, error) {
	if mode != nil && !mode.Valid() {
		return nil, errors.ErrInvalidMode
	}
	if _, err := uc.spotRepo.GetByID(ctx, spotID); err != nil {
		return nil, err
	}

	stats, err := uc.ratingRepo.Stats(ctx, spotID, mode)
	if err != nil {
		return nil, err
	}

	rating := BuildModeRating(stats)
	return &dto.ReviewStatsResponse{
		SpotID:        spotID,
		TransportMode: mode,
		ReviewCount:   stats.Count,
		OverallRating: meanRounded(stats.OverallSum, stats.Count),
		SafetyRating:  rating.Safety,
		Effectiveness: rating.Effectiveness,
		AvgWaitTime:   rating.AvgWaitTime,
		LegalStatus:   rating.LegalStatus,
		Facilities:    rating.Facilities,
		Accessibility: rating.Accessibility,
	}, nil
}

// RecomputeSpot rebuilds every aggregate of a spot, repairing a stale one.
func (uc *ReviewUseCase) RecomputeSpot(ctx context.Context, spotID uuid.UUID) (*domain.SpotRatingsUpdate, error) {
	update, err := uc.ratingRepo.RecomputeSpot(ctx, spotID, domain.AllTransportModes, ComputeSpotRatings)
	if err != nil {
		uc.logger.Error("Failed to recompute spot ratings", zap.String("spot_id", spotID.String()), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Spot ratings recomputed",
		zap.String("spot_id", spotID.String()),
		zap.Int("total_reviews", update.TotalReviews))
	return update, nil
}
