package usecase

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/domain/repository"
	"go.uber.org/zap"
)

const MaxTrustScore = 100

// ComputeTrustScore sums the independently capped components, caps the total
// and rounds to the nearest integer.
func ComputeTrustScore(p *domain.UserProfile, now time.Time) int {
	var score float64

	if p.EmailVerified {
		score += 15
	}
	if p.PhoneVerified {
		score += 15
	}
	if p.SocialConnected {
		score += 10
	}

	score += math.Min(float64(p.HelpfulReviews)*2, 20)
	score += math.Min(float64(p.SpotsAdded)*3, 15)
	score += math.Min(p.ReviewerRating*2, 10)

	score += math.Min(float64(p.MembershipDays(now))/30, 10)

	score += math.Min(float64(p.CommunityVouches)*2, 10)

	score = math.Max(0, math.Min(score, MaxTrustScore))
	return int(math.Round(score))
}

type TrustUseCase struct {
	profileRepo repository.ProfileRepository
	badgeRepo   repository.BadgeRepository
	logger      *zap.Logger
	now         func() time.Time
}

func NewTrustUseCase(
	profileRepo repository.ProfileRepository,
	badgeRepo repository.BadgeRepository,
	logger *zap.Logger,
) *TrustUseCase {
	return &TrustUseCase{
		profileRepo: profileRepo,
		badgeRepo:   badgeRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock replaces the time source used for membership age.
func (uc *TrustUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// CalculateTrustScore recomputes the user's score and stores it when it moved.
func (uc *TrustUseCase) CalculateTrustScore(ctx context.Context, userID uuid.UUID) (int, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	score := ComputeTrustScore(profile, uc.now())
	if score != profile.TrustScore {
		if err := uc.profileRepo.SetTrustScore(ctx, userID, score); err != nil {
			uc.logger.Warn("Failed to persist trust score",
				zap.String("user_id", userID.String()),
				zap.Int("score", score),
				zap.Error(err))
		}
	}

	return score, nil
}

// EvaluateBadges awards every crossed threshold the user does not hold yet and
// returns only the newly awarded badges. Badges are never revoked.
func (uc *TrustUseCase) EvaluateBadges(ctx context.Context, userID uuid.UUID) ([]*domain.Badge, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	held, err := uc.badgeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(held))
	for _, b := range held {
		owned[b.BadgeKey] = true
	}

	var candidates []*domain.Badge
	for _, b := range EligibleBadges(profile, uc.now()) {
		if !owned[b.BadgeKey] {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return []*domain.Badge{}, nil
	}

	awarded, err := uc.badgeRepo.Award(ctx, userID, candidates)
	if err != nil {
		return nil, err
	}

	for _, b := range awarded {
		uc.logger.Info("Badge awarded",
			zap.String("user_id", userID.String()),
			zap.String("badge_key", b.BadgeKey))
	}
	return awarded, nil
}

func (uc *TrustUseCase) ListBadges(ctx context.Context, userID uuid.UUID) ([]*domain.Badge, error) {
	if _, err := uc.profileRepo.GetByUserID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.badgeRepo.ListByUser(ctx, userID)
}
