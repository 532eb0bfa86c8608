package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/spot-discovery/internal/domain"
)

// ReviewRepository определяет методы для работы с отзывами
type ReviewRepository interface {
	// Create сохраняет отзыв; повтор (user_id, spot_id) возвращает Conflict
	Create(ctx context.Context, r *domain.SpotReview) error

	Exists(ctx context.Context, spotID, userID uuid.UUID) (bool, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.SpotReview, error)

	// ListBySpot возвращает отзывы спота и их общее количество
	ListBySpot(ctx context.Context, spotID uuid.UUID, mode *domain.TransportMode, page domain.Page) ([]*domain.SpotReview, int, error)

	// AddHelpfulVote учитывает голос один раз на пару (review, voter)
	AddHelpfulVote(ctx context.Context, reviewID, voterID uuid.UUID) (*domain.HelpfulVoteResult, error)
}
