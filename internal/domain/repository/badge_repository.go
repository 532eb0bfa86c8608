package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/spot-discovery/internal/domain"
)

type BadgeRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Badge, error)

	// Award inserts the badges that the user does not hold yet and returns
	// only the rows actually inserted.
	Award(ctx context.Context, userID uuid.UUID, badges []*domain.Badge) ([]*domain.Badge, error)
}
