package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/spot-discovery/internal/domain"
)

// SpotRepository определяет методы для работы со спотами
type SpotRepository interface {
	// Find возвращает страницу активных спотов, удовлетворяющих запросу
	Find(ctx context.Context, q domain.SpotQuery) ([]*domain.Spot, error)

	// Count возвращает общее число активных спотов, удовлетворяющих запросу
	Count(ctx context.Context, q domain.SpotQuery) (int, error)

	// GetByID возвращает активный спот с рейтингами и автором
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Spot, error)

	Create(ctx context.Context, s domain.NewSpot) (*domain.Spot, error)

	// Update частично обновляет спот; nil-поля не трогаются
	Update(ctx context.Context, id uuid.UUID, u domain.SpotUpdate) (*domain.Spot, error)
}
