package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/spot-discovery/internal/domain"
)

// ProfileRepository определяет методы для работы с профилями пользователей
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)

	Create(ctx context.Context, p *domain.UserProfile) error

	// Update применяет частичное обновление и возвращает новый профиль
	Update(ctx context.Context, userID uuid.UUID, u domain.ProfileUpdate) (*domain.UserProfile, error)

	// IncrementCounters атомарно увеличивает счётчики активности
	IncrementCounters(ctx context.Context, userID uuid.UUID, d domain.CounterDelta) error

	SetTrustScore(ctx context.Context, userID uuid.UUID, score int) error

	// AddVouch записывает поручительство; false, если оно уже было
	AddVouch(ctx context.Context, userID, voucherID uuid.UUID) (bool, error)
}
