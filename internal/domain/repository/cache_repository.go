package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spot-discovery/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; промах возвращает nil, nil
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetPreferences получает закешированные предпочтения пользователя
	GetPreferences(ctx context.Context, userID uuid.UUID) (*domain.Preferences, error)

	// PreferencesVersion возвращает поколение предпочтений пользователя; 0, если его нет
	PreferencesVersion(ctx context.Context, userID uuid.UUID) (int64, error)

	// SetPreferences сохраняет предпочтения, только если поколение всё ещё равно version.
	// false означает, что профиль был инвалидирован после чтения
	SetPreferences(ctx context.Context, userID uuid.UUID, prefs domain.Preferences, version int64, ttl time.Duration) (bool, error)

	// InvalidatePreferences увеличивает поколение и удаляет предпочтения после изменения профиля
	InvalidatePreferences(ctx context.Context, userID uuid.UUID) error
}
