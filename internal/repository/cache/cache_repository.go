package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	preferencesKeyPrefix        = "prefs:"
	preferencesVersionKeyPrefix = "prefs:ver:"

	// Outlives any preferences entry so a version never resets under a reader.
	preferencesVersionTTL = 24 * time.Hour
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func preferencesKey(userID uuid.UUID) string {
	return preferencesKeyPrefix + userID.String()
}

func preferencesVersionKey(userID uuid.UUID) string {
	return preferencesVersionKeyPrefix + userID.String()
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) GetPreferences(ctx context.Context, userID uuid.UUID) (*domain.Preferences, error) {
	data, err := r.Get(ctx, preferencesKey(userID))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		// Corrupt entries are treated as a miss and overwritten on the next set.
		r.logger.Warn("Failed to unmarshal cached preferences",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, nil
	}
	return &prefs, nil
}

func (r *cacheRepository) PreferencesVersion(ctx context.Context, userID uuid.UUID) (int64, error) {
	v, err := r.client.Get(ctx, preferencesVersionKey(userID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		r.logger.Error("Failed to read preferences version", zap.String("user_id", userID.String()), zap.Error(err))
		return 0, fmt.Errorf("cache get error: %w", err)
	}
	return v, nil
}

// SetPreferences writes under WATCH on the version key, so an invalidation
// that lands between the caller's profile read and this write wins.
func (r *cacheRepository) SetPreferences(
	ctx context.Context,
	userID uuid.UUID,
	prefs domain.Preferences,
	version int64,
	ttl time.Duration,
) (bool, error) {
	data, err := json.Marshal(prefs)
	if err != nil {
		return false, fmt.Errorf("marshal preferences: %w", err)
	}

	verKey := preferencesVersionKey(userID)
	stored := false
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, preferencesKey(userID), data, ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, verKey)

	switch {
	case err == redis.TxFailedErr:
		stored = false
	case err != nil:
		r.logger.Error("Failed to set cached preferences", zap.String("user_id", userID.String()), zap.Error(err))
		return false, fmt.Errorf("cache set error: %w", err)
	}

	if !stored {
		r.logger.Debug("Skipped caching superseded preferences", zap.String("user_id", userID.String()))
	}
	return stored, nil
}

// InvalidatePreferences bumps the version and drops the entry in one MULTI.
func (r *cacheRepository) InvalidatePreferences(ctx context.Context, userID uuid.UUID) error {
	verKey := preferencesVersionKey(userID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, verKey)
		pipe.Expire(ctx, verKey, preferencesVersionTTL)
		pipe.Del(ctx, preferencesKey(userID))
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to invalidate preferences", zap.String("user_id", userID.String()), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}
