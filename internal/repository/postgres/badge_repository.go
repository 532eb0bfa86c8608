package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/domain/repository"
	"go.uber.org/zap"
)

type badgeRepository struct {
	db      *DB
	logger  *zap.Logger
	timeout time.Duration
}

func NewBadgeRepository(db *DB) repository.BadgeRepository {
	return &badgeRepository{
		db:      db,
		logger:  db.logger,
		timeout: db.queryTimeout,
	}
}

func (r *badgeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Badge, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	badges := []*domain.Badge{}
	err := r.db.SelectContext(ctx, &badges, `
		SELECT id, user_id, badge_key, category, tier, sort_order, earned_at
		FROM user_badges
		WHERE user_id = $1
		ORDER BY sort_order, earned_at
	`, userID)
	if err != nil {
		r.logger.Error("Failed to list badges", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, mapError(err, nil)
	}
	return badges, nil
}

// Award relies on the (user_id, badge_key) unique index: rows that already
// exist produce no RETURNING row and are skipped.
func (r *badgeRepository) Award(ctx context.Context, userID uuid.UUID, badges []*domain.Badge) ([]*domain.Badge, error) {
	if len(badges) == 0 {
		return []*domain.Badge{}, nil
	}

	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	awarded := make([]*domain.Badge, 0, len(badges))
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, `
			INSERT INTO user_badges (id, user_id, badge_key, category, tier, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id, badge_key) DO NOTHING
			RETURNING earned_at
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, b := range badges {
			nb := *b
			if nb.ID == uuid.Nil {
				nb.ID = uuid.New()
			}
			nb.UserID = userID

			var tier interface{}
			if nb.Tier != nil {
				tier = string(*nb.Tier)
			}

			err := stmt.QueryRowxContext(ctx,
				nb.ID, nb.UserID, nb.BadgeKey, string(nb.Category), tier, nb.SortOrder,
			).Scan(&nb.EarnedAt)
			if err == sql.ErrNoRows {
				// already held
				continue
			}
			if err != nil {
				return fmt.Errorf("badge %s: %w", nb.BadgeKey, err)
			}
			awarded = append(awarded, &nb)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to award badges",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, mapError(err, nil)
	}

	if len(awarded) > 0 {
		r.logger.Info("Badges awarded",
			zap.String("user_id", userID.String()),
			zap.Int("count", len(awarded)))
	}
	return awarded, nil
}
