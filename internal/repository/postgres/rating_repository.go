package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/domain/repository"
	"github.com/spot-discovery/internal/pkg/errors"
	"go.uber.org/zap"
)

const statsQuery = `
	SELECT
		COUNT(*),
		COALESCE(SUM(safety_rating), 0),
		COALESCE(SUM(effectiveness_rating), 0),
		COALESCE(SUM(overall_rating), 0),
		COALESCE(SUM(wait_time_minutes), 0),
		COUNT(wait_time_minutes),
		COALESCE(SUM(facility_rating), 0),
		COUNT(facility_rating),
		COALESCE(SUM(accessibility_rating), 0),
		COUNT(accessibility_rating)
	FROM spot_reviews
	WHERE spot_id = $1`

const legalStatusQuery = `
	SELECT legal_status, COUNT(*)
	FROM spot_reviews
	WHERE spot_id = $1 AND legal_status IS NOT NULL`

type ratingRepository struct {
	db      *DB
	logger  *zap.Logger
	timeout time.Duration
}

func NewRatingRepository(db *DB) repository.RatingRepository {
	return &ratingRepository{
		db:      db,
		logger:  db.logger,
		timeout: db.queryTimeout,
	}
}

func (r *ratingRepository) Stats(ctx context.Context, spotID uuid.UUID, mode *domain.TransportMode) (domain.ReviewStats, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	stats, err := loadStats(ctx, r.db, spotID, mode)
	if err != nil {
		r.logger.Error("Failed to load review stats", zap.String("spot_id", spotID.String()), zap.Error(err))
		return domain.ReviewStats{}, mapError(err, nil)
	}
	return stats, nil
}

func (r *ratingRepository) RecomputeSpot(
	ctx context.Context,
	spotID uuid.UUID,
	modes domain.TransportModes,
	compute repository.RatingComputeFunc,
) (*domain.SpotRatingsUpdate, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	var update domain.SpotRatingsUpdate
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		// Row lock serializes concurrent recomputations of the same spot.
		var locked uuid.UUID
		if err := tx.QueryRowxContext(ctx, `SELECT id FROM spots WHERE id = $1 FOR UPDATE`, spotID).Scan(&locked); err != nil {
			return mapError(err, errors.ErrSpotNotFound)
		}

		overall, err := loadStats(ctx, tx, spotID, nil)
		if err != nil {
			return fmt.Errorf("load spot stats: %w", err)
		}

		modeStats := make(map[domain.TransportMode]domain.ReviewStats, len(modes))
		for _, m := range modes {
			s, err := loadStats(ctx, tx, spotID, &m)
			if err != nil {
				return fmt.Errorf("load %s stats: %w", m, err)
			}
			modeStats[m] = s
		}

		update = compute(overall, modeStats)

		refreshed := update.ModeRatings
		if refreshed == nil {
			refreshed = domain.ModeRatings{}
		}
		patch, err := json.Marshal(refreshed)
		if err != nil {
			return errors.ErrInternalServer.Wrap(err)
		}

		// Requested modes are dropped first so a mode left without reviews loses
		// its entry, then the refreshed entries are merged in.
		_, err = tx.ExecContext(ctx, `
			UPDATE spots
			SET overall_rating = $2,
				safety_rating = $3,
				total_reviews = $4,
				mode_ratings = (COALESCE(mode_ratings, '{}'::jsonb) - $5::text[]) || $6::jsonb,
				updated_at = NOW()
			WHERE id = $1
		`, spotID, update.OverallRating, update.SafetyRating, update.TotalReviews,
			pq.Array(modes.Strings()), string(patch))
		if err != nil {
			return fmt.Errorf("write ratings: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.KindOf(err) != errors.CodeNotFound {
			r.logger.Error("Failed to recompute spot ratings", zap.String("spot_id", spotID.String()), zap.Error(err))
		}
		return nil, mapError(err, nil)
	}

	return &update, nil
}

func loadStats(ctx context.Context, q sqlx.QueryerContext, spotID uuid.UUID, mode *domain.TransportMode) (domain.ReviewStats, error) {
	var s domain.ReviewStats

	filter := ""
	args := []interface{}{spotID}
	if mode != nil {
		filter = " AND transport_mode = $2"
		args = append(args, string(*mode))
	}

	err := q.QueryRowxContext(ctx, statsQuery+filter, args...).Scan(
		&s.Count,
		&s.SafetySum, &s.EffectivenessSum, &s.OverallSum,
		&s.WaitTimeSum, &s.WaitTimeCount,
		&s.FacilitySum, &s.FacilityCount,
		&s.AccessibilitySum, &s.AccessibilityCount,
	)
	if err != nil {
		return s, err
	}

	rows, err := q.QueryxContext(ctx, legalStatusQuery+filter+" GROUP BY legal_status", args...)
	if err != nil {
		return s, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return s, err
		}
		if s.LegalStatusCounts == nil {
			s.LegalStatusCounts = make(map[domain.LegalStatus]int)
		}
		s.LegalStatusCounts[domain.LegalStatus(status)] = n
	}
	return s, rows.Err()
}
