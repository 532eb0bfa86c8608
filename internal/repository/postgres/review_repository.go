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
	"github.com/spot-discovery/internal/pkg/errors"
	"go.uber.org/zap"
)

const sqlStateForeignKeyViolation = "23503"

const reviewColumns = `
	id, spot_id, user_id, transport_mode,
	safety_rating, effectiveness_rating, overall_rating,
	wait_time_minutes, legal_status, facility_rating, accessibility_rating,
	COALESCE(comment, '') AS comment, helpful_votes, created_at`

type reviewRepository struct {
	db      *sqlx.DB
	logger  *zap.Logger
	timeout time.Duration
}

func NewReviewRepository(db *DB) repository.ReviewRepository {
	return &reviewRepository{
		db:      db.DB,
		logger:  db.logger,
		timeout: db.queryTimeout,
	}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.SpotReview) error {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}

	query := `
		INSERT INTO spot_reviews (
			id, spot_id, user_id, transport_mode,
			safety_rating, effectiveness_rating, overall_rating,
			wait_time_minutes, legal_status, facility_rating, accessibility_rating, comment
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''))
		RETURNING helpful_votes, created_at
	`

	var legal interface{}
	if rv.LegalStatus != nil {
		legal = string(*rv.LegalStatus)
	}

	err := r.db.QueryRowContext(ctx, query,
		rv.ID, rv.SpotID, rv.UserID, string(rv.TransportMode),
		rv.SafetyRating, rv.EffectivenessRating, rv.OverallRating,
		rv.WaitTimeMinutes, legal, rv.FacilityRating, rv.AccessibilityRating, rv.Comment,
	).Scan(&rv.HelpfulVotes, &rv.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.ErrDuplicateReview.Wrap(err)
		}
		if sqlState(err) == sqlStateForeignKeyViolation {
			return errors.ErrSpotNotFound.Wrap(err)
		}
		r.logger.Error("Failed to create review",
			zap.String("spot_id", rv.SpotID.String()),
			zap.String("user_id", rv.UserID.String()),
			zap.Error(err))
		return mapError(err, nil)
	}

	return nil
}

func (r *reviewRepository) Exists(ctx context.Context, spotID, userID uuid.UUID) (bool, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM spot_reviews WHERE spot_id = $1 AND user_id = $2)`,
		spotID, userID,
	).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check review existence", zap.Error(err))
		return false, mapError(err, nil)
	}
	return exists, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SpotReview, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	var rv domain.SpotReview
	err := r.db.GetContext(ctx, &rv, "SELECT "+reviewColumns+" FROM spot_reviews WHERE id = $1", id)
	if err != nil {
		if err != sql.ErrNoRows {
			r.logger.Error("Failed to get review by ID", zap.String("id", id.String()), zap.Error(err))
		}
		return nil, mapError(err, errors.ErrReviewNotFound)
	}
	return &rv, nil
}

func (r *reviewRepository) ListBySpot(
	ctx context.Context,
	spotID uuid.UUID,
	mode *domain.TransportMode,
	page domain.Page,
) ([]*domain.SpotReview, int, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	where := " WHERE spot_id = $1"
	args := []interface{}{spotID}
	if mode != nil {
		where += " AND transport_mode = $2"
		args = append(args, string(*mode))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM spot_reviews"+where, args...); err != nil {
		r.logger.Error("Failed to count reviews", zap.String("spot_id", spotID.String()), zap.Error(err))
		return nil, 0, mapError(err, nil)
	}

	argIdx := len(args) + 1
	query := "SELECT " + reviewColumns + " FROM spot_reviews" + where +
		fmt.Sprintf(" ORDER BY helpful_votes DESC, created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, page.Limit, page.Offset)

	reviews := []*domain.SpotReview{}
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		r.logger.Error("Failed to list reviews", zap.String("spot_id", spotID.String()), zap.Error(err))
		return nil, 0, mapError(err, nil)
	}

	return reviews, total, nil
}

// AddHelpfulVote records the vote and bumps the counter in one statement; a
// repeated vote inserts nothing and leaves the counter alone.
func (r *reviewRepository) AddHelpfulVote(ctx context.Context, reviewID, voterID uuid.UUID) (*domain.HelpfulVoteResult, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	query := `
		WITH vote AS (
			INSERT INTO review_helpful_votes (review_id, voter_id)
			VALUES ($1, $2)
			ON CONFLICT (review_id, voter_id) DO NOTHING
			RETURNING review_id
		)
		UPDATE spot_reviews r
		SET helpful_votes = r.helpful_votes + 1
		FROM vote
		WHERE r.id = vote.review_id
		RETURNING r.user_id, r.helpful_votes
	`

	result := &domain.HelpfulVoteResult{ReviewID: reviewID}
	err := r.db.QueryRowContext(ctx, query, reviewID, voterID).Scan(&result.AuthorID, &result.HelpfulVotes)
	switch {
	case err == nil:
		result.Recorded = true
		return result, nil
	case err == sql.ErrNoRows:
		// already voted; report the current state
	case sqlState(err) == sqlStateForeignKeyViolation:
		return nil, errors.ErrReviewNotFound.Wrap(err)
	default:
		r.logger.Error("Failed to add helpful vote",
			zap.String("review_id", reviewID.String()),
			zap.Error(err))
		return nil, mapError(err, nil)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT user_id, helpful_votes FROM spot_reviews WHERE id = $1`, reviewID,
	).Scan(&result.AuthorID, &result.HelpfulVotes)
	if err != nil {
		return nil, mapError(err, errors.ErrReviewNotFound)
	}
	return result, nil
}
