package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/domain/repository"
	"github.com/spot-discovery/internal/pkg/errors"
	"go.uber.org/zap"
)

const sqlStateCheckViolation = "23514"

const profileColumns = `
	user_id, COALESCE(display_name, ''), COALESCE(username, ''),
	travel_modes, primary_mode, show_all_spots,
	email_verified, phone_verified, social_connected,
	community_vouches, total_reviews, helpful_reviews, spots_added, verified_spots,
	reviewer_rating, safety_priority, countries_visited, languages,
	trust_score, member_since, updated_at`

type profileRepository struct {
	db      *sqlx.DB
	logger  *zap.Logger
	timeout time.Duration
}

func NewProfileRepository(db *DB) repository.ProfileRepository {
	return &profileRepository{
		db:      db.DB,
		logger:  db.logger,
		timeout: db.queryTimeout,
	}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	return r.get(ctx, userID)
}

func (r *profileRepository) get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM user_profiles WHERE user_id = $1", userID)

	p, err := scanProfile(row)
	if err != nil {
		if err != sql.ErrNoRows {
			r.logger.Error("Failed to get profile", zap.String("user_id", userID.String()), zap.Error(err))
		}
		return nil, mapError(err, errors.ErrProfileNotFound)
	}
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *domain.UserProfile) error {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO user_profiles (
			user_id, display_name, username, travel_modes, primary_mode, show_all_spots,
			safety_priority, countries_visited, languages
		)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8, $9)
		RETURNING member_since, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.DisplayName, p.Username,
		pq.Array(p.TravelModes.Strings()), string(p.PrimaryMode), p.ShowAllSpots,
		string(p.SafetyPriority), pq.Array(nonNil(p.CountriesVisited)), pq.Array(nonNil(p.Languages)),
	).Scan(&p.MemberSince, &p.UpdatedAt)
	if err != nil {
		switch sqlState(err) {
		case sqlStateUniqueViolation:
			return errors.ErrProfileExists.Wrap(err)
		case sqlStateCheckViolation:
			return errors.ErrPrimaryModeInvalid.Wrap(err)
		}
		r.logger.Error("Failed to create profile", zap.String("user_id", p.UserID.String()), zap.Error(err))
		return mapError(err, nil)
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, userID uuid.UUID, u domain.ProfileUpdate) (*domain.UserProfile, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}
	argIdx := 1

	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if u.DisplayName != nil {
		add("display_name", *u.DisplayName)
	}
	if u.TravelModes != nil {
		add("travel_modes", pq.Array(u.TravelModes.Normalize().Strings()))
	}
	if u.PrimaryMode != nil {
		add("primary_mode", string(*u.PrimaryMode))
	}
	if u.ShowAllSpots != nil {
		add("show_all_spots", *u.ShowAllSpots)
	}
	if u.SafetyPriority != nil {
		add("safety_priority", string(*u.SafetyPriority))
	}
	if u.EmailVerified != nil {
		add("email_verified", *u.EmailVerified)
	}
	if u.PhoneVerified != nil {
		add("phone_verified", *u.PhoneVerified)
	}
	if u.SocialConnected != nil {
		add("social_connected", *u.SocialConnected)
	}
	if u.ReviewerRating != nil {
		add("reviewer_rating", *u.ReviewerRating)
	}
	if u.CountriesVisited != nil {
		add("countries_visited", pq.Array(nonNil(*u.CountriesVisited)))
	}
	if u.Languages != nil {
		add("languages", pq.Array(nonNil(*u.Languages)))
	}
	if u.TrustScore != nil {
		add("trust_score", *u.TrustScore)
	}

	query := fmt.Sprintf("UPDATE user_profiles SET %s WHERE user_id = $%d", strings.Join(sets, ", "), argIdx)
	args = append(args, userID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if sqlState(err) == sqlStateCheckViolation {
			return nil, errors.ErrPrimaryModeInvalid.Wrap(err)
		}
		r.logger.Error("Failed to update profile", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, mapError(err, nil)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.ErrProfileNotFound
	}

	return r.get(ctx, userID)
}

func (r *profileRepository) IncrementCounters(ctx context.Context, userID uuid.UUID, d domain.CounterDelta) error {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE user_profiles
		SET total_reviews = total_reviews + $2,
			helpful_reviews = helpful_reviews + $3,
			spots_added = spots_added + $4,
			verified_spots = verified_spots + $5,
			community_vouches = community_vouches + $6,
			updated_at = NOW()
		WHERE user_id = $1
	`, userID, d.TotalReviews, d.HelpfulReviews, d.SpotsAdded, d.VerifiedSpots, d.CommunityVouches)
	if err != nil {
		r.logger.Error("Failed to increment profile counters", zap.String("user_id", userID.String()), zap.Error(err))
		return mapError(err, nil)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) SetTrustScore(ctx context.Context, userID uuid.UUID, score int) error {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles SET trust_score = $2 WHERE user_id = $1`, userID, score)
	if err != nil {
		r.logger.Error("Failed to set trust score", zap.String("user_id", userID.String()), zap.Error(err))
		return mapError(err, nil)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.ErrProfileNotFound
	}
	return nil
}

// AddVouch records voucherID vouching for userID. The counter itself is
// moved by IncrementCounters once the row exists.
func (r *profileRepository) AddVouch(ctx context.Context, userID, voucherID uuid.UUID) (bool, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO profile_vouches (user_id, voucher_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, voucher_id) DO NOTHING
	`, userID, voucherID)
	switch {
	case err == nil:
	case sqlState(err) == sqlStateForeignKeyViolation:
		return false, errors.ErrProfileNotFound.Wrap(err)
	case sqlState(err) == sqlStateCheckViolation:
		return false, errors.ErrSelfVouch.Wrap(err)
	default:
		r.logger.Error("Failed to add vouch",
			zap.String("user_id", userID.String()),
			zap.String("voucher_id", voucherID.String()),
			zap.Error(err))
		return false, mapError(err, nil)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, mapError(err, nil)
	}
	return n == 1, nil
}

func scanProfile(row rowScanner) (*domain.UserProfile, error) {
	var (
		p         domain.UserProfile
		modes     pq.StringArray
		primary   string
		safety    string
		countries pq.StringArray
		languages pq.StringArray
	)

	err := row.Scan(
		&p.UserID, &p.DisplayName, &p.Username,
		&modes, &primary, &p.ShowAllSpots,
		&p.EmailVerified, &p.PhoneVerified, &p.SocialConnected,
		&p.CommunityVouches, &p.TotalReviews, &p.HelpfulReviews, &p.SpotsAdded, &p.VerifiedSpots,
		&p.ReviewerRating, &safety, &countries, &languages,
		&p.TrustScore, &p.MemberSince, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.TravelModes = domain.TransportModesFromStrings(modes)
	p.PrimaryMode = domain.TransportMode(primary)
	p.SafetyPriority = domain.SafetyPriority(safety)
	p.CountriesVisited = []string(countries)
	p.Languages = []string(languages)
	return &p, nil
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
