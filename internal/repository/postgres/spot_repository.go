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

const spotColumns = `
	s.id, s.name, COALESCE(s.description, '') AS description,
	ST_Y(s.location::geometry) AS lat, ST_X(s.location::geometry) AS lon,
	s.spot_type, s.transport_modes, s.safety_rating, s.overall_rating,
	s.mode_ratings, s.total_reviews, s.is_verified, s.is_active,
	s.created_by, s.created_at, s.updated_at,
	p.display_name, p.username`

const spotFrom = `
	FROM spots s
	LEFT JOIN user_profiles p ON p.user_id = s.created_by`

type spotRepository struct {
	db      *sqlx.DB
	logger  *zap.Logger
	timeout time.Duration
}

func NewSpotRepository(db *DB) repository.SpotRepository {
	return &spotRepository{
		db:      db.DB,
		logger:  db.logger,
		timeout: db.queryTimeout,
	}
}

// spotWhere builds the WHERE clause shared by Find and Count. When the query
// has a point, $1 and $2 hold lon/lat so the distance expression can reuse them.
func spotWhere(q domain.SpotQuery) (string, []interface{}) {
	conds := []string{"s.is_active = true"}
	args := []interface{}{}
	argIdx := 1

	if q.Near != nil {
		args = append(args, q.Near.Lon, q.Near.Lat, q.RadiusKm*metersPerKm)
		conds = append(conds, fmt.Sprintf(
			"ST_DWithin(s.location, ST_SetSRID(ST_MakePoint($1, $2), %d)::geography, $3)", srid4326))
		argIdx = 4
	}

	if len(q.TransportModes) > 0 {
		conds = append(conds, fmt.Sprintf("s.transport_modes && $%d::text[]", argIdx))
		args = append(args, pq.Array(q.TransportModes.Strings()))
		argIdx++
	}

	if q.SpotType != nil {
		conds = append(conds, fmt.Sprintf("s.spot_type = $%d", argIdx))
		args = append(args, string(*q.SpotType))
		argIdx++
	}

	if q.MinRating != nil {
		conds = append(conds, fmt.Sprintf("s.overall_rating >= $%d", argIdx))
		args = append(args, *q.MinRating)
		argIdx++
	}

	if q.MinSafetyRating != nil {
		conds = append(conds, fmt.Sprintf("s.safety_rating >= $%d", argIdx))
		args = append(args, *q.MinSafetyRating)
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *spotRepository) Find(ctx context.Context, q domain.SpotQuery) ([]*domain.Spot, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	where, args := spotWhere(q)

	distance := "NULL::double precision"
	order := " ORDER BY s.created_at DESC, s.id DESC"
	if q.Near != nil {
		distance = fmt.Sprintf(
			"ST_Distance(s.location, ST_SetSRID(ST_MakePoint($1, $2), %d)::geography) / %.0f", srid4326, metersPerKm)
		order = " ORDER BY distance_km ASC, s.created_at ASC, s.id ASC"
	}

	argIdx := len(args) + 1
	query := "SELECT " + spotColumns + ", " + distance + " AS distance_km" + spotFrom + where + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to find spots", zap.Error(err))
		return nil, mapError(err, nil)
	}
	defer rows.Close()

	spots := make([]*domain.Spot, 0, q.Limit)
	for rows.Next() {
		var distanceKm sql.NullFloat64
		spot, err := scanSpot(rows, &distanceKm)
		if err != nil {
			r.logger.Error("Failed to scan spot", zap.Error(err))
			return nil, mapError(err, nil)
		}
		if distanceKm.Valid {
			d := distanceKm.Float64
			spot.DistanceKm = &d
		}
		spots = append(spots, spot)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate spots", zap.Error(err))
		return nil, mapError(err, nil)
	}

	return spots, nil
}

func (r *spotRepository) Count(ctx context.Context, q domain.SpotQuery) (int, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	where, args := spotWhere(q)
	query := "SELECT COUNT(*) FROM spots s" + where

	var total int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		r.logger.Error("Failed to count spots", zap.Error(err))
		return 0, mapError(err, nil)
	}
	return total, nil
}

func (r *spotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Spot, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	return r.get(ctx, id, true)
}

func (r *spotRepository) get(ctx context.Context, id uuid.UUID, activeOnly bool) (*domain.Spot, error) {
	query := "SELECT " + spotColumns + ", NULL::double precision AS distance_km" + spotFrom + " WHERE s.id = $1"
	if activeOnly {
		query += " AND s.is_active = true"
	}

	var distanceKm sql.NullFloat64
	spot, err := scanSpot(r.db.QueryRowContext(ctx, query, id), &distanceKm)
	if err != nil {
		if err != sql.ErrNoRows {
			r.logger.Error("Failed to get spot by ID", zap.String("id", id.String()), zap.Error(err))
		}
		return nil, mapError(err, errors.ErrSpotNotFound)
	}
	return spot, nil
}

func (r *spotRepository) Create(ctx context.Context, s domain.NewSpot) (*domain.Spot, error) {
	ctx, cancel := boundedContext(ctx, r.timeout)
	defer cancel()

	spot := &domain.Spot{
		ID:             uuid.New(),
		Name:           s.Name,
		Description:    s.Description,
		Lat:            s.Lat,
		Lon:            s.Lon,
		SpotType:       s.SpotType,
		TransportModes: s.TransportModes.Normalize(),
		ModeRatings:    domain.ModeRatings{},
		IsActive:       true,
		CreatedBy:      s.CreatedBy,
	}

	query := fmt.Sprintf(`
		INSERT INTO spots (id, name, description, location, spot_type, transport_modes, created_by)
		VALUES ($1, $2, NULLIF($3, ''), ST_SetSRID(ST_MakePoint($4, $5), %d)::geography, $6, $7, $8)
		RETURNING created_at, updated_at
	`, srid4326)

	err := r.db.QueryRowContext(ctx, query,
		spot.ID, spot.Name, spot.Description, spot.Lon, spot.Lat,
		string(spot.SpotType), pq.Array(spot.TransportModes.Strings()), spot.CreatedBy,
	).Scan(&spot.CreatedAt, &spot.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create spot", zap.String("name", s.Name), zap.Error(err))
		return nil, mapError(err, nil)
	}

	return spot, nil
}

func (r *spotRepository) Update(ctx context.Context, id uuid.UUID, u domain.SpotUpdate) (*domain.Spot, error) {
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

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.SpotType != nil {
		add("spot_type", string(*u.SpotType))
	}
	if u.TransportModes != nil {
		add("transport_modes", pq.Array(u.TransportModes.Normalize().Strings()))
	}
	if u.IsVerified != nil {
		add("is_verified", *u.IsVerified)
	}
	if u.IsActive != nil {
		add("is_active", *u.IsActive)
	}

	query := fmt.Sprintf("UPDATE spots SET %s WHERE id = $%d", strings.Join(sets, ", "), argIdx)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update spot", zap.String("id", id.String()), zap.Error(err))
		return nil, mapError(err, nil)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.ErrSpotNotFound
	}

	return r.get(ctx, id, false)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSpot(row rowScanner, distanceKm *sql.NullFloat64) (*domain.Spot, error) {
	var (
		s           domain.Spot
		modes       pq.StringArray
		spotType    string
		displayName sql.NullString
		username    sql.NullString
	)

	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.Lat, &s.Lon,
		&spotType, &modes, &s.SafetyRating, &s.OverallRating,
		&s.ModeRatings, &s.TotalReviews, &s.IsVerified, &s.IsActive,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
		&displayName, &username, distanceKm,
	)
	if err != nil {
		return nil, err
	}

	s.SpotType = domain.SpotType(spotType)
	s.TransportModes = domain.TransportModesFromStrings(modes)
	if displayName.Valid || username.Valid {
		s.Creator = &domain.Creator{
			ID:          s.CreatedBy,
			DisplayName: displayName.String,
			Username:    username.String,
		}
	}
	return &s, nil
}
