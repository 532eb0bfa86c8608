package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/pkg/errors"
	"github.com/spot-discovery/internal/repository/postgres"
)

func TestSpotRepository_FindNearOrdersByDistance(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewSpotRepository(db)

	creator := uuid.New()
	now := time.Now()
	near, far := uuid.New(), uuid.New()

	rows := sqlmock.NewRows(spotRowColumns).
		AddRow(near.String(), "Exit 12", "", 52.51, 13.40, "highway_entrance", "{hitchhiking}",
			4.5, 4.2, []byte(`{"hitchhiking":{"safety":4.5,"effectiveness":4,"review_count":2,"avg_wait_time":15}}`),
			2, true, true, creator.String(), now, now, "Ana", "ana", 1.0).
		AddRow(far.String(), "Rest stop", "benches", 52.55, 13.41, "rest_stop", "{hitchhiking,walking}",
			0.0, 0.0, []byte(`{}`), 0, false, true, creator.String(), now, now, nil, nil, 5.0)

	mock.ExpectQuery(`ST_DWithin\(s.location`).
		WithArgs(13.40, 52.50, 10000.0, sqlmock.AnyArg(), 50, 0).
		WillReturnRows(rows)

	spots, err := repo.Find(context.Background(), domain.SpotQuery{
		TransportModes: domain.TransportModes{domain.ModeHitchhiking},
		Near:           &domain.Point{Lat: 52.50, Lon: 13.40},
		RadiusKm:       10,
		Limit:          50,
	})
	require.NoError(t, err)
	require.Len(t, spots, 2)

	assert.Equal(t, near, spots[0].ID)
	require.NotNil(t, spots[0].DistanceKm)
	assert.Equal(t, 1.0, *spots[0].DistanceKm)
	require.NotNil(t, spots[0].Creator)
	assert.Equal(t, "Ana", spots[0].Creator.DisplayName)
	hitch := spots[0].ModeRatings[domain.ModeHitchhiking]
	assert.Equal(t, 2, hitch.ReviewCount)
	require.NotNil(t, hitch.AvgWaitTime)
	assert.Equal(t, 15.0, *hitch.AvgWaitTime)

	assert.Equal(t, domain.TransportModes{domain.ModeHitchhiking, domain.ModeWalking}, spots[1].TransportModes)
	assert.Nil(t, spots[1].Creator)
	assert.Empty(t, spots[1].ModeRatings)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpotRepository_FindWithoutPointUsesRecency(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewSpotRepository(db)

	minRating := 3.5
	minSafety := 4.0
	spotType := domain.SpotGasStation

	mock.ExpectQuery(`s.is_active = true AND s.spot_type = \$1 AND s.overall_rating >= \$2 AND s.safety_rating >= \$3 ORDER BY s.created_at DESC, s.id DESC LIMIT \$4 OFFSET \$5`).
		WithArgs("gas_station", 3.5, 4.0, 20, 40).
		WillReturnRows(sqlmock.NewRows(spotRowColumns))

	spots, err := repo.Find(context.Background(), domain.SpotQuery{
		SpotType:        &spotType,
		MinRating:       &minRating,
		MinSafetyRating: &minSafety,
		Limit:           20,
		Offset:          40,
	})
	require.NoError(t, err)
	assert.Empty(t, spots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpotRepository_Count(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewSpotRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM spots s WHERE s.is_active = true AND s.transport_modes && \$1::text\[\]`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(150))

	total, err := repo.Count(context.Background(), domain.SpotQuery{
		TransportModes: domain.TransportModes{domain.ModeCycling, domain.ModeVanLife},
		Limit:          100,
	})
	require.NoError(t, err)
	assert.Equal(t, 150, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpotRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewSpotRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`WHERE s.id = \$1 AND s.is_active = true`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	spot, err := repo.GetByID(context.Background(), id)
	assert.Nil(t, spot)
	assert.ErrorIs(t, err, errors.ErrSpotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpotRepository_TimeoutIsRetryable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewSpotRepository(db)

	mock.ExpectQuery(`SELECT COUNT`).WillReturnError(context.DeadlineExceeded)

	_, err := repo.Count(context.Background(), domain.SpotQuery{Limit: 10})
	assert.Equal(t, errors.CodeStoreUnavailable, errors.KindOf(err))
	assert.True(t, errors.IsRetryable(err))
}

func TestSpotRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewSpotRepository(db)
	creator := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO spots`).
		WithArgs(sqlmock.AnyArg(), "Bridge north", "", 2.17, 41.38, "bridge", sqlmock.AnyArg(), creator).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	spot, err := repo.Create(context.Background(), domain.NewSpot{
		Name:           "Bridge north",
		Lat:            41.38,
		Lon:            2.17,
		SpotType:       domain.SpotBridge,
		TransportModes: domain.TransportModes{domain.ModeWalking, domain.ModeHitchhiking, domain.ModeWalking},
		CreatedBy:      creator,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, spot.ID)
	assert.True(t, spot.IsActive)
	assert.Equal(t, domain.TransportModes{domain.ModeHitchhiking, domain.ModeWalking}, spot.TransportModes)
	assert.Equal(t, now, spot.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpotRepository_UpdateMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewSpotRepository(db)
	id := uuid.New()
	verified := true

	mock.ExpectExec(`UPDATE spots SET updated_at = NOW\(\), is_verified = \$1 WHERE id = \$2`).
		WithArgs(true, id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Update(context.Background(), id, domain.SpotUpdate{IsVerified: &verified})
	assert.ErrorIs(t, err, errors.ErrSpotNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
