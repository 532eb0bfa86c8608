package postgres_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spot-discovery/internal/repository/postgres"
)

func newMockDB(t *testing.T) (*postgres.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return postgres.NewDBForTest(sqlx.NewDb(db, "pgx"), zap.NewNop(), time.Second), mock
}

var spotRowColumns = []string{
	"id", "name", "description", "lat", "lon", "spot_type", "transport_modes",
	"safety_rating", "overall_rating", "mode_ratings", "total_reviews",
	"is_verified", "is_active", "created_by", "created_at", "updated_at",
	"display_name", "username", "distance_km",
}

var reviewRowColumns = []string{
	"id", "spot_id", "user_id", "transport_mode",
	"safety_rating", "effectiveness_rating", "overall_rating",
	"wait_time_minutes", "legal_status", "facility_rating", "accessibility_rating",
	"comment", "helpful_votes", "created_at",
}
