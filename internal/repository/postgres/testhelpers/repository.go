package testhelpers

import (
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/spot-discovery/internal/domain/repository"
	"github.com/spot-discovery/internal/repository/postgres"
)

// Repositories bundles the PostgreSQL repositories over one connection.
type Repositories struct {
	Spots    repository.SpotRepository
	Reviews  repository.ReviewRepository
	Ratings  repository.RatingRepository
	Profiles repository.ProfileRepository
	Badges   repository.BadgeRepository
}

// NewRepositories wraps db with the production query timeout behaviour.
func NewRepositories(db *sqlx.DB, logger *zap.Logger) *Repositories {
	pgDB := postgres.NewDBForTest(db, logger, 5*time.Second)
	return &Repositories{
		Spots:    postgres.NewSpotRepository(pgDB),
		Reviews:  postgres.NewReviewRepository(pgDB),
		Ratings:  postgres.NewRatingRepository(pgDB),
		Profiles: postgres.NewProfileRepository(pgDB),
		Badges:   postgres.NewBadgeRepository(pgDB),
	}
}
