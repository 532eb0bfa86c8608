package testhelpers

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/domain/repository"
)

// CreateProfile stores a profile with the given modes; the first mode is primary.
func CreateProfile(t *testing.T, repo repository.ProfileRepository, modes ...domain.TransportMode) *domain.UserProfile {
	t.Helper()

	id := uuid.New()
	p := &domain.UserProfile{
		UserID:         id,
		DisplayName:    "Tester " + id.String()[:8],
		Username:       "tester_" + id.String()[:8],
		TravelModes:    domain.TransportModes(modes).Normalize(),
		PrimaryMode:    modes[0],
		SafetyPriority: domain.SafetyHigh,
		MemberSince:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

// CreateSpot stores an active spot at the given point.
func CreateSpot(t *testing.T, repo repository.SpotRepository, creator uuid.UUID, name string, at domain.Point, modes ...domain.TransportMode) *domain.Spot {
	t.Helper()

	spot, err := repo.Create(context.Background(), domain.NewSpot{
		Name:           name,
		Lat:            at.Lat,
		Lon:            at.Lon,
		SpotType:       domain.SpotGasStation,
		TransportModes: domain.TransportModes(modes).Normalize(),
		CreatedBy:      creator,
	})
	require.NoError(t, err)
	return spot
}
