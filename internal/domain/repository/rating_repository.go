package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/spot-discovery/internal/domain"
)

// RatingComputeFunc derives the spot aggregates from the locked statistics.
// modeStats holds one entry per mode being refreshed.
type RatingComputeFunc func(overall domain.ReviewStats, modeStats map[domain.TransportMode]domain.ReviewStats) domain.SpotRatingsUpdate

// RatingRepository serializes rating recomputation per spot.
type RatingRepository interface {
	// Stats returns the sum/count summary of a spot's reviews, optionally
	// restricted to one mode.
	Stats(ctx context.Context, spotID uuid.UUID, mode *domain.TransportMode) (domain.ReviewStats, error)

	// RecomputeSpot locks the spot row, loads statistics for the given modes,
	// and writes back what compute returns, all in one transaction.
	RecomputeSpot(ctx context.Context, spotID uuid.UUID, modes domain.TransportModes, compute RatingComputeFunc) (*domain.SpotRatingsUpdate, error)
}
