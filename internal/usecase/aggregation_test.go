package usecase_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/usecase"
)

func intPtr(v int) *int { return &v }

func legalPtr(s domain.LegalStatus) *domain.LegalStatus { return &s }

func review(mode domain.TransportMode, safety, effectiveness, overall int) domain.SpotReview {
	return domain.SpotReview{
		TransportMode:       mode,
		SafetyRating:        safety,
		EffectivenessRating: effectiveness,
		OverallRating:       overall,
	}
}

// rescanMean is the naive full-scan definition the aggregates must match.
func rescanMean(reviews []domain.SpotReview, pick func(domain.SpotReview) int) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += pick(r)
	}
	return math.Round(float64(sum)/float64(len(reviews))*10) / 10
}

func TestComputeSpotRatings_EmptyIsZero(t *testing.T) {
	update := usecase.ComputeSpotRatings(domain.ReviewStats{}, map[domain.TransportMode]domain.ReviewStats{
		domain.ModeHitchhiking: {},
	})

	assert.Equal(t, 0.0, update.OverallRating)
	assert.Equal(t, 0.0, update.SafetyRating)
	assert.Equal(t, 0, update.TotalReviews)
	assert.Empty(t, update.ModeRatings)
}

func TestComputeSpotRatings_MatchesFullRescan(t *testing.T) {
	reviews := []domain.SpotReview{
		review(domain.ModeHitchhiking, 5, 4, 5),
		review(domain.ModeHitchhiking, 4, 2, 4),
		review(domain.ModeCycling, 2, 3, 3),
		review(domain.ModeWalking, 3, 3, 4),
		review(domain.ModeHitchhiking, 1, 5, 2),
		review(domain.ModeVanLife, 5, 5, 5),
		review(domain.ModeCycling, 4, 4, 4),
	}

	// Accumulate one review at a time, as successive submissions would.
	for n := 1; n <= len(reviews); n++ {
		seen := reviews[:n]
		modes := map[domain.TransportMode]domain.ReviewStats{}
		for _, m := range domain.AllTransportModes {
			modes[m] = domain.StatsOf(seen, &m)
		}
		update := usecase.ComputeSpotRatings(domain.StatsOf(seen, nil), modes)

		assert.Equal(t, rescanMean(seen, func(r domain.SpotReview) int { return r.OverallRating }), update.OverallRating)
		assert.Equal(t, rescanMean(seen, func(r domain.SpotReview) int { return r.SafetyRating }), update.SafetyRating)
		assert.Equal(t, n, update.TotalReviews)
	}
}

func TestBuildModeRating_OptionalFields(t *testing.T) {
	hitch := []domain.SpotReview{
		review(domain.ModeHitchhiking, 4, 4, 4),
		review(domain.ModeHitchhiking, 5, 3, 4),
		review(domain.ModeHitchhiking, 3, 2, 3),
	}
	hitch[0].WaitTimeMinutes = intPtr(10)
	hitch[2].WaitTimeMinutes = intPtr(25)

	rating := usecase.BuildModeRating(domain.StatsOf(hitch, nil))

	assert.Equal(t, 4.0, rating.Safety)
	assert.Equal(t, 3.0, rating.Effectiveness)
	assert.Equal(t, 3, rating.ReviewCount)
	require.NotNil(t, rating.AvgWaitTime)
	assert.Equal(t, 17.5, *rating.AvgWaitTime, "mean over reviews that reported a wait")
	assert.Nil(t, rating.Facilities)
	assert.Nil(t, rating.Accessibility)
	assert.Nil(t, rating.LegalStatus)
}

func TestBuildModeRating_NoWaitReportedStaysNil(t *testing.T) {
	rating := usecase.BuildModeRating(domain.StatsOf([]domain.SpotReview{
		review(domain.ModeHitchhiking, 4, 4, 4),
	}, nil))

	assert.Nil(t, rating.AvgWaitTime)
}

func TestBuildModeRating_Facilities(t *testing.T) {
	walking := []domain.SpotReview{
		review(domain.ModeWalking, 4, 4, 4),
		review(domain.ModeWalking, 4, 4, 4),
	}
	walking[0].FacilityRating = intPtr(3)
	walking[0].AccessibilityRating = intPtr(5)
	walking[1].FacilityRating = intPtr(4)

	rating := usecase.BuildModeRating(domain.StatsOf(walking, nil))

	require.NotNil(t, rating.Facilities)
	assert.Equal(t, 3.5, *rating.Facilities)
	require.NotNil(t, rating.Accessibility)
	assert.Equal(t, 5.0, *rating.Accessibility)
}

func TestDominantLegalStatus(t *testing.T) {
	tests := []struct {
		name     string
		counts   map[domain.LegalStatus]int
		expected *domain.LegalStatus
	}{
		{"none reported", nil, nil},
		{"clear majority", map[domain.LegalStatus]int{
			domain.LegalStatusLegal: 3, domain.LegalStatusIllegal: 1,
		}, legalPtr(domain.LegalStatusLegal)},
		{"tie goes to stricter", map[domain.LegalStatus]int{
			domain.LegalStatusLegal: 2, domain.LegalStatusTolerated: 2,
		}, legalPtr(domain.LegalStatusTolerated)},
		{"illegal beats everything on tie", map[domain.LegalStatus]int{
			domain.LegalStatusUnknown: 1, domain.LegalStatusIllegal: 1, domain.LegalStatusLegal: 1,
		}, legalPtr(domain.LegalStatusIllegal)},
		{"unknown only", map[domain.LegalStatus]int{
			domain.LegalStatusUnknown: 4,
		}, legalPtr(domain.LegalStatusUnknown)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, usecase.DominantLegalStatus(tt.counts))
		})
	}
}
