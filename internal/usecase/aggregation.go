package usecase

import (
	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/pkg/utils"
)

// meanRounded is the one-decimal mean of an integer sum, 0 for an empty set.
func meanRounded(sum int64, count int) float64 {
	if count == 0 {
		return 0
	}
	return utils.Round1(float64(sum) / float64(count))
}

func optionalMean(sum int64, count int) *float64 {
	if count == 0 {
		return nil
	}
	m := meanRounded(sum, count)
	return &m
}

// DominantLegalStatus returns the most reported status. Ties go to the more
// restrictive status.
func DominantLegalStatus(counts map[domain.LegalStatus]int) *domain.LegalStatus {
	var (
		best  domain.LegalStatus
		votes int
	)
	for status, n := range counts {
		if n <= 0 {
			continue
		}
		if n > votes || (n == votes && status.Restrictiveness() > best.Restrictiveness()) {
			best, votes = status, n
		}
	}
	if votes == 0 {
		return nil
	}
	return &best
}

// BuildModeRating derives the per-mode rating from the mode's statistics.
// Optional fields stay nil until at least one review supplied them.
func BuildModeRating(s domain.ReviewStats) domain.ModeRating {
	return domain.ModeRating{
		Safety:        meanRounded(s.SafetySum, s.Count),
		Effectiveness: meanRounded(s.EffectivenessSum, s.Count),
		ReviewCount:   s.Count,
		AvgWaitTime:   optionalMean(s.WaitTimeSum, s.WaitTimeCount),
		LegalStatus:   DominantLegalStatus(s.LegalStatusCounts),
		Facilities:    optionalMean(s.FacilitySum, s.FacilityCount),
		Accessibility: optionalMean(s.AccessibilitySum, s.AccessibilityCount),
	}
}

// ComputeSpotRatings is the recomputation applied under the spot lock. Modes
// without reviews are left out of ModeRatings.
func ComputeSpotRatings(overall domain.ReviewStats, modes map[domain.TransportMode]domain.ReviewStats) domain.SpotRatingsUpdate {
	update := domain.SpotRatingsUpdate{
		OverallRating: meanRounded(overall.OverallSum, overall.Count),
		SafetyRating:  meanRounded(overall.SafetySum, overall.Count),
		TotalReviews:  overall.Count,
		ModeRatings:   domain.ModeRatings{},
	}
	for mode, s := range modes {
		if s.Count == 0 {
			continue
		}
		update.ModeRatings[mode] = BuildModeRating(s)
	}
	return update
}
