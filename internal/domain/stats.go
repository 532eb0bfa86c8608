package domain

// ReviewStats is the integer sum/count summary of a set of reviews. Means
// derived from it equal a full rescan of the same reviews.
type ReviewStats struct {
	Count              int                 `json:"count"`
	SafetySum          int64               `json:"safety_sum"`
	EffectivenessSum   int64               `json:"effectiveness_sum"`
	OverallSum         int64               `json:"overall_sum"`
	WaitTimeSum        int64               `json:"wait_time_sum"`
	WaitTimeCount      int                 `json:"wait_time_count"`
	FacilitySum        int64               `json:"facility_sum"`
	FacilityCount      int                 `json:"facility_count"`
	AccessibilitySum   int64               `json:"accessibility_sum"`
	AccessibilityCount int                 `json:"accessibility_count"`
	LegalStatusCounts  map[LegalStatus]int `json:"legal_status_counts,omitempty"`
}

// Add folds one review into the summary.
func (s *ReviewStats) Add(r SpotReview) {
	s.Count++
	s.SafetySum += int64(r.SafetyRating)
	s.EffectivenessSum += int64(r.EffectivenessRating)
	s.OverallSum += int64(r.OverallRating)

	if r.WaitTimeMinutes != nil {
		s.WaitTimeSum += int64(*r.WaitTimeMinutes)
		s.WaitTimeCount++
	}
	if r.FacilityRating != nil {
		s.FacilitySum += int64(*r.FacilityRating)
		s.FacilityCount++
	}
	if r.AccessibilityRating != nil {
		s.AccessibilitySum += int64(*r.AccessibilityRating)
		s.AccessibilityCount++
	}
	if r.LegalStatus != nil {
		if s.LegalStatusCounts == nil {
			s.LegalStatusCounts = make(map[LegalStatus]int)
		}
		s.LegalStatusCounts[*r.LegalStatus]++
	}
}

// StatsOf summarizes reviews, optionally restricted to one mode.
func StatsOf(reviews []SpotReview, mode *TransportMode) ReviewStats {
	var s ReviewStats
	for _, r := range reviews {
		if mode != nil && r.TransportMode != *mode {
			continue
		}
		s.Add(r)
	}
	return s
}
