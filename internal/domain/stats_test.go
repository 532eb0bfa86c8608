package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsOf(t *testing.T) {
	wait := 30
	facility := 4
	illegal := LegalStatusIllegal
	reviews := []SpotReview{
		{TransportMode: ModeHitchhiking, SafetyRating: 4, EffectivenessRating: 5, OverallRating: 4, WaitTimeMinutes: &wait},
		{TransportMode: ModeHitchhiking, SafetyRating: 2, EffectivenessRating: 3, OverallRating: 3},
		{TransportMode: ModeCycling, SafetyRating: 5, EffectivenessRating: 5, OverallRating: 5, FacilityRating: &facility},
		{TransportMode: ModeVanLife, SafetyRating: 3, EffectivenessRating: 2, OverallRating: 2, LegalStatus: &illegal},
	}

	all := StatsOf(reviews, nil)
	assert.Equal(t, 4, all.Count)
	assert.Equal(t, int64(14), all.SafetySum)
	assert.Equal(t, int64(14), all.OverallSum)
	assert.Equal(t, 1, all.FacilityCount)
	assert.Equal(t, map[LegalStatus]int{LegalStatusIllegal: 1}, all.LegalStatusCounts)

	mode := ModeHitchhiking
	hh := StatsOf(reviews, &mode)
	assert.Equal(t, 2, hh.Count)
	assert.Equal(t, int64(6), hh.SafetySum)
	assert.Equal(t, int64(30), hh.WaitTimeSum)
	assert.Equal(t, 1, hh.WaitTimeCount)
	assert.Nil(t, hh.LegalStatusCounts)
}
