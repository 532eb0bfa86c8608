package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSafetyPriority_MinSafetyRating(t *testing.T) {
	floor, ok := SafetyHigh.MinSafetyRating()
	assert.True(t, ok)
	assert.Equal(t, 4.0, floor)

	floor, ok = SafetyMedium.MinSafetyRating()
	assert.True(t, ok)
	assert.Equal(t, 2.5, floor)

	_, ok = SafetyLow.MinSafetyRating()
	assert.False(t, ok)
}

func TestUserProfile_MembershipDays(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	p := &UserProfile{MemberSince: now.Add(-36 * time.Hour)}
	assert.Equal(t, 1, p.MembershipDays(now))

	p = &UserProfile{MemberSince: now.Add(time.Hour)}
	assert.Equal(t, 0, p.MembershipDays(now))

	assert.Equal(t, 0, (&UserProfile{}).MembershipDays(now))
}

func TestProfileUpdate_Apply(t *testing.T) {
	base := UserProfile{
		DisplayName:    "Ana",
		TravelModes:    TransportModes{ModeHitchhiking},
		PrimaryMode:    ModeHitchhiking,
		SafetyPriority: SafetyHigh,
	}

	modes := TransportModes{ModeWalking, ModeCycling, ModeWalking}
	primary := ModeCycling
	got := ProfileUpdate{TravelModes: &modes, PrimaryMode: &primary}.Apply(base)

	assert.Equal(t, TransportModes{ModeCycling, ModeWalking}, got.TravelModes)
	assert.Equal(t, ModeCycling, got.PrimaryMode)
	assert.Equal(t, "Ana", got.DisplayName)
	assert.Equal(t, TransportModes{ModeHitchhiking}, base.TravelModes)
}

func TestProfileUpdate_IsEmpty(t *testing.T) {
	assert.True(t, ProfileUpdate{}.IsEmpty())

	show := true
	assert.False(t, ProfileUpdate{ShowAllSpots: &show}.IsEmpty())
}
