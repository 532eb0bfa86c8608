package domain

import (
	"time"

	"github.com/google/uuid"
)

type SafetyPriority string

const (
	SafetyHigh   SafetyPriority = "high"
	SafetyMedium SafetyPriority = "medium"
	SafetyLow    SafetyPriority = "low"
)

func (p SafetyPriority) Valid() bool {
	switch p {
	case SafetyHigh, SafetyMedium, SafetyLow:
		return true
	}
	return false
}

// MinSafetyRating returns the safety_rating floor implied by the priority.
// Low priority imposes no floor.
func (p SafetyPriority) MinSafetyRating() (float64, bool) {
	switch p {
	case SafetyHigh:
		return 4.0, true
	case SafetyMedium:
		return 2.5, true
	}
	return 0, false
}

// UserProfile is the one-to-one travel profile of a user.
type UserProfile struct {
	UserID           uuid.UUID      `json:"user_id" db:"user_id"`
	DisplayName      string         `json:"display_name" db:"display_name"`
	Username         string         `json:"username" db:"username"`
	TravelModes      TransportModes `json:"travel_modes" db:"-"`
	PrimaryMode      TransportMode  `json:"primary_mode" db:"primary_mode"`
	ShowAllSpots     bool           `json:"show_all_spots" db:"show_all_spots"`
	EmailVerified    bool           `json:"email_verified" db:"email_verified"`
	PhoneVerified    bool           `json:"phone_verified" db:"phone_verified"`
	SocialConnected  bool           `json:"social_connected" db:"social_connected"`
	CommunityVouches int            `json:"community_vouches" db:"community_vouches"`
	TotalReviews     int            `json:"total_reviews" db:"total_reviews"`
	HelpfulReviews   int            `json:"helpful_reviews" db:"helpful_reviews"`
	SpotsAdded       int            `json:"spots_added" db:"spots_added"`
	VerifiedSpots    int            `json:"verified_spots" db:"verified_spots"`
	ReviewerRating   float64        `json:"reviewer_rating" db:"reviewer_rating"`
	SafetyPriority   SafetyPriority `json:"safety_priority" db:"safety_priority"`
	CountriesVisited []string       `json:"countries_visited" db:"-"`
	Languages        []string       `json:"languages" db:"-"`
	TrustScore       int            `json:"trust_score" db:"trust_score"`
	MemberSince      time.Time      `json:"member_since" db:"member_since"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`
}

// MembershipDays counts whole days since the user joined.
func (p *UserProfile) MembershipDays(now time.Time) int {
	if p.MemberSince.IsZero() || now.Before(p.MemberSince) {
		return 0
	}
	return int(now.Sub(p.MemberSince).Hours() / 24)
}

// ProfileUpdate is a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	DisplayName      *string
	TravelModes      *TransportModes
	PrimaryMode      *TransportMode
	ShowAllSpots     *bool
	SafetyPriority   *SafetyPriority
	EmailVerified    *bool
	PhoneVerified    *bool
	SocialConnected  *bool
	ReviewerRating   *float64
	CountriesVisited *[]string
	Languages        *[]string
	TrustScore       *int
}

// Apply returns a copy of p with the update applied.
func (u ProfileUpdate) Apply(p UserProfile) UserProfile {
	if u.DisplayName != nil {
		p.DisplayName = *u.DisplayName
	}
	if u.TravelModes != nil {
		p.TravelModes = u.TravelModes.Normalize()
	}
	if u.PrimaryMode != nil {
		p.PrimaryMode = *u.PrimaryMode
	}
	if u.ShowAllSpots != nil {
		p.ShowAllSpots = *u.ShowAllSpots
	}
	if u.SafetyPriority != nil {
		p.SafetyPriority = *u.SafetyPriority
	}
	if u.EmailVerified != nil {
		p.EmailVerified = *u.EmailVerified
	}
	if u.PhoneVerified != nil {
		p.PhoneVerified = *u.PhoneVerified
	}
	if u.SocialConnected != nil {
		p.SocialConnected = *u.SocialConnected
	}
	if u.ReviewerRating != nil {
		p.ReviewerRating = *u.ReviewerRating
	}
	if u.CountriesVisited != nil {
		p.CountriesVisited = *u.CountriesVisited
	}
	if u.Languages != nil {
		p.Languages = *u.Languages
	}
	if u.TrustScore != nil {
		p.TrustScore = *u.TrustScore
	}
	return p
}

// IsEmpty reports whether the update touches nothing.
func (u ProfileUpdate) IsEmpty() bool {
	return u == ProfileUpdate{}
}

// CounterDelta increments profile counters atomically in the store.
type CounterDelta struct {
	TotalReviews     int
	HelpfulReviews   int
	SpotsAdded       int
	VerifiedSpots    int
	CommunityVouches int
}

// Preferences is the effective discovery filter derived from a profile. An
// empty TransportModes means no mode restriction.
type Preferences struct {
	TransportModes TransportModes `json:"transport_modes"`
	SafetyPriority SafetyPriority `json:"safety_priority"`
}

// DefaultPreferences is used for anonymous callers and users without a profile.
func DefaultPreferences() Preferences {
	return Preferences{
		TransportModes: TransportModes{},
		SafetyPriority: SafetyHigh,
	}
}

// Vouch is one user's endorsement of another user's profile.
type Vouch struct {
	UserID    uuid.UUID `json:"user_id"`
	VoucherID uuid.UUID `json:"voucher_id"`
}
