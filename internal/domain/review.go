package domain

import (
	"time"

	"github.com/google/uuid"
)

type LegalStatus string

const (
	LegalStatusLegal     LegalStatus = "legal"
	LegalStatusTolerated LegalStatus = "tolerated"
	LegalStatusIllegal   LegalStatus = "illegal"
	LegalStatusUnknown   LegalStatus = "unknown"
)

func (s LegalStatus) Valid() bool {
	switch s {
	case LegalStatusLegal, LegalStatusTolerated, LegalStatusIllegal, LegalStatusUnknown:
		return true
	}
	return false
}

// Restrictiveness orders statuses for tie-breaking; higher is stricter.
func (s LegalStatus) Restrictiveness() int {
	switch s {
	case LegalStatusIllegal:
		return 3
	case LegalStatusTolerated:
		return 2
	case LegalStatusLegal:
		return 1
	}
	return 0
}

// SpotReview is one user's review of a spot for one transport mode.
type SpotReview struct {
	ID                  uuid.UUID     `json:"id" db:"id"`
	SpotID              uuid.UUID     `json:"spot_id" db:"spot_id"`
	UserID              uuid.UUID     `json:"user_id" db:"user_id"`
	TransportMode       TransportMode `json:"transport_mode" db:"transport_mode"`
	SafetyRating        int           `json:"safety_rating" db:"safety_rating"`
	EffectivenessRating int           `json:"effectiveness_rating" db:"effectiveness_rating"`
	OverallRating       int           `json:"overall_rating" db:"overall_rating"`
	WaitTimeMinutes     *int          `json:"wait_time_minutes,omitempty" db:"wait_time_minutes"`
	LegalStatus         *LegalStatus  `json:"legal_status,omitempty" db:"legal_status"`
	FacilityRating      *int          `json:"facility_rating,omitempty" db:"facility_rating"`
	AccessibilityRating *int          `json:"accessibility_rating,omitempty" db:"accessibility_rating"`
	Comment             string        `json:"comment,omitempty" db:"comment"`
	HelpfulVotes        int           `json:"helpful_votes" db:"helpful_votes"`
	CreatedAt           time.Time     `json:"created_at" db:"created_at"`
}

// HelpfulVoteResult reports the state after a helpful vote.
type HelpfulVoteResult struct {
	ReviewID     uuid.UUID `json:"review_id"`
	AuthorID     uuid.UUID `json:"-"`
	HelpfulVotes int       `json:"helpful_votes"`
	Recorded     bool      `json:"-"`
}
