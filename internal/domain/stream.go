package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamProfileChanged = "stream:profile:changed"
)

// Reasons attached to profile-changed events.
const (
	ReasonReviewSubmitted = "review_submitted"
	ReasonReviewHelpful   = "review_marked_helpful"
	ReasonSpotAdded       = "spot_added"
	ReasonSpotVerified    = "spot_verified"
	ReasonProfileUpdated  = "profile_updated"
	ReasonProfileCreated  = "profile_created"
	ReasonCommunityVouch  = "community_vouch"
)

// ProfileChangedEvent is published after any committed write that can move a
// profile counter; the badge worker re-evaluates trust and badges on it.
type ProfileChangedEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StreamMessage is one entry read from a Redis Stream.
type StreamMessage struct {
	ID   string
	Data string
}
