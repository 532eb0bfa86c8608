package domain

import "github.com/google/uuid"

// SpotFilter is the caller-facing discovery filter. Nil fields are unset.
type SpotFilter struct {
	TransportModes TransportModes
	Latitude       *float64
	Longitude      *float64
	RadiusKm       *float64
	SpotType       *SpotType
	MinRating      *float64
	SafetyPriority *SafetyPriority
	Limit          *int
	Offset         *int

	// ViewerID identifies the caller; when UsePreferences is set, unset mode
	// and safety fields are filled from the viewer's profile.
	ViewerID       *uuid.UUID
	UsePreferences bool
}

// SpotQuery is a validated, fully resolved filter handed to the store.
type SpotQuery struct {
	TransportModes  TransportModes
	Near            *Point
	RadiusKm        float64
	SpotType        *SpotType
	MinRating       *float64
	MinSafetyRating *float64
	Limit           int
	Offset          int
}

// SpotPage is one page of discovery results.
type SpotPage struct {
	Spots  []*Spot `json:"spots"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}
