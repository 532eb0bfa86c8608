package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SpotType string

const (
	SpotHighwayEntrance SpotType = "highway_entrance"
	SpotRestStop        SpotType = "rest_stop"
	SpotGasStation      SpotType = "gas_station"
	SpotBridge          SpotType = "bridge"
	SpotRoundabout      SpotType = "roundabout"
	SpotParkingLot      SpotType = "parking_lot"
	SpotOther           SpotType = "other"
)

func (t SpotType) Valid() bool {
	switch t {
	case SpotHighwayEntrance, SpotRestStop, SpotGasStation, SpotBridge,
		SpotRoundabout, SpotParkingLot, SpotOther:
		return true
	}
	return false
}

// Spot is a geotagged waypoint with denormalized rating aggregates.
type Spot struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	Description    string         `json:"description,omitempty" db:"description"`
	Lat            float64        `json:"lat" db:"lat"`
	Lon            float64        `json:"lon" db:"lon"`
	SpotType       SpotType       `json:"spot_type" db:"spot_type"`
	TransportModes TransportModes `json:"transport_modes" db:"-"`
	SafetyRating   float64        `json:"safety_rating" db:"safety_rating"`
	OverallRating  float64        `json:"overall_rating" db:"overall_rating"`
	ModeRatings    ModeRatings    `json:"mode_ratings,omitempty" db:"mode_ratings"`
	TotalReviews   int            `json:"total_reviews" db:"total_reviews"`
	IsVerified     bool           `json:"is_verified" db:"is_verified"`
	IsActive       bool           `json:"is_active" db:"is_active"`
	CreatedBy      uuid.UUID      `json:"created_by" db:"created_by"`
	Creator        *Creator       `json:"creator,omitempty" db:"-"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`

	// DistanceKm is only set on proximity queries.
	DistanceKm *float64 `json:"distance_km,omitempty" db:"-"`
}

// Creator is the public summary of the user who added a spot.
type Creator struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Username    string    `json:"username"`
}

// ModeRating holds per-transport-mode statistics for one spot. Optional
// fields are nil until at least one review of the mode supplied them.
type ModeRating struct {
	Safety        float64      `json:"safety"`
	Effectiveness float64      `json:"effectiveness"`
	ReviewCount   int          `json:"review_count"`
	AvgWaitTime   *float64     `json:"avg_wait_time,omitempty"`
	LegalStatus   *LegalStatus `json:"legal_status,omitempty"`
	Facilities    *float64     `json:"facilities,omitempty"`
	Accessibility *float64     `json:"accessibility,omitempty"`
}

// ModeRatings is stored as a jsonb object keyed by mode.
type ModeRatings map[TransportMode]ModeRating

func (m ModeRatings) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *ModeRatings) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*m = ModeRatings{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("mode_ratings: unsupported type %T", src)
	}

	out := ModeRatings{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			return fmt.Errorf("mode_ratings: %w", err)
		}
	}
	*m = out
	return nil
}

// NewSpot is the input for creating a spot.
type NewSpot struct {
	Name           string
	Description    string
	Lat            float64
	Lon            float64
	SpotType       SpotType
	TransportModes TransportModes
	CreatedBy      uuid.UUID
}

// SpotRatingsUpdate is the derived state written back after a review.
type SpotRatingsUpdate struct {
	OverallRating float64
	SafetyRating  float64
	TotalReviews  int
	// ModeRatings contains only the modes being refreshed.
	ModeRatings ModeRatings
}

// SpotUpdate is a partial spot update; nil fields are left untouched.
type SpotUpdate struct {
	Name           *string
	Description    *string
	SpotType       *SpotType
	TransportModes *TransportModes
	IsVerified     *bool
	IsActive       *bool
}

func (u SpotUpdate) IsEmpty() bool {
	return u == SpotUpdate{}
}
