package dto

import (
	"github.com/google/uuid"
	"github.com/spot-discovery/internal/domain"
)

// FindSpotsRequest - параметры поиска спотов (query string)
type FindSpotsRequest struct {
	TransportModes []string `query:"transport_modes"`
	Lat            *float64 `query:"lat"`
	Lon            *float64 `query:"lon"`
	RadiusKm       *float64 `query:"radius_km"`
	SpotType       *string  `query:"spot_type"`
	MinRating      *float64 `query:"min_rating"`
	SafetyPriority *string  `query:"safety_priority"`
	Limit          *int     `query:"limit"`
	Offset         *int     `query:"offset"`
	UsePreferences *bool    `query:"use_preferences"`
}

// ToFilter converts query parameters into a discovery filter. Preferences are
// applied by default whenever the viewer is known.
func (r FindSpotsRequest) ToFilter(viewerID *uuid.UUID) domain.SpotFilter {
	f := domain.SpotFilter{
		TransportModes: domain.TransportModesFromStrings(r.TransportModes),
		Latitude:       r.Lat,
		Longitude:      r.Lon,
		RadiusKm:       r.RadiusKm,
		MinRating:      r.MinRating,
		Limit:          r.Limit,
		Offset:         r.Offset,
		ViewerID:       viewerID,
		UsePreferences: viewerID != nil,
	}
	if r.SpotType != nil {
		t := domain.SpotType(*r.SpotType)
		f.SpotType = &t
	}
	if r.SafetyPriority != nil {
		p := domain.SafetyPriority(*r.SafetyPriority)
		f.SafetyPriority = &p
	}
	if r.UsePreferences != nil {
		f.UsePreferences = *r.UsePreferences && viewerID != nil
	}
	return f
}

// CreateSpotRequest - создание спота
type CreateSpotRequest struct {
	Name           string   `json:"name" validate:"required,min=2,max=200"`
	Description    string   `json:"description" validate:"max=2000"`
	Lat            float64  `json:"lat" validate:"min=-90,max=90"`
	Lon            float64  `json:"lon" validate:"min=-180,max=180"`
	SpotType       string   `json:"spot_type" validate:"required,oneof=highway_entrance rest_stop gas_station bridge roundabout parking_lot other"`
	TransportModes []string `json:"transport_modes" validate:"required,min=1,dive,oneof=hitchhiking cycling van_life walking"`
}

// UpdateSpotRequest - частичное обновление спота
type UpdateSpotRequest struct {
	Name           *string   `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description    *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	SpotType       *string   `json:"spot_type,omitempty" validate:"omitempty,oneof=highway_entrance rest_stop gas_station bridge roundabout parking_lot other"`
	TransportModes *[]string `json:"transport_modes,omitempty" validate:"omitempty,min=1,dive,oneof=hitchhiking cycling van_life walking"`
	IsActive       *bool     `json:"is_active,omitempty"`
}

// SubmitReviewRequest - отзыв о споте для одного вида транспорта
type SubmitReviewRequest struct {
	TransportMode       string  `json:"transport_mode" validate:"required,oneof=hitchhiking cycling van_life walking"`
	SafetyRating        int     `json:"safety_rating" validate:"required,min=1,max=5"`
	EffectivenessRating int     `json:"effectiveness_rating" validate:"required,min=1,max=5"`
	OverallRating       int     `json:"overall_rating" validate:"required,min=1,max=5"`
	WaitTimeMinutes     *int    `json:"wait_time_minutes,omitempty" validate:"omitempty,min=0"`
	LegalStatus         *string `json:"legal_status,omitempty" validate:"omitempty,oneof=legal tolerated illegal unknown"`
	FacilityRating      *int    `json:"facility_rating,omitempty" validate:"omitempty,min=1,max=5"`
	AccessibilityRating *int    `json:"accessibility_rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment             string  `json:"comment" validate:"max=2000"`
}

// ListReviewsRequest - пагинация отзывов
type ListReviewsRequest struct {
	TransportMode *string `query:"transport_mode"`
	Limit         *int    `query:"limit"`
	Offset        *int    `query:"offset"`
}

// CreateProfileRequest - создание профиля путешественника
type CreateProfileRequest struct {
	DisplayName      string   `json:"display_name" validate:"max=100"`
	Username         string   `json:"username" validate:"omitempty,min=3,max=40,alphanum"`
	TravelModes      []string `json:"travel_modes" validate:"required,min=1,dive,oneof=hitchhiking cycling van_life walking"`
	PrimaryMode      string   `json:"primary_mode" validate:"omitempty,oneof=hitchhiking cycling van_life walking"`
	ShowAllSpots     bool     `json:"show_all_spots"`
	SafetyPriority   string   `json:"safety_priority" validate:"omitempty,oneof=high medium low"`
	CountriesVisited []string `json:"countries_visited" validate:"omitempty,dive,iso3166_1_alpha2"`
	Languages        []string `json:"languages" validate:"omitempty,dive,min=2,max=8"`
}

// UpdateProfileRequest - частичное обновление профиля; отсутствующие поля не меняются.
// Verification flags and reviewer_rating are owned by the identity layer and
// are not accepted here.
type UpdateProfileRequest struct {
	DisplayName      *string   `json:"display_name,omitempty" validate:"omitempty,max=100"`
	TravelModes      *[]string `json:"travel_modes,omitempty"`
	PrimaryMode      *string   `json:"primary_mode,omitempty"`
	ShowAllSpots     *bool     `json:"show_all_spots,omitempty"`
	SafetyPriority   *string   `json:"safety_priority,omitempty"`
	CountriesVisited *[]string `json:"countries_visited,omitempty" validate:"omitempty,dive,iso3166_1_alpha2"`
	Languages        *[]string `json:"languages,omitempty" validate:"omitempty,dive,min=2,max=8"`
}

// ToUpdate converts the request into a domain update. Enum values are
// checked by the use case so the caller gets a specific error.
func (r UpdateProfileRequest) ToUpdate() domain.ProfileUpdate {
	u := domain.ProfileUpdate{
		DisplayName:      r.DisplayName,
		ShowAllSpots:     r.ShowAllSpots,
		CountriesVisited: r.CountriesVisited,
		Languages:        r.Languages,
	}
	if r.TravelModes != nil {
		modes := domain.TransportModesFromStrings(*r.TravelModes)
		u.TravelModes = &modes
	}
	if r.PrimaryMode != nil {
		m := domain.TransportMode(*r.PrimaryMode)
		u.PrimaryMode = &m
	}
	if r.SafetyPriority != nil {
		p := domain.SafetyPriority(*r.SafetyPriority)
		u.SafetyPriority = &p
	}
	return u
}
