package dto

import (
	"github.com/google/uuid"
	"github.com/spot-discovery/internal/domain"
)

// ReviewStatsResponse - агрегат отзывов спота (опционально по виду транспорта)
type ReviewStatsResponse struct {
	SpotID        uuid.UUID             `json:"spot_id"`
	TransportMode *domain.TransportMode `json:"transport_mode,omitempty"`
	ReviewCount   int                   `json:"review_count"`
	OverallRating float64               `json:"overall_rating"`
	SafetyRating  float64               `json:"safety_rating"`
	Effectiveness float64               `json:"effectiveness"`
	AvgWaitTime   *float64              `json:"avg_wait_time,omitempty"`
	LegalStatus   *domain.LegalStatus   `json:"legal_status,omitempty"`
	Facilities    *float64              `json:"facilities,omitempty"`
	Accessibility *float64              `json:"accessibility,omitempty"`
}

type ReviewListResponse struct {
	Reviews []*domain.SpotReview `json:"reviews"`
	Total   int                  `json:"total"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
}

type TrustScoreResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	TrustScore int       `json:"trust_score"`
}

type BadgeEvaluationResponse struct {
	UserID  uuid.UUID       `json:"user_id"`
	Awarded []*domain.Badge `json:"awarded"`
}

// ProfileResponse - профиль вместе с полученными значками
type ProfileResponse struct {
	*domain.UserProfile
	Badges []*domain.Badge `json:"badges"`
}
