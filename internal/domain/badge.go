package domain

import (
	"time"

	"github.com/google/uuid"
)

type BadgeCategory string

const (
	BadgeCategoryTrust       BadgeCategory = "trust"
	BadgeCategoryReviewer    BadgeCategory = "reviewer"
	BadgeCategoryContributor BadgeCategory = "contributor"
	BadgeCategoryExplorer    BadgeCategory = "explorer"
	BadgeCategoryCommunity   BadgeCategory = "community"
)

type BadgeTier string

const (
	TierBronze BadgeTier = "bronze"
	TierSilver BadgeTier = "silver"
	TierGold   BadgeTier = "gold"
)

// Badge is a permanent achievement; badge_key is unique per user.
type Badge struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	UserID    uuid.UUID     `json:"user_id" db:"user_id"`
	BadgeKey  string        `json:"badge_key" db:"badge_key"`
	Category  BadgeCategory `json:"category" db:"category"`
	Tier      *BadgeTier    `json:"tier,omitempty" db:"tier"`
	SortOrder int           `json:"sort_order" db:"sort_order"`
	EarnedAt  time.Time     `json:"earned_at" db:"earned_at"`
}
