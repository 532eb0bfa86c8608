package usecase

import (
	"time"

	"github.com/spot-discovery/internal/domain"
)

type badgeFamily struct {
	prefix     string
	category   domain.BadgeCategory
	metric     func(p *domain.UserProfile, now time.Time) int
	thresholds [3]int // bronze, silver, gold
}

var badgeTiers = [3]domain.BadgeTier{domain.TierBronze, domain.TierSilver, domain.TierGold}

var badgeCatalogue = []badgeFamily{
	{
		prefix:     "helpful_reviewer",
		category:   domain.BadgeCategoryReviewer,
		metric:     func(p *domain.UserProfile, _ time.Time) int { return p.HelpfulReviews },
		thresholds: [3]int{5, 25, 100},
	},
	{
		prefix:     "spot_contributor",
		category:   domain.BadgeCategoryContributor,
		metric:     func(p *domain.UserProfile, _ time.Time) int { return p.SpotsAdded },
		thresholds: [3]int{1, 10, 50},
	},
	{
		prefix:     "spot_verifier",
		category:   domain.BadgeCategoryContributor,
		metric:     func(p *domain.UserProfile, _ time.Time) int { return p.VerifiedSpots },
		thresholds: [3]int{1, 10, 25},
	},
	{
		prefix:     "globetrotter",
		category:   domain.BadgeCategoryExplorer,
		metric:     func(p *domain.UserProfile, _ time.Time) int { return len(p.CountriesVisited) },
		thresholds: [3]int{3, 10, 25},
	},
	{
		prefix:     "multi_modal",
		category:   domain.BadgeCategoryExplorer,
		metric:     func(p *domain.UserProfile, _ time.Time) int { return len(p.TravelModes.Normalize()) },
		thresholds: [3]int{2, 3, 4},
	},
	{
		prefix:     "polyglot",
		category:   domain.BadgeCategoryCommunity,
		metric:     func(p *domain.UserProfile, _ time.Time) int { return len(p.Languages) },
		thresholds: [3]int{2, 3, 5},
	},
	{
		prefix:     "veteran",
		category:   domain.BadgeCategoryCommunity,
		metric:     func(p *domain.UserProfile, now time.Time) int { return p.MembershipDays(now) },
		thresholds: [3]int{90, 365, 1095},
	},
	{
		prefix:     "vouched",
		category:   domain.BadgeCategoryTrust,
		metric:     func(p *domain.UserProfile, _ time.Time) int { return p.CommunityVouches },
		thresholds: [3]int{1, 5, 10},
	},
}

// EligibleBadges lists every badge whose threshold the profile meets. Tiers
// are cumulative: a gold-level counter yields bronze, silver and gold.
func EligibleBadges(p *domain.UserProfile, now time.Time) []*domain.Badge {
	var out []*domain.Badge
	for fi, family := range badgeCatalogue {
		value := family.metric(p, now)
		for ti, threshold := range family.thresholds {
			if value < threshold {
				break
			}
			tier := badgeTiers[ti]
			out = append(out, &domain.Badge{
				UserID:    p.UserID,
				BadgeKey:  family.prefix + "_" + string(tier),
				Category:  family.category,
				Tier:      &tier,
				SortOrder: fi*10 + ti,
			})
		}
	}
	return out
}
