package postgres_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/spot-discovery/internal/domain"
	apperrors "github.com/spot-discovery/internal/pkg/errors"
	"github.com/spot-discovery/internal/repository/postgres/testhelpers"
	"github.com/spot-discovery/internal/usecase"
)

// SpotStoreSuite exercises the repositories against a real PostGIS database
type SpotStoreSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repos  *testhelpers.Repositories
	ctx    context.Context
}

func TestSpotStoreSuite(t *testing.T) {
	suite.Run(t, new(SpotStoreSuite))
}

func (s *SpotStoreSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())
	s.Require().NoError(testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations"))
	s.repos = testhelpers.NewRepositories(s.testDB.DB, s.testDB.Logger)
}

func (s *SpotStoreSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *SpotStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.Require().NoError(s.testDB.Cleanup(s.ctx))
}

func (s *SpotStoreSuite) review(spotID, userID uuid.UUID, mode domain.TransportMode, safety, overall int) *domain.SpotReview {
	r := &domain.SpotReview{
		ID:                  uuid.New(),
		SpotID:              spotID,
		UserID:              userID,
		TransportMode:       mode,
		SafetyRating:        safety,
		EffectivenessRating: overall,
		OverallRating:       overall,
	}
	s.Require().NoError(s.repos.Reviews.Create(s.ctx, r))
	return r
}

func (s *SpotStoreSuite) TestFind_RadiusAndModes() {
	author := testhelpers.CreateProfile(s.T(), s.repos.Profiles, domain.ModeHitchhiking)
	berlin := domain.Point{Lat: 52.52, Lon: 13.405}

	near := testhelpers.CreateSpot(s.T(), s.repos.Spots, author.UserID, "A10 on-ramp", berlin, domain.ModeHitchhiking)
	testhelpers.CreateSpot(s.T(), s.repos.Spots, author.UserID, "Bike shelter", berlin, domain.ModeCycling)
	testhelpers.CreateSpot(s.T(), s.repos.Spots, author.UserID, "Hamburg services", domain.Point{Lat: 53.55, Lon: 9.99}, domain.ModeHitchhiking)

	q := domain.SpotQuery{
		TransportModes: domain.TransportModes{domain.ModeHitchhiking},
		Near:           &berlin,
		RadiusKm:       10,
		Limit:          20,
	}

	spots, err := s.repos.Spots.Find(s.ctx, q)
	s.Require().NoError(err)
	s.Require().Len(spots, 1)
	s.Equal(near.ID, spots[0].ID)
	s.Require().NotNil(spots[0].DistanceKm)
	s.InDelta(0, *spots[0].DistanceKm, 0.01)

	total, err := s.repos.Spots.Count(s.ctx, q)
	s.Require().NoError(err)
	s.Equal(1, total)
}

// One degree of latitude is about 111.2 km, so 0.009 degrees is about 1 km.
const degPerKm = 0.009

func (s *SpotStoreSuite) north(from domain.Point, km float64) domain.Point {
	return domain.Point{Lat: from.Lat + km*degPerKm, Lon: from.Lon}
}

func (s *SpotStoreSuite) setCreatedAt(id uuid.UUID, at time.Time) {
	_, err := s.testDB.DB.ExecContext(s.ctx, `UPDATE spots SET created_at = $2 WHERE id = $1`, id, at)
	s.Require().NoError(err)
}

func (s *SpotStoreSuite) ids(spots []*domain.Spot) []uuid.UUID {
	out := make([]uuid.UUID, len(spots))
	for i, sp := range spots {
		out[i] = sp.ID
	}
	return out
}

func (s *SpotStoreSuite) TestFind_NearestFirstWithinRadius() {
	author := testhelpers.CreateProfile(s.T(), s.repos.Profiles, domain.ModeHitchhiking)
	vienna := domain.Point{Lat: 48.2082, Lon: 16.3738}

	// Inserted out of distance order.
	five := testhelpers.CreateSpot(s.T(), s.repos.Spots, author.UserID, "5 km", s.north(vienna, 5), domain.ModeHitchhiking)
	testhelpers.CreateSpot(s.T(), s.repos.Spots, author.UserID, "20 km", s.north(vienna, 20), domain.ModeHitchhiking)
	one := testhelpers.CreateSpot(s.T(), s.repos.Spots, author.UserID, "1 km", s.north(vienna, 1), domain.ModeHitchhiking)

	q := domain.SpotQuery{Near: &vienna, RadiusKm: 10, Limit: 20}

	spots, err := s.repos.Spots.Find(s.ctx, q)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{one.ID, five.ID}, s.ids(spots))
	s.InDelta(1.0, *spots[0].DistanceKm, 0.05)
	s.InDelta(5.0, *spots[1].DistanceKm, 0.1)

	total, err := s.repos.Spots.Count(s.ctx, q)
	s.Require().NoError(err)
	s.Equal(2, total)
}

func (s *SpotStoreSuite) TestFind_InactiveSpotsExcluded() {
	author := testhelpers.CreateProfile(s.T(), s.repos.Profiles, domain.ModeCycling)
	graz := domain.Point{Lat: 47.0707, Lon: 15.4395}

	active := testhelpers.CreateSpot(s.T(), s.repos.Spots, author.UserID, "Open shelter", s.north(graz, 2), domain.ModeCycling)
	closed := testhelpers.CreateSpot(s.T(), s.repos.Spots, author.UserID, "Closed shelter", s.north(graz, 1), domain.ModeCycling)
	_, err := s.testDB.DB.ExecContext(s.ctx, `UPDATE spots SET is_active = FALSE WHERE id = $1`, closed.ID)
	s.Require().NoError(err)

	q := domain.SpotQuery{Near: &graz, RadiusKm: 10, Limit: 20}

	spots, err := s.repos.Spots.Find(s.ctx, q)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{active.ID}, s.ids(spots))
	for _, sp := range spots {
		s.True(sp.IsActive)
	}

	total, err := s.repos.Spots.Count(s.ctx, q)
	s.Require().NoError(err)
	s.Equal(1, total)
}

func (s *SpotStoreSuite) TestFind_EqualDistanceTieBreakAcrossPages() {
	author := testhelpers.CreateProfile(s.T(), s.repos.Profiles, domain.ModeWalking)
	here := domain.Point{Lat: 46.948, Lon: 7.4474}

	spots := make([]*domain.Spot, 4)
	for i := range spots {
		spots[i] = testhelpers.CreateSpot(s.T(), s.repos.Spots, author.UserID, fmt.Sprintf("Bench %d", i), here, domain.ModeWalking)
	}

	// Creation times run against insertion order; two spots share a timestamp.
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.setCreatedAt(spots[3].ID, t0)
	s.setCreatedAt(spots[1].ID, t0.Add(time.Minute))
	s.setCreatedAt(spots[2].ID, t0.Add(time.Minute))
	s.setCreatedAt(spots[0].ID, t0.Add(2*time.Minute))

	tied := []uuid.UUID{spots[1].ID, spots[2].ID}
	sort.Slice(tied, func(i, j int) bool { return tied[i].String() < tied[j].String() })
	want := []uuid.UUID{spots[3].ID, tied[0], tied[1], spots[0].ID}

	q := domain.SpotQuery{Near: &here, RadiusKm: 1, Limit: 2}
	first, err := s.repos.Spots.Find(s.ctx, q)
	s.Require().NoError(err)

	q.Offset = 2
	second, err := s.repos.Spots.Find(s.ctx, q)
	s.Require().NoError(err)

	s.Equal(want[:2], s.ids(first))
	s.Equal(want[2:], s.ids(second))
}

func (s *SpotStoreSuite) TestFind_LimitCapsPageButNotTotal() {
	author := testhelpers.CreateProfile(s.T(), s.repos.Profiles, domain.ModeVanLife)
	lyon := domain.Point{Lat: 45.764, Lon: 4.8357}

	for i := 0; i < 150; i++ {
		at := domain.Point{Lat: lyon.Lat + float64(i%15)*0.001, Lon: lyon.Lon + float64(i/15)*0.001}
		testhelpers.CreateSpot(s.T(), s.repos.Spots, author.UserID, fmt.Sprintf("Pitch %03d", i), at, domain.ModeVanLife)
	}

	q := domain.SpotQuery{
		TransportModes: domain.TransportModes{domain.ModeVanLife},
		Near:           &lyon,
		RadiusKm:       10,
		Limit:          usecase.MaxSpotLimit,
	}

	spots, err := s.repos.Spots.Find(s.ctx, q)
	s.Require().NoError(err)
	s.Len(spots, 100)
	for i := 1; i < len(spots); i++ {
		s.LessOrEqual(*spots[i-1].DistanceKm, *spots[i].DistanceKm)
	}

	total, err := s.repos.Spots.Count(s.ctx, q)
	s.Require().NoError(err)
	s.Equal(150, total)
}

func (s *SpotStoreSuite) TestVouch_CountsOncePerVoucher() {
	user := testhelpers.CreateProfile(s.T(), s.repos.Profiles, domain.ModeHitchhiking)
	voucher := testhelpers.CreateProfile(s.T(), s.repos.Profiles, domain.ModeHitchhiking)

	recorded, err := s.repos.Profiles.AddVouch(s.ctx, user.UserID, voucher.UserID)
	s.Require().NoError(err)
	s.True(recorded)

	recorded, err = s.repos.Profiles.AddVouch(s.ctx, user.UserID, voucher.UserID)
	s.Require().NoError(err)
	s.False(recorded)

	_, err = s.repos.Profiles.AddVouch(s.ctx, user.UserID, user.UserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.repos.Profiles.AddVouch(s.ctx, user.UserID, uuid.New())
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SpotStoreSuite) TestReviews_RecomputeMatchesRescan() {
	author := testhelpers.CreateProfile(s.T(), s.repos.Profiles, domain.ModeHitchhiking)
	spot := testhelpers.CreateSpot(s.T(), s.repos.Spots, author.UserID, "Rest stop", domain.Point{Lat: 48.1, Lon: 11.6},
		domain.ModeHitchhiking, domain.ModeCycling)

	hitch := domain.ModeHitchhiking
	scores := []struct{ safety, overall int }{{5, 4}, {3, 3}, {4, 5}}
	for _, sc := range scores {
		reviewer := testhelpers.CreateProfile(s.T(), s.repos.Profiles, domain.ModeHitchhiking)
		s.review(spot.ID, reviewer.UserID, hitch, sc.safety, sc.overall)

		_, err := s.repos.Ratings.RecomputeSpot(s.ctx, spot.ID, domain.TransportModes{hitch}, usecase.ComputeSpotRatings)
		s.Require().NoError(err)
	}

	stats, err := s.repos.Ratings.Stats(s.ctx, spot.ID, nil)
	s.Require().NoError(err)
	s.Equal(3, stats.Count)

	got, err := s.repos.Spots.GetByID(s.ctx, spot.ID)
	s.Require().NoError(err)
	s.Equal(3, got.TotalReviews)
	s.Equal(4.0, got.OverallRating)
	s.Equal(4.0, got.SafetyRating)
	s.Equal(3, got.ModeRatings[hitch].ReviewCount)
	_, hasCycling := got.ModeRatings[domain.ModeCycling]
	s.False(hasCycling)
}

func (s *SpotStoreSuite) TestReviews_DuplicateIsConflict() {
	author := testhelpers.CreateProfile(s.T(), s.repos.Profiles, domain.ModeWalking)
	spot := testhelpers.CreateSpot(s.T(), s.repos.Spots, author.UserID, "Trailhead", domain.Point{Lat: 46.5, Lon: 8.0}, domain.ModeWalking)

	s.review(spot.ID, author.UserID, domain.ModeWalking, 4, 4)

	err := s.repos.Reviews.Create(s.ctx, &domain.SpotReview{
		ID:                  uuid.New(),
		SpotID:              spot.ID,
		UserID:              author.UserID,
		TransportMode:       domain.ModeWalking,
		SafetyRating:        1,
		EffectivenessRating: 1,
		OverallRating:       1,
	})
	s.Equal(apperrors.CodeConflict, apperrors.KindOf(err))
}

func (s *SpotStoreSuite) TestHelpfulVote_CountsOncePerVoter() {
	author := testhelpers.CreateProfile(s.T(), s.repos.Profiles, domain.ModeVanLife)
	voter := testhelpers.CreateProfile(s.T(), s.repos.Profiles, domain.ModeVanLife)
	spot := testhelpers.CreateSpot(s.T(), s.repos.Spots, author.UserID, "Lakeside lot", domain.Point{Lat: 45.9, Lon: 6.1}, domain.ModeVanLife)
	r := s.review(spot.ID, author.UserID, domain.ModeVanLife, 5, 5)

	first, err := s.repos.Reviews.AddHelpfulVote(s.ctx, r.ID, voter.UserID)
	s.Require().NoError(err)
	s.True(first.Recorded)
	s.Equal(1, first.HelpfulVotes)
	s.Equal(author.UserID, first.AuthorID)

	second, err := s.repos.Reviews.AddHelpfulVote(s.ctx, r.ID, voter.UserID)
	s.Require().NoError(err)
	s.False(second.Recorded)
	s.Equal(1, second.HelpfulVotes)
}

func (s *SpotStoreSuite) TestBadges_AwardIsIdempotent() {
	p := testhelpers.CreateProfile(s.T(), s.repos.Profiles, domain.ModeCycling)
	newBadge := func() *domain.Badge {
		return &domain.Badge{
			ID:       uuid.New(),
			UserID:   p.UserID,
			BadgeKey: "multi_modal",
			Category: domain.BadgeCategoryExplorer,
		}
	}

	inserted, err := s.repos.Badges.Award(s.ctx, p.UserID, []*domain.Badge{newBadge()})
	s.Require().NoError(err)
	s.Len(inserted, 1)

	again, err := s.repos.Badges.Award(s.ctx, p.UserID, []*domain.Badge{newBadge()})
	s.Require().NoError(err)
	s.Empty(again)

	held, err := s.repos.Badges.ListByUser(s.ctx, p.UserID)
	s.Require().NoError(err)
	s.Len(held, 1)
}
