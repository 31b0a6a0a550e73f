package trygdetid

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"sedprefill/internal/eux"
	"sedprefill/internal/models"
	"sedprefill/pkg/requestcontext"
)

// =============================================================================
// Insurance-Period Timeline Test Suite
// =============================================================================

type TimelineSuite struct {
	suite.Suite
	cases *eux.MockClient
}

func TestTimelineSuite(t *testing.T) {
	suite.Run(t, new(TimelineSuite))
}

func (s *TimelineSuite) SetupTest() {
	s.cases = &eux.MockClient{}
}

func periodSED(items ...models.TrygdetidItem) models.SED {
	return models.SED{Pensjon: &models.Pensjon{Trygdetid: items}}
}

func (s *TimelineSuite) TestTimeline() {
	ctx := context.Background()

	s.Run("case without period reports yields an empty timeline", func() {
		s.cases.DocIndex = map[string][]eux.Document{"147729": {}}

		timeline, err := New(s.cases).Timeline(ctx, "147729", "")
		s.NoError(err)
		s.Equal("147729", timeline.RinaCaseID)
		s.NotNil(timeline.Periods)
		s.Empty(timeline.Periods)
	})

	s.Run("assembly reads the pinned request clock", func() {
		s.cases.DocIndex = map[string][]eux.Document{"147729": {}}
		at := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

		timeline, err := New(s.cases).Timeline(requestcontext.WithTime(ctx, at), "147729", "")
		s.NoError(err)
		s.Equal(at, timeline.FetchedAt)
	})

	s.Run("aggregates periods across documents in document order", func() {
		s.cases.DocIndex = map[string][]eux.Document{
			"147729": {
				{ID: "doc-1", Type: "P5000", Creator: models.Institution{Acronym: "NAVAT07", Country: "NO"}},
				{ID: "doc-x", Type: "P8000"},
				{ID: "doc-2", Type: "P5000", Creator: models.Institution{Acronym: "DRV", Country: "DE"}},
			},
		}
		s.cases.Contents = map[string]models.SED{
			"147729/doc-1": periodSED(
				models.TrygdetidItem{Land: "NO", Periode: models.Periode{Fom: "1980-01-01", Tom: "1999-12-31"}},
				models.TrygdetidItem{Land: "NO", Periode: models.Periode{Fom: "2005-01-01"}},
			),
			"147729/doc-2": periodSED(
				models.TrygdetidItem{Land: "DE", Periode: models.Periode{Fom: "2000-01-01", Tom: "2004-12-31"}},
			),
		}

		timeline, err := New(s.cases).Timeline(ctx, "147729", "")
		s.Require().NoError(err)
		s.Require().Len(timeline.Periods, 3)

		s.Equal("NO", timeline.Periods[0].Land)
		s.Equal("NAVAT07", timeline.Periods[0].ReportedBy)
		s.Equal("doc-1", timeline.Periods[0].DocumentID)
		// Overlapping reports are kept verbatim, in document order.
		s.Equal("DE", timeline.Periods[2].Land)
		s.Equal("DE", timeline.Periods[2].ReportedByCountry)
	})

	s.Run("claimant scope drops reports naming another claimant", func() {
		s.cases.DocIndex = map[string][]eux.Document{
			"147729": {
				{ID: "doc-1", Type: "P5000"},
				{ID: "doc-2", Type: "P5000"},
				{ID: "doc-3", Type: "P5000"},
			},
		}
		claimant := func(pin string, items ...models.TrygdetidItem) models.SED {
			sed := periodSED(items...)
			sed.Nav = &models.Nav{Bruker: &models.Bruker{Person: &models.Person{
				Pin: []models.PinItem{{Identifikator: pin}},
			}}}
			return sed
		}
		s.cases.Contents = map[string]models.SED{
			"147729/doc-1": claimant("12345678901", models.TrygdetidItem{Land: "NO"}),
			"147729/doc-2": claimant("10987654321", models.TrygdetidItem{Land: "SE"}),
			// No claimant identifier on the report keeps it in scope.
			"147729/doc-3": periodSED(models.TrygdetidItem{Land: "DE"}),
		}

		timeline, err := New(s.cases).Timeline(ctx, "147729", "12345678901")
		s.Require().NoError(err)
		s.Equal("12345678901", timeline.ClaimantPIN)
		s.Require().Len(timeline.Periods, 2)
		s.Equal("NO", timeline.Periods[0].Land)
		s.Equal("DE", timeline.Periods[1].Land)
	})

	s.Run("non-period documents are never fetched", func() {
		s.cases.DocIndex = map[string][]eux.Document{
			"147729": {{ID: "doc-9", Type: "P8000"}},
		}
		// doc-9 has no content registered; fetching it would error.

		timeline, err := New(s.cases).Timeline(ctx, "147729", "")
		s.NoError(err)
		s.Empty(timeline.Periods)
	})

	s.Run("cache hit skips reassembly", func() {
		cache := NewMemoryStore(time.Minute)
		svc := New(s.cases, WithCache(cache))

		s.cases.DocIndex = map[string][]eux.Document{
			"147729": {{ID: "doc-1", Type: "P5000"}},
		}
		s.cases.Contents = map[string]models.SED{
			"147729/doc-1": periodSED(models.TrygdetidItem{Land: "NO"}),
		}

		first, err := svc.Timeline(ctx, "147729", "")
		s.Require().NoError(err)
		s.Len(first.Periods, 1)

		// Redirect the index; a cached timeline must not notice.
		s.cases.DocIndex["147729"] = nil

		second, err := svc.Timeline(ctx, "147729", "")
		s.Require().NoError(err)
		s.Equal(first, second)

		// A differently scoped view is a different cache entry.
		scoped, err := svc.Timeline(ctx, "147729", "12345678901")
		s.Require().NoError(err)
		s.Empty(scoped.Periods)
	})
}

func (s *TimelineSuite) TestMemoryStore() {
	ctx := context.Background()

	s.Run("miss before set", func() {
		store := NewMemoryStore(time.Minute)
		_, ok, err := store.Get(ctx, "none", "")
		s.NoError(err)
		s.False(ok)
	})

	s.Run("entries expire after the TTL", func() {
		store := NewMemoryStore(time.Minute)
		now := time.Date(2021, 4, 2, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return now }

		s.NoError(store.Set(ctx, Timeline{RinaCaseID: "147729"}))

		_, ok, err := store.Get(ctx, "147729", "")
		s.NoError(err)
		s.True(ok)

		now = now.Add(2 * time.Minute)
		_, ok, err = store.Get(ctx, "147729", "")
		s.NoError(err)
		s.False(ok)
	})
}
