package prefill

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"sedprefill/internal/eux"
	"sedprefill/internal/kodeverk"
	"sedprefill/internal/models"
	"sedprefill/internal/pdl"
	"sedprefill/internal/pen"
	"sedprefill/internal/vedtak"
	"sedprefill/pkg/domain"
	dErrors "sedprefill/pkg/domain-errors"
	"sedprefill/pkg/platform/retry"
)

// =============================================================================
// Prefill Service Test Suite
// =============================================================================
// Justification for unit tests: the orchestration decides when degraded
// decision data is acceptable and when it must fail, which is hard to force
// through the HTTP surface without controlling the decision client.

type PrefillServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	pensions *pen.MockClient
	persons  *pdl.MockClient
	cases    *eux.MockClient
	service  *Service
}

func TestPrefillServiceSuite(t *testing.T) {
	suite.Run(t, new(PrefillServiceSuite))
}

func (s *PrefillServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.pensions = pen.NewMockClient(s.ctrl)
	s.persons = &pdl.MockClient{Records: map[string]pdl.PersonRecord{}}
	s.cases = &eux.MockClient{}

	var err error
	s.service, err = New(s.persons, s.pensions, s.cases, kodeverk.NewStaticResolver(),
		s.noDelayRetry()...)
	s.Require().NoError(err)
}

func (s *PrefillServiceSuite) noDelayRetry() []Option {
	return []Option{WithRetryPolicy(retry.Policy{MaxAttempts: 1})}
}

func (s *PrefillServiceSuite) context(sedType domain.SedType, opts ...models.ContextOption) models.PrefillContext {
	pc, err := models.NewPrefillContext("12345678901", "22915550", "147729", sedType, domain.BucP01, opts...)
	s.Require().NoError(err)
	return pc
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *PrefillServiceSuite) TestNew() {
	s.Run("nil person client returns error", func() {
		_, err := New(nil, s.pensions, s.cases, nil)
		s.Error(err)
		s.Contains(err.Error(), "person client is required")
	})

	s.Run("nil case client returns error", func() {
		_, err := New(s.persons, s.pensions, nil, nil)
		s.Error(err)
		s.Contains(err.Error(), "case client is required")
	})
}

// =============================================================================
// DispatchAndPrefill Tests
// =============================================================================

func (s *PrefillServiceSuite) TestDispatchAndPrefill() {
	ctx := context.Background()

	s.Run("old-age claim carries person, pension, and claim field", func() {
		received := time.Date(2020, 6, 20, 0, 0, 0, 0, time.UTC)
		s.pensions.EXPECT().Decision(gomock.Any(), "22915550", "").Return(pen.Pensjonsinformasjon{
			SakType:       "ALDER",
			Kravhistorikk: []pen.KravItem{{KravType: "F_BH_MED_UTL", MottattDato: &received}},
		}, nil)

		sed, err := s.service.DispatchAndPrefill(ctx, s.context(domain.SedP2000))
		s.Require().NoError(err)

		s.Equal("P2000", sed.Sed)
		s.Require().NotNil(sed.Nav)
		s.Equal("147729", sed.Nav.EESSISakID)
		s.Equal("Ola", sed.Nav.Bruker.Person.Fornavn)
		s.Require().NotNil(sed.Nav.Krav)
		s.Equal("2020-06-20", sed.Nav.Krav.Dato)
		s.NotNil(sed.Pensjon)
	})

	s.Run("absent decision data degrades to an empty pension block", func() {
		s.pensions.EXPECT().Decision(gomock.Any(), "22915550", "").
			Return(pen.Pensjonsinformasjon{}, pen.ErrNoDecisionData)

		sed, err := s.service.DispatchAndPrefill(ctx, s.context(domain.SedP3000))
		s.Require().NoError(err)

		s.Require().NotNil(sed.Pensjon)
		s.Empty(sed.Pensjon.Vedtak)
	})

	s.Run("decision document refuses to degrade", func() {
		s.pensions.EXPECT().Decision(gomock.Any(), "22915550", "").
			Return(pen.Pensjonsinformasjon{}, pen.ErrNoDecisionData)

		_, err := s.service.DispatchAndPrefill(ctx, s.context(domain.SedP6000))
		s.ErrorIs(err, vedtak.ErrDecisionDataMissing)
	})

	s.Run("pension skip never calls the decision system", func() {
		sed, err := s.service.DispatchAndPrefill(ctx,
			s.context(domain.SedP4000, models.WithSkipKeys(models.SkipPensionBlock)))
		s.Require().NoError(err)
		s.Nil(sed.Pensjon)
	})

	s.Run("caller-supplied partial payload replaces the computed field", func() {
		s.pensions.EXPECT().Decision(gomock.Any(), "22915550", "").
			Return(pen.Pensjonsinformasjon{}, pen.ErrNoDecisionData)

		raw := json.RawMessage(`{"gate":"Liveien 8","by":"Oslo","land":"NO"}`)
		sed, err := s.service.DispatchAndPrefill(ctx,
			s.context(domain.SedP2000, models.WithPartial(PartialKeyAdresse, raw)))
		s.Require().NoError(err)

		s.Require().NotNil(sed.Nav.Bruker.Adresse)
		s.Equal("Liveien 8", sed.Nav.Bruker.Adresse.Gate)
		s.Equal("Oslo", sed.Nav.Bruker.Adresse.By)
	})

	s.Run("unknown partial field key is rejected", func() {
		raw := json.RawMessage(`{}`)
		_, err := s.service.DispatchAndPrefill(ctx,
			s.context(domain.SedP8000,
				models.WithSkipKeys(models.SkipPensionBlock),
				models.WithPartial("vedtak", raw)))
		s.Error(err)
		s.Equal(dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	})

	s.Run("decision fetch failure propagates", func() {
		s.pensions.EXPECT().Decision(gomock.Any(), "22915550", "").
			Return(pen.Pensjonsinformasjon{}, dErrors.New(dErrors.CodeUpstream, "decision system unavailable"))

		_, err := s.service.DispatchAndPrefill(ctx, s.context(domain.SedP2000))
		s.Error(err)
		s.Equal(dErrors.CodeUpstream, dErrors.CodeOf(err))
	})

	s.Run("unavailable case action rejects without fetching", func() {
		s.cases.Available = map[string][]string{"147729": {"P5000"}}
		defer func() { s.cases.Available = nil }()

		_, err := s.service.DispatchAndPrefill(ctx, s.context(domain.SedP2000))
		s.Error(err)
		s.Equal(dErrors.CodeUnprocessable, dErrors.CodeOf(err))
	})

	s.Run("survivor claim resolves parents from family relations", func() {
		s.persons.Records = map[string]pdl.PersonRecord{
			"12345678901": {
				PIN:     "12345678901",
				Fornavn: "Per",
				Kjoenn:  "MANN",
				Relasjoner: []pdl.Relasjon{
					{Rolle: pdl.RolleMor, RelatertPIN: "201"},
					{Rolle: pdl.RolleFar, RelatertPIN: "202"},
				},
			},
			"201": {PIN: "201", Fornavn: "Kari", Kjoenn: "KVINNE", EtternavnVedFoedsel: "Olsen"},
			"202": {PIN: "202", Fornavn: "Odd", Kjoenn: "MANN", EtternavnVedFoedsel: "Bakken"},
		}
		s.pensions.EXPECT().Decision(gomock.Any(), "22915550", "").
			Return(pen.Pensjonsinformasjon{SakType: "GJENLEV"}, nil)

		sed, err := s.service.DispatchAndPrefill(ctx, s.context(domain.SedP2100))
		s.Require().NoError(err)

		s.Require().NotNil(sed.Nav.Bruker.Mor)
		s.Equal("Kari", sed.Nav.Bruker.Mor.Person.Fornavn)
		s.Empty(sed.Nav.Bruker.Mor.Person.EtternavnVedFoedsel)
		s.Require().NotNil(sed.Nav.Bruker.Far)
		s.Equal("Bakken", sed.Nav.Bruker.Far.Person.EtternavnVedFoedsel)
	})
}

// =============================================================================
// ClaimFacts Tests
// =============================================================================

func (s *PrefillServiceSuite) TestClaimFacts() {
	ctx := context.Background()

	caseSED := models.SED{
		Nav: &models.Nav{
			Bruker: &models.Bruker{Person: &models.Person{
				Pin: []models.PinItem{{Identifikator: "12345678901", Land: "NO"}},
			}},
			Krav: &models.Krav{Dato: "2021-04-02"},
		},
	}
	s.Run("computes disability claim facts from the document", func() {
		s.cases.DocIndex = map[string][]eux.Document{
			"147729": {{
				ID:         "doc-1",
				Type:       "P2200",
				LastUpdate: time.Date(2021, 4, 2, 9, 30, 0, 0, time.UTC),
			}},
		}
		s.cases.Contents = map[string]models.SED{"147729/doc-1": caseSED}

		facts, err := s.service.ClaimFacts(ctx, "147729", "doc-1", "")
		s.Require().NoError(err)

		s.Equal("2021-04-02", facts.MottattDato)
		s.Equal("2021-04-02", facts.FremsattKravdato)
		s.Equal("2021-01-01", facts.Iverksettelsesdato)
		// Case owner from the mock case detail; citizenship from the person
		// registry, widened to alpha-3.
		s.Equal("NO", facts.Kravland)
		s.Equal("NOR", facts.Statsborgerskap)
	})

	s.Run("unknown document is not found", func() {
		s.cases.DocIndex = map[string][]eux.Document{"147729": {}}

		_, err := s.service.ClaimFacts(ctx, "147729", "missing", "")
		s.Error(err)
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})

	s.Run("document without a claimant identifier is unprocessable", func() {
		s.cases.DocIndex = map[string][]eux.Document{
			"147729": {{ID: "doc-2", Type: "P5000", LastUpdate: time.Date(2021, 4, 2, 0, 0, 0, 0, time.UTC)}},
		}
		s.cases.Contents = map[string]models.SED{"147729/doc-2": {}}

		_, err := s.service.ClaimFacts(ctx, "147729", "doc-2", "")
		s.Error(err)
		s.Equal(dErrors.CodeUnprocessable, dErrors.CodeOf(err))
	})

	s.Run("deferral date seeds the old-age effective date", func() {
		deferred := time.Date(2021, 6, 16, 0, 0, 0, 0, time.UTC)
		oldAgeSED := caseSED
		s.cases.DocIndex = map[string][]eux.Document{
			"147729": {{ID: "doc-3", Type: "P2000", LastUpdate: time.Date(2021, 4, 2, 0, 0, 0, 0, time.UTC)}},
		}
		s.cases.Contents = map[string]models.SED{"147729/doc-3": oldAgeSED}
		s.pensions.EXPECT().Decision(gomock.Any(), "22915550", "").Return(pen.Pensjonsinformasjon{
			SakType:       "ALDER",
			Kravhistorikk: []pen.KravItem{{OnsketVirkning: &deferred}},
		}, nil)

		facts, err := s.service.ClaimFacts(ctx, "147729", "doc-3", "22915550")
		s.Require().NoError(err)
		s.Equal("2021-07-01", facts.Iverksettelsesdato)
	})
}
