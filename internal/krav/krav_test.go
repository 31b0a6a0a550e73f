package krav

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"sedprefill/internal/kodeverk"
	"sedprefill/internal/models"
	"sedprefill/internal/pdl"
	"sedprefill/pkg/domain"
	dErrors "sedprefill/pkg/domain-errors"
)

// =============================================================================
// Claim Computation Test Suite
// =============================================================================
// The date rules here are legally defined; the tests pin exact calendar
// results, including the day-of-month threshold boundary.

type KravSuite struct {
	suite.Suite
	computer *Computer
}

func TestKravSuite(t *testing.T) {
	suite.Run(t, new(KravSuite))
}

func (s *KravSuite) SetupTest() {
	s.computer = NewComputer(kodeverk.NewStaticResolver())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func navWithClaimDate(dato string) *models.Nav {
	return &models.Nav{Krav: &models.Krav{Dato: dato}}
}

// =============================================================================
// Received and Submitted Date Tests
// =============================================================================

func (s *KravSuite) TestReceivedDate() {
	s.Run("drops the time portion of the case timestamp", func() {
		out, err := s.computer.Compute(context.Background(), Input{
			SedType:    domain.SedP3000,
			LastUpdate: time.Date(2020, 10, 1, 17, 22, 9, 0, time.UTC),
		})
		s.NoError(err)
		s.Equal("2020-10-01", out.MottattDato)
	})
}

func (s *KravSuite) TestSubmittedDate() {
	s.Run("claim documents require a parseable claim date", func() {
		_, err := s.computer.Compute(context.Background(), Input{
			SedType:    domain.SedP2000,
			Nav:        navWithClaimDate(""),
			LastUpdate: date(2020, 10, 1),
		})
		s.Error(err)
		s.Equal(dErrors.CodeUnprocessable, dErrors.CodeOf(err))
	})

	s.Run("unparseable claim date on a claim document is an error", func() {
		_, err := s.computer.Compute(context.Background(), Input{
			SedType:    domain.SedP2200,
			Nav:        navWithClaimDate("01.04.2021"),
			LastUpdate: date(2021, 4, 2),
		})
		s.Error(err)
		s.Equal(dErrors.CodeUnprocessable, dErrors.CodeOf(err))
	})

	s.Run("non-claim documents leave the claim date absent", func() {
		out, err := s.computer.Compute(context.Background(), Input{
			SedType:    domain.SedP5000,
			LastUpdate: date(2020, 10, 1),
		})
		s.NoError(err)
		s.Empty(out.FremsattKravdato)
		s.Empty(out.Iverksettelsesdato)
	})
}

// =============================================================================
// Effective Date Tests
// =============================================================================

func (s *KravSuite) TestEffectiveDateDisability() {
	s.Run("first of the month three months before the claim month", func() {
		out, err := s.computer.Compute(context.Background(), Input{
			SedType:    domain.SedP2200,
			Nav:        navWithClaimDate("2021-04-02"),
			LastUpdate: date(2021, 4, 2),
		})
		s.NoError(err)
		s.Equal("2021-04-02", out.FremsattKravdato)
		s.Equal("2021-01-01", out.Iverksettelsesdato)
	})

	s.Run("rolls across year boundaries", func() {
		out, err := s.computer.Compute(context.Background(), Input{
			SedType:    domain.SedP2200,
			Nav:        navWithClaimDate("2021-02-15"),
			LastUpdate: date(2021, 2, 15),
		})
		s.NoError(err)
		s.Equal("2020-11-01", out.Iverksettelsesdato)
	})
}

func (s *KravSuite) TestEffectiveDateOldAge() {
	s.Run("deferral day 15 keeps the same month", func() {
		out, err := s.computer.Compute(context.Background(), Input{
			SedType:    domain.SedP2000,
			Nav:        navWithClaimDate("2020-06-20"),
			LastUpdate: date(2020, 10, 1),
			Utsettelse: datePtr(2021, 3, 15),
		})
		s.NoError(err)
		s.Equal("2021-03-01", out.Iverksettelsesdato)
	})

	s.Run("deferral day 16 moves to the next month", func() {
		out, err := s.computer.Compute(context.Background(), Input{
			SedType:    domain.SedP2000,
			Nav:        navWithClaimDate("2020-06-20"),
			LastUpdate: date(2020, 10, 1),
			Utsettelse: datePtr(2021, 3, 16),
		})
		s.NoError(err)
		s.Equal("2021-04-01", out.Iverksettelsesdato)
	})

	s.Run("without deferral uses the month after the received date", func() {
		out, err := s.computer.Compute(context.Background(), Input{
			SedType:    domain.SedP2000,
			Nav:        navWithClaimDate("2020-06-20"),
			LastUpdate: date(2020, 12, 7),
		})
		s.NoError(err)
		s.Equal("2021-01-01", out.Iverksettelsesdato)
	})
}

// =============================================================================
// Marital Status Tests
// =============================================================================

func (s *KravSuite) TestResolveSivilstand() {
	s.Run("selects the latest-dated entry mapped to document codes", func() {
		history := []pdl.Sivilstand{
			{Type: "UGIFT", GyldigFom: datePtr(1990, 5, 1)},
			{Type: "GIFT", GyldigFom: datePtr(2006, 1, 3)},
		}
		resolved := ResolveSivilstand(history)
		s.Require().NotNil(resolved)
		s.Equal("gift", resolved.Sivilstatus)
		s.Equal("2006-01-03", resolved.SivilstatusDatoFom)
	})

	s.Run("empty history resolves to absent", func() {
		s.Nil(ResolveSivilstand(nil))
	})

	s.Run("dateless latest entry resolves to absent", func() {
		history := []pdl.Sivilstand{
			{Type: "GIFT", GyldigFom: datePtr(2006, 1, 3)},
			{Type: "SKILT"},
		}
		s.Nil(ResolveSivilstand(history))
	})

	s.Run("unknown status code maps to blank, not an error", func() {
		history := []pdl.Sivilstand{
			{Type: "UOPPGITT", GyldigFom: datePtr(2010, 2, 2)},
		}
		resolved := ResolveSivilstand(history)
		s.Require().NotNil(resolved)
		s.Empty(resolved.Sivilstatus)
		s.Equal("2010-02-02", resolved.SivilstatusDatoFom)
	})
}

// =============================================================================
// Claim Country and Citizenship Tests
// =============================================================================

func (s *KravSuite) TestClaimCountry() {
	s.Run("uses the case owner country", func() {
		out, err := s.computer.Compute(context.Background(), Input{
			SedType:          domain.SedP5000,
			CaseOwnerCountry: "DE",
			LastUpdate:       date(2020, 10, 1),
		})
		s.NoError(err)
		s.Equal("DE", out.Kravland)
	})

	s.Run("sandbox override replaces the case owner country", func() {
		computer := NewComputer(kodeverk.NewStaticResolver(), WithCountryOverride("SE"))
		out, err := computer.Compute(context.Background(), Input{
			SedType:          domain.SedP5000,
			CaseOwnerCountry: "DE",
			LastUpdate:       date(2020, 10, 1),
		})
		s.NoError(err)
		s.Equal("SE", out.Kravland)
	})
}

func (s *KravSuite) TestCitizenship() {
	s.Run("first citizenship resolves to alpha-3", func() {
		out, err := s.computer.Compute(context.Background(), Input{
			SedType: domain.SedP5000,
			Person: pdl.PersonRecord{
				Statsborgerskap: []pdl.Statsborgerskap{{Land: "NO"}},
			},
			LastUpdate: date(2020, 10, 1),
		})
		s.NoError(err)
		s.Equal("NOR", out.Statsborgerskap)
	})

	s.Run("unknown country leaves the code absent", func() {
		out, err := s.computer.Compute(context.Background(), Input{
			SedType: domain.SedP5000,
			Person: pdl.PersonRecord{
				Statsborgerskap: []pdl.Statsborgerskap{{Land: "XX"}},
			},
			LastUpdate: date(2020, 10, 1),
		})
		s.NoError(err)
		s.Empty(out.Statsborgerskap)
	})
}
