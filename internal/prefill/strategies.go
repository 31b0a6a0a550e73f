package prefill

import (
	"context"

	"sedprefill/internal/models"
	"sedprefill/internal/vedtak"
	"sedprefill/pkg/domain"
)

const dateLayout = "2006-01-02"

// Document claim-type codes set by the claim strategies.
const (
	kravTypeAlder   = "01"
	kravTypeGjenlev = "02"
	kravTypeUfore   = "03"
)

// defaultStrategy performs the generic person/pension merge with no
// document-type-specific rules.
type defaultStrategy struct {
	sedType domain.SedType
}

func (s *defaultStrategy) Name() string { return "default" }

func (s *defaultStrategy) Prefill(_ context.Context, pipeline *Pipeline, in Input) (*models.SED, error) {
	sed := models.NewSED(s.sedType.String())
	sed.Nav = pipeline.NavBlock(in)
	sed.Pensjon = pipeline.PensionBlock(in)
	return sed, nil
}

// personOnlyStrategy covers information-request documents that never carry
// pension data.
type personOnlyStrategy struct {
	sedType domain.SedType
}

func (s *personOnlyStrategy) Name() string { return "person-only" }

func (s *personOnlyStrategy) Prefill(_ context.Context, pipeline *Pipeline, in Input) (*models.SED, error) {
	sed := models.NewSED(s.sedType.String())
	sed.Nav = pipeline.NavBlock(in)
	return sed, nil
}

// claimStrategy covers the claim documents (old-age, survivor, disability):
// the generic merge plus the claim field seeded from the decision system's
// claim history.
type claimStrategy struct {
	sedType  domain.SedType
	kravType string
}

func (s *claimStrategy) Name() string { return "claim-" + s.kravType }

func (s *claimStrategy) Prefill(_ context.Context, pipeline *Pipeline, in Input) (*models.SED, error) {
	sed := models.NewSED(s.sedType.String())
	sed.Nav = pipeline.NavBlock(in)
	sed.Pensjon = pipeline.PensionBlock(in)

	kravField := &models.Krav{Type: s.kravType}
	if in.Decision != nil {
		if received := latestClaimDate(in); received != "" {
			kravField.Dato = received
		}
	}
	if sed.Nav == nil {
		sed.Nav = &models.Nav{EESSISakID: in.Context.RinaCaseID}
	}
	sed.Nav.Krav = kravField
	return sed, nil
}

func latestClaimDate(in Input) string {
	var latest string
	for _, k := range in.Decision.Kravhistorikk {
		if k.MottattDato == nil {
			continue
		}
		if d := k.MottattDato.Format(dateLayout); d > latest {
			latest = d
		}
	}
	return latest
}

// decisionStrategy covers P6000. A decision document without decision data is
// legally meaningless, so missing data propagates instead of degrading.
type decisionStrategy struct{}

func (s *decisionStrategy) Name() string { return "decision" }

func (s *decisionStrategy) Prefill(_ context.Context, pipeline *Pipeline, in Input) (*models.SED, error) {
	sed := models.NewSED(domain.SedP6000.String())
	sed.Nav = pipeline.NavBlock(in)

	if in.Context.Skips(models.SkipPensionBlock) {
		return sed, nil
	}
	if in.Decision == nil {
		return nil, vedtak.ErrDecisionDataMissing
	}

	item, err := vedtak.BuildVedtakItem(*in.Decision)
	if err != nil {
		return nil, err
	}
	sed.Pensjon = &models.Pensjon{Vedtak: []models.VedtakItem{item}}
	return sed, nil
}
