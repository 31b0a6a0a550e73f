// Package prefill selects and runs the assembly procedure for a requested
// document type, merging person and pension data into a SED instance.
package prefill

import (
	"context"

	"sedprefill/internal/eux"
	"sedprefill/internal/models"
	"sedprefill/internal/pdl"
	"sedprefill/internal/pen"
	"sedprefill/pkg/domain"
)

// Input carries everything a strategy needs. All fetching happens before
// dispatch; strategies are pure assembly.
type Input struct {
	Context models.PrefillContext
	Person  pdl.PersonRecord
	Avdod   *pdl.PersonRecord
	Mor     *pdl.PersonRecord
	Far     *pdl.PersonRecord
	// Decision is nil when suppressed or degraded; the pipeline decides how
	// that shows on the document.
	Decision *pen.Pensjonsinformasjon
	Case     eux.CaseDetail
}

// Strategy assembles one document type.
type Strategy interface {
	Name() string
	Prefill(ctx context.Context, pipeline *Pipeline, in Input) (*models.SED, error)
}

// StrategyFor maps every member of the closed SED-type enumeration onto
// exactly one strategy. Unmapped members fall back to the default merge
// strategy; the dispatcher itself never fails for any enum member. Validation
// of the raw type happens earlier, at ParseSedType.
func StrategyFor(sedType domain.SedType) Strategy {
	switch sedType {
	case domain.SedP2000:
		return &claimStrategy{sedType: sedType, kravType: kravTypeAlder}
	case domain.SedP2100:
		return &claimStrategy{sedType: sedType, kravType: kravTypeGjenlev}
	case domain.SedP2200:
		return &claimStrategy{sedType: sedType, kravType: kravTypeUfore}
	case domain.SedP6000:
		return &decisionStrategy{}
	case domain.SedP8000, domain.SedP10000:
		return &personOnlyStrategy{sedType: sedType}
	case domain.SedP3000, domain.SedP4000, domain.SedP5000, domain.SedP7000,
		domain.SedP9000, domain.SedP11000, domain.SedP12000, domain.SedP14000,
		domain.SedP15000, domain.SedX010:
		return &defaultStrategy{sedType: sedType}
	}
	// Outside the closed enumeration; reachable only by bypassing
	// ParseSedType.
	return &defaultStrategy{sedType: sedType}
}
