// Package vedtak implements the pension-decision computation rules: decision
// classification, the dated benefit-period breakdown, and the standardized
// rejection-reason fallback classifier.
//
// This is pure domain logic - no I/O, no side effects. Missing decision data
// for a required computation is a typed error, never a default: the codes
// computed here are legally significant.
package vedtak

import (
	"sort"
	"time"

	"sedprefill/internal/pen"
	"sedprefill/pkg/domain"
	dErrors "sedprefill/pkg/domain-errors"
)

// ErrDecisionDataMissing marks a decision record that lacks data a required
// computation needs. Callers decide whether to degrade or fail.
var ErrDecisionDataMissing = dErrors.New(dErrors.CodeUnprocessable, "decision record is missing required data")

// Decision-type codes on outgoing documents.
const (
	TypeAlder   = "01"
	TypeUfore   = "02"
	TypeGjenlev = "03"
)

// Decision result codes.
const (
	ResultatInnvilgelse = "01"
	ResultatAvslag      = "02"
)

// Standardized rejection-reason codes. The set is closed.
const (
	AvslagLavOpptjening            = "01" // little or no accrual
	AvslagAlderskrav               = "02" // age criterion not met
	AvslagKortTrygdetid            = "03" // insurance period below legal minimum
	AvslagAvdodKortOpptjening      = "04" // deceased insured less than one year
	AvslagGjenlev                  = "05" // survivor-specific, other grounds
	AvslagAnnet                    = "06" // other grounds
	AvslagHensiktsmessigBehandling = "08" // reasonable treatment not completed
)

// Classify maps a case type to its 2-digit decision-type code. An
// unrecognized case type is a hard error: a document cannot legally be issued
// without this classification.
func Classify(rawSakType string) (string, error) {
	sakType, err := domain.ParseSakType(rawSakType)
	if err != nil {
		return "", err
	}
	switch sakType {
	case domain.SakAlder:
		return TypeAlder, nil
	case domain.SakUforep:
		return TypeUfore, nil
	case domain.SakGjenlev:
		return TypeGjenlev, nil
	}
	// Unreachable: ParseSakType enforces the closed set.
	return "", dErrors.Newf(dErrors.CodeUnprocessable, "unknown case type %q", rawSakType)
}

// Entry is one amount-bearing interval of the benefit breakdown.
type Entry struct {
	Fom             time.Time
	Tom             *time.Time // nil for the open-ended current interval
	BeloepBrutto    int64
	Grunnpensjon    int64
	Tilleggspensjon int64
}

// Breakdown is the ordered benefit-period list, earliest first.
type Breakdown []Entry

// BuildBreakdown walks the benefit calculation history in reverse
// chronological order and emits one entry per interval where the monthly
// amount changes; consecutive intervals with identical amounts are merged.
// The source system orders the history by construction, but the list is
// re-sorted defensively so the output is stable regardless of input order.
func BuildBreakdown(info pen.Pensjonsinformasjon) Breakdown {
	history := make([]pen.YtelsePerMaaned, len(info.YtelsePerMaaneder))
	copy(history, info.YtelsePerMaaneder)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Fom.After(history[j].Fom)
	})

	var out Breakdown
	for _, item := range history {
		if len(out) > 0 && sameAmount(out[len(out)-1], item) {
			// Merge into the current group: extend its start backwards.
			out[len(out)-1].Fom = item.Fom
			continue
		}
		out = append(out, Entry{
			Fom:             item.Fom,
			Tom:             item.Tom,
			BeloepBrutto:    item.BeloepBrutto,
			Grunnpensjon:    item.Grunnpensjon,
			Tilleggspensjon: item.Tilleggspensjon,
		})
	}

	// The reverse scan built the list latest-first; the breakdown contract
	// is earliest-first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func sameAmount(e Entry, item pen.YtelsePerMaaned) bool {
	return e.BeloepBrutto == item.BeloepBrutto &&
		e.Grunnpensjon == item.Grunnpensjon &&
		e.Tilleggspensjon == item.Tilleggspensjon
}

// Current selects the single scalar "current benefit amount" entry: the last
// element in chronological order, i.e. the open-ended one or the one with the
// latest start.
func Current(b Breakdown) (Entry, error) {
	if len(b) == 0 {
		return Entry{}, ErrDecisionDataMissing
	}
	return b[len(b)-1], nil
}

// DenialReason derives the standardized rejection-reason code. It fires only
// when an eligibility assessment is denied AND the calculation history is
// empty - a fallback classifier for decisions with no benefit history to
// infer a reason from structurally. Returns ok=false when the rule does not
// apply.
func DenialReason(info pen.Pensjonsinformasjon) (code string, ok bool, err error) {
	if len(info.YtelsePerMaaneder) > 0 {
		return "", false, nil
	}
	denied, found := deniedAssessment(info)
	if !found {
		return "", false, nil
	}

	sakType, err := domain.ParseSakType(info.SakType)
	if err != nil {
		return "", false, err
	}

	switch sakType {
	case domain.SakAlder:
		switch {
		case denied.LavOpptjening:
			return AvslagLavOpptjening, true, nil
		case denied.UnderMinsteTrygdetid:
			return AvslagKortTrygdetid, true, nil
		case !denied.AlderskravOppfylt:
			return AvslagAlderskrav, true, nil
		}
		return AvslagAnnet, true, nil
	case domain.SakUforep:
		switch {
		case denied.HensiktsmessigBehandling:
			return AvslagHensiktsmessigBehandling, true, nil
		case denied.UnderMinsteTrygdetid:
			return AvslagKortTrygdetid, true, nil
		case !denied.AlderskravOppfylt:
			return AvslagAlderskrav, true, nil
		}
		return AvslagAnnet, true, nil
	case domain.SakGjenlev:
		if denied.AvdodUnderEttAar {
			return AvslagAvdodKortOpptjening, true, nil
		}
		return AvslagGjenlev, true, nil
	}
	return "", false, dErrors.Newf(dErrors.CodeUnprocessable, "unknown case type %q", info.SakType)
}

func deniedAssessment(info pen.Pensjonsinformasjon) (pen.Vilkarsvurdering, bool) {
	for _, v := range info.Vilkarsvurderinger {
		if v.Resultat == pen.ResultatAvslag {
			return v, true
		}
	}
	return pen.Vilkarsvurdering{}, false
}
