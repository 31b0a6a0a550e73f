// Package pen talks to the pension decision system and defines the decision
// record ("Pensjonsinformasjon") consumed by the computation modules.
package pen

import "time"

// Pensjonsinformasjon is the decision record for one case. Fetched fresh per
// request, read-only afterwards.
type Pensjonsinformasjon struct {
	SakType            string // raw case type; parsed into domain.SakType by consumers
	Vilkarsvurderinger []Vilkarsvurdering
	YtelsePerMaaneder  []YtelsePerMaaned
	Kravhistorikk      []KravItem
	Avdod              *AvdodInfo
}

// Vilkarsvurdering is one eligibility assessment with denial sub-reasons.
type Vilkarsvurdering struct {
	Resultat string // INNVILGET or AVSLAG

	// Denial sub-flags feeding the fallback rejection classifier. They are
	// only meaningful when Resultat is AVSLAG.
	HensiktsmessigBehandling bool // reasonable-treatment criterion considered unmet
	AlderskravOppfylt        bool // age criterion met
	LavOpptjening            bool // little or no accrual
	UnderMinsteTrygdetid     bool // insurance period below legal minimum
	AvdodUnderEttAar         bool // deceased insured less than one year
}

// Assessment results.
const (
	ResultatInnvilget = "INNVILGET"
	ResultatAvslag    = "AVSLAG"
)

// YtelsePerMaaned is one interval of the benefit calculation history. The
// source system emits these chronologically ordered and non-overlapping, but
// consumers treat the list defensively.
type YtelsePerMaaned struct {
	Fom             time.Time
	Tom             *time.Time // nil for the open-ended current interval
	BeloepBrutto    int64      // gross monthly amount, whole kroner
	Grunnpensjon    int64
	Tilleggspensjon int64
}

// KravItem is one claim in the case history.
type KravItem struct {
	KravType       string
	MottattDato    *time.Time
	OnsketVirkning *time.Time // requested deferral/start date, old-age claims
}

// AvdodInfo carries survivor-case facts about the deceased.
type AvdodInfo struct {
	PIN          string
	Doedsdato    *time.Time
	TrygdetidAar int
}
