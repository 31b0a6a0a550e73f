package domain

import dErrors "sedprefill/pkg/domain-errors"

// SakType classifies a pension case in the national decision system.
//
// The set is closed because the decision-type code on an outgoing document is
// legally significant: an unrecognized case type is a hard error, never a
// default (see internal/vedtak).
type SakType string

const (
	SakAlder   SakType = "ALDER"   // old-age pension
	SakUforep  SakType = "UFOREP"  // disability pension
	SakGjenlev SakType = "GJENLEV" // survivor pension
)

var validSakTypes = map[SakType]bool{
	SakAlder: true, SakUforep: true, SakGjenlev: true,
}

// ParseSakType constructs a SakType from upstream decision data.
//
// Errors: returns CodeUnprocessable for anything outside the closed set;
// a document cannot legally be issued without this classification.
func ParseSakType(s string) (SakType, error) {
	t := SakType(s)
	if !t.IsValid() {
		return "", dErrors.Newf(dErrors.CodeUnprocessable, "unknown case type %q", s)
	}
	return t, nil
}

func (t SakType) IsValid() bool {
	return validSakTypes[t]
}

func (t SakType) String() string {
	return string(t)
}
