package domain

import dErrors "sedprefill/pkg/domain-errors"

// SedType is a domain value identifying a structured cross-border document
// type within a pension case exchange.
// Invariant: the value must be one of the supported SED types.
//
// Usage: construct via ParseSedType at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type SedType string

// Supported SED types. The set is closed: the dispatcher switches
// exhaustively over these members and never errors for any of them.
const (
	SedP2000  SedType = "P2000"  // old-age pension claim
	SedP2100  SedType = "P2100"  // survivor pension claim
	SedP2200  SedType = "P2200"  // disability pension claim
	SedP3000  SedType = "P3000"  // country-specific information
	SedP4000  SedType = "P4000"  // residence and work history
	SedP5000  SedType = "P5000"  // insurance/membership periods
	SedP6000  SedType = "P6000"  // pension decision
	SedP7000  SedType = "P7000"  // summary of decisions
	SedP8000  SedType = "P8000"  // request for additional information
	SedP9000  SedType = "P9000"  // reply to request for information
	SedP10000 SedType = "P10000" // transfer of additional information
	SedP11000 SedType = "P11000" // request for pension amount
	SedP12000 SedType = "P12000" // reply with pension amount
	SedP14000 SedType = "P14000" // personal circumstances
	SedP15000 SedType = "P15000" // transfer of pension case
	SedX010   SedType = "X010"   // reminder reply
)

// validSedTypes is the single source of truth for the closed enumeration.
var validSedTypes = map[SedType]bool{
	SedP2000: true, SedP2100: true, SedP2200: true, SedP3000: true,
	SedP4000: true, SedP5000: true, SedP6000: true, SedP7000: true,
	SedP8000: true, SedP9000: true, SedP10000: true, SedP11000: true,
	SedP12000: true, SedP14000: true, SedP15000: true, SedX010: true,
}

// ParseSedType constructs a SedType from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or outside the
// closed enumeration; no other errors are expected.
func ParseSedType(s string) (SedType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "sed type cannot be empty")
	}
	t := SedType(s)
	if !t.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unsupported sed type %q", s)
	}
	return t, nil
}

// IsValid checks membership in the closed enumeration.
func (t SedType) IsValid() bool {
	return validSedTypes[t]
}

// String returns the wire representation.
func (t SedType) String() string {
	return string(t)
}

// All returns every supported SED type in a stable order. Used by the
// dispatcher tests to prove exhaustiveness.
func AllSedTypes() []SedType {
	return []SedType{
		SedP2000, SedP2100, SedP2200, SedP3000, SedP4000, SedP5000,
		SedP6000, SedP7000, SedP8000, SedP9000, SedP10000, SedP11000,
		SedP12000, SedP14000, SedP15000, SedX010,
	}
}
