// Package kodeverk resolves country codes between the local alpha-2
// vocabulary and the alpha-3 vocabulary used on cross-border documents.
package kodeverk

import (
	"context"

	dErrors "sedprefill/pkg/domain-errors"
)

// Resolver translates country codes. Implementations must be safe for
// concurrent use and hold no per-request mutable state.
type Resolver interface {
	Alpha3(ctx context.Context, alpha2 string) (string, error)
	Alpha2(ctx context.Context, alpha3 string) (string, error)
}

// StaticResolver resolves against a fixed table covering the EU/EEA exchange
// area. The table is immutable after construction.
type StaticResolver struct {
	toAlpha3 map[string]string
	toAlpha2 map[string]string
}

// NewStaticResolver builds the default resolver.
func NewStaticResolver() *StaticResolver {
	toAlpha3 := map[string]string{
		"AT": "AUT", "BE": "BEL", "BG": "BGR", "CH": "CHE", "CY": "CYP",
		"CZ": "CZE", "DE": "DEU", "DK": "DNK", "EE": "EST", "ES": "ESP",
		"FI": "FIN", "FR": "FRA", "GB": "GBR", "GR": "GRC", "HR": "HRV",
		"HU": "HUN", "IE": "IRL", "IS": "ISL", "IT": "ITA", "LI": "LIE",
		"LT": "LTU", "LU": "LUX", "LV": "LVA", "MT": "MLT", "NL": "NLD",
		"NO": "NOR", "PL": "POL", "PT": "PRT", "RO": "ROU", "SE": "SWE",
		"SI": "SVN", "SK": "SVK",
	}
	toAlpha2 := make(map[string]string, len(toAlpha3))
	for a2, a3 := range toAlpha3 {
		toAlpha2[a3] = a2
	}
	return &StaticResolver{toAlpha3: toAlpha3, toAlpha2: toAlpha2}
}

func (r *StaticResolver) Alpha3(_ context.Context, alpha2 string) (string, error) {
	if a3, ok := r.toAlpha3[alpha2]; ok {
		return a3, nil
	}
	return "", dErrors.Newf(dErrors.CodeUnprocessable, "unknown country code %q", alpha2)
}

func (r *StaticResolver) Alpha2(_ context.Context, alpha3 string) (string, error) {
	if a2, ok := r.toAlpha2[alpha3]; ok {
		return a2, nil
	}
	return "", dErrors.Newf(dErrors.CodeUnprocessable, "unknown country code %q", alpha3)
}
