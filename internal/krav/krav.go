// Package krav derives cross-border claim facts: received/effective/submitted
// dates, resolved marital status, and citizenship. The disability and old-age
// effective-date rules are deliberately separate rule sets - the asymmetry is
// a legal distinction, not an inconsistency.
package krav

import (
	"context"
	"time"

	"sedprefill/internal/kodeverk"
	"sedprefill/internal/models"
	"sedprefill/internal/pdl"
	"sedprefill/internal/prefill/person"
	"sedprefill/pkg/domain"
	dErrors "sedprefill/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// ErrDateParse marks a claim date that is absent or unparseable on a document
// type that requires it.
var ErrDateParse = dErrors.New(dErrors.CodeUnprocessable, "claim date missing or unparseable")

// Utland is the computed claim-facts record. Derived per request, never
// persisted, JSON-serializable for the claim-facts endpoint.
type Utland struct {
	MottattDato        string      `json:"mottattDato,omitempty"`
	Iverksettelsesdato string      `json:"iverksettelsesdato,omitempty"`
	FremsattKravdato   string      `json:"fremsattKravdato,omitempty"`
	Sivilstand         *Sivilstand `json:"sivilstand,omitempty"`
	Statsborgerskap    string      `json:"statsborgerskap,omitempty"` // ISO alpha-3
	Kravland           string      `json:"kravland,omitempty"`
}

// Sivilstand is the resolved marital status in local vocabulary. Absent when
// the history gives no dated answer: the claim record must show "unknown"
// rather than fabricate "unmarried".
type Sivilstand struct {
	Sivilstatus        string `json:"sivilstatus"`
	SivilstatusDatoFom string `json:"sivilstatusDatoFom,omitempty"`
}

// Input gathers everything claim computation needs; the caller owns the
// fetching.
type Input struct {
	Nav              *models.Nav
	Person           pdl.PersonRecord
	SedType          domain.SedType
	CaseOwnerCountry string
	LastUpdate       time.Time  // case's last document-update timestamp
	Utsettelse       *time.Time // requested deferral date, old-age claims
}

// Computer derives claim facts. The sandbox country override is fixed at
// construction so the environment branch stays out of the computation rules.
type Computer struct {
	resolver        kodeverk.Resolver
	overrideCountry string
	overrideActive  bool
}

// Option configures a Computer.
type Option func(*Computer)

// WithCountryOverride pins the case-owner country, used in sandbox
// environments where real participant data is unavailable.
func WithCountryOverride(country string) Option {
	return func(c *Computer) {
		c.overrideCountry = country
		c.overrideActive = true
	}
}

func NewComputer(resolver kodeverk.Resolver, opts ...Option) *Computer {
	c := &Computer{resolver: resolver}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute derives the claim facts for one case/document pair.
func (c *Computer) Compute(ctx context.Context, in Input) (Utland, error) {
	out := Utland{
		// Only the calendar date is legally relevant; the time portion and
		// zone are dropped deliberately.
		MottattDato: in.LastUpdate.Format(dateLayout),
		Kravland:    c.kravland(in.CaseOwnerCountry),
	}

	fremsatt, err := fremsattKravdato(in)
	if err != nil {
		return Utland{}, err
	}
	if fremsatt != nil {
		out.FremsattKravdato = fremsatt.Format(dateLayout)
	}

	effective, err := c.iverksettelsesdato(in, fremsatt)
	if err != nil {
		return Utland{}, err
	}
	if effective != nil {
		out.Iverksettelsesdato = effective.Format(dateLayout)
	}

	out.Sivilstand = ResolveSivilstand(in.Person.Sivilstand)

	if land := firstCitizenship(in.Person.Statsborgerskap); land != "" {
		alpha3, err := c.resolver.Alpha3(ctx, land)
		if err == nil {
			out.Statsborgerskap = alpha3
		}
	}
	return out, nil
}

func (c *Computer) kravland(caseOwnerCountry string) string {
	if c.overrideActive {
		return c.overrideCountry
	}
	return caseOwnerCountry
}

// claimSedTypes require a parseable claim date on the document.
var claimSedTypes = map[domain.SedType]bool{
	domain.SedP2000: true,
	domain.SedP2100: true,
	domain.SedP2200: true,
}

func fremsattKravdato(in Input) (*time.Time, error) {
	required := claimSedTypes[in.SedType]
	if in.Nav == nil || in.Nav.Krav == nil || in.Nav.Krav.Dato == "" {
		if required {
			return nil, ErrDateParse
		}
		return nil, nil
	}
	t, err := time.Parse(dateLayout, in.Nav.Krav.Dato)
	if err != nil {
		if required {
			return nil, dErrors.Wrap(err, dErrors.CodeUnprocessable, "claim date missing or unparseable")
		}
		return nil, nil
	}
	return &t, nil
}

// iverksettelsesdato computes the effective date. Disability and old-age
// claims follow distinct legal rules; other document types carry none.
func (c *Computer) iverksettelsesdato(in Input, fremsatt *time.Time) (*time.Time, error) {
	switch in.SedType {
	case domain.SedP2200:
		// Disability: first day of the month three calendar months before
		// the month the claim was submitted.
		if fremsatt == nil {
			return nil, ErrDateParse
		}
		d := time.Date(fremsatt.Year(), fremsatt.Month()-3, 1, 0, 0, 0, 0, time.UTC)
		return &d, nil
	case domain.SedP2000, domain.SedP2100:
		// Old-age (and survivor) rule: seeded from the deferral date when
		// present, with a day-of-month threshold; else the month after the
		// received date.
		if in.Utsettelse != nil {
			u := *in.Utsettelse
			if u.Day() <= 15 {
				d := time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
				return &d, nil
			}
			d := time.Date(u.Year(), u.Month()+1, 1, 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
		d := time.Date(in.LastUpdate.Year(), in.LastUpdate.Month()+1, 1, 0, 0, 0, 0, time.UTC)
		return &d, nil
	}
	return nil, nil
}

// ResolveSivilstand selects the latest-dated marital-status entry and maps it
// through the closed lookup table. An empty history, or a latest entry with no
// date, resolves to absent: the claim record shows unknown rather than a
// fabricated default.
func ResolveSivilstand(history []pdl.Sivilstand) *Sivilstand {
	if len(history) == 0 || history[len(history)-1].GyldigFom == nil {
		return nil
	}
	latest := &history[0]
	for i := range history {
		entry := &history[i]
		if entry.GyldigFom == nil {
			continue
		}
		if latest.GyldigFom == nil || entry.GyldigFom.After(*latest.GyldigFom) {
			latest = entry
		}
	}
	return &Sivilstand{
		Sivilstatus:        person.MapSivilstand(latest.Type),
		SivilstatusDatoFom: latest.GyldigFom.Format(dateLayout),
	}
}

func firstCitizenship(list []pdl.Statsborgerskap) string {
	for _, s := range list {
		if s.Land != "" {
			return s.Land
		}
	}
	return ""
}
