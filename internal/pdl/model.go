// Package pdl talks to the person data provider. It returns normalized,
// read-only person records fetched fresh per request.
package pdl

import "time"

// PersonRecord is the normalized person view used by prefill. Read-only.
type PersonRecord struct {
	PIN                 string
	Fornavn             string
	Etternavn           string
	EtternavnVedFoedsel string
	Foedselsdato        *time.Time
	Doedsdato           *time.Time
	Kjoenn              string // local codes: MANN, KVINNE
	Adressebeskyttelse  bool   // discretion code: suppress all address data
	Statsborgerskap     []Statsborgerskap
	Sivilstand          []Sivilstand
	Relasjoner          []Relasjon
	Adresser            Adresser
}

// Statsborgerskap is one citizenship entry with its validity window.
type Statsborgerskap struct {
	Land      string // ISO alpha-2
	GyldigFom *time.Time
	GyldigTom *time.Time
}

// Sivilstand is one marital-status entry. The history is ordered by GyldigFom
// by the provider; consumers still select defensively by date.
type Sivilstand struct {
	Type      string // local codes: UGIFT, GIFT, SKILT, ...
	GyldigFom *time.Time
}

// Relasjon links the person to a family member by role.
type Relasjon struct {
	Rolle       string // MOR, FAR, BARN
	RelatertPIN string
}

// Family relation roles.
const (
	RolleMor  = "MOR"
	RolleFar  = "FAR"
	RolleBarn = "BARN"
)

// Adresser carries at most the variants the provider knows for the person.
// Prefill evaluates them in a fixed precedence order.
type Adresser struct {
	Doedsbo           *DoedsboAdresse    // deceased-estate contact address
	VegadresseInnland *Vegadresse        // structured domestic street address
	FriAdresseInnland *FriAdresse        // freeform domestic postal address
	VegadresseUtland  *UtenlandskAdresse // structured foreign address
	FriAdresseUtland  *FriAdresse        // freeform foreign address
}

// Vegadresse is a structured domestic street address.
type Vegadresse struct {
	Gate       string
	Husnummer  string
	Postnummer string
	Poststed   string
}

// UtenlandskAdresse is a structured foreign address.
type UtenlandskAdresse struct {
	Gate       string
	Bygning    string
	By         string
	Postkode   string
	Region     string
	Land       string // ISO alpha-2
}

// FriAdresse is a freeform postal address, domestic or foreign.
type FriAdresse struct {
	Linje1 string
	Linje2 string
	Linje3 string
	Land   string // ISO alpha-2, empty for domestic
}

// DoedsboAdresse is the estate contact address registered after death.
type DoedsboAdresse struct {
	Kontaktperson string
	Adresselinje1 string
	Adresselinje2 string
	Postnummer    string
	Poststed      string
	Land          string
}
