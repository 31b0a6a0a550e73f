// Package models holds the SED document tree exchanged with the case system
// and the per-request prefill context. The SED shape mirrors the external
// document schema; prefill only fills it in, it does not own the format.
package models

// SED is one structured cross-border document instance. Nav carries the
// person block, Pensjon the pension block; either may be absent depending on
// document type and skip instructions.
type SED struct {
	Sed     string   `json:"sed"`
	SedGVer string   `json:"sedGVer"`
	SedVer  string   `json:"sedVer"`
	Nav     *Nav     `json:"nav,omitempty"`
	Pensjon *Pensjon `json:"pensjon,omitempty"`
}

// NewSED returns a document shell for the given type with schema version
// fields populated.
func NewSED(sedType string) *SED {
	return &SED{Sed: sedType, SedGVer: "4", SedVer: "2"}
}

// Nav is the person block shared by most document types.
type Nav struct {
	EESSISakID string  `json:"eessisak,omitempty"`
	Bruker     *Bruker `json:"bruker,omitempty"`
	Krav       *Krav   `json:"krav,omitempty"`
}

// Bruker is a person participating in the case together with address and
// parent details where the document type requires them.
type Bruker struct {
	Person  *Person   `json:"person,omitempty"`
	Adresse *Adresse  `json:"adresse,omitempty"`
	Mor     *Forelder `json:"mor,omitempty"`
	Far     *Forelder `json:"far,omitempty"`
}

// Person carries identity fields in document vocabulary.
type Person struct {
	Fornavn             string                `json:"fornavn,omitempty"`
	Etternavn           string                `json:"etternavn,omitempty"`
	EtternavnVedFoedsel string                `json:"etternavnvedfoedsel,omitempty"`
	Foedselsdato        string                `json:"foedselsdato,omitempty"`
	Doedsdato           string                `json:"doedsdato,omitempty"`
	Kjoenn              string                `json:"kjoenn,omitempty"`
	Pin                 []PinItem             `json:"pin,omitempty"`
	Statsborgerskap     []StatsborgerskapItem `json:"statsborgerskap,omitempty"`
	Sivilstand          []SivilstandItem      `json:"sivilstand,omitempty"`
}

// PinItem is a national identifier with issuing country and institution.
type PinItem struct {
	Identifikator string `json:"identifikator,omitempty"`
	Land          string `json:"land,omitempty"`
	Institusjon   string `json:"institusjon,omitempty"`
}

// StatsborgerskapItem is one citizenship entry in document vocabulary.
type StatsborgerskapItem struct {
	Land string `json:"land,omitempty"`
}

// SivilstandItem is one marital-status entry in document vocabulary.
type SivilstandItem struct {
	Status  string `json:"status,omitempty"`
	Fradato string `json:"fradato,omitempty"`
}

// Forelder wraps a parent person record.
type Forelder struct {
	Person *Person `json:"person,omitempty"`
}

// Adresse is always present on an assembled person block, possibly all-blank,
// because downstream consumers need the field for manual correction.
type Adresse struct {
	Gate       string `json:"gate,omitempty"`
	Bygning    string `json:"bygning,omitempty"`
	By         string `json:"by,omitempty"`
	Postnummer string `json:"postnummer,omitempty"`
	Region     string `json:"region,omitempty"`
	Land       string `json:"land,omitempty"`
}

// IsBlank reports whether every address field is empty.
func (a Adresse) IsBlank() bool {
	return a == Adresse{}
}

// Krav is the claim field on a document.
type Krav struct {
	Dato string `json:"dato,omitempty"`
	Type string `json:"type,omitempty"`
}

// Pensjon is the pension block. An explicit empty (non-nil) value signals
// "no decision data available" as opposed to "suppressed".
type Pensjon struct {
	Vedtak    []VedtakItem    `json:"vedtak,omitempty"`
	Sak       *Sak            `json:"sak,omitempty"`
	Trygdetid []TrygdetidItem `json:"trygdetid,omitempty"`
}

// Sak carries case-level pension facts.
type Sak struct {
	Kravtype []KravtypeItem `json:"kravtype,omitempty"`
}

// KravtypeItem marks case-level claim properties such as a processing
// deadline.
type KravtypeItem struct {
	Datofrist string `json:"datofrist,omitempty"`
}

// VedtakItem is one pension decision on the document.
type VedtakItem struct {
	Type              string          `json:"type,omitempty"`
	Resultat          string          `json:"resultat,omitempty"`
	Virkningsdato     string          `json:"virkningsdato,omitempty"`
	Avslagbegrunnelse []Avslagsgrunn  `json:"avslagbegrunnelse,omitempty"`
	Beregning         []BeregningItem `json:"beregning,omitempty"`
}

// Avslagsgrunn is a standardized rejection-reason code.
type Avslagsgrunn struct {
	Begrunnelse string `json:"begrunnelse,omitempty"`
}

// BeregningItem is one amount-bearing interval of the benefit breakdown.
type BeregningItem struct {
	Periode              Periode `json:"periode"`
	BeloepBrutto         Beloep  `json:"beloepBrutto"`
	Valuta               string  `json:"valuta,omitempty"`
	Utbetalingshyppighet string  `json:"utbetalingshyppighet,omitempty"`
}

// Beloep splits a gross amount into its components.
type Beloep struct {
	Beloep          string `json:"beloep,omitempty"`
	Grunnpensjon    string `json:"ytelseskomponentGrunnpensjon,omitempty"`
	Tilleggspensjon string `json:"ytelseskomponentTilleggspensjon,omitempty"`
}

// Periode is a dated interval; Tom is empty for open-ended periods.
type Periode struct {
	Fom string `json:"fom,omitempty"`
	Tom string `json:"tom,omitempty"`
}

// TrygdetidItem is one insurance/membership period carried by a P5000.
type TrygdetidItem struct {
	Land                 string  `json:"land,omitempty"`
	Type                 string  `json:"type,omitempty"`
	Periode              Periode `json:"periode"`
	UsikkerDatoIndikator string  `json:"usikkerdatoindikator,omitempty"`
	Ytelse               string  `json:"ytelse,omitempty"`
	Ordning              string  `json:"ordning,omitempty"`
	Beregning            string  `json:"beregning,omitempty"`
}
