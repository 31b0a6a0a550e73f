// Package person builds the "nav" person block shared by most document
// types: identity fields, address selection, marital status, and family
// relations, all mapped from the local registry vocabulary to document
// vocabulary.
package person

import (
	"strings"

	"sedprefill/internal/models"
	"sedprefill/internal/pdl"
)

const dateLayout = "2006-01-02"

// BuildBruker assembles the full person sub-structure for the claimant or
// the deceased.
func BuildBruker(rec pdl.PersonRecord, institutionID string) *models.Bruker {
	adresse := BuildAdresse(rec)
	return &models.Bruker{
		Person:  BuildPerson(rec, institutionID),
		Adresse: &adresse,
	}
}

// BuildPerson maps identity fields into document vocabulary.
func BuildPerson(rec pdl.PersonRecord, institutionID string) *models.Person {
	p := &models.Person{
		Fornavn:             rec.Fornavn,
		Etternavn:           rec.Etternavn,
		EtternavnVedFoedsel: rec.EtternavnVedFoedsel,
		Kjoenn:              MapKjoenn(rec.Kjoenn),
	}
	if rec.Foedselsdato != nil {
		p.Foedselsdato = rec.Foedselsdato.Format(dateLayout)
	}
	if rec.Doedsdato != nil {
		p.Doedsdato = rec.Doedsdato.Format(dateLayout)
	}
	if rec.PIN != "" {
		p.Pin = []models.PinItem{{
			Identifikator: rec.PIN,
			Land:          "NO",
			Institusjon:   institutionID,
		}}
	}
	for _, s := range rec.Statsborgerskap {
		if s.Land != "" {
			p.Statsborgerskap = append(p.Statsborgerskap, models.StatsborgerskapItem{Land: s.Land})
		}
	}
	for _, s := range rec.Sivilstand {
		item := models.SivilstandItem{Status: MapSivilstand(s.Type)}
		if s.GyldigFom != nil {
			item.Fradato = s.GyldigFom.Format(dateLayout)
		}
		p.Sivilstand = append(p.Sivilstand, item)
	}
	return p
}

// BuildAdresse selects the document address by fixed precedence:
// estate contact address for a deceased person, then domestic structured,
// domestic freeform, foreign structured (only with enough evidence of being a
// real address), foreign freeform, and finally an explicit all-blank record -
// never an absent value, since downstream consumers require the field present
// for manual correction. A discretion code suppresses everything.
func BuildAdresse(rec pdl.PersonRecord) models.Adresse {
	if rec.Adressebeskyttelse {
		return models.Adresse{}
	}
	adr := rec.Adresser
	switch {
	case rec.Doedsdato != nil && adr.Doedsbo != nil:
		return models.Adresse{
			Gate:       strings.TrimSpace(adr.Doedsbo.Kontaktperson + " " + adr.Doedsbo.Adresselinje1),
			Bygning:    adr.Doedsbo.Adresselinje2,
			By:         adr.Doedsbo.Poststed,
			Postnummer: adr.Doedsbo.Postnummer,
			Land:       landOr(adr.Doedsbo.Land, "NO"),
		}
	case adr.VegadresseInnland != nil:
		v := adr.VegadresseInnland
		return models.Adresse{
			Gate:       strings.TrimSpace(v.Gate + " " + v.Husnummer),
			By:         v.Poststed,
			Postnummer: v.Postnummer,
			Land:       "NO",
		}
	case adr.FriAdresseInnland != nil:
		f := adr.FriAdresseInnland
		return models.Adresse{
			Gate:    f.Linje1,
			Bygning: f.Linje2,
			By:      f.Linje3,
			Land:    "NO",
		}
	case adr.VegadresseUtland != nil && foreignPlausible(adr.VegadresseUtland):
		u := adr.VegadresseUtland
		return models.Adresse{
			Gate:       u.Gate,
			Bygning:    u.Bygning,
			By:         u.By,
			Postnummer: u.Postkode,
			Region:     u.Region,
			Land:       u.Land,
		}
	case adr.FriAdresseUtland != nil:
		f := adr.FriAdresseUtland
		return models.Adresse{
			Gate:    f.Linje1,
			Bygning: f.Linje2,
			By:      f.Linje3,
			Land:    f.Land,
		}
	}
	return models.Adresse{}
}

// landOr returns the registered country code, or the fallback when the
// registry left it blank.
func landOr(land, fallback string) string {
	if strings.TrimSpace(land) != "" {
		return land
	}
	return fallback
}

// foreignPlausible requires at least two of street, city, and postal code to
// be non-blank. A single populated field is not sufficient evidence of a
// valid foreign address.
func foreignPlausible(u *pdl.UtenlandskAdresse) bool {
	n := 0
	for _, field := range []string{u.Gate, u.By, u.Postkode} {
		if strings.TrimSpace(field) != "" {
			n++
		}
	}
	return n >= 2
}

// kjoennMap is the closed gender lookup table.
var kjoennMap = map[string]string{
	"MANN":   "m",
	"KVINNE": "k",
}

// MapKjoenn translates a local gender code; unknown codes resolve to "u",
// never an error.
func MapKjoenn(local string) string {
	if v, ok := kjoennMap[local]; ok {
		return v
	}
	return "u"
}

// sivilstandMap is the closed marital-status lookup table from local codes to
// document codes.
var sivilstandMap = map[string]string{
	"UGIFT":               "enslig",
	"GIFT":                "gift",
	"SAMBOER":             "samboer",
	"REGISTRERT_PARTNER":  "registrert_partnerskap",
	"SEPARERT":            "separert",
	"SEPARERT_PARTNER":    "separert",
	"SKILT":               "skilt",
	"SKILT_PARTNER":       "skilt_fra_registrert_partnerskap",
	"ENKE_ELLER_ENKEMANN": "enke_enkemann",
	"GJENLEVENDE_PARTNER": "enke_enkemann",
}

// MapSivilstand translates a local marital-status code; unknown codes resolve
// to blank, never an error.
func MapSivilstand(local string) string {
	return sivilstandMap[local]
}

// RelatertPIN scans the family relations for the first entry matching the
// role.
func RelatertPIN(rec pdl.PersonRecord, rolle string) (string, bool) {
	for _, rel := range rec.Relasjoner {
		if rel.Rolle == rolle {
			return rel.RelatertPIN, true
		}
	}
	return "", false
}

// BuildForelder maps a parent record. For a mother the name-at-birth field is
// cleared even when the registry carries it: the legal document form does not
// admit it, this is not a data error.
func BuildForelder(rec pdl.PersonRecord, rolle string) *models.Forelder {
	p := BuildPerson(rec, "")
	if rolle == pdl.RolleMor {
		p.EtternavnVedFoedsel = ""
	}
	return &models.Forelder{Person: p}
}
