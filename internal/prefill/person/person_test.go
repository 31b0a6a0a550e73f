package person

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sedprefill/internal/pdl"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestBuildPerson(t *testing.T) {
	rec := pdl.PersonRecord{
		PIN:                 "12345678901",
		Fornavn:             "Ola",
		Etternavn:           "Nordmann",
		EtternavnVedFoedsel: "Hansen",
		Foedselsdato:        datePtr(1956, 7, 11),
		Kjoenn:              "MANN",
		Statsborgerskap:     []pdl.Statsborgerskap{{Land: "NO"}},
		Sivilstand: []pdl.Sivilstand{
			{Type: "GIFT", GyldigFom: datePtr(2006, 1, 3)},
		},
	}

	p := BuildPerson(rec, "NO:NAVAT07")

	assert.Equal(t, "Ola", p.Fornavn)
	assert.Equal(t, "m", p.Kjoenn)
	assert.Equal(t, "1956-07-11", p.Foedselsdato)
	assert.Empty(t, p.Doedsdato)
	require.Len(t, p.Pin, 1)
	assert.Equal(t, "12345678901", p.Pin[0].Identifikator)
	assert.Equal(t, "NO", p.Pin[0].Land)
	assert.Equal(t, "NO:NAVAT07", p.Pin[0].Institusjon)
	require.Len(t, p.Sivilstand, 1)
	assert.Equal(t, "gift", p.Sivilstand[0].Status)
	assert.Equal(t, "2006-01-03", p.Sivilstand[0].Fradato)
}

func TestBuildAdresse(t *testing.T) {
	domestic := &pdl.Vegadresse{Gate: "Storgata", Husnummer: "12", Postnummer: "0155", Poststed: "Oslo"}
	foreign := &pdl.UtenlandskAdresse{Gate: "Kungsgatan 3", By: "Stockholm", Postkode: "111 43", Land: "SE"}

	t.Run("discretion code suppresses everything", func(t *testing.T) {
		rec := pdl.PersonRecord{
			Adressebeskyttelse: true,
			Adresser:           pdl.Adresser{VegadresseInnland: domestic},
		}
		assert.True(t, BuildAdresse(rec).IsBlank())
	})

	t.Run("estate address wins for a deceased person", func(t *testing.T) {
		rec := pdl.PersonRecord{
			Doedsdato: datePtr(2020, 6, 6),
			Adresser: pdl.Adresser{
				Doedsbo: &pdl.DoedsboAdresse{
					Kontaktperson: "Kari Nordmann",
					Adresselinje1: "Liveien 8",
					Postnummer:    "0162",
					Poststed:      "Oslo",
				},
				VegadresseInnland: domestic,
			},
		}
		adresse := BuildAdresse(rec)
		assert.Equal(t, "Kari Nordmann Liveien 8", adresse.Gate)
		assert.Equal(t, "NO", adresse.Land)
	})

	t.Run("domestic structured beats foreign", func(t *testing.T) {
		rec := pdl.PersonRecord{
			Adresser: pdl.Adresser{
				VegadresseInnland: domestic,
				VegadresseUtland:  foreign,
			},
		}
		adresse := BuildAdresse(rec)
		assert.Equal(t, "Storgata 12", adresse.Gate)
		assert.Equal(t, "NO", adresse.Land)
	})

	t.Run("plausible foreign structured address is used", func(t *testing.T) {
		rec := pdl.PersonRecord{Adresser: pdl.Adresser{VegadresseUtland: foreign}}
		adresse := BuildAdresse(rec)
		assert.Equal(t, "SE", adresse.Land)
		assert.Equal(t, "Stockholm", adresse.By)
	})

	t.Run("single-field foreign address is not plausible", func(t *testing.T) {
		rec := pdl.PersonRecord{
			Adresser: pdl.Adresser{
				VegadresseUtland: &pdl.UtenlandskAdresse{By: "Stockholm", Land: "SE"},
			},
		}
		assert.True(t, BuildAdresse(rec).IsBlank())
	})

	t.Run("no address data gives an explicit blank record", func(t *testing.T) {
		assert.True(t, BuildAdresse(pdl.PersonRecord{}).IsBlank())
	})
}

func TestMapKjoenn(t *testing.T) {
	assert.Equal(t, "m", MapKjoenn("MANN"))
	assert.Equal(t, "k", MapKjoenn("KVINNE"))
	assert.Equal(t, "u", MapKjoenn("UKJENT"))
	assert.Equal(t, "u", MapKjoenn(""))
}

func TestBuildForelder(t *testing.T) {
	rec := pdl.PersonRecord{
		Fornavn:             "Kari",
		Etternavn:           "Nordmann",
		EtternavnVedFoedsel: "Olsen",
	}

	t.Run("mother loses name at birth", func(t *testing.T) {
		f := BuildForelder(rec, pdl.RolleMor)
		assert.Empty(t, f.Person.EtternavnVedFoedsel)
		assert.Equal(t, "Kari", f.Person.Fornavn)
	})

	t.Run("father keeps name at birth", func(t *testing.T) {
		f := BuildForelder(rec, pdl.RolleFar)
		assert.Equal(t, "Olsen", f.Person.EtternavnVedFoedsel)
	})
}

func TestRelatertPIN(t *testing.T) {
	rec := pdl.PersonRecord{
		Relasjoner: []pdl.Relasjon{
			{Rolle: pdl.RolleBarn, RelatertPIN: "111"},
			{Rolle: pdl.RolleMor, RelatertPIN: "222"},
		},
	}

	pin, ok := RelatertPIN(rec, pdl.RolleMor)
	assert.True(t, ok)
	assert.Equal(t, "222", pin)

	_, ok = RelatertPIN(rec, pdl.RolleFar)
	assert.False(t, ok)
}
