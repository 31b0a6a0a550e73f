package pdl

import (
	"context"
	"time"
)

// Client queries the person registry. Implementations must not cache across
// requests; prefill re-fetches source records per invocation.
type Client interface {
	Person(ctx context.Context, pin string) (PersonRecord, error)
}

// MockClient serves deterministic person data with a configurable latency to
// mimic real-world calls. Used for local wiring and tests.
type MockClient struct {
	Latency time.Duration
	Records map[string]PersonRecord
}

func (c *MockClient) Person(_ context.Context, pin string) (PersonRecord, error) {
	time.Sleep(c.Latency)
	if rec, ok := c.Records[pin]; ok {
		return rec, nil
	}
	birth := time.Date(1956, 3, 11, 0, 0, 0, 0, time.UTC)
	married := time.Date(1986, 6, 21, 0, 0, 0, 0, time.UTC)
	return PersonRecord{
		PIN:          pin,
		Fornavn:      "Ola",
		Etternavn:    "Nordmann",
		Foedselsdato: &birth,
		Kjoenn:       "MANN",
		Statsborgerskap: []Statsborgerskap{
			{Land: "NO", GyldigFom: &birth},
		},
		Sivilstand: []Sivilstand{
			{Type: "GIFT", GyldigFom: &married},
		},
		Adresser: Adresser{
			VegadresseInnland: &Vegadresse{
				Gate: "Storgata", Husnummer: "1", Postnummer: "0155", Poststed: "Oslo",
			},
		},
	}, nil
}
