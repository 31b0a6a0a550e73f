package pen

import (
	"context"
	"time"

	dErrors "sedprefill/pkg/domain-errors"
)

//go:generate mockgen -source=client.go -destination=mock_client.go -package=pen

// ErrNoDecisionData marks the known "case has no decision record" condition.
// The merge pipeline degrades gracefully on it; the decision computation
// module does not.
var ErrNoDecisionData = dErrors.New(dErrors.CodeNotFound, "no decision data for case")

// Client queries the pension decision system.
type Client interface {
	// Decision fetches the decision record by case number, narrowed to a
	// specific decision when vedtakID is non-empty.
	Decision(ctx context.Context, sakNummer, vedtakID string) (Pensjonsinformasjon, error)
}

// LocalClient serves deterministic decision data for local wiring. A case
// number of "0" reproduces the no-decision-data condition.
type LocalClient struct {
	Latency time.Duration
}

func (c *LocalClient) Decision(_ context.Context, sakNummer, _ string) (Pensjonsinformasjon, error) {
	time.Sleep(c.Latency)
	if sakNummer == "0" {
		return Pensjonsinformasjon{}, ErrNoDecisionData
	}
	fom := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	tom := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	fom2 := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	mottatt := time.Date(2019, 10, 7, 0, 0, 0, 0, time.UTC)
	return Pensjonsinformasjon{
		SakType: "ALDER",
		Vilkarsvurderinger: []Vilkarsvurdering{
			{Resultat: ResultatInnvilget},
		},
		YtelsePerMaaneder: []YtelsePerMaaned{
			{Fom: fom, Tom: &tom, BeloepBrutto: 19200, Grunnpensjon: 8200, Tilleggspensjon: 11000},
			{Fom: fom2, BeloepBrutto: 19800, Grunnpensjon: 8400, Tilleggspensjon: 11400},
		},
		Kravhistorikk: []KravItem{
			{KravType: "FORSTEGANGSBEHANDLING", MottattDato: &mottatt},
		},
	}, nil
}
