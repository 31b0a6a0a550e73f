package trygdetid

import (
	"time"

	"sedprefill/internal/models"
)

// Period is one insurance period as reported by one participant. Periods are
// kept verbatim; reconciliation of overlapping reports from different
// institutions is a caseworker task, not ours.
type Period struct {
	Land        string `json:"land,omitempty"`
	Type        string `json:"type,omitempty"`
	Fom         string `json:"fom,omitempty"`
	Tom         string `json:"tom,omitempty"`
	UsikkerDato string `json:"usikkerDato,omitempty"`
	Ytelse      string `json:"ytelse,omitempty"`
	Ordning     string `json:"ordning,omitempty"`
	Beregning   string `json:"beregning,omitempty"`

	// Reporting institution, taken from the carrying document's creator.
	ReportedBy        string `json:"reportedBy,omitempty"`
	ReportedByCountry string `json:"reportedByCountry,omitempty"`
	DocumentID        string `json:"documentID"`
}

// Timeline is the aggregate of all reported insurance periods in one case,
// in document order. ClaimantPIN is empty for a case-level aggregation.
type Timeline struct {
	RinaCaseID  string    `json:"rinaCaseID"`
	ClaimantPIN string    `json:"claimantPin,omitempty"`
	Periods     []Period  `json:"periods"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

func periodFrom(item models.TrygdetidItem, doc string, creator models.Institution) Period {
	return Period{
		Land:              item.Land,
		Type:              item.Type,
		Fom:               item.Periode.Fom,
		Tom:               item.Periode.Tom,
		UsikkerDato:       item.UsikkerDatoIndikator,
		Ytelse:            item.Ytelse,
		Ordning:           item.Ordning,
		Beregning:         item.Beregning,
		ReportedBy:        creator.Acronym,
		ReportedByCountry: creator.Country,
		DocumentID:        doc,
	}
}
