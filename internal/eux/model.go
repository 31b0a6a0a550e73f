// Package eux talks to the case/document exchange system: case metadata,
// document listings, document content, and case-action availability.
package eux

import (
	"time"

	"sedprefill/internal/models"
)

// CaseDetail is the case metadata view used by prefill.
type CaseDetail struct {
	ID           string
	BucType      string
	Participants []Participant
	LastUpdate   time.Time
}

// Participant couples a case role to an institution.
type Participant struct {
	Role        string // CaseOwner or CounterParty
	Institution models.Institution
}

// Participant roles.
const (
	RoleCaseOwner    = "CaseOwner"
	RoleCounterParty = "CounterParty"
)

// CaseOwner returns the institution administratively responsible for the
// case, and ok=false when the metadata carries none.
func (c CaseDetail) CaseOwner() (models.Institution, bool) {
	for _, p := range c.Participants {
		if p.Role == RoleCaseOwner {
			return p.Institution, true
		}
	}
	return models.Institution{}, false
}

// Document is one entry of a case's document index.
type Document struct {
	ID         string
	Type       string // raw SED type
	Status     string
	LastUpdate time.Time
	Creator    models.Institution
}
