package models

import (
	"encoding/json"

	"sedprefill/pkg/domain"
	dErrors "sedprefill/pkg/domain-errors"
)

// Skip keys understood by the merge pipeline. Upstream sets them when a
// document already carries validated data that must not be re-entered.
const (
	SkipPersonBlock  = "NAVSED"
	SkipPensionBlock = "PENSED"
)

// PrefillContext is the per-request case identity. It is built once at the
// trust boundary and treated as read-only by every module; nothing in the
// pipeline mutates it and it is never persisted.
type PrefillContext struct {
	ClaimantPIN  string
	AvdodPIN     string // optional deceased person, survivor cases only
	SakNummer    string
	VedtakID     string // optional decision id
	SedType      domain.SedType
	BucType      domain.BucType
	RinaCaseID   string
	Institutions []Institution

	skipKeys map[string]struct{}
	partial  map[string]json.RawMessage
}

// Institution identifies a case participant.
type Institution struct {
	ID      string `json:"id"`
	Acronym string `json:"acronym"`
	Country string `json:"country"`
}

// NewPrefillContext validates required identifiers and builds an immutable
// context.
func NewPrefillContext(
	claimantPIN, sakNummer, rinaCaseID string,
	sedType domain.SedType,
	bucType domain.BucType,
	opts ...ContextOption,
) (PrefillContext, error) {
	if claimantPIN == "" {
		return PrefillContext{}, dErrors.New(dErrors.CodeInvalidInput, "claimant pin is required")
	}
	if sakNummer == "" {
		return PrefillContext{}, dErrors.New(dErrors.CodeInvalidInput, "case number is required")
	}
	if rinaCaseID == "" {
		return PrefillContext{}, dErrors.New(dErrors.CodeInvalidInput, "rina case id is required")
	}
	pc := PrefillContext{
		ClaimantPIN: claimantPIN,
		SakNummer:   sakNummer,
		RinaCaseID:  rinaCaseID,
		SedType:     sedType,
		BucType:     bucType,
		skipKeys:    map[string]struct{}{},
		partial:     map[string]json.RawMessage{},
	}
	for _, opt := range opts {
		opt(&pc)
	}
	return pc, nil
}

// ContextOption configures optional context fields at construction time.
type ContextOption func(*PrefillContext)

func WithAvdod(pin string) ContextOption {
	return func(pc *PrefillContext) { pc.AvdodPIN = pin }
}

func WithVedtakID(id string) ContextOption {
	return func(pc *PrefillContext) { pc.VedtakID = id }
}

func WithInstitutions(list []Institution) ContextOption {
	return func(pc *PrefillContext) { pc.Institutions = list }
}

func WithSkipKeys(keys ...string) ContextOption {
	return func(pc *PrefillContext) {
		for _, k := range keys {
			pc.skipKeys[k] = struct{}{}
		}
	}
}

func WithPartial(fieldKey string, raw json.RawMessage) ContextOption {
	return func(pc *PrefillContext) { pc.partial[fieldKey] = raw }
}

// Skips reports whether the given field key was marked for suppression.
func (pc PrefillContext) Skips(key string) bool {
	_, ok := pc.skipKeys[key]
	return ok
}

// Partial returns the caller-supplied raw payload for a field key, if any.
func (pc PrefillContext) Partial(fieldKey string) (json.RawMessage, bool) {
	raw, ok := pc.partial[fieldKey]
	return raw, ok
}

// PartialKeys lists the field keys carrying caller-supplied payloads.
func (pc PrefillContext) PartialKeys() []string {
	keys := make([]string, 0, len(pc.partial))
	for k := range pc.partial {
		keys = append(keys, k)
	}
	return keys
}
