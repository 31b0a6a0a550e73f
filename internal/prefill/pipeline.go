package prefill

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"sedprefill/internal/models"
	"sedprefill/internal/pdl"
	personblock "sedprefill/internal/prefill/person"
	"sedprefill/internal/vedtak"
	dErrors "sedprefill/pkg/domain-errors"
)

// Pipeline builds the common person and pension sub-structures shared by most
// document types, honoring per-field skip instructions. It holds no mutable
// state across requests.
type Pipeline struct {
	logger *slog.Logger
}

func NewPipeline(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{logger: logger}
}

// NavBlock assembles the person block, or nil when the context instructs
// suppression - an upstream signal that the document already carries
// validated person data.
func (p *Pipeline) NavBlock(in Input) *models.Nav {
	if in.Context.Skips(models.SkipPersonBlock) {
		return nil
	}
	institution := firstInstitutionID(in.Context)
	bruker := personblock.BuildBruker(in.Person, institution)
	if in.Mor != nil {
		bruker.Mor = personblock.BuildForelder(*in.Mor, pdl.RolleMor)
	}
	if in.Far != nil {
		bruker.Far = personblock.BuildForelder(*in.Far, pdl.RolleFar)
	}
	return &models.Nav{
		EESSISakID: in.Context.RinaCaseID,
		Bruker:     bruker,
	}
}

// PensionBlock assembles the pension block. Skip instruction means absent;
// degraded decision data means an explicit empty value, so consumers can tell
// "suppressed" from "nothing to report". A present decision record seeds the
// block with its classified decision-type code.
func (p *Pipeline) PensionBlock(in Input) *models.Pensjon {
	if in.Context.Skips(models.SkipPensionBlock) {
		return nil
	}
	if in.Decision == nil {
		return &models.Pensjon{}
	}
	code, err := vedtak.Classify(in.Decision.SakType)
	if err != nil {
		p.logger.Warn("decision record carries unknown case type",
			"sak_type", in.Decision.SakType,
		)
		return &models.Pensjon{}
	}
	return &models.Pensjon{
		Vedtak: []models.VedtakItem{{Type: code}},
	}
}

// Field keys the partial-payload overlay understands.
const (
	PartialKeyNav     = "nav"
	PartialKeyPensjon = "pensjon"
	PartialKeyAdresse = "adresse"
)

// ApplyPartial overlays caller-supplied payloads onto the assembled document.
// Caller data was validated upstream, so it replaces the computed value for
// its field key wholesale. Applied after strategy assembly, in a fixed order
// so the address overlay survives a simultaneous nav overlay.
func (p *Pipeline) ApplyPartial(sed *models.SED, pc models.PrefillContext) error {
	for _, key := range pc.PartialKeys() {
		switch key {
		case PartialKeyNav, PartialKeyPensjon, PartialKeyAdresse:
		default:
			return dErrors.Newf(dErrors.CodeInvalidInput, "unknown partial field key %q", key)
		}
	}

	if raw, ok := pc.Partial(PartialKeyNav); ok {
		var nav models.Nav
		if err := strictUnmarshal(raw, &nav); err != nil {
			return dErrors.Newf(dErrors.CodeInvalidInput, "partial payload %q: %v", PartialKeyNav, err)
		}
		sed.Nav = &nav
	}
	if raw, ok := pc.Partial(PartialKeyPensjon); ok {
		var pensjon models.Pensjon
		if err := strictUnmarshal(raw, &pensjon); err != nil {
			return dErrors.Newf(dErrors.CodeInvalidInput, "partial payload %q: %v", PartialKeyPensjon, err)
		}
		sed.Pensjon = &pensjon
	}
	if raw, ok := pc.Partial(PartialKeyAdresse); ok {
		var adresse models.Adresse
		if err := strictUnmarshal(raw, &adresse); err != nil {
			return dErrors.Newf(dErrors.CodeInvalidInput, "partial payload %q: %v", PartialKeyAdresse, err)
		}
		if sed.Nav == nil {
			sed.Nav = &models.Nav{EESSISakID: pc.RinaCaseID}
		}
		if sed.Nav.Bruker == nil {
			sed.Nav.Bruker = &models.Bruker{}
		}
		sed.Nav.Bruker.Adresse = &adresse
	}
	return nil
}

func strictUnmarshal(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func firstInstitutionID(pc models.PrefillContext) string {
	if len(pc.Institutions) > 0 {
		return pc.Institutions[0].ID
	}
	return ""
}
