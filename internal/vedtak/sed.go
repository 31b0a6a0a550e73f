package vedtak

import (
	"strconv"

	"sedprefill/internal/models"
	"sedprefill/internal/pen"
)

const dateLayout = "2006-01-02"

// BuildVedtakItem assembles the decision block of a P6000 from a decision
// record: classification, result, benefit breakdown, and - for denials with
// no benefit history - the standardized rejection reason.
func BuildVedtakItem(info pen.Pensjonsinformasjon) (models.VedtakItem, error) {
	typeCode, err := Classify(info.SakType)
	if err != nil {
		return models.VedtakItem{}, err
	}

	item := models.VedtakItem{
		Type:     typeCode,
		Resultat: ResultatInnvilgelse,
	}

	breakdown := BuildBreakdown(info)
	for _, e := range breakdown {
		item.Beregning = append(item.Beregning, toBeregning(e))
	}
	if len(breakdown) > 0 {
		item.Virkningsdato = breakdown[0].Fom.Format(dateLayout)
	}

	code, denied, err := DenialReason(info)
	if err != nil {
		return models.VedtakItem{}, err
	}
	if denied {
		item.Resultat = ResultatAvslag
		item.Avslagbegrunnelse = []models.Avslagsgrunn{{Begrunnelse: code}}
	}

	if item.Resultat == ResultatInnvilgelse && len(breakdown) == 0 {
		// A grant without any benefit history cannot be expressed on the
		// document.
		return models.VedtakItem{}, ErrDecisionDataMissing
	}
	return item, nil
}

func toBeregning(e Entry) models.BeregningItem {
	item := models.BeregningItem{
		Periode: models.Periode{Fom: e.Fom.Format(dateLayout)},
		BeloepBrutto: models.Beloep{
			Beloep:          strconv.FormatInt(e.BeloepBrutto, 10),
			Grunnpensjon:    strconv.FormatInt(e.Grunnpensjon, 10),
			Tilleggspensjon: strconv.FormatInt(e.Tilleggspensjon, 10),
		},
		Valuta:               "NOK",
		Utbetalingshyppighet: "maaned_12_per_aar",
	}
	if e.Tom != nil {
		item.Periode.Tom = e.Tom.Format(dateLayout)
	}
	return item
}
