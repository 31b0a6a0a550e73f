package domain

import dErrors "sedprefill/pkg/domain-errors"

// BucType identifies the case/process type grouping a sequence of SEDs
// exchanged between institutions.
type BucType string

const (
	BucP01 BucType = "P_BUC_01" // old-age pension case
	BucP02 BucType = "P_BUC_02" // survivor pension case
	BucP03 BucType = "P_BUC_03" // disability pension case
	BucP04 BucType = "P_BUC_04" // transfer of residence periods
	BucP05 BucType = "P_BUC_05" // request for insurance history
	BucP06 BucType = "P_BUC_06" // miscellaneous information exchange
	BucP07 BucType = "P_BUC_07" // notification of decision summary
	BucP08 BucType = "P_BUC_08" // request for additional information
	BucP09 BucType = "P_BUC_09" // ad hoc information exchange
	BucP10 BucType = "P_BUC_10" // claim under applicable legislation
)

var validBucTypes = map[BucType]bool{
	BucP01: true, BucP02: true, BucP03: true, BucP04: true, BucP05: true,
	BucP06: true, BucP07: true, BucP08: true, BucP09: true, BucP10: true,
}

// ParseBucType constructs a BucType from external input.
func ParseBucType(s string) (BucType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "buc type cannot be empty")
	}
	t := BucType(s)
	if !t.IsValid() {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unsupported buc type %q", s)
	}
	return t, nil
}

func (t BucType) IsValid() bool {
	return validBucTypes[t]
}

func (t BucType) String() string {
	return string(t)
}
