package domain

// ScoreBand is a CIBIL score category with its fixed narrative.
type ScoreBand struct {
	Category    string
	Description string
	LoanImpact  string
}

// Verdict is the verifier's answer for one document. FormatValid and
// ChecksumValid are nil for checks that do not apply to the document kind.
// IsValid is true only when every applicable sub-check passed.
type Verdict struct {
	IsValid       bool     `json:"is_valid"`
	FormatValid   *bool    `json:"format_valid,omitempty"`
	ChecksumValid *bool    `json:"checksum_valid,omitempty"`
	Score         int      `json:"score,omitempty"`
	Category      string   `json:"category,omitempty"`
	Description   string   `json:"description,omitempty"`
	LoanImpact    string   `json:"loan_impact,omitempty"`
	Details       []string `json:"details"`
}

func boolPtr(b bool) *bool { return &b }

// NewVerdict returns a failing verdict with no sub-checks attached.
func NewVerdict(details ...string) Verdict {
	return Verdict{Details: append([]string{}, details...)}
}

// WithFormat records the format sub-check.
func (v Verdict) WithFormat(ok bool) Verdict {
	v.FormatValid = boolPtr(ok)
	return v
}

// WithChecksum records the checksum sub-check.
func (v Verdict) WithChecksum(ok bool) Verdict {
	v.ChecksumValid = boolPtr(ok)
	return v
}
