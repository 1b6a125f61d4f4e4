// Package verify holds the per-type verification routines: Aadhaar format +
// Verhoeff checksum, PAN format with holder classification, and CIBIL score
// banding. Verification is format and checksum plausibility only; nothing
// here talks to an issuing authority.
package verify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
)

var (
	aadhaarFormat = regexp.MustCompile(`^[2-9][0-9]{11}$`)
	panFormat     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// panEntityLetters are the fourth-letter holder classes that mark a
// company/entity PAN. P marks an individual.
const panEntityLetters = "CHFATBLJG"

// Document dispatches on the document kind and verifies the matching
// identifier from the extracted field set. Kinds with no verification
// routine, and kinds whose identifier was not extracted, yield a failing
// verdict with an explanatory detail rather than an error.
func Document(kind domain.TypeKind, extraction domain.Extraction) domain.Verdict {
	switch kind {
	case domain.TypeAadhaar:
		if number, ok := extraction.Field("aadhaar_number", "Aadhaar Number"); ok {
			return Aadhaar(number)
		}
	case domain.TypePAN:
		if number, ok := extraction.Field("pan_number", "PAN Number"); ok {
			return PAN(number)
		}
	case domain.TypeCIBILReport:
		if score, ok := extraction.Field("cibil_score", "CIBIL Score"); ok {
			return CIBILScore(score)
		}
	case domain.TypeSalarySlip, domain.TypeITR, domain.TypeBankStatement, domain.TypeOther:
		// no identifier checksum exists for these kinds
	}
	return domain.NewVerdict("No verification available")
}

// Aadhaar validates a 12-digit Aadhaar number: format first, then the
// Verhoeff checksum. Both sub-checks must pass.
func Aadhaar(number string) domain.Verdict {
	clean := whitespace.ReplaceAllString(number, "")

	if !aadhaarFormat.MatchString(clean) {
		return domain.NewVerdict("Invalid format - should be 12 digits starting with 2-9").
			WithFormat(false).WithChecksum(false)
	}

	verdict := domain.NewVerdict("Format is valid").WithFormat(true)
	if verhoeffValid(clean) {
		verdict = verdict.WithChecksum(true)
		verdict.IsValid = true
		verdict.Details = append(verdict.Details, "Checksum is valid")
		return verdict
	}

	verdict = verdict.WithChecksum(false)
	verdict.Details = append(verdict.Details, "Invalid checksum")
	return verdict
}

// PAN validates a permanent account number. No checksum exists for PAN, so
// format alone decides validity. The fourth letter's holder class is
// informational only.
func PAN(number string) domain.Verdict {
	clean := strings.ToUpper(strings.ReplaceAll(number, " ", ""))

	if !panFormat.MatchString(clean) {
		return domain.NewVerdict("Invalid format - should be AAAAA9999A").WithFormat(false)
	}

	verdict := domain.NewVerdict("Format is valid").WithFormat(true)
	verdict.IsValid = true

	switch fourth := clean[3]; {
	case fourth == 'P':
		verdict.Details = append(verdict.Details, "Individual PAN")
	case strings.IndexByte(panEntityLetters, fourth) >= 0:
		verdict.Details = append(verdict.Details, "Company/Entity PAN")
	}
	return verdict
}

// CIBIL score bands, inclusive lower bounds, checked highest first.
var scoreBands = []struct {
	min  int
	band domain.ScoreBand
}{
	{750, domain.ScoreBand{
		Category:    "Excellent",
		Description: "Excellent credit score",
		LoanImpact:  "Best interest rates, quick approvals",
	}},
	{650, domain.ScoreBand{
		Category:    "Good",
		Description: "Good credit score",
		LoanImpact:  "Good interest rates, likely approval",
	}},
	{550, domain.ScoreBand{
		Category:    "Fair",
		Description: "Fair credit score",
		LoanImpact:  "Higher interest rates, conditional approval",
	}},
	{300, domain.ScoreBand{
		Category:    "Poor",
		Description: "Poor credit score",
		LoanImpact:  "Difficult approval, very high rates",
	}},
}

var bandDetails = map[string]string{
	"Excellent": "Excellent credit history",
	"Good":      "Good credit management",
	"Fair":      "Room for improvement",
	"Poor":      "Significant credit issues",
}

// CIBILScore parses and bands a credit score. Non-numeric input and scores
// outside [300,850] fail; banding within range is a pure function of the
// integer value.
func CIBILScore(score string) domain.Verdict {
	value, err := strconv.Atoi(strings.TrimSpace(score))
	if err != nil {
		return domain.NewVerdict("Invalid score format")
	}
	if value < 300 || value > 850 {
		verdict := domain.NewVerdict("Score out of valid range (300-850)")
		verdict.Score = value
		return verdict
	}

	for _, b := range scoreBands {
		if value >= b.min {
			verdict := domain.NewVerdict(bandDetails[b.band.Category])
			verdict.IsValid = true
			verdict.Score = value
			verdict.Category = b.band.Category
			verdict.Description = b.band.Description
			verdict.LoanImpact = b.band.LoanImpact
			return verdict
		}
	}
	// unreachable: value >= 300 always matches the last band
	return domain.NewVerdict("Score out of valid range (300-850)")
}
