package verify

import (
	"testing"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
)

func TestAadhaarValidNumber(t *testing.T) {
	verdict := Aadhaar("234567890106")
	if !verdict.IsValid {
		t.Fatalf("expected valid verdict, got %+v", verdict)
	}
	if verdict.FormatValid == nil || !*verdict.FormatValid {
		t.Fatalf("expected format sub-check to pass")
	}
	if verdict.ChecksumValid == nil || !*verdict.ChecksumValid {
		t.Fatalf("expected checksum sub-check to pass")
	}
}

func TestAadhaarStripsWhitespaceBeforeValidation(t *testing.T) {
	verdict := Aadhaar("2345 6789 0106")
	if !verdict.IsValid {
		t.Fatalf("expected spaced number to validate, got %+v", verdict)
	}
}

func TestAadhaarRejectsBadChecksum(t *testing.T) {
	verdict := Aadhaar("234567890107")
	if verdict.IsValid {
		t.Fatalf("expected invalid verdict for bad checksum")
	}
	if verdict.FormatValid == nil || !*verdict.FormatValid {
		t.Fatalf("format should still pass for a well-formed number")
	}
	if verdict.ChecksumValid == nil || *verdict.ChecksumValid {
		t.Fatalf("checksum sub-check should fail")
	}
}

func TestAadhaarRejectsBadFormat(t *testing.T) {
	cases := []string{
		"123456789012", // leading digit below 2
		"034567890106", // leading zero
		"23456789010",  // 11 digits
		"2345678901067",
		"23456789010a",
		"",
	}
	for _, num := range cases {
		verdict := Aadhaar(num)
		if verdict.IsValid {
			t.Fatalf("expected %q to fail format validation", num)
		}
		if verdict.FormatValid == nil || *verdict.FormatValid {
			t.Fatalf("expected format sub-check to fail for %q", num)
		}
	}
}

func TestPANValidNumber(t *testing.T) {
	verdict := PAN("ABCDE1234F")
	if !verdict.IsValid {
		t.Fatalf("expected valid verdict, got %+v", verdict)
	}
	if verdict.FormatValid == nil || !*verdict.FormatValid {
		t.Fatalf("expected format sub-check to pass")
	}
	if verdict.ChecksumValid != nil {
		t.Fatalf("PAN has no checksum, sub-check should be absent")
	}
}

func TestPANNormalizesCaseAndSpaces(t *testing.T) {
	verdict := PAN(" abcpe 1234 f ")
	if !verdict.IsValid {
		t.Fatalf("expected normalized input to validate, got %+v", verdict)
	}
}

func TestPANIndividualHolderClass(t *testing.T) {
	verdict := PAN("ABCPD1234E")
	if !verdict.IsValid {
		t.Fatalf("expected valid verdict, got %+v", verdict)
	}
	if !containsDetail(verdict, "Individual PAN") {
		t.Fatalf("expected Individual PAN detail, got %v", verdict.Details)
	}
}

func TestPANEntityHolderClass(t *testing.T) {
	verdict := PAN("ABCCD1234E")
	if !verdict.IsValid {
		t.Fatalf("expected valid verdict, got %+v", verdict)
	}
	if !containsDetail(verdict, "Company/Entity PAN") {
		t.Fatalf("expected Company/Entity PAN detail, got %v", verdict.Details)
	}
}

func TestPANRejectsBadFormat(t *testing.T) {
	cases := []string{"ABCDE12345", "ABCD1234F", "1BCDE1234F", "ABCDE1234", ""}
	for _, num := range cases {
		verdict := PAN(num)
		if verdict.IsValid {
			t.Fatalf("expected %q to fail format validation", num)
		}
	}
}

func TestCIBILScoreBands(t *testing.T) {
	cases := []struct {
		score    string
		category string
		impact   string
	}{
		{"760", "Excellent", "Best interest rates, quick approvals"},
		{"700", "Good", "Good interest rates, likely approval"},
		{"600", "Fair", "Higher interest rates, conditional approval"},
		{"400", "Poor", "Difficult approval, very high rates"},
		{"750", "Excellent", "Best interest rates, quick approvals"},
		{"650", "Good", "Good interest rates, likely approval"},
		{"550", "Fair", "Higher interest rates, conditional approval"},
		{"300", "Poor", "Difficult approval, very high rates"},
		{"850", "Excellent", "Best interest rates, quick approvals"},
	}
	for _, tc := range cases {
		verdict := CIBILScore(tc.score)
		if !verdict.IsValid {
			t.Fatalf("expected score %s to be valid", tc.score)
		}
		if verdict.Category != tc.category {
			t.Fatalf("score %s: expected category %s, got %s", tc.score, tc.category, verdict.Category)
		}
		if verdict.LoanImpact != tc.impact {
			t.Fatalf("score %s: expected loan impact %q, got %q", tc.score, tc.impact, verdict.LoanImpact)
		}
	}
}

func TestCIBILScoreOutOfRange(t *testing.T) {
	for _, score := range []string{"299", "851", "900", "0", "-100"} {
		verdict := CIBILScore(score)
		if verdict.IsValid {
			t.Fatalf("expected score %s to be out of range", score)
		}
		if !containsDetail(verdict, "Score out of valid range (300-850)") {
			t.Fatalf("expected range detail for %s, got %v", score, verdict.Details)
		}
	}
}

func TestCIBILScoreNonNumeric(t *testing.T) {
	for _, score := range []string{"abc", "75O", "", "7.5"} {
		verdict := CIBILScore(score)
		if verdict.IsValid {
			t.Fatalf("expected score %q to be rejected", score)
		}
		if !containsDetail(verdict, "Invalid score format") {
			t.Fatalf("expected format detail for %q, got %v", score, verdict.Details)
		}
	}
}

func TestCIBILScoreTrimsWhitespace(t *testing.T) {
	if verdict := CIBILScore(" 760 "); !verdict.IsValid {
		t.Fatalf("expected padded score to validate, got %+v", verdict)
	}
}

func TestDocumentDispatchesAadhaar(t *testing.T) {
	extraction := domain.Extraction{Fields: map[string]string{"aadhaar_number": "234567890106"}}
	verdict := Document(domain.TypeAadhaar, extraction)
	if !verdict.IsValid {
		t.Fatalf("expected valid aadhaar verdict, got %+v", verdict)
	}
}

func TestDocumentProbesDisplayCasedKeys(t *testing.T) {
	extraction := domain.Extraction{Fields: map[string]string{"PAN Number": "ABCDE1234F"}}
	verdict := Document(domain.TypePAN, extraction)
	if !verdict.IsValid {
		t.Fatalf("expected valid pan verdict via display-cased key, got %+v", verdict)
	}
}

func TestDocumentSkipsNotAvailableValues(t *testing.T) {
	extraction := domain.Extraction{Fields: map[string]string{"aadhaar_number": domain.NotAvailable}}
	verdict := Document(domain.TypeAadhaar, extraction)
	if verdict.IsValid {
		t.Fatalf("expected failing verdict when identifier is missing")
	}
	if !containsDetail(verdict, "No verification available") {
		t.Fatalf("expected fallback detail, got %v", verdict.Details)
	}
}

func TestDocumentKindsWithoutVerification(t *testing.T) {
	extraction := domain.Extraction{Fields: map[string]string{"Net Pay": "45000"}}
	for _, kind := range []domain.TypeKind{domain.TypeSalarySlip, domain.TypeITR, domain.TypeBankStatement, domain.TypeOther} {
		verdict := Document(kind, extraction)
		if verdict.IsValid {
			t.Fatalf("expected no verdict for kind %s", kind)
		}
		if !containsDetail(verdict, "No verification available") {
			t.Fatalf("expected fallback detail for kind %s, got %v", kind, verdict.Details)
		}
	}
}

func TestDocumentVerificationIsIdempotent(t *testing.T) {
	extraction := domain.Extraction{Fields: map[string]string{"cibil_score": "760"}}
	first := Document(domain.TypeCIBILReport, extraction)
	second := Document(domain.TypeCIBILReport, extraction)
	if first.IsValid != second.IsValid || first.Category != second.Category || first.Score != second.Score {
		t.Fatalf("verdicts diverged: %+v vs %+v", first, second)
	}
}

func containsDetail(v domain.Verdict, want string) bool {
	for _, d := range v.Details {
		if d == want {
			return true
		}
	}
	return false
}
