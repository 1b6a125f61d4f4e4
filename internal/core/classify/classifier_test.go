package classify

import (
	"testing"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
)

func TestClassifyAadhaarText(t *testing.T) {
	text := "Government of India\nAadhaar\n2345 6789 0106\nIssued by UIDAI"

	result := Classify(text)
	if result.Kind != domain.TypeAadhaar {
		t.Fatalf("expected aadhaar, got %s (scores %v)", result.Kind, result.Scores)
	}
	if result.Scores[domain.TypeAadhaar] != 3 {
		t.Fatalf("expected aadhaar score 3, got %d", result.Scores[domain.TypeAadhaar])
	}
}

func TestClassifyPANText(t *testing.T) {
	text := "INCOME TAX DEPARTMENT\nPermanent Account Number\nABCPE1234F"

	result := Classify(text)
	if result.Kind != domain.TypePAN {
		t.Fatalf("expected pan, got %s (scores %v)", result.Kind, result.Scores)
	}
}

func TestClassifyCIBILText(t *testing.T) {
	text := "TransUnion CIBIL\nCredit Report\nCredit Score: 760"

	result := Classify(text)
	if result.Kind != domain.TypeCIBILReport {
		t.Fatalf("expected cibil_report, got %s (scores %v)", result.Kind, result.Scores)
	}
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	lower := Classify("aadhaar card issued by uidai")
	upper := Classify("AADHAAR CARD ISSUED BY UIDAI")
	if lower.Kind != upper.Kind {
		t.Fatalf("case changed the outcome: %s vs %s", lower.Kind, upper.Kind)
	}
	if lower.Kind != domain.TypeAadhaar {
		t.Fatalf("expected aadhaar, got %s", lower.Kind)
	}
}

func TestClassifyNoMatchReturnsOther(t *testing.T) {
	result := Classify("a grocery list: milk, eggs, bread")
	if result.Kind != domain.TypeOther {
		t.Fatalf("expected other, got %s (scores %v)", result.Kind, result.Scores)
	}
	for kind, score := range result.Scores {
		if score != 0 {
			t.Fatalf("expected zero score for %s, got %d", kind, score)
		}
	}
}

func TestClassifyTieGoesToFirstRegisteredType(t *testing.T) {
	// one aadhaar pattern and one pan pattern each match exactly once
	text := "aadhaar / income tax"

	result := Classify(text)
	if result.Scores[domain.TypeAadhaar] != 1 || result.Scores[domain.TypePAN] != 1 {
		t.Fatalf("expected a 1-1 tie, got %v", result.Scores)
	}
	if result.Kind != domain.TypeAadhaar {
		t.Fatalf("tie should resolve to the first registered type, got %s", result.Kind)
	}
}

func TestClassifyScoresEveryRegisteredType(t *testing.T) {
	result := Classify("salary slip with net pay")
	expected := []domain.TypeKind{
		domain.TypeAadhaar, domain.TypePAN, domain.TypeSalarySlip,
		domain.TypeITR, domain.TypeBankStatement, domain.TypeCIBILReport,
	}
	for _, kind := range expected {
		if _, ok := result.Scores[kind]; !ok {
			t.Fatalf("missing score entry for %s", kind)
		}
	}
	if result.Kind != domain.TypeSalarySlip {
		t.Fatalf("expected salary_slip, got %s", result.Kind)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	text := "Bank Statement\nAccount Number: 123456789\nCurrent Balance: 50,000"
	first := Classify(text)
	for i := 0; i < 5; i++ {
		again := Classify(text)
		if again.Kind != first.Kind {
			t.Fatalf("classification changed between calls: %s vs %s", first.Kind, again.Kind)
		}
	}
	if first.Kind != domain.TypeBankStatement {
		t.Fatalf("expected bank_statement, got %s", first.Kind)
	}
}
