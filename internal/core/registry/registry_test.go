package registry

import (
	"testing"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
)

func TestAllReturnsFixedRegistrationOrder(t *testing.T) {
	expected := []domain.TypeKind{
		domain.TypeAadhaar,
		domain.TypePAN,
		domain.TypeSalarySlip,
		domain.TypeITR,
		domain.TypeBankStatement,
		domain.TypeCIBILReport,
	}

	specs := All()
	if len(specs) != len(expected) {
		t.Fatalf("expected %d specs, got %d", len(expected), len(specs))
	}
	for i, kind := range expected {
		if specs[i].Kind != kind {
			t.Fatalf("position %d: expected %s, got %s", i, kind, specs[i].Kind)
		}
	}
}

func TestEverySpecIsComplete(t *testing.T) {
	for _, spec := range All() {
		if spec.Name == "" {
			t.Fatalf("spec %s has no display name", spec.Kind)
		}
		if len(spec.Patterns) == 0 {
			t.Fatalf("spec %s has no recognition patterns", spec.Kind)
		}
		if len(spec.RequiredFields) == 0 {
			t.Fatalf("spec %s has no extraction schema", spec.Kind)
		}
	}
}

func TestLookupKnownKind(t *testing.T) {
	spec, err := Lookup(domain.TypePAN)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Name != "PAN Card" {
		t.Fatalf("expected PAN Card, got %s", spec.Name)
	}
}

func TestLookupOtherSentinelFails(t *testing.T) {
	_, err := Lookup(domain.TypeOther)
	if err == nil {
		t.Fatalf("expected error for the unclassified sentinel")
	}
	if !domain.IsKind(err, domain.ErrUnknownDocType) {
		t.Fatalf("expected ErrUnknownDocType, got %v", err)
	}
}

func TestLookupUnknownKindFails(t *testing.T) {
	_, err := Lookup(domain.TypeKind("passport"))
	if !domain.IsKind(err, domain.ErrUnknownDocType) {
		t.Fatalf("expected ErrUnknownDocType, got %v", err)
	}
}

func TestPatternsAreCaseInsensitive(t *testing.T) {
	spec, err := Lookup(domain.TypeAadhaar)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	matched := false
	for _, p := range spec.Patterns {
		if p.MatchString("AADHAAR") || p.MatchString("aadhaar") {
			matched = true
		}
	}
	if !matched {
		t.Fatalf("expected at least one pattern to match the type keyword")
	}
}

func TestValidationPatternsWhereDefined(t *testing.T) {
	aadhaar, _ := Lookup(domain.TypeAadhaar)
	if aadhaar.Validation == nil || !aadhaar.Validation.MatchString("2345 6789 0106") {
		t.Fatalf("expected aadhaar validation pattern to accept a canonical number")
	}
	pan, _ := Lookup(domain.TypePAN)
	if pan.Validation == nil || !pan.Validation.MatchString("ABCDE1234F") {
		t.Fatalf("expected pan validation pattern to accept a canonical number")
	}
}
