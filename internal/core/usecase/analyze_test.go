package usecase

import (
	"context"
	"testing"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
)

func TestAnalyzeRunsFullPipeline(t *testing.T) {
	uc := NewAnalyzeUseCase(newTestExtractor())

	analysis, err := uc.Analyze(context.Background(), "Aadhaar Card UIDAI 2345 6789 0106", "aadhaar.txt")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if analysis.Classification.Kind != domain.TypeAadhaar {
		t.Fatalf("expected aadhaar, got %s", analysis.Classification.Kind)
	}
	if analysis.Extraction.Filename != "aadhaar.txt" {
		t.Fatalf("expected filename carried through, got %s", analysis.Extraction.Filename)
	}
	if !analysis.Verdict.IsValid {
		t.Fatalf("expected valid verdict, got %+v", analysis.Verdict)
	}
	if analysis.CreatedAt.IsZero() {
		t.Fatalf("expected analysis timestamp")
	}
}

func TestAnalyzeRejectsTooShortText(t *testing.T) {
	uc := NewAnalyzeUseCase(newTestExtractor())

	_, err := uc.Analyze(context.Background(), "   short  ", "note.txt")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
}

func TestAnalyzeUnclassifiedTextStillAnswers(t *testing.T) {
	uc := NewAnalyzeUseCase(newTestExtractor())

	analysis, err := uc.Analyze(context.Background(), "a plain note about the weather today", "note.txt")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if analysis.Classification.Kind != domain.TypeOther {
		t.Fatalf("expected other, got %s", analysis.Classification.Kind)
	}
	if analysis.Extraction.Method != domain.MethodFailed {
		t.Fatalf("expected failed extraction for patternless text, got %s", analysis.Extraction.Method)
	}
	if analysis.Verdict.IsValid {
		t.Fatalf("expected failing verdict for unclassified text")
	}
}

func TestAnalyzeIsDeterministicForSameInput(t *testing.T) {
	uc := NewAnalyzeUseCase(newTestExtractor())

	text := "Permanent Account Number ABCDE1234F income tax department"
	first, err := uc.Analyze(context.Background(), text, "pan.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Analyze(context.Background(), text, "pan.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Classification.Kind != second.Classification.Kind {
		t.Fatalf("classification diverged: %s vs %s", first.Classification.Kind, second.Classification.Kind)
	}
	if first.Verdict.IsValid != second.Verdict.IsValid {
		t.Fatalf("verdict diverged")
	}
}
