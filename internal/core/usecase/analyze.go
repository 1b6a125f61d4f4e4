package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/classify"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/extract"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/verify"
)

// minUsableText is the threshold under which supplied text is treated as
// "extraction not possible" and classification is skipped.
const minUsableText = 10

// AnalyzeUseCase is the stateless classify→extract→verify chain. Each call
// operates only on its inputs and the immutable registry, so any number of
// documents may be analyzed concurrently.
type AnalyzeUseCase struct {
	extractor *extract.FieldExtractor
}

func NewAnalyzeUseCase(extractor *extract.FieldExtractor) *AnalyzeUseCase {
	return &AnalyzeUseCase{extractor: extractor}
}

func (uc *AnalyzeUseCase) Analyze(ctx context.Context, text, filename string) (*domain.Analysis, error) {
	if len(strings.TrimSpace(text)) < minUsableText {
		return nil, domain.WrapError(domain.ErrInvalidInput, "analyze text",
			errors.New("text too short, extraction not possible"))
	}

	classification := classify.Classify(text)
	extraction := uc.extractor.Extract(ctx, text, classification.Kind, filename)
	verdict := verify.Document(classification.Kind, extraction)

	return &domain.Analysis{
		Classification: classification,
		Extraction:     extraction,
		Verdict:        verdict,
		CreatedAt:      time.Now().UTC(),
	}, nil
}
