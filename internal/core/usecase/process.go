package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/classify"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/extract"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/ports"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/verify"
)

// AnalysisObserver sees every completed analysis before it is persisted.
// Used for metrics; a nil observer is ignored.
type AnalysisObserver interface {
	ObserveAnalysis(analysis *domain.Analysis)
}

type ProcessDocumentUseCase struct {
	repo      ports.DocumentRepository
	source    ports.TextSource
	extractor *extract.FieldExtractor
	observer  AnalysisObserver
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	source ports.TextSource,
	extractor *extract.FieldExtractor,
	observer AnalysisObserver,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:      repo,
		source:    source,
		extractor: extractor,
		observer:  observer,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	analysis, err := uc.processPipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveAnalysis(ctx, analysis); err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("save analysis: %w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save analysis: %w", err)
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}

	return nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, documentID string) (*domain.Analysis, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}

	text, err := uc.source.Text(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("read document text: %w", err)
	}
	if len(strings.TrimSpace(text)) < minUsableText {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read document text",
			errors.New("no usable text, extraction not possible"))
	}

	classification := classify.Classify(text)
	extraction := uc.extractor.Extract(ctx, text, classification.Kind, doc.Filename)
	verdict := verify.Document(classification.Kind, extraction)

	analysis := &domain.Analysis{
		DocumentID:     doc.ID,
		Classification: classification,
		Extraction:     extraction,
		Verdict:        verdict,
		CreatedAt:      time.Now().UTC(),
	}
	if uc.observer != nil {
		uc.observer.ObserveAnalysis(analysis)
	}
	return analysis, nil
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
