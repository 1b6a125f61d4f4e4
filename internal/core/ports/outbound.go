package ports

import (
	"context"
	"io"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
)

// DocumentRepository persists document rows and their analyses.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveAnalysis(ctx context.Context, analysis *domain.Analysis) error
	GetAnalysis(ctx context.Context, documentID string) (*domain.Analysis, error)
	ListProcessed(ctx context.Context, limit int) ([]domain.Document, error)
}

// ObjectStorage stores source artifacts.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes uploaded-document events.
type MessageQueue interface {
	PublishDocumentUploaded(ctx context.Context, documentID string) error
	SubscribeDocumentUploaded(ctx context.Context, handler func(context.Context, string) error) error
}

// TextSource supplies raw UTF-8 text for a stored document. OCR and PDF
// parsing live behind this port; the core never sees bytes.
type TextSource interface {
	Text(ctx context.Context, doc *domain.Document) (string, error)
}

// FieldGenerator is the external generative extractor: prompt in, raw model
// text out. It may fail, time out, or answer with fenced or malformed JSON;
// callers own the fallback.
type FieldGenerator interface {
	GenerateFields(ctx context.Context, prompt string) (string, error)
}
