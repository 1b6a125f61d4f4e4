package ports

import (
	"context"
	"io"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
)

// DocumentIngestor accepts an uploaded artifact and queues it for processing.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor runs the classify→extract→verify pipeline for a stored
// document.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// DocumentAnalyzer runs the stateless pipeline over caller-supplied text.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, text, filename string) (*domain.Analysis, error)
}

// ReportExporter renders processed documents into a spreadsheet.
type ReportExporter interface {
	Export(ctx context.Context, w io.Writer) error
}
