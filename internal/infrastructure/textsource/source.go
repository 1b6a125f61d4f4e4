// Package textsource turns stored artifacts back into raw UTF-8 text. Plain
// text passes through; PDFs go through the pdf text extractor. Scanned
// images are out of scope: a document with no text layer simply yields empty
// text, which the pipeline reports as "extraction not possible".
package textsource

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/ports"
)

type Source struct {
	storage ports.ObjectStorage
}

func New(storage ports.ObjectStorage) *Source {
	return &Source{storage: storage}
}

func (s *Source) Text(ctx context.Context, doc *domain.Document) (string, error) {
	reader, err := s.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return "", fmt.Errorf("open stored document: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read stored document: %w", err)
	}

	if isPDF(doc, data) {
		return pdfText(data)
	}
	return plainText(data), nil
}

func isPDF(doc *domain.Document, data []byte) bool {
	if strings.EqualFold(doc.MimeType, "application/pdf") {
		return true
	}
	if strings.EqualFold(filepath.Ext(doc.Filename), ".pdf") {
		return true
	}
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
