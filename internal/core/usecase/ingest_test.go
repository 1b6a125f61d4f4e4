package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
)

type ingestRepoFake struct {
	created *domain.Document
	err     error
}

func (f *ingestRepoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.err != nil {
		return f.err
	}
	copyDoc := *doc
	f.created = &copyDoc
	return nil
}

func (f *ingestRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	return nil, errors.New("not implemented")
}
func (f *ingestRepoFake) UpdateStatus(context.Context, string, domain.DocumentStatus, string) error {
	return errors.New("not implemented")
}
func (f *ingestRepoFake) SaveAnalysis(context.Context, *domain.Analysis) error {
	return errors.New("not implemented")
}
func (f *ingestRepoFake) GetAnalysis(context.Context, string) (*domain.Analysis, error) {
	return nil, errors.New("not implemented")
}
func (f *ingestRepoFake) ListProcessed(context.Context, int) ([]domain.Document, error) {
	return nil, errors.New("not implemented")
}

type ingestStorageFake struct {
	savedKey  string
	savedBody string
	err       error
}

func (f *ingestStorageFake) Save(_ context.Context, key string, data io.Reader) error {
	if f.err != nil {
		return f.err
	}
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.savedKey = key
	f.savedBody = string(raw)
	return nil
}

func (f *ingestStorageFake) Open(context.Context, string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

type ingestQueueFake struct {
	documentID string
	err        error
}

func (f *ingestQueueFake) PublishDocumentUploaded(_ context.Context, documentID string) error {
	if f.err != nil {
		return f.err
	}
	f.documentID = documentID
	return nil
}

func (f *ingestQueueFake) SubscribeDocumentUploaded(context.Context, func(context.Context, string) error) error {
	return errors.New("not implemented")
}

func TestIngestUploadSuccess(t *testing.T) {
	repo := &ingestRepoFake{}
	storage := &ingestStorageFake{}
	queue := &ingestQueueFake{}
	uc := NewIngestDocumentUseCase(repo, storage, queue)

	doc, err := uc.Upload(context.Background(), "aadhaar scan.pdf", "application/pdf", bytes.NewBufferString("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if doc.ID == "" {
		t.Fatalf("expected document id")
	}
	if doc.Status != domain.StatusUploaded {
		t.Fatalf("expected uploaded status, got %s", doc.Status)
	}
	if storage.savedBody != "%PDF-1.4" {
		t.Fatalf("expected body persisted, got %q", storage.savedBody)
	}
	if !strings.HasPrefix(storage.savedKey, doc.ID+"_") {
		t.Fatalf("storage key should be prefixed with the document id, got %q", storage.savedKey)
	}
	if strings.Contains(storage.savedKey, " ") {
		t.Fatalf("storage key should be sanitized, got %q", storage.savedKey)
	}
	if queue.documentID != doc.ID {
		t.Fatalf("expected upload event for %s, got %s", doc.ID, queue.documentID)
	}
	if repo.created == nil || repo.created.Filename != "aadhaar scan.pdf" {
		t.Fatalf("expected original filename persisted, got %+v", repo.created)
	}
}

func TestIngestUploadStorageFailure(t *testing.T) {
	uc := NewIngestDocumentUseCase(&ingestRepoFake{}, &ingestStorageFake{err: errors.New("disk full")}, &ingestQueueFake{})

	_, err := uc.Upload(context.Background(), "a.txt", "text/plain", bytes.NewBufferString("x"))
	if err == nil {
		t.Fatalf("expected storage error to surface")
	}
}

func TestIngestUploadRepoFailure(t *testing.T) {
	uc := NewIngestDocumentUseCase(&ingestRepoFake{err: errors.New("db down")}, &ingestStorageFake{}, &ingestQueueFake{})

	_, err := uc.Upload(context.Background(), "a.txt", "text/plain", bytes.NewBufferString("x"))
	if err == nil {
		t.Fatalf("expected repo error to surface")
	}
}

func TestIngestUploadQueueFailure(t *testing.T) {
	uc := NewIngestDocumentUseCase(&ingestRepoFake{}, &ingestStorageFake{}, &ingestQueueFake{err: errors.New("nats down")})

	_, err := uc.Upload(context.Background(), "a.txt", "text/plain", bytes.NewBufferString("x"))
	if err == nil {
		t.Fatalf("expected queue error to surface")
	}
}
