package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

type Document struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	MimeType    string         `json:"mime_type"`
	StoragePath string         `json:"storage_path"`
	DocType     TypeKind       `json:"document_type,omitempty"`
	Confidence  float64        `json:"confidence,omitempty"`
	Valid       bool           `json:"is_valid,omitempty"`
	Status      DocumentStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Analysis is everything the worker derives from one document: the
// classification, the extracted field set and the verification verdict.
type Analysis struct {
	DocumentID     string         `json:"document_id"`
	Classification Classification `json:"classification"`
	Extraction     Extraction     `json:"extraction"`
	Verdict        Verdict        `json:"verification"`
	CreatedAt      time.Time      `json:"created_at"`
}
