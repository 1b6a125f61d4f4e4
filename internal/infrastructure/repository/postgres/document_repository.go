package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
)

type DocumentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *DocumentRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082601)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	document_type TEXT,
	confidence DOUBLE PRECISION NOT NULL DEFAULT 0,
	is_valid BOOLEAN NOT NULL DEFAULT FALSE,
	status TEXT NOT NULL,
	error TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS document_analyses (
	document_id TEXT PRIMARY KEY REFERENCES documents(id) ON DELETE CASCADE,
	classification JSONB NOT NULL,
	extraction JSONB NOT NULL,
	verification JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return tx.Commit()
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	const query = `
INSERT INTO documents (id, filename, mime_type, storage_path, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Filename, doc.MimeType, doc.StoragePath,
		string(doc.Status), doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	const query = `
SELECT id, filename, mime_type, storage_path, document_type, confidence, is_valid, status, error, created_at, updated_at
FROM documents
WHERE id = $1`

	var (
		doc     domain.Document
		docType sql.NullString
		errMsg  sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID, &doc.Filename, &doc.MimeType, &doc.StoragePath,
		&docType, &doc.Confidence, &doc.Valid, &doc.Status, &errMsg,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", err)
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}

	doc.DocType = domain.TypeKind(docType.String)
	doc.Error = errMsg.String
	return &doc, nil
}

func (r *DocumentRepository) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	const query = `
UPDATE documents
SET status = $2, error = $3, updated_at = $4
WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update document status rows: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrDocumentNotFound, "update document status", sql.ErrNoRows)
	}
	return nil
}

func (r *DocumentRepository) SaveAnalysis(ctx context.Context, analysis *domain.Analysis) error {
	classificationJSON, err := json.Marshal(analysis.Classification)
	if err != nil {
		return fmt.Errorf("marshal classification: %w", err)
	}
	extractionJSON, err := json.Marshal(analysis.Extraction)
	if err != nil {
		return fmt.Errorf("marshal extraction: %w", err)
	}
	verdictJSON, err := json.Marshal(analysis.Verdict)
	if err != nil {
		return fmt.Errorf("marshal verdict: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin analysis tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsert = `
INSERT INTO document_analyses (document_id, classification, extraction, verification, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (document_id) DO UPDATE
SET classification = EXCLUDED.classification,
    extraction = EXCLUDED.extraction,
    verification = EXCLUDED.verification,
    created_at = EXCLUDED.created_at`

	if _, err := tx.ExecContext(ctx, upsert,
		analysis.DocumentID, classificationJSON, extractionJSON, verdictJSON, analysis.CreatedAt,
	); err != nil {
		return fmt.Errorf("upsert analysis: %w", err)
	}

	const update = `
UPDATE documents
SET document_type = $2, confidence = $3, is_valid = $4, updated_at = $5
WHERE id = $1`

	if _, err := tx.ExecContext(ctx, update,
		analysis.DocumentID, string(analysis.Classification.Kind),
		analysis.Extraction.Confidence, analysis.Verdict.IsValid, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("update document summary: %w", err)
	}

	return tx.Commit()
}

func (r *DocumentRepository) GetAnalysis(ctx context.Context, documentID string) (*domain.Analysis, error) {
	const query = `
SELECT document_id, classification, extraction, verification, created_at
FROM document_analyses
WHERE document_id = $1`

	var (
		analysis           domain.Analysis
		classificationJSON []byte
		extractionJSON     []byte
		verdictJSON        []byte
	)
	err := r.db.QueryRowContext(ctx, query, documentID).Scan(
		&analysis.DocumentID, &classificationJSON, &extractionJSON, &verdictJSON, &analysis.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.WrapError(domain.ErrAnalysisNotFound, "get analysis", err)
	}
	if err != nil {
		return nil, fmt.Errorf("query analysis: %w", err)
	}

	if err := json.Unmarshal(classificationJSON, &analysis.Classification); err != nil {
		return nil, fmt.Errorf("unmarshal classification: %w", err)
	}
	if err := json.Unmarshal(extractionJSON, &analysis.Extraction); err != nil {
		return nil, fmt.Errorf("unmarshal extraction: %w", err)
	}
	if err := json.Unmarshal(verdictJSON, &analysis.Verdict); err != nil {
		return nil, fmt.Errorf("unmarshal verdict: %w", err)
	}
	return &analysis, nil
}

func (r *DocumentRepository) ListProcessed(ctx context.Context, limit int) ([]domain.Document, error) {
	if limit <= 0 {
		limit = 500
	}

	const query = `
SELECT id, filename, mime_type, storage_path, document_type, confidence, is_valid, status, error, created_at, updated_at
FROM documents
WHERE status IN ($1, $2)
ORDER BY updated_at DESC
LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query,
		string(domain.StatusReady), string(domain.StatusFailed), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query processed documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var (
			doc     domain.Document
			docType sql.NullString
			errMsg  sql.NullString
		)
		if err := rows.Scan(
			&doc.ID, &doc.Filename, &doc.MimeType, &doc.StoragePath,
			&docType, &doc.Confidence, &doc.Valid, &doc.Status, &errMsg,
			&doc.CreatedAt, &doc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan processed document: %w", err)
		}
		doc.DocType = domain.TypeKind(docType.String)
		doc.Error = errMsg.String
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate processed documents: %w", err)
	}
	return docs, nil
}
