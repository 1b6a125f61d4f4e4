// Package httpadapter exposes the document pipeline over HTTP: upload,
// status, analysis retrieval, stateless analyze/verify, and a spreadsheet
// report of processed documents.
package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/ports"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/verify"
	"github.com/pulakdeshmukh/loan-document-processor/internal/observability/metrics"
)

// maxUploadBytes caps a single multipart upload.
const maxUploadBytes = 32 << 20

type Options struct {
	// Service is the metrics label for this binary.
	Service        string
	Metrics        *metrics.HTTPServerMetrics
	RateLimitRPS   float64
	RateLimitBurst int
	MaxInFlight    int
	// AcquireWait bounds how long a request waits for an in-flight slot
	// before being shed. Zero means shed immediately.
	AcquireWait time.Duration
}

type Server struct {
	ingestor ports.DocumentIngestor
	analyzer ports.DocumentAnalyzer
	repo     ports.DocumentRepository
	exporter ports.ReportExporter
	metrics  *metrics.HTTPServerMetrics
	service  string
}

// NewHandler wires the API routes with the traffic-control and observability
// middleware stack applied outermost-first: request id, access log, rate
// limit, backpressure, metrics.
func NewHandler(
	ingestor ports.DocumentIngestor,
	analyzer ports.DocumentAnalyzer,
	repo ports.DocumentRepository,
	exporter ports.ReportExporter,
	options Options,
) http.Handler {
	service := options.Service
	if service == "" {
		service = "loan-doc-api"
	}
	s := &Server{
		ingestor: ingestor,
		analyzer: analyzer,
		repo:     repo,
		exporter: exporter,
		metrics:  options.Metrics,
		service:  service,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("POST /v1/documents", s.handleUpload)
	mux.HandleFunc("GET /v1/documents/{document_id}", s.handleGetDocument)
	mux.HandleFunc("GET /v1/documents/{document_id}/analysis", s.handleGetAnalysis)
	mux.HandleFunc("POST /v1/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /v1/verify", s.handleVerify)
	mux.HandleFunc("GET /v1/reports/documents.xlsx", s.handleExportReport)

	var handler http.Handler = mux
	if options.Metrics != nil {
		handler = options.Metrics.Middleware(service, handler)
	}
	handler = backpressureMiddleware(handler, options.MaxInFlight, options.AcquireWait)
	handler = rateLimitMiddleware(handler, options.RateLimitRPS, options.RateLimitBurst)
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "parse upload",
			fmt.Errorf("multipart field %q is required", "file")))
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if filename == "" || filename == "." {
		writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "parse upload",
			errors.New("filename is required")))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(filename))
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	doc, err := s.ingestor.Upload(r.Context(), filename, mimeType, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/v1/documents/"+doc.ID)
	writeJSON(w, http.StatusAccepted, doc)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	documentID := r.PathValue("document_id")

	doc, err := s.repo.GetByID(r.Context(), documentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	documentID := r.PathValue("document_id")

	analysis, err := s.repo.GetAnalysis(r.Context(), documentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

type analyzeRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	filename := req.Filename
	if filename == "" {
		filename = "inline-text"
	}

	analysis, err := s.analyzer.Analyze(r.Context(), req.Text, filename)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RecordAnalyze(s.service, string(analysis.Classification.Kind))
	}
	writeJSON(w, http.StatusOK, analysis)
}

type verifyRequest struct {
	DocumentType string `json:"document_type"`
	Value        string `json:"value"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	kind, ok := domain.ParseTypeKind(req.DocumentType)
	if !ok {
		writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "verify",
			fmt.Errorf("unknown document_type %q", req.DocumentType)))
		return
	}
	if strings.TrimSpace(req.Value) == "" {
		writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "verify",
			errors.New("value is required")))
		return
	}

	var verdict domain.Verdict
	switch kind {
	case domain.TypeAadhaar:
		verdict = verify.Aadhaar(req.Value)
	case domain.TypePAN:
		verdict = verify.PAN(req.Value)
	case domain.TypeCIBILReport:
		verdict = verify.CIBILScore(req.Value)
	default:
		writeError(w, r, domain.WrapError(domain.ErrInvalidInput, "verify",
			fmt.Errorf("no verification routine for document_type %q", req.DocumentType)))
		return
	}

	if s.metrics != nil {
		s.metrics.RecordVerify(s.service, string(kind), verdict.IsValid)
	}
	writeJSON(w, http.StatusOK, verdict)
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="documents.xlsx"`)

	if err := s.exporter.Export(r.Context(), w); err != nil {
		// headers may already be out; a truncated body is the only signal left
		slog.Error("export report",
			"request_id", requestIDFromContext(r.Context()),
			"error", err,
		)
	}
}

func decodeJSONBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return domain.WrapError(domain.ErrInvalidInput, "decode request body", err)
	}
	return nil
}
