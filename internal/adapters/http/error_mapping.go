package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := http.StatusInternalServerError
	message := "internal error"

	switch {
	case domain.IsKind(err, domain.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case domain.IsKind(err, domain.ErrDocumentNotFound):
		statusCode = http.StatusNotFound
		message = "document not found"
	case domain.IsKind(err, domain.ErrAnalysisNotFound):
		statusCode = http.StatusNotFound
		message = "analysis not found"
	case domain.IsKind(err, domain.ErrTemporary):
		statusCode = http.StatusServiceUnavailable
		message = "temporarily unavailable, try again later"
	}

	if statusCode == http.StatusInternalServerError {
		slog.Error("request failed",
			"request_id", requestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}

	writeJSON(w, statusCode, map[string]string{"error": message})
}
