// Package extract orchestrates the two-tier field extraction: the generative
// extractor first, a deterministic regex fallback when it is unconfigured,
// unreachable or answers garbage. Extraction never surfaces an error for bad
// input; the worst outcome is a result with method "failed" and zero fields.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/ports"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/registry"
)

const defaultMaxPromptChars = 3000

type FieldExtractor struct {
	gen      ports.FieldGenerator
	timeout  time.Duration
	maxChars int
}

// New builds a FieldExtractor. A nil generator is a legal, explicit
// "unconfigured" state: every extraction then goes straight to the regex
// fallback.
func New(gen ports.FieldGenerator, timeout time.Duration, maxPromptChars int) *FieldExtractor {
	if maxPromptChars <= 0 {
		maxPromptChars = defaultMaxPromptChars
	}
	return &FieldExtractor{gen: gen, timeout: timeout, maxChars: maxPromptChars}
}

// Extract runs both tiers in order and always returns a usable result.
func (x *FieldExtractor) Extract(ctx context.Context, text string, kind domain.TypeKind, filename string) domain.Extraction {
	if fields, confidence, err := x.generative(ctx, text, kind); err == nil {
		return domain.Extraction{
			Fields:      fields,
			Confidence:  confidence,
			DocType:     kind,
			Filename:    filename,
			ProcessedAt: time.Now().UTC(),
			Method:      domain.MethodAI,
		}
	} else {
		slog.Debug("generative extraction failed, applying regex fallback",
			"document_type", string(kind), "filename", filename, "error", err)
	}

	if fields := fallbackFields(text); len(fields) > 0 {
		return domain.Extraction{
			Fields:      fields,
			Confidence:  0,
			DocType:     kind,
			Filename:    filename,
			ProcessedAt: time.Now().UTC(),
			Method:      domain.MethodRegex,
		}
	}

	return domain.Extraction{
		Fields:      map[string]string{},
		Confidence:  0,
		DocType:     kind,
		Filename:    filename,
		ProcessedAt: time.Now().UTC(),
		Method:      domain.MethodFailed,
		Detail:      "no fields could be extracted by any method",
	}
}

func (x *FieldExtractor) generative(ctx context.Context, text string, kind domain.TypeKind) (map[string]string, float64, error) {
	if x.gen == nil {
		return nil, 0, fmt.Errorf("generative extractor not configured")
	}

	spec, err := registry.Lookup(kind)
	if err != nil {
		// the unclassified sentinel has no extraction schema
		return nil, 0, err
	}

	callCtx := ctx
	if x.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, x.timeout)
		defer cancel()
	}

	raw, err := x.gen.GenerateFields(callCtx, buildPrompt(spec, capText(text, x.maxChars)))
	if err != nil {
		return nil, 0, fmt.Errorf("generate fields: %w", err)
	}

	return parseModelJSON(raw)
}

// parseModelJSON tolerates the documented quirks of the generative extractor:
// a leading ```json fence and a trailing ``` are stripped before parsing, and
// scalar values are coerced to strings.
func parseModelJSON(raw string) (map[string]string, float64, error) {
	cleaned := stripCodeFences(raw)

	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, 0, fmt.Errorf("parse model response: %w", err)
	}

	fields := make(map[string]string, len(payload))
	confidence := 0.0
	for k, v := range payload {
		if k == "confidence" {
			if f, ok := v.(float64); ok {
				confidence = clampConfidence(f)
			}
			continue
		}
		switch t := v.(type) {
		case string:
			fields[k] = t
		case float64:
			fields[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			fields[k] = fmt.Sprintf("%t", t)
		case nil:
			fields[k] = domain.NotAvailable
		default:
			// nested objects/arrays are not part of any schema; skip them
		}
	}
	return fields, confidence, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

func clampConfidence(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return f
}
