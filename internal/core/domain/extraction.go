package domain

import (
	"encoding/json"
	"time"
)

type ExtractionMethod string

const (
	MethodAI     ExtractionMethod = "ai"
	MethodRegex  ExtractionMethod = "regex"
	MethodFailed ExtractionMethod = "failed"
)

// NotAvailable is the value the generative extractor is instructed to emit
// for fields it cannot find.
const NotAvailable = "Not Available"

// Extraction is one extraction attempt over one document. Confidence is the
// extractor's self-reported reliability in [0,100]; regex and failed results
// carry 0.
type Extraction struct {
	Fields      map[string]string
	Confidence  float64
	DocType     TypeKind
	Filename    string
	ProcessedAt time.Time
	Method      ExtractionMethod
	Detail      string
}

// MarshalJSON flattens the field map into the top-level object alongside the
// metadata keys, which is the wire shape downstream consumers expect.
func (e Extraction) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Fields)+5)
	for k, v := range e.Fields {
		out[k] = v
	}
	out["confidence"] = e.Confidence
	out["document_type"] = string(e.DocType)
	out["filename"] = e.Filename
	out["processed_at"] = e.ProcessedAt.Format(time.RFC3339)
	out["extraction_method"] = string(e.Method)
	if e.Detail != "" {
		out["detail"] = e.Detail
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the flattened shape: known metadata keys are lifted
// out, everything else becomes a field.
func (e *Extraction) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Fields = make(map[string]string)
	for k, v := range raw {
		switch k {
		case "confidence":
			if f, ok := v.(float64); ok {
				e.Confidence = f
			}
		case "document_type":
			if s, ok := v.(string); ok {
				e.DocType = TypeKind(s)
			}
		case "filename":
			if s, ok := v.(string); ok {
				e.Filename = s
			}
		case "processed_at":
			if s, ok := v.(string); ok {
				if t, err := time.Parse(time.RFC3339, s); err == nil {
					e.ProcessedAt = t
				}
			}
		case "extraction_method":
			if s, ok := v.(string); ok {
				e.Method = ExtractionMethod(s)
			}
		case "detail":
			if s, ok := v.(string); ok {
				e.Detail = s
			}
		default:
			if s, ok := v.(string); ok {
				e.Fields[k] = s
			}
		}
	}
	return nil
}

// Field returns the first present value among the given keys. The generative
// path answers with display-cased keys while the schema uses snake_case, so
// lookups probe both spellings.
func (e Extraction) Field(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := e.Fields[k]; ok && v != "" && v != NotAvailable {
			return v, true
		}
	}
	return "", false
}
