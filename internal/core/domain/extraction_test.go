package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestExtractionMarshalFlattensFields(t *testing.T) {
	e := Extraction{
		Fields:      map[string]string{"pan_number": "ABCDE1234F", "name": "Ravi Kumar"},
		Confidence:  92,
		DocType:     TypePAN,
		Filename:    "pan.pdf",
		ProcessedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Method:      MethodAI,
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal wire shape: %v", err)
	}

	if out["pan_number"] != "ABCDE1234F" {
		t.Fatalf("field not flattened to top level: %v", out)
	}
	if out["confidence"] != float64(92) {
		t.Fatalf("expected confidence 92, got %v", out["confidence"])
	}
	if out["document_type"] != "pan" {
		t.Fatalf("expected document_type pan, got %v", out["document_type"])
	}
	if out["extraction_method"] != "ai" {
		t.Fatalf("expected extraction_method ai, got %v", out["extraction_method"])
	}
	if out["processed_at"] != "2026-03-14T10:30:00Z" {
		t.Fatalf("expected RFC3339 timestamp, got %v", out["processed_at"])
	}
	if _, ok := out["detail"]; ok {
		t.Fatalf("empty detail must be omitted")
	}
}

func TestExtractionRoundTrip(t *testing.T) {
	original := Extraction{
		Fields:      map[string]string{"aadhaar_number": "234567890106"},
		Confidence:  80,
		DocType:     TypeAadhaar,
		Filename:    "aadhaar.pdf",
		ProcessedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Method:      MethodAI,
		Detail:      "first attempt",
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored Extraction
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.Fields["aadhaar_number"] != "234567890106" {
		t.Fatalf("field lost in round trip: %v", restored.Fields)
	}
	if restored.Confidence != 80 || restored.DocType != TypeAadhaar || restored.Method != MethodAI {
		t.Fatalf("metadata lost in round trip: %+v", restored)
	}
	if !restored.ProcessedAt.Equal(original.ProcessedAt) {
		t.Fatalf("timestamp lost in round trip: %v", restored.ProcessedAt)
	}
	if restored.Detail != "first attempt" {
		t.Fatalf("detail lost in round trip: %q", restored.Detail)
	}
}

func TestFieldProbesAliasKeys(t *testing.T) {
	e := Extraction{Fields: map[string]string{"Aadhaar Number": "234567890106"}}

	if _, ok := e.Field("missing_key"); ok {
		t.Fatalf("expected miss for absent key")
	}
	value, ok := e.Field("aadhaar_number", "Aadhaar Number")
	if !ok || value != "234567890106" {
		t.Fatalf("expected alias probe to hit, got %q ok=%v", value, ok)
	}
}

func TestFieldSkipsEmptyAndNotAvailable(t *testing.T) {
	e := Extraction{Fields: map[string]string{
		"pan_number": "",
		"PAN Number": NotAvailable,
	}}
	if _, ok := e.Field("pan_number", "PAN Number"); ok {
		t.Fatalf("empty and Not Available values must not count as present")
	}
}

func TestParseTypeKind(t *testing.T) {
	if kind, ok := ParseTypeKind("cibil_report"); !ok || kind != TypeCIBILReport {
		t.Fatalf("expected cibil_report to parse, got %s ok=%v", kind, ok)
	}
	if _, ok := ParseTypeKind("passport"); ok {
		t.Fatalf("expected unknown type to be rejected")
	}
}
