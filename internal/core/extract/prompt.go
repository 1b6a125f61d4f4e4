package extract

import (
	"strings"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/registry"
)

// selfReportedConfidence is the confidence value the prompt seeds the model
// with; the model may revise it.
const selfReportedConfidence = "85"

// buildPrompt composes the type-specific extraction request. The schema keys
// come from the registry spec (the richer prompt field list when the type has
// one), so the prompt stays declarative data plus one generic builder.
func buildPrompt(spec registry.TypeSpec, text string) string {
	fields := spec.PromptFields
	if len(fields) == 0 {
		fields = spec.RequiredFields
	}

	var b strings.Builder
	b.WriteString("Analyze this ")
	b.WriteString(spec.Name)
	b.WriteString(" document and extract information. Return ONLY valid JSON:\n{\n")
	for _, f := range fields {
		b.WriteString("    \"")
		b.WriteString(f)
		b.WriteString("\": \"...\",\n")
	}
	b.WriteString("    \"confidence\": ")
	b.WriteString(selfReportedConfidence)
	b.WriteString("\n}\n\nIf a field is not found, use \"Not Available\".\nText: ")
	b.WriteString(text)
	return b.String()
}

// capText bounds the prompt input to the first max runes so prompt size never
// grows with document size.
func capText(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
