package extract

import "regexp"

// The deterministic fallback table. First match per pattern wins; fields
// without a match are simply absent. These recover the identifiers the
// verifier needs even when the generative extractor is down.
var fallbackPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"Aadhaar Number", regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)},
	{"PAN Number", regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)},
	{"Phone Number", regexp.MustCompile(`(\+91[-\s]?\d{10}|\b\d{10}\b)`)},
	{"Date of Birth", regexp.MustCompile(`(?i)(?:DOB[:\s]*)?(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)},
	{"Year of Birth", regexp.MustCompile(`(?i)YOB[:\s]*(\d{4})`)},
	{"CIBIL Score", regexp.MustCompile(`(?i)(?:cibil|credit)?\s*score[:\s]*(\d{3})`)},
	{"Net Pay", regexp.MustCompile(`(?i)(?:net\s*pay|net\s*salary)[:\s]*₹?\s*([\d,]+)`)},
	{"Gross Pay", regexp.MustCompile(`(?i)(?:gross\s*pay|gross\s*salary)[:\s]*₹?\s*([\d,]+)`)},
	{"Account Number", regexp.MustCompile(`(?i)(?:account\s*no|a/c\s*no)[:\s]*(\d{9,18})`)},
}

// fallbackFields applies the fixed table against the full raw text. It never
// fails; an empty map is the only outcome besides matches.
func fallbackFields(text string) map[string]string {
	fields := make(map[string]string)
	for _, entry := range fallbackPatterns {
		match := entry.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value := match[0]
		if len(match) > 1 && match[1] != "" {
			value = match[1]
		}
		fields[entry.name] = value
	}
	return fields
}
