package textsource

import (
	"strings"
	"unicode/utf8"
)

// plainText normalizes raw bytes into usable UTF-8: invalid sequences are
// replaced and NUL bytes (common in OCR dumps) are dropped.
func plainText(data []byte) string {
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return strings.ReplaceAll(text, "\x00", "")
}
