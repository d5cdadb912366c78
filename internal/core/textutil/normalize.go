// Package textutil holds the text and number canonicalization helpers the
// parsers depend on. OCR output is noisy: accents get mangled, spacing is
// arbitrary and numeric punctuation mixes European and plain conventions.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, removes all whitespace and strips combining marks so
// keyword anchors match regardless of accents. Safe on any input, including
// the empty string.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	out, _, err := transform.String(stripMarks, text)
	if err != nil {
		return text
	}
	return out
}

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)
	underscores = regexp.MustCompile(`_+`)
)

// SanitizeFilename converts a filename to URL-safe ASCII for storage keys:
// accents are stripped, anything outside [a-zA-Z0-9_.-] becomes "_",
// repeated underscores collapse and leading/trailing ones are trimmed.
func SanitizeFilename(filename string) string {
	decomposed, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), filename)
	if err != nil {
		decomposed = filename
	}
	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, decomposed)
	safe := unsafeChars.ReplaceAllString(ascii, "_")
	safe = underscores.ReplaceAllString(safe, "_")
	return strings.Trim(safe, "_")
}
