package extraction

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Lines shorter than or equal to this many runes never carry a name.
const minLineLength = 3

// Document is the normalized view of a résumé text shared by all extractors.
type Document struct {
	// Raw is the caller's text as received.
	Raw string
	// Text is Raw with surrounding whitespace trimmed, invalid UTF-8 replaced
	// and accents composed (NFC).
	Text string
	// Lowered is Text lower-cased with diacritics stripped, used for keyword search.
	Lowered string
	// Lines holds the trimmed lines of Text longer than minLineLength runes, in order.
	Lines []string
}

// Normalize prepares raw text for extraction. It never fails: empty or
// whitespace-only input yields an empty document.
func Normalize(raw string) Document {
	// decomposed accents from PDFs and macOS files would fail the name check
	text := norm.NFC.String(strings.TrimSpace(strings.ToValidUTF8(raw, string(utf8.RuneError))))

	return Document{
		Raw:     raw,
		Text:    text,
		Lowered: fold(text),
		Lines:   splitLines(text),
	}
}

// fold lower-cases s and removes combining marks, so "Estagiário" becomes "estagiario".
func fold(s string) string {
	lowered := strings.ToLower(s)

	// transformers keep state, a fresh chain per call keeps fold safe for concurrent use
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lowered)
	if err != nil {
		return lowered
	}

	return folded
}

func splitLines(text string) []string {
	parts := strings.FieldsFunc(text, isLineBreak)

	lines := make([]string, 0, len(parts))
	for _, part := range parts {
		line := strings.TrimSpace(part)
		if utf8.RuneCountInString(line) > minLineLength {
			lines = append(lines, line)
		}
	}

	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\f', '\v', '\u2028', '\u2029':
		return true
	}
	return false
}

// truncateRunes cuts s to at most limit runes without splitting a UTF-8 sequence.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}

	return s
}
