package metrics

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize composes the text to NFC, lower-cases it, drops punctuation,
// collapses whitespace runs to a single space and trims both ends.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)

	var sb strings.Builder
	sb.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = sb.Len() > 0
		case unicode.IsPunct(r):
		default:
			if pendingSpace {
				sb.WriteByte(' ')
				pendingSpace = false
			}
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}

// IsBlank reports whether text is empty or only whitespace.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
