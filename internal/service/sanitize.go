package service

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const codeFence = "```"

// markupFenceTags are the language tags whose fence opener is stripped first.
var markupFenceTags = []string{"html", "markdown", "md"}

// SanitizeCompletion removes code fencing the model may wrap around its answer.
// The strip sequence runs until the text stops changing, so applying it to an
// already sanitized string is a no-op.
func SanitizeCompletion(raw string) string {
	out := strings.TrimSpace(raw)
	for {
		next := stripFences(out)
		if next == out {
			return out
		}
		out = next
	}
}

func stripFences(s string) string {
	if rest, ok := trimMarkupOpener(s); ok {
		s = strings.TrimSpace(rest)
	} else if strings.HasPrefix(s, codeFence) {
		s = strings.TrimSpace(s[len(codeFence):])
	}
	if strings.HasSuffix(s, codeFence) {
		s = strings.TrimSpace(s[:len(s)-len(codeFence)])
	}
	return s
}

// trimMarkupOpener strips a fence opener such as "```html" when the tag ends
// at a word boundary: the end of the text or any rune that is not a letter or
// digit. "```html<p>" is stripped, "```htmlx" is not.
func trimMarkupOpener(s string) (string, bool) {
	if !strings.HasPrefix(s, codeFence) {
		return s, false
	}
	after := s[len(codeFence):]
	for _, tag := range markupFenceTags {
		if !strings.HasPrefix(strings.ToLower(after), tag) {
			continue
		}
		rest := after[len(tag):]
		if rest == "" {
			return rest, true
		}
		if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return rest, true
		}
	}
	return s, false
}
