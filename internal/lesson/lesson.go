// Package lesson models practice texts and their attribution.
package lesson

import "strings"

const preambleSeparator = "---"

// Lesson is an immutable practice text with an optional source attribution.
type Lesson struct {
	Text   string
	Source string
}

// New builds a Lesson from raw input, extracting a preamble when present.
func New(raw string) Lesson {
	text, source := ParsePreamble(raw)
	return Lesson{Text: text, Source: source}
}

// ParsePreamble splits a "source: <value>\n---\n<body>" preamble from raw
// input. Without a preamble the whole input is the text and source is empty.
func ParsePreamble(raw string) (text, source string) {
	parts := strings.SplitN(raw, "\n", 3)
	if len(parts) < 3 {
		return raw, ""
	}
	rest, ok := strings.CutPrefix(parts[0], "source:")
	if !ok {
		return raw, ""
	}
	if strings.TrimSpace(parts[1]) != preambleSeparator {
		return raw, ""
	}
	return parts[2], strings.TrimSpace(rest)
}
