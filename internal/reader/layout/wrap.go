// Package layout reflows raw text into display lines bounded by a character
// budget.
//
// Wrapping is a pure function of the text and the budget: the same inputs
// always produce the same lines, which is what lets a resize re-wrap the
// current document without carrying any layout state across.
package layout

import "strings"

// Placeholder is the content of a display line produced by an empty
// paragraph. It is a non-breaking space so the line still occupies a row.
const Placeholder = " "

// Normalize collapses CRLF pairs to a single LF.
func Normalize(raw string) string {
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

// Paragraphs splits normalized text on LF. Empty text has no paragraphs.
func Paragraphs(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(Normalize(raw), "\n")
}

// Wrap lays out raw text with the given character budget and returns the
// display lines in reading order. A budget below 1 is treated as 1.
func Wrap(raw string, budget int) []string {
	if budget < 1 {
		budget = 1
	}

	var lines []string
	for _, para := range Paragraphs(raw) {
		lines = appendParagraph(lines, para, budget)
	}
	return lines
}

// WrapParagraph lays out a single paragraph.
func WrapParagraph(para string, budget int) []string {
	if budget < 1 {
		budget = 1
	}
	return appendParagraph(nil, para, budget)
}

func appendParagraph(lines []string, para string, budget int) []string {
	if para == "" {
		return append(lines, Placeholder)
	}

	remaining := []rune(para)
	for len(remaining) > budget {
		// Only the first budget characters are candidates; a space sitting
		// exactly at the budget does not count as a break opportunity.
		breakIndex := lastSpace(remaining[:budget])
		if breakIndex <= 0 {
			breakIndex = budget
		}

		lines = append(lines, lineText(remaining[:breakIndex]))

		remaining = remaining[breakIndex:]
		if len(remaining) > 0 && remaining[0] == ' ' {
			remaining = remaining[1:]
		}
	}

	return append(lines, lineText(remaining))
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}

func lineText(runes []rune) string {
	if len(runes) == 0 {
		return Placeholder
	}
	return string(runes)
}

// IsPlaceholder reports whether a display line is the blank placeholder.
func IsPlaceholder(line string) bool {
	return line == Placeholder
}
