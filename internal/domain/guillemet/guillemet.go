// Package guillemet detects French quotation spans (« … ») in plain text.
//
// Guillemets are directional, so balance can be checked with a simple
// counter. Nesting is recognised one level deep only: true nested
// quotations are rare in the editorial corpus and are left for a human.
package guillemet

import (
	"regexp"
	"strings"

	m "modecitation.dev/pkg/modecitation/internal/model"
)

const (
	// Open is the opening guillemet.
	Open = '«'
	// Close is the closing guillemet.
	Close = '»'
)

var (
	spanPattern           = regexp.MustCompile(`«[^«]*?»`)
	nestedPattern         = regexp.MustCompile(`«[^«]*«.*»[^«]*?»`)
	multipleQuotesPattern = regexp.MustCompile(`«[^«»]*?»[^«»]*«[^«»]*?»`)
)

// FindSpans returns the non-overlapping « … » spans of text, left to right.
// The first » after an « closes the span.
func FindSpans(text string) []m.Span {
	matches := spanPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	spans := make([]m.Span, 0, len(matches))
	for _, match := range matches {
		spans = append(spans, m.Span{Start: match[0], End: match[1]})
	}

	return spans
}

// HasNestedQuotes reports whether text holds a closed quotation enclosed in
// an outer one, as in "« outer « inner » still outer »".
func HasNestedQuotes(text string) bool {
	return nestedPattern.MatchString(text)
}

// HasMultipleQuotesInSameFormattingRun reports whether text holds two
// complete, disjoint quotations.
func HasMultipleQuotesInSameFormattingRun(text string) bool {
	return multipleQuotesPattern.MatchString(text)
}

// IsProperlyBalanced reports whether every » closes a previous « and every
// « is closed.
func IsProperlyBalanced(text string) bool {
	depth := 0

	for _, r := range text {
		switch r {
		case Open:
			depth++
		case Close:
			if depth == 0 {
				return false
			}

			depth--
		}
	}

	return depth == 0
}

// ContainsGuillemet reports whether text holds an opening or closing guillemet.
func ContainsGuillemet(text string) bool {
	return strings.ContainsRune(text, Open) || strings.ContainsRune(text, Close)
}

// IsWholeQuotation reports whether the trimmed text starts with « and ends
// with », without holding several disjoint quotations.
func IsWholeQuotation(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, string(Open)) || !strings.HasSuffix(trimmed, string(Close)) {
		return false
	}

	return !HasMultipleQuotesInSameFormattingRun(trimmed)
}

// LastUnclosedOpen returns the byte offset of the last « in text that is
// not followed by any guillemet, or -1.
func LastUnclosedOpen(text string) int {
	idx := strings.LastIndex(text, string(Open))
	if idx < 0 {
		return -1
	}

	if ContainsGuillemet(text[idx+len(string(Open)):]) {
		return -1
	}

	return idx
}

// FirstCloseBeforeOpen returns the byte offset just past the first » in
// text, provided no « precedes it, or -1.
func FirstCloseBeforeOpen(text string) int {
	closeIdx := strings.IndexRune(text, Close)
	if closeIdx < 0 {
		return -1
	}

	if strings.ContainsRune(text[:closeIdx], Open) {
		return -1
	}

	return closeIdx + len(string(Close))
}
