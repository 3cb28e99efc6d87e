// Package model defines the data structures shared by the quote-mode engine.
package model

import "strings"

// Path represents a file system path.
type Path string

// Source identifies an input document: a local path or an http(s) URL.
type Source string

// IsRemote reports whether the source must be fetched over HTTP.
func (s Source) IsRemote() bool {
	lower := strings.ToLower(string(s))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Target is where a transformed document is written.
// An empty target or "-" means standard output.
type Target string

// IsStdout reports whether the target designates standard output.
func (t Target) IsStdout() bool {
	return t == "" || t == "-"
}

// Span is a guillemet-delimited range inside a text run.
// Start and End are byte offsets, End is exclusive.
type Span struct {
	Start int
	End   int
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End - s.Start
}
