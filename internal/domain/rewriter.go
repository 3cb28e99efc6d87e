package domain

import (
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/antchfx/xmlquery"

	"modecitation.dev/pkg/modecitation/internal/domain/guillemet"
	m "modecitation.dev/pkg/modecitation/internal/model"
	"modecitation.dev/pkg/modecitation/pkg/xmltree"
)

const (
	// QuoteElement is the element wrapping a quotation.
	QuoteElement = "q"
	// QuoteClass is the class attribute value carried by every QuoteElement.
	QuoteClass = "containsQuotes"

	maxWarningRunes = 120
)

// NewQuote returns a detached quotation element.
func NewQuote() *xmlquery.Node {
	return xmltree.NewElement(QuoteElement, "class", QuoteClass)
}

// Rewriter turns guillemet spans found in text nodes into quotation
// elements. A Rewriter is not safe for concurrent use; each document gets
// its own.
type Rewriter struct {
	tally *m.Tally
}

// NewRewriter returns a Rewriter recording into tally. A nil tally is
// replaced by a private one.
func NewRewriter(tally *m.Tally) *Rewriter {
	if tally == nil {
		tally = &m.Tally{}
	}

	return &Rewriter{tally: tally}
}

// Tally returns the counters accumulated so far.
func (rw *Rewriter) Tally() *m.Tally {
	return rw.tally
}

// Rewrite applies the rewrite to a node selected by a rule: text nodes are
// wrapped directly, anything else is walked.
func (rw *Rewriter) Rewrite(node *xmlquery.Node) error {
	if node == nil {
		return nil
	}

	if xmltree.IsText(node) {
		if rw.skipNested(node) {
			return nil
		}

		_, err := rw.WrapQuotesInTextNode(node)

		return err
	}

	return rw.DeepWalk(node)
}

// WrapQuotesInTextNode replaces node by the sequence text, q, text, q, …
// where every « … » span becomes a quotation element keeping its
// guillemets. It reports whether the tree was modified.
//
// Nothing happens when node is not a text node, is detached, already lives
// inside a quotation, has unbalanced guillemets or holds no span.
func (rw *Rewriter) WrapQuotesInTextNode(node *xmlquery.Node) (bool, error) {
	if node == nil || !xmltree.IsText(node) || node.Parent == nil || insideQuote(node) {
		return false, nil
	}

	text := node.Data

	if !guillemet.IsProperlyBalanced(text) {
		slog.Warn("unbalanced guillemets, text left untouched", "text", excerpt(text))
		rw.tally.Warn(m.WarningUnbalanced, excerpt(text))

		return false, nil
	}

	spans := guillemet.FindSpans(text)
	if len(spans) == 0 {
		return false, nil
	}

	replacements := make([]*xmlquery.Node, 0, 2*len(spans)+1)
	last := 0

	for _, span := range spans {
		if span.Start > last {
			replacements = append(replacements, xmltree.NewText(text[last:span.Start]))
		}

		q := NewQuote()
		xmlquery.AddChild(q, xmltree.NewText(text[span.Start:span.End]))
		replacements = append(replacements, q)

		last = span.End
	}

	if last < len(text) {
		replacements = append(replacements, xmltree.NewText(text[last:]))
	}

	if err := xmltree.ReplaceChild(node.Parent, node, replacements...); err != nil {
		return false, fmt.Errorf("wrap quotations: %w", err)
	}

	rw.tally.Wrapped += len(spans)

	return true, nil
}

// DeepWalk rewrites every text node below node, depth first. Children are
// snapshotted before visiting so replacements are never revisited.
func (rw *Rewriter) DeepWalk(node *xmlquery.Node) error {
	for _, child := range xmltree.Children(node) {
		switch {
		case xmltree.IsText(child):
			if rw.skipNested(child) {
				continue
			}

			if _, err := rw.WrapQuotesInTextNode(child); err != nil {
				return err
			}
		case child.Type == xmlquery.ElementNode:
			if err := rw.DeepWalk(child); err != nil {
				return err
			}
		}
	}

	return nil
}

func (rw *Rewriter) skipNested(node *xmlquery.Node) bool {
	if !guillemet.HasNestedQuotes(node.Data) {
		return false
	}

	slog.Warn("nested quotations, text left untouched", "text", excerpt(node.Data))
	rw.tally.Warn(m.WarningNested, excerpt(node.Data))

	return true
}

func insideQuote(node *xmlquery.Node) bool {
	for p := node.Parent; p != nil; p = p.Parent {
		if xmltree.IsElement(p, QuoteElement) {
			return true
		}
	}

	return false
}

func excerpt(text string) string {
	if utf8.RuneCountInString(text) <= maxWarningRunes {
		return text
	}

	runes := []rune(text)

	return string(runes[:maxWarningRunes]) + "…"
}
