package domain

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"

	"modecitation.dev/pkg/modecitation/internal/domain/guillemet"
	m "modecitation.dev/pkg/modecitation/internal/model"
	"modecitation.dev/pkg/modecitation/pkg/xmltree"
)

// DefaultFormattingTags are the inline elements editors use as informal
// quotation markers.
var DefaultFormattingTags = []string{"b", "i", "u"}

// Reconciler converts bold/italic/underline runs used as quotations into
// quotation elements, before the rule passes run.
type Reconciler struct {
	tags []string
	gate *regexp.Regexp
}

// NewReconciler returns a Reconciler for the given formatting element names.
// An empty list means DefaultFormattingTags.
func NewReconciler(tags []string) *Reconciler {
	if len(tags) == 0 {
		tags = DefaultFormattingTags
	}

	quoted := make([]string, len(tags))
	for i, tag := range tags {
		quoted[i] = regexp.QuoteMeta(tag)
	}

	alt := strings.Join(quoted, "|")

	return &Reconciler{
		tags: tags,
		// Tags are matched by local name, the way IsElement does.
		gate: regexp.MustCompile(fmt.Sprintf(`«[^«]*<(?:[^<>/:\s]+:)?(%s)>[^«]*</(?:[^<>/:\s]+:)?(%s)>[^«]*»`, alt, alt)),
	}
}

// Reconcile processes every container and records what it did in tally.
func (r *Reconciler) Reconcile(containers []*xmlquery.Node, tally *m.Tally) error {
	for _, container := range containers {
		if container.Type != xmlquery.ElementNode || xmltree.IsElement(container, QuoteElement) {
			continue
		}

		flat := xmltree.TextContentWithTags(container)

		if guillemet.HasNestedQuotes(flat) {
			slog.Warn("nested quotations, container left untouched", "container", xmltree.Name(container), "text", excerpt(flat))
			tally.Warn(m.WarningNested, excerpt(flat))

			continue
		}

		if r.gate.MatchString(flat) {
			merged, err := r.mergeCrossTag(container)
			if err != nil {
				return err
			}

			tally.CrossTagMerged += merged

			if merged > 0 {
				continue
			}
		}

		converted, err := r.convertFormatting(container)
		if err != nil {
			return err
		}

		tally.FormattingToQuote += converted
	}

	return nil
}

// mergeCrossTag collapses runs like `text «`, <b>…</b>, `» text` into
// `text `, <q>«…»</q>, ` text`. It rescans after every splice since the
// trailing text may open the next run.
func (r *Reconciler) mergeCrossTag(container *xmlquery.Node) (int, error) {
	merged := 0

	for {
		children := xmltree.Children(container)

		start, end, ok := r.findRun(children)
		if !ok {
			return merged, nil
		}

		if err := r.spliceRun(container, children[start:end+1]); err != nil {
			return merged, fmt.Errorf("merge quotation across formatting: %w", err)
		}

		merged++
	}
}

func (r *Reconciler) findRun(children []*xmlquery.Node) (int, int, bool) {
	for start := 0; start < len(children); start++ {
		if !xmltree.IsText(children[start]) || guillemet.LastUnclosedOpen(children[start].Data) < 0 {
			continue
		}

		formatting := false

	scan:
		for j := start + 1; j < len(children); j++ {
			child := children[j]

			switch {
			case xmltree.IsText(child):
				if guillemet.FirstCloseBeforeOpen(child.Data) >= 0 {
					if formatting {
						return start, j, true
					}

					break scan
				}

				if guillemet.ContainsGuillemet(child.Data) {
					break scan
				}
			case r.isPlainFormatting(child):
				formatting = true
			default:
				break scan
			}
		}
	}

	return 0, 0, false
}

func (r *Reconciler) isPlainFormatting(n *xmlquery.Node) bool {
	return xmltree.IsElement(n, r.tags...) && xmltree.OnlyText(n) && !guillemet.ContainsGuillemet(n.InnerText())
}

func (r *Reconciler) spliceRun(container *xmlquery.Node, run []*xmlquery.Node) error {
	first, last := run[0].Data, run[len(run)-1].Data
	open := guillemet.LastUnclosedOpen(first)
	closeEnd := guillemet.FirstCloseBeforeOpen(last)

	var quoted strings.Builder

	quoted.WriteString(first[open:])

	for _, n := range run[1 : len(run)-1] {
		quoted.WriteString(n.InnerText())
	}

	quoted.WriteString(last[:closeEnd])

	var replacements []*xmlquery.Node
	if open > 0 {
		replacements = append(replacements, xmltree.NewText(first[:open]))
	}

	q := NewQuote()
	xmlquery.AddChild(q, xmltree.NewText(quoted.String()))
	replacements = append(replacements, q)

	if closeEnd < len(last) {
		replacements = append(replacements, xmltree.NewText(last[closeEnd:]))
	}

	return xmltree.ReplaceRun(container, run, replacements...)
}

// convertFormatting replaces every formatting child whose whole text is a
// single quotation by a quotation element holding the same children.
func (r *Reconciler) convertFormatting(container *xmlquery.Node) (int, error) {
	converted := 0

	for _, child := range xmltree.Children(container) {
		if !xmltree.IsElement(child, r.tags...) || !guillemet.IsWholeQuotation(child.InnerText()) {
			continue
		}

		q := NewQuote()
		xmltree.MoveChildren(child, q)

		if err := xmltree.ReplaceChild(container, child, q); err != nil {
			return converted, fmt.Errorf("convert formatting to quotation: %w", err)
		}

		converted++
	}

	return converted, nil
}
