package domain_test

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/require"

	"modecitation.dev/pkg/modecitation/pkg/xmltree"
)

func parseDoc(t *testing.T, input string) *xmlquery.Node {
	t.Helper()

	doc, err := xmltree.Parse(strings.NewReader(input))
	require.NoError(t, err)

	return doc
}

// render serializes n and strips the XML declaration line.
func render(t *testing.T, n *xmlquery.Node) string {
	t.Helper()

	out, err := xmltree.Serialize(n, xmltree.Options{Mode: xmltree.IndentNone})
	require.NoError(t, err)

	s := string(out)
	if i := strings.Index(s, "?>\n"); i >= 0 {
		s = s[i+3:]
	}

	return strings.TrimSuffix(s, "\n")
}

func countQuotes(n *xmlquery.Node) int {
	count := 0

	var walk func(*xmlquery.Node)
	walk = func(node *xmlquery.Node) {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if xmltree.IsElement(child, "q") && xmltree.Attr(child, "class") == "containsQuotes" {
				count++
			}

			walk(child)
		}
	}
	walk(n)

	return count
}
