package adapter

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"modecitation.dev/pkg/modecitation/pkg/xmltree"
)

// XPathError reports an expression that failed to compile or evaluate.
type XPathError struct {
	Expr string
	Err  error
}

func (e *XPathError) Error() string {
	return fmt.Sprintf("xpath %q: %v", e.Expr, e.Err)
}

func (e *XPathError) Unwrap() error {
	return e.Err
}

// TreeAdapter parses, serializes and queries XML documents.
type TreeAdapter interface {
	Parse(data []byte) (*xmlquery.Node, error)
	Serialize(doc *xmlquery.Node) ([]byte, error)
	Canonicalize(doc *xmlquery.Node) (*xmlquery.Node, error)
	Query(doc *xmlquery.Node, expr string) ([]*xmlquery.Node, error)
	Validate(expr string) error
}

// XMLAdapter is the xmlquery-backed TreeAdapter. It owns the namespace
// prefixes available to XPath expressions and the output options. Compiled
// expressions are cached and safe to share between goroutines.
type XMLAdapter struct {
	namespaces map[string]string
	output     xmltree.Options

	mu    sync.Mutex
	exprs map[string]*xpath.Expr
}

// NewXMLAdapter constructs an XMLAdapter. namespaces maps XPath prefixes to
// namespace URIs and may be nil.
func NewXMLAdapter(namespaces map[string]string, output xmltree.Options) *XMLAdapter {
	ns := make(map[string]string, len(namespaces))
	for prefix, uri := range namespaces {
		ns[prefix] = uri
	}

	if output.Mode == "" {
		output.Mode = xmltree.IndentNone
	}

	return &XMLAdapter{
		namespaces: ns,
		output:     output,
		exprs:      make(map[string]*xpath.Expr),
	}
}

// Parse decodes data strictly.
func (a *XMLAdapter) Parse(data []byte) (*xmlquery.Node, error) {
	return xmltree.Parse(bytes.NewReader(data))
}

// Serialize encodes doc with the configured output options.
func (a *XMLAdapter) Serialize(doc *xmlquery.Node) ([]byte, error) {
	return xmltree.Serialize(doc, a.output)
}

// Canonicalize serializes doc and parses the result into a fresh tree.
func (a *XMLAdapter) Canonicalize(doc *xmlquery.Node) (*xmlquery.Node, error) {
	return xmltree.Canonicalize(doc)
}

// Query evaluates expr against doc and returns the selected nodes in
// document order. Only element and text nodes are returned.
func (a *XMLAdapter) Query(doc *xmlquery.Node, expr string) (nodes []*xmlquery.Node, err error) {
	compiled, err := a.Compile(expr)
	if err != nil {
		return nil, err
	}

	// xpath panics on some type mismatches at evaluation time.
	defer func() {
		if r := recover(); r != nil {
			nodes = nil
			err = &XPathError{Expr: expr, Err: fmt.Errorf("evaluation failed: %v", r)}
		}
	}()

	for _, n := range xmlquery.QuerySelectorAll(doc, compiled) {
		switch n.Type {
		case xmlquery.ElementNode, xmlquery.TextNode, xmlquery.CharDataNode:
			nodes = append(nodes, n)
		}
	}

	return nodes, nil
}

// Validate reports whether expr compiles with the configured namespaces.
func (a *XMLAdapter) Validate(expr string) error {
	_, err := a.Compile(expr)
	return err
}

// Compile validates expr and caches the compiled form.
func (a *XMLAdapter) Compile(expr string) (*xpath.Expr, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if compiled, ok := a.exprs[expr]; ok {
		return compiled, nil
	}

	var (
		compiled *xpath.Expr
		err      error
	)

	if len(a.namespaces) > 0 {
		compiled, err = xpath.CompileWithNS(expr, a.namespaces)
	} else {
		compiled, err = xpath.Compile(expr)
	}

	if err != nil {
		return nil, &XPathError{Expr: expr, Err: err}
	}

	a.exprs[expr] = compiled

	return compiled, nil
}
