// Package xmltree provides the tree operations used by the quote engine on
// top of xmlquery: strict parsing, byte-faithful serialization, splicing of
// child lists and markup flattening.
//
// Security: parsing goes through encoding/xml, which never fetches external
// entities or DTDs. Besides the predefined XML set, only general entities
// declared with a literal value in the internal DTD subset are expanded, each
// bounded by MaxEntitySize.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html/charset"
)

var (
	// ErrNoRoot is returned when a document does not hold exactly one root element.
	ErrNoRoot = errors.New("document must have exactly one root element")
	// ErrNotChild is returned when a splice targets a node that is not a child of the given parent.
	ErrNotChild = errors.New("node is not a child of parent")
)

// Parse decodes an XML document into a mutable tree.
func Parse(r io.Reader) (*xmlquery.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading XML: %w", err)
	}

	entities, err := internalEntities(data)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}

	doc, err := xmlquery.ParseWithOptions(bytes.NewReader(data), xmlquery.ParserOptions{
		Decoder: &xmlquery.DecoderOptions{
			Strict:        true,
			Entity:        entities,
			CharsetReader: charset.NewReaderLabel,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}

	hoistProlog(doc)

	if countRoots(doc) != 1 {
		return nil, ErrNoRoot
	}

	return doc, nil
}

// Root returns the root element of a document node, or nil.
func Root(doc *xmlquery.Node) *xmlquery.Node {
	if doc == nil {
		return nil
	}

	if doc.Type == xmlquery.ElementNode {
		return doc
	}

	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}

	return nil
}

// hoistProlog moves back into doc the prolog nodes (doctype, comments) that
// xmlquery links beside the document node when the source has no XML
// declaration.
func hoistProlog(doc *xmlquery.Node) {
	var prolog []*xmlquery.Node
	for n := doc.NextSibling; n != nil; n = n.NextSibling {
		prolog = append(prolog, n)
	}

	if len(prolog) == 0 {
		return
	}

	nodes := append(prolog, Children(doc)...)

	doc.NextSibling, doc.FirstChild, doc.LastChild = nil, nil, nil

	for _, n := range nodes {
		n.PrevSibling = nil
		xmlquery.AddChild(doc, n)
	}
}

func countRoots(doc *xmlquery.Node) int {
	count := 0

	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			count++
		}
	}

	return count
}

// Canonicalize serializes doc and parses it again. The returned tree shares
// no node with doc: adjacent text nodes are merged and every split made by
// earlier rewrites is materialized. Callers must drop every reference into
// the old tree.
func Canonicalize(doc *xmlquery.Node) (*xmlquery.Node, error) {
	data, err := Serialize(doc, Options{Mode: IndentNone})
	if err != nil {
		return nil, fmt.Errorf("serializing for reload: %w", err)
	}

	fresh, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reparsing for reload: %w", err)
	}

	return fresh, nil
}

// Name returns the qualified name of an element (prefix:local or local).
func Name(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}

	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}

	return n.Data
}

// IsText reports whether n holds character data.
func IsText(n *xmlquery.Node) bool {
	return n != nil && (n.Type == xmlquery.TextNode || n.Type == xmlquery.CharDataNode)
}

// IsElement reports whether n is an element, optionally with one of names (local part).
func IsElement(n *xmlquery.Node, names ...string) bool {
	if n == nil || n.Type != xmlquery.ElementNode {
		return false
	}

	if len(names) == 0 {
		return true
	}

	for _, name := range names {
		if n.Data == name {
			return true
		}
	}

	return false
}

// NewText creates a detached text node.
func NewText(data string) *xmlquery.Node {
	return &xmlquery.Node{Type: xmlquery.TextNode, Data: data}
}

// NewElement creates a detached element with the given attributes, given as
// alternating key/value pairs.
func NewElement(name string, attrs ...string) *xmlquery.Node {
	el := &xmlquery.Node{Type: xmlquery.ElementNode, Data: name}

	for i := 0; i+1 < len(attrs); i += 2 {
		el.Attr = append(el.Attr, xmlquery.Attr{
			Name:  xml.Name{Local: attrs[i]},
			Value: attrs[i+1],
		})
	}

	return el
}

// Attr returns the value of the unprefixed attribute key on n.
func Attr(n *xmlquery.Node, key string) string {
	if n == nil {
		return ""
	}

	for _, attr := range n.Attr {
		if attr.Name.Space == "" && attr.Name.Local == key {
			return attr.Value
		}
	}

	return ""
}

// Children returns a snapshot of the children of n. Mutating the tree does
// not affect the returned slice.
func Children(n *xmlquery.Node) []*xmlquery.Node {
	if n == nil {
		return nil
	}

	var children []*xmlquery.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		children = append(children, child)
	}

	return children
}

// ReplaceChild replaces old, a child of parent, with replacements, in order.
// Replacements already attached elsewhere are detached first.
func ReplaceChild(parent, old *xmlquery.Node, replacements ...*xmlquery.Node) error {
	if parent == nil || old == nil || old.Parent != parent {
		return ErrNotChild
	}

	return ReplaceRun(parent, []*xmlquery.Node{old}, replacements...)
}

// ReplaceRun replaces a run of consecutive children of parent with replacements.
func ReplaceRun(parent *xmlquery.Node, run []*xmlquery.Node, replacements ...*xmlquery.Node) error {
	if parent == nil || len(run) == 0 {
		return ErrNotChild
	}

	for i, node := range run {
		if node.Parent != parent {
			return ErrNotChild
		}

		if i > 0 && run[i-1].NextSibling != node {
			return fmt.Errorf("run is not contiguous: %w", ErrNotChild)
		}
	}

	var tail []*xmlquery.Node
	for sibling := run[len(run)-1].NextSibling; sibling != nil; sibling = sibling.NextSibling {
		tail = append(tail, sibling)
	}

	for _, node := range run {
		xmlquery.RemoveFromTree(node)
	}

	for _, node := range tail {
		xmlquery.RemoveFromTree(node)
	}

	for _, node := range replacements {
		if node.Parent != nil {
			xmlquery.RemoveFromTree(node)
		}

		xmlquery.AddChild(parent, node)
	}

	for _, node := range tail {
		xmlquery.AddChild(parent, node)
	}

	return nil
}

// MoveChildren moves every child of from to the end of to.
func MoveChildren(from, to *xmlquery.Node) {
	for _, child := range Children(from) {
		xmlquery.RemoveFromTree(child)
		xmlquery.AddChild(to, child)
	}
}

// TextContentWithTags linearizes the subtree below n: elements become
// <name>…</name>, character data is kept raw. It is meant for pattern
// matching only and is never written back.
func TextContentWithTags(n *xmlquery.Node) string {
	var b []byte
	b = appendFlattened(b, n)

	return string(b)
}

func appendFlattened(b []byte, n *xmlquery.Node) []byte {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			b = append(b, child.Data...)
		case xmlquery.ElementNode:
			name := Name(child)
			b = append(b, '<')
			b = append(b, name...)
			b = append(b, '>')
			b = appendFlattened(b, child)
			b = append(b, "</"...)
			b = append(b, name...)
			b = append(b, '>')
		}
	}

	return b
}

// OnlyText reports whether the subtree below n holds character data only
// (no nested elements, comments or directives).
func OnlyText(n *xmlquery.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if !IsText(child) {
			return false
		}
	}

	return true
}
