package xmltree

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// IndentMode selects how Write lays out element-only content.
type IndentMode string

const (
	// IndentNone writes the tree as is. Text is byte-faithful.
	IndentNone IndentMode = "none"
	// IndentElements breaks and indents element-only content. Mixed content
	// (elements interleaved with non-blank text) is still written verbatim.
	IndentElements IndentMode = "indent"
)

// DefaultIndent is used when Options.Indent is empty in IndentElements mode.
const DefaultIndent = "  "

// Options controls serialization.
type Options struct {
	Mode   IndentMode
	Indent string
}

// ParseIndentMode maps a configuration value to an IndentMode.
func ParseIndentMode(value string) (IndentMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none", "no", "false":
		return IndentNone, nil
	case "indent", "yes", "true":
		return IndentElements, nil
	default:
		return IndentNone, fmt.Errorf("unknown indent mode %q", value)
	}
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#xA;", "\r", "&#xD;", "\t", "&#x9;",
	)
)

// Serialize returns the UTF-8 encoding of n. For a document node the XML
// declaration is always written, followed by a newline.
func Serialize(n *xmlquery.Node, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, n, opts); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Write serializes n to w.
func Write(w io.Writer, n *xmlquery.Node, opts Options) error {
	if n == nil {
		return fmt.Errorf("serializing: nil node")
	}

	if opts.Mode == IndentElements && opts.Indent == "" {
		opts.Indent = DefaultIndent
	}

	p := &printer{w: bufio.NewWriter(w), opts: opts}

	if n.Type == xmlquery.DocumentNode {
		p.document(n)
	} else {
		p.node(n, 0, opts.Mode != IndentElements)
	}

	return p.w.Flush()
}

type printer struct {
	w    *bufio.Writer
	opts Options
}

func (p *printer) document(doc *xmlquery.Node) {
	p.declaration(doc)

	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		// Only blank text can live at document level.
		if child.Type == xmlquery.DeclarationNode || IsText(child) {
			continue
		}

		if p.node(child, 0, p.opts.Mode != IndentElements) {
			p.w.WriteByte('\n')
		}
	}
}

func (p *printer) declaration(doc *xmlquery.Node) {
	version, standalone := "1.0", ""

	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != xmlquery.DeclarationNode {
			continue
		}

		if v := Attr(child, "version"); v != "" {
			version = v
		}

		standalone = Attr(child, "standalone")

		break
	}

	// The content is always re-encoded as UTF-8, whatever the source said.
	fmt.Fprintf(p.w, `<?xml version="%s" encoding="UTF-8"`, version)

	if standalone != "" {
		fmt.Fprintf(p.w, ` standalone="%s"`, standalone)
	}

	p.w.WriteString("?>\n")
}

// node writes n and reports whether anything was written.
func (p *printer) node(n *xmlquery.Node, depth int, inline bool) bool {
	switch n.Type {
	case xmlquery.ElementNode:
		p.element(n, depth, inline)
	case xmlquery.TextNode:
		p.w.WriteString(textEscaper.Replace(n.Data))
	case xmlquery.CharDataNode:
		p.w.WriteString("<![CDATA[")
		p.w.WriteString(n.Data)
		p.w.WriteString("]]>")
	case xmlquery.CommentNode:
		p.w.WriteString("<!--")
		p.w.WriteString(n.Data)
		p.w.WriteString("-->")
	case xmlquery.NotationNode:
		p.w.WriteString("<!")
		p.w.WriteString(n.Data)
		p.w.WriteString(">")
	case xmlquery.ProcessingInstruction:
		p.procInst(n)
	default:
		return false
	}

	return true
}

func (p *printer) procInst(n *xmlquery.Node) {
	target, inst := n.Data, ""
	if n.ProcInst != nil {
		target, inst = n.ProcInst.Target, n.ProcInst.Inst
	}

	p.w.WriteString("<?")
	p.w.WriteString(target)

	if inst != "" {
		p.w.WriteByte(' ')
		p.w.WriteString(inst)
	}

	p.w.WriteString("?>")
}

func (p *printer) element(n *xmlquery.Node, depth int, inline bool) {
	name := Name(n)

	p.w.WriteByte('<')
	p.w.WriteString(name)

	for _, attr := range n.Attr {
		p.w.WriteByte(' ')

		if attr.Name.Space != "" {
			p.w.WriteString(attr.Name.Space)
			p.w.WriteByte(':')
		}

		p.w.WriteString(attr.Name.Local)
		p.w.WriteString(`="`)
		p.w.WriteString(attrEscaper.Replace(attr.Value))
		p.w.WriteByte('"')
	}

	if n.FirstChild == nil {
		p.w.WriteString("/>")
		return
	}

	p.w.WriteByte('>')

	if !inline && elementOnly(n) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == xmlquery.TextNode {
				continue
			}

			p.newline(depth + 1)
			p.node(child, depth+1, false)
		}

		p.newline(depth)
	} else {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			p.node(child, depth+1, true)
		}
	}

	p.w.WriteString("</")
	p.w.WriteString(name)
	p.w.WriteByte('>')
}

func (p *printer) newline(depth int) {
	p.w.WriteByte('\n')

	for i := 0; i < depth; i++ {
		p.w.WriteString(p.opts.Indent)
	}
}

// elementOnly reports whether n has element children and no text other
// than whitespace, so that indenting cannot change its content.
func elementOnly(n *xmlquery.Node) bool {
	hasElement := false

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.ElementNode:
			hasElement = true
		case xmlquery.TextNode:
			if strings.TrimSpace(child.Data) != "" {
				return false
			}
		case xmlquery.CharDataNode:
			return false
		}
	}

	return hasElement
}
