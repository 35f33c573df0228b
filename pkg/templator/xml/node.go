package xml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// NodeKind identifies what a Node holds
type NodeKind int

const (
	ElementNode NodeKind = iota
	CharDataNode
	CommentNode
	ProcInstNode
	DirectiveNode
)

// Node is a single item of a parsed XML part.
// For elements Name.Space holds the prefix as written in the source, not a namespace URI.
type Node struct {
	Kind     NodeKind
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Node
	// Data holds character data, comment text, directive text or processing instruction body
	Data string
}

// NewElement creates an element node with the given prefix and local name
func NewElement(prefix, local string, children ...*Node) *Node {
	return &Node{
		Kind:     ElementNode,
		Name:     xml.Name{Space: prefix, Local: local},
		Children: children,
	}
}

// NewCharData creates a character data node
func NewCharData(text string) *Node {
	return &Node{Kind: CharDataNode, Data: text}
}

// Is reports whether n is an element with the given prefix and local name
func (n *Node) Is(prefix, local string) bool {
	return n != nil && n.Kind == ElementNode && n.Name.Space == prefix && n.Name.Local == local
}

// Attr returns the value of the attribute with the given prefix and local name
func (n *Node) Attr(prefix, local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Space == prefix && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or adds an attribute
func (n *Node) SetAttr(prefix, local, value string) {
	for i, a := range n.Attrs {
		if a.Name.Space == prefix && a.Name.Local == local {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, xml.Attr{Name: xml.Name{Space: prefix, Local: local}, Value: value})
}

// Child returns the first direct child element with the given name, or nil
func (n *Node) Child(prefix, local string) *Node {
	for _, c := range n.Children {
		if c.Is(prefix, local) {
			return c
		}
	}
	return nil
}

// Text returns the concatenated character data below n
func (n *Node) Text() string {
	var b strings.Builder
	n.appendText(&b)
	return b.String()
}

func (n *Node) appendText(b *strings.Builder) {
	if n.Kind == CharDataNode {
		b.WriteString(n.Data)
		return
	}
	for _, c := range n.Children {
		c.appendText(b)
	}
}

// Walk visits n and all of its descendants depth-first in document order.
// Returning false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Clone returns a deep copy of n
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Kind: n.Kind,
		Name: n.Name,
		Data: n.Data,
	}
	if len(n.Attrs) > 0 {
		c.Attrs = make([]xml.Attr, len(n.Attrs))
		copy(c.Attrs, n.Attrs)
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Document is a parsed XML part: the prolog, the root element and anything after it
type Document struct {
	Nodes []*Node
}

// Root returns the root element of the document
func (d *Document) Root() *Node {
	for _, n := range d.Nodes {
		if n.Kind == ElementNode {
			return n
		}
	}
	return nil
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	c := &Document{Nodes: make([]*Node, len(d.Nodes))}
	for i, n := range d.Nodes {
		c.Nodes[i] = n.Clone()
	}
	return c
}

// ParseDocument parses an XML part into a Document.
// Prefixes are kept verbatim so that serialization reproduces the original names.
func ParseDocument(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	doc := &Document{}

	var stack []*Node
	appendNode := func(n *Node) {
		if len(stack) == 0 {
			doc.Nodes = append(doc.Nodes, n)
			return
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
	}

	for {
		token, err := decoder.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			n := &Node{Kind: ElementNode, Name: t.Name}
			if len(t.Attr) > 0 {
				n.Attrs = make([]xml.Attr, len(t.Attr))
				copy(n.Attrs, t.Attr)
			}
			appendNode(n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("failed to parse document: unexpected </%s>", qualified(t.Name))
			}
			top := stack[len(stack)-1]
			if top.Name != t.Name {
				return nil, fmt.Errorf("failed to parse document: <%s> closed by </%s>", qualified(top.Name), qualified(t.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			// Whitespace between prolog and root is not worth keeping
			if len(stack) == 0 && len(bytes.TrimSpace(t)) == 0 {
				continue
			}
			appendNode(NewCharData(string(t)))
		case xml.Comment:
			appendNode(&Node{Kind: CommentNode, Data: string(t)})
		case xml.ProcInst:
			appendNode(&Node{Kind: ProcInstNode, Name: xml.Name{Local: t.Target}, Data: string(t.Inst)})
		case xml.Directive:
			appendNode(&Node{Kind: DirectiveNode, Data: string(t)})
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("failed to parse document: unclosed <%s>", qualified(stack[len(stack)-1].Name))
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse document: no root element")
	}

	return doc, nil
}

// Bytes serializes the document
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo serializes the document to w
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	for i, n := range d.Nodes {
		if err := writeNode(cw, n); err != nil {
			return cw.n, err
		}
		// Keep the XML declaration on its own line like Word does
		if n.Kind == ProcInstNode && i < len(d.Nodes)-1 {
			if _, err := io.WriteString(cw, "\n"); err != nil {
				return cw.n, err
			}
		}
	}
	return cw.n, nil
}

func writeNode(w io.Writer, n *Node) error {
	var err error
	switch n.Kind {
	case CharDataNode:
		_, err = io.WriteString(w, textEscaper.Replace(n.Data))
	case CommentNode:
		_, err = fmt.Fprintf(w, "<!--%s-->", n.Data)
	case ProcInstNode:
		if n.Data == "" {
			_, err = fmt.Fprintf(w, "<?%s?>", n.Name.Local)
		} else {
			_, err = fmt.Fprintf(w, "<?%s %s?>", n.Name.Local, n.Data)
		}
	case DirectiveNode:
		_, err = fmt.Fprintf(w, "<!%s>", n.Data)
	case ElementNode:
		err = writeElement(w, n)
	}
	return err
}

func writeElement(w io.Writer, n *Node) error {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(qualified(n.Name))
	for _, attr := range n.Attrs {
		b.WriteString(" ")
		b.WriteString(qualified(attr.Name))
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(attr.Value))
		b.WriteString(`"`)
	}
	if len(n.Children) == 0 {
		b.WriteString("/>")
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString(">")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	for _, c := range n.Children {
		if err := writeNode(w, c); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "</"+qualified(n.Name)+">")
	return err
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\t", "&#x9;",
		"\n", "&#xA;",
		"\r", "&#xD;",
	)
)

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
