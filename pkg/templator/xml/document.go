package xml

import "strings"

// WordNamespace is the WordprocessingML main namespace that identifies paragraphs, runs and text nodes
const WordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// ExtractNamespaces returns the namespace declarations of the root element as prefix -> URI.
// The default namespace is reported under the empty prefix.
func (d *Document) ExtractNamespaces() map[string]string {
	namespaces := make(map[string]string)
	root := d.Root()
	if root == nil {
		return namespaces
	}

	for _, attr := range root.Attrs {
		switch {
		case attr.Name.Space == "xmlns":
			namespaces[attr.Name.Local] = attr.Value
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			namespaces[""] = attr.Value
		case attr.Name.Space == "" && strings.HasPrefix(attr.Name.Local, "xmlns:"):
			namespaces[strings.TrimPrefix(attr.Name.Local, "xmlns:")] = attr.Value
		}
	}

	return namespaces
}

// WordPrefix returns the prefix bound to WordNamespace on the root element.
// It falls back to the conventional "w" when the part does not declare the namespace.
func (d *Document) WordPrefix() string {
	for prefix, uri := range d.ExtractNamespaces() {
		if uri == WordNamespace {
			return prefix
		}
	}
	return "w"
}

// Paragraphs returns every paragraph of the part in document order, including
// paragraphs nested in tables, text boxes, headers and footnotes.
func (d *Document) Paragraphs() []*Paragraph {
	root := d.Root()
	if root == nil {
		return nil
	}

	prefix := d.WordPrefix()
	var paragraphs []*Paragraph
	root.Walk(func(n *Node) bool {
		if n.Is(prefix, "p") {
			paragraphs = append(paragraphs, NewParagraph(n, prefix))
		}
		return true
	})
	return paragraphs
}

// Text returns the text of all w:t nodes of the part concatenated in document order
func (d *Document) Text() string {
	root := d.Root()
	if root == nil {
		return ""
	}

	prefix := d.WordPrefix()
	var b strings.Builder
	root.Walk(func(n *Node) bool {
		if n.Is(prefix, "t") {
			b.WriteString(n.Text())
			return false
		}
		return true
	})
	return b.String()
}
