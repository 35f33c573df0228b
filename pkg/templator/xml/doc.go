// Package xml provides a lossless XML tree for the parts of a DOCX package.
//
// DOCX files are ZIP archives of XML parts. Templating only ever rewrites the text
// runs of paragraphs, so this package keeps everything else byte-for-byte equivalent:
// element prefixes are kept as written (no namespace resolution), unknown elements,
// comments, processing instructions and whitespace are retained in order.
//
// # Structure Organization
//
//   - node.go: Node and Document, parsing, cloning and serialization
//   - document.go: namespace declarations and WordprocessingML lookups
//   - paragraph.go: Paragraph and Run views over w:p and w:r elements
//
// # Key Concepts
//
// Node: one item of the tree (element, character data, comment, processing
// instruction or directive). Element names carry the source prefix in Name.Space.
//
// Paragraph: a view over a w:p element. Its runs are the direct w:r children.
//
// Run: a view over a w:r element. Its formatting is the w:rPr child, which this
// package treats as opaque and only ever clones.
//
// # Usage
//
//	doc, err := xml.ParseDocument(r)
//	if err != nil {
//	    return err
//	}
//	for _, p := range doc.Paragraphs() {
//	    fmt.Println(p.Text())
//	}
//	out, err := doc.Bytes()
//
// # XML Namespaces
//
// Paragraphs and runs are addressed through the WordprocessingML namespace
// (WordNamespace). The prefix bound to it is read from the root element's
// declarations, so documents using a prefix other than "w" work as well.
package xml
