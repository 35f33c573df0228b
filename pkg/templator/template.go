package templator

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/volodymyr2126/cli-docx-templator/pkg/templator/render"
	"github.com/volodymyr2126/cli-docx-templator/pkg/templator/xml"
)

// Template is a parsed DOCX template. Its parts are a read-only blueprint:
// every Render works on a deep copy, so a Template can render many records,
// in any order and from several goroutines.
type Template struct {
	docxReader *DocxReader
	parts      []templatePart
	mergeRuns  bool
}

type templatePart struct {
	name     string
	document *xml.Document
}

// prepare is the internal implementation of template preparation
func prepare(r io.Reader, config *Config) (*Template, error) {
	buf := new(bytes.Buffer)
	size, err := buf.ReadFrom(r)
	if err != nil {
		return nil, NewDocumentError("read", "", err)
	}

	docxReader, err := NewDocxReader(bytes.NewReader(buf.Bytes()), size)
	if err != nil {
		return nil, NewDocumentError("parse", "DOCX", err)
	}

	tmpl := &Template{
		docxReader: docxReader,
		mergeRuns:  config.MergeRuns,
	}

	for _, name := range docxReader.TextParts(config.HeadersFooters) {
		content, err := docxReader.GetPart(name)
		if err != nil {
			return nil, NewDocumentError("extract", name, err)
		}
		doc, err := xml.ParseDocument(bytes.NewReader(content))
		if err != nil {
			return nil, NewDocumentError("parse", name, err)
		}
		tmpl.parts = append(tmpl.parts, templatePart{name: name, document: doc})
	}

	return tmpl, nil
}

// Prepare parses a DOCX template from r
func Prepare(r io.Reader, config *Config) (*Template, error) {
	if config == nil {
		config = DefaultConfig()
	}
	return prepare(r, config)
}

// PrepareFile parses a DOCX template from a file path
func PrepareFile(path string, config *Config) (*Template, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	defer file.Close()

	return Prepare(file, config)
}

// Parts returns the names of the templated parts, main document first
func (t *Template) Parts() []string {
	names := make([]string, len(t.parts))
	for i, part := range t.parts {
		names[i] = part.name
	}
	return names
}

// Text returns the text of every templated part, one part per line
func (t *Template) Text() string {
	texts := make([]string, 0, len(t.parts))
	for _, part := range t.parts {
		if text := part.document.Text(); text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n")
}

// Variables returns the placeholder names used anywhere in the template
func (t *Template) Variables() render.VariableSet {
	set := make(render.VariableSet)
	for _, part := range t.parts {
		set.Add(render.Variables(part.document.Text()))
	}
	return set
}

// Render substitutes vars into a copy of the template and returns the DOCX bytes
func (t *Template) Render(vars render.Mapping) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.RenderTo(&buf, vars); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTo substitutes vars into a copy of the template and writes the DOCX package to w
func (t *Template) RenderTo(w io.Writer, vars render.Mapping) error {
	replaced := make(map[string][]byte, len(t.parts))

	for _, part := range t.parts {
		doc := part.document.Clone()
		for _, p := range doc.Paragraphs() {
			substituteParagraph(p, vars, t.mergeRuns)
		}

		content, err := doc.Bytes()
		if err != nil {
			return NewDocumentError("marshal", part.name, err)
		}
		replaced[part.name] = content
	}

	if err := t.docxReader.writePackage(w, replaced); err != nil {
		return NewDocumentError("write", "DOCX", err)
	}
	return nil
}
