package templator

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/volodymyr2126/cli-docx-templator/pkg/templator/xml"
)

const testRels = `<?xml version="1.0" encoding="UTF-8"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
	<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// wordPart wraps body in a WordprocessingML root element
func wordPart(root, body string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:` + root + ` xmlns:w="` + xml.WordNamespace + `">` + body + `</w:` + root + `>`
}

// documentXML builds word/document.xml with the given paragraphs in the body
func documentXML(paragraphs ...string) string {
	return wordPart("document", "<w:body>"+strings.Join(paragraphs, "")+"</w:body>")
}

func para(runs ...string) string {
	return "<w:p>" + strings.Join(runs, "") + "</w:p>"
}

func run(text string) string {
	return `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

func styledRun(style, text string) string {
	return `<w:r><w:rPr><w:` + style + `/></w:rPr><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

// createTestDocx builds a DOCX package in memory. document is word/document.xml;
// extra parts are added in name order after the relationships.
func createTestDocx(t *testing.T, document string, extra map[string]string) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	write := func(name, content string) {
		f, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}

	write("_rels/.rels", testRels)
	write(MainDocumentPart, document)

	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		write(name, extra[name])
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// writeTestFile writes content to a file in a fresh temporary directory
func writeTestFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// readPart returns the content of one entry of a DOCX package
func readPart(t *testing.T, docx []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(content)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

// partParagraphs parses one part of a DOCX package and returns its paragraphs
func partParagraphs(t *testing.T, docx []byte, name string) []*xml.Paragraph {
	t.Helper()
	doc, err := xml.ParseDocument(strings.NewReader(readPart(t, docx, name)))
	if err != nil {
		t.Fatalf("ParseDocument(%s) error = %v", name, err)
	}
	return doc.Paragraphs()
}

// runSummary describes the runs of a paragraph as "text|style" strings
func runSummary(p *xml.Paragraph) []string {
	var out []string
	for _, r := range p.Runs() {
		style := ""
		if props := r.Properties(); props != nil && len(props.Children) > 0 {
			style = props.Children[0].Name.Local
		}
		out = append(out, r.Text()+"|"+style)
	}
	return out
}

func quietLogger() *Logger {
	return NewLogger(io.Discard, LogOff)
}
