package templator

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDocxReader_Read(t *testing.T) {
	tests := []struct {
		name    string
		setup   func() *bytes.Buffer
		wantErr bool
	}{
		{
			name: "read valid docx with document.xml",
			setup: func() *bytes.Buffer {
				return bytes.NewBuffer(createTestDocx(t, documentXML(para(run("x"))), nil))
			},
		},
		{
			name: "read empty zip file",
			setup: func() *bytes.Buffer {
				buf := new(bytes.Buffer)
				w := zip.NewWriter(buf)
				w.Close()
				return buf
			},
			wantErr: true,
		},
		{
			name: "read non-zip file",
			setup: func() *bytes.Buffer {
				return bytes.NewBufferString("not a zip file")
			},
			wantErr: true,
		},
		{
			name: "zip without document.xml",
			setup: func() *bytes.Buffer {
				buf := new(bytes.Buffer)
				w := zip.NewWriter(buf)
				f, _ := w.Create("word/styles.xml")
				f.Write([]byte("<styles/>"))
				w.Close()
				return buf
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := tt.setup()
			dr, err := NewDocxReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDocxReader() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(dr.Parts) == 0 {
				t.Error("expected parts to be loaded")
			}
		})
	}
}

func TestDocxReader_GetPart(t *testing.T) {
	content := documentXML(para(run("hello")))
	docx := createTestDocx(t, content, nil)

	dr, err := NewDocxReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		t.Fatalf("NewDocxReader() error = %v", err)
	}

	got, err := dr.GetPart(MainDocumentPart)
	if err != nil {
		t.Fatalf("GetPart() error = %v", err)
	}
	if string(got) != content {
		t.Errorf("GetPart() = %q, want %q", got, content)
	}

	if _, err := dr.GetPart("word/missing.xml"); err == nil {
		t.Error("GetPart() of a missing part should fail")
	}
}

func TestDocxReader_TextParts(t *testing.T) {
	docx := createTestDocx(t, documentXML(), map[string]string{
		"word/header2.xml":       "<hdr/>",
		"word/header1.xml":       "<hdr/>",
		"word/footer1.xml":       "<ftr/>",
		"word/footnotes.xml":     "<footnotes/>",
		"word/endnotes.xml":      "<endnotes/>",
		"word/comments.xml":      "<comments/>",
		"word/_rels/header1.xml": "<rels/>",
	})
	dr, err := NewDocxReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		t.Fatalf("NewDocxReader() error = %v", err)
	}

	want := []string{
		MainDocumentPart,
		"word/endnotes.xml",
		"word/footer1.xml",
		"word/footnotes.xml",
		"word/header1.xml",
		"word/header2.xml",
	}
	if diff := cmp.Diff(want, dr.TextParts(true)); diff != "" {
		t.Errorf("TextParts(true) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{MainDocumentPart}, dr.TextParts(false)); diff != "" {
		t.Errorf("TextParts(false) mismatch (-want +got):\n%s", diff)
	}
}

func TestDocxReader_WritePackage(t *testing.T) {
	docx := createTestDocx(t, documentXML(), map[string]string{
		"word/styles.xml": "<styles/>",
	})
	dr, err := NewDocxReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		t.Fatalf("NewDocxReader() error = %v", err)
	}

	var out bytes.Buffer
	if err := dr.writePackage(&out, map[string][]byte{MainDocumentPart: []byte("<new/>")}); err != nil {
		t.Fatalf("writePackage() error = %v", err)
	}

	written, err := NewDocxReader(bytes.NewReader(out.Bytes()), int64(out.Len()))
	if err != nil {
		t.Fatalf("output is not a DOCX package: %v", err)
	}

	var names []string
	for _, f := range written.Files() {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"_rels/.rels", MainDocumentPart, "word/styles.xml"}, names); diff != "" {
		t.Errorf("entry order mismatch (-want +got):\n%s", diff)
	}
	if got := readPart(t, out.Bytes(), MainDocumentPart); got != "<new/>" {
		t.Errorf("document.xml = %q, want <new/>", got)
	}
	if got := readPart(t, out.Bytes(), "word/styles.xml"); got != "<styles/>" {
		t.Errorf("styles.xml = %q, want <styles/>", got)
	}
}
