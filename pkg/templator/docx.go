package templator

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"
	"sort"
)

// MainDocumentPart is the part holding the document body
const MainDocumentPart = "word/document.xml"

// auxiliaryPartPattern matches the other parts that carry paragraphs
var auxiliaryPartPattern = regexp.MustCompile(`^word/(header\d*|footer\d*|footnotes|endnotes)\.xml$`)

// DocxReader handles reading DOCX packages
type DocxReader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// NewDocxReader creates a new DOCX reader
func NewDocxReader(r io.ReaderAt, size int64) (*DocxReader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	dr := &DocxReader{
		reader: zipReader,
		Parts:  make(map[string]*zip.File),
	}

	// Index all parts by name
	for _, file := range zipReader.File {
		dr.Parts[file.Name] = file
	}

	if _, ok := dr.Parts[MainDocumentPart]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing %s", MainDocumentPart)
	}

	return dr, nil
}

// GetPart retrieves the content of a specific part
func (dr *DocxReader) GetPart(partName string) ([]byte, error) {
	file, ok := dr.Parts[partName]
	if !ok {
		return nil, fmt.Errorf("part %s not found", partName)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open part %s: %w", partName, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read part %s: %w", partName, err)
	}

	return content, nil
}

// TextParts returns the names of the parts whose paragraphs are templated, main document first.
// Headers, footers, footnotes and endnotes follow in name order when includeAuxiliary is set.
func (dr *DocxReader) TextParts(includeAuxiliary bool) []string {
	parts := []string{MainDocumentPart}
	if !includeAuxiliary {
		return parts
	}

	var aux []string
	for name := range dr.Parts {
		if auxiliaryPartPattern.MatchString(name) {
			aux = append(aux, name)
		}
	}
	sort.Strings(aux)
	return append(parts, aux...)
}

// Files returns the archive entries in their original order
func (dr *DocxReader) Files() []*zip.File {
	return dr.reader.File
}

// writePackage writes a new archive with every entry of dr in original order.
// Entries named in replaced get the given content; the rest are copied unchanged.
func (dr *DocxReader) writePackage(w io.Writer, replaced map[string][]byte) error {
	zw := zip.NewWriter(w)

	for _, file := range dr.reader.File {
		content, ok := replaced[file.Name]
		if !ok {
			// Copy the compressed bytes straight across
			if err := zw.Copy(file); err != nil {
				return fmt.Errorf("failed to copy %s: %w", file.Name, err)
			}
			continue
		}

		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     file.Name,
			Method:   zip.Deflate,
			Modified: file.Modified,
		})
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", file.Name, err)
		}
		if _, err := fw.Write(content); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}
	return nil
}
