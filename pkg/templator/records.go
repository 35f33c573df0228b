package templator

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/volodymyr2126/cli-docx-templator/pkg/templator/render"
)

// Record is one row of the data source with its fields in column order
type Record struct {
	Columns []string
	Values  map[string]string
}

// NewRecord builds a record from a header and a row.
// Missing values are empty; values beyond the header are dropped.
func NewRecord(columns, row []string) Record {
	rec := Record{
		Columns: append([]string(nil), columns...),
		Values:  make(map[string]string, len(columns)),
	}
	for i, col := range columns {
		if i < len(row) {
			rec.Values[col] = row[i]
		} else {
			rec.Values[col] = ""
		}
	}
	return rec
}

// Get returns the value of a field
func (r Record) Get(column string) string {
	return r.Values[column]
}

// Mapping returns the record as a placeholder mapping
func (r Record) Mapping() render.Mapping {
	m := make(render.Mapping, len(r.Values))
	for k, v := range r.Values {
		m[k] = v
	}
	return m
}

// Row returns the values in column order
func (r Record) Row() []string {
	row := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		row[i] = r.Values[col]
	}
	return row
}

// Table is a loaded data source: a header and its records
type Table struct {
	Path    string
	Columns []string
	Records []Record
}

// Sample returns up to n leading records
func (t *Table) Sample(n int) []Record {
	if n > len(t.Records) {
		n = len(t.Records)
	}
	if n < 0 {
		n = 0
	}
	return t.Records[:n]
}

// DataOptions control how a data source is read
type DataOptions struct {
	// Delimiter is the CSV field separator
	Delimiter rune
	// Encoding is a WHATWG encoding label; empty means UTF-8
	Encoding string
	// Sheet is the XLSX worksheet; empty means the first one
	Sheet string
}

// DataOptionsFromConfig derives data options from a configuration
func DataOptionsFromConfig(config *Config) DataOptions {
	return DataOptions{
		Delimiter: config.DelimiterRune(),
		Encoding:  config.Encoding,
		Sheet:     config.Sheet,
	}
}

// LoadRecords reads a CSV, TSV or XLSX file, chosen by extension
func LoadRecords(path string, opts DataOptions) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DataError{Path: path, Cause: err}
	}
	defer file.Close()

	var table *Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		table, err = ReadXLSX(file, opts.Sheet)
	case ".tsv":
		opts.Delimiter = '\t'
		table, err = ReadCSV(file, opts)
	default:
		table, err = ReadCSV(file, opts)
	}
	if err != nil {
		var dataErr *DataError
		if errors.As(err, &dataErr) {
			dataErr.Path = path
			return nil, dataErr
		}
		return nil, &DataError{Path: path, Cause: err}
	}

	table.Path = path
	return table, nil
}

// ReadCSV reads delimited text whose first row is the header.
// A byte order mark is stripped and the input is decoded from opts.Encoding.
func ReadCSV(r io.Reader, opts DataOptions) (*Table, error) {
	label := opts.Encoding
	if label == "" {
		label = "utf-8"
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, &DataError{Cause: fmt.Errorf("unknown encoding %q", opts.Encoding)}
	}

	decoded := transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
	reader := csv.NewReader(decoded)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		return nil, &DataError{Row: 1, Cause: err}
	}

	table := &Table{Columns: normalizeNames(header)}
	for row := 2; ; row++ {
		values, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DataError{Row: row, Cause: err}
		}
		table.Records = append(table.Records, NewRecord(table.Columns, values))
	}

	return table, nil
}

// ReadXLSX reads a worksheet whose first row is the header
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &DataError{Cause: fmt.Errorf("failed to open workbook: %w", err)}
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &DataError{Cause: fmt.Errorf("failed to read sheet %q: %w", sheet, err)}
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	table := &Table{Columns: normalizeNames(rows[0])}
	for _, values := range rows[1:] {
		if isBlankRow(values) {
			continue
		}
		table.Records = append(table.Records, NewRecord(table.Columns, values))
	}
	return table, nil
}

// RenameRecords renames field i of every record to revised[i], keeping the values
func RenameRecords(records []Record, original, revised []string) ([]Record, error) {
	if len(original) != len(revised) {
		return nil, fmt.Errorf("cannot rename %d columns to %d names", len(original), len(revised))
	}

	renamed := make([]Record, len(records))
	for i, rec := range records {
		row := make([]string, len(original))
		for j, col := range original {
			row[j] = rec.Values[col]
		}
		renamed[i] = NewRecord(revised, row)
	}
	return renamed, nil
}

// normalizeNames puts header names in NFC so they compare equal to template text
func normalizeNames(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = norm.NFC.String(name)
	}
	return out
}

func isBlankRow(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
