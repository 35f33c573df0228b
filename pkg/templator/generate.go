package templator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"golang.org/x/sync/errgroup"
)

// Job describes one generation run
type Job struct {
	TemplatePath string
	DataPath     string
	// OutputDir overrides Config.OutputDir when set
	OutputDir string
	// Pattern overrides Config.Pattern when set
	Pattern string
	// Record selects a single 1-based record; 0 means every record
	Record int
	// DryRun plans the output without touching the file system
	DryRun bool
}

// OutputFile is a document produced (or planned) for one record
type OutputFile struct {
	Record int
	Path   string
	// Superseded is set when a later record produces the same path; it is not written
	Superseded bool
	Written    bool
}

// Report summarizes a generation run
type Report struct {
	Placeholders []string
	Columns      []string
	Files        []OutputFile
	Warnings     []string
}

// Written returns the number of documents written
func (r *Report) Written() int {
	n := 0
	for _, f := range r.Files {
		if f.Written {
			n++
		}
	}
	return n
}

// Planned returns the number of documents the run intends to write
func (r *Report) Planned() int {
	n := 0
	for _, f := range r.Files {
		if !f.Superseded {
			n++
		}
	}
	return n
}

func (r *Report) warn(logger *Logger, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Warnings = append(r.Warnings, msg)
	logger.Warn("%s", msg)
}

// Generate loads the template and data of job and writes one document per record
func (e *Engine) Generate(ctx context.Context, job Job) (*Report, error) {
	tmpl, err := e.PrepareFile(job.TemplatePath)
	if err != nil {
		return nil, err
	}
	table, err := e.LoadRecords(job.DataPath)
	if err != nil {
		return nil, err
	}
	return e.GenerateFrom(ctx, tmpl, table, job)
}

// GenerateFrom writes one document per record of table.
// Column reconciliation and file naming happen before any document is written,
// so a failure there leaves the output directory untouched.
func (e *Engine) GenerateFrom(ctx context.Context, tmpl *Template, table *Table, job Job) (*Report, error) {
	logger := e.log()
	config := e.config
	report := &Report{}

	if len(table.Records) == 0 {
		report.warn(logger, "data source %s has no records; put some values there", describePath(table.Path))
	}
	if strings.TrimSpace(tmpl.Text()) == "" {
		report.warn(logger, "template %s has no text; put some templated text there", describePath(job.TemplatePath))
	}

	vars := tmpl.Variables()
	report.Placeholders = vars.Sorted()
	logger.Debug("Found %d placeholders: %v", len(vars), report.Placeholders)

	if mr, ok := e.resolver.(*MappingResolver); ok {
		if err := mr.Validate(vars); err != nil {
			return report, err
		}
	}

	revised, err := Reconcile(ctx, vars, table.Columns, table.Sample(config.SampleSize), e.resolver, ReconcileOptions{
		Strict:     config.StrictColumns,
		SampleSize: config.SampleSize,
	})
	if err != nil {
		return report, err
	}
	report.Columns = revised

	records, err := RenameRecords(table.Records, table.Columns, revised)
	if err != nil {
		return report, err
	}

	first, last := 0, len(records)
	if job.Record > 0 {
		if job.Record > len(records) {
			return report, fmt.Errorf("record %d does not exist; the data has %d records", job.Record, len(records))
		}
		first, last = job.Record-1, job.Record
	}

	outputDir := job.OutputDir
	if outputDir == "" {
		outputDir = config.OutputDir
	}
	pattern := job.Pattern
	if pattern == "" {
		pattern = config.Pattern
	}

	// index into report.Files by file name
	seen := make(map[string]int)
	for i := first; i < last; i++ {
		number := i + 1
		name, err := FileName(pattern, records[i], number)
		if err != nil {
			return report, WithContext(err, "name output", map[string]interface{}{"record": number})
		}
		if prev, dup := seen[name]; dup {
			report.Files[prev].Superseded = true
			report.warn(logger, "records %d and %d both produce %s; only record %d is written",
				report.Files[prev].Record, number, name, number)
		}
		seen[name] = len(report.Files)
		report.Files = append(report.Files, OutputFile{Record: number, Path: filepath.Join(outputDir, name)})
	}

	if job.DryRun {
		for _, f := range report.Files {
			if !f.Superseded {
				logger.Info("Would write %s (record %d)", f.Path, f.Record)
			}
		}
		return report, nil
	}

	if len(report.Files) == 0 {
		return report, nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return report, NewDocumentError("create", outputDir, err)
	}

	workers := config.Workers
	if workers < 1 {
		workers = 1
	}

	failures := NewMultiError()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range report.Files {
		file := &report.Files[i]
		if file.Superseded {
			continue
		}
		record := records[file.Record-1]

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := writeDocument(tmpl, record, file.Path); err != nil {
				failures.Add(WithContext(err, "generate", map[string]interface{}{"record": file.Record}))
				logger.WithField("record", file.Record).Error("Failed to write %s: %v", file.Path, err)
				return nil
			}
			file.Written = true
			logger.WithField("record", file.Record).Debug("Wrote %s", file.Path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}

	logger.Info("Generated %d of %d documents in %s", report.Written(), report.Planned(), outputDir)
	return report, failures.Err()
}

// writeDocument renders one record and replaces path atomically
func writeDocument(tmpl *Template, record Record, path string) error {
	content, err := tmpl.Render(record.Mapping())
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(content)); err != nil {
		return NewDocumentError("write", path, err)
	}
	return nil
}

func describePath(path string) string {
	if path == "" {
		return "(input)"
	}
	return path
}
