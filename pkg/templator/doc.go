// Package templator generates one Word document (DOCX) per row of a data table.
//
// A template is an ordinary DOCX file whose text contains {placeholder} markers.
// Every record of a CSV, TSV or XLSX file becomes a copy of the template with the
// markers replaced by the record's values. Formatting is preserved: a value takes
// the formatting of the run holding its opening brace, even when Word has split the
// marker across several runs.
//
// # Quick Start
//
//	engine := templator.New(templator.WithConfig(templator.DefaultConfig()))
//
//	report, err := engine.Generate(ctx, templator.Job{
//	    TemplatePath: "letter.docx",
//	    DataPath:     "people.csv",
//	    Pattern:      "letter_{surname}",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Written(), "documents written")
//
// Rendering a single record by hand:
//
//	tmpl, err := templator.PrepareFile("letter.docx", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	content, err := tmpl.Render(render.Mapping{"name": "Ana"})
//
// # Column Reconciliation
//
// The data's header does not have to use the template's names. When a placeholder
// names no column, the engine asks its Resolver which of the unclaimed columns to
// use, then renames that column in every record:
//
//   - PromptResolver asks an operator, showing sample values of each candidate column
//   - MappingResolver reads the answers from a TOML or YAML file
//   - SuggestResolver picks the closest column name
//
// Data with fewer columns than the template has placeholders is rejected before
// anything is written.
//
// # Configuration
//
// Config values come from DefaultConfig, TEMPLATOR_* environment variables and an
// optional TOML file, in that order:
//
//	log_level = "debug"
//	pattern = "invoice_{customer}_{#}"
//	output_dir = "out"
//
//	[data]
//	delimiter = ";"
//	encoding = "windows-1252"
//
//	[render]
//	workers = 4
//
//	[columns]
//	customer = "Client name"
//
// # Structure Organization
//
//   - api.go: Engine and its options
//   - template.go, paragraph.go, docx.go: loading, rewriting and packaging DOCX parts
//   - records.go: CSV and XLSX input
//   - reconcile.go, resolvers.go, mapping.go: placeholder to column mapping
//   - naming.go: output file names
//   - generate.go: the generation run
package templator
