package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/volodymyr2126/cli-docx-templator/pkg/templator"
)

var (
	templatePath string
	dataPath     string
	outputDir    string
	pattern      string
	dryRun       bool
	recordNumber int
	mappingPath  string
	autoMap      bool
	interactive  bool
	delimiter    string
	encoding     string
	sheet        string
	workers      int
	strict       bool
	noMerge      bool
	noAuxParts   bool
)

func init() {
	flags := generateCmd.Flags()
	flags.StringVarP(&templatePath, "template", "t", "", "DOCX template with {placeholders}")
	flags.StringVarP(&dataPath, "data", "d", "", "CSV, TSV or XLSX file, first row is the header")
	flags.StringVarP(&outputDir, "output", "o", "", "output directory (default \"output\")")
	flags.StringVarP(&pattern, "pattern", "p", "", "output file name pattern, e.g. \"letter_{surname}\"; {#} is the record number")
	flags.BoolVar(&dryRun, "dry-run", false, "show the files that would be written without writing them")
	flags.IntVar(&recordNumber, "record", 0, "generate only the given 1-based record")
	flags.StringVar(&mappingPath, "mapping", "", "TOML or YAML file mapping placeholders to columns")
	flags.BoolVar(&autoMap, "auto", false, "map unknown placeholders to the closest column names without asking")
	flags.BoolVar(&interactive, "interactive", false, "ask for column mappings even when stdin is not a terminal")
	flags.StringVar(&delimiter, "delimiter", "", "CSV field delimiter (default \",\")")
	flags.StringVar(&encoding, "encoding", "", "CSV character encoding (default \"utf-8\")")
	flags.StringVar(&sheet, "sheet", "", "XLSX worksheet (default: the first one)")
	flags.IntVar(&workers, "workers", 0, "documents rendered in parallel (default 1)")
	flags.BoolVar(&strict, "strict", false, "require exactly as many columns as placeholders")
	flags.BoolVar(&noMerge, "no-merge", false, "keep one run per character instead of merging equally formatted runs")
	flags.BoolVar(&noAuxParts, "body-only", false, "leave headers, footers, footnotes and endnotes untouched")

	_ = generateCmd.MarkFlagRequired("template")
	_ = generateCmd.MarkFlagRequired("data")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write one document per data record",
	Long: `Generate fills the template once per record of the data file.

When a placeholder names no column, the column to use is asked for interactively,
read from --mapping, or guessed with --auto. Data with fewer columns than the
template has placeholders is rejected and nothing is written.`,
	Example: `  docx-templator generate -t letter.docx -d people.csv -p "letter_{surname}"
  docx-templator generate -t invoice.docx -d orders.xlsx --mapping columns.yaml --workers 4
  docx-templator generate -t letter.docx -d people.csv --dry-run`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

// applyFlags copies the flags the user set onto config
func applyFlags(cmd *cobra.Command, config *templator.Config) error {
	flags := cmd.Flags()
	if flags.Lookup("template") == nil {
		return nil
	}

	if flags.Changed("output") {
		config.OutputDir = outputDir
	}
	if flags.Changed("pattern") {
		config.Pattern = pattern
	}
	if flags.Changed("delimiter") {
		config.Delimiter = delimiter
	}
	if flags.Changed("encoding") {
		config.Encoding = encoding
	}
	if flags.Changed("sheet") {
		config.Sheet = sheet
	}
	if flags.Changed("workers") {
		config.Workers = workers
	}
	if flags.Changed("strict") {
		config.StrictColumns = strict
	}
	if flags.Changed("no-merge") {
		config.MergeRuns = !noMerge
	}
	if flags.Changed("body-only") {
		config.HeadersFooters = !noAuxParts
	}
	if flags.Changed("mapping") {
		columns, err := templator.LoadColumnMapping(mappingPath)
		if err != nil {
			return err
		}
		if config.Columns == nil {
			config.Columns = make(map[string]string, len(columns))
		}
		for k, v := range columns {
			config.Columns[k] = v
		}
	}
	return nil
}

// chooseResolver picks how unmapped placeholders are resolved
func chooseResolver(config *templator.Config) templator.Resolver {
	switch {
	case len(config.Columns) > 0:
		return templator.NewMappingResolver(config.Columns)
	case autoMap:
		return templator.SuggestResolver{}
	case interactive || isTerminal(os.Stdin):
		return templator.NewPromptResolver(os.Stdin, os.Stderr)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine := templator.New(
		templator.WithConfig(config),
		templator.WithResolver(chooseResolver(config)),
	)

	report, err := engine.Generate(cmd.Context(), templator.Job{
		TemplatePath: templatePath,
		DataPath:     dataPath,
		Record:       recordNumber,
		DryRun:       dryRun,
	})
	if errors.Is(err, templator.ErrNoResolver) {
		return fmt.Errorf("%w; pass --mapping or --auto, or run in a terminal", err)
	}
	if report != nil {
		printReport(cmd, report)
	}
	return err
}

func printReport(cmd *cobra.Command, report *templator.Report) {
	out := cmd.OutOrStdout()

	for _, w := range report.Warnings {
		warnColor.Fprintf(cmd.ErrOrStderr(), "⚠ %s\n", w)
	}

	if dryRun {
		for _, f := range report.Files {
			if f.Superseded {
				continue
			}
			fmt.Fprintf(out, "%s  (record %d)\n", f.Path, f.Record)
		}
		fmt.Fprintf(out, "%d documents would be written\n", report.Planned())
		return
	}

	if report.Planned() > 0 {
		successColor.Fprintf(out, "✓ %d of %d documents written\n", report.Written(), report.Planned())
	}
}
