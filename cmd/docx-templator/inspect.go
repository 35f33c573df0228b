package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/volodymyr2126/cli-docx-templator/pkg/templator"
	"github.com/volodymyr2126/cli-docx-templator/pkg/templator/render"
)

var (
	inspectData    string
	inspectSheet   string
	inspectPattern string
)

func init() {
	inspectCmd.Flags().StringVarP(&inspectData, "data", "d", "", "data file to match the placeholders against")
	inspectCmd.Flags().StringVar(&inspectSheet, "sheet", "", "XLSX worksheet (default: the first one)")
	inspectCmd.Flags().StringVarP(&inspectPattern, "pattern", "p", "", "output file name pattern to check against the columns")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <template.docx>",
	Short: "List the placeholders of a template",
	Long: `Inspect prints every placeholder used in the template. With --data it also
shows which column supplies each placeholder and which would need mapping.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("sheet") {
		config.Sheet = inspectSheet
	}
	if cmd.Flags().Changed("pattern") {
		config.Pattern = inspectPattern
	}

	engine := templator.New(templator.WithConfig(config))
	tmpl, err := engine.PrepareFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	vars := tmpl.Variables()
	fmt.Fprintf(out, "Parts: %s\n", strings.Join(tmpl.Parts(), ", "))

	if inspectData == "" {
		fmt.Fprintf(out, "%d placeholders:\n", len(vars))
		for _, name := range vars.Sorted() {
			fmt.Fprintf(out, "  {%s}\n", name)
		}
		return nil
	}

	table, err := engine.LoadRecords(inspectData)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d placeholders, %d columns, %d records\n", len(vars), len(table.Columns), len(table.Records))
	fmt.Fprintln(out, templator.MatchTable(vars, table.Columns))

	if len(table.Columns) < len(vars) {
		warnColor.Fprintln(out, "⚠ fewer columns than placeholders; generation would be rejected")
	} else if missing := templator.Missing(vars, table.Columns); len(missing) > 0 {
		warnColor.Fprintf(out, "⚠ %d placeholders need a column mapping: %s\n", len(missing), strings.Join(missing, ", "))
	} else {
		successColor.Fprintln(out, "✓ every placeholder has a column")
	}

	if unknown := unknownPatternFields(config.Pattern, vars, table.Columns); len(unknown) > 0 {
		warnColor.Fprintf(out, "⚠ file name pattern %q uses fields that are neither columns nor placeholders: %s\n",
			config.Pattern, strings.Join(unknown, ", "))
	}
	return nil
}

// unknownPatternFields lists the pattern fields no record will have after reconciliation
func unknownPatternFields(pattern string, vars render.VariableSet, columns []string) []string {
	var unknown []string
	for _, field := range templator.PatternFields(pattern) {
		if !vars.Has(field) && !slices.Contains(columns, field) {
			unknown = append(unknown, field)
		}
	}
	return unknown
}
