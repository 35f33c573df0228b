package templator

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/volodymyr2126/cli-docx-templator/pkg/templator/render"
)

// previewCellWidth bounds the width of a sample cell
const previewCellWidth = 40

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	missStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("1"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// SamplePreview renders the candidate columns of an ambiguity with their sample values
func SamplePreview(a Ambiguity) string {
	t := newTable("Position", "Column", "Sample data")
	for _, pos := range a.Candidates {
		samples := strings.Join(a.Samples[pos], ",")
		t.Row(strconv.Itoa(pos), truncate(a.Columns[pos], previewCellWidth), truncate(samples, previewCellWidth))
	}
	return t.String()
}

// MatchTable renders every placeholder next to the column that supplies it
func MatchTable(vars render.VariableSet, columns []string) string {
	index := make(map[string]int, len(columns))
	for i := len(columns) - 1; i >= 0; i-- {
		index[columns[i]] = i
	}

	names := vars.Sorted()
	missing := make(map[int]bool)
	t := newTable("Placeholder", "Column", "Position")
	for i, name := range names {
		pos, ok := index[name]
		if !ok {
			missing[i] = true
			t.Row(truncate(name, previewCellWidth), "(unmapped)", "-")
			continue
		}
		t.Row(truncate(name, previewCellWidth), truncate(columns[pos], previewCellWidth), strconv.Itoa(pos))
	}

	return t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		// data rows are numbered from the row after the header
		if missing[row-1-table.HeaderRow] {
			return missStyle
		}
		return cellStyle
	}).String()
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
