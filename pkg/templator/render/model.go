package render

import "strings"

// Format is an opaque formatting descriptor. It is copied onto output runs and never inspected.
type Format interface{}

// Run is a contiguous span of text sharing one formatting descriptor
type Run struct {
	Text   string
	Format Format
	// Embedded marks a run without text (a break, tab or drawing). It passes through unchanged.
	Embedded bool
}

// Mapping associates placeholder names with substitution values for one data record
type Mapping map[string]string

// Text returns the concatenated text of runs
func Text(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
