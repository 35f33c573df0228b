package render

import "strings"

// SameFormat reports whether a and b are the same descriptor using ==.
// Descriptors must be comparable values (pointers, strings, structs of those).
func SameFormat(a, b Format) bool {
	return a == b
}

// MergeConsecutiveRuns merges neighbouring text runs whose formats are equal.
// Embedded runs are never merged and break up the sequence around them.
func MergeConsecutiveRuns(runs []Run, equal func(a, b Format) bool) []Run {
	if len(runs) <= 1 {
		return runs
	}

	merged := make([]Run, 0, len(runs))
	var text strings.Builder
	var current *Run

	flush := func() {
		if current != nil {
			current.Text = text.String()
			merged = append(merged, *current)
			current = nil
			text.Reset()
		}
	}

	for _, run := range runs {
		if run.Embedded {
			flush()
			merged = append(merged, run)
			continue
		}

		// Only merge if both runs carry text with equivalent formatting
		if current != nil && equal(current.Format, run.Format) {
			text.WriteString(run.Text)
			continue
		}

		flush()
		r := run
		current = &r
		text.WriteString(run.Text)
	}
	flush()

	return merged
}

// CleanEmptyRuns removes text runs with no content.
// Empty runs add nothing to the output and can confuse Word in headers and footers.
func CleanEmptyRuns(runs []Run) []Run {
	cleaned := make([]Run, 0, len(runs))
	for _, run := range runs {
		if !run.Embedded && run.Text == "" {
			continue
		}
		cleaned = append(cleaned, run)
	}
	return cleaned
}
