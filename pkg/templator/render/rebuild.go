package render

import "strings"

// Rebuild produces the replacement run sequence for scanned spans.
//
// Every literal span becomes a one-character run with its origin formatting. A
// placeholder becomes a single run holding the mapped value with the formatting of the
// run that opened it; a name missing from vars is written back as "{name}".
// Embedded spans are returned unchanged.
func Rebuild(spans []Span, vars Mapping) []Run {
	runs := make([]Run, 0, len(spans))

	for _, span := range spans {
		switch span.Kind {
		case SpanLiteral:
			runs = append(runs, Run{Text: span.Text, Format: span.Format})
		case SpanPlaceholder:
			runs = append(runs, Run{Text: lookup(vars, span.Text), Format: span.Format})
		case SpanEmbedded:
			runs = append(runs, Run{Format: span.Format, Embedded: true})
		}
	}

	return runs
}

func lookup(vars Mapping, name string) string {
	if value, ok := vars[name]; ok {
		return value
	}
	return Placeholder(name)
}

// Placeholder returns name wrapped in delimiters
func Placeholder(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 2)
	b.WriteRune(OpenDelimiter)
	b.WriteString(name)
	b.WriteRune(CloseDelimiter)
	return b.String()
}

// Substitute scans runs and rebuilds them with vars. When equal is not nil, adjacent
// runs whose formats are equal are merged back together and empty runs are dropped.
func Substitute(runs []Run, vars Mapping, equal func(a, b Format) bool) []Run {
	rebuilt := Rebuild(Scan(runs), vars)
	if equal == nil {
		return rebuilt
	}
	return MergeConsecutiveRuns(CleanEmptyRuns(rebuilt), equal)
}
