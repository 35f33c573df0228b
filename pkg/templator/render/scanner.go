package render

import "strings"

const (
	// OpenDelimiter starts a placeholder name
	OpenDelimiter = '{'
	// CloseDelimiter ends a placeholder name
	CloseDelimiter = '}'
)

// SpanKind classifies a scanned span
type SpanKind int

const (
	// SpanLiteral is one character of text outside any placeholder
	SpanLiteral SpanKind = iota
	// SpanPlaceholder is a complete placeholder; Text holds the name without delimiters
	SpanPlaceholder
	// SpanEmbedded is a text-less run carried over as is
	SpanEmbedded
)

func (k SpanKind) String() string {
	switch k {
	case SpanLiteral:
		return "literal"
	case SpanPlaceholder:
		return "placeholder"
	case SpanEmbedded:
		return "embedded"
	default:
		return "unknown"
	}
}

// Span is one unit of scanner output
type Span struct {
	Kind SpanKind
	Text string
	// Format is the origin run's formatting for literals and embedded runs, and the
	// formatting of the run holding the opening delimiter for placeholders.
	Format Format
}

// Scan walks the characters of runs in order and splits them into literal characters
// and placeholder names.
//
// A '{' starts a new name and remembers the current run as the origin of its
// formatting; a second '{' before the closing '}' restarts the name. A '}' outside a
// name is an ordinary character. A name still open when the runs end is dropped
// together with its characters.
func Scan(runs []Run) []Span {
	var spans []Span

	insideName := false
	var currentName strings.Builder
	var origin Format

	for _, run := range runs {
		if run.Embedded {
			spans = append(spans, Span{Kind: SpanEmbedded, Format: run.Format})
			continue
		}

		for _, ch := range run.Text {
			switch {
			case ch == OpenDelimiter:
				insideName = true
				currentName.Reset()
				origin = run.Format
			case ch == CloseDelimiter && insideName:
				spans = append(spans, Span{Kind: SpanPlaceholder, Text: currentName.String(), Format: origin})
				insideName = false
				currentName.Reset()
			case insideName:
				currentName.WriteRune(ch)
			default:
				spans = append(spans, Span{Kind: SpanLiteral, Text: string(ch), Format: run.Format})
			}
		}
	}

	return spans
}
