package templator

import (
	"bytes"
	"strings"

	"github.com/volodymyr2126/cli-docx-templator/pkg/templator/render"
	"github.com/volodymyr2126/cli-docx-templator/pkg/templator/xml"
)

// runFormat is the formatting descriptor handed to the render package for DOCX runs.
// Text segments carry the run properties; embedded segments carry a ready-made w:r element.
type runFormat struct {
	props *xml.Node
	// key is the serialized properties, used to compare formats
	key string
	// element is set for embedded segments
	element *xml.Node
}

// paragraphRuns converts each run group of a paragraph into render runs.
// Every run is split into text segments and embedded segments (breaks, tabs, drawings).
func paragraphRuns(p *xml.Paragraph) [][]render.Run {
	prefix := p.Prefix()
	groups := p.RunGroups()
	result := make([][]render.Run, len(groups))

	for i, group := range groups {
		for _, run := range group {
			props := run.Properties()
			format := &runFormat{props: props, key: propertiesKey(props)}

			for _, seg := range run.Segments() {
				if seg.Element != nil {
					result[i] = append(result[i], render.Run{
						Format:   &runFormat{element: xml.NewRun(prefix, props, seg.Element)},
						Embedded: true,
					})
					continue
				}
				result[i] = append(result[i], render.Run{Text: seg.Text, Format: format})
			}
		}
	}

	return result
}

// runNodes turns rendered runs back into w:r elements. The result is never nil.
func runNodes(prefix string, runs []render.Run) []*xml.Node {
	nodes := make([]*xml.Node, 0, len(runs))

	for _, run := range runs {
		format, _ := run.Format.(*runFormat)
		if run.Embedded {
			if format != nil && format.element != nil {
				nodes = append(nodes, format.element)
			}
			continue
		}
		if run.Text == "" {
			continue
		}

		var props *xml.Node
		if format != nil {
			props = format.props
		}
		nodes = append(nodes, xml.NewRun(prefix, props, xml.NewText(prefix, run.Text)))
	}

	return nodes
}

// sameRunFormat reports whether two text formats would render identically
func sameRunFormat(a, b render.Format) bool {
	fa, okA := a.(*runFormat)
	fb, okB := b.(*runFormat)
	if !okA || !okB {
		return false
	}
	if fa == fb {
		return true
	}
	return fa.element == nil && fb.element == nil && fa.key == fb.key
}

func propertiesKey(props *xml.Node) string {
	if props == nil {
		return ""
	}
	var buf bytes.Buffer
	doc := &xml.Document{Nodes: []*xml.Node{props}}
	if _, err := doc.WriteTo(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// substituteParagraph rewrites one paragraph with vars.
// Each run group is rewritten on its own; groups without an opening delimiter keep their runs.
func substituteParagraph(p *xml.Paragraph, vars render.Mapping, mergeRuns bool) {
	var equal func(a, b render.Format) bool
	if mergeRuns {
		equal = sameRunFormat
	}

	groups := paragraphRuns(p)
	rebuilt := make([][]*xml.Node, len(groups))
	changed := false

	for i, runs := range groups {
		if !strings.ContainsRune(render.Text(runs), render.OpenDelimiter) {
			continue
		}
		rebuilt[i] = runNodes(p.Prefix(), render.Substitute(runs, vars, equal))
		changed = true
	}

	if changed {
		p.ReplaceRunGroups(rebuilt)
	}
}
