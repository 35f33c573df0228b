package xml

import "strings"

// Paragraph is a view over a w:p element
type Paragraph struct {
	Node   *Node
	prefix string
}

// NewParagraph wraps a w:p element, using prefix as the WordprocessingML prefix
func NewParagraph(node *Node, prefix string) *Paragraph {
	return &Paragraph{Node: node, prefix: prefix}
}

// Prefix returns the WordprocessingML prefix used by the paragraph
func (p *Paragraph) Prefix() string {
	return p.prefix
}

// Runs returns the direct w:r children of the paragraph.
// Runs wrapped in hyperlinks, fields or content controls are not part of this list.
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, c := range p.Node.Children {
		if c.Is(p.prefix, "r") {
			runs = append(runs, &Run{Node: c, prefix: p.prefix})
		}
	}
	return runs
}

// Text returns the concatenated text of the paragraph's runs
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, run := range p.Runs() {
		b.WriteString(run.Text())
	}
	return b.String()
}

// RunGroups returns the direct w:r children split at siblings that carry content of
// their own, such as hyperlinks, fields, tracked insertions and content controls.
// Paragraph properties, bookmarks and proofing marks do not split a group.
func (p *Paragraph) RunGroups() [][]*Run {
	indexes, count := p.groupIndexes()
	groups := make([][]*Run, count)
	for i, c := range p.Node.Children {
		if g := indexes[i]; g >= 0 {
			groups[g] = append(groups[g], &Run{Node: c, prefix: p.prefix})
		}
	}
	return groups
}

// ReplaceRunGroups swaps each run group for the w:r elements at the same index.
// A group's new runs take the place of its first run; a nil entry keeps the group as it is.
// Every other child keeps its position relative to the groups around it.
func (p *Paragraph) ReplaceRunGroups(groups [][]*Node) {
	indexes, _ := p.groupIndexes()
	children := make([]*Node, 0, len(p.Node.Children))
	inserted := make(map[int]bool, len(groups))

	for i, c := range p.Node.Children {
		g := indexes[i]
		if g < 0 || g >= len(groups) || groups[g] == nil {
			children = append(children, c)
			continue
		}
		if !inserted[g] {
			children = append(children, groups[g]...)
			inserted[g] = true
		}
	}
	p.Node.Children = children
}

// groupIndexes assigns every direct run its group number; other children get -1
func (p *Paragraph) groupIndexes() ([]int, int) {
	indexes := make([]int, len(p.Node.Children))
	group, open := 0, false

	for i, c := range p.Node.Children {
		indexes[i] = -1
		switch {
		case c.Is(p.prefix, "r"):
			indexes[i] = group
			open = true
		case p.movable(c):
			// keeps the current group open
		case open:
			group++
			open = false
		}
	}
	if open {
		group++
	}
	return indexes, group
}

// movable reports whether a non-run child may change places with the runs around it
func (p *Paragraph) movable(n *Node) bool {
	if n.Kind != ElementNode {
		return true
	}
	for _, local := range []string{"pPr", "bookmarkStart", "bookmarkEnd", "proofErr"} {
		if n.Is(p.prefix, local) {
			return true
		}
	}
	return false
}

// Run is a view over a w:r element
type Run struct {
	Node   *Node
	prefix string
}

// Properties returns the w:rPr element of the run, or nil
func (r *Run) Properties() *Node {
	return r.Node.Child(r.prefix, "rPr")
}

// Text returns the concatenated content of the run's w:t elements
func (r *Run) Text() string {
	var b strings.Builder
	for _, c := range r.Node.Children {
		if c.Is(r.prefix, "t") {
			b.WriteString(c.Text())
		}
	}
	return b.String()
}

// Segment is a piece of a run: either text from consecutive w:t elements, or a
// single non-text element (break, tab, drawing, field character) that must survive as is.
type Segment struct {
	Text    string
	Element *Node
}

// Segments splits the run content in order. Text of adjacent w:t elements is joined.
func (r *Run) Segments() []Segment {
	var segments []Segment
	var text strings.Builder
	inText := false

	flush := func() {
		if inText {
			segments = append(segments, Segment{Text: text.String()})
			text.Reset()
			inText = false
		}
	}

	for _, c := range r.Node.Children {
		switch {
		case c.Is(r.prefix, "rPr"):
			continue
		case c.Is(r.prefix, "t"):
			text.WriteString(c.Text())
			inText = true
		case c.Kind == ElementNode:
			flush()
			segments = append(segments, Segment{Element: c})
		}
	}
	flush()

	return segments
}

// NewRun creates a w:r element holding a copy of props followed by the given children
func NewRun(prefix string, props *Node, children ...*Node) *Node {
	run := NewElement(prefix, "r")
	if props != nil {
		run.Children = append(run.Children, props.Clone())
	}
	run.Children = append(run.Children, children...)
	return run
}

// NewText creates a w:t element. Whitespace is always preserved so that substituted
// values keep their leading and trailing spaces.
func NewText(prefix, content string) *Node {
	t := NewElement(prefix, "t")
	t.SetAttr("xml", "space", "preserve")
	if content != "" {
		t.Children = []*Node{NewCharData(content)}
	}
	return t
}
