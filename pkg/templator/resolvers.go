package templator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	promptColor  = color.New(color.FgCyan, color.Bold)
	problemColor = color.New(color.FgRed)
)

// PromptResolver asks an operator to pick the column for each unmapped placeholder.
// Invalid answers are reported and asked again; end of input is an error.
type PromptResolver struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptResolver creates a resolver reading answers from in and writing prompts to out
func NewPromptResolver(in io.Reader, out io.Writer) *PromptResolver {
	return &PromptResolver{in: bufio.NewReader(in), out: out}
}

func (p *PromptResolver) Resolve(ctx context.Context, a Ambiguity) (int, error) {
	if a.Index == 0 {
		fmt.Fprintf(p.out, "You have %d unmapped placeholders.\n", a.Total)
	}
	fmt.Fprintf(p.out, "Placeholder '%s' is not a column. Sample data:\n", a.Placeholder)
	fmt.Fprintln(p.out, SamplePreview(a))

	suggestion, hasSuggestion := suggestPosition(a)
	if hasSuggestion {
		fmt.Fprintf(p.out, "Suggested: %d (%s), press Enter to accept\n", suggestion, a.Columns[suggestion])
	}

	for {
		if err := ctx.Err(); err != nil {
			return -1, err
		}

		promptColor.Fprintf(p.out, "Which position should '%s' map to? (choose from %v) ", a.Placeholder, a.Candidates)

		line, err := p.in.ReadString('\n')
		answer := strings.TrimSpace(line)
		if err != nil && (err != io.EOF || answer == "") {
			if err == io.EOF {
				return -1, io.ErrUnexpectedEOF
			}
			return -1, err
		}

		if answer == "" && hasSuggestion {
			return suggestion, nil
		}

		pos, convErr := strconv.Atoi(answer)
		if convErr != nil {
			problemColor.Fprintln(p.out, "❌ Please enter a number.")
			continue
		}
		if !a.HasCandidate(pos) {
			problemColor.Fprintln(p.out, "❌ Invalid position, try again.")
			continue
		}
		return pos, nil
	}
}

// SuggestResolver picks the candidate column whose name best matches the placeholder.
// Without any match it takes the first remaining position.
type SuggestResolver struct{}

func (SuggestResolver) Resolve(ctx context.Context, a Ambiguity) (int, error) {
	if len(a.Candidates) == 0 {
		return -1, fmt.Errorf("no columns left to map")
	}
	if pos, ok := suggestPosition(a); ok {
		Debug("Suggested column %d (%s) for placeholder '%s'", pos, a.Columns[pos], a.Placeholder)
		return pos, nil
	}
	return a.Candidates[0], nil
}

// suggestPosition finds the candidate column closest to the placeholder name.
// Columns containing the placeholder's letters in order are tried first, then
// columns whose letters the placeholder contains. Matches rank by edit distance.
func suggestPosition(a Ambiguity) (int, bool) {
	names := make([]string, len(a.Candidates))
	for i, pos := range a.Candidates {
		names[i] = a.Columns[pos]
	}

	ranks := fuzzy.RankFindFold(a.Placeholder, names)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		return a.Candidates[ranks[0].OriginalIndex], true
	}

	best, bestDistance := -1, 0
	lower := strings.ToLower(a.Placeholder)
	for i, name := range names {
		if name == "" || !fuzzy.MatchFold(name, a.Placeholder) {
			continue
		}
		d := fuzzy.LevenshteinDistance(strings.ToLower(name), lower)
		if best < 0 || d < bestDistance {
			best, bestDistance = i, d
		}
	}
	if best < 0 {
		return -1, false
	}
	return a.Candidates[best], true
}
