package templator

import (
	"context"
	"fmt"

	"github.com/volodymyr2126/cli-docx-templator/pkg/templator/render"
)

// Ambiguity describes a placeholder that names no column.
// The resolver picks one of Candidates, a position in Columns.
type Ambiguity struct {
	Placeholder string
	// Candidates are the column positions still unclaimed, ascending
	Candidates []int
	Columns    []string
	// Samples holds leading values of every candidate column
	Samples map[int][]string
	// Index is the 0-based number of this placeholder among the Total unmapped ones
	Index int
	Total int
}

// HasCandidate reports whether pos is still available
func (a Ambiguity) HasCandidate(pos int) bool {
	for _, c := range a.Candidates {
		if c == pos {
			return true
		}
	}
	return false
}

// Resolver decides which column an unmapped placeholder takes its values from
type Resolver interface {
	Resolve(ctx context.Context, a Ambiguity) (int, error)
}

// ResolverFunc adapts a function to the Resolver interface
type ResolverFunc func(ctx context.Context, a Ambiguity) (int, error)

func (f ResolverFunc) Resolve(ctx context.Context, a Ambiguity) (int, error) {
	return f(ctx, a)
}

// ReconcileOptions tune column reconciliation
type ReconcileOptions struct {
	// Strict requires exactly as many columns as placeholders
	Strict bool
	// SampleSize is the number of records whose values are shown per candidate column
	SampleSize int
}

// Reconcile maps the template's placeholder names onto the data columns.
// It returns the column list to rename records with: every column named like
// a placeholder keeps its name, and each remaining placeholder is given the
// position its resolver picks. Columns nobody claims keep their names.
func Reconcile(ctx context.Context, vars render.VariableSet, columns []string, sample []Record, resolver Resolver, opts ReconcileOptions) ([]string, error) {
	if len(columns) < len(vars) || (opts.Strict && len(columns) != len(vars)) {
		return nil, NewMismatchError(len(columns), len(vars), opts.Strict)
	}

	unmatched := Missing(vars, columns)
	revised := append([]string(nil), columns...)
	if len(unmatched) == 0 {
		return revised, nil
	}

	// Positions of columns that no placeholder names
	var pool []int
	for i, col := range columns {
		if !vars.Has(col) {
			pool = append(pool, i)
		}
	}

	if resolver == nil {
		return nil, &ResolutionError{Placeholder: unmatched[0], Candidates: pool, Cause: ErrNoResolver}
	}

	if len(sample) > opts.SampleSize {
		sample = sample[:opts.SampleSize]
	}

	for i, name := range unmatched {
		if err := ctx.Err(); err != nil {
			return nil, &ResolutionError{Placeholder: name, Candidates: pool, Cause: err}
		}

		amb := Ambiguity{
			Placeholder: name,
			Candidates:  append([]int(nil), pool...),
			Columns:     columns,
			Samples:     sampleValues(columns, pool, sample),
			Index:       i,
			Total:       len(unmatched),
		}

		pos, err := resolver.Resolve(ctx, amb)
		if err != nil {
			return nil, &ResolutionError{Placeholder: name, Candidates: amb.Candidates, Cause: err}
		}
		if !amb.HasCandidate(pos) {
			return nil, &ResolutionError{Placeholder: name, Position: pos, Candidates: amb.Candidates}
		}

		Debug("Mapped placeholder '%s' to column %d (%s)", name, pos, columns[pos])
		revised[pos] = name
		pool = removePosition(pool, pos)
	}

	return revised, nil
}

// Missing returns the placeholder names that are not columns, in sorted order
func Missing(vars render.VariableSet, columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col] = true
	}
	var missing []string
	for _, name := range vars.Sorted() {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

func sampleValues(columns []string, positions []int, sample []Record) map[int][]string {
	samples := make(map[int][]string, len(positions))
	for _, pos := range positions {
		values := make([]string, 0, len(sample))
		for _, rec := range sample {
			values = append(values, rec.Values[columns[pos]])
		}
		samples[pos] = values
	}
	return samples
}

func removePosition(pool []int, pos int) []int {
	out := pool[:0:0]
	for _, p := range pool {
		if p != pos {
			out = append(out, p)
		}
	}
	return out
}

// describeCandidates formats candidate positions with their column names
func describeCandidates(a Ambiguity) string {
	s := ""
	for i, pos := range a.Candidates {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d (%s)", pos, a.Columns[pos])
	}
	return s
}
