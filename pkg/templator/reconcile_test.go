package templator

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/volodymyr2126/cli-docx-templator/pkg/templator/render"
)

// fixedResolver answers with the given positions in order and records every ambiguity
type fixedResolver struct {
	answers []int
	seen    []Ambiguity
}

func (f *fixedResolver) Resolve(ctx context.Context, a Ambiguity) (int, error) {
	f.seen = append(f.seen, a)
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name    string
		vars    []string
		columns []string
		answers []int
		strict  bool
		want    []string
		wantErr error
	}{
		{
			name:    "fewer columns than placeholders aborts",
			vars:    []string{"a", "b"},
			columns: []string{"a"},
			wantErr: ErrAborted,
		},
		{
			name:    "every placeholder is a column",
			vars:    []string{"a", "b"},
			columns: []string{"b", "a"},
			want:    []string{"b", "a"},
		},
		{
			name:    "placeholders are a subset of the columns",
			vars:    []string{"a"},
			columns: []string{"a", "extra"},
			want:    []string{"a", "extra"},
		},
		{
			name:    "no placeholders",
			columns: []string{"x"},
			want:    []string{"x"},
		},
		{
			name:    "positional mapping of disjoint names",
			vars:    []string{"a", "b"},
			columns: []string{"x", "y"},
			answers: []int{0, 1},
			want:    []string{"a", "b"},
		},
		{
			name:    "operator order is respected",
			vars:    []string{"a", "b"},
			columns: []string{"x", "y"},
			answers: []int{1, 0},
			want:    []string{"b", "a"},
		},
		{
			name:    "matched columns are not candidates",
			vars:    []string{"name", "total"},
			columns: []string{"name", "id", "sum"},
			answers: []int{2},
			want:    []string{"name", "id", "total"},
		},
		{
			name:    "strict mode rejects extra columns",
			vars:    []string{"a"},
			columns: []string{"a", "extra"},
			strict:  true,
			wantErr: ErrAborted,
		},
		{
			name:    "strict mode accepts equal counts",
			vars:    []string{"a"},
			columns: []string{"a"},
			strict:  true,
			want:    []string{"a"},
		},
		{
			name:    "position outside the pool",
			vars:    []string{"a", "b"},
			columns: []string{"a", "x"},
			answers: []int{0},
			wantErr: ErrAborted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := &fixedResolver{answers: tt.answers}
			got, err := Reconcile(context.Background(), render.NewVariableSet(tt.vars...), tt.columns, nil, resolver,
				ReconcileOptions{Strict: tt.strict, SampleSize: 5})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Reconcile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Reconcile() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Reconcile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReconcile_MismatchError(t *testing.T) {
	_, err := Reconcile(context.Background(), render.NewVariableSet("a", "b"), []string{"a"}, nil, nil, ReconcileOptions{})

	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Reconcile() error = %v, want *MismatchError", err)
	}
	if mismatch.Columns != 1 || mismatch.Placeholders != 2 {
		t.Errorf("MismatchError = %+v, want 1 column and 2 placeholders", mismatch)
	}
}

func TestReconcile_DoesNotModifyColumns(t *testing.T) {
	columns := []string{"x", "y"}
	resolver := &fixedResolver{answers: []int{0, 1}}

	if _, err := Reconcile(context.Background(), render.NewVariableSet("a", "b"), columns, nil, resolver, ReconcileOptions{}); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if diff := cmp.Diff([]string{"x", "y"}, columns); diff != "" {
		t.Errorf("columns modified (-want +got):\n%s", diff)
	}
}

func TestReconcile_Ambiguities(t *testing.T) {
	columns := []string{"x", "name", "y"}
	sample := []Record{
		NewRecord(columns, []string{"1", "Ana", "a"}),
		NewRecord(columns, []string{"2", "Bob", "b"}),
		NewRecord(columns, []string{"3", "Cy", "c"}),
	}
	resolver := &fixedResolver{answers: []int{2, 0}}

	got, err := Reconcile(context.Background(), render.NewVariableSet("name", "b", "a"), columns, sample, resolver,
		ReconcileOptions{SampleSize: 2})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if diff := cmp.Diff([]string{"b", "name", "a"}, got); diff != "" {
		t.Errorf("Reconcile() mismatch (-want +got):\n%s", diff)
	}

	if len(resolver.seen) != 2 {
		t.Fatalf("resolver called %d times, want 2", len(resolver.seen))
	}

	first := resolver.seen[0]
	if first.Placeholder != "a" || first.Index != 0 || first.Total != 2 {
		t.Errorf("first ambiguity = %+v, want placeholder a (0 of 2)", first)
	}
	if diff := cmp.Diff([]int{0, 2}, first.Candidates); diff != "" {
		t.Errorf("first candidates mismatch (-want +got):\n%s", diff)
	}
	wantSamples := map[int][]string{0: {"1", "2"}, 2: {"a", "b"}}
	if diff := cmp.Diff(wantSamples, first.Samples); diff != "" {
		t.Errorf("first samples mismatch (-want +got):\n%s", diff)
	}

	second := resolver.seen[1]
	if second.Placeholder != "b" {
		t.Errorf("second placeholder = %q, want b", second.Placeholder)
	}
	if diff := cmp.Diff([]int{0}, second.Candidates); diff != "" {
		t.Errorf("second candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcile_ResolverErrors(t *testing.T) {
	vars := render.NewVariableSet("a")
	columns := []string{"x"}

	t.Run("no resolver", func(t *testing.T) {
		_, err := Reconcile(context.Background(), vars, columns, nil, nil, ReconcileOptions{})
		if !errors.Is(err, ErrNoResolver) || !errors.Is(err, ErrAborted) {
			t.Errorf("Reconcile() error = %v, want ErrNoResolver", err)
		}
	})

	t.Run("resolver failure", func(t *testing.T) {
		boom := errors.New("boom")
		resolver := ResolverFunc(func(ctx context.Context, a Ambiguity) (int, error) {
			return 0, boom
		})
		_, err := Reconcile(context.Background(), vars, columns, nil, resolver, ReconcileOptions{})
		var resErr *ResolutionError
		if !errors.As(err, &resErr) || !errors.Is(err, boom) {
			t.Fatalf("Reconcile() error = %v, want ResolutionError wrapping boom", err)
		}
		if resErr.Placeholder != "a" {
			t.Errorf("ResolutionError.Placeholder = %q, want a", resErr.Placeholder)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		resolver := ResolverFunc(func(ctx context.Context, a Ambiguity) (int, error) {
			t.Error("resolver called after cancellation")
			return 0, nil
		})
		_, err := Reconcile(ctx, vars, columns, nil, resolver, ReconcileOptions{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Reconcile() error = %v, want context.Canceled", err)
		}
	})
}

func TestMissing(t *testing.T) {
	got := Missing(render.NewVariableSet("c", "a", "b"), []string{"b", "x"})
	if diff := cmp.Diff([]string{"a", "c"}, got); diff != "" {
		t.Errorf("Missing() mismatch (-want +got):\n%s", diff)
	}
}
