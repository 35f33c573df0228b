// Package render implements placeholder substitution over formatted text runs.
//
// A paragraph arrives as an ordered list of runs, each carrying text and an opaque
// formatting descriptor. Word splits text into runs wherever formatting, spell-check
// state or editing history changes, so a single {placeholder} is often spread over
// several runs. The functions here work on the concatenated text while remembering
// which run every character came from.
//
// # Structure Organization
//
//   - model.go: Run, Format and Mapping
//   - scanner.go: Scan, the single-pass placeholder state machine
//   - rebuild.go: Rebuild and Substitute, producing the new run sequence
//   - helpers.go: MergeConsecutiveRuns for coalescing runs with equal formatting
//   - variables.go: placeholder discovery over whole-document text
//
// # Formatting Inheritance
//
// Literal characters keep the formatting of the run they came from. A substituted
// value takes the formatting of the run holding the opening brace:
//
//	runs := []render.Run{
//	    {Text: "Hel{na", Format: bold},
//	    {Text: "me}world", Format: italic},
//	}
//	out := render.Substitute(runs, render.Mapping{"name": "Ana"}, render.SameFormat)
//	// out: "HelAna" bold, "world" italic
//
// # Design Principles
//
// Pure Functions: nothing in this package touches XML or files. Formatting values are
// compared only through the equality function the caller passes in.
package render
