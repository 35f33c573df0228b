package render

import (
	"regexp"
	"sort"
)

var placeholderPattern = regexp.MustCompile(`\{([^}]+)\}`)

// VariableSet is the set of distinct placeholder names found in a template
type VariableSet map[string]struct{}

// Variables returns every placeholder name occurring in text.
// Names are case-sensitive; a name is everything between a '{' and the next '}'.
func Variables(text string) VariableSet {
	set := make(VariableSet)
	for _, m := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		set[m[1]] = struct{}{}
	}
	return set
}

// NewVariableSet builds a set from names
func NewVariableSet(names ...string) VariableSet {
	set := make(VariableSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Has reports whether name is in the set
func (s VariableSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Add merges other into s
func (s VariableSet) Add(other VariableSet) {
	for name := range other {
		s[name] = struct{}{}
	}
}

// Sorted returns the names in lexical order
func (s VariableSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
