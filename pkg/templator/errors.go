package templator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrAborted reports that generation stopped before any document was written
	ErrAborted = errors.New("generation aborted")
	// ErrNoResolver reports that column reconciliation needs a decision but no resolver is configured
	ErrNoResolver = errors.New("columns need mapping but no resolver is configured")
)

// MismatchError reports that the data source cannot supply every placeholder.
// It aborts the whole run before any output is produced.
type MismatchError struct {
	Columns      int
	Placeholders int
	Strict       bool
}

func (e *MismatchError) Error() string {
	if e.Strict {
		return fmt.Sprintf("data has %d columns but the template has %d placeholders; strict mode requires equal counts", e.Columns, e.Placeholders)
	}
	return fmt.Sprintf("data has %d columns but the template has %d placeholders; add the missing columns to the data file", e.Columns, e.Placeholders)
}

// Is lets errors.Is(err, ErrAborted) match a mismatch
func (e *MismatchError) Is(target error) bool {
	return target == ErrAborted
}

// NewMismatchError creates a new mismatch error
func NewMismatchError(columns, placeholders int, strict bool) error {
	return &MismatchError{
		Columns:      columns,
		Placeholders: placeholders,
		Strict:       strict,
	}
}

// ResolutionError represents a resolver decision that cannot be applied
type ResolutionError struct {
	Placeholder string
	Position    int
	Candidates  []int
	Cause       error
}

func (e *ResolutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot map placeholder '%s': %v", e.Placeholder, e.Cause)
	}
	return fmt.Sprintf("cannot map placeholder '%s' to position %d (choose from %v)", e.Placeholder, e.Position, e.Candidates)
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrAborted) match a failed resolution
func (e *ResolutionError) Is(target error) bool {
	return target == ErrAborted
}

// PatternError represents a file name pattern that cannot be filled from a record
type PatternError struct {
	Pattern string
	Field   string
	Message string
}

func (e *PatternError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("file name pattern '%s': field '%s' %s", e.Pattern, e.Field, e.Message)
	}
	return fmt.Sprintf("file name pattern '%s': %s", e.Pattern, e.Message)
}

// NewPatternError creates a new pattern error
func NewPatternError(pattern, field, message string) error {
	return &PatternError{
		Pattern: pattern,
		Field:   field,
		Message: message,
	}
}

// DocumentError represents an error during document operations
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// DataError represents an error reading the tabular data source
type DataError struct {
	Path  string
	Row   int
	Cause error
}

func (e *DataError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("data error in '%s' at row %d: %v", e.Path, e.Row, e.Cause)
	}
	return fmt.Sprintf("data error in '%s': %v", e.Path, e.Cause)
}

func (e *DataError) Unwrap() error {
	return e.Cause
}

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Field   string
	Message string
}

// ValidationError represents multiple validation issues
type ValidationError struct {
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation error"
	}

	if len(e.Issues) == 1 {
		return fmt.Sprintf("validation error: %s - %s", e.Issues[0].Field, e.Issues[0].Message)
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("%d validation issues:", len(e.Issues)))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("  %s: %s", issue.Field, issue.Message))
	}
	return strings.Join(parts, "\n")
}

// ContextError adds context to an existing error
type ContextError struct {
	Operation string
	Context   map[string]interface{}
	Cause     error
}

func (e *ContextError) Error() string {
	var contextParts []string
	for k, v := range e.Context {
		contextParts = append(contextParts, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(contextParts)

	if len(contextParts) > 0 {
		return fmt.Sprintf("%s [%s]: %v", e.Operation, strings.Join(contextParts, ", "), e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

func (e *ContextError) Unwrap() error {
	return e.Cause
}

// WithContext wraps an error with additional context
func WithContext(err error, operation string, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ContextError{
		Operation: operation,
		Context:   context,
		Cause:     err,
	}
}

// IsMismatchError checks if an error is a column/placeholder mismatch
func IsMismatchError(err error) bool {
	var target *MismatchError
	return errors.As(err, &target)
}

// IsDocumentError checks if an error is a document error
func IsDocumentError(err error) bool {
	var target *DocumentError
	return errors.As(err, &target)
}

// IsPatternError checks if an error is a file name pattern error
func IsPatternError(err error) bool {
	var target *PatternError
	return errors.As(err, &target)
}

// MultiError collects the errors of independent records
type MultiError struct {
	mu     sync.Mutex
	errors []error
}

// NewMultiError creates a new multi-error collector
func NewMultiError() *MultiError {
	return &MultiError{}
}

// Add adds an error to the collection (ignores nil errors)
func (m *MultiError) Add(err error) {
	if err == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, err)
}

// Len returns the number of errors
func (m *MultiError) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.errors)
}

// Errors returns a copy of the collected errors
func (m *MultiError) Errors() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]error(nil), m.errors...)
}

// Err returns the multi-error or nil if empty
func (m *MultiError) Err() error {
	switch m.Len() {
	case 0:
		return nil
	case 1:
		return m.Errors()[0]
	}
	return m
}

func (m *MultiError) Error() string {
	errs := m.Errors()
	if len(errs) == 0 {
		return "no errors"
	}
	if len(errs) == 1 {
		return errs[0].Error()
	}

	parts := []string{fmt.Sprintf("%d errors occurred:", len(errs))}
	for i, err := range errs {
		parts = append(parts, fmt.Sprintf("  [%d] %v", i+1, err))
	}
	return strings.Join(parts, "\n")
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (m *MultiError) Unwrap() []error {
	return m.Errors()
}
