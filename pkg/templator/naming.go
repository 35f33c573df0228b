package templator

import (
	"regexp"
	"strconv"
	"strings"
)

// RecordNumberField expands to the 1-based number of the record in a file name pattern
const RecordNumberField = "#"

var (
	patternFieldRegex = regexp.MustCompile(`\{([^{}]*)\}`)
	unsafeNameChars   = strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
)

// FileName fills a file name pattern from a record.
// Fields are written as {column}; {#} is the record number. Spaces and path
// separators become underscores and ".docx" is appended when missing.
func FileName(pattern string, rec Record, number int) (string, error) {
	var firstErr error
	name := patternFieldRegex.ReplaceAllStringFunc(pattern, func(match string) string {
		field := match[1 : len(match)-1]
		if field == RecordNumberField {
			return strconv.Itoa(number)
		}
		if field == "" {
			if firstErr == nil {
				firstErr = NewPatternError(pattern, "", "contains an empty field {}")
			}
			return match
		}
		value, ok := rec.Values[field]
		if !ok {
			if firstErr == nil {
				firstErr = NewPatternError(pattern, field, "is not a column of the data")
			}
			return match
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}

	name = strings.TrimSpace(name)
	name = unsafeNameChars.Replace(name)
	if strings.Trim(name, "._") == "" {
		return "", NewPatternError(pattern, "", "produces an empty file name")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".docx") {
		name += ".docx"
	}
	return name, nil
}

// PatternFields returns the column names a file name pattern refers to
func PatternFields(pattern string) []string {
	var fields []string
	for _, m := range patternFieldRegex.FindAllStringSubmatch(pattern, -1) {
		if m[1] != "" && m[1] != RecordNumberField {
			fields = append(fields, m[1])
		}
	}
	return fields
}
