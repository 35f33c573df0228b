package templator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/volodymyr2126/cli-docx-templator/pkg/templator/render"
)

// LoadColumnMapping reads a placeholder to column mapping from a TOML or YAML file.
// Entries may sit at the top level or under a "columns" table. A column is given
// by name or by its 0-based position.
func LoadColumnMapping(path string) (map[string]string, error) {
	var raw map[string]interface{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &raw); err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
	case ".yaml", ".yml":
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read mapping file: %w", err)
		}
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported mapping file type (use .toml, .yaml or .yml)", path)
	}

	if nested, ok := raw["columns"].(map[string]interface{}); ok && len(raw) == 1 {
		raw = nested
	}

	columns, err := normalizeColumnMapping(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return columns, nil
}

// normalizeColumnMapping turns decoded mapping values into column references
func normalizeColumnMapping(raw map[string]interface{}) (map[string]string, error) {
	columns := make(map[string]string, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case string:
			columns[name] = v
		case int:
			columns[name] = strconv.Itoa(v)
		case int64:
			columns[name] = strconv.FormatInt(v, 10)
		case float64:
			if v != float64(int64(v)) {
				return nil, fmt.Errorf("column position for '%s' must be a whole number, got %v", name, v)
			}
			columns[name] = strconv.FormatInt(int64(v), 10)
		default:
			return nil, fmt.Errorf("column for '%s' must be a name or a position, got %T", name, value)
		}
	}
	return columns, nil
}

// MappingResolver resolves placeholders from a fixed placeholder to column mapping
type MappingResolver struct {
	columns map[string]string
}

// NewMappingResolver creates a resolver from a mapping of placeholder to column name or position
func NewMappingResolver(columns map[string]string) *MappingResolver {
	return &MappingResolver{columns: columns}
}

// Resolve looks the placeholder up. A value naming a column wins over a numeric reading.
func (m *MappingResolver) Resolve(ctx context.Context, a Ambiguity) (int, error) {
	target, ok := m.columns[a.Placeholder]
	if !ok {
		return -1, fmt.Errorf("no mapping entry; candidates are %s", describeCandidates(a))
	}

	for _, pos := range a.Candidates {
		if a.Columns[pos] == target {
			return pos, nil
		}
	}

	pos, err := strconv.Atoi(strings.TrimSpace(target))
	if err != nil {
		return -1, fmt.Errorf("mapped column '%s' is not available; candidates are %s", target, describeCandidates(a))
	}
	return pos, nil
}

// Validate reports mapping entries that name no placeholder of the template
func (m *MappingResolver) Validate(vars render.VariableSet) error {
	var unknown []string
	for name := range m.columns {
		if !vars.Has(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)

	issues := make([]ValidationIssue, len(unknown))
	for i, name := range unknown {
		issues[i] = ValidationIssue{Field: "columns." + name, Message: "no such placeholder in the template"}
	}
	return &ValidationError{Issues: issues}
}
