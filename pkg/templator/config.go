package templator

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config contains all configuration options for document generation
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// Pattern is the output file name pattern, e.g. "invoice_{customer}".
	// {#} expands to the 1-based record number.
	Pattern string
	// OutputDir is the directory output documents are written to
	OutputDir string
	// Delimiter is the CSV field separator
	Delimiter string
	// Encoding is the character encoding of CSV input (any WHATWG label, e.g. "windows-1252")
	Encoding string
	// Sheet selects the worksheet for XLSX input; empty means the first sheet
	Sheet string
	// MergeRuns coalesces neighbouring runs with identical formatting after substitution
	MergeRuns bool
	// StrictColumns requires the column count to equal the placeholder count
	StrictColumns bool
	// HeadersFooters also substitutes placeholders in headers, footers, footnotes and endnotes
	HeadersFooters bool
	// Workers is the number of documents rendered in parallel
	Workers int
	// SampleSize is the number of records shown when asking how to map a column
	SampleSize int
	// Columns maps placeholder names to a column name or a 0-based column position
	Columns map[string]string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		Pattern:        "document_{#}",
		OutputDir:      "output",
		Delimiter:      ",",
		Encoding:       "utf-8",
		MergeRuns:      true,
		StrictColumns:  false,
		HeadersFooters: true,
		Workers:        1,
		SampleSize:     5,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()
	config.ApplyEnvironment()
	return config
}

// ApplyEnvironment overrides fields from TEMPLATOR_* environment variables
func (c *Config) ApplyEnvironment() {
	// TEMPLATOR_LOG_LEVEL
	if val := os.Getenv("TEMPLATOR_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}

	// TEMPLATOR_PATTERN
	if val := os.Getenv("TEMPLATOR_PATTERN"); val != "" {
		c.Pattern = val
	}

	// TEMPLATOR_OUTPUT_DIR
	if val := os.Getenv("TEMPLATOR_OUTPUT_DIR"); val != "" {
		c.OutputDir = val
	}

	// TEMPLATOR_DELIMITER
	if val := os.Getenv("TEMPLATOR_DELIMITER"); val != "" {
		c.Delimiter = val
	}

	// TEMPLATOR_ENCODING
	if val := os.Getenv("TEMPLATOR_ENCODING"); val != "" {
		c.Encoding = val
	}

	// TEMPLATOR_MERGE_RUNS
	if val := os.Getenv("TEMPLATOR_MERGE_RUNS"); val != "" {
		c.MergeRuns = parseBool(val)
	}

	// TEMPLATOR_STRICT_COLUMNS
	if val := os.Getenv("TEMPLATOR_STRICT_COLUMNS"); val != "" {
		c.StrictColumns = parseBool(val)
	}

	// TEMPLATOR_WORKERS
	if val := os.Getenv("TEMPLATOR_WORKERS"); val != "" {
		if workers, err := strconv.Atoi(val); err == nil {
			c.Workers = workers
		}
	}
}

// fileConfig mirrors the TOML layout of a configuration file
type fileConfig struct {
	LogLevel  string `toml:"log_level"`
	Pattern   string `toml:"pattern"`
	OutputDir string `toml:"output_dir"`
	Data      struct {
		Delimiter string `toml:"delimiter"`
		Encoding  string `toml:"encoding"`
		Sheet     string `toml:"sheet"`
	} `toml:"data"`
	Render struct {
		MergeRuns      bool `toml:"merge_runs"`
		StrictColumns  bool `toml:"strict_columns"`
		HeadersFooters bool `toml:"headers_footers"`
		Workers        int  `toml:"workers"`
		SampleSize     int  `toml:"sample_size"`
	} `toml:"render"`
	Columns map[string]interface{} `toml:"columns"`
}

// LoadConfigFile applies the settings of a TOML configuration file on top of c.
// Only keys present in the file are changed.
func (c *Config) LoadConfigFile(path string) error {
	var fc fileConfig
	meta, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("log_level") {
		c.LogLevel = fc.LogLevel
	}
	if meta.IsDefined("pattern") {
		c.Pattern = fc.Pattern
	}
	if meta.IsDefined("output_dir") {
		c.OutputDir = fc.OutputDir
	}
	if meta.IsDefined("data", "delimiter") {
		c.Delimiter = fc.Data.Delimiter
	}
	if meta.IsDefined("data", "encoding") {
		c.Encoding = fc.Data.Encoding
	}
	if meta.IsDefined("data", "sheet") {
		c.Sheet = fc.Data.Sheet
	}
	if meta.IsDefined("render", "merge_runs") {
		c.MergeRuns = fc.Render.MergeRuns
	}
	if meta.IsDefined("render", "strict_columns") {
		c.StrictColumns = fc.Render.StrictColumns
	}
	if meta.IsDefined("render", "headers_footers") {
		c.HeadersFooters = fc.Render.HeadersFooters
	}
	if meta.IsDefined("render", "workers") {
		c.Workers = fc.Render.Workers
	}
	if meta.IsDefined("render", "sample_size") {
		c.SampleSize = fc.Render.SampleSize
	}

	if len(fc.Columns) > 0 {
		columns, err := normalizeColumnMapping(fc.Columns)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if c.Columns == nil {
			c.Columns = make(map[string]string, len(columns))
		}
		for k, v := range columns {
			c.Columns[k] = v
		}
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var issues []ValidationIssue

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		issues = append(issues, ValidationIssue{Field: "log_level", Message: "invalid log level: " + c.LogLevel})
	}

	if strings.TrimSpace(c.Pattern) == "" {
		issues = append(issues, ValidationIssue{Field: "pattern", Message: "file name pattern cannot be empty"})
	}

	if len([]rune(c.Delimiter)) != 1 {
		issues = append(issues, ValidationIssue{Field: "delimiter", Message: fmt.Sprintf("delimiter must be a single character, got %q", c.Delimiter)})
	}

	if c.Workers <= 0 {
		issues = append(issues, ValidationIssue{Field: "workers", Message: "workers must be positive"})
	}

	if c.SampleSize < 0 {
		issues = append(issues, ValidationIssue{Field: "sample_size", Message: "sample size cannot be negative"})
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// DelimiterRune returns the delimiter as a rune
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
