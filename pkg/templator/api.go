package templator

import (
	"io"
)

// Engine generates documents from a template and a data source.
// Use New() to create a new engine instance.
type Engine struct {
	config   *Config
	resolver Resolver
	logger   *Logger
}

// Option represents a configuration option for the engine.
type Option func(*Engine)

// New creates a new engine. Without options it uses the default configuration,
// the global logger and no resolver, so placeholders missing from the data abort generation.
func New(opts ...Option) *Engine {
	engine := &Engine{
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// WithConfig returns an option that sets the engine configuration.
func WithConfig(config *Config) Option {
	return func(e *Engine) {
		e.config = config
	}
}

// WithResolver returns an option that sets how unmapped placeholders get their column.
func WithResolver(resolver Resolver) Option {
	return func(e *Engine) {
		e.resolver = resolver
	}
}

// WithLogger returns an option that sets the engine's logger.
func WithLogger(logger *Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Resolver returns the engine's resolver, which may be nil.
func (e *Engine) Resolver() Resolver {
	return e.resolver
}

func (e *Engine) log() *Logger {
	if e.logger != nil {
		return e.logger
	}
	return GetLogger()
}

// PrepareFile loads a template from a file path.
func (e *Engine) PrepareFile(path string) (*Template, error) {
	return PrepareFile(path, e.config)
}

// Prepare loads a template from an io.Reader.
func (e *Engine) Prepare(r io.Reader) (*Template, error) {
	return Prepare(r, e.config)
}

// LoadRecords reads a data source with the engine's delimiter, encoding and sheet settings.
func (e *Engine) LoadRecords(path string) (*Table, error) {
	return LoadRecords(path, DataOptionsFromConfig(e.config))
}
