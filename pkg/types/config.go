// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// OutputFormat selects how a list of ids is emitted.
type OutputFormat string

const (
	// OutputText writes the ids as a single compact JSON array line.
	OutputText OutputFormat = "text"
	// OutputJSON writes an indented JSON array.
	OutputJSON OutputFormat = "json"
	// OutputYAML writes a YAML sequence.
	OutputYAML OutputFormat = "yaml"
	// OutputLines writes one id per line.
	OutputLines OutputFormat = "lines"
)

// Valid reports whether f names a known output format.
func (f OutputFormat) Valid() bool {
	switch f {
	case OutputText, OutputJSON, OutputYAML, OutputLines:
		return true
	}
	return false
}

// DefaultClass is the class queried when none is configured.
const DefaultClass = "card"

// HTTPConfig holds settings used when an input is a URL.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "getids/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on 429 and 503 responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// Headers are extra request headers, typically loaded from secrets.
	Headers map[string]string `json:"-" yaml:"-" mapstructure:"-"`
}

// CollectConfig holds settings for the collect command.
type CollectConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Class is the class name elements are selected by (default "card").
	Class string `json:"class" yaml:"class" mapstructure:"class"`

	// Selector is an arbitrary CSS selector. When set it replaces Class.
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty" mapstructure:"selector"`

	// Format selects the output format (default text).
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// Unique drops repeated ids, keeping the first occurrence.
	Unique bool `json:"unique" yaml:"unique" mapstructure:"unique"`

	// TrimSpace trims ids before the empty check.
	TrimSpace bool `json:"trim_space" yaml:"trim_space" mapstructure:"trim_space"`

	// Record stores each collection in the history database.
	Record bool `json:"record" yaml:"record" mapstructure:"record"`
}

// HistoryConfig holds settings for the history store.
type HistoryConfig struct {
	// Dir is the directory holding getids.db and exports (default ".getids").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default number of runs listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all configuration read from getids.yaml.
type Config struct {
	Collect CollectConfig `json:"collect" yaml:"collect" mapstructure:"collect"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}
