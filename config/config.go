// Package config holds the settings shared by the condmask command.
//
// Settings come from defaults, an optional YAML file, and command-line
// flags, in increasing priority. The file layout is:
//
//	format: table
//	limit: 100
//	log_level: debug
//	render:
//	  table_name: frame
//	  word_operators: false
//	limits:
//	  max_condition_length: 65536
//	  max_tokens: 1000
//	  max_depth: 100
//	  max_column_name_length: 256
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/vegasq/condmask/condition"
	"github.com/vegasq/condmask/output"
)

// LogLevels lists the accepted log_level values
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config is the command configuration
type Config struct {
	Format   string                  `yaml:"format"`
	Limit    int                     `yaml:"limit"`
	LogLevel string                  `yaml:"log_level"`
	Render   condition.RenderOptions `yaml:"render"`
	Limits   condition.Limits        `yaml:"limits"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Format:   "jsonl",
		LogLevel: "info",
		Render:   condition.RenderOptions{TableName: condition.DefaultTableName},
		Limits:   condition.DefaultLimits(),
	}
}

// FromFile loads a YAML file over the defaults
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return FromYAML(data)
}

// FromYAML parses YAML over the defaults. Unknown keys are rejected.
func FromYAML(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration values
func (c Config) Validate() error {
	if !slices.Contains(output.Formats, c.Format) {
		return fmt.Errorf("invalid format %q (supported: %v)", c.Format, output.Formats)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", c.Limit)
	}
	if !slices.Contains(LogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q (supported: %v)", c.LogLevel, LogLevels)
	}
	return c.Limits.Validate()
}

// EvaluatorOptions returns the condition options for this configuration
func (c Config) EvaluatorOptions() condition.Options {
	opts := condition.DefaultOptions()
	opts.Limits = c.Limits
	opts.Render = c.Render
	return opts
}
