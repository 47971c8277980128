// Package config provides configuration management for the socql CLI and
// server. Settings come from a socql.yaml file, SOCQL_-prefixed environment
// variables, and command-line flags, in ascending precedence.
package config

import (
	"fmt"

	"github.com/soclabs/socql/pkg/validate"
)

// Config holds all socql configuration options.
type Config struct {
	// SchemaPath points to a YAML schema document merged over the built-in
	// schema at startup. Empty means built-ins only.
	SchemaPath string `koanf:"schema_path"`

	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	Server     ServerConfig     `koanf:"server"`
	Validation ValidationConfig `koanf:"validation"`
}

// ServerConfig holds the HTTP API server settings.
type ServerConfig struct {
	Listen      string `koanf:"listen"`
	WatchSchema bool   `koanf:"watch_schema"`
}

// ValidationConfig tunes the validator.
type ValidationConfig struct {
	Disabled              []string          `koanf:"disabled"`
	Severity              map[string]string `koanf:"severity"`
	MaxRegexPatternLength int               `koanf:"max_regex_pattern_length"`
}

// Default configuration values.
const (
	DefaultListen = ":8123"
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// ValidatorConfig converts the validation section into a validate.Config.
func (c *Config) ValidatorConfig() (validate.Config, error) {
	cfg := validate.DefaultConfig()
	cfg.Disabled = append(cfg.Disabled, c.Validation.Disabled...)
	if c.Validation.MaxRegexPatternLength > 0 {
		cfg.MaxRegexPatternLength = c.Validation.MaxRegexPatternLength
	}
	if len(c.Validation.Severity) > 0 {
		cfg.Severity = make(map[string]validate.Severity, len(c.Validation.Severity))
		for code, name := range c.Validation.Severity {
			sev, err := validate.ParseSeverity(name)
			if err != nil {
				return validate.Config{}, fmt.Errorf("validation.severity[%s]: %w", code, err)
			}
			cfg.Severity[code] = sev
		}
	}
	return cfg, nil
}
