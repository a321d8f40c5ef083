// Package config defines the configuration types for cmdassist.
// These are plain data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"fmt"

	"github.com/yaklabco/cmdassist/pkg/diag"
	"github.com/yaklabco/cmdassist/pkg/linter"
)

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// Pack is the path of a command pack; empty means the builtin pack.
	Pack string `yaml:"pack,omitempty"`

	// MaxLevel is the least structural diagnostic level reported.
	MaxLevel string `yaml:"max_level,omitempty"`

	// Format selects the report format of the check command.
	Format OutputFormat `yaml:"format,omitempty"`

	// Color controls terminal styling.
	Color ColorMode `yaml:"color,omitempty"`

	// LogLevel is the level of the default logger.
	LogLevel string `yaml:"log_level,omitempty"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `yaml:"rules,omitempty"`

	// CLI-level options (not persisted to config files).

	// Fix applies the corrections suggested by diagnostics.
	Fix bool `yaml:"-"`

	// DryRun prints the corrections as a diff instead of writing them.
	DryRun bool `yaml:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `yaml:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `yaml:"-"`
}

// NewConfig returns a Config with the defaults.
func NewConfig() *Config {
	return &Config{
		MaxLevel: diag.Warning.String(),
		Format:   FormatText,
		Color:    ColorAuto,
		LogLevel: "info",
		Rules:    make(map[string]RuleConfig),
	}
}

// Level returns MaxLevel parsed, defaulting to Warning when empty.
func (c *Config) Level() (diag.Level, error) {
	if c.MaxLevel == "" {
		return diag.Warning, nil
	}
	level, err := diag.ParseLevel(c.MaxLevel)
	if err != nil {
		return diag.Warning, fmt.Errorf("max_level: %w", err)
	}
	return level, nil
}

// LinterOptions converts the configuration into options for linter.Collect.
// Rules disabled in the file can be re-enabled from the command line and
// the reverse.
func (c *Config) LinterOptions() (linter.Options, error) {
	level, err := c.Level()
	if err != nil {
		return linter.Options{}, err
	}
	opts := linter.Options{MaxLevel: level}
	for _, id := range sortedRuleIDs(c.Rules) {
		rc := c.Rules[id]
		switch {
		case rc.Enabled == nil:
		case *rc.Enabled:
			opts.Enable = append(opts.Enable, id)
		default:
			opts.Disable = append(opts.Disable, id)
		}
	}
	opts.Enable = append(opts.Enable, c.EnableRules...)
	opts.Disable = append(opts.Disable, c.DisableRules...)
	return opts, nil
}
