package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/yaklabco/cmdassist/pkg/config"
	"github.com/yaklabco/cmdassist/pkg/linter"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.range-order").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if _, err := cfg.Level(); err != nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "max_level",
			Value:   cfg.MaxLevel,
			Message: fmt.Sprintf("invalid level %q", cfg.MaxLevel),
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, diff, summary", cfg.Format),
		})
	}

	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	if cfg.LogLevel != "" {
		if _, err := charmlog.ParseLevel(cfg.LogLevel); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "log_level",
				Value:   cfg.LogLevel,
				Message: fmt.Sprintf("invalid log level %q", cfg.LogLevel),
			})
		}
	}

	validateRules(cfg, result)

	return result
}

// validateRules warns about rule IDs no registered rule answers to.
func validateRules(cfg *config.Config, result *ValidationResult) {
	registry := linter.DefaultRegistry()

	check := func(field, id string) {
		if _, ok := registry.Get(id); !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   id,
				Message: fmt.Sprintf("unknown rule %q; it will be ignored", id),
			})
		}
	}

	for _, id := range sortedKeys(cfg.Rules) {
		check("rules."+id, id)
	}
	for _, id := range cfg.EnableRules {
		check("enable_rules", id)
	}
	for _, id := range cfg.DisableRules {
		check("disable_rules", id)
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

func sortedKeys(rules map[string]config.RuleConfig) []string {
	return slices.Sorted(maps.Keys(rules))
}
