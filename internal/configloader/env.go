package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/cmdassist/pkg/config"
)

// envVarPrefix is the prefix for all cmdassist environment variables.
const envVarPrefix = "CMDASSIST_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeSlice
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"PACK":      {field: "pack", typ: envTypeString, description: "Command pack file"},
	"MAX_LEVEL": {field: "max_level", typ: envTypeString, description: "Least structural diagnostic level reported"},
	"FORMAT":    {field: "format", typ: envTypeString, description: "Output format: text, json, diff, or summary"},
	"COLOR":     {field: "color", typ: envTypeString, description: "Terminal colors: auto, always, or never"},
	"LOG_LEVEL": {field: "log_level", typ: envTypeString, description: "Log level: debug, info, warn, or error"},
	"FIX":       {field: "fix", typ: envTypeBool, description: "Apply suggested corrections: true or false"},
	"ENABLE":    {field: "enable_rules", typ: envTypeSlice, description: "Comma-separated rule IDs to enable"},
	"DISABLE":   {field: "disable_rules", typ: envTypeSlice, description: "Comma-separated rule IDs to disable"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with CMDASSIST_ (e.g., CMDASSIST_PACK).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a trimmed slice.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "pack":
		cfg.Pack = value
	case "max_level":
		cfg.MaxLevel = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = config.ColorMode(value)
	case "log_level":
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "fix":
		cfg.Fix = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "enable_rules":
		cfg.EnableRules = value
	case "disable_rules":
		cfg.DisableRules = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns the supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	sort.Slice(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})
	return vars
}
