package configloader

import (
	"maps"

	"github.com/yaklabco/cmdassist/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
//   - Scalar values: override overwrites base if override is non-zero
//   - Rules: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Pack != "" {
		result.Pack = override.Pack
	}
	if override.MaxLevel != "" {
		result.MaxLevel = override.MaxLevel
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}

	// false is the zero value, so a later layer can only switch these on.
	if override.Fix {
		result.Fix = true
	}
	if override.DryRun {
		result.DryRun = true
	}

	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.EnableRules != nil {
		result.EnableRules = override.EnableRules
	}
	if override.DisableRules != nil {
		result.DisableRules = override.DisableRules
	}

	return &result
}

func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)
	for key, val := range override {
		existing := result[key]
		if val.Enabled != nil {
			existing.Enabled = val.Enabled
		}
		result[key] = existing
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
