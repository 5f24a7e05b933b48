package config

import (
	"os"

	"github.com/ffbun/cli/internal/output"
)

// Source indicates where a configuration value came from.
type Source string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag Source = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv Source = "env"
	// SourceDefault indicates value is the built-in default.
	SourceDefault Source = "default"
)

// ResolvedValue is one configuration value with its provenance.
type ResolvedValue struct {
	// Key is the configuration key, e.g. "config" or "projectDir".
	Key string
	// Value is the winning value.
	Value string
	// Source indicates where the value came from.
	Source Source
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[Source]string
}

// resolve applies flag > env > default precedence. File-backed keys are
// resolved by Loader, where the environment also beats the config file.
func resolve(key, flagValue, envVar, defaultValue string) ResolvedValue {
	candidates := []struct {
		source Source
		value  string
	}{
		{SourceFlag, flagValue},
		{SourceEnv, os.Getenv(envVar)},
		{SourceDefault, defaultValue},
	}

	result := ResolvedValue{Key: key, Shadowed: make(map[Source]string)}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Value = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}
	return result
}

// ResolveOptions contains the raw inputs for configuration resolution.
type ResolveOptions struct {
	// ConfigFlag is the --config flag value.
	ConfigFlag string
	// ProjectDirFlag is the --project-dir flag value.
	ProjectDirFlag string
}

// Resolved contains every resolved top-level value.
type Resolved struct {
	ConfigPath ResolvedValue
	ProjectDir ResolvedValue
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) FFBUN_CONFIG env, (3) ~/.ffbun/config.yaml.
func ResolveConfigPath(flagValue string) (ResolvedValue, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return ResolvedValue{}, err
	}
	return resolve("config", flagValue, "FFBUN_CONFIG", paths.ConfigFile), nil
}

// ResolveProjectDir resolves the project root using precedence:
// (1) --project-dir flag, (2) FFBUN_PROJECT_DIR env, (3) current directory.
func ResolveProjectDir(flagValue string) ResolvedValue {
	return resolve("projectDir", flagValue, "FFBUN_PROJECT_DIR", ".")
}

// ResolveAll resolves every top-level value.
func ResolveAll(opts ResolveOptions) (*Resolved, error) {
	configPath, err := ResolveConfigPath(opts.ConfigFlag)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		ConfigPath: configPath,
		ProjectDir: ResolveProjectDir(opts.ProjectDirFlag),
	}, nil
}

// Values returns the resolved values in a stable order.
func (r *Resolved) Values() []ResolvedValue {
	return []ResolvedValue{r.ConfigPath, r.ProjectDir}
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
