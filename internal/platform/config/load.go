package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jsamuelsen11/emuctl/internal/domain"
)

const envPrefix = "EMU_"

// DefaultFileNames are the descriptor files searched for, in order, when no
// explicit path is given.
var DefaultFileNames = []string{"emulators.yaml", "emulators.yml", "emulators.toml"}

var errNoDescriptor = errors.New("no descriptor file found")

// Option configures the Load function.
type Option func(*loadOptions)

type loadOptions struct {
	searchDir string
	overrides map[string]any
}

// WithSearchDir sets the directory searched for a default descriptor file
// when Load is called with an empty path. Defaults to the working directory.
func WithSearchDir(dir string) Option {
	return func(o *loadOptions) {
		o.searchDir = dir
	}
}

// WithOverrides sets values applied after every other layer, keyed by
// koanf path (e.g. "log.level"). Used for command-line flags.
func WithOverrides(values map[string]any) Option {
	return func(o *loadOptions) {
		o.overrides = values
	}
}

// Load reads configuration using a 4-layer hierarchy (highest precedence last):
//
//  1. Built-in defaults
//  2. Descriptor file (path, or the first of DefaultFileNames in the search dir)
//  3. Environment variables (EMU_ prefix)
//  4. Overrides (command-line flags)
//
// Environment variable mapping uses key matching against loaded config keys
// to resolve ambiguity between nesting separators and field-internal underscores:
//
//	EMU_LOG_LEVEL                  -> log.level
//	EMU_PROJECT_DATA_VOLUME        -> project.data_volume
//	EMU_SERVICES_FIRESTORE_ENABLED -> services.firestore.enabled
//
// Every failure is returned as a *domain.ConfigError.
func Load(path string, opts ...Option) (*Config, error) {
	o := &loadOptions{searchDir: "."}
	for _, opt := range opts {
		opt(o)
	}

	source, err := resolveSource(path, o.searchDir)
	if err != nil {
		return nil, &domain.ConfigError{Source: path, Err: err}
	}

	k := koanf.New(".")

	// Layer 1: Defaults.
	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return nil, &domain.ConfigError{Err: fmt.Errorf("setting default %s: %w", key, err)}
		}
	}

	// Layer 2: Descriptor file.
	parser, err := parserFor(source)
	if err != nil {
		return nil, &domain.ConfigError{Source: source, Err: err}
	}
	if err := k.Load(file.Provider(source), parser); err != nil {
		return nil, &domain.ConfigError{Source: source, Err: fmt.Errorf("loading descriptor file: %w", err)}
	}

	// Layer 3: Environment variables with EMU_ prefix.
	// Build a reverse lookup from known koanf keys so that env vars like
	// EMU_PROJECT_DATA_VOLUME correctly resolve to "project.data_volume"
	// instead of being ambiguously split as "project.data.volume".
	envLookup := buildEnvLookup(k.Keys())

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, envPrefix)
			key = strings.ToLower(key)

			if koanfKey, ok := envLookup[key]; ok {
				return koanfKey, value
			}

			// Fallback: simple underscore-to-dot replacement.
			return strings.ReplaceAll(key, "_", "."), value
		},
	}), nil); err != nil {
		return nil, &domain.ConfigError{Source: source, Err: fmt.Errorf("loading env vars: %w", err)}
	}

	// Layer 4: Overrides.
	for key, val := range o.overrides {
		if err := k.Set(key, val); err != nil {
			return nil, &domain.ConfigError{Source: source, Err: fmt.Errorf("applying override %s: %w", key, err)}
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, &domain.ConfigError{Source: source, Err: fmt.Errorf("unmarshalling config: %w", err)}
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, &domain.ConfigError{Source: source, Err: err}
	}

	return &cfg, nil
}

// resolveSource returns the descriptor file to load. An explicit path must
// exist; otherwise the first default name found in dir is used.
func resolveSource(path, dir string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("descriptor file: %w", err)
		}
		return path, nil
	}

	for _, name := range DefaultFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %s)", errNoDescriptor, dir, strings.Join(DefaultFileNames, ", "))
}

// parserFor picks the koanf parser by file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".toml":
		return TOMLParser(), nil
	default:
		return nil, fmt.Errorf("unsupported descriptor format %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// buildEnvLookup creates a reverse mapping from env-style keys to koanf dotted keys.
// For each koanf key like "project.data_volume", the env form "project_data_volume"
// is computed by replacing dots with underscores. This allows unambiguous matching
// when an env var arrives (e.g. EMU_PROJECT_DATA_VOLUME -> "project.data_volume").
func buildEnvLookup(keys []string) map[string]string {
	lookup := make(map[string]string, len(keys))
	for _, key := range keys {
		envKey := strings.ReplaceAll(key, ".", "_")
		lookup[envKey] = key
	}
	return lookup
}
