// Package config provides configuration loading and management for districtboard.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is the default path to the config file relative to the working directory.
	DefaultConfigPath = ".districtboard/config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "DISTRICTBOARD"
)

// Loader handles loading configuration from files and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	// Set up viper
	v.SetConfigType("yaml")

	// Set up environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// LoadConfig loads configuration from the specified path, applies defaults,
// merges environment variables, and validates the result.
// If path is empty, it uses DefaultConfigPath relative to the working directory.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	// Check if the config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &LoadError{
			Path:    path,
			Message: "config file not found",
			Err:     err,
		}
	}

	// Set the config file path
	l.v.SetConfigFile(path)

	// Read the config file
	if err := l.v.ReadInConfig(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to read config file",
			Err:     err,
		}
	}

	// Start with defaults
	cfg := NewConfig()

	// Unmarshal into the config struct
	if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to parse config file",
			Err:     err,
		}
	}

	return l.finish(path, cfg)
}

// LoadOrDefault behaves like LoadConfig but falls back to the defaults
// (plus environment overrides) when the file does not exist.
func (l *Loader) LoadOrDefault(path string) (*Config, error) {
	cfg, err := l.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if path == "" {
		path = DefaultConfigPath
	}
	return l.finish(path, NewConfig())
}

func (l *Loader) finish(path string, cfg *Config) (*Config, error) {
	// Apply environment variable overrides
	l.applyEnvOverrides(cfg)

	// Apply defaults for any unset values
	cfg.ApplyDefaults()

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .districtboard/config.yaml in the specified directory.
func (l *Loader) LoadConfigFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultConfigPath)
	return l.LoadConfig(path)
}

// applyEnvOverrides applies environment variable overrides to the config.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	// Data settings
	if v := os.Getenv(EnvPrefix + "_DATA_PATH"); v != "" {
		cfg.Data.Path = v
	}
	if v := os.Getenv(EnvPrefix + "_DATA_ENCODING"); v != "" {
		cfg.Data.Encoding = Encoding(v)
	}
	if v := os.Getenv(EnvPrefix + "_DATA_SHEET"); v != "" {
		cfg.Data.Sheet = v
	}
	if v := os.Getenv(EnvPrefix + "_DATA_WATCH"); v != "" {
		cfg.Data.Watch = parseBool(v)
	}
	if v := os.Getenv(EnvPrefix + "_DATA_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Data.Debounce = d
		}
	}
	if v := os.Getenv(EnvPrefix + "_DATA_RELOAD_SCHEDULE"); v != "" {
		cfg.Data.ReloadSchedule = v
	}

	// Filter settings (lists are comma separated)
	if v := os.Getenv(EnvPrefix + "_FILTERS_REGIONS"); v != "" {
		cfg.Filters.Regions = splitList(v)
	}
	if v := os.Getenv(EnvPrefix + "_FILTERS_WINNERS"); v != "" {
		cfg.Filters.Winners = splitList(v)
	}
	if v := os.Getenv(EnvPrefix + "_FILTERS_SORT_METRIC"); v != "" {
		cfg.Filters.SortMetric = v
	}
	if v := os.Getenv(EnvPrefix + "_FILTERS_TREND_PICKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Filters.TrendPicks = n
		}
	}

	// Server settings
	if v := os.Getenv(EnvPrefix + "_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv(EnvPrefix + "_SERVER_MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MaxUploadMB = n
		}
	}
	if v := os.Getenv(EnvPrefix + "_SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}

	// Logging settings
	if v := os.Getenv(EnvPrefix + "_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvPrefix + "_LOGGING_JSON"); v != "" {
		cfg.Logging.JSON = parseBool(v)
	}
	if v := os.Getenv(EnvPrefix + "_LOGGING_DIR"); v != "" {
		cfg.Logging.Dir = v
	}
}

// parseBool parses a string as a boolean value.
// Returns true for "true", "1", "yes" (case-insensitive).
// Returns false for anything else.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// viperDecodeHook provides custom decoding for viper unmarshaling.
// It composes the standard mapstructure hooks with our custom ones.
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		stringToCustomTypeHookFunc(),
	)
}

// stringToCustomTypeHookFunc creates a decode hook for our custom types.
func stringToCustomTypeHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		if to == reflect.TypeOf(Encoding("")) {
			return Encoding(strings.ToLower(data.(string))), nil
		}

		return data, nil
	}
}

// Save writes cfg as YAML to path, creating parent directories.
// If path is empty, it uses DefaultConfigPath.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &LoadError{Path: path, Message: "failed to create config directory", Err: err}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return &LoadError{Path: path, Message: "failed to encode config", Err: err}
	}

	header := []byte("# districtboard configuration\n# Environment variables prefixed with " + EnvPrefix + "_ override these values.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return &LoadError{Path: path, Message: "failed to write config file", Err: err}
	}
	return nil
}

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load is a convenience function that creates a new Loader and loads configuration.
// If path is empty, it uses DefaultConfigPath.
func Load(path string) (*Config, error) {
	return NewLoader().LoadConfig(path)
}

// LoadOrDefault is a convenience function for Loader.LoadOrDefault.
func LoadOrDefault(path string) (*Config, error) {
	return NewLoader().LoadOrDefault(path)
}

// LoadFromDir is a convenience function that loads configuration from a directory.
func LoadFromDir(dir string) (*Config, error) {
	return NewLoader().LoadConfigFromDir(dir)
}
