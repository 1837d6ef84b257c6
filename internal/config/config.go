// Package config provides configuration data structures for districtboard.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/robfig/cron"

	"github.com/dbmrq/districtboard/internal/district"
)

// Config represents the complete districtboard configuration loaded from .districtboard/config.yaml.
type Config struct {
	Data    DataConfig    `yaml:"data"    json:"data"    mapstructure:"data"`
	Filters FiltersConfig `yaml:"filters" json:"filters" mapstructure:"filters"`
	Server  ServerConfig  `yaml:"server"  json:"server"  mapstructure:"server"`
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`
}

// Encoding names a supported input character set.
type Encoding string

const (
	// EncodingUTF8 reads the file as UTF-8 (a leading BOM is dropped).
	EncodingUTF8 Encoding = "utf-8"
	// EncodingEUCKR reads EUC-KR exports.
	EncodingEUCKR Encoding = "euc-kr"
	// EncodingCP949 reads Windows Korean (CP949) exports.
	EncodingCP949 Encoding = "cp949"
)

// Encodings lists every accepted encoding name.
var Encodings = []Encoding{EncodingUTF8, EncodingEUCKR, EncodingCP949}

// DataConfig configures where the district table comes from.
type DataConfig struct {
	// Path is a CSV or XLSX file. Empty means the bundled sample.
	Path string `yaml:"path" json:"path" mapstructure:"path"`
	// Encoding is the character set of CSV input (default: utf-8).
	Encoding Encoding `yaml:"encoding" json:"encoding" mapstructure:"encoding"`
	// Sheet selects the XLSX sheet. Empty means the first sheet.
	Sheet string `yaml:"sheet" json:"sheet" mapstructure:"sheet"`
	// Watch reloads the dataset when the file changes on disk (default: true).
	Watch bool `yaml:"watch" json:"watch" mapstructure:"watch"`
	// Debounce is how long file events are coalesced before a reload (default: 250ms).
	Debounce time.Duration `yaml:"debounce" json:"debounce" mapstructure:"debounce"`
	// ReloadSchedule is an optional cron spec for periodic reloads, e.g. "@every 5m".
	ReloadSchedule string `yaml:"reload_schedule" json:"reload_schedule" mapstructure:"reload_schedule"`
}

// FiltersConfig holds the initial control selections.
type FiltersConfig struct {
	Regions    []string `yaml:"regions"     json:"regions"     mapstructure:"regions"`
	Winners    []string `yaml:"winners"     json:"winners"     mapstructure:"winners"`
	SortMetric string   `yaml:"sort_metric" json:"sort_metric" mapstructure:"sort_metric"`
	// TrendPicks is how many districts the trend chart selects by default (default: 3).
	TrendPicks int `yaml:"trend_picks" json:"trend_picks" mapstructure:"trend_picks"`
}

// ServerConfig configures the HTTP dashboard.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             json:"addr"             mapstructure:"addr"`
	MaxUploadMB     int           `yaml:"max_upload_mb"    json:"max_upload_mb"    mapstructure:"max_upload_mb"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     json:"read_timeout"     mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// LoggingConfig configures the file logger.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" mapstructure:"level"`
	JSON  bool   `yaml:"json"  json:"json"  mapstructure:"json"`
	// Dir is where log files are written (default: .districtboard/logs).
	Dir string `yaml:"dir" json:"dir" mapstructure:"dir"`
}

// Default values.
const (
	DefaultEncoding        = EncodingUTF8
	DefaultDebounce        = 250 * time.Millisecond
	DefaultTrendPicks      = 3
	DefaultAddr            = ":8501"
	DefaultMaxUploadMB     = 16
	DefaultReadTimeout     = 30 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	DefaultLogLevel        = "info"
	DefaultLogDir          = ".districtboard/logs"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// NewConfig returns a new Config with default values applied.
func NewConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path:     "",
			Encoding: DefaultEncoding,
			Watch:    true,
			Debounce: DefaultDebounce,
		},
		Filters: FiltersConfig{
			Regions:    []string{},
			Winners:    []string{},
			SortMetric: district.DefaultSortMetric,
			TrendPicks: DefaultTrendPicks,
		},
		Server: ServerConfig{
			Addr:            DefaultAddr,
			MaxUploadMB:     DefaultMaxUploadMB,
			ReadTimeout:     DefaultReadTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
			Dir:   DefaultLogDir,
		},
	}
}

// ApplyDefaults applies default values to any unset fields.
// This is used after loading config from file to fill in missing values.
func (c *Config) ApplyDefaults() {
	defaults := NewConfig()

	if c.Data.Encoding == "" {
		c.Data.Encoding = defaults.Data.Encoding
	}
	c.Data.Encoding = Encoding(strings.ToLower(string(c.Data.Encoding)))
	if c.Data.Debounce == 0 {
		c.Data.Debounce = defaults.Data.Debounce
	}

	if c.Filters.SortMetric == "" {
		c.Filters.SortMetric = defaults.Filters.SortMetric
	}
	if c.Filters.TrendPicks == 0 {
		c.Filters.TrendPicks = defaults.Filters.TrendPicks
	}
	if c.Filters.Regions == nil {
		c.Filters.Regions = []string{}
	}
	if c.Filters.Winners == nil {
		c.Filters.Winners = []string{}
	}

	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = defaults.Server.MaxUploadMB
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}

	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = defaults.Logging.Dir
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := "multiple validation errors:"
	for _, err := range e {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidationErrors

	// Validate data config
	if c.Data.Encoding != "" && !slices.Contains(Encodings, c.Data.Encoding) {
		errs = append(errs, &ValidationError{
			Field:   "data.encoding",
			Message: "must be 'utf-8', 'euc-kr', or 'cp949'",
		})
	}
	if c.Data.Debounce < 0 {
		errs = append(errs, &ValidationError{Field: "data.debounce", Message: "must be non-negative"})
	}
	if c.Data.ReloadSchedule != "" {
		if _, err := cron.Parse(c.Data.ReloadSchedule); err != nil {
			errs = append(errs, &ValidationError{
				Field:   "data.reload_schedule",
				Message: fmt.Sprintf("invalid cron spec: %v", err),
			})
		}
	}

	// Validate filters
	if c.Filters.SortMetric != "" && !district.IsSortMetric(c.Filters.SortMetric) {
		errs = append(errs, &ValidationError{
			Field:   "filters.sort_metric",
			Message: "must be one of " + strings.Join(district.SortMetrics, ", "),
		})
	}
	for i, w := range c.Filters.Winners {
		if !slices.Contains(district.WinnerCategories, w) {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("filters.winners[%d]", i),
				Message: "must be one of " + strings.Join(district.WinnerCategories, ", "),
			})
		}
	}
	if c.Filters.TrendPicks < 0 {
		errs = append(errs, &ValidationError{Field: "filters.trend_picks", Message: "must be non-negative"})
	}

	// Validate server
	if c.Server.MaxUploadMB < 0 {
		errs = append(errs, &ValidationError{Field: "server.max_upload_mb", Message: "must be non-negative"})
	}
	if c.Server.ReadTimeout < 0 {
		errs = append(errs, &ValidationError{Field: "server.read_timeout", Message: "must be non-negative"})
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, &ValidationError{Field: "server.shutdown_timeout", Message: "must be non-negative"})
	}

	// Validate logging
	if c.Logging.Level != "" && !slices.Contains(logLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, &ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MaxUploadBytes returns the upload limit in bytes.
func (s ServerConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}
