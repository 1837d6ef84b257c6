package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/dbmrq/districtboard/internal/district"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	loadErr, ok := err.(*LoadError)
	if !ok {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Path != "nonexistent/config.yaml" {
		t.Errorf("expected path 'nonexistent/config.yaml', got %q", loadErr.Path)
	}
	if loadErr.Message != "config file not found" {
		t.Errorf("expected message 'config file not found', got %q", loadErr.Message)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("expected errors.Is(err, os.ErrNotExist)")
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
data:
  path: data/districts.csv
  encoding: cp949
  sheet: Sheet1
  watch: false
  debounce: 1s
  reload_schedule: "@every 10m"

filters:
  regions: [수도권, 영남]
  winners:
    - 진보
  sort_metric: voters_total
  trend_picks: 5

server:
  addr: "127.0.0.1:9000"
  max_upload_mb: 8
  read_timeout: 10s

logging:
  level: debug
  json: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	want := &Config{
		Data: DataConfig{
			Path:           "data/districts.csv",
			Encoding:       EncodingCP949,
			Sheet:          "Sheet1",
			Watch:          false,
			Debounce:       time.Second,
			ReloadSchedule: "@every 10m",
		},
		Filters: FiltersConfig{
			Regions:    []string{"수도권", "영남"},
			Winners:    []string{district.Progressive},
			SortMetric: district.ColVotersTotal,
			TrendPicks: 5,
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:9000",
			MaxUploadMB:     8,
			ReadTimeout:     10 * time.Second,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level: "debug",
			JSON:  true,
			Dir:   DefaultLogDir,
		},
	}
	if diff := cmp.Diff(want, cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("loaded config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
data:
  path: districts.csv
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Data.Path != "districts.csv" {
		t.Errorf("expected data.path 'districts.csv', got %q", cfg.Data.Path)
	}
	if cfg.Data.Encoding != DefaultEncoding {
		t.Errorf("expected default encoding, got %q", cfg.Data.Encoding)
	}
	if !cfg.Data.Watch {
		t.Error("expected watch to keep its default of true")
	}
	if cfg.Filters.SortMetric != district.DefaultSortMetric {
		t.Errorf("expected default sort metric, got %q", cfg.Filters.SortMetric)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
data:
  encoding: utf-8
server:
  addr: ":8501"
`)

	t.Setenv("DISTRICTBOARD_DATA_PATH", "/tmp/districts.csv")
	t.Setenv("DISTRICTBOARD_DATA_ENCODING", "euc-kr")
	t.Setenv("DISTRICTBOARD_DATA_WATCH", "no")
	t.Setenv("DISTRICTBOARD_DATA_DEBOUNCE", "2s")
	t.Setenv("DISTRICTBOARD_FILTERS_REGIONS", "수도권, 호남")
	t.Setenv("DISTRICTBOARD_FILTERS_SORT_METRIC", "volatility")
	t.Setenv("DISTRICTBOARD_FILTERS_TREND_PICKS", "2")
	t.Setenv("DISTRICTBOARD_SERVER_ADDR", ":9999")
	t.Setenv("DISTRICTBOARD_SERVER_MAX_UPLOAD_MB", "32")
	t.Setenv("DISTRICTBOARD_LOGGING_LEVEL", "warn")
	t.Setenv("DISTRICTBOARD_LOGGING_JSON", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Data.Path != "/tmp/districts.csv" {
		t.Errorf("expected env data.path, got %q", cfg.Data.Path)
	}
	if cfg.Data.Encoding != EncodingEUCKR {
		t.Errorf("expected env encoding, got %q", cfg.Data.Encoding)
	}
	if cfg.Data.Watch {
		t.Error("expected env to disable watch")
	}
	if cfg.Data.Debounce != 2*time.Second {
		t.Errorf("expected env debounce, got %v", cfg.Data.Debounce)
	}
	if diff := cmp.Diff([]string{"수도권", "호남"}, cfg.Filters.Regions); diff != "" {
		t.Errorf("regions mismatch (-want +got):\n%s", diff)
	}
	if cfg.Filters.SortMetric != district.ColVolatility {
		t.Errorf("expected env sort metric, got %q", cfg.Filters.SortMetric)
	}
	if cfg.Filters.TrendPicks != 2 {
		t.Errorf("expected env trend picks, got %d", cfg.Filters.TrendPicks)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("expected env addr, got %q", cfg.Server.Addr)
	}
	if cfg.Server.MaxUploadMB != 32 {
		t.Errorf("expected env upload limit, got %d", cfg.Server.MaxUploadMB)
	}
	if cfg.Logging.Level != "warn" || !cfg.Logging.JSON {
		t.Errorf("expected env logging settings, got %+v", cfg.Logging)
	}
}

func TestLoad_EnvOverrides_InvalidNumbersIgnored(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")

	t.Setenv("DISTRICTBOARD_FILTERS_TREND_PICKS", "many")
	t.Setenv("DISTRICTBOARD_DATA_DEBOUNCE", "soon")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Filters.TrendPicks != DefaultTrendPicks {
		t.Errorf("expected default trend picks to survive invalid env, got %d", cfg.Filters.TrendPicks)
	}
	if cfg.Data.Debounce != DefaultDebounce {
		t.Errorf("expected default debounce, got %v", cfg.Data.Debounce)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeConfig(t, `
filters:
  sort_metric: turnout
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	loadErr, ok := err.(*LoadError)
	if !ok {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Message != "configuration validation failed" {
		t.Errorf("unexpected message: %q", loadErr.Message)
	}
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Error("expected ValidationErrors in chain")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "data:\n  path: [unclosed\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	loadErr, ok := err.(*LoadError)
	if !ok {
		t.Fatalf("expected *LoadError, got %T", err)
	}
	if loadErr.Message != "failed to read config file" {
		t.Errorf("unexpected message: %q", loadErr.Message)
	}
}

func TestLoad_EmptyConfigFile(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load empty config: %v", err)
	}
	if diff := cmp.Diff(NewConfig(), cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("empty config should equal defaults (-want +got):\n%s", diff)
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".districtboard"), 0755); err != nil {
		t.Fatal(err)
	}
	content := "server:\n  addr: \":7000\"\n"
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigPath), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(dir)
	if err != nil {
		t.Fatalf("failed to load from dir: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("expected addr ':7000', got %q", cfg.Server.Addr)
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	t.Setenv("DISTRICTBOARD_SERVER_ADDR", ":1234")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.Server.Addr != ":1234" {
		t.Errorf("expected env override on defaults, got %q", cfg.Server.Addr)
	}
	if cfg.Filters.SortMetric != district.DefaultSortMetric {
		t.Errorf("expected default sort metric, got %q", cfg.Filters.SortMetric)
	}
}

func TestLoadOrDefault_InvalidFile(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")

	if _, err := LoadOrDefault(path); err == nil {
		t.Fatal("expected validation error to propagate")
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{" yes ", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseBool(tt.input); got != tt.want {
				t.Errorf("parseBool(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a, ,b,c ,")
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("splitList mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadError_Error(t *testing.T) {
	withErr := &LoadError{Path: "p", Message: "m", Err: errors.New("e")}
	if withErr.Error() != "p: m: e" {
		t.Errorf("unexpected error string: %q", withErr.Error())
	}
	withoutErr := &LoadError{Path: "p", Message: "m"}
	if withoutErr.Error() != "p: m" {
		t.Errorf("unexpected error string: %q", withoutErr.Error())
	}
}

func TestLoadError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &LoadError{Err: inner}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to expose inner error")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := NewConfig()
	cfg.Data.Path = "districts.xlsx"
	cfg.Data.ReloadSchedule = "@hourly"
	cfg.Filters.Regions = []string{"호남"}
	cfg.Server.ReadTimeout = 45 * time.Second

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load after Save failed: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l == nil || l.v == nil {
		t.Fatal("NewLoader should initialize viper")
	}
}
