package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsamuelsen11/emuctl/internal/domain"
	"github.com/jsamuelsen11/emuctl/internal/platform/config"
)

func TestLoad_YAMLDescriptor(t *testing.T) {
	cfg, err := config.Load("testdata/emulators.yaml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Project.Name != "shop" {
		t.Errorf("Project.Name = %q, want \"shop\"", cfg.Project.Name)
	}
	if cfg.Project.ID != "demo-shop" {
		t.Errorf("Project.ID = %q, want \"demo-shop\"", cfg.Project.ID)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want \"debug\"", cfg.Log.Level)
	}
	if cfg.Source != "testdata/emulators.yaml" {
		t.Errorf("Source = %q", cfg.Source)
	}
}

func TestLoad_DefaultsInherited(t *testing.T) {
	cfg, err := config.Load("testdata/emulators.yaml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	// These come from defaults, not overridden by the descriptor file.
	if cfg.Build.BaseImage != "node:20-alpine" {
		t.Errorf("Build.BaseImage = %q, want \"node:20-alpine\" (default)", cfg.Build.BaseImage)
	}
	if cfg.Toolchain.Binary != "docker" {
		t.Errorf("Toolchain.Binary = %q, want \"docker\" (default)", cfg.Toolchain.Binary)
	}
	if cfg.Readiness.Timeout != 3*time.Minute {
		t.Errorf("Readiness.Timeout = %v, want 3m (default)", cfg.Readiness.Timeout)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want \"text\" (default)", cfg.Log.Format)
	}
}

func TestLoad_ServiceDescriptors(t *testing.T) {
	cfg, err := config.Load("testdata/emulators.yaml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	set := cfg.Descriptors()

	tests := []struct {
		name    string
		port    int
		enabled bool
	}{
		{"firestore", 8080, true}, // default port
		{"auth", 9199, true},      // overridden port
		{"ui", 4000, true},
		{"search", 7700, true}, // unknown service
		{"pubsub", 8085, false},
	}
	for _, tt := range tests {
		d, ok := set.Lookup(tt.name)
		if !ok {
			t.Errorf("Lookup(%q) missing", tt.name)
			continue
		}
		if d.Port != tt.port || d.Enabled != tt.enabled {
			t.Errorf("%s = {port %d enabled %v}, want {port %d enabled %v}",
				tt.name, d.Port, d.Enabled, tt.port, tt.enabled)
		}
	}

	if got := len(set.Enabled()); got != 4 {
		t.Errorf("len(Enabled()) = %d, want 4", got)
	}
}

func TestLoad_TOMLDescriptor(t *testing.T) {
	cfg, err := config.Load("testdata/emulators.toml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Project.ID != "demo-shop" {
		t.Errorf("Project.ID = %q, want \"demo-shop\"", cfg.Project.ID)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want \"json\"", cfg.Log.Format)
	}
	d, _ := cfg.Descriptors().Lookup("database")
	if d.Port != 9001 || !d.Enabled {
		t.Errorf("database = %+v, want port 9001 enabled", d)
	}
}

func TestLoad_EnvOverrideSimpleKey(t *testing.T) {
	t.Setenv("EMU_LOG_LEVEL", "warn")

	cfg, err := config.Load("testdata/emulators.yaml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want \"warn\" (env override)", cfg.Log.Level)
	}
}

func TestLoad_EnvOverrideSnakeCaseKey(t *testing.T) {
	t.Setenv("EMU_PROJECT_DATA_VOLUME", "shop-data")

	cfg, err := config.Load("testdata/emulators.yaml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Project.DataVolume != "shop-data" {
		t.Errorf("Project.DataVolume = %q, want \"shop-data\" (env override)", cfg.Project.DataVolume)
	}
}

func TestLoad_EnvOverrideServiceKey(t *testing.T) {
	t.Setenv("EMU_SERVICES_PUBSUB_ENABLED", "true")
	t.Setenv("EMU_SERVICES_PUBSUB_PORT", "8086")

	cfg, err := config.Load("testdata/emulators.yaml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	d, _ := cfg.Descriptors().Lookup("pubsub")
	if !d.Enabled || d.Port != 8086 {
		t.Errorf("pubsub = %+v, want enabled on 8086 (env override)", d)
	}
}

func TestLoad_OverridesWinOverEnv(t *testing.T) {
	t.Setenv("EMU_LOG_LEVEL", "warn")

	cfg, err := config.Load("testdata/emulators.yaml",
		config.WithOverrides(map[string]any{"log.level": "error"}))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want \"error\" (flag override)", cfg.Log.Level)
	}
}

func TestLoad_SearchDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "emulators.yml"), "services:\n  auth:\n    enabled: true\n")

	cfg, err := config.Load("", config.WithSearchDir(dir))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Source != filepath.Join(dir, "emulators.yml") {
		t.Errorf("Source = %q", cfg.Source)
	}
	if cfg.ProjectDir() != dir {
		t.Errorf("ProjectDir() = %q, want %q", cfg.ProjectDir(), dir)
	}
}

func TestLoad_MissingDescriptor(t *testing.T) {
	t.Parallel()

	_, err := config.Load("", config.WithSearchDir(t.TempDir()))
	requireConfigError(t, err)
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	t.Parallel()

	_, err := config.Load("testdata/nonexistent.yaml")
	requireConfigError(t, err)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("errors.Is(err, os.ErrNotExist) = false, got %v", err)
	}
}

func TestLoad_MalformedDescriptor(t *testing.T) {
	t.Parallel()

	_, err := config.Load("testdata/broken.yaml")
	requireConfigError(t, err)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "emulators.ini")
	writeFile(t, path, "[project]\n")

	_, err := config.Load(path)
	requireConfigError(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "emulators.yaml")
	writeFile(t, path, "log:\n  level: verbose\nreadiness:\n  timeout: 0s\n")

	_, err := config.Load(path)
	requireConfigError(t, err)
}

func TestLoad_DuplicatePortsAreNotAConfigError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "emulators.yaml")
	writeFile(t, path, "services:\n  firestore:\n    enabled: true\n  database:\n    enabled: true\n    port: 8080\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if err := cfg.Descriptors().Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Descriptors().Validate() = %v, want ErrValidation", err)
	}
}

func TestConfig_RecipeOptions(t *testing.T) {
	cfg, err := config.Load("testdata/emulators.yaml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	opts := cfg.RecipeOptions()
	if opts.ProjectName != "shop" || opts.ProjectID != "demo-shop" {
		t.Errorf("RecipeOptions() project = %q/%q", opts.ProjectName, opts.ProjectID)
	}
	if opts.ComposeFileName != "docker-compose.yml" {
		t.Errorf("ComposeFileName = %q", opts.ComposeFileName)
	}
	if opts.WorkDir != "/app" {
		t.Errorf("WorkDir = %q", opts.WorkDir)
	}
}

func TestValidate_InvalidProjectName(t *testing.T) {
	t.Parallel()

	cfg := validConfig(t)
	cfg.Project.Name = "Shop Emulators"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for invalid project name")
	}
}

func TestValidate_InvalidMinVersion(t *testing.T) {
	t.Parallel()

	cfg := validConfig(t)
	cfg.Toolchain.MinVersion = "2"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for non-semver min_version")
	}
}

func TestValidate_OtlpWithoutEndpoint(t *testing.T) {
	t.Parallel()

	cfg := validConfig(t)
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Exporter = "otlp"
	cfg.Telemetry.Endpoint = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for otlp without endpoint")
	}
}

func TestValidate_RelativeWorkDir(t *testing.T) {
	t.Parallel()

	cfg := validConfig(t)
	cfg.Build.WorkDir = "app"

	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() returned nil, want error for relative work_dir")
	}
}

// validConfig loads the YAML fixture, which is valid.
func validConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.Load("testdata/emulators.yaml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	return cfg
}

func requireConfigError(t *testing.T, err error) {
	t.Helper()

	if err == nil {
		t.Fatal("Load() returned nil error, want ConfigError")
	}
	if !errors.Is(err, domain.ErrConfig) {
		t.Errorf("errors.Is(err, ErrConfig) = false, got %v", err)
	}
	var cerr *domain.ConfigError
	if !errors.As(err, &cerr) {
		t.Errorf("errors.As(err, *ConfigError) = false, got %T", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
