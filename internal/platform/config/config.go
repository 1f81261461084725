// Package config provides configuration loading and validation for emuctl.
// Configuration is loaded with a layered system: built-in defaults ->
// descriptor file (emulators.yaml or emulators.toml) -> EMU_ environment
// variables -> command-line overrides.
package config

import "time"

// Config holds all configuration for the tool.
type Config struct {
	Project   ProjectConfig            `koanf:"project"`
	Build     BuildConfig              `koanf:"build"`
	Toolchain ToolchainConfig          `koanf:"toolchain"`
	Readiness ReadinessConfig          `koanf:"readiness"`
	Probe     ClientConfig             `koanf:"probe"`
	Services  map[string]ServiceConfig `koanf:"services"`
	Server    ServerConfig             `koanf:"server"`
	Log       LogConfig                `koanf:"log"`
	Telemetry TelemetryConfig          `koanf:"telemetry"`

	// Source is the descriptor file the config was loaded from.
	Source string `koanf:"-"`
}

// ProjectConfig identifies the environment and where it lives.
type ProjectConfig struct {
	Name         string `koanf:"name"`
	ID           string `koanf:"id"`
	Dir          string `koanf:"dir"`
	DataVolume   string `koanf:"data_volume"`
	DataDir      string `koanf:"data_dir"`
	EndpointHost string `koanf:"endpoint_host"`
	ListenHost   string `koanf:"listen_host"`
}

// BuildConfig holds the container build recipe parameters.
type BuildConfig struct {
	BaseImage     string `koanf:"base_image"`
	SystemInstall string `koanf:"system_install"`
	SystemPackage string `koanf:"system_package"`
	CLIPackage    string `koanf:"cli_package"`
	WorkDir       string `koanf:"work_dir"`
}

// ToolchainConfig holds external toolchain settings and the rendered file
// names.
type ToolchainConfig struct {
	Binary         string `koanf:"binary"`
	MinVersion     string `koanf:"min_version"`
	Dockerfile     string `koanf:"dockerfile"`
	ComposeFile    string `koanf:"compose_file"`
	EmulatorConfig string `koanf:"emulator_config"`
}

// ReadinessConfig holds the readiness wait policy: a fixed overall timeout
// and an exponential backoff between probe attempts.
type ReadinessConfig struct {
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	DialTimeout     time.Duration `koanf:"dial_timeout"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// ServiceConfig is one service descriptor.
type ServiceConfig struct {
	Port    int  `koanf:"port"`
	Enabled bool `koanf:"enabled"`
}

// ServerConfig holds the health endpoint HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ClientConfig holds the HTTP probe client settings.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig caps outbound probe requests. Zero RequestsPerSecond
// disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
