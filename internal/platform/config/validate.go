package config

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/mod/semver"
)

// projectNamePattern matches the names docker compose accepts for projects.
var projectNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Validate checks all configuration values and returns aggregated errors.
// Service port uniqueness is not checked here; it belongs to rendering and
// surfaces as a validation error there.
func (c *Config) Validate() error {
	return errors.Join(
		c.Project.validate(),
		c.Build.validate(),
		c.Toolchain.validate(),
		c.Readiness.validate(),
		c.Probe.validate(),
		c.Server.validate(),
		c.Log.validate(),
		c.Telemetry.validate(),
	)
}

func (p *ProjectConfig) validate() error {
	var errs []error

	if !projectNamePattern.MatchString(p.Name) {
		errs = append(errs, fmt.Errorf("project.name must match %s, got %q", projectNamePattern, p.Name))
	}
	if p.ID == "" {
		errs = append(errs, errors.New("project.id must not be empty"))
	}
	if p.Dir == "" {
		errs = append(errs, errors.New("project.dir must not be empty"))
	}
	if p.DataDir != "" && p.DataVolume == "" {
		errs = append(errs, errors.New("project.data_volume must not be empty when project.data_dir is set"))
	}
	if p.EndpointHost == "" {
		errs = append(errs, errors.New("project.endpoint_host must not be empty"))
	}
	if p.ListenHost == "" {
		errs = append(errs, errors.New("project.listen_host must not be empty"))
	}

	return errors.Join(errs...)
}

func (b *BuildConfig) validate() error {
	var errs []error

	if b.BaseImage == "" {
		errs = append(errs, errors.New("build.base_image must not be empty"))
	}
	if b.SystemInstall == "" || b.SystemPackage == "" {
		errs = append(errs, errors.New("build.system_install and build.system_package must not be empty"))
	}
	if b.CLIPackage == "" {
		errs = append(errs, errors.New("build.cli_package must not be empty"))
	}
	if len(b.WorkDir) == 0 || b.WorkDir[0] != '/' {
		errs = append(errs, fmt.Errorf("build.work_dir must be an absolute path, got %q", b.WorkDir))
	}

	return errors.Join(errs...)
}

func (t *ToolchainConfig) validate() error {
	var errs []error

	if t.Binary == "" {
		errs = append(errs, errors.New("toolchain.binary must not be empty"))
	}
	if !semver.IsValid(t.MinVersion) {
		errs = append(errs, fmt.Errorf("toolchain.min_version must be a semantic version like v2.0.0, got %q", t.MinVersion))
	}
	if t.Dockerfile == "" || t.ComposeFile == "" || t.EmulatorConfig == "" {
		errs = append(errs, errors.New("toolchain.dockerfile, compose_file and emulator_config must not be empty"))
	}

	return errors.Join(errs...)
}

func (r *ReadinessConfig) validate() error {
	var errs []error

	if r.Host == "" {
		errs = append(errs, errors.New("readiness.host must not be empty"))
	}
	if r.Timeout <= 0 {
		errs = append(errs, errors.New("readiness.timeout must be positive"))
	}
	if r.DialTimeout <= 0 {
		errs = append(errs, errors.New("readiness.dial_timeout must be positive"))
	}
	if r.InitialInterval <= 0 {
		errs = append(errs, errors.New("readiness.initial_interval must be positive"))
	}
	if r.MaxInterval < r.InitialInterval {
		errs = append(errs, errors.New("readiness.max_interval must be >= readiness.initial_interval"))
	}
	if r.Multiplier < 1 {
		errs = append(errs, fmt.Errorf("readiness.multiplier must be >= 1, got %f", r.Multiplier))
	}

	return errors.Join(errs...)
}

func (cl *ClientConfig) validate() error {
	var errs []error

	if cl.Timeout <= 0 {
		errs = append(errs, errors.New("probe.timeout must be positive"))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("probe.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("probe.retry.multiplier must be positive, got %f", cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("probe.circuit_breaker.max_failures must be >= 1, got %d",
			cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("probe.rate_limit.requests_per_second must be >= 0, got %f",
			cl.RateLimit.RequestsPerSecond))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("probe.rate_limit.burst_size must be >= 1, got %d", cl.RateLimit.BurstSize))
	}

	return errors.Join(errs...)
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}
