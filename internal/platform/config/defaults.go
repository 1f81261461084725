package config

import (
	"fmt"

	"github.com/jsamuelsen11/emuctl/internal/domain/emulator"
)

const (
	defaultServerPort = 9400

	defaultReadinessMultiplier = 2.0

	defaultRetryMaxAttempts = 2
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultRateLimitRPS   = 20.0
	defaultRateLimitBurst = 5
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by the descriptor file, env
// vars and flags. Every known emulator gets its default port, disabled, so a
// descriptor file only needs "enabled: true" for the common case.
func defaults() map[string]any {
	d := map[string]any{
		"project.name":          "emulators",
		"project.id":            "demo-project",
		"project.dir":           ".",
		"project.data_volume":   "emulator-data",
		"project.data_dir":      ".emulator-data",
		"project.endpoint_host": "localhost",
		"project.listen_host":   "0.0.0.0",

		"build.base_image":     "node:20-alpine",
		"build.system_install": "apk add --no-cache",
		"build.system_package": "openjdk17-jre-headless",
		"build.cli_package":    "firebase-tools",
		"build.work_dir":       "/app",

		"toolchain.binary":          "docker",
		"toolchain.min_version":     "v2.0.0",
		"toolchain.dockerfile":      "Dockerfile",
		"toolchain.compose_file":    "docker-compose.yml",
		"toolchain.emulator_config": "firebase.json",

		"readiness.host":             "127.0.0.1",
		"readiness.timeout":          "3m",
		"readiness.dial_timeout":     "1s",
		"readiness.initial_interval": "250ms",
		"readiness.max_interval":     "5s",
		"readiness.multiplier":       defaultReadinessMultiplier,

		"probe.timeout":                         "2s",
		"probe.retry.max_attempts":              defaultRetryMaxAttempts,
		"probe.retry.initial_interval":          "100ms",
		"probe.retry.max_interval":              "1s",
		"probe.retry.multiplier":                defaultRetryMultiplier,
		"probe.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"probe.circuit_breaker.timeout":         "10s",
		"probe.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"probe.rate_limit.requests_per_second":  defaultRateLimitRPS,
		"probe.rate_limit.burst_size":           defaultRateLimitBurst,

		"server.host":          "127.0.0.1",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "30s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "text",

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "emuctl",
	}

	for _, k := range emulator.Catalog() {
		d[fmt.Sprintf("services.%s.port", k.Name)] = k.DefaultPort
		d[fmt.Sprintf("services.%s.enabled", k.Name)] = false
	}

	return d
}
