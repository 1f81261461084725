package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrValidation = errors.New("validation error")
	ErrToolchain  = errors.New("toolchain error")
	ErrConfig     = errors.New("config error")

	// Toolchain failure causes. A ToolchainError wraps one of these (or the
	// underlying process error) so callers can distinguish them.
	ErrBinaryNotFound      = errors.New("binary not found")
	ErrIncompatibleVersion = errors.New("incompatible version")
	ErrReadinessTimeout    = errors.New("readiness timeout")
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, field := range keys {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ToolchainError reports a failure of the external container toolchain.
// Op names the toolchain operation ("check", "up", "down", "logs", "ps",
// "readiness"). ExitCode is -1 when the process never ran or was killed.
type ToolchainError struct {
	Op       string
	Binary   string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ToolchainError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", ErrToolchain.Error(), e.Op)
	if e.Binary != "" {
		fmt.Fprintf(&b, " (%s)", e.Binary)
	}
	if e.ExitCode > 0 {
		fmt.Fprintf(&b, ": exit status %d", e.ExitCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		fmt.Fprintf(&b, ": %s", s)
	}
	return b.String()
}

// Unwrap exposes both the ErrToolchain sentinel and the underlying cause.
func (e *ToolchainError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrToolchain}
	}
	return []error{ErrToolchain, e.Err}
}

// ConfigError reports malformed or missing descriptor input.
type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", ErrConfig.Error(), e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrConfig.Error(), e.Source, e.Err)
}

// Unwrap exposes both the ErrConfig sentinel and the underlying cause.
func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfig}
	}
	return []error{ErrConfig, e.Err}
}
