// Package compose implements the Toolchain client port on top of the
// docker compose CLI. Every command runs with an explicit project name and
// compose file, in the project directory, so it only ever touches the
// environment this tool rendered.
package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/mod/semver"

	"github.com/jsamuelsen11/emuctl/internal/domain"
	"github.com/jsamuelsen11/emuctl/internal/platform/logging"
	"github.com/jsamuelsen11/emuctl/internal/platform/telemetry"
	"github.com/jsamuelsen11/emuctl/internal/ports"
)

// Compile-time interface check.
var _ ports.Toolchain = (*Toolchain)(nil)

// stderrTailBytes bounds the stderr kept for error messages.
const stderrTailBytes = 4096

// Settings identifies the environment the toolchain drives.
type Settings struct {
	// Binary is the docker CLI; compose runs as its "compose" plugin.
	Binary string
	// MinVersion is the lowest accepted compose version, in semver form
	// ("v2.0.0").
	MinVersion  string
	ProjectName string
	ComposeFile string
	// Dir is the working directory of every command.
	Dir string
}

// CommandFunc builds the process for one invocation. Tests swap it for a
// helper process.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Toolchain runs docker compose.
type Toolchain struct {
	settings Settings
	lookPath func(string) (string, error)
	command  CommandFunc
	progress io.Writer
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

// Option configures a Toolchain.
type Option func(*Toolchain)

// WithLookPath replaces exec.LookPath.
func WithLookPath(f func(string) (string, error)) Option {
	return func(t *Toolchain) {
		t.lookPath = f
	}
}

// WithCommand replaces exec.CommandContext.
func WithCommand(f CommandFunc) Option {
	return func(t *Toolchain) {
		t.command = f
	}
}

// WithProgress sets where build and start output is streamed. Defaults to
// io.Discard.
func WithProgress(w io.Writer) Option {
	return func(t *Toolchain) {
		t.progress = w
	}
}

// New creates a Toolchain. metrics may be nil.
func New(s Settings, metrics *telemetry.Metrics, logger *slog.Logger, opts ...Option) *Toolchain {
	if metrics == nil {
		metrics = telemetry.NoopMetrics()
	}
	t := &Toolchain{
		settings: s,
		lookPath: exec.LookPath,
		command:  exec.CommandContext,
		progress: io.Discard,
		metrics:  metrics,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Check verifies the docker binary is on PATH and its compose plugin is at
// least MinVersion. It has no side effects.
func (t *Toolchain) Check(ctx context.Context) error {
	if _, err := t.lookPath(t.settings.Binary); err != nil {
		return &domain.ToolchainError{
			Op:       "check",
			Binary:   t.settings.Binary,
			ExitCode: -1,
			Err:      fmt.Errorf("%w: %w", domain.ErrBinaryNotFound, err),
		}
	}

	var out bytes.Buffer
	if err := t.run(ctx, "version", []string{"compose", "version", "--short"}, &out, nil); err != nil {
		return err
	}

	raw := strings.TrimSpace(out.String())
	version := normalizeVersion(raw)
	if !semver.IsValid(version) {
		return &domain.ToolchainError{
			Op:       "check",
			Binary:   t.settings.Binary,
			ExitCode: 0,
			Err:      fmt.Errorf("%w: cannot parse compose version %q", domain.ErrIncompatibleVersion, raw),
		}
	}
	if semver.Compare(version, t.settings.MinVersion) < 0 {
		return &domain.ToolchainError{
			Op:       "check",
			Binary:   t.settings.Binary,
			ExitCode: 0,
			Err:      fmt.Errorf("%w: compose %s is older than %s", domain.ErrIncompatibleVersion, version, t.settings.MinVersion),
		}
	}

	t.logger.DebugContext(ctx, "toolchain compatible",
		slog.String("binary", t.settings.Binary),
		slog.String("compose_version", version),
	)
	return nil
}

// Up runs "up --build --detach". With rebuild set it first runs
// "build --pull --no-cache".
func (t *Toolchain) Up(ctx context.Context, rebuild bool) error {
	if rebuild {
		if err := t.run(ctx, "build", t.composeArgs("build", "--pull", "--no-cache"), t.progress, t.progress); err != nil {
			return err
		}
	}
	return t.run(ctx, "up", t.composeArgs("up", "--build", "--detach"), t.progress, t.progress)
}

// Down runs "down --remove-orphans", which removes exited containers too.
// Named volumes are kept so emulator data survives restarts. Without a
// rendered compose file there is nothing compose could have started, so
// Down returns nil without running anything.
func (t *Toolchain) Down(ctx context.Context) error {
	path := t.composeFilePath()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		t.logger.DebugContext(ctx, "no compose file, nothing to stop", slog.String("path", path))
		return nil
	}
	return t.run(ctx, "down", t.composeArgs("down", "--remove-orphans"), t.progress, t.progress)
}

// Logs streams "logs" to w. tail <= 0 means all lines.
func (t *Toolchain) Logs(ctx context.Context, w io.Writer, follow bool, tail int) error {
	args := []string{"logs", "--no-color"}
	if follow {
		args = append(args, "--follow")
	}
	if tail > 0 {
		args = append(args, "--tail", strconv.Itoa(tail))
	}

	err := t.run(ctx, "logs", t.composeArgs(args...), w, w)
	// Interrupting a follow is the normal way to end it.
	if follow && ctx.Err() != nil {
		return nil
	}
	return err
}

func (t *Toolchain) composeFilePath() string {
	if filepath.IsAbs(t.settings.ComposeFile) {
		return t.settings.ComposeFile
	}
	return filepath.Join(t.settings.Dir, t.settings.ComposeFile)
}

// composeArgs prefixes a compose subcommand with the project selectors.
func (t *Toolchain) composeArgs(sub ...string) []string {
	args := []string{
		"compose",
		"--project-name", t.settings.ProjectName,
		"--file", t.settings.ComposeFile,
	}
	return append(args, sub...)
}

// run executes one toolchain command. stdout and stderr may be nil. stderr
// is always tee'd into a bounded tail for the error message. When both
// streams share a writer, os/exec copies them from two goroutines, so the
// writer is serialized.
func (t *Toolchain) run(ctx context.Context, op string, args []string, stdout, stderr io.Writer) error {
	ctx, span := otel.Tracer(telemetry.InstrumentationName).Start(ctx, "compose."+op)
	defer span.End()
	span.SetAttributes(attribute.String("toolchain.args", strings.Join(args, " ")))

	tail := newTailBuffer(stderrTailBytes)
	cmd := t.command(ctx, t.settings.Binary, args...)
	cmd.Dir = t.settings.Dir
	if stdout != nil && stdout == stderr {
		shared := &syncWriter{w: stdout}
		stdout, stderr = shared, shared
	}
	cmd.Stdout = stdout
	if stderr != nil {
		cmd.Stderr = io.MultiWriter(stderr, tail)
	} else {
		cmd.Stderr = tail
	}

	logger := logging.FromContext(ctx)
	logger.DebugContext(ctx, "running toolchain command",
		slog.String("operation", op),
		slog.String("binary", t.settings.Binary),
		slog.Any("args", args),
	)

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	result := "success"
	if err != nil {
		result = "error"
	}
	attrs := metric.WithAttributes(
		telemetry.AttrCommand.String(op),
		telemetry.AttrResult.String(result),
	)
	t.metrics.ToolchainCommandDuration.Record(ctx, elapsed.Seconds(), attrs)
	t.metrics.ToolchainCommandTotal.Add(ctx, 1, attrs)

	if err == nil {
		return nil
	}

	terr := t.toolchainError(op, err, tail.String())
	span.RecordError(terr)
	span.SetStatus(codes.Error, terr.Error())
	logger.DebugContext(ctx, "toolchain command failed",
		slog.String("operation", op),
		slog.Int("exit_code", terr.ExitCode),
		slog.Duration("elapsed", elapsed),
		slog.Any("error", err),
	)
	return terr
}

func (t *Toolchain) toolchainError(op string, err error, stderr string) *domain.ToolchainError {
	terr := &domain.ToolchainError{
		Op:       op,
		Binary:   t.settings.Binary,
		ExitCode: -1,
		Stderr:   strings.TrimSpace(stderr),
		Err:      err,
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		terr.ExitCode = exitErr.ExitCode()
	case errors.Is(err, exec.ErrNotFound):
		terr.Err = fmt.Errorf("%w: %w", domain.ErrBinaryNotFound, err)
	}
	return terr
}

// normalizeVersion turns compose's "2.24.6" or "v2.24.6-desktop.1" into a
// semver string with the leading "v" the semver package wants.
func normalizeVersion(v string) string {
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
