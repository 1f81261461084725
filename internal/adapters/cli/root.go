// Package cli implements the emuctl command-line interface with cobra.
//
// Every operational command needs a loaded configuration and a wired
// Runtime. The root command's PersistentPreRunE loads the config from the
// global flags, builds the logger, and asks the Factory for the Runtime;
// Run closes it once the command returns.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen11/emuctl/internal/platform/config"
	"github.com/jsamuelsen11/emuctl/internal/platform/httpclient"
	"github.com/jsamuelsen11/emuctl/internal/platform/logging"
	"github.com/jsamuelsen11/emuctl/internal/ports"
)

// annotationRuntime marks commands that need the config and a Runtime.
// Others (version, help, completion) run without a descriptor file.
const annotationRuntime = "emuctl/runtime"

// Runtime is the wired application a command operates on.
type Runtime struct {
	Config  *config.Config
	Logger  *slog.Logger
	Service ports.Bootstrapper
	Writer  ports.ArtifactWriter
	// Serve runs the health endpoint until ctx is cancelled.
	Serve func(ctx context.Context) error
	// Close releases the Runtime's resources. May be nil.
	Close func(ctx context.Context) error
}

// Factory wires a Runtime for a loaded config. progress receives toolchain
// build and start output.
type Factory func(ctx context.Context, cfg *config.Config, logger *slog.Logger, progress io.Writer) (*Runtime, error)

// Options configures the command tree.
type Options struct {
	Version string
	Factory Factory

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// globalFlags are bound to the root command's persistent flags.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

type cli struct {
	opts  Options
	flags globalFlags
	rt    *Runtime
}

// Run executes the command line args and returns the process exit code.
// Errors are printed to Stderr as a single line.
func Run(ctx context.Context, opts Options, args []string) int {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	c := &cli{opts: opts}
	root := c.rootCommand()
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if closeErr := c.close(ctx); closeErr != nil && err == nil {
		err = closeErr
	}
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(opts.Stderr, "Error: %s\n", oneLine(err))
	return 1
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "emuctl",
		Short: "Bootstrap a local cloud emulator environment",
		Long: `emuctl renders a container build recipe and a compose file from a list
of service descriptors, starts the environment with docker compose, and
waits until every emulator accepts connections.`,
		Version:           c.opts.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	if c.opts.Stdin != nil {
		root.SetIn(c.opts.Stdin)
	}
	if c.opts.Stdout != nil {
		root.SetOut(c.opts.Stdout)
	}
	if c.opts.Stderr != nil {
		root.SetErr(c.opts.Stderr)
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.flags.configPath, "config", "c", "",
		"descriptor file (default: first of "+strings.Join(config.DefaultFileNames, ", ")+")")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&c.flags.logFormat, "log-format", "", "log format: text, json")

	root.AddCommand(
		c.renderCommand(),
		c.upCommand(),
		c.downCommand(),
		c.logsCommand(),
		c.statusCommand(),
		c.envCommand(),
		c.execCommand(),
		c.serveCommand(),
		c.versionCommand(),
	)
	return root
}

// setup loads the config and wires the Runtime for the command about to run.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[annotationRuntime] != "true" {
		return nil
	}
	if c.opts.Factory == nil {
		return errors.New("no runtime factory configured")
	}

	overrides := map[string]any{}
	if c.flags.logLevel != "" {
		overrides["log.level"] = c.flags.logLevel
	}
	if c.flags.logFormat != "" {
		overrides["log.format"] = c.flags.logFormat
	}

	cfg, err := config.Load(c.flags.configPath, config.WithOverrides(overrides))
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr()).
		With(slog.String(logging.RunIDKey, runID))

	ctx := httpclient.WithRunID(cmd.Context(), runID)
	ctx = logging.WithLogger(ctx, logger)
	cmd.SetContext(ctx)

	rt, err := c.opts.Factory(ctx, cfg, logger, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("wiring dependencies: %w", err)
	}
	c.rt = rt

	logger.DebugContext(ctx, "config loaded",
		slog.String("source", cfg.Source),
		slog.String("command", cmd.Name()),
	)
	return nil
}

func (c *cli) close(ctx context.Context) error {
	if c.rt == nil || c.rt.Close == nil {
		return nil
	}
	rt := c.rt
	c.rt = nil
	return rt.Close(context.WithoutCancel(ctx))
}

// needsRuntime marks cmd as operating on the wired Runtime.
func needsRuntime(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationRuntime] = "true"
	return cmd
}

// runtime returns the Runtime wired by setup.
func (c *cli) runtime() (*Runtime, error) {
	if c.rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return c.rt, nil
}

// ExitError carries a child process exit code through Run without printing
// an error line.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// oneLine collapses multi-line errors (errors.Join output) onto one line.
func oneLine(err error) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(err.Error(), "\n", "; ")), " ")
}

// interrupted reports whether err happened because ctx ended, as when a
// followed log stream is stopped with Ctrl-C.
func interrupted(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil
}
