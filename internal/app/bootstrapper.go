// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jsamuelsen11/emuctl/internal/app/fanout"
	"github.com/jsamuelsen11/emuctl/internal/domain"
	"github.com/jsamuelsen11/emuctl/internal/domain/emulator"
	"github.com/jsamuelsen11/emuctl/internal/ports"
	"github.com/jsamuelsen11/emuctl/internal/recipe"
	"github.com/jsamuelsen11/emuctl/pkg/emulatorenv"
)

// Compile-time check that Bootstrapper implements ports.Bootstrapper.
var _ ports.Bootstrapper = (*Bootstrapper)(nil)

const defaultStatusWorkers = 4

// BootstrapperConfig holds the inputs of a Bootstrapper that come from
// configuration rather than from adapters.
type BootstrapperConfig struct {
	Descriptors emulator.Set
	Recipe      recipe.Options
	// Binary names the toolchain binary in readiness errors.
	Binary string
	// ProbeHost is the host the readiness probes dial. Host-side clients
	// use it too.
	ProbeHost string
	// StatusWorkers bounds concurrent health checks in Status.
	StatusWorkers int
}

// Bootstrapper implements ports.Bootstrapper. It renders the artifacts,
// hands them to the toolchain and waits for the emulators. It holds no
// business logic of its own beyond the lifecycle ordering.
type Bootstrapper struct {
	cfg       BootstrapperConfig
	toolchain ports.Toolchain
	engine    ports.ContainerEngine
	writer    ports.ArtifactWriter
	probe     ports.ReadinessProbe
	logger    *slog.Logger
	state     *lifecycle
}

// NewBootstrapper creates a Bootstrapper. A nil logger discards output.
func NewBootstrapper(
	cfg BootstrapperConfig,
	toolchain ports.Toolchain,
	engine ports.ContainerEngine,
	writer ports.ArtifactWriter,
	probe ports.ReadinessProbe,
	logger *slog.Logger,
) *Bootstrapper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.StatusWorkers < 1 {
		cfg.StatusWorkers = defaultStatusWorkers
	}
	return &Bootstrapper{
		cfg:       cfg,
		toolchain: toolchain,
		engine:    engine,
		writer:    writer,
		probe:     probe,
		logger:    logger,
		state:     newLifecycle(),
	}
}

// Render validates the descriptors and renders the artifacts.
func (s *Bootstrapper) Render() (recipe.Artifacts, error) {
	return recipe.Render(s.cfg.Descriptors, s.cfg.Recipe)
}

// Start renders and writes the artifacts, launches the environment and
// waits until every enabled service accepts connections. Containers are
// left running when readiness fails so their logs can be inspected.
func (s *Bootstrapper) Start(ctx context.Context, opts ports.StartOptions) error {
	artifacts, err := s.Render()
	if err != nil {
		return err
	}

	if err := s.toolchain.Check(ctx); err != nil {
		s.logger.ErrorContext(ctx, "toolchain check failed",
			slog.String("operation", "Start"),
			slog.Any("error", err),
		)
		return err
	}

	if err := s.writer.Write(artifacts.Files()); err != nil {
		return fmt.Errorf("writing artifacts: %w", err)
	}

	endpoints := s.endpoints()
	s.logger.InfoContext(ctx, "starting emulators",
		slog.Int("services", len(endpoints)),
		slog.Bool("rebuild", opts.Rebuild),
	)

	if err := s.toolchain.Up(ctx, opts.Rebuild); err != nil {
		s.logger.ErrorContext(ctx, "failed to start emulators",
			slog.String("operation", "Start"),
			slog.Any("error", err),
		)
		return err
	}
	if err := s.state.Enter(emulator.StateRunning); err != nil {
		return err
	}

	if err := s.probe.Wait(ctx, endpoints); err != nil {
		if errors.Is(err, domain.ErrReadinessTimeout) {
			err = &domain.ToolchainError{
				Op:       "readiness",
				Binary:   s.cfg.Binary,
				ExitCode: -1,
				Err:      err,
			}
		}
		s.logger.ErrorContext(ctx, "emulators not ready",
			slog.String("operation", "Start"),
			slog.Any("error", err),
		)
		return err
	}

	s.logger.InfoContext(ctx, "emulators ready", slog.Int("services", len(endpoints)))
	return nil
}

// Stop removes the environment with the toolchain's down command, which
// also clears crashed or exited containers and the project network. It is
// a no-op when this process already stopped it or the toolchain is not
// installed.
func (s *Bootstrapper) Stop(ctx context.Context) error {
	if s.state.Get() == emulator.StateStopped {
		s.logger.DebugContext(ctx, "emulators already stopped")
		return nil
	}

	s.logger.InfoContext(ctx, "stopping emulators")
	err := s.toolchain.Down(ctx)
	switch {
	case errors.Is(err, domain.ErrBinaryNotFound):
		// Nothing can have been launched without the binary.
		s.logger.WarnContext(ctx, "toolchain not installed, nothing to stop", slog.Any("error", err))
		return nil
	case err != nil:
		s.logger.ErrorContext(ctx, "failed to stop emulators",
			slog.String("operation", "Stop"),
			slog.Any("error", err),
		)
		return err
	}
	return s.state.Enter(emulator.StateStopped)
}

// Logs streams the environment's log output to w.
func (s *Bootstrapper) Logs(ctx context.Context, w io.Writer, opts ports.LogOptions) error {
	if opts.Tail < 0 {
		return &domain.ValidationError{Fields: map[string]string{"tail": "must not be negative"}}
	}
	return s.toolchain.Logs(ctx, w, opts.Follow, opts.Tail)
}

// Status lists the environment's containers and runs one health check per
// enabled service plus the engine's own check. An unreachable engine
// degrades the result instead of failing it.
func (s *Bootstrapper) Status(ctx context.Context) (*ports.Status, error) {
	st := &ports.Status{State: s.state.Get()}

	containers, err := s.engine.ListContainers(ctx, s.cfg.Recipe.ProjectName)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to list containers",
			slog.String("operation", "Status"),
			slog.Any("error", err),
		)
	} else {
		st.Containers = containers
		st.State = observedState(containers, st.State)
	}

	checkers := s.HealthCheckers()
	results := fanout.Run(ctx, s.cfg.StatusWorkers, checkers, func(ctx context.Context, c ports.HealthChecker) (struct{}, error) {
		return struct{}{}, c.HealthCheck(ctx)
	})

	st.Checks = make(map[string]error, len(checkers))
	for i, r := range results {
		st.Checks[checkers[i].Name()] = r.Err
	}
	return st, nil
}

// HealthCheckers returns the engine's checker followed by one checker per
// enabled service. The health endpoint registers the same set.
func (s *Bootstrapper) HealthCheckers() []ports.HealthChecker {
	return append([]ports.HealthChecker{s.engine}, s.probe.Checkers(s.endpoints())...)
}

// State returns the lifecycle state as seen by this process.
func (s *Bootstrapper) State() emulator.State {
	return s.state.Get()
}

// Environment returns the client variables for the enabled emulators that
// have one, in port order.
func (s *Bootstrapper) Environment() emulatorenv.Config {
	enabled := s.cfg.Descriptors.Enabled()
	cfg := emulatorenv.Config{
		Host:      s.cfg.ProbeHost,
		ProjectID: s.cfg.Recipe.ProjectID,
		Endpoints: make([]emulatorenv.Endpoint, 0, len(enabled)),
	}
	for _, d := range enabled {
		name := d.EnvVar()
		if name == "" {
			continue
		}
		cfg.Endpoints = append(cfg.Endpoints, emulatorenv.Endpoint{
			Service: d.Name,
			Var:     name,
			Port:    d.Port,
		})
	}
	return cfg
}

func (s *Bootstrapper) endpoints() []ports.Endpoint {
	enabled := s.cfg.Descriptors.Enabled()
	out := make([]ports.Endpoint, 0, len(enabled))
	for _, d := range enabled {
		out = append(out, ports.Endpoint{
			Service:  d.Name,
			Host:     s.cfg.ProbeHost,
			Port:     d.Port,
			HTTPPath: emulator.HTTPPathFor(d.Name),
		})
	}
	return out
}

// observedState prefers what the engine reports over the local state, so a
// status query from a fresh process sees an environment started earlier.
func observedState(containers []emulator.Container, local emulator.State) emulator.State {
	if len(containers) == 0 {
		return local
	}
	for _, c := range containers {
		if c.IsRunning() {
			return emulator.StateRunning
		}
	}
	return emulator.StateStopped
}
