package ports

import (
	"context"
	"io"

	"github.com/jsamuelsen11/emuctl/internal/domain/emulator"
	"github.com/jsamuelsen11/emuctl/internal/recipe"
	"github.com/jsamuelsen11/emuctl/pkg/emulatorenv"
)

// StartOptions tunes a start.
type StartOptions struct {
	// Rebuild forces an image rebuild before starting.
	Rebuild bool
}

// LogOptions tunes a log stream.
type LogOptions struct {
	Follow bool
	// Tail limits output to the last N lines per container; 0 means all.
	Tail int
}

// Status is a point-in-time view of the launched environment.
type Status struct {
	State      emulator.State
	Containers []emulator.Container
	// Checks holds health results keyed by checker name; nil means healthy.
	Checks map[string]error
}

// Bootstrapper defines the service port for the environment lifecycle.
// Implemented by the application layer; called by the CLI.
type Bootstrapper interface {
	// Render validates the descriptors and renders all artifacts without
	// touching the file system or the toolchain.
	// Returns domain.ErrValidation if two enabled services share a port.
	Render() (recipe.Artifacts, error)

	// Start renders, writes the artifacts, builds and launches the
	// environment, and blocks until every enabled port accepts connections
	// or the startup timeout elapses.
	// Returns domain.ErrValidation before any external call when the
	// descriptors are invalid, and domain.ErrToolchain for toolchain
	// failures including the readiness timeout.
	Start(ctx context.Context, opts StartOptions) error

	// Stop tears the environment down. Calling it when nothing is running
	// is a no-op.
	Stop(ctx context.Context) error

	// Logs streams the environment's log output to w.
	Logs(ctx context.Context, w io.Writer, opts LogOptions) error

	// Status reports the containers and health of the environment.
	Status(ctx context.Context) (*Status, error)

	// State returns the lifecycle state as seen by this process.
	State() emulator.State

	// Environment returns the client-side variables pointing SDKs at the
	// enabled emulators.
	Environment() emulatorenv.Config
}
