package ports

import (
	"context"
	"io"

	"github.com/jsamuelsen11/emuctl/internal/domain/emulator"
	"github.com/jsamuelsen11/emuctl/internal/recipe"
)

// Toolchain defines the client port for the external container toolchain.
// Implemented by the compose adapter; called by the application layer.
// Every failure is a *domain.ToolchainError.
type Toolchain interface {
	// Check verifies the toolchain binary is installed and compatible.
	// It must not have side effects.
	Check(ctx context.Context) error

	// Up builds the image and starts the environment detached. With rebuild
	// set, the image is rebuilt from scratch first.
	Up(ctx context.Context, rebuild bool) error

	// Down stops and removes the environment's containers, exited ones
	// included, and its networks. Repeating it is harmless, and it is a
	// no-op when no compose file was ever rendered.
	Down(ctx context.Context) error

	// Logs streams the environment's logs to w until the stream ends or ctx
	// is canceled.
	Logs(ctx context.Context, w io.Writer, follow bool, tail int) error
}

// ContainerEngine defines the client port for read-only container engine
// queries. Implemented by the Docker adapter. Its health check reports
// whether the daemon is reachable.
type ContainerEngine interface {
	HealthChecker

	// ListContainers returns every container (running or not) that belongs
	// to the named compose project.
	ListContainers(ctx context.Context, project string) ([]emulator.Container, error)
}

// ArtifactWriter defines the client port for persisting rendered artifacts.
// Implemented by the file system adapter.
type ArtifactWriter interface {
	// Write persists all files, replacing existing ones atomically.
	Write(files []recipe.File) error
}

// ReadinessProbe defines the client port for waiting on the launched
// emulators. Implemented by the readiness prober.
type ReadinessProbe interface {
	// Wait blocks until every endpoint accepts connections, ctx is canceled,
	// or the prober's deadline elapses. On timeout it returns an error
	// wrapping domain.ErrReadinessTimeout.
	Wait(ctx context.Context, endpoints []Endpoint) error

	// Checkers returns one single-shot health checker per endpoint, named
	// after its service.
	Checkers(endpoints []Endpoint) []HealthChecker
}

// Endpoint is one address to probe.
type Endpoint struct {
	Service string
	Host    string
	Port    int
	// HTTPPath, when non-empty, makes the probe an HTTP GET that must not
	// return a 5xx status.
	HTTPPath string
}
