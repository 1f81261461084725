// Package docker implements read-only container engine queries with the
// Docker Engine SDK. It never mutates containers; lifecycle changes go
// through the compose toolchain.
package docker

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"

	"github.com/jsamuelsen11/emuctl/internal/domain"
	"github.com/jsamuelsen11/emuctl/internal/domain/emulator"
	"github.com/jsamuelsen11/emuctl/internal/ports"
)

// Labels set by docker compose on every container it creates.
const (
	LabelProject = "com.docker.compose.project"
	LabelService = "com.docker.compose.service"
)

// HealthCheckName is the registry name of the daemon checker.
const HealthCheckName = "docker-daemon"

// Compile-time interface checks.
var (
	_ ports.ContainerEngine = (*Engine)(nil)
	_ ports.HealthChecker   = (*Engine)(nil)
)

// Engine queries the Docker daemon. The client is created on first use, so
// commands that never query the daemon are unaffected by a bad DOCKER_HOST.
type Engine struct {
	opts []client.Opt

	mu  sync.Mutex
	cli *client.Client
}

// New configures a client from the standard environment (DOCKER_HOST and
// friends) with API version negotiation. Extra opts are applied last, so
// tests can point it at a fake daemon. Configuration errors surface on the
// first query.
func New(opts ...client.Opt) *Engine {
	return &Engine{
		opts: append([]client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}, opts...),
	}
}

func (e *Engine) conn() (*client.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cli != nil {
		return e.cli, nil
	}
	cli, err := client.NewClientWithOpts(e.opts...)
	if err != nil {
		return nil, fmt.Errorf("creating docker client: %w", err)
	}
	e.cli = cli
	return cli, nil
}

// Close releases the client's idle connections. It is a no-op when the
// daemon was never queried.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cli == nil {
		return nil
	}
	return e.cli.Close()
}

// ListContainers returns the project's containers, running or not, sorted
// by name.
func (e *Engine) ListContainers(ctx context.Context, project string) ([]emulator.Container, error) {
	cli, err := e.conn()
	if err != nil {
		return nil, &domain.ToolchainError{Op: "inspect", Binary: "docker-engine", ExitCode: -1, Err: err}
	}

	summaries, err := cli.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("label", LabelProject+"="+project)),
	})
	if err != nil {
		return nil, &domain.ToolchainError{Op: "inspect", Binary: "docker-engine", ExitCode: -1, Err: err}
	}

	out := make([]emulator.Container, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toContainer(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Name returns the health check name.
func (e *Engine) Name() string {
	return HealthCheckName
}

// HealthCheck pings the daemon.
func (e *Engine) HealthCheck(ctx context.Context) error {
	cli, err := e.conn()
	if err != nil {
		return fmt.Errorf("docker daemon unreachable: %w", err)
	}
	if _, err := cli.Ping(ctx); err != nil {
		return fmt.Errorf("docker daemon unreachable: %w", err)
	}
	return nil
}

func toContainer(s container.Summary) emulator.Container {
	name := s.ID
	if len(s.Names) > 0 {
		name = strings.TrimPrefix(s.Names[0], "/")
	}

	seen := make(map[int]bool, len(s.Ports))
	published := make([]int, 0, len(s.Ports))
	for _, p := range s.Ports {
		port := int(p.PublicPort)
		if port == 0 || seen[port] {
			continue
		}
		seen[port] = true
		published = append(published, port)
	}
	sort.Ints(published)

	return emulator.Container{
		ID:      shortID(s.ID),
		Name:    name,
		Service: s.Labels[LabelService],
		State:   string(s.State),
		Status:  s.Status,
		Ports:   published,
	}
}

func shortID(id string) string {
	const n = 12
	if len(id) > n {
		return id[:n]
	}
	return id
}
