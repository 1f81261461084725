// Package recipe renders service descriptors into the files consumed by the
// external toolchain: the container build recipe (Dockerfile), the
// orchestration recipe (docker-compose.yml) and the emulator suite config
// (firebase.json) that binds every emulator to the exposed port.
//
// Render is a pure function. It validates the descriptor set first and
// returns no output at all when validation fails.
//
//	artifacts, err := recipe.Render(set, recipe.DefaultOptions())
//	if errors.Is(err, domain.ErrValidation) { ... }
package recipe

import (
	"fmt"

	"github.com/jsamuelsen11/emuctl/internal/domain/emulator"
)

// Default file names, relative to the project directory.
const (
	DefaultDockerfileName     = "Dockerfile"
	DefaultComposeFileName    = "docker-compose.yml"
	DefaultEmulatorConfigName = "firebase.json"
)

// Options parameterizes the rendered files. Every field has a default in
// DefaultOptions; the config layer overrides them.
type Options struct {
	// ProjectName is the compose project and service name.
	ProjectName string
	// ProjectID is the placeholder cloud project identifier passed to the
	// vendor CLI and exported to clients.
	ProjectID string

	BaseImage     string
	SystemInstall string
	SystemPackage string
	CLIPackage    string
	WorkDir       string

	// ProjectDir is the host directory bind-mounted on WorkDir.
	ProjectDir string
	// DataVolume is the named volume holding emulator state across runs.
	DataVolume string
	// DataDir is the mount point of DataVolume, relative to WorkDir. Empty
	// disables --import/--export-on-exit.
	DataDir string
	// EndpointHost is the host written into the client endpoint variables of
	// the orchestration recipe.
	EndpointHost string
	// ListenHost is the interface every emulator binds to inside the
	// container.
	ListenHost string

	DockerfileName     string
	ComposeFileName    string
	EmulatorConfigName string
}

// DefaultOptions returns the options matching the reference setup: a Node
// image with a JRE and the vendor CLI installed globally.
func DefaultOptions() Options {
	return Options{
		ProjectName:        "emulators",
		ProjectID:          "demo-project",
		BaseImage:          "node:20-alpine",
		SystemInstall:      "apk add --no-cache",
		SystemPackage:      "openjdk17-jre-headless",
		CLIPackage:         "firebase-tools",
		WorkDir:            "/app",
		ProjectDir:         ".",
		DataVolume:         "emulator-data",
		DataDir:            ".emulator-data",
		EndpointHost:       "localhost",
		ListenHost:         "0.0.0.0",
		DockerfileName:     DefaultDockerfileName,
		ComposeFileName:    DefaultComposeFileName,
		EmulatorConfigName: DefaultEmulatorConfigName,
	}
}

// File is one rendered file.
type File struct {
	Name    string
	Content string
}

// Artifacts holds the rendered texts.
type Artifacts struct {
	Dockerfile     string
	Compose        string
	EmulatorConfig string

	names Options
}

// Files returns the artifacts with their file names, build recipe first.
func (a Artifacts) Files() []File {
	return []File{
		{Name: a.names.DockerfileName, Content: a.Dockerfile},
		{Name: a.names.ComposeFileName, Content: a.Compose},
		{Name: a.names.EmulatorConfigName, Content: a.EmulatorConfig},
	}
}

// Render validates set and renders all artifacts for its enabled services.
// It fails with a *domain.ValidationError when two enabled services share a
// port, and returns zero Artifacts on any error.
func Render(set emulator.Set, opts Options) (Artifacts, error) {
	if err := set.Validate(); err != nil {
		return Artifacts{}, err
	}

	enabled := set.Enabled()

	dockerfile, err := renderDockerfile(enabled, opts)
	if err != nil {
		return Artifacts{}, fmt.Errorf("rendering %s: %w", opts.DockerfileName, err)
	}

	compose, err := renderCompose(enabled, opts)
	if err != nil {
		return Artifacts{}, fmt.Errorf("rendering %s: %w", opts.ComposeFileName, err)
	}

	emulatorConfig, err := renderEmulatorConfig(enabled, opts)
	if err != nil {
		return Artifacts{}, fmt.Errorf("rendering %s: %w", opts.EmulatorConfigName, err)
	}

	return Artifacts{
		Dockerfile:     dockerfile,
		Compose:        compose,
		EmulatorConfig: emulatorConfig,
		names:          opts,
	}, nil
}

// Endpoint pairs a client environment variable with its host:port value.
type Endpoint struct {
	Service string
	EnvVar  string
	Address string
}

// Endpoints returns the client endpoints of the enabled services that have
// a client environment variable, in port order.
func Endpoints(enabled []emulator.Descriptor, host string) []Endpoint {
	out := make([]Endpoint, 0, len(enabled))
	for _, d := range enabled {
		name := d.EnvVar()
		if name == "" {
			continue
		}
		out = append(out, Endpoint{
			Service: d.Name,
			EnvVar:  name,
			Address: fmt.Sprintf("%s:%d", host, d.Port),
		})
	}
	return out
}

// ProjectEnv returns the placeholder project identifier variables read by
// the vendor SDKs.
func ProjectEnv(projectID string) [][2]string {
	return [][2]string{
		{"GCLOUD_PROJECT", projectID},
		{"FIREBASE_PROJECT", projectID},
	}
}
