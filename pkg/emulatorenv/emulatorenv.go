// Package emulatorenv points client SDKs at a running emulator environment.
//
// The SDKs read their emulator endpoints from environment variables once,
// when the client is initialized. Variables set afterwards are ignored, so
// the variables must be in place before initialization. Initialize makes
// that ordering impossible to get wrong: it takes the initializer itself and
// only calls it after every variable is set.
//
//	cfg := emulatorenv.Config{
//		Host:      "127.0.0.1",
//		ProjectID: "demo-project",
//		Endpoints: []emulatorenv.Endpoint{
//			{Service: "firestore", Var: "FIRESTORE_EMULATOR_HOST", Port: 8080},
//		},
//	}
//	app, err := emulatorenv.Initialize(cfg, func() (*firebase.App, error) {
//		return firebase.NewApp(ctx, nil)
//	})
package emulatorenv

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("emulatorenv: invalid config")

// Project identifier variables read by the SDKs.
const (
	VarGCloudProject   = "GCLOUD_PROJECT"
	VarFirebaseProject = "FIREBASE_PROJECT"
)

var varName = regexp.MustCompile(`^[A-Z_][A-Z0-9_]*$`)

// Endpoint is one emulated service reachable by clients.
type Endpoint struct {
	Service string
	// Var is the environment variable the SDK reads the endpoint from.
	Var  string
	Port int
}

// Config describes the client side of an emulator environment.
type Config struct {
	// Host is the address clients dial, usually the loopback address the
	// ports are published on.
	Host      string
	ProjectID string
	Endpoints []Endpoint
}

// Variable is one environment variable.
type Variable struct {
	Name  string
	Value string
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var errs []error
	if c.Host == "" {
		errs = append(errs, errors.New("host is required"))
	}
	if c.ProjectID == "" {
		errs = append(errs, errors.New("project id is required"))
	}
	seen := make(map[string]string, len(c.Endpoints))
	for _, ep := range c.Endpoints {
		if !varName.MatchString(ep.Var) {
			errs = append(errs, fmt.Errorf("%s: invalid variable name %q", ep.Service, ep.Var))
		}
		if ep.Port < 1 || ep.Port > 65535 {
			errs = append(errs, fmt.Errorf("%s: port %d out of range", ep.Service, ep.Port))
		}
		if other, ok := seen[ep.Var]; ok {
			errs = append(errs, fmt.Errorf("%s: variable %s already set by %s", ep.Service, ep.Var, other))
		}
		seen[ep.Var] = ep.Service
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Variables returns the endpoint variables in Endpoints order followed by
// the project identifier variables.
func (c Config) Variables() []Variable {
	out := make([]Variable, 0, len(c.Endpoints)+2)
	for _, ep := range c.Endpoints {
		out = append(out, Variable{
			Name:  ep.Var,
			Value: c.Host + ":" + strconv.Itoa(ep.Port),
		})
	}
	return append(out,
		Variable{Name: VarGCloudProject, Value: c.ProjectID},
		Variable{Name: VarFirebaseProject, Value: c.ProjectID},
	)
}

// Environ returns the variables as KEY=value pairs, ready to append to
// exec.Cmd.Env.
func (c Config) Environ() []string {
	vars := c.Variables()
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = v.Name + "=" + v.Value
	}
	return out
}

type options struct {
	setenv func(key, value string) error
}

// Option configures Initialize.
type Option func(*options)

// WithSetenv replaces os.Setenv.
func WithSetenv(fn func(key, value string) error) Option {
	return func(o *options) { o.setenv = fn }
}

// Initialize validates cfg, exports every variable into the process
// environment and then calls init exactly once, returning its result.
// init is not called when validation or any Setenv fails.
func Initialize[T any](cfg Config, init func() (T, error), opts ...Option) (T, error) {
	var zero T

	o := options{setenv: os.Setenv}
	for _, opt := range opts {
		opt(&o)
	}

	if init == nil {
		return zero, fmt.Errorf("%w: nil initializer", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return zero, err
	}
	for _, v := range cfg.Variables() {
		if err := o.setenv(v.Name, v.Value); err != nil {
			return zero, fmt.Errorf("emulatorenv: setting %s: %w", v.Name, err)
		}
	}
	return init()
}
