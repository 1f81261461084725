package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/emuctl/internal/domain"
	"github.com/jsamuelsen11/emuctl/internal/domain/emulator"
	"github.com/jsamuelsen11/emuctl/internal/ports"
	"github.com/jsamuelsen11/emuctl/internal/recipe"
	"github.com/jsamuelsen11/emuctl/mocks"
)

type deps struct {
	toolchain *mocks.MockToolchain
	engine    *mocks.MockContainerEngine
	writer    *mocks.MockArtifactWriter
	probe     *mocks.MockReadinessProbe
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func firestoreAndUI() emulator.Set {
	return emulator.NewSet(
		emulator.Descriptor{Name: "firestore", Port: 8080, Enabled: true},
		emulator.Descriptor{Name: "ui", Port: 4000, Enabled: true},
		emulator.Descriptor{Name: "pubsub", Port: 8085, Enabled: false},
	)
}

func newTestBootstrapper(t *testing.T, set emulator.Set) (*Bootstrapper, deps) {
	t.Helper()

	d := deps{
		toolchain: mocks.NewMockToolchain(t),
		engine:    mocks.NewMockContainerEngine(t),
		writer:    mocks.NewMockArtifactWriter(t),
		probe:     mocks.NewMockReadinessProbe(t),
	}
	cfg := BootstrapperConfig{
		Descriptors: set,
		Recipe:      recipe.DefaultOptions(),
		Binary:      "docker",
		ProbeHost:   "127.0.0.1",
	}
	return NewBootstrapper(cfg, d.toolchain, d.engine, d.writer, d.probe, discardLogger()), d
}

func wantEndpoints() []ports.Endpoint {
	return []ports.Endpoint{
		{Service: "ui", Host: "127.0.0.1", Port: 4000, HTTPPath: "/"},
		{Service: "firestore", Host: "127.0.0.1", Port: 8080},
	}
}

// --- NewBootstrapper ---

func TestNewBootstrapper_Defaults(t *testing.T) {
	t.Parallel()

	b := NewBootstrapper(BootstrapperConfig{}, nil, nil, nil, nil, nil)
	assert.NotNil(t, b.logger)
	assert.Equal(t, defaultStatusWorkers, b.cfg.StatusWorkers)
	assert.Equal(t, emulator.StateNotStarted, b.State())
}

// --- Render ---

func TestBootstrapper_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders enabled services", func(t *testing.T) {
		t.Parallel()
		b, _ := newTestBootstrapper(t, firestoreAndUI())

		a, err := b.Render()
		require.NoError(t, err)
		assert.Contains(t, a.Dockerfile, "EXPOSE 4000\nEXPOSE 8080\n")
		assert.NotContains(t, a.Dockerfile, "8085")
	})

	t.Run("duplicate port is a validation error", func(t *testing.T) {
		t.Parallel()
		b, _ := newTestBootstrapper(t, emulator.NewSet(
			emulator.Descriptor{Name: "firestore", Port: 8080, Enabled: true},
			emulator.Descriptor{Name: "database", Port: 8080, Enabled: true},
		))

		_, err := b.Render()
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

// --- Start ---

func TestBootstrapper_Start(t *testing.T) {
	t.Parallel()

	t.Run("runs the lifecycle in order", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		var order []string
		d.toolchain.EXPECT().Check(mock.Anything).
			Run(func(context.Context) { order = append(order, "check") }).Return(nil)
		d.writer.EXPECT().Write(mock.Anything).
			Run(func(files []recipe.File) {
				order = append(order, "write")
				require.Len(t, files, 3)
				assert.Equal(t, "Dockerfile", files[0].Name)
			}).Return(nil)
		d.toolchain.EXPECT().Up(mock.Anything, false).
			Run(func(context.Context, bool) { order = append(order, "up") }).Return(nil)
		d.probe.EXPECT().Wait(mock.Anything, wantEndpoints()).
			Run(func(context.Context, []ports.Endpoint) { order = append(order, "wait") }).Return(nil)

		err := b.Start(context.Background(), ports.StartOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"check", "write", "up", "wait"}, order)
		assert.Equal(t, emulator.StateRunning, b.State())
	})

	t.Run("passes rebuild through", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		d.toolchain.EXPECT().Check(mock.Anything).Return(nil)
		d.writer.EXPECT().Write(mock.Anything).Return(nil)
		d.toolchain.EXPECT().Up(mock.Anything, true).Return(nil)
		d.probe.EXPECT().Wait(mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, b.Start(context.Background(), ports.StartOptions{Rebuild: true}))
	})

	t.Run("validation error makes no external call", func(t *testing.T) {
		t.Parallel()
		b, _ := newTestBootstrapper(t, emulator.NewSet(
			emulator.Descriptor{Name: "firestore", Port: 8080, Enabled: true},
			emulator.Descriptor{Name: "database", Port: 8080, Enabled: true},
		))

		err := b.Start(context.Background(), ports.StartOptions{})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, emulator.StateNotStarted, b.State())
	})

	t.Run("missing binary stops before writing", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		d.toolchain.EXPECT().Check(mock.Anything).Return(&domain.ToolchainError{
			Op: "check", Binary: "docker", ExitCode: -1, Err: domain.ErrBinaryNotFound,
		})

		err := b.Start(context.Background(), ports.StartOptions{})
		assert.ErrorIs(t, err, domain.ErrToolchain)
		assert.ErrorIs(t, err, domain.ErrBinaryNotFound)
		assert.Equal(t, emulator.StateNotStarted, b.State())
	})

	t.Run("write failure is wrapped", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		errDisk := errors.New("disk full")
		d.toolchain.EXPECT().Check(mock.Anything).Return(nil)
		d.writer.EXPECT().Write(mock.Anything).Return(errDisk)

		err := b.Start(context.Background(), ports.StartOptions{})
		assert.ErrorIs(t, err, errDisk)
		assert.Contains(t, err.Error(), "writing artifacts")
	})

	t.Run("non-zero exit is returned as is", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		upErr := &domain.ToolchainError{Op: "up", Binary: "docker", ExitCode: 1, Stderr: "build failed"}
		d.toolchain.EXPECT().Check(mock.Anything).Return(nil)
		d.writer.EXPECT().Write(mock.Anything).Return(nil)
		d.toolchain.EXPECT().Up(mock.Anything, false).Return(upErr)

		err := b.Start(context.Background(), ports.StartOptions{})
		var terr *domain.ToolchainError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, 1, terr.ExitCode)
		assert.Equal(t, emulator.StateNotStarted, b.State())
	})

	t.Run("readiness timeout becomes a toolchain error", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		d.toolchain.EXPECT().Check(mock.Anything).Return(nil)
		d.writer.EXPECT().Write(mock.Anything).Return(nil)
		d.toolchain.EXPECT().Up(mock.Anything, false).Return(nil)
		d.probe.EXPECT().Wait(mock.Anything, mock.Anything).
			Return(errors.Join(domain.ErrReadinessTimeout, errors.New("firestore not ready")))

		err := b.Start(context.Background(), ports.StartOptions{})
		var terr *domain.ToolchainError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, "readiness", terr.Op)
		assert.Equal(t, "docker", terr.Binary)
		assert.Equal(t, -1, terr.ExitCode)
		assert.ErrorIs(t, err, domain.ErrReadinessTimeout)
		// Containers stay up for inspection.
		assert.Equal(t, emulator.StateRunning, b.State())
	})

	t.Run("cancellation is not a toolchain error", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		d.toolchain.EXPECT().Check(mock.Anything).Return(nil)
		d.writer.EXPECT().Write(mock.Anything).Return(nil)
		d.toolchain.EXPECT().Up(mock.Anything, false).Return(nil)
		d.probe.EXPECT().Wait(mock.Anything, mock.Anything).Return(context.Canceled)

		err := b.Start(ctx, ports.StartOptions{})
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, domain.ErrToolchain)
	})
}

// --- Stop ---

func TestBootstrapper_Stop(t *testing.T) {
	t.Parallel()

	t.Run("tears down the environment", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		d.toolchain.EXPECT().Down(mock.Anything).Return(nil).Once()

		require.NoError(t, b.Stop(context.Background()))
		assert.Equal(t, emulator.StateStopped, b.State())
	})

	t.Run("crashed environment is still removed", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		// Started here, then the container exited on its own.
		d.toolchain.EXPECT().Check(mock.Anything).Return(nil)
		d.writer.EXPECT().Write(mock.Anything).Return(nil)
		d.toolchain.EXPECT().Up(mock.Anything, false).Return(nil)
		d.probe.EXPECT().Wait(mock.Anything, mock.Anything).Return(nil)
		require.NoError(t, b.Start(context.Background(), ports.StartOptions{}))

		d.toolchain.EXPECT().Down(mock.Anything).Return(nil).Once()

		require.NoError(t, b.Stop(context.Background()))
		assert.Equal(t, emulator.StateStopped, b.State())
	})

	t.Run("second stop equals the first", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		d.toolchain.EXPECT().Down(mock.Anything).Return(nil).Once()

		require.NoError(t, b.Stop(context.Background()))
		require.NoError(t, b.Stop(context.Background()))
		assert.Equal(t, emulator.StateStopped, b.State())
	})

	t.Run("fresh process with nothing rendered", func(t *testing.T) {
		t.Parallel()

		// Each emuctl down is a new Bootstrapper; the adapter answers a
		// missing compose file with nil.
		for range 2 {
			b, d := newTestBootstrapper(t, firestoreAndUI())
			d.toolchain.EXPECT().Down(mock.Anything).Return(nil).Once()

			require.NoError(t, b.Stop(context.Background()))
			assert.Equal(t, emulator.StateStopped, b.State())
		}
	})

	t.Run("missing binary is a no-op", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		d.toolchain.EXPECT().Down(mock.Anything).Return(&domain.ToolchainError{
			Op: "down", Binary: "docker", ExitCode: -1, Err: domain.ErrBinaryNotFound,
		})

		assert.NoError(t, b.Stop(context.Background()))
	})

	t.Run("down failure propagates", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		d.toolchain.EXPECT().Down(mock.Anything).Return(&domain.ToolchainError{Op: "down", ExitCode: 1})

		err := b.Stop(context.Background())
		assert.ErrorIs(t, err, domain.ErrToolchain)
		assert.Equal(t, emulator.StateNotStarted, b.State())
	})

	t.Run("restart after stop", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		d.toolchain.EXPECT().Down(mock.Anything).Return(nil)
		d.toolchain.EXPECT().Check(mock.Anything).Return(nil)
		d.writer.EXPECT().Write(mock.Anything).Return(nil)
		d.toolchain.EXPECT().Up(mock.Anything, false).Return(nil)
		d.probe.EXPECT().Wait(mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, b.Stop(context.Background()))
		require.NoError(t, b.Start(context.Background(), ports.StartOptions{}))
		assert.Equal(t, emulator.StateRunning, b.State())
	})
}

// --- Logs ---

func TestBootstrapper_Logs(t *testing.T) {
	t.Parallel()

	t.Run("delegates to the toolchain", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		var buf bytes.Buffer
		d.toolchain.EXPECT().Logs(mock.Anything, &buf, true, 50).
			RunAndReturn(func(_ context.Context, w io.Writer, _ bool, _ int) error {
				_, err := io.WriteString(w, "emulators-1 | ready\n")
				return err
			})

		require.NoError(t, b.Logs(context.Background(), &buf, ports.LogOptions{Follow: true, Tail: 50}))
		assert.Equal(t, "emulators-1 | ready\n", buf.String())
	})

	t.Run("negative tail is rejected", func(t *testing.T) {
		t.Parallel()
		b, _ := newTestBootstrapper(t, firestoreAndUI())

		err := b.Logs(context.Background(), io.Discard, ports.LogOptions{Tail: -1})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

// --- Status ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                      { return s.name }
func (s stubChecker) HealthCheck(context.Context) error { return s.err }

func TestBootstrapper_Status(t *testing.T) {
	t.Parallel()

	t.Run("reports containers and checks", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		errDown := errors.New("connection refused")
		containers := []emulator.Container{
			{ID: "abc123", Name: "emulators-emulators-1", Service: "emulators", State: "running", Ports: []int{4000, 8080}},
		}
		d.engine.EXPECT().ListContainers(mock.Anything, "emulators").Return(containers, nil)
		d.engine.EXPECT().Name().Return("docker-daemon")
		d.engine.EXPECT().HealthCheck(mock.Anything).Return(nil)
		d.probe.EXPECT().Checkers(wantEndpoints()).Return([]ports.HealthChecker{
			stubChecker{name: "ui"},
			stubChecker{name: "firestore", err: errDown},
		})

		st, err := b.Status(context.Background())
		require.NoError(t, err)
		assert.Equal(t, emulator.StateRunning, st.State)
		assert.Equal(t, containers, st.Containers)
		require.Len(t, st.Checks, 3)
		assert.NoError(t, st.Checks["docker-daemon"])
		assert.NoError(t, st.Checks["ui"])
		assert.ErrorIs(t, st.Checks["firestore"], errDown)
	})

	t.Run("exited containers mean stopped", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		d.engine.EXPECT().ListContainers(mock.Anything, "emulators").
			Return([]emulator.Container{{ID: "abc123", State: "exited"}}, nil)
		d.engine.EXPECT().Name().Return("docker-daemon")
		d.engine.EXPECT().HealthCheck(mock.Anything).Return(nil)
		d.probe.EXPECT().Checkers(mock.Anything).Return(nil)

		st, err := b.Status(context.Background())
		require.NoError(t, err)
		assert.Equal(t, emulator.StateStopped, st.State)
	})

	t.Run("unreachable engine degrades", func(t *testing.T) {
		t.Parallel()
		b, d := newTestBootstrapper(t, firestoreAndUI())

		errDaemon := errors.New("cannot connect to the docker daemon")
		d.engine.EXPECT().ListContainers(mock.Anything, "emulators").Return(nil, errDaemon)
		d.engine.EXPECT().Name().Return("docker-daemon")
		d.engine.EXPECT().HealthCheck(mock.Anything).Return(errDaemon)
		d.probe.EXPECT().Checkers(mock.Anything).Return(nil)

		st, err := b.Status(context.Background())
		require.NoError(t, err)
		assert.Equal(t, emulator.StateNotStarted, st.State)
		assert.Empty(t, st.Containers)
		assert.ErrorIs(t, st.Checks["docker-daemon"], errDaemon)
	})
}

func TestBootstrapper_HealthCheckers(t *testing.T) {
	t.Parallel()

	b, d := newTestBootstrapper(t, firestoreAndUI())
	ui := stubChecker{name: "ui"}
	fs := stubChecker{name: "firestore"}
	d.probe.EXPECT().Checkers(wantEndpoints()).Return([]ports.HealthChecker{ui, fs})

	checkers := b.HealthCheckers()

	require.Len(t, checkers, 3)
	assert.Same(t, d.engine, checkers[0])
	assert.Equal(t, ui, checkers[1])
	assert.Equal(t, fs, checkers[2])
}

// --- Environment ---

func TestBootstrapper_Environment(t *testing.T) {
	t.Parallel()

	set := emulator.NewSet(
		emulator.Descriptor{Name: "auth", Port: 9099, Enabled: true},
		emulator.Descriptor{Name: "ui", Port: 4000, Enabled: true},
		emulator.Descriptor{Name: "firestore", Port: 8080, Enabled: true},
		emulator.Descriptor{Name: "pubsub", Port: 8085, Enabled: false},
	)
	b, _ := newTestBootstrapper(t, set)

	env := b.Environment()

	require.NoError(t, env.Validate())
	assert.Equal(t, []string{
		"FIRESTORE_EMULATOR_HOST=127.0.0.1:8080",
		"FIREBASE_AUTH_EMULATOR_HOST=127.0.0.1:9099",
		"GCLOUD_PROJECT=demo-project",
		"FIREBASE_PROJECT=demo-project",
	}, env.Environ())
}

func TestObservedState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		containers []emulator.Container
		local      emulator.State
		want       emulator.State
	}{
		{"no containers keeps local", nil, emulator.StateNotStarted, emulator.StateNotStarted},
		{"any running wins", []emulator.Container{{State: "exited"}, {State: "running"}}, emulator.StateStopped, emulator.StateRunning},
		{"all exited", []emulator.Container{{State: "exited"}}, emulator.StateRunning, emulator.StateStopped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, observedState(tt.containers, tt.local))
		})
	}
}
