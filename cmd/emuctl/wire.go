package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	nethttp "net/http"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/emuctl/internal/adapters/cli"
	"github.com/jsamuelsen11/emuctl/internal/adapters/compose"
	"github.com/jsamuelsen11/emuctl/internal/adapters/docker"
	"github.com/jsamuelsen11/emuctl/internal/adapters/filesystem"
	adapthttp "github.com/jsamuelsen11/emuctl/internal/adapters/http"
	"github.com/jsamuelsen11/emuctl/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/emuctl/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/emuctl/internal/app"
	"github.com/jsamuelsen11/emuctl/internal/platform/config"
	"github.com/jsamuelsen11/emuctl/internal/platform/health"
	"github.com/jsamuelsen11/emuctl/internal/platform/readiness"
	"github.com/jsamuelsen11/emuctl/internal/platform/telemetry"
	"github.com/jsamuelsen11/emuctl/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newRuntime builds the dependency graph for one invocation.
func newRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger, progress io.Writer) (*cli.Runtime, error) {
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger, progress)

	svc, err := do.Invoke[*app.Bootstrapper](injector)
	if err != nil {
		_ = otel.Shutdown(ctx)
		return nil, fmt.Errorf("resolving bootstrapper: %w", err)
	}
	writer := do.MustInvoke[ports.ArtifactWriter](injector)
	engine := do.MustInvoke[*docker.Engine](injector)

	return &cli.Runtime{
		Config:  cfg,
		Logger:  logger,
		Service: svc,
		Writer:  writer,
		Serve: func(ctx context.Context) error {
			return serve(ctx, injector, svc, logger)
		},
		Close: func(ctx context.Context) error {
			return errors.Join(engine.Close(), otel.Shutdown(ctx))
		},
	}, nil
}

// serve registers the health checkers and runs the HTTP server until ctx
// is canceled.
func serve(ctx context.Context, injector do.Injector, svc *app.Bootstrapper, logger *slog.Logger) error {
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	registry := do.MustInvoke[ports.HealthRegistry](injector)
	for _, c := range svc.HealthCheckers() {
		registry.Register(c)
	}

	logger.InfoContext(ctx, "serving health endpoints", slog.String("addr", server.Addr()))
	return server.Run(ctx)
}

// otelProviders bundles OpenTelemetry provider lifecycle. The providers are
// nil when telemetry is disabled; metrics is then a no-op set.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{metrics: telemetry.NoopMetrics()}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp, cfg.Telemetry.ServiceName)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger, progress io.Writer) {
	do.Provide(injector, func(i do.Injector) (ports.Toolchain, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return compose.New(compose.Settings{
			Binary:      cfg.Toolchain.Binary,
			MinVersion:  cfg.Toolchain.MinVersion,
			ProjectName: cfg.Project.Name,
			ComposeFile: cfg.Toolchain.ComposeFile,
			Dir:         cfg.ProjectDir(),
		}, metrics, logger, compose.WithProgress(progress)), nil
	})

	do.Provide(injector, func(_ do.Injector) (*docker.Engine, error) {
		return docker.New(), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.ArtifactWriter, error) {
		return filesystem.NewWriter(cfg.ProjectDir()), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.ReadinessProbe, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return readiness.New(cfg.Readiness, &cfg.Probe, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.Bootstrapper, error) {
		return app.NewBootstrapper(
			app.BootstrapperConfig{
				Descriptors: cfg.Descriptors(),
				Recipe:      cfg.RecipeOptions(),
				Binary:      cfg.Toolchain.Binary,
				ProbeHost:   cfg.Readiness.Host,
			},
			do.MustInvoke[ports.Toolchain](i),
			do.MustInvoke[*docker.Engine](i),
			do.MustInvoke[ports.ArtifactWriter](i),
			do.MustInvoke[ports.ReadinessProbe](i),
			logger,
		), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.StatusHandler, error) {
		svc := do.MustInvoke[*app.Bootstrapper](i)
		return handlers.NewStatusHandler(svc), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		statusH := do.MustInvoke[*handlers.StatusHandler](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(healthH, statusH,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
