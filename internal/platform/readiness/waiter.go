// Package readiness waits for launched emulators to accept connections.
//
// Endpoints are probed one after another in the order given. Each endpoint
// is retried with exponential backoff and jitter until it answers or the
// shared deadline elapses. Plain endpoints must accept a TCP connection;
// endpoints with an HTTP path must answer a GET with a non-5xx status.
package readiness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/emuctl/internal/domain"
	"github.com/jsamuelsen11/emuctl/internal/platform/config"
	"github.com/jsamuelsen11/emuctl/internal/platform/httpclient"
	"github.com/jsamuelsen11/emuctl/internal/platform/logging"
	"github.com/jsamuelsen11/emuctl/internal/platform/telemetry"
	"github.com/jsamuelsen11/emuctl/internal/ports"
)

// Compile-time interface check.
var _ ports.ReadinessProbe = (*Waiter)(nil)

const (
	probeTCP  = "tcp"
	probeHTTP = "http"
)

// errDeadline is the cancel cause of the waiter's own deadline. It tells a
// timeout apart from the caller canceling.
var errDeadline = errors.New("readiness deadline elapsed")

// HTTPProber issues a GET and returns the status code.
// Satisfied by *httpclient.Client.
type HTTPProber interface {
	Probe(ctx context.Context, url string) (int, error)
}

// Waiter implements [ports.ReadinessProbe].
type Waiter struct {
	timeout     time.Duration
	dialTimeout time.Duration
	policy      httpclient.Policy
	dial        func(ctx context.Context, network, address string) (net.Conn, error)
	newHTTP     func(service string) HTTPProber
	metrics     *telemetry.Metrics
	logger      *slog.Logger
}

// Option configures a Waiter.
type Option func(*Waiter)

// WithDialFunc replaces the TCP dialer.
func WithDialFunc(dial func(ctx context.Context, network, address string) (net.Conn, error)) Option {
	return func(w *Waiter) {
		w.dial = dial
	}
}

// WithHTTPProber replaces the factory of per-service HTTP probers.
func WithHTTPProber(factory func(service string) HTTPProber) Option {
	return func(w *Waiter) {
		w.newHTTP = factory
	}
}

// New creates a Waiter from the readiness policy and the HTTP probe client
// settings. metrics may be nil.
func New(cfg config.ReadinessConfig, probe *config.ClientConfig, metrics *telemetry.Metrics, logger *slog.Logger, opts ...Option) *Waiter {
	if metrics == nil {
		metrics = telemetry.NoopMetrics()
	}

	w := &Waiter{
		timeout:     cfg.Timeout,
		dialTimeout: cfg.DialTimeout,
		policy: httpclient.Policy{
			InitialInterval: cfg.InitialInterval,
			MaxInterval:     cfg.MaxInterval,
			Multiplier:      cfg.Multiplier,
		},
		metrics: metrics,
		logger:  logger,
	}

	dialer := &net.Dialer{Timeout: cfg.DialTimeout}
	w.dial = dialer.DialContext

	w.newHTTP = func(service string) HTTPProber {
		return httpclient.New(probe, service, metrics, logger)
	}

	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Wait blocks until every endpoint is ready. On timeout it returns an error
// wrapping domain.ErrReadinessTimeout that names the first endpoint not
// ready; if ctx is canceled first it returns ctx's error.
func (w *Waiter) Wait(ctx context.Context, endpoints []ports.Endpoint) error {
	start := time.Now()

	ctx, span := otel.Tracer(telemetry.InstrumentationName).Start(ctx, "readiness.Wait",
		trace.WithAttributes(attribute.Int("endpoints", len(endpoints))))
	defer span.End()

	ctx, cancel := context.WithTimeoutCause(ctx, w.timeout, errDeadline)
	defer cancel()

	for _, ep := range endpoints {
		if err := w.waitOne(ctx, ep); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	w.metrics.ReadinessDuration.Record(ctx, time.Since(start).Seconds())
	logging.FromContext(ctx).InfoContext(ctx, "all emulators ready",
		slog.Int("endpoints", len(endpoints)),
		slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return nil
}

// waitOne probes ep until it answers or ctx ends.
func (w *Waiter) waitOne(ctx context.Context, ep ports.Endpoint) error {
	check := w.checkFor(ep)
	logger := logging.FromContext(ctx).With(
		slog.String("service", ep.Service),
		slog.Int("port", ep.Port),
	)

	var lastErr error
	for attempt := 1; ; attempt++ {
		lastErr = check(ctx)
		w.recordAttempt(ctx, ep, lastErr)
		if lastErr == nil {
			logger.DebugContext(ctx, "emulator ready", slog.Int("attempts", attempt))
			return nil
		}

		delay := w.policy.Delay(attempt)
		logger.DebugContext(ctx, "emulator not ready",
			slog.Int("attempt", attempt),
			slog.Duration("backoff", delay),
			slog.Any("error", lastErr),
		)

		if err := httpclient.Sleep(ctx, delay); err != nil {
			return w.stopped(ctx, ep, lastErr)
		}
	}
}

// stopped classifies why waiting ended: our own deadline is a readiness
// timeout, anything else is the caller's cancellation.
func (w *Waiter) stopped(ctx context.Context, ep ports.Endpoint, lastErr error) error {
	if errors.Is(context.Cause(ctx), errDeadline) {
		return fmt.Errorf("%w: %s not ready on %s after %s: %w",
			domain.ErrReadinessTimeout, ep.Service, address(ep), w.timeout, lastErr)
	}
	return ctx.Err()
}

func (w *Waiter) checkFor(ep ports.Endpoint) func(context.Context) error {
	if ep.HTTPPath != "" {
		prober := w.newHTTP(ep.Service)
		url := "http://" + address(ep) + ep.HTTPPath
		return func(ctx context.Context) error {
			return probeHTTPStatus(ctx, prober, url)
		}
	}
	return func(ctx context.Context) error {
		return w.probeTCP(ctx, address(ep))
	}
}

func (w *Waiter) probeTCP(ctx context.Context, addr string) error {
	if w.dialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.dialTimeout)
		defer cancel()
	}
	conn, err := w.dial(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return conn.Close()
}

func probeHTTPStatus(ctx context.Context, prober HTTPProber, url string) error {
	status, err := prober.Probe(ctx, url)
	if err != nil {
		return err
	}
	if status >= http.StatusInternalServerError {
		return fmt.Errorf("GET %s: HTTP %d", url, status)
	}
	return nil
}

func (w *Waiter) recordAttempt(ctx context.Context, ep ports.Endpoint, err error) {
	kind := probeTCP
	if ep.HTTPPath != "" {
		kind = probeHTTP
	}
	result := "ready"
	if err != nil {
		result = "not_ready"
	}
	w.metrics.ProbeAttemptTotal.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrService.String(ep.Service),
		telemetry.AttrProbe.String(kind),
		telemetry.AttrResult.String(result),
	))
}

func address(ep ports.Endpoint) string {
	return net.JoinHostPort(ep.Host, strconv.Itoa(ep.Port))
}
