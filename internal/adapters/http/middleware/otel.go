package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/emuctl/internal/platform/telemetry"
)

// Attribute keys follow the stable HTTP semantic conventions.
const (
	attrRequestMethod = attribute.Key("http.request.method")
	attrURLPath       = attribute.Key("url.path")
	attrRoute         = attribute.Key("http.route")
	attrStatusCode    = attribute.Key("http.response.status_code")
	attrBodySize      = attribute.Key("http.response.body.size")
)

// OpenTelemetry starts a server span per request, continuing any W3C trace
// context in the headers, and records the server request instruments. The
// span is renamed to "METHOD /route/{pattern}" once chi has matched, which
// keeps span names bounded. A nil metrics skips the instruments.
func OpenTelemetry(metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	tracer := otel.GetTracerProvider().Tracer(telemetry.InstrumentationName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attrRequestMethod.String(r.Method),
					attrURLPath.String(r.URL.Path),
				),
			)
			defer span.End()

			sr := record(w)
			r = r.WithContext(ctx)
			next.ServeHTTP(sr, r)

			if pattern := routePattern(r); pattern != "" {
				span.SetName(r.Method + " " + pattern)
				span.SetAttributes(attrRoute.String(pattern))
			}

			status := sr.Status()
			span.SetAttributes(
				attrStatusCode.Int(status),
				attrBodySize.Int64(sr.bytes),
			)
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			recordServerMetrics(ctx, metrics, r.Method, time.Since(start), status)
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}

func recordServerMetrics(ctx context.Context, metrics *telemetry.Metrics, method string, elapsed time.Duration, status int) {
	if metrics == nil {
		return
	}

	result := "success"
	if status >= http.StatusBadRequest {
		result = "error"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(status),
		telemetry.AttrResult.String(result),
	)
	metrics.ServerRequestDuration.Record(ctx, elapsed.Seconds(), attrs)
	metrics.ServerRequestTotal.Add(ctx, 1, attrs)
}
