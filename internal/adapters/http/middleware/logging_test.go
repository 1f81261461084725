package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen11/emuctl/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/emuctl/internal/platform/logging"
)

func TestLogging_CompletionLine(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.Logging(testLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", http.NoBody))

	out := buf.String()
	assert.Contains(t, out, "request started")
	assert.Contains(t, out, "request completed")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/missing")
	assert.Contains(t, out, "status=404")
	assert.Contains(t, out, "bytes=4")
	assert.Contains(t, out, "duration=")
}

func TestLogging_ServerErrorsAreWarnings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.Logging(testLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/ready", http.NoBody))

	assert.Contains(t, buf.String(), "level=WARN msg=\"request completed\"")
}

func TestLogging_StartLineOnlyAtDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New("info", logging.FormatText, &buf)
	middleware.Logging(logger)(okHandler("ok")).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", http.NoBody))

	assert.NotContains(t, buf.String(), "request started")
	assert.Contains(t, buf.String(), "request completed")
}

func TestLogging_RedactsSensitiveHeaders(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", http.NoBody)
	req.Header.Set("Authorization", "Bearer ya29.secret")

	middleware.Logging(testLogger(&buf))(okHandler("ok")).ServeHTTP(httptest.NewRecorder(), req)

	assert.NotContains(t, buf.String(), "ya29.secret")
	assert.Contains(t, buf.String(), "[REDACTED]")
}

func TestLogging_StoresRequestLoggerInContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := middleware.RequestID()(
		middleware.Logging(testLogger(&buf))(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			logging.FromContext(r.Context()).Info("handler log")
		})),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/env", http.NoBody)
	req.Header.Set("X-Request-ID", "ctx-logger-test")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `msg="handler log" request_id=ctx-logger-test`)
}
