package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/emuctl/internal/adapters/http/middleware"
)

func serveRequestID(t *testing.T, incoming string) (string, *httptest.ResponseRecorder) {
	t.Helper()

	var got string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = middleware.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health/ready", http.NoBody)
	if incoming != "" {
		req.Header.Set("X-Request-ID", incoming)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return got, rec
}

func TestRequestID_GeneratesUUIDv4(t *testing.T) {
	t.Parallel()

	got, rec := serveRequestID(t, "")

	parsed, err := uuid.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.Equal(t, got, rec.Header().Get("X-Request-ID"))
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	t.Parallel()

	got, rec := serveRequestID(t, "ci-job-42")

	assert.Equal(t, "ci-job-42", got)
	assert.Equal(t, "ci-job-42", rec.Header().Get("X-Request-ID"))
}

func TestRequestID_ReplacesOversizedIncoming(t *testing.T) {
	t.Parallel()

	got, _ := serveRequestID(t, strings.Repeat("x", 500))

	_, err := uuid.Parse(got)
	assert.NoError(t, err)
}

func TestRequestID_Unique(t *testing.T) {
	t.Parallel()

	ids := make(map[string]bool)
	for range 50 {
		got, _ := serveRequestID(t, "")
		ids[got] = true
	}
	assert.Len(t, ids, 50)
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, middleware.RequestIDFromContext(context.Background()))
	assert.Equal(t, "abc", middleware.RequestIDFromContext(middleware.WithRequestID(context.Background(), "abc")))
}
