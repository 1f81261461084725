package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/emuctl/internal/platform/httpclient"
)

const headerRequestID = "X-Request-ID"

// maxRequestIDLen bounds caller-supplied IDs so they cannot bloat logs.
const maxRequestIDLen = 128

type requestIDKey struct{}

// WithRequestID returns a new context carrying id. The ID is also stored as
// the outbound run ID, so probes made while serving the request carry it in
// their X-Run-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey{}, id)
	return httpclient.WithRunID(ctx, id)
}

// RequestIDFromContext extracts the request ID from the context.
// Returns an empty string if no request ID is stored.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestID returns middleware that reuses the incoming X-Request-ID header
// or generates a UUID v4, stores it in the request context and echoes it in
// the response header.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(headerRequestID)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
			}
			ctx := WithRequestID(r.Context(), id)
			w.Header().Set(headerRequestID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
