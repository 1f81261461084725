package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/emuctl/internal/platform/logging"
)

// Logging returns middleware that logs request completion. It derives a
// child logger carrying the request ID, stores it via logging.WithLogger for
// the handlers, and logs method, path, status and duration. Probe traffic
// from CI polling loops is frequent, so the start line is debug only.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			child := logger.With(slog.String("request_id", RequestIDFromContext(ctx)))
			ctx = logging.WithLogger(ctx, child)

			if child.Enabled(ctx, slog.LevelDebug) {
				args := []any{
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				}
				for _, a := range RedactHeaders(r.Header) {
					args = append(args, a)
				}
				child.DebugContext(ctx, "request started", args...)
			}

			sr := record(w)
			next.ServeHTTP(sr, r.WithContext(ctx))

			status := sr.Status()
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			child.Log(ctx, level, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int64("bytes", sr.bytes),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
