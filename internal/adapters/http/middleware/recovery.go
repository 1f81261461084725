package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jsamuelsen11/emuctl/internal/adapters/http/dto"
)

// errInternalServer is all a client sees of a recovered panic.
var errInternalServer = errors.New("internal server error")

// handlerPanic carries a panic out of the goroutine it happened in, with
// that goroutine's stack.
type handlerPanic struct {
	value any
	stack []byte
}

// Recovery turns a handler panic into a 500 problem response and an error
// log with the stack. When the status line is already out only the log is
// written. http.ErrAbortHandler is re-raised so net/http aborts the
// connection quietly.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sr := record(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				stack := debug.Stack()
				if hp, ok := v.(handlerPanic); ok {
					v, stack = hp.value, hp.stack
				}
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("request_id", RequestIDFromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(stack)),
				)

				if !sr.committed() {
					dto.WriteProblem(sr, r, errInternalServer)
				}
			}()

			next.ServeHTTP(sr, r)
		})
	}
}
