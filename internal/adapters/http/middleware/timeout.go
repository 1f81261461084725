package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"maps"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/jsamuelsen11/emuctl/internal/adapters/http/dto"
	"github.com/jsamuelsen11/emuctl/internal/platform/logging"
)

// Timeout bounds each request to d. Health checks against a hung emulator
// see the deadline through the request context. A handler still running at
// the deadline is abandoned: the client gets a 504 problem document and
// anything the handler writes afterwards is dropped.
//
// The handler runs on its own goroutine. A panic there is re-raised on the
// serving goroutine so Recovery handles it.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			r = r.WithContext(ctx)

			buf := &bufferedResponse{header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan handlerPanic, 1)

			go func() {
				defer func() {
					if v := recover(); v != nil {
						panicked <- handlerPanic{value: v, stack: debug.Stack()}
					}
				}()
				next.ServeHTTP(buf, r)
				close(done)
			}()

			expire := func() {
				buf.abandon()
				logging.FromContext(ctx).WarnContext(ctx, "request deadline exceeded",
					slog.String("path", r.URL.Path),
					slog.Duration("timeout", d),
				)
				dto.WriteProblem(w, r, dto.ErrRequestTimeout)
			}

			select {
			case <-done:
				// A handler that gave up on the deadline without answering
				// is treated as timed out.
				if ctx.Err() != nil && !buf.started() {
					expire()
					return
				}
				buf.copyTo(w)
			case p := <-panicked:
				panic(p)
			case <-ctx.Done():
				expire()
			}
		})
	}
}

// bufferedResponse holds the handler's response until Timeout decides who
// answers the client.
type bufferedResponse struct {
	header http.Header

	mu        sync.Mutex
	status    int
	body      bytes.Buffer
	abandoned bool
}

// Header is only touched by the handler goroutine until copyTo runs.
func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(code int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status == 0 && !b.abandoned {
		b.status = code
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.abandoned {
		return 0, http.ErrHandlerTimeout
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) started() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status != 0
}

func (b *bufferedResponse) abandon() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.abandoned = true
}

func (b *bufferedResponse) copyTo(w http.ResponseWriter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	maps.Copy(w.Header(), b.header)
	if b.status != 0 {
		w.WriteHeader(b.status)
	}
	_, _ = w.Write(b.body.Bytes())
}
