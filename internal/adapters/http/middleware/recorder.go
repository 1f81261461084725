// Package middleware provides the inbound request pipeline of "emuctl serve".
// The router registers them with chi's Use in this order:
//
//	Recovery, RequestID, OpenTelemetry, Logging, Timeout
package middleware

import "net/http"

// statusRecorder remembers what the handler sent. Stacked middleware share
// one recorder, so the status Logging reports is the one OpenTelemetry saw.
type statusRecorder struct {
	http.ResponseWriter
	status int // zero until the header is sent
	bytes  int64
}

func record(w http.ResponseWriter) *statusRecorder {
	if sr, ok := w.(*statusRecorder); ok {
		return sr
	}
	return &statusRecorder{ResponseWriter: w}
}

func (sr *statusRecorder) WriteHeader(code int) {
	if sr.status != 0 {
		return
	}
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += int64(n)
	return n, err
}

// Status reports the response code, 200 if the handler never wrote.
func (sr *statusRecorder) Status() int {
	if sr.status == 0 {
		return http.StatusOK
	}
	return sr.status
}

func (sr *statusRecorder) committed() bool {
	return sr.status != 0
}

// Unwrap lets http.ResponseController reach the connection's writer.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}
