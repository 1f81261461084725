// Package handlers holds the HTTP handlers served by "emuctl serve".
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jsamuelsen11/emuctl/internal/adapters/http/dto"
	"github.com/jsamuelsen11/emuctl/internal/platform/logging"
	"github.com/jsamuelsen11/emuctl/internal/ports"
)

// readinessRetryAfter is the Retry-After hint, in seconds, sent while the
// environment is not ready. Emulators usually come up within a few polls.
const readinessRetryAfter = 2

// HealthHandler answers the liveness and readiness routes from the health
// registry the server was wired with.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler returns a HealthHandler reading registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. It only reports that the server is up
// and never touches the registry.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	noStore(w)
	writeJSON(w, http.StatusOK, dto.HealthResponse{Status: dto.HealthLive})
}

// Readiness handles GET /health/ready: 200 once the Docker daemon and every
// enabled emulator answer, otherwise 503 with a Retry-After hint.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := dto.ToReadinessResponse(h.registry.CheckAll(r.Context()))

	noStore(w)
	if resp.Status != dto.HealthReady {
		logging.FromContext(r.Context()).DebugContext(r.Context(), "environment not ready",
			slog.String("failing", strings.Join(resp.Failing, ",")),
		)
		w.Header().Set("Retry-After", strconv.Itoa(readinessRetryAfter))
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// noStore keeps polling clients and proxies from caching health answers.
func noStore(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
}
