package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/emuctl/internal/adapters/http/dto"
	"github.com/jsamuelsen11/emuctl/internal/platform/logging"
	"github.com/jsamuelsen11/emuctl/internal/ports"
)

// StatusHandler exposes the environment status and client variables.
type StatusHandler struct {
	svc ports.Bootstrapper
}

// NewStatusHandler creates a StatusHandler backed by the bootstrapper.
func NewStatusHandler(svc ports.Bootstrapper) *StatusHandler {
	return &StatusHandler{svc: svc}
}

// Status handles GET /api/v1/status.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Status(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "status failed",
			slog.String("operation", "Status"),
			slog.Any("error", err),
		)
		dto.WriteProblem(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToStatusResponse(st))
}

// Env handles GET /api/v1/env.
func (h *StatusHandler) Env(w http.ResponseWriter, _ *http.Request) {
	vars := h.svc.Environment().Variables()
	resp := dto.EnvResponse{Variables: make([]dto.EnvVariable, len(vars))}
	for i, v := range vars {
		resp.Variables[i] = dto.EnvVariable{Name: v.Name, Value: v.Value}
	}
	writeJSON(w, http.StatusOK, resp)
}
