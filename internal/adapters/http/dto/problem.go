// Package dto provides the JSON bodies of the health and status routes and
// the RFC 9457 problem documents returned when a request fails.
package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/emuctl/internal/domain"
)

// ContentTypeProblem is the media type of a Problem body.
const ContentTypeProblem = "application/problem+json"

const problemTypePrefix = "urn:emuctl:problem:"

// ErrRequestTimeout reports a request that outlived the server's per-request
// deadline.
var ErrRequestTimeout = errors.New("request timed out")

// Problem is an RFC 9457 problem document. Field and Toolchain are extension
// members filled for validation and toolchain failures.
type Problem struct {
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Status    int               `json:"status"`
	Detail    string            `json:"detail,omitempty"`
	Instance  string            `json:"instance,omitempty"`
	Fields    []FieldProblem    `json:"fields,omitempty"`
	Toolchain *ToolchainProblem `json:"toolchain,omitempty"`
}

// FieldProblem names one rejected descriptor field.
type FieldProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ToolchainProblem describes the external command that failed.
type ToolchainProblem struct {
	Op       string `json:"op"`
	Binary   string `json:"binary,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// problemKinds is checked in order; the first sentinel err matches decides
// the status and type. Readiness timeouts wrap ErrToolchain, so they come
// first.
var problemKinds = []struct {
	target error
	status int
	slug   string
}{
	{domain.ErrValidation, http.StatusBadRequest, "validation"},
	{domain.ErrReadinessTimeout, http.StatusGatewayTimeout, "readiness-timeout"},
	{domain.ErrToolchain, http.StatusBadGateway, "toolchain"},
	{domain.ErrConfig, http.StatusInternalServerError, "config"},
	{ErrRequestTimeout, http.StatusGatewayTimeout, "request-timeout"},
}

// NewProblem builds the problem document for err as served at r.
func NewProblem(r *http.Request, err error) Problem {
	p := Problem{
		Type:   "about:blank",
		Status: http.StatusInternalServerError,
		Detail: err.Error(),
	}
	if r != nil {
		p.Instance = r.URL.RequestURI()
	}

	for _, k := range problemKinds {
		if errors.Is(err, k.target) {
			p.Type = problemTypePrefix + k.slug
			p.Status = k.status
			break
		}
	}
	p.Title = http.StatusText(p.Status)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		p.Fields = fieldProblems(verr.Fields)
	}

	var terr *domain.ToolchainError
	if errors.As(err, &terr) {
		p.Toolchain = &ToolchainProblem{Op: terr.Op, Binary: terr.Binary, ExitCode: terr.ExitCode}
	}

	return p
}

// WriteProblem renders err as a problem document.
func WriteProblem(w http.ResponseWriter, r *http.Request, err error) {
	p := NewProblem(r, err)

	w.Header().Set("Content-Type", ContentTypeProblem)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(p.Status)

	if encErr := json.NewEncoder(w).Encode(p); encErr != nil && r != nil {
		slog.ErrorContext(r.Context(), "encoding problem document",
			slog.Any("error", encErr),
			slog.String("type", p.Type),
		)
	}
}

func fieldProblems(fields map[string]string) []FieldProblem {
	out := make([]FieldProblem, 0, len(fields))
	for field, msg := range fields {
		out = append(out, FieldProblem{Field: field, Message: msg})
	}
	slices.SortFunc(out, func(a, b FieldProblem) int {
		return strings.Compare(a.Field, b.Field)
	})
	return out
}
