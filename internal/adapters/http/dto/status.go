package dto

import (
	"sort"

	"github.com/jsamuelsen11/emuctl/internal/ports"
)

// CheckOK is the value of a passing health check.
const CheckOK = "ok"

// StatusResponse is the body of GET /api/v1/status.
type StatusResponse struct {
	State      string              `json:"state"`
	Healthy    bool                `json:"healthy"`
	Containers []ContainerResponse `json:"containers"`
	Checks     map[string]string   `json:"checks"`
}

// ContainerResponse is one container of the environment.
type ContainerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Service string `json:"service"`
	State   string `json:"state"`
	Status  string `json:"status,omitempty"`
	Ports   []int  `json:"ports"`
}

// EnvResponse is the body of GET /api/v1/env: the client variables in the
// order they must be applied.
type EnvResponse struct {
	Variables []EnvVariable `json:"variables"`
}

// EnvVariable is one client environment variable.
type EnvVariable struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Health states reported by the /health routes.
const (
	HealthLive     = "live"
	HealthReady    = "ready"
	HealthNotReady = "not_ready"
)

// HealthResponse is the body of GET /health/live and GET /health/ready.
// Failing lists the names of failed checks in sorted order.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Failing []string          `json:"failing,omitempty"`
}

// ToReadinessResponse summarises health results for the readiness route.
func ToReadinessResponse(results map[string]error) HealthResponse {
	checks, healthy := CheckResults(results)
	resp := HealthResponse{Status: HealthReady, Checks: checks}
	if healthy {
		return resp
	}

	resp.Status = HealthNotReady
	for name, err := range results {
		if err != nil {
			resp.Failing = append(resp.Failing, name)
		}
	}
	sort.Strings(resp.Failing)
	return resp
}

// CheckResults renders health results as "ok" or the error text.
// It also reports whether every check passed.
func CheckResults(results map[string]error) (map[string]string, bool) {
	checks := make(map[string]string, len(results))
	healthy := true
	for name, err := range results {
		if err != nil {
			checks[name] = err.Error()
			healthy = false
			continue
		}
		checks[name] = CheckOK
	}
	return checks, healthy
}

// ToStatusResponse converts a status snapshot to its HTTP body.
func ToStatusResponse(st *ports.Status) StatusResponse {
	checks, healthy := CheckResults(st.Checks)

	containers := make([]ContainerResponse, len(st.Containers))
	for i, c := range st.Containers {
		published := c.Ports
		if published == nil {
			published = []int{}
		}
		containers[i] = ContainerResponse{
			ID:      c.ID,
			Name:    c.Name,
			Service: c.Service,
			State:   c.State,
			Status:  c.Status,
			Ports:   published,
		}
	}
	sort.Slice(containers, func(i, j int) bool {
		return containers[i].Name < containers[j].Name
	})

	return StatusResponse{
		State:      st.State.String(),
		Healthy:    healthy,
		Containers: containers,
		Checks:     checks,
	}
}
