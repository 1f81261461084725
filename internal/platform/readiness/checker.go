package readiness

import (
	"context"

	"github.com/jsamuelsen11/emuctl/internal/ports"
)

// Compile-time interface check.
var _ ports.HealthChecker = (*Checker)(nil)

// Checker is a single-shot probe of one endpoint, registered in the health
// registry under the service name.
type Checker struct {
	endpoint ports.Endpoint
	check    func(context.Context) error
}

// Checker returns a health checker that probes ep once per call, the same
// way Wait does.
func (w *Waiter) Checker(ep ports.Endpoint) *Checker {
	return &Checker{endpoint: ep, check: w.checkFor(ep)}
}

// Checkers returns one Checker per endpoint.
func (w *Waiter) Checkers(endpoints []ports.Endpoint) []ports.HealthChecker {
	out := make([]ports.HealthChecker, 0, len(endpoints))
	for _, ep := range endpoints {
		out = append(out, w.Checker(ep))
	}
	return out
}

// Name returns the service name.
func (c *Checker) Name() string {
	return c.endpoint.Service
}

// HealthCheck probes the endpoint once.
func (c *Checker) HealthCheck(ctx context.Context) error {
	return c.check(ctx)
}
