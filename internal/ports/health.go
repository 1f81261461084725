package ports

import "context"

// HealthChecker reports whether one part of the environment is usable. The
// Docker engine and each emulator's readiness probe implement it.
type HealthChecker interface {
	// Name keys the result, e.g. "docker-daemon" or "firestore".
	Name() string
	// HealthCheck returns nil when healthy. It must give up when ctx ends.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry runs a set of checkers together. "emuctl serve" fills it
// with the running environment's checkers and answers /health/ready from it.
type HealthRegistry interface {
	Register(checker HealthChecker)
	// CheckAll maps each checker name to its result; nil means healthy.
	CheckAll(ctx context.Context) map[string]error
}
