package emulator

import "fmt"

// State is the lifecycle of the launched environment.
type State string

const (
	StateNotStarted State = "not_started"
	StateRunning    State = "running"
	StateStopped    State = "stopped"
)

// IsValid returns true if the state is one of the defined constants.
func (s State) IsValid() bool {
	switch s {
	case StateNotStarted, StateRunning, StateStopped:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}

// CanTransitionTo reports whether next is reachable from s.
// not_started -> running -> stopped, and stopped -> running on restart.
// A stop from not_started is allowed so that tearing down an environment
// launched by an earlier process works.
func (s State) CanTransitionTo(next State) bool {
	switch s {
	case StateNotStarted:
		return next == StateRunning || next == StateStopped
	case StateRunning:
		return next == StateStopped
	case StateStopped:
		return next == StateRunning
	default:
		return false
	}
}

// Transition returns next, or an error if the transition is not allowed.
func (s State) Transition(next State) (State, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("invalid state transition %s -> %s", s, next)
	}
	return next, nil
}

// Container is a container of the launched environment as reported by the
// container engine.
type Container struct {
	ID      string
	Name    string
	Service string
	State   string
	Status  string
	Ports   []int
}

// IsRunning reports whether the engine considers the container running.
func (c Container) IsRunning() bool {
	return c.State == "running"
}
