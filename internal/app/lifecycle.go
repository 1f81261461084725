package app

import (
	"sync"

	"github.com/jsamuelsen11/emuctl/internal/domain/emulator"
)

// lifecycle provides thread-safe access to the environment state. Reads
// (Get) take a shared lock; transitions are serialized.
type lifecycle struct {
	mu    sync.RWMutex
	state emulator.State
}

func newLifecycle() *lifecycle {
	return &lifecycle{state: emulator.StateNotStarted}
}

// Get returns the current state under a read lock.
func (l *lifecycle) Get() emulator.State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Enter moves to next. Entering the current state is a no-op; any other
// transition must be allowed by emulator.State.
func (l *lifecycle) Enter(next emulator.State) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == next {
		return nil
	}
	s, err := l.state.Transition(next)
	if err != nil {
		return err
	}
	l.state = s
	return nil
}
