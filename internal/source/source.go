package source

import (
	"context"
	"sync"

	"github.com/oshokin/status-blinker/internal/domain/device"
)

// Source returns the device conditions for the current tick.
type Source interface {
	Snapshot(ctx context.Context) (device.State, error)
}

// Store is a settable, concurrency-safe device state.
type Store struct {
	// state is the latest known device state.
	state device.State
	// mu protects state.
	mu sync.RWMutex
}

// NewStore returns a Store holding initial.
func NewStore(initial device.State) *Store {
	return &Store{
		state: initial,
	}
}

// Set replaces the whole state.
func (s *Store) Set(state device.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
}

// Update applies fn to the state under the lock and returns the result.
func (s *Store) Update(fn func(*device.State)) device.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)

	return s.state
}

// Snapshot implements Source.
func (s *Store) Snapshot(context.Context) (device.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state, nil
}
