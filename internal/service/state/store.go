package state

import (
	"sync"

	"github.com/lovelys-studio/backoffice/internal/domain/studio"
)

// Store holds the current application snapshot. Updates are serialised and must
// build a new value instead of writing into the slices of the old one, so a
// snapshot handed to a reader never changes underneath it.
type Store struct {
	mu        sync.RWMutex
	state     studio.State
	listeners []func(studio.State)
}

func NewStore(initial studio.State) *Store {
	return &Store{state: initial}
}

// OnChange registers a listener called with every accepted snapshot, while the
// write lock is held. Listeners must not block.
func (s *Store) OnChange(fn func(studio.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot implements studio.StateStore.
func (s *Store) Snapshot() studio.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Update implements studio.StateStore. When fn fails the current state is kept.
func (s *Store) Update(fn func(studio.State) (studio.State, error)) (studio.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state)
	if err != nil {
		return s.state, err
	}
	s.state = next

	for _, l := range s.listeners {
		l(next)
	}
	return next, nil
}
