package studio

import "context"

// StateRepository loads and saves the whole application document.
// There is no partial update protocol: Save always replaces the stored document.
type StateRepository interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
}

// StateStore holds the live snapshot shared by every request.
type StateStore interface {
	// Snapshot returns the current state. Callers must not modify its slices in place.
	Snapshot() State

	// Update runs fn against the current state and swaps in the returned state.
	// Writers are serialised; a non-nil error leaves the state untouched.
	Update(fn func(State) (State, error)) (State, error)
}
