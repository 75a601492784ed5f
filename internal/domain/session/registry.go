// Package session tracks which user ids currently hold a live connection,
// enforcing at most one active session per user.
package session

import (
	"sync"

	errs "github.com/flatbank/flatbank/internal/domain/error"
)

// Registry is a mutex-guarded set of logged-in user ids with a fixed
// capacity. It is owned by the server and injected into the auth flow.
type Registry struct {
	mu       sync.Mutex
	capacity int
	active   map[uint32]struct{}
}

// NewRegistry creates a registry admitting at most capacity concurrent
// sessions.
func NewRegistry(capacity int) *Registry {
	return &Registry{
		capacity: capacity,
		active:   make(map[uint32]struct{}),
	}
}

// TryAcquire claims a session slot for the user. Checking and claiming is
// one atomic step, so two racing logins for the same user can never both
// succeed. Returns ErrAlreadyLoggedIn when the user holds a session and
// ErrSessionsFull at capacity.
func (r *Registry) TryAcquire(userID uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.active[userID]; ok {
		return errs.ErrAlreadyLoggedIn
	}
	if len(r.active) >= r.capacity {
		return errs.ErrSessionsFull
	}
	r.active[userID] = struct{}{}
	return nil
}

// Release frees the user's session slot. Releasing an absent id is a no-op;
// logout and abnormal disconnect both call this.
func (r *Registry) Release(userID uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, userID)
}

// ActiveCount returns the number of live sessions.
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}
