// Package listener dispatches buffer-change notifications to registered
// callbacks, synchronously and in registration order.
package listener

import (
	"errors"
	"sync"
)

// Func receives the full buffer snapshot after a change. It runs on the
// goroutine that mutated the buffer, before further edits are accepted.
// Returning an error tells the caller the recompute failed and any derived
// state was left untouched.
type Func func(buffer string) error

// Handle identifies a registration for later removal.
type Handle int

type registration struct {
	handle Handle
	fn     Func
}

// Registry is an ordered list of change listeners owned by a single
// editing widget instance. Separate widgets hold separate registries, so
// tests and multi-widget hosts never share listener state.
type Registry struct {
	mu   sync.Mutex
	regs []registration
	next Handle
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Add appends fn to the dispatch list and returns a handle for removal.
// Listeners are invoked in registration order.
func (r *Registry) Add(fn Func) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	r.regs = append(r.regs, registration{handle: r.next, fn: fn})
	return r.next
}

// Remove deletes the registration for h. It reports whether a listener was
// actually removed.
func (r *Registry) Remove(h Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, reg := range r.regs {
		if reg.handle == h {
			r.regs = append(r.regs[:i], r.regs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered listeners.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.regs)
}

// Notify runs every listener with the snapshot, in registration order, and
// returns the joined errors. A failing listener does not stop the ones
// after it. Notify must be called by the goroutine that mutated the
// buffer, so listeners always observe a snapshot consistent with the
// triggering mutation.
func (r *Registry) Notify(buffer string) error {
	r.mu.Lock()
	regs := make([]registration, len(r.regs))
	copy(regs, r.regs)
	r.mu.Unlock()

	var errs []error
	for _, reg := range regs {
		if err := reg.fn(buffer); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
