package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle position of a screen's request.
type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Failed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Ticket identifies one issued request. Only the ticket of the most recent
// Begin can resolve the request.
type Ticket struct {
	Generation uint64
	ID         string // correlation id for logs
}

// Snapshot is a copy of a request's state at a point in time.
type Snapshot[T any] struct {
	Status    Status
	Value     T
	Err       error
	Ticket    Ticket
	StartedAt time.Time
	UpdatedAt time.Time
}

// Elapsed returns how long the request took, or has been running.
func (s Snapshot[T]) Elapsed() time.Duration {
	if s.StartedAt.IsZero() {
		return 0
	}
	if s.Status == Loading || s.UpdatedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.UpdatedAt.Sub(s.StartedAt)
}

// Request holds the state of the single outstanding request a screen may have.
// The zero value is Idle and ready to use.
type Request[T any] struct {
	mu         sync.RWMutex
	generation uint64
	snapshot   Snapshot[T]
}

// Begin moves the request to Loading and returns the ticket the eventual
// result must present. Any earlier ticket becomes stale.
func (r *Request[T]) Begin() Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	ticket := Ticket{Generation: r.generation, ID: uuid.NewString()}
	var zero T
	r.snapshot = Snapshot[T]{
		Status:    Loading,
		Value:     zero,
		Ticket:    ticket,
		StartedAt: time.Now(),
	}
	return ticket
}

// Resolve records the outcome for ticket. It returns false, leaving the state
// untouched, when the ticket is stale or the request was cancelled.
func (r *Request[T]) Resolve(ticket Ticket, value T, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ticket.Generation != r.generation || r.snapshot.Status != Loading {
		return false
	}
	r.snapshot.UpdatedAt = time.Now()
	if err != nil {
		var zero T
		r.snapshot.Status = Failed
		r.snapshot.Value = zero
		r.snapshot.Err = err
		return true
	}
	r.snapshot.Status = Loaded
	r.snapshot.Value = value
	r.snapshot.Err = nil
	return true
}

// Cancel returns the request to Idle and invalidates any outstanding ticket.
func (r *Request[T]) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.generation++
	r.snapshot = Snapshot[T]{}
}

// Current reports whether ticket belongs to the in-flight request.
func (r *Request[T]) Current(ticket Ticket) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return ticket.Generation == r.generation && r.snapshot.Status == Loading
}

// Snapshot returns a copy of the current state.
func (r *Request[T]) Snapshot() Snapshot[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}
