package ui

import (
	"context"

	"github.com/five82/crumb/internal/state"
)

// screenRequest pairs a screen's request state with the cancel func of the
// fetch currently serving it. Model holds it by pointer so copies of the
// model share one request.
type screenRequest[T any] struct {
	req    state.Request[T]
	cancel context.CancelFunc
}

// begin cancels any in-flight fetch and starts a new one derived from parent.
func (s *screenRequest[T]) begin(parent context.Context) (context.Context, state.Ticket) {
	s.release()
	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx, s.req.Begin()
}

// resolve applies a fetch result. Stale results are dropped.
func (s *screenRequest[T]) resolve(ticket state.Ticket, value T, err error) bool {
	if !s.req.Resolve(ticket, value, err) {
		return false
	}
	s.release()
	return true
}

// stop aborts the in-flight fetch and returns the request to idle.
func (s *screenRequest[T]) stop() {
	s.release()
	s.req.Cancel()
}

func (s *screenRequest[T]) release() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *screenRequest[T]) snapshot() state.Snapshot[T] {
	return s.req.Snapshot()
}
