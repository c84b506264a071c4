// Package ack tracks whether the notification published by the health probe
// has been acknowledged by its consumer.
package ack

import "sync"

// Status is the acknowledgement state reported by the status endpoint.
type Status string

const (
	// StatusWaiting is the state at process start.
	StatusWaiting Status = "waiting on acknowledgement"
	// StatusConsumed is the state after the first acknowledgement.
	StatusConsumed Status = "consumed"
)

// String returns the status text.
func (s Status) String() string {
	return string(s)
}

// State holds the acknowledgement status for a single server instance.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - The transition waiting -> consumed happens at most once and never reverses.
type State struct {
	mu     sync.RWMutex
	status Status
}

// New creates a State waiting on acknowledgement.
func New() *State {
	return &State{status: StatusWaiting}
}

// Status returns the current status.
func (s *State) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status
}

// Acknowledge marks the notification as consumed.
// It reports true only for the call that performed the transition.
func (s *State) Acknowledge() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusConsumed {
		return false
	}
	s.status = StatusConsumed
	return true
}
