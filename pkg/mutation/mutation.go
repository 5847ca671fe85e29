// Package mutation runs create/delete against the API and keeps the list
// cache honest afterwards.
package mutation

import (
	"context"
	"sync"
	"time"
)

// Status is the state of one mutation.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// State is a snapshot of a mutation.
type State[T any] struct {
	Status    Status
	Result    T
	Err       error
	Runs      int
	UpdatedAt time.Time
}

// Mutation is a single {idle, pending, success, error} state machine.
// A failed run leaves the previous Result in place.
type Mutation[T any] struct {
	mu    sync.Mutex
	state State[T]
}

// Run executes fn, moving through pending to success or error.
func (m *Mutation[T]) Run(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	m.mu.Lock()
	m.state.Status = StatusPending
	m.state.Err = nil
	m.state.Runs++
	m.state.UpdatedAt = time.Now()
	m.mu.Unlock()

	result, err := fn(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.UpdatedAt = time.Now()
	if err != nil {
		m.state.Status = StatusError
		m.state.Err = err
		return result, err
	}
	m.state.Status = StatusSuccess
	m.state.Result = result
	return result, nil
}

// Snapshot returns the current state.
func (m *Mutation[T]) Snapshot() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Reset returns the mutation to idle.
func (m *Mutation[T]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State[T]{}
}
