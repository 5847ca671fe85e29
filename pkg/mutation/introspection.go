package mutation

import (
	"github.com/aretw0/introspection"
)

// CoordinatorState exposes internal state for observability.
type CoordinatorState struct {
	Create MutationState `json:"create"`
	Delete MutationState `json:"delete"`
}

// MutationState is the printable form of one mutation.
type MutationState struct {
	Status string `json:"status"`
	Runs   int    `json:"runs"`
	Error  string `json:"error,omitempty"`
}

func describe[T any](s State[T]) MutationState {
	out := MutationState{Status: s.Status.String(), Runs: s.Runs}
	if s.Err != nil {
		out.Error = s.Err.Error()
	}
	return out
}

// State implements introspection.Introspectable.
func (c *Coordinator) State() any {
	return CoordinatorState{
		Create: describe(c.create.Snapshot()),
		Delete: describe(c.remove.Snapshot()),
	}
}

// ComponentType implements introspection.Component.
func (c *Coordinator) ComponentType() string {
	return "mutation-coordinator"
}

var _ introspection.Introspectable = (*Coordinator)(nil)
var _ introspection.Component = (*Coordinator)(nil)
