package remote

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	BaseURL     string     `json:"base_url"`
	HasToken    bool       `json:"has_token"`
	Requests    int        `json:"requests"`
	Failures    int        `json:"failures"`
	LastRequest *time.Time `json:"last_request,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state := RepositoryState{
		BaseURL:  r.baseURL,
		HasToken: r.token != "",
		Requests: r.requests,
		Failures: r.failures,
	}
	if !r.last.IsZero() {
		last := r.last
		state.LastRequest = &last
	}
	return state
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "remote-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
