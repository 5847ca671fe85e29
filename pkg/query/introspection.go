package query

import (
	"github.com/aretw0/introspection"
)

// ListState exposes internal state for observability.
type ListState struct {
	Page            int    `json:"page"`
	Search          string `json:"search"`
	Input           string `json:"input"`
	Status          string `json:"status"`
	Fetching        bool   `json:"fetching"`
	Placeholder     bool   `json:"placeholder"`
	Fetches         int    `json:"fetches"`
	Superseded      int    `json:"superseded"`
	DebouncePending bool   `json:"debounce_pending"`
	CacheSize       int    `json:"cache_size"`
	CacheStale      int    `json:"cache_stale"`
}

// State implements introspection.Introspectable.
func (q *ListQuery) State() any {
	q.mu.Lock()
	s := ListState{
		Page:        q.state.Key.Page,
		Search:      q.state.Key.Search,
		Input:       q.input,
		Status:      q.state.Status.String(),
		Fetching:    q.state.Fetching,
		Placeholder: q.state.Placeholder,
		Fetches:     q.fetches,
		Superseded:  q.superseded,
	}
	q.mu.Unlock()

	s.DebouncePending = q.debounce.Pending()
	s.CacheSize = q.cache.Len()
	s.CacheStale = q.cache.StaleCount()
	return s
}

// ComponentType implements introspection.Component.
func (q *ListQuery) ComponentType() string {
	return "list-query"
}

var _ introspection.Introspectable = (*ListQuery)(nil)
var _ introspection.Component = (*ListQuery)(nil)
