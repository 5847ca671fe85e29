package view

import (
	"fmt"

	"github.com/aretw0/introspection"

	"github.com/aretw0/notehub/pkg/mutation"
	"github.com/aretw0/notehub/pkg/query"
)

// AppState exposes internal state for observability.
type AppState struct {
	FormOpen      bool                      `json:"form_open"`
	Notifications int                       `json:"notifications"`
	List          query.ListState           `json:"list"`
	Mutations     mutation.CoordinatorState `json:"mutations"`
}

// State implements introspection.Introspectable.
func (a *App) State() any {
	s := AppState{
		FormOpen:      a.FormOpen(),
		Notifications: len(a.tray.Active()),
	}
	if ls, ok := a.list.State().(query.ListState); ok {
		s.List = ls
	}
	if ms, ok := a.mutations.State().(mutation.CoordinatorState); ok {
		s.Mutations = ms
	}
	return s
}

// ComponentType implements introspection.Component.
func (a *App) ComponentType() string {
	return "view"
}

var _ introspection.Introspectable = (*App)(nil)
var _ introspection.Component = (*App)(nil)

type node struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []node
}

// Diagram renders the app's components as a Mermaid tree.
func Diagram(s AppState) string {
	// Statuses must be classes known to introspection.DefaultStyles().
	listStatus := "running"
	switch {
	case s.List.Status == query.StatusError.String():
		listStatus = "failed"
	case !s.List.Fetching && !s.List.DebouncePending:
		listStatus = "suspended"
	}
	mutationStatus := func(m mutation.MutationState) string {
		switch m.Status {
		case mutation.StatusPending.String():
			return "running"
		case mutation.StatusError.String():
			return "failed"
		case mutation.StatusSuccess.String():
			return "finished"
		default:
			return "created"
		}
	}

	root := node{
		Name:     "App",
		Status:   "running",
		Metadata: map[string]string{"type": "container", "form": fmt.Sprintf("%t", s.FormOpen)},
		Children: []node{
			{
				Name:   "ListQuery",
				Status: listStatus,
				Metadata: map[string]string{
					"type":    "goroutine",
					"page":    fmt.Sprintf("%d", s.List.Page),
					"search":  s.List.Search,
					"fetches": fmt.Sprintf("%d", s.List.Fetches),
				},
				Children: []node{{
					Name:   "Cache",
					Status: "running",
					Metadata: map[string]string{
						"type":    "container",
						"entries": fmt.Sprintf("%d", s.List.CacheSize),
						"stale":   fmt.Sprintf("%d", s.List.CacheStale),
					},
				}},
			},
			{
				Name:     "CreateMutation",
				Status:   mutationStatus(s.Mutations.Create),
				Metadata: map[string]string{"type": "process", "runs": fmt.Sprintf("%d", s.Mutations.Create.Runs)},
			},
			{
				Name:     "DeleteMutation",
				Status:   mutationStatus(s.Mutations.Delete),
				Metadata: map[string]string{"type": "process", "runs": fmt.Sprintf("%d", s.Mutations.Delete.Runs)},
			},
		},
	}

	config := introspection.DefaultDiagramConfig()
	config.SecondaryID = "notehub"
	config.SecondaryLabel = "NoteHub Client"
	return introspection.TreeDiagram(root, config)
}
