// Package view composes the note list, the creation form and the
// notifications into one screen and drives it from user events.
package view

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/notehub/pkg/core"
	"github.com/aretw0/notehub/pkg/form"
	"github.com/aretw0/notehub/pkg/mutation"
	"github.com/aretw0/notehub/pkg/notify"
	"github.com/aretw0/notehub/pkg/query"
)

// ErrFormClosed is returned by form events while the form is not open.
var ErrFormClosed = errors.New("create form is not open")

// App is the top level of the view. Every method is an event.
type App struct {
	list      *query.ListQuery
	mutations *mutation.Coordinator
	form      *form.Form
	tray      *notify.Tray

	mu       sync.Mutex
	formOpen bool
}

// NewApp wires the view. The form closes itself after a successful create.
// tray should be the notifier the coordinator reports to; nil gets an
// empty one.
func NewApp(list *query.ListQuery, mutations *mutation.Coordinator, tray *notify.Tray) *App {
	if tray == nil {
		tray = notify.NewTray(notify.DefaultTTL, nil)
	}
	a := &App{
		list:      list,
		mutations: mutations,
		form:      form.New(),
		tray:      tray,
	}
	mutations.OnCreated(func(core.Note) { a.CloseForm() })
	return a
}

// Start begins loading the list.
func (a *App) Start(ctx context.Context) { a.list.Start(ctx) }

// Close stops the list query.
func (a *App) Close() { a.list.Close() }

// Search changes the search text. The page resets to 1.
func (a *App) Search(text string) { a.list.SetSearch(text) }

// GoTo selects a page.
func (a *App) GoTo(page int) error { return a.list.SetPage(page) }

func (a *App) Next() bool { return a.list.Next() }

func (a *App) Prev() bool { return a.list.Prev() }

// Refresh refetches the current page.
func (a *App) Refresh() { a.list.Refetch() }

// OpenForm shows the creation form.
func (a *App) OpenForm() {
	a.mu.Lock()
	a.formOpen = true
	a.mu.Unlock()
}

// CloseForm hides the creation form and discards what was typed.
func (a *App) CloseForm() {
	a.mu.Lock()
	open := a.formOpen
	a.formOpen = false
	a.mu.Unlock()

	if open {
		a.form.Reset()
	}
}

// FormOpen reports whether the creation form is shown.
func (a *App) FormOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.formOpen
}

// SetField types value into a form field and leaves it, which validates it.
func (a *App) SetField(field, value string) error {
	if !a.FormOpen() {
		return ErrFormClosed
	}
	if err := a.form.Set(field, value); err != nil {
		return err
	}
	a.form.Blur(field)
	return nil
}

// Submit validates the form and creates the note.
func (a *App) Submit(ctx context.Context) (core.Note, error) {
	if !a.FormOpen() {
		return core.Note{}, ErrFormClosed
	}
	return a.form.Submit(ctx, a.mutations)
}

// Delete removes a note by id.
func (a *App) Delete(ctx context.Context, id string) (core.Note, error) {
	return a.mutations.Delete(ctx, id)
}

// OnChange calls fn whenever the list state changes.
func (a *App) OnChange(fn func()) (unsubscribe func()) {
	return a.list.OnChange(func(query.State) { fn() })
}

// Screen assembles the current view model.
func (a *App) Screen() Screen {
	list := a.list.Snapshot()
	s := Screen{
		Search:        list.Input,
		List:          list,
		FormOpen:      a.FormOpen(),
		Creating:      a.mutations.CreateState().Status == mutation.StatusPending,
		Deleting:      a.mutations.DeleteState().Status == mutation.StatusPending,
		Notifications: a.tray.Active(),
	}
	if s.FormOpen {
		s.Form = a.form.Values()
		s.FormErrors = a.form.Errors()
	}
	return s
}
