package view

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/notehub/pkg/core"
	"github.com/aretw0/notehub/pkg/form"
	"github.com/aretw0/notehub/pkg/notify"
	"github.com/aretw0/notehub/pkg/query"
)

// Messages shown in the main area.
const (
	LoadingText = "Loading..."
	ErrorText   = "There was an error, please try again..."
	EmptyText   = "No notes found."
	CreateLabel = "Create note +"
)

// Screen is everything the view draws. It holds no behaviour.
type Screen struct {
	Search        string
	List          query.State
	FormOpen      bool
	Form          form.Values
	FormErrors    form.Errors
	Creating      bool
	Deleting      bool
	Notifications []notify.Notification
}

// ShowPagination reports whether the pagination bar is drawn: never while
// loading or failed, and only for more than one page.
func (s Screen) ShowPagination() bool {
	return s.List.Status == query.StatusSuccess && s.List.TotalPages() > 1
}

// ShowList reports whether there are notes to draw.
func (s Screen) ShowList() bool {
	return s.List.Status == query.StatusSuccess && len(s.List.Notes()) > 0
}

// ShowEmpty reports whether the empty message is drawn.
func (s Screen) ShowEmpty() bool {
	return s.List.Status == query.StatusSuccess && len(s.List.Notes()) == 0
}

// Render writes s as text.
func Render(w io.Writer, s Screen) error {
	b := bufio.NewWriter(w)

	renderToolbar(b, s)
	fmt.Fprintln(b, strings.Repeat("─", 48))

	switch {
	case s.List.Status == query.StatusLoading:
		fmt.Fprintln(b, LoadingText)
	case s.List.Status == query.StatusError:
		fmt.Fprintln(b, ErrorText)
	case s.ShowList():
		renderNotes(b, s.List.Notes(), s.Deleting)
	default:
		fmt.Fprintln(b, EmptyText)
	}
	if s.List.Status == query.StatusSuccess && s.List.Fetching {
		fmt.Fprintln(b, "(refreshing)")
	}

	if s.FormOpen {
		renderForm(b, s)
	}

	for _, n := range s.Notifications {
		fmt.Fprintln(b, n.String())
	}
	return b.Flush()
}

func renderToolbar(b *bufio.Writer, s Screen) {
	parts := []string{fmt.Sprintf("Search notes: [%s]", s.Search)}
	if s.ShowPagination() {
		parts = append(parts, FormatPagination(Paginate(s.List.Key.Page, s.List.TotalPages())))
	}
	parts = append(parts, "("+CreateLabel+")")
	fmt.Fprintln(b, strings.Join(parts, "  "))
}

func renderNotes(b *bufio.Writer, notes []core.Note, deleting bool) {
	action := "delete"
	if deleting {
		action = "deleting..."
	}
	for _, n := range notes {
		fmt.Fprintf(b, "• %s  %s\n", n.ID, n.Title)
		if n.Content != "" {
			fmt.Fprintf(b, "    %s\n", n.Content)
		}
		fmt.Fprintf(b, "    [%s]  (%s)\n", n.Tag, action)
	}
}

func renderForm(b *bufio.Writer, s Screen) {
	fmt.Fprintln(b, "┌ New note")
	field := func(label, name, value string) {
		fmt.Fprintf(b, "│ %s: %s\n", label, value)
		if msg, ok := s.FormErrors[name]; ok {
			fmt.Fprintf(b, "│   ! %s\n", msg)
		}
	}
	field("Title", form.FieldTitle, s.Form.Title)
	field("Content", form.FieldContent, s.Form.Content)
	field("Tag", form.FieldTag, string(s.Form.Tag))

	submit := "Create note"
	if s.Creating {
		submit = "Creating..."
	}
	fmt.Fprintf(b, "└ (Cancel) (%s)\n", submit)
}
