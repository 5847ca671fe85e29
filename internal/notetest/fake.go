// Package notetest provides an in-memory core.Repository for tests.
package notetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/notehub/pkg/core"
)

// ListCall records the arguments of one List call.
type ListCall struct {
	Page   int
	Search string
}

// Repository implements core.Repository in memory.
// Notes are listed newest first, PerPage at a time, filtered by a
// case-insensitive substring match on title or content.
type Repository struct {
	mu      sync.Mutex
	notes   []core.Note
	seq     int
	lists   []ListCall
	creates []core.CreateNoteParams
	deletes []string

	// Fail, when set, is consulted before every call. A non-nil error is
	// returned instead of touching the store.
	Fail func(op string) error
	// Gate, when set, blocks List until it is closed or receives.
	Gate chan struct{}
}

// New creates a repository seeded with notes.
func New(notes ...core.Note) *Repository {
	return &Repository{notes: append([]core.Note(nil), notes...)}
}

// Seed adds n generated notes with sequential IDs.
func (r *Repository) Seed(n int, tag core.Tag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < n; i++ {
		r.seq++
		r.notes = append(r.notes, core.Note{
			ID:        fmt.Sprintf("n%d", r.seq),
			Title:     fmt.Sprintf("Note %d", r.seq),
			Tag:       tag,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, r.seq, 0, time.UTC),
		})
	}
}

func (r *Repository) fail(op string) error {
	r.mu.Lock()
	fn := r.Fail
	r.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(op)
}

func (r *Repository) List(ctx context.Context, page int, search string) (core.NotePage, error) {
	r.mu.Lock()
	r.lists = append(r.lists, ListCall{Page: page, Search: search})
	gate := r.Gate
	r.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return core.NotePage{}, ctx.Err()
		}
	}
	if err := r.fail("list"); err != nil {
		return core.NotePage{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []core.Note
	q := strings.ToLower(search)
	for _, n := range r.notes {
		if q == "" || strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			matched = append(matched, n)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := (len(matched) + core.PerPage - 1) / core.PerPage
	start := (page - 1) * core.PerPage
	end := start + core.PerPage
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}
	return core.NotePage{
		Page:       page,
		PerPage:    core.PerPage,
		TotalPages: total,
		TotalItems: len(matched),
		Notes:      append([]core.Note(nil), matched[start:end]...),
	}, nil
}

func (r *Repository) Create(ctx context.Context, params core.CreateNoteParams) (core.Note, error) {
	r.mu.Lock()
	r.creates = append(r.creates, params)
	r.mu.Unlock()

	if err := r.fail("create"); err != nil {
		return core.Note{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	n := core.Note{
		ID:        fmt.Sprintf("n%d", r.seq),
		Title:     params.Title,
		Content:   params.Content,
		Tag:       params.Tag,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, r.seq, 0, time.UTC),
	}
	r.notes = append(r.notes, n)
	return n, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (core.Note, error) {
	r.mu.Lock()
	r.deletes = append(r.deletes, id)
	r.mu.Unlock()

	if err := r.fail("delete"); err != nil {
		return core.Note{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.notes {
		if n.ID == id {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return n, nil
		}
	}
	return core.Note{}, &core.Error{Kind: core.KindHTTP, Op: "delete note", Status: 404, Body: "not found"}
}

// Lists returns every List call so far.
func (r *Repository) Lists() []ListCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ListCall(nil), r.lists...)
}

// ListsFor counts List calls with the given arguments.
func (r *Repository) ListsFor(page int, search string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, c := range r.lists {
		if c.Page == page && c.Search == search {
			count++
		}
	}
	return count
}

// Creates returns every Create body so far.
func (r *Repository) Creates() []core.CreateNoteParams {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.CreateNoteParams(nil), r.creates...)
}

// Deletes returns every Delete id so far.
func (r *Repository) Deletes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.deletes...)
}

// SetGate installs (or, with nil, removes) a channel List waits on.
func (r *Repository) SetGate(gate chan struct{}) {
	r.mu.Lock()
	r.Gate = gate
	r.mu.Unlock()
}

// SetFail installs (or, with nil, removes) the failure hook.
func (r *Repository) SetFail(fn func(op string) error) {
	r.mu.Lock()
	r.Fail = fn
	r.mu.Unlock()
}

// HTTPError builds the error a remote repository returns for status.
func HTTPError(op string, status int) error {
	return &core.Error{Kind: core.KindHTTP, Op: op, Status: status}
}

var _ core.Repository = (*Repository)(nil)
