package core

import (
	"context"
	"strings"
	"sync"
)

// Service guards calls into a Repository.
type Service struct {
	mu    sync.RWMutex
	repo  Repository
	calls map[string]int
}

// NewService creates a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, calls: make(map[string]int)}
}

// List fetches a page. Pages start at 1.
func (s *Service) List(ctx context.Context, page int, search string) (NotePage, error) {
	if page < 1 {
		return NotePage{}, &Error{Kind: KindValidation, Op: "list notes", Err: ErrInvalidPage}
	}
	s.count("list")
	return s.repo.List(ctx, page, search)
}

// Create stores a note. Field rules are enforced by the form layer; the
// service only refuses an unknown tag.
func (s *Service) Create(ctx context.Context, params CreateNoteParams) (Note, error) {
	if !params.Tag.Valid() {
		return Note{}, &Error{Kind: KindValidation, Op: "create note", Err: ErrInvalidTag}
	}
	s.count("create")
	return s.repo.Create(ctx, params)
}

// Delete removes a note.
func (s *Service) Delete(ctx context.Context, id string) (Note, error) {
	if strings.TrimSpace(id) == "" {
		return Note{}, &Error{Kind: KindValidation, Op: "delete note", Err: ErrEmptyID}
	}
	s.count("delete")
	return s.repo.Delete(ctx, id)
}

func (s *Service) count(op string) {
	s.mu.Lock()
	s.calls[op]++
	s.mu.Unlock()
}

var _ Repository = (*Service)(nil)
