package query

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notehub/internal/debounce"
	"github.com/aretw0/notehub/pkg/core"
)

// DefaultDebounce is how long search input must settle before it changes the key.
const DefaultDebounce = 500 * time.Millisecond

// Status is the coarse state of the list query.
type Status int

const (
	// StatusLoading means nothing has been shown yet and a fetch is running.
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "loading"
	}
}

// State is a snapshot of what the list should display.
type State struct {
	Key    Key
	Input  string // raw search text; runs ahead of Key.Search while debouncing
	Status Status
	Data   *core.NotePage
	// Placeholder means Data belongs to a previous key and is kept visible
	// while the current key loads.
	Placeholder bool
	Fetching    bool
	Err         error
	UpdatedAt   time.Time
}

// TotalPages returns the page count of the displayed data, or 0.
func (s State) TotalPages() int {
	if s.Data == nil {
		return 0
	}
	return s.Data.TotalPages
}

// Notes returns the displayed notes.
func (s State) Notes() []core.Note {
	if s.Data == nil {
		return nil
	}
	return s.Data.Notes
}

// Lister is the read side of core.Repository.
type Lister interface {
	List(ctx context.Context, page int, search string) (core.NotePage, error)
}

// Option configures a ListQuery.
type Option func(*ListQuery)

// WithDebounce sets the search debounce delay. Zero applies input at once.
func WithDebounce(d time.Duration) Option {
	return func(q *ListQuery) {
		q.debounce = debounce.New(d)
	}
}

// WithLogger sets the logger for the query.
func WithLogger(logger *slog.Logger) Option {
	return func(q *ListQuery) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// ListQuery owns the current page and search text, derives the cache key and
// keeps State in step with the API.
type ListQuery struct {
	repo     Lister
	cache    *Cache
	debounce *debounce.Debouncer
	logger   *slog.Logger

	mu          sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()
	closed      bool

	page   int
	input  string
	search string // debounced
	state  State
	gen    uint64

	fetches    int
	superseded int

	listeners    map[uint64]func(State)
	nextListener uint64
}

// NewListQuery creates a query at page 1 with an empty search.
// Nothing is fetched until Start.
func NewListQuery(repo Lister, cache *Cache, opts ...Option) *ListQuery {
	q := &ListQuery{
		repo:      repo,
		cache:     cache,
		debounce:  debounce.New(DefaultDebounce),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		page:      1,
		state:     State{Key: Key{Page: 1}, Status: StatusLoading},
		listeners: make(map[uint64]func(State)),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Start issues the first fetch and begins listening for cache invalidation.
// Fetches run until ctx is done or Close is called.
func (q *ListQuery) Start(ctx context.Context) {
	q.mu.Lock()
	if q.ctx != nil || q.closed {
		q.mu.Unlock()
		return
	}
	q.ctx, q.cancel = context.WithCancel(ctx)
	q.unsubscribe = q.cache.Subscribe(q.onInvalidate)
	q.keyChangedLocked()
	snap := q.state
	q.mu.Unlock()

	q.notify(snap)
}

// Close stops background work. Pending debounced input is dropped.
func (q *ListQuery) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	if q.cancel != nil {
		q.cancel()
	}
	if q.unsubscribe != nil {
		q.unsubscribe()
	}
	q.mu.Unlock()

	q.debounce.Stop(time.Second)
}

// SetSearch records new search input. The page drops back to 1 right away so
// the new filter never asks for an out-of-range page; the text itself reaches
// the key once input has settled.
func (q *ListQuery) SetSearch(text string) {
	q.mu.Lock()
	q.input = text
	q.state.Input = text
	if q.page != 1 {
		q.page = 1
		q.keyChangedLocked()
	}
	snap := q.state
	q.mu.Unlock()

	q.notify(snap)
	q.debounce.Add(func() { q.applySearch(text) })
}

func (q *ListQuery) applySearch(text string) {
	q.mu.Lock()
	if q.closed || q.search == text {
		q.mu.Unlock()
		return
	}
	q.search = text
	q.keyChangedLocked()
	snap := q.state
	q.mu.Unlock()

	q.notify(snap)
}

// SetPage moves to page n.
func (q *ListQuery) SetPage(n int) error {
	if n < 1 {
		return &core.Error{Kind: core.KindValidation, Op: "set page", Err: core.ErrInvalidPage}
	}

	q.mu.Lock()
	if n == q.page {
		q.mu.Unlock()
		return nil
	}
	q.page = n
	q.keyChangedLocked()
	snap := q.state
	q.mu.Unlock()

	q.notify(snap)
	return nil
}

// Next moves one page forward if the last known data has more pages.
func (q *ListQuery) Next() bool {
	q.mu.Lock()
	page, total := q.page, q.state.TotalPages()
	q.mu.Unlock()

	if page >= total {
		return false
	}
	return q.SetPage(page+1) == nil
}

// Prev moves one page back.
func (q *ListQuery) Prev() bool {
	q.mu.Lock()
	page := q.page
	q.mu.Unlock()

	if page <= 1 {
		return false
	}
	return q.SetPage(page-1) == nil
}

// Refetch fetches the current key again. There is no automatic retry after
// an error; this is the user-driven one.
func (q *ListQuery) Refetch() {
	q.mu.Lock()
	q.fetchLocked(q.state.Key)
	snap := q.state
	q.mu.Unlock()

	q.notify(snap)
}

// Snapshot returns the current state.
func (q *ListQuery) Snapshot() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Key returns the key currently displayed.
func (q *ListQuery) Key() Key {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state.Key
}

// OnChange registers fn to receive every state change.
func (q *ListQuery) OnChange(fn func(State)) (unsubscribe func()) {
	q.mu.Lock()
	id := q.nextListener
	q.nextListener++
	q.listeners[id] = fn
	q.mu.Unlock()

	return func() {
		q.mu.Lock()
		delete(q.listeners, id)
		q.mu.Unlock()
	}
}

func (q *ListQuery) onInvalidate() {
	q.mu.Lock()
	if q.ctx == nil || q.closed {
		q.mu.Unlock()
		return
	}
	q.logger.Debug("list invalidated, refetching", "key", q.state.Key)
	q.fetchLocked(q.state.Key)
	snap := q.state
	q.mu.Unlock()

	q.notify(snap)
}

// keyChangedLocked moves state to the current (page, search) key and fetches it.
func (q *ListQuery) keyChangedLocked() {
	key := Key{Page: q.page, Search: q.search}
	q.state.Key = key
	q.state.Err = nil

	if e, ok := q.cache.Get(key); ok {
		page := e.Page
		q.state.Data = &page
		q.state.Status = StatusSuccess
		q.state.Placeholder = false
		q.state.UpdatedAt = e.UpdatedAt
	} else if q.state.Data != nil {
		q.state.Status = StatusSuccess
		q.state.Placeholder = true
	} else {
		q.state.Status = StatusLoading
	}

	q.fetchLocked(key)
}

func (q *ListQuery) fetchLocked(key Key) {
	if q.ctx == nil || q.closed {
		return
	}

	q.gen++
	gen := q.gen
	q.fetches++
	q.state.Fetching = true
	epoch := q.cache.Epoch()

	q.logger.Debug("fetching notes", "key", key, "gen", gen)
	lifecycle.Go(q.ctx, func(ctx context.Context) error {
		page, err := q.repo.List(ctx, key.Page, key.Search)
		q.complete(gen, key, epoch, page, err)
		return nil
	})
}

func (q *ListQuery) complete(gen uint64, key Key, epoch uint64, page core.NotePage, err error) {
	if err == nil {
		q.cache.Put(key, page, epoch)
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	if gen != q.gen || key != q.state.Key {
		q.superseded++
		q.mu.Unlock()
		q.logger.Debug("ignoring superseded response", "key", key, "gen", gen)
		return
	}

	q.state.Fetching = false
	if err != nil {
		if errors.Is(err, context.Canceled) && q.ctx.Err() != nil {
			q.mu.Unlock()
			return
		}
		q.state.Status = StatusError
		q.state.Err = err
		q.logger.Warn("failed to load notes", "key", key, "error", err)
	} else {
		q.state.Status = StatusSuccess
		q.state.Data = &page
		q.state.Placeholder = false
		q.state.Err = nil
		q.state.UpdatedAt = time.Now()
	}
	snap := q.state
	q.mu.Unlock()

	q.notify(snap)
}

func (q *ListQuery) notify(s State) {
	q.mu.Lock()
	fns := make([]func(State), 0, len(q.listeners))
	for _, fn := range q.listeners {
		fns = append(fns, fn)
	}
	q.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
