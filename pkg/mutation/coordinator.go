package mutation

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/notehub/pkg/core"
	"github.com/aretw0/notehub/pkg/notify"
)

// Writer is the write side of core.Repository.
type Writer interface {
	Create(ctx context.Context, params core.CreateNoteParams) (core.Note, error)
	Delete(ctx context.Context, id string) (core.Note, error)
}

// Invalidator drops cached list results. query.Cache implements it.
type Invalidator interface {
	InvalidateAll() int
}

// Coordinator owns the create and delete mutations.
// After any success every cached list result is invalidated, whatever its
// key; the cache is never patched in place.
type Coordinator struct {
	repo     Writer
	cache    Invalidator
	notifier notify.Notifier
	logger   *slog.Logger

	create Mutation[core.Note]
	remove Mutation[core.Note]

	mu        sync.Mutex
	onCreated []func(core.Note)
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithNotifier sets where success and failure messages go.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Coordinator) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the logger for the coordinator.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(repo Writer, cache Invalidator, opts ...Option) *Coordinator {
	c := &Coordinator{
		repo:     repo,
		cache:    cache,
		notifier: notify.Func(func(notify.Notification) {}),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnCreated registers fn to run after each successful create, before the
// success notification. The view uses it to close the creation form.
func (c *Coordinator) OnCreated(fn func(core.Note)) {
	c.mu.Lock()
	c.onCreated = append(c.onCreated, fn)
	c.mu.Unlock()
}

// Create stores a new note.
func (c *Coordinator) Create(ctx context.Context, params core.CreateNoteParams) (core.Note, error) {
	note, err := c.create.Run(ctx, func(ctx context.Context) (core.Note, error) {
		return c.repo.Create(ctx, params)
	})
	if err != nil {
		c.logger.Warn("create note failed", "title", params.Title, "error", err)
		c.notifier.Notify(notify.New(notify.LevelError, "Failed to create note: %v", err))
		return core.Note{}, err
	}

	n := c.cache.InvalidateAll()
	c.logger.Debug("note created", "id", note.ID, "invalidated", n)

	c.mu.Lock()
	hooks := slices.Clone(c.onCreated)
	c.mu.Unlock()
	for _, fn := range hooks {
		fn(note)
	}

	c.notifier.Notify(notify.New(notify.LevelSuccess, "Note created"))
	return note, nil
}

// Delete removes a note.
func (c *Coordinator) Delete(ctx context.Context, id string) (core.Note, error) {
	note, err := c.remove.Run(ctx, func(ctx context.Context) (core.Note, error) {
		return c.repo.Delete(ctx, id)
	})
	if err != nil {
		c.logger.Warn("delete note failed", "id", id, "error", err)
		c.notifier.Notify(notify.New(notify.LevelError, "Failed to delete note: %v", err))
		return core.Note{}, err
	}

	n := c.cache.InvalidateAll()
	c.logger.Debug("note deleted", "id", id, "invalidated", n)

	c.notifier.Notify(notify.New(notify.LevelSuccess, "Note deleted"))
	return note, nil
}

// CreateState returns the create mutation's state.
func (c *Coordinator) CreateState() State[core.Note] { return c.create.Snapshot() }

// DeleteState returns the delete mutation's state.
func (c *Coordinator) DeleteState() State[core.Note] { return c.remove.Snapshot() }
