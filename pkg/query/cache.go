// Package query keeps the paginated, searched note list in sync with the API.
package query

import (
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/notehub/pkg/core"
)

// Key identifies a cached page. Both fields take part in equality.
type Key struct {
	Page   int
	Search string
}

func (k Key) String() string {
	return fmt.Sprintf("notes[page=%d search=%q]", k.Page, k.Search)
}

// Entry is the last successful result stored for a Key.
type Entry struct {
	Page      core.NotePage
	UpdatedAt time.Time
	// Stale is set by InvalidateAll, or when the fetch started before the
	// most recent invalidation.
	Stale bool
}

// Cache is the process-wide store of list results.
// Only ListQuery populates it; only mutations invalidate it.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]*Entry
	epoch   uint64
	subs    map[uint64]func()
	nextSub uint64
	now     func() time.Time
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[Key]*Entry),
		subs:    make(map[uint64]func()),
		now:     time.Now,
	}
}

// Get returns a copy of the entry for k.
func (c *Cache) Get(k Key) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[k]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Epoch returns the invalidation counter. Fetches capture it before calling
// the repository and hand it back to Put.
func (c *Cache) Epoch() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.epoch
}

// Put stores page under k. A result fetched in an older epoch is kept but
// marked stale so it cannot pass for fresh server state.
func (c *Cache) Put(k Key, page core.NotePage, epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[k] = &Entry{
		Page:      page,
		UpdatedAt: c.now(),
		Stale:     epoch < c.epoch,
	}
}

// InvalidateAll marks every entry stale, whatever its key, and notifies
// subscribers so active queries refetch. It returns the number of entries
// touched.
func (c *Cache) InvalidateAll() int {
	c.mu.Lock()
	c.epoch++
	for _, e := range c.entries {
		e.Stale = true
	}
	n := len(c.entries)
	subs := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
	return n
}

// Subscribe registers fn to run after every InvalidateAll.
func (c *Cache) Subscribe(fn func()) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// StaleCount returns how many cached keys are stale.
func (c *Cache) StaleCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.entries {
		if e.Stale {
			n++
		}
	}
	return n
}
