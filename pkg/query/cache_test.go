package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notehub/pkg/core"
)

func TestCache_PutGet(t *testing.T) {
	c := NewCache()
	k := Key{Page: 2, Search: "milk"}

	_, hit := c.Get(k)
	assert.False(t, hit)

	c.Put(k, core.NotePage{Page: 2, TotalPages: 3}, c.Epoch())
	e, hit := c.Get(k)
	require.True(t, hit)
	assert.Equal(t, 3, e.Page.TotalPages)
	assert.False(t, e.Stale)

	// Same page, different search is a different key.
	_, hit = c.Get(Key{Page: 2, Search: "mil"})
	assert.False(t, hit)
}

func TestCache_InvalidateAllIgnoresKey(t *testing.T) {
	c := NewCache()
	c.Put(Key{Page: 1}, core.NotePage{Page: 1}, c.Epoch())
	c.Put(Key{Page: 2}, core.NotePage{Page: 2}, c.Epoch())
	c.Put(Key{Page: 1, Search: "x"}, core.NotePage{Page: 1}, c.Epoch())

	notified := 0
	unsubscribe := c.Subscribe(func() { notified++ })

	assert.Equal(t, 3, c.InvalidateAll())
	assert.Equal(t, 3, c.StaleCount())
	assert.Equal(t, 1, notified)

	unsubscribe()
	c.InvalidateAll()
	assert.Equal(t, 1, notified)
}

func TestCache_PutFromOldEpochIsStale(t *testing.T) {
	c := NewCache()
	before := c.Epoch()
	c.InvalidateAll()

	c.Put(Key{Page: 1}, core.NotePage{Page: 1}, before)
	e, _ := c.Get(Key{Page: 1})
	assert.True(t, e.Stale, "a response fetched before invalidation must not count as fresh")

	c.Put(Key{Page: 1}, core.NotePage{Page: 1}, c.Epoch())
	e, _ = c.Get(Key{Page: 1})
	assert.False(t, e.Stale)
}
