package query_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/notehub/internal/notetest"
	"github.com/aretw0/notehub/pkg/core"
	"github.com/aretw0/notehub/pkg/query"
)

// BenchmarkCache_InvalidateAll measures marking a large cache stale.
// Run with: go test -bench=Cache -benchmem -run=^$ ./pkg/query/...
func BenchmarkCache_InvalidateAll(b *testing.B) {
	c := query.NewCache()
	for i := 0; i < 10000; i++ {
		c.Put(query.Key{Page: i%100 + 1, Search: fmt.Sprintf("q%d", i/100)}, core.NotePage{}, c.Epoch())
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.InvalidateAll()
	}
}

// BenchmarkListQuery_PageFlip measures a page change served from a warm cache.
func BenchmarkListQuery_PageFlip(b *testing.B) {
	repo := notetest.New()
	repo.Seed(10*core.PerPage, core.TagTodo)

	q := query.NewListQuery(repo, query.NewCache(), query.WithDebounce(0))
	q.Start(context.Background())
	defer q.Close()

	// Warm pages 1 and 2.
	require.NoError(b, q.SetPage(2))
	require.NoError(b, q.SetPage(1))
	require.Eventually(b, func() bool {
		return !q.Snapshot().Fetching
	}, time.Second, time.Millisecond)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = q.SetPage(i%2 + 1)
	}
}
