package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	d := New(30 * time.Millisecond)

	var calls atomic.Int32
	var last atomic.Value
	for _, v := range []string{"a", "ab", "abc"} {
		d.Add(func() {
			calls.Add(1)
			last.Store(v)
		})
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, d.Pending())

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "abc", last.Load())
	assert.False(t, d.Pending())
}

func TestDebouncer_ZeroDelayRunsInline(t *testing.T) {
	d := New(0)
	ran := false
	d.Add(func() { ran = true })
	assert.True(t, ran)
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	d := New(20 * time.Millisecond)
	var calls atomic.Int32
	d.Add(func() { calls.Add(1) })
	d.Stop(time.Second)

	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, calls.Load())

	d.Add(func() { calls.Add(1) })
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, calls.Load(), "Add after Stop must be ignored")
}
