// Package debounce coalesces bursts of calls into the last one.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays a call until no newer call was added for the configured
// delay. Only the most recent function runs.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	pending bool
	stopped bool
	running sync.WaitGroup
}

// New returns a Debouncer. A delay <= 0 runs every added function at once.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Delay returns the configured delay.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// Add schedules fn, replacing whatever was pending.
func (d *Debouncer) Add(fn func()) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.delay <= 0 {
		d.mu.Unlock()
		fn()
		return
	}

	d.seq++
	seq := d.seq
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A newer Add or a Stop won the race against this timer.
		if d.stopped || seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.pending = false
		d.running.Add(1)
		d.mu.Unlock()

		defer d.running.Done()
		fn()
	})
	d.mu.Unlock()
}

// Pending reports whether a call is waiting for the delay to elapse.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop drops the pending call and waits up to timeout for a running one.
// Add is a no-op afterwards.
func (d *Debouncer) Stop(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.running.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
