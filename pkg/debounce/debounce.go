// Package debounce runs the last scheduled function once things go quiet.
package debounce

import (
	"sync"
	"time"

	"github.com/td0m/semana/pkg/clock"
)

type Debouncer struct {
	clock clock.Clock
	wait  time.Duration

	mu      sync.Mutex
	seq     int
	pending func()
	timer   clock.Timer
}

func New(c clock.Clock, wait time.Duration) *Debouncer {
	if c == nil {
		c = clock.Real{}
	}
	return &Debouncer{clock: c, wait: wait}
}

// Schedule replaces any pending function and restarts the wait
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stop()
	d.seq++
	seq := d.seq
	d.pending = fn
	d.timer = d.clock.AfterFunc(d.wait, func() { d.fire(seq) })
}

// a timer can fire after being replaced, seq tells those apart
func (d *Debouncer) fire(seq int) {
	d.mu.Lock()
	if seq != d.seq || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	fn()
}

// Cancel drops the pending function without running it
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stop()
}

// Flush runs the pending function now.
// It reports whether there was anything to run.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.pending
	d.stop()
	d.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) stop() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.seq++
}
