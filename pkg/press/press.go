// Package press tells a tap from a press-and-hold on the same control.
package press

import (
	"sync"
	"time"

	"github.com/td0m/semana/pkg/clock"
)

const Hold = 600 * time.Millisecond

type Detector struct {
	clock clock.Clock
	hold  time.Duration

	// OnLong runs when a press has been held for the full hold time
	OnLong func()

	mu    sync.Mutex
	seq   int
	long  bool
	timer clock.Timer
}

func New(c clock.Clock, onLong func()) *Detector {
	if c == nil {
		c = clock.Real{}
	}
	return &Detector{clock: c, hold: Hold, OnLong: onLong}
}

// Press starts a new press, forgetting whether the previous one was long
func (d *Detector) Press() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancel()
	d.long = false
	d.seq++
	seq := d.seq
	d.timer = d.clock.AfterFunc(d.hold, func() { d.fire(seq) })
}

func (d *Detector) fire(seq int) {
	d.mu.Lock()
	if seq != d.seq || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.long = true
	onLong := d.OnLong
	d.mu.Unlock()
	if onLong != nil {
		onLong()
	}
}

// Release ends the press. A short press never becomes long after this.
func (d *Detector) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancel()
}

// Tap ends the press and reports whether it was short, in which case the
// control's normal action should run
func (d *Detector) Tap() bool {
	d.Release()
	return !d.Long()
}

func (d *Detector) Long() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.long
}

func (d *Detector) cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
}
