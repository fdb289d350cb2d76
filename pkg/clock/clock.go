// Package clock lets timer driven code run against a virtual time source.
package clock

import (
	"sort"
	"sync"
	"time"
)

type Timer interface {
	// Stop prevents the timer from firing, it reports whether it was still pending
	Stop() bool
}

type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Real is the wall clock
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Fake only moves when told to.
// Timers fire on the goroutine calling Advance or Set.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

type fakeTimer struct {
	c       *Fake
	at      time.Time
	seq     int
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	t.c.remove(t)
	return true
}

func (c *Fake) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Fake) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{c: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Pending is the number of timers yet to fire
func (c *Fake) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func (c *Fake) Advance(d time.Duration) {
	c.Set(c.Now().Add(d))
}

// Set moves the clock to t, firing due timers in deadline order.
// Timers scheduled by a callback fire too if they are due by t.
func (c *Fake) Set(t time.Time) {
	for {
		c.mu.Lock()
		next := c.next(t)
		if next == nil {
			c.now = t
			c.mu.Unlock()
			return
		}
		next.stopped = true
		c.remove(next)
		if next.at.After(c.now) {
			c.now = next.at
		}
		c.mu.Unlock()
		next.f()
	}
}

// next returns the earliest timer due by t, ties broken by creation order
func (c *Fake) next(t time.Time) *fakeTimer {
	due := []*fakeTimer{}
	for _, timer := range c.timers {
		if !timer.at.After(t) {
			due = append(due, timer)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (c *Fake) remove(t *fakeTimer) {
	for i, timer := range c.timers {
		if timer == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// Queue hands timer callbacks over through C instead of running them on the
// timer goroutine, so a single event loop can run them.
// Callbacks received from C may belong to timers stopped after they fired.
type Queue struct {
	Clock
	C chan func()
}

func NewQueue(c Clock) *Queue {
	return &Queue{Clock: c, C: make(chan func(), 16)}
}

func (q *Queue) AfterFunc(d time.Duration, f func()) Timer {
	return q.Clock.AfterFunc(d, func() { q.C <- f })
}
