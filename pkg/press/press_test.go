package press

import (
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/td0m/semana/pkg/clock"
)

func TestDetector(t *testing.T) {
	c := clock.NewFake(time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC))
	opened := 0
	d := New(c, func() { opened++ })

	t.Run("short press is a tap", func(t *testing.T) {
		is := is.New(t)
		d.Press()
		c.Advance(599 * time.Millisecond)
		is.True(d.Tap())
		c.Advance(time.Second)
		is.Equal(opened, 0)
		is.Equal(c.Pending(), 0)
	})

	t.Run("held press is long", func(t *testing.T) {
		is := is.New(t)
		d.Press()
		c.Advance(Hold)
		is.Equal(opened, 1)
		is.True(!d.Tap())
	})

	t.Run("next press clears the flag", func(t *testing.T) {
		is := is.New(t)
		d.Press()
		is.True(!d.Long())
		c.Advance(100 * time.Millisecond)
		is.True(d.Tap())
		is.Equal(opened, 1)
	})

	t.Run("pressing again restarts the hold", func(t *testing.T) {
		is := is.New(t)
		d.Press()
		c.Advance(400 * time.Millisecond)
		d.Press()
		c.Advance(400 * time.Millisecond)
		is.Equal(opened, 1)
		c.Advance(200 * time.Millisecond)
		is.Equal(opened, 2)
		d.Release()
	})
}

func TestDetector_queue(t *testing.T) {
	is := is.New(t)
	c := clock.NewFake(time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC))
	q := clock.NewQueue(c)
	opened := false
	d := New(q, func() { opened = true })

	d.Press()
	c.Advance(Hold)
	is.True(!opened) // queued, not run
	fired := <-q.C

	// released after the timer fired but before the loop ran the callback
	d.Release()
	fired()
	is.True(!opened)
	is.True(d.Tap())
}
