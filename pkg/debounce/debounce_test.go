package debounce

import (
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/td0m/semana/pkg/clock"
)

func TestDebouncer(t *testing.T) {
	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

	t.Run("fires once after going quiet", func(t *testing.T) {
		is := is.New(t)
		c := clock.NewFake(start)
		d := New(c, time.Second)
		saved := []string{}
		for _, s := range []string{"a", "ab", "abc"} {
			s := s
			d.Schedule(func() { saved = append(saved, s) })
			c.Advance(500 * time.Millisecond)
		}
		is.Equal(len(saved), 0)
		is.True(d.Pending())
		c.Advance(500 * time.Millisecond)
		is.Equal(saved, []string{"abc"})
		is.True(!d.Pending())
		c.Advance(time.Hour)
		is.Equal(len(saved), 1)
	})

	t.Run("flush runs the pending function", func(t *testing.T) {
		is := is.New(t)
		c := clock.NewFake(start)
		d := New(c, time.Second)
		runs := 0
		d.Schedule(func() { runs++ })
		is.True(d.Flush())
		is.Equal(runs, 1)
		c.Advance(2 * time.Second)
		is.Equal(runs, 1)
		is.True(!d.Flush())
	})

	t.Run("cancel", func(t *testing.T) {
		is := is.New(t)
		c := clock.NewFake(start)
		d := New(c, time.Second)
		runs := 0
		d.Schedule(func() { runs++ })
		d.Cancel()
		c.Advance(2 * time.Second)
		is.Equal(runs, 0)
		is.Equal(c.Pending(), 0)
	})

	t.Run("stale queued callbacks are ignored", func(t *testing.T) {
		is := is.New(t)
		c := clock.NewFake(start)
		q := clock.NewQueue(c)
		d := New(q, time.Second)
		runs := 0
		d.Schedule(func() { runs++ })
		c.Advance(time.Second)
		stale := <-q.C
		d.Schedule(func() { runs += 10 })
		stale()
		is.Equal(runs, 0)
		c.Advance(time.Second)
		(<-q.C)()
		is.Equal(runs, 10)
	})
}
