package clock

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestFake(t *testing.T) {
	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

	t.Run("fires in deadline order", func(t *testing.T) {
		is := is.New(t)
		c := NewFake(start)
		order := []string{}
		c.AfterFunc(2*time.Second, func() { order = append(order, "b") })
		c.AfterFunc(time.Second, func() { order = append(order, "a") })
		c.AfterFunc(time.Second, func() { order = append(order, "a2") })
		c.Advance(1500 * time.Millisecond)
		is.Equal(order, []string{"a", "a2"})
		c.Advance(time.Second)
		is.Equal(order, []string{"a", "a2", "b"})
		is.Equal(c.Now(), start.Add(2500*time.Millisecond))
	})

	t.Run("now is the deadline inside a callback", func(t *testing.T) {
		is := is.New(t)
		c := NewFake(start)
		var at time.Time
		c.AfterFunc(time.Second, func() {
			at = c.Now()
			c.AfterFunc(time.Second, func() { at = c.Now() })
		})
		c.Advance(time.Second)
		is.Equal(at, start.Add(time.Second))
		c.Advance(5 * time.Second)
		is.Equal(at, start.Add(2*time.Second))
	})

	t.Run("stop", func(t *testing.T) {
		is := is.New(t)
		c := NewFake(start)
		fired := false
		timer := c.AfterFunc(time.Second, func() { fired = true })
		is.True(timer.Stop())
		is.True(!timer.Stop())
		c.Advance(time.Minute)
		is.True(!fired)
	})
}
