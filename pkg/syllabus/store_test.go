package syllabus

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matryer/is"
)

var fixed = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

func titles(ts []Topic) []string {
	out := []string{}
	for _, t := range ts {
		out = append(out, t.Title)
	}
	return out
}

func small() *Store {
	return NewStore([]Topic{
		{ID: 1, Title: "a", Type: Specific},
		{ID: 101, Title: "x", Type: Legislation},
		{ID: 2, Title: "b", Type: Specific},
		{ID: 3, Title: "c", Type: Specific},
		{ID: 102, Title: "y", Type: Legislation},
	}, func() time.Time { return fixed })
}

func TestDefaults(t *testing.T) {
	is := is.New(t)
	s := NewStore(Defaults(), nil)
	is.Equal(len(s.Partition(Specific)), 21)
	is.Equal(len(s.Partition(Legislation)), 7)
	is.True(s.IsSpecific("Teoría del fuego"))
	is.True(!s.IsSpecific("TREBEP"))

	// Defaults hands out copies
	d := Defaults()
	d[0].Title = "changed"
	is.Equal(Defaults()[0].Title, "Teoría del fuego")
}

func TestStore_Add(t *testing.T) {
	is := is.New(t)
	s := small()
	got := s.Add(Legislation)
	is.Equal(got.Title, DefaultTitle)
	is.Equal(got.Type, Legislation)
	is.Equal(got.ID, ID(fixed.UnixMilli()))
	is.True(contains(Palette, got.Color))
	is.Equal(s.All()[s.Len()-1], got)

	// same millisecond, still unique
	again := s.Add(Specific)
	is.True(again.ID > got.ID)

	// invalid types become specific
	is.Equal(s.Add("other").Type, Specific)
}

func TestStore_Rename(t *testing.T) {
	s := small()
	t.Run("renames", func(t *testing.T) {
		is := is.New(t)
		is.True(s.Rename(2, "bb"))
		got, _ := s.Get(2)
		is.Equal(got.Title, "bb")
		is.True(s.IsSpecific("bb"))
		is.True(!s.IsSpecific("b")) // old references no longer resolve
	})
	t.Run("unknown id", func(t *testing.T) {
		is := is.New(t)
		is.True(!s.Rename(999, "z"))
	})
}

func TestStore_Remove(t *testing.T) {
	is := is.New(t)
	s := small()
	is.True(s.Remove(101))
	is.True(!s.Remove(101))
	is.Equal(titles(s.All()), []string{"a", "b", "c", "y"})
}

func TestStore_Reorder(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		ok       bool
		want     []string
	}{
		{"forward", 0, 3, true, []string{"x", "b", "c", "a", "y"}},
		{"backward", 4, 1, true, []string{"a", "y", "x", "b", "c"}},
		{"to the end", 1, 4, true, []string{"a", "b", "c", "y", "x"}},
		{"same index", 2, 2, false, []string{"a", "x", "b", "c", "y"}},
		{"out of range", 0, 5, false, []string{"a", "x", "b", "c", "y"}},
		{"negative", -1, 2, false, []string{"a", "x", "b", "c", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			s := small()
			is.Equal(s.Reorder(tt.from, tt.to), tt.ok)
			is.Equal(titles(s.All()), tt.want)
		})
	}
}

func TestStore_MoveAdjacent(t *testing.T) {
	t.Run("first topic up is a no-op", func(t *testing.T) {
		is := is.New(t)
		s := small()
		is.True(!s.MoveAdjacent(0, Up))
		is.Equal(titles(s.All()), []string{"a", "x", "b", "c", "y"})
	})
	t.Run("last topic down is a no-op", func(t *testing.T) {
		is := is.New(t)
		s := small()
		is.True(!s.MoveAdjacent(4, Down))
		is.Equal(titles(s.All()), []string{"a", "x", "b", "c", "y"})
	})
	t.Run("swaps", func(t *testing.T) {
		is := is.New(t)
		s := small()
		is.True(s.MoveAdjacent(2, Up))
		is.Equal(titles(s.All()), []string{"a", "b", "x", "c", "y"})
		is.True(s.MoveAdjacent(0, Down))
		is.Equal(titles(s.All()), []string{"b", "a", "x", "c", "y"})
	})
}

func TestStore_Partition(t *testing.T) {
	is := is.New(t)
	s := small()
	is.Equal(titles(s.Partition(Specific)), []string{"a", "b", "c"})
	is.Equal(titles(s.Partition(Legislation)), []string{"x", "y"})
	s.Reorder(4, 0)
	is.Equal(titles(s.Partition(Legislation)), []string{"y", "x"})
	is.Equal(titles(s.Partition(Specific)), []string{"a", "b", "c"})
}

func TestStore_JSON(t *testing.T) {
	is := is.New(t)
	var s Store
	is.NoErr(json.Unmarshal([]byte(`[{"id":1,"title":"old","color":"#fff"},{"id":2,"title":"law","color":"#000","type":"legislation"}]`), &s))
	is.Equal(s.All()[0].Type, Specific)
	is.Equal(s.All()[1].Type, Legislation)

	// adding to a decoded store still works without a clock
	is.True(s.Add(Specific).ID > 2)

	bs, err := json.Marshal(&s)
	is.NoErr(err)
	var again Store
	is.NoErr(json.Unmarshal(bs, &again))
	is.Equal(again.All(), s.All())
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
