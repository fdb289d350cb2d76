package date

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestStartOfWeek(t *testing.T) {
	start := day(2023, time.November, 1)

	t.Run("always a monday and idempotent", func(t *testing.T) {
		is := is.New(t)
		for i := 0; i < 800; i++ {
			d := start.AddDate(0, 0, i).Add(time.Duration(i%24) * time.Hour)
			s := StartOfWeek(d)
			is.Equal(s.Weekday(), time.Monday)
			is.Equal(StartOfWeek(s), s)
			is.Equal(s.Hour(), 0)
			is.True(!s.After(d))
			is.True(d.Sub(s) < 7*24*time.Hour+time.Hour) // an hour of slack for DST
		}
	})

	t.Run("sunday is the last day of its week", func(t *testing.T) {
		is := is.New(t)
		sunday := day(2024, time.March, 10).Add(23 * time.Hour)
		is.Equal(StartOfWeek(sunday), day(2024, time.March, 4))
	})

	t.Run("keeps location", func(t *testing.T) {
		is := is.New(t)
		d := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
		is.Equal(StartOfWeek(d).Location(), time.UTC)
	})
}

func TestWeekOf(t *testing.T) {
	t.Run("stable across the week", func(t *testing.T) {
		is := is.New(t)
		monday := day(2024, time.January, 29)
		for i := 0; i < 7; i++ {
			is.Equal(WeekOf(monday.AddDate(0, 0, i)), WeekID("2024-01-29"))
		}
		is.Equal(WeekOf(monday.AddDate(0, 0, 7)), WeekID("2024-02-05"))
		is.Equal(WeekOf(monday.Add(-time.Second)), WeekID("2024-01-22"))
	})

	t.Run("year boundary", func(t *testing.T) {
		is := is.New(t)
		is.Equal(WeekOf(day(2025, time.January, 1)), WeekID("2024-12-30"))
	})
}

func TestRangeLabel(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"same month", day(2024, time.March, 6), "4 - 10 MAR"},
		{"two months", day(2024, time.February, 1), "29 ENE - 4 FEB"},
		{"two years", day(2025, time.January, 5), "30 DIC - 5 ENE"},
		{"sunday", day(2024, time.March, 10), "4 - 10 MAR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(RangeLabel(tt.date), tt.want)
		})
	}
}

func TestColumnDate(t *testing.T) {
	is := is.New(t)
	ref := day(2024, time.January, 31)
	monday := StartOfWeek(ref)
	for i, d := range Days {
		is.Equal(ColumnDate(d, ref), monday.AddDate(0, 0, i))
	}
	is.Equal(ColumnDate(Sunday, ref), day(2024, time.February, 4))
}

func TestDay(t *testing.T) {
	is := is.New(t)
	is.Equal(Wednesday.Offset(), 2)
	is.Equal(Day("Someday").Offset(), -1)
	is.Equal(Wednesday.Short(3), "Mié")
	is.Equal(Saturday.Short(2), "Sá")
	is.Equal(Monday.Short(10), "Lunes")
	is.Equal(DayOf(day(2024, time.March, 10)), Sunday)
	is.Equal(DayOf(day(2024, time.March, 4)), Monday)
	is.Equal(len(Weekdays), 5)
}

func TestShiftWeeks(t *testing.T) {
	is := is.New(t)
	d := day(2024, time.December, 25)
	is.Equal(WeekOf(ShiftWeeks(d, 1)), WeekID("2024-12-30"))
	is.Equal(WeekOf(ShiftWeeks(d, -1)), WeekID("2024-12-16"))
}

func TestMonths(t *testing.T) {
	is := is.New(t)
	is.Equal(MonthAbbr(time.August), "AGO")
	is.Equal(MonthShort(time.December), "Dic")
	is.Equal(MonthName(time.January), "Enero")
}
