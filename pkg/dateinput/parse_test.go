package dateinput

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func Test_parseRelative(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"in1", 1, false},
		{"in 1", 1, false},
		{"1", 1, false},
		{"in 11", 11, false},
		{"in 231", 231, false},
		{"in 1 day", 1, false},
		{"in 1 days", 1, false},
		{"in 1 week", 7, false},
		{"in 1 month", 30, false},
		{"in 2 year", 365 * 2, false},
		{"in 1w", 7, false},
		{"en 2 semanas", 14, false},
		{"en 3 días", 3, false},
		{"+2s", 14, false},
		{"-1 semana", -7, false},
		{"en 1 mes", 30, false},
		{"in 1wek", 0, true},
		{"semana", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			is := is.New(t)
			got, err := parseRelative(tt.input)
			if tt.wantErr {
				is.True(err != nil)
				return
			}
			is.NoErr(err)
			is.Equal(got, tt.want)
		})
	}
}

func Test_parseAbsolute(t *testing.T) {
	now, _ := time.Parse("02-01-2006", "01-02-2006")
	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"21-04", now.AddDate(0, 2, 20), false},
		{"21", now.AddDate(0, 0, 20), false},
		{"21-04-06", now.AddDate(0, 2, 20), false},
		{"Feb 21", now.AddDate(0, 0, 20), false},
		{"February 21", now.AddDate(0, 0, 20), false},
		{"3/01", now.AddDate(0, -1, 2), false},
		{"2006-03-10", now.AddDate(0, 1, 9), false},
		{"nope", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			is := is.New(t)
			got, err := parseAbsolute(tt.input, now)
			if tt.wantErr {
				is.True(err != nil)
				return
			}
			is.NoErr(err)
			is.True(got.Equal(tt.want))
		})
	}
}

func TestParse(t *testing.T) {
	// a Wednesday
	now := time.Date(2024, time.March, 6, 15, 30, 0, 0, time.UTC)
	day := func(m time.Month, d int) time.Time {
		return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
	}
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"hoy", day(time.March, 6), true},
		{"Today", day(time.March, 6), true},
		{"mañ", day(time.March, 7), true},
		{"tomorrow", day(time.March, 7), true},
		{"miércoles", day(time.March, 6), true},
		{"viernes", day(time.March, 8), true},
		{"lun", day(time.March, 11), true},
		{"mar", day(time.March, 12), true},
		{"en 2 semanas", day(time.March, 20), true},
		{"-1s", day(time.February, 28), true},
		{"12 de marzo", day(time.March, 12), true},
		{"1 ene", day(time.January, 1), true},
		{"25 diciembre", day(time.December, 25), true},
		{"2nd", day(time.March, 2), true},
		{"12/04", day(time.April, 12), true},
		{"", time.Time{}, false},
		{"ma", time.Time{}, false},
		{"pronto", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			is := is.New(t)
			got, ok := Parse(tt.input, now)
			is.Equal(ok, tt.ok)
			if tt.ok {
				is.True(got.Equal(tt.want))
			}
		})
	}
}

func TestFormat(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC)
	is.Equal(format(now.AddDate(0, 0, 5), now), "la próxima semana")
	is.Equal(format(now.AddDate(0, 0, 2), now), "esta semana")
	is.Equal(format(now.AddDate(0, 0, -7), now), "la semana pasada")
	is.Equal(format(now.AddDate(0, 0, 21), now), "en 3 semanas")
	is.Equal(format(now.AddDate(0, 0, -21), now), "hace 3 semanas")
}
