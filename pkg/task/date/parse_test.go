package date

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Day
		wantErr bool
	}{
		{"canonical", []string{"Lunes", "lunes", " LUNES "}, Monday, false},
		{"accents", []string{"Miércoles", "miércoles", "miercoles", "mie", "mié"}, Wednesday, false},
		{"english", []string{"fri", "Friday"}, Friday, false},
		{"saturday", []string{"Sábado", "sabado", "sáb", "sat"}, Saturday, false},
		{"number", []string{"7", "dom", "sunday"}, Sunday, false},
		{"invalid", []string{"", "0", "8", "lunesx", "someday"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, arg := range tt.args {
				got, err := ParseDay(arg)
				if (err != nil) != tt.wantErr {
					t.Errorf("ParseDay(%q) error = %v, wantErr %v", arg, err, tt.wantErr)
					return
				}
				if got != tt.want {
					t.Errorf("ParseDay(%q) = %v, want %v", arg, got, tt.want)
				}
			}
		})
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		input string
		want  Day
		ok    bool
	}{
		{"martes", Tuesday, true},
		{"  JUEVES\n", Thursday, true},
		{"DOMINGO", Sunday, true},
		// aliases are for humans only
		{"monday", "", false},
		{"mie", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Lookup(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Lookup(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseWeekID(t *testing.T) {
	tests := []struct {
		input   string
		want    WeekID
		wantErr bool
	}{
		{"2024-01-29", "2024-01-29", false},
		{"2024-01-31", "2024-01-29", false},
		{"2024-02-04", "2024-01-29", false},
		{"2024-02-05", "2024-02-05", false},
		{"29/01/2024", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseWeekID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseWeekID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWeekID_Monday(t *testing.T) {
	got, err := WeekID("2024-12-30").Monday(time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if _, err := WeekID("nope").Monday(time.UTC); err == nil {
		t.Error("expected error for malformed id")
	}
}
