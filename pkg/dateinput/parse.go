package dateinput

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/td0m/semana/pkg/task/date"
)

var (
	errFormat  = errors.New("format not found")
	errPostfix = errors.New("unexpected postfix")
)

// Parse reads s as a date relative to now.
// It understands keywords (hoy, mañana), day names, relative offsets
// ("en 2 semanas", "-1s") and absolute dates ("12/03", "12 de marzo").
func Parse(s string, now time.Time) (time.Time, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, false
	}
	today := midnight(now)
	for i, words := range keywords {
		for _, w := range words {
			if matchPrefix(s, w) {
				return today.AddDate(0, 0, i), true
			}
		}
	}
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsLetter(r) {
		if d, err := date.ParseDay(s); err == nil {
			return nextDay(today, d), true
		}
	}
	if days, err := parseRelative(s); err == nil {
		return today.AddDate(0, 0, days), true
	}
	s = ordinal.ReplaceAllString(s, "$1")
	if t, err := parseAbsolute(translate(s), today); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// keywords are indexed by their distance from today
var keywords = [][]string{
	{"hoy", "today"},
	{"mañana", "tomorrow"},
}

var ordinal = regexp.MustCompile(`([0-9])(st|nd|rd|th|º)`)

// matchPrefix accepts partially typed words once they are long enough to be
// told apart, "ma" could still be martes
func matchPrefix(s, word string) bool {
	n := utf8.RuneCountInString(s)
	if n < 3 && s != word {
		return false
	}
	return strings.HasPrefix(word, s)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// nextDay is the first d on or after today
func nextDay(today time.Time, d date.Day) time.Time {
	diff := d.Offset() - date.DayOf(today).Offset()
	if diff < 0 {
		diff += 7
	}
	return today.AddDate(0, 0, diff)
}

type multiplier struct {
	key   string
	value int
}

// order matters, the first prefix match wins
var multipliers = []multiplier{
	{"días", 1},
	{"dias", 1},
	{"semanas", 7},
	{"meses", 30},
	{"años", 365},
	{"anos", 365},
	{"days", 1},
	{"weeks", 7},
	{"months", 30},
	{"years", 365},
}

// parseRelative returns the number of days s points away from today
func parseRelative(s string) (int, error) {
	for _, p := range []string{"in", "en", "dentro de"} {
		if strings.HasPrefix(s, p) {
			s = strings.TrimPrefix(s, p)
			break
		}
	}
	s = strings.TrimSpace(s)
	sign := 1
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	}

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, err
	}
	s = strings.TrimSpace(s[i:])

	mult := 1
	if len(s) > 0 {
		mult = 0
		for _, m := range multipliers {
			if strings.HasPrefix(m.key, s) {
				mult = m.value
				break
			}
		}
		if mult == 0 {
			return 0, errPostfix
		}
	}
	return sign * n * mult, nil
}

var months = map[string]string{
	"enero": "January", "ene": "Jan",
	"febrero": "February", "feb": "Feb",
	"marzo": "March", "mar": "Mar",
	"abril": "April", "abr": "Apr",
	"mayo": "May", "may": "May",
	"junio": "June", "jun": "Jun",
	"julio": "July", "jul": "Jul",
	"agosto": "August", "ago": "Aug",
	"septiembre": "September", "setiembre": "September", "sep": "Sep", "sept": "Sep",
	"octubre": "October", "oct": "Oct",
	"noviembre": "November", "nov": "Nov",
	"diciembre": "December", "dic": "Dec",
	"january": "January", "jan": "Jan",
	"february": "February",
	"march": "March",
	"april": "April", "apr": "Apr",
	"june": "June",
	"july": "July",
	"august": "August", "aug": "Aug",
	"september": "September",
	"october": "October",
	"november": "November",
	"december": "December", "dec": "Dec",
}

// translate rewrites month names into the spelling time.Parse expects
func translate(s string) string {
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if f == "de" || f == "of" {
			continue
		}
		if m, ok := months[f]; ok {
			f = m
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

func parseAbsolute(s string, now time.Time) (time.Time, error) {
	for _, f := range formats {
		t, err := time.ParseInLocation(f, s, now.Location())
		if err != nil {
			continue
		}
		year, month := t.Year(), t.Month()
		if year == 0 {
			year = now.Year()
		}
		if !strings.Contains(f, "01") && !strings.Contains(f, "Jan") {
			month = now.Month()
		}
		return time.Date(year, month, t.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return time.Time{}, errFormat
}

var formats = []string{
	"_2",
	"_2/01",
	"_2/01/06",
	"_2/01/2006",
	"_2-01",
	"_2-01-06",
	"_2-01-2006",
	"2006-01-02",
	"Jan _2",
	"Jan _2 06",
	"Jan _2 2006",
	"January _2",
	"January _2 06",
	"January _2 2006",
	"_2 Jan",
	"_2 Jan 06",
	"_2 Jan 2006",
	"_2 January",
	"_2 January 06",
	"_2 January 2006",
}
