package date

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrUnknownDay = errors.New("unknown day")
	ErrWeekID     = errors.New("invalid week id")
)

// Lookup matches s against the canonical day names, ignoring case and
// surrounding space
func Lookup(s string) (Day, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Days {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

// aliases accepted from the command line on top of the canonical names
var aliases = map[string]Day{
	"lun": Monday, "mon": Monday, "monday": Monday,
	"mar": Tuesday, "tue": Tuesday, "tuesday": Tuesday,
	"mie": Wednesday, "mié": Wednesday, "miercoles": Wednesday, "wed": Wednesday, "wednesday": Wednesday,
	"jue": Thursday, "thu": Thursday, "thursday": Thursday,
	"vie": Friday, "fri": Friday, "friday": Friday,
	"sab": Saturday, "sáb": Saturday, "sabado": Saturday, "sat": Saturday, "saturday": Saturday,
	"dom": Sunday, "sun": Sunday, "sunday": Sunday,
}

// ParseDay is a lenient version of Lookup.
// It also takes short and english names, plus 1-7 with Monday as 1.
func ParseDay(s string) (Day, error) {
	if d, ok := Lookup(s); ok {
		return d, nil
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if d, ok := aliases[s]; ok {
		return d, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(Days) {
		return Days[n-1], nil
	}
	return "", ErrUnknownDay
}

// ParseWeekID accepts any YYYY-MM-DD date and returns the id of its week
func ParseWeekID(s string) (WeekID, error) {
	t, err := time.ParseInLocation(weekLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return "", ErrWeekID
	}
	return WeekOf(t), nil
}
