package date

import (
	"strconv"
	"time"
)

type Day string

const (
	Monday    Day = "Lunes"
	Tuesday   Day = "Martes"
	Wednesday Day = "Miércoles"
	Thursday  Day = "Jueves"
	Friday    Day = "Viernes"
	Saturday  Day = "Sábado"
	Sunday    Day = "Domingo"
)

// Days is the board order, Monday first
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Weekdays excludes the weekend
var Weekdays = Days[:5]

// Offset returns the number of days between the week's Monday and d
// it returns -1 for names that are not one of Days
func (d Day) Offset() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

func (d Day) Valid() bool {
	return d.Offset() >= 0
}

// Short returns the first n runes of the day name, "Mié" for n = 3
func (d Day) Short(n int) string {
	r := []rune(string(d))
	if n < len(r) {
		r = r[:n]
	}
	return string(r)
}

func DayOf(t time.Time) Day {
	return Days[(int(t.Weekday())+6)%7]
}

// WeekID is the YYYY-MM-DD date of a week's Monday in local time
type WeekID string

const weekLayout = "2006-01-02"

// StartOfWeek returns Monday 00:00 of the week containing t.
// Sunday belongs to the week that started the Monday before it.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	back := (int(t.Weekday()) + 6) % 7
	return time.Date(y, m, d-back, 0, 0, 0, 0, t.Location())
}

func WeekOf(t time.Time) WeekID {
	return WeekID(StartOfWeek(t).Format(weekLayout))
}

// Monday parses the week id back into its Monday at midnight in loc
func (w WeekID) Monday(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(weekLayout, string(w), loc)
}

func (w WeekID) String() string {
	return string(w)
}

// ShiftWeeks moves t by n whole weeks
func ShiftWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// ColumnDate returns the date of day within the week of ref
func ColumnDate(day Day, ref time.Time) time.Time {
	offset := day.Offset()
	if offset < 0 {
		offset = 0
	}
	return StartOfWeek(ref).AddDate(0, 0, offset)
}

// RangeLabel renders the week of t as "4 - 10 MAR" or "29 ENE - 4 FEB"
func RangeLabel(t time.Time) string {
	first := StartOfWeek(t)
	last := first.AddDate(0, 0, 6)
	if first.Month() == last.Month() {
		return strconv.Itoa(first.Day()) + " - " + strconv.Itoa(last.Day()) + " " + MonthAbbr(last.Month())
	}
	return strconv.Itoa(first.Day()) + " " + MonthAbbr(first.Month()) + " - " + strconv.Itoa(last.Day()) + " " + MonthAbbr(last.Month())
}

var (
	monthAbbr  = [12]string{"ENE", "FEB", "MAR", "ABR", "MAY", "JUN", "JUL", "AGO", "SEP", "OCT", "NOV", "DIC"}
	monthShort = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}
	monthNames = [12]string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio", "Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}
)

// MonthAbbr is the uppercase three letter month used in week labels
func MonthAbbr(m time.Month) string {
	return monthAbbr[m-1]
}

func MonthShort(m time.Month) string {
	return monthShort[m-1]
}

func MonthName(m time.Month) string {
	return monthNames[m-1]
}
