package utils

import (
	"time"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// TruncateDay returns the calendar day of t as midnight UTC, using the wall-clock
// fields of t's own location.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// FormatDate formats a calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysInclusive counts the calendar days in [start, end]. Returns 0 when end < start.
func DaysInclusive(start, end time.Time) int {
	s, e := TruncateDay(start), TruncateDay(end)
	if e.Before(s) {
		return 0
	}
	return int(dayNumber(e)-dayNumber(s)) + 1
}

// dayNumber counts days since the Unix epoch. t must be a midnight UTC calendar day.
func dayNumber(t time.Time) int64 {
	return t.Unix() / secondsPerDay
}

// EachDay returns every calendar day in [start, end], oldest first.
func EachDay(start, end time.Time) []time.Time {
	n := DaysInclusive(start, end)
	days := make([]time.Time, 0, n)
	d := TruncateDay(start)
	for i := 0; i < n; i++ {
		days = append(days, d)
		d = d.AddDate(0, 0, 1)
	}
	return days
}

// Overlaps is the inclusive interval intersection test.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !TruncateDay(aStart).After(TruncateDay(bEnd)) && !TruncateDay(aEnd).Before(TruncateDay(bStart))
}

// OverlapDays returns how many calendar days [aStart, aEnd] and [bStart, bEnd] share.
func OverlapDays(aStart, aEnd, bStart, bEnd time.Time) int {
	if !Overlaps(aStart, aEnd, bStart, bEnd) {
		return 0
	}
	start := TruncateDay(aStart)
	if s := TruncateDay(bStart); s.After(start) {
		start = s
	}
	end := TruncateDay(aEnd)
	if e := TruncateDay(bEnd); e.Before(end) {
		end = e
	}
	return DaysInclusive(start, end)
}

// MonthRange returns the first and last calendar day of the given month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	_, last := MonthRange(year, month)
	return last.Day()
}
