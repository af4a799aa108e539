// Package caldate models calendar dates as ISO YYYY-MM-DD strings.
//
// A Date carries no time of day and no zone. Two dates compare by plain
// string order, which for the fixed-width layout is also calendar order.
package caldate

import (
	"fmt"
	"time"
)

// Layout is the wire and display format of a Date.
const Layout = "2006-01-02"

// Date is a calendar date in Layout form.
type Date string

// Of returns the date of t in t's own location.
func Of(t time.Time) Date {
	return Date(t.Format(Layout))
}

// New builds a date from its parts. Out-of-range parts normalize the way
// time.Date does, so New(2024, 3, 0) is 2024-02-29.
func New(year int, month time.Month, day int) Date {
	return Of(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Parse checks that s is a real calendar date in Layout form.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Of(t), nil
}

func (d Date) String() string { return string(d) }

func (d Date) Before(o Date) bool { return d < o }

func (d Date) After(o Date) bool { return d > o }

func (d Date) Valid() bool {
	_, err := time.Parse(Layout, string(d))
	return err == nil
}

// Parts splits a valid date into year, month and day.
func (d Date) Parts() (int, time.Month, int) {
	t, err := time.Parse(Layout, string(d))
	if err != nil {
		return 0, 0, 0
	}
	return t.Year(), t.Month(), t.Day()
}

// Clock reports the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Today is the client-local date of c.
func Today(c Clock) Date {
	return Of(c.Now().In(time.Local))
}

// DaysIn returns the length of month in year. Day zero of the following
// month is the last day of this one.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday is the weekday of the first of the month, Sunday = 0.
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
