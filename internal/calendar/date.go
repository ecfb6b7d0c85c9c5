package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the ISO calendar-date layout used for every date key.
const Layout = "2006-01-02"

// ErrInvalidDate is returned when a string is not a YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid calendar date")

// Date is a calendar date key in YYYY-MM-DD form with no time component.
// Lexical order of valid keys matches chronological order.
type Date string

// Parse validates s and returns it as a Date.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date(t.Format(Layout)), nil
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	return Date(t.Format(Layout))
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return string(d)
}

// Valid reports whether d is a well-formed calendar date.
func (d Date) Valid() bool {
	_, err := time.Parse(Layout, string(d))
	return err == nil
}

// Time returns midnight UTC of d. Day arithmetic is done in UTC so no DST
// transition can stretch or shrink a day.
func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(Layout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, string(d))
	}
	return t, nil
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) (Date, error) {
	t, err := d.Time()
	if err != nil {
		return "", err
	}
	return FromTime(t.AddDate(0, 0, n)), nil
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d < other
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d > other
}

// DaysBetween returns the signed number of whole days from a to b.
func DaysBetween(a, b Date) (int, error) {
	ta, err := a.Time()
	if err != nil {
		return 0, err
	}
	tb, err := b.Time()
	if err != nil {
		return 0, err
	}
	return daysBetween(ta, tb), nil
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
