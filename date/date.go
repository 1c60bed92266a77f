// Package date provides a calendar date with day granularity and the calendar
// arithmetic the fiscal calendar is built on.
//
// Dates are time-zone naive: a Date is a (year, month, day) triple in the
// proleptic Gregorian calendar.
package date

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// Representable range of years.
const (
	MinYear = -999_999_999
	MaxYear = 999_999_999
)

// First and last representable dates.
var (
	Min = Date{MinYear, time.January, 1}
	Max = Date{MaxYear, time.December, 31}
)

// ErrOutOfRange is returned by arithmetic whose result is not between MinYear and MaxYear.
var ErrOutOfRange = errors.New("date out of range")

// Largest offsets that can possibly stay in range. They keep time.Date away
// from integer overflow.
const (
	maxDays   = (MaxYear - MinYear + 1) * 366
	maxMonths = (MaxYear - MinYear + 1) * 12
)

// Date represents a date with day-level granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// ISOWeek returns the ISO 8601 year and week number in which d occurs.
func (d Date) ISOWeek() (year, week int) { return d.time().ISOWeek() }

// YearDay returns the day of the calendar year, in [1,365] or [1,366].
func (d Date) YearDay() int { return d.time().YearDay() }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d == Date{} }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted according to the layout defined by the argument.
//
//	See the documentation for the [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.Compare(x) > 0 }

// Compare returns -1, 0 or +1 whether d is before, equal to or after x.
func (d Date) Compare(x Date) int {
	switch {
	case d.y != x.y:
		return cmpInt(d.y, x.y)
	case d.m != x.m:
		return cmpInt(int(d.m), int(x.m))
	default:
		return cmpInt(d.d, x.d)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// inRange reports whether the year is representable.
func inRange(year int) bool { return year >= MinYear && year <= MaxYear }

// Clamp returns d moved into [Min, Max].
func (d Date) Clamp() Date {
	switch {
	case d.Before(Min):
		return Min
	case d.After(Max):
		return Max
	}
	return d
}

// AddDays returns the date n days after d (before d if n is negative).
func (d Date) AddDays(n int) (Date, error) {
	if n > maxDays || n < -maxDays {
		return Date{}, fmt.Errorf("%v plus %d days: %w", d, n, ErrOutOfRange)
	}
	r := New(d.y, d.m, d.d+n)
	if !inRange(r.y) {
		return Date{}, fmt.Errorf("%v plus %d days: %w", d, n, ErrOutOfRange)
	}
	return r, nil
}

// AddWeeks returns the date n weeks after d.
func (d Date) AddWeeks(n int) (Date, error) {
	if n > maxDays/7 || n < -maxDays/7 {
		return Date{}, fmt.Errorf("%v plus %d weeks: %w", d, n, ErrOutOfRange)
	}
	return d.AddDays(7 * n)
}

// AddMonths returns the date n months after d.
//
// The day of month is clamped to the last day of the resulting month, so
// that January 31 plus one month is the last day of February.
func (d Date) AddMonths(n int) (Date, error) {
	if n > maxMonths || n < -maxMonths {
		return Date{}, fmt.Errorf("%v plus %d months: %w", d, n, ErrOutOfRange)
	}
	total := d.y*12 + int(d.m-1) + n
	y := floorDiv(total, 12)
	m := time.Month(total-y*12) + 1
	if !inRange(y) {
		return Date{}, fmt.Errorf("%v plus %d months: %w", d, n, ErrOutOfRange)
	}
	return Date{y, m, min(d.d, DaysIn(y, m))}, nil
}

// AddYears returns the date n years after d, February 29 being clamped to February 28.
func (d Date) AddYears(n int) (Date, error) {
	if n > maxMonths/12 || n < -maxMonths/12 {
		return Date{}, fmt.Errorf("%v plus %d years: %w", d, n, ErrOutOfRange)
	}
	return d.AddMonths(12 * n)
}

// floorDiv is the integer division rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one.
	return New(year, month+1, 0).d
}

// DaysBetween returns the number of days from a to b, negative if b is before a.
func DaysBetween(a, b Date) int {
	// time.Duration cannot span more than ~292 years, unix seconds can.
	return int((b.time().Unix() - a.time().Unix()) / 86400)
}

// MonthsBetween returns the number of whole months from a to b.
//
// A trailing partial month is not counted: from January 31 to February 28 is
// zero months, from January 15 to February 15 is one month.
func MonthsBetween(a, b Date) int {
	months := (b.y*12 + int(b.m)) - (a.y*12 + int(a.m))
	days := b.d - a.d
	switch {
	case months > 0 && days < 0:
		months--
	case months < 0 && days > 0:
		months++
	}
	return months
}

// Parse parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	// We use a slightly more permisive format for read, to support 2025-7-1 instead of 2025-07-01
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := Parse(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
