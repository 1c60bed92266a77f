package fiscal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/fiscal/date"
)

// ErrInvalidConfiguration is returned when a fiscal year cannot be configured.
var ErrInvalidConfiguration = errors.New("invalid fiscal year configuration")

// ErrInvalidFiscalDate is returned when fiscal coordinates name no day.
var ErrInvalidFiscalDate = errors.New("invalid fiscal date")

// Convention decides which calendar year names a fiscal year.
type Convention int

const (
	// Early names a fiscal year after the calendar year in which it starts.
	Early Convention = iota + 1
	// Late names a fiscal year after the calendar year in which it ends.
	Late
)

func (c Convention) String() string {
	switch c {
	case Early:
		return "early"
	case Late:
		return "late"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// ParseConvention parses "early" or "late".
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "early":
		return Early, nil
	case "late":
		return Late, nil
	default:
		return 0, fmt.Errorf("%w: unknown convention %q want early or late", ErrInvalidConfiguration, s)
	}
}

// ParseMonth parses a month number (1-12), an english month name or its
// three letters abbreviation.
func ParseMonth(s string) (time.Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("%w: month %d not in [1,12]", ErrInvalidConfiguration, n)
		}
		return time.Month(n), nil
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if s == name || s == name[:3] {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown month %q", ErrInvalidConfiguration, s)
}

// Years is a fiscal year configuration: the month fiscal years start on and
// the convention used to name them.
//
// Years is a small comparable value, it is safe to copy and share. The zero
// Years is not configured: build one with NewYears, EarlyFiscalYear or
// LateFiscalYear.
type Years struct {
	start      time.Month
	convention Convention
}

// EarlyFiscalYear returns fiscal years starting on startMonth and named after
// the calendar year they start in.
func EarlyFiscalYear(startMonth time.Month) (Years, error) { return NewYears(startMonth, Early) }

// LateFiscalYear returns fiscal years starting on startMonth and named after
// the calendar year they end in.
func LateFiscalYear(startMonth time.Month) (Years, error) { return NewYears(startMonth, Late) }

// NewYears returns the fiscal years configuration for a start month and a convention.
func NewYears(startMonth time.Month, c Convention) (Years, error) {
	if startMonth < time.January || startMonth > time.December {
		return Years{}, fmt.Errorf("%w: start month %d not in [1,12]", ErrInvalidConfiguration, int(startMonth))
	}
	if c != Early && c != Late {
		return Years{}, fmt.Errorf("%w: unknown convention %d", ErrInvalidConfiguration, int(c))
	}
	return Years{start: startMonth, convention: c}, nil
}

// MustYears is like NewYears but panics on error.
func MustYears(startMonth time.Month, c Convention) Years {
	y, err := NewYears(startMonth, c)
	if err != nil {
		panic(err.Error())
	}
	return y
}

// StartMonth returns the calendar month fiscal years start on.
func (y Years) StartMonth() time.Month { return y.start }

// Convention returns the naming convention.
func (y Years) Convention() Convention { return y.convention }

func (y Years) String() string {
	return fmt.Sprintf("%s fiscal year starting %s", y.convention, y.start)
}

// startYear returns the calendar year in which the fiscal year containing d started.
func (y Years) startYear(d date.Date) int {
	if d.Month() >= y.start {
		return d.Year()
	}
	return d.Year() - 1
}

// name returns the fiscal year of a fiscal year that started in startYear.
func (y Years) name(startYear int) int {
	if y.convention == Early || y.start == time.January {
		return startYear
	}
	return startYear + 1
}

// firstYear is the inverse of name.
func (y Years) firstYear(fiscalYear int) int {
	if y.convention == Early || y.start == time.January {
		return fiscalYear
	}
	return fiscalYear - 1
}

// YearRange returns the first and last calendar days of a fiscal year.
//
// The range is clamped to [date.Min, date.Max]: the first and the last
// fiscal years overlapping the representable dates are partial.
func (y Years) YearRange(fiscalYear int) date.Range {
	first := y.firstYear(fiscalYear)
	return date.Range{
		From: date.New(first, y.start, 1).Clamp(),
		To:   date.New(first+1, y.start, 0).Clamp(),
	}
}

// FromCalendarDate returns the fiscal date of a calendar date.
//
// It panics if y is the zero Years.
func (y Years) FromCalendarDate(d date.Date) Date {
	if y.start == 0 {
		panic("fiscal: FromCalendarDate on an unconfigured Years")
	}
	start := y.startYear(d)
	first := date.New(start, y.start, 1)
	month := (int(d.Month())-int(y.start)+12)%12 + 1
	dayOfYear := date.DaysBetween(first, d) + 1
	return Date{
		calendar:   d,
		years:      y,
		year:       y.name(start),
		month:      month,
		dayOfYear:  dayOfYear,
		weekOfYear: (dayOfYear-1)/7 + 1,
	}
}

// Of returns the fiscal date for fiscal coordinates. The day is the day of
// the month, like calendar days.
func (y Years) Of(fiscalYear, fiscalMonth, day int) (Date, error) {
	if fiscalMonth < 1 || fiscalMonth > 12 {
		return Date{}, fmt.Errorf("%w: fiscal month %d not in [1,12]", ErrInvalidFiscalDate, fiscalMonth)
	}
	start := y.firstYear(fiscalYear)
	// fiscal month 1 is y.start in the start year, later months may roll over.
	cy, cm := start, y.start+time.Month(fiscalMonth-1)
	if cm > time.December {
		cy, cm = cy+1, cm-12
	}
	if day < 1 || day > date.DaysIn(cy, cm) {
		return Date{}, fmt.Errorf("%w: day %d not in fiscal month %d (%s %d)", ErrInvalidFiscalDate, day, fiscalMonth, cm, cy)
	}
	if cy < date.MinYear || cy > date.MaxYear {
		return Date{}, fmt.Errorf("fiscal year %d: %w", fiscalYear, date.ErrOutOfRange)
	}
	return y.FromCalendarDate(date.New(cy, cm, day)), nil
}
