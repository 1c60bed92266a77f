package fiscal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/etnz/fiscal/date"
	"github.com/shopspring/decimal"
)

// Date is a calendar date seen through a fiscal year configuration.
//
// Fiscal fields are derived once, when the Date is built, from the calendar
// date and the Years; arithmetic always works on the calendar date and
// derives them again. Two Dates are == when they have the same calendar date
// and the same Years.
type Date struct {
	calendar date.Date
	years    Years

	year       int
	month      int
	dayOfYear  int
	weekOfYear int
}

// AsCalendarDate returns the underlying calendar date.
func (f Date) AsCalendarDate() date.Date { return f.calendar }

// Years returns the fiscal year configuration of f.
func (f Date) Years() Years { return f.years }

// CalendarYear returns the calendar year.
func (f Date) CalendarYear() int { return f.calendar.Year() }

// CalendarMonth returns the calendar month, in [1,12].
func (f Date) CalendarMonth() int { return int(f.calendar.Month()) }

// CalendarDayOfMonth returns the calendar day of the month.
func (f Date) CalendarDayOfMonth() int { return f.calendar.Day() }

// CalendarWeekOfWeekyear returns the ISO 8601 week number of the calendar date.
func (f Date) CalendarWeekOfWeekyear() int {
	_, week := f.calendar.ISOWeek()
	return week
}

// FiscalYear returns the fiscal year, named according to the convention.
func (f Date) FiscalYear() int { return f.year }

// FiscalMonth returns the month within the fiscal year, 1 being the start month.
func (f Date) FiscalMonth() int { return f.month }

// FiscalDayOfMonth returns the day within the fiscal month, it is always the calendar day.
func (f Date) FiscalDayOfMonth() int { return f.calendar.Day() }

// FiscalDayOfYear returns the day within the fiscal year, starting at 1.
func (f Date) FiscalDayOfYear() int { return f.dayOfYear }

// FiscalWeekOfYear returns the week within the fiscal year. Week 1 starts on
// the first day of the fiscal year, whatever the weekday.
func (f Date) FiscalWeekOfYear() int { return f.weekOfYear }

// FiscalQuarter returns the quarter within the fiscal year, in [1,4].
func (f Date) FiscalQuarter() int { return (f.month-1)/3 + 1 }

// Before reports whether f is before g.
func (f Date) Before(g Date) bool { return f.calendar.Before(g.calendar) }

// After reports whether f is after g.
func (f Date) After(g Date) bool { return f.calendar.After(g.calendar) }

// Compare compares calendar dates, see [date.Date.Compare].
func (f Date) Compare(g Date) int { return f.calendar.Compare(g.calendar) }

// with returns the fiscal date of d under the same configuration.
func (f Date) with(d date.Date, err error) (Date, error) {
	if err != nil {
		return Date{}, fmt.Errorf("fiscal date %v: %w", f, err)
	}
	return f.years.FromCalendarDate(d), nil
}

// PlusDays returns the fiscal date n days after f.
func (f Date) PlusDays(n int) (Date, error) { return f.with(f.calendar.AddDays(n)) }

// MinusDays returns the fiscal date n days before f.
func (f Date) MinusDays(n int) (Date, error) { return f.PlusDays(-n) }

// PlusWeeks returns the fiscal date n weeks after f.
func (f Date) PlusWeeks(n int) (Date, error) { return f.with(f.calendar.AddWeeks(n)) }

// MinusWeeks returns the fiscal date n weeks before f.
func (f Date) MinusWeeks(n int) (Date, error) { return f.PlusWeeks(-n) }

// PlusMonths returns the fiscal date n months after f. The day is clamped to
// the end of the resulting month.
func (f Date) PlusMonths(n int) (Date, error) { return f.with(f.calendar.AddMonths(n)) }

// MinusMonths returns the fiscal date n months before f.
func (f Date) MinusMonths(n int) (Date, error) { return f.PlusMonths(-n) }

// PlusYears returns the fiscal date n years after f.
func (f Date) PlusYears(n int) (Date, error) { return f.with(f.calendar.AddYears(n)) }

// MinusYears returns the fiscal date n years before f.
func (f Date) MinusYears(n int) (Date, error) { return f.PlusYears(-n) }

// YearRange returns the calendar range of the fiscal year of f, see [Years.YearRange].
func (f Date) YearRange() date.Range { return f.years.YearRange(f.year) }

// StartOfFiscalYear returns the first day of the fiscal year.
func (f Date) StartOfFiscalYear() Date { return f.years.FromCalendarDate(f.YearRange().From) }

// EndOfFiscalYear returns the last day of the fiscal year.
func (f Date) EndOfFiscalYear() Date { return f.years.FromCalendarDate(f.YearRange().To) }

// StartOfFiscalMonth returns the first day of the fiscal month.
func (f Date) StartOfFiscalMonth() Date {
	return f.years.FromCalendarDate(f.calendar.StartOf(date.Monthly))
}

// EndOfFiscalMonth returns the last day of the fiscal month.
func (f Date) EndOfFiscalMonth() Date {
	return f.years.FromCalendarDate(f.calendar.EndOf(date.Monthly))
}

// StartOfFiscalQuarter returns the first day of the fiscal quarter, or
// [date.Min] if the quarter starts before it.
func (f Date) StartOfFiscalQuarter() Date {
	back := time.Month((f.month - 1) % 3)
	first := date.New(f.calendar.Year(), f.calendar.Month()-back, 1)
	return f.years.FromCalendarDate(first.Clamp())
}

// EndOfFiscalQuarter returns the last day of the fiscal quarter, or
// [date.Max] if the quarter ends after it.
func (f Date) EndOfFiscalQuarter() Date {
	ahead := time.Month(2 - (f.month-1)%3)
	last := date.New(f.calendar.Year(), f.calendar.Month()+ahead+1, 0)
	return f.years.FromCalendarDate(last.Clamp())
}

// Elapsed returns the fraction of the fiscal year elapsed at the end of the day f.
func (f Date) Elapsed() decimal.Decimal {
	r := f.YearRange()
	done := date.DaysBetween(r.From, f.calendar) + 1
	return decimal.NewFromInt(int64(done)).Div(decimal.NewFromInt(int64(r.Len()))).Round(4)
}

// String formats f as FY<year>-M<month>-<day>, e.g. FY2021-M02-15.
func (f Date) String() string {
	return fmt.Sprintf("FY%d-M%02d-%02d", f.year, f.month, f.calendar.Day())
}

// jsonDate is the JSON representation of a fiscal Date.
type jsonDate struct {
	Date                   date.Date `json:"date"`
	Start                  string    `json:"start"`
	Convention             string    `json:"convention"`
	FiscalYear             int       `json:"fiscalYear"`
	FiscalQuarter          int       `json:"fiscalQuarter"`
	FiscalMonth            int       `json:"fiscalMonth"`
	FiscalDayOfMonth       int       `json:"fiscalDayOfMonth"`
	FiscalDayOfYear        int       `json:"fiscalDayOfYear"`
	FiscalWeekOfYear       int       `json:"fiscalWeekOfYear"`
	CalendarWeekOfWeekyear int       `json:"calendarWeekOfWeekyear"`
}

// MarshalJSON writes the calendar date, its configuration and every fiscal field.
func (f Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonDate{
		Date:                   f.calendar,
		Start:                  f.years.start.String(),
		Convention:             f.years.convention.String(),
		FiscalYear:             f.year,
		FiscalQuarter:          f.FiscalQuarter(),
		FiscalMonth:            f.month,
		FiscalDayOfMonth:       f.FiscalDayOfMonth(),
		FiscalDayOfYear:        f.dayOfYear,
		FiscalWeekOfYear:       f.weekOfYear,
		CalendarWeekOfWeekyear: f.CalendarWeekOfWeekyear(),
	})
}

// UnmarshalJSON reads back what MarshalJSON writes. Fiscal fields are derived
// from the date, start and convention, the others are ignored.
func (f *Date) UnmarshalJSON(data []byte) error {
	var j jsonDate
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	if j.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidFiscalDate)
	}
	start, err := ParseMonth(j.Start)
	if err != nil {
		return err
	}
	c, err := ParseConvention(j.Convention)
	if err != nil {
		return err
	}
	y, err := NewYears(start, c)
	if err != nil {
		return err
	}
	*f = y.FromCalendarDate(j.Date)
	return nil
}

var _ json.Marshaler = Date{}
var _ json.Unmarshaler = (*Date)(nil)
