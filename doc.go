// Package fiscal provides a fiscal year calendar: twelve-month accounting
// years that may start on the first day of any calendar month.
//
// A fiscal year configuration is built once with [EarlyFiscalYear],
// [LateFiscalYear] or [NewYears], and then converts calendar dates into
// fiscal dates:
//
//	years, err := fiscal.LateFiscalYear(time.July)
//	if err != nil {
//		return err
//	}
//	fd := years.FromCalendarDate(date.New(2020, time.August, 15))
//	fd.FiscalYear()  // 2021
//	fd.FiscalMonth() // 2
//
// The conventions only differ in how a fiscal year is named:
//   - Early: after the calendar year in which it starts. July 2020 to June 2021 is FY2020.
//   - Late: after the calendar year in which it ends. July 2020 to June 2021 is FY2021.
//
// When fiscal years start in January both conventions name fiscal years
// after the calendar year.
//
// Fiscal dates are immutable values. Arithmetic (PlusDays, PlusWeeks,
// PlusMonths, PlusYears and their Minus counterparts) is done on the
// calendar date and the fiscal fields are derived again, so the calendar and
// fiscal representations can never drift apart. Arithmetic leaving the
// representable range returns [date.ErrOutOfRange].
//
// This package serves as the foundational logic for the `fy` command-line
// tool.
package fiscal
