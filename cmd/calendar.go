package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fiscal"
	"github.com/etnz/fiscal/date"
	"github.com/etnz/fiscal/renderer"
	"github.com/google/subcommands"
)

type calendarCmd struct {
	year  int
	month int
}

func (*calendarCmd) Name() string     { return "calendar" }
func (*calendarCmd) Synopsis() string { return "display the months of a fiscal year" }
func (*calendarCmd) Usage() string {
	return `fy [-start <month>] [-convention <early|late>] calendar [-y <fiscal year>] [-m <fiscal month>]

  Displays the twelve fiscal months and the four quarters of a fiscal year,
  with their calendar boundaries. Defaults to the current fiscal year.

  With -m, lists every day of that fiscal month instead.
`
}

func (c *calendarCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "y", 0, "Fiscal year to display (defaults to the current one)")
	f.IntVar(&c.month, "m", 0, "Fiscal month (1-12) whose days are listed")
}

func (c *calendarCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	years, err := FiscalYears()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	year := c.year
	if year == 0 {
		year = years.FromCalendarDate(date.Today()).FiscalYear()
	}
	if c.month == 0 {
		printMarkdown(renderer.Calendar(years, year))
		return subcommands.ExitSuccess
	}

	days, err := monthDays(years, year, c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.FiscalDates(days))
	return subcommands.ExitSuccess
}

// monthDays returns every day of a fiscal month.
func monthDays(y fiscal.Years, fiscalYear, fiscalMonth int) ([]fiscal.Date, error) {
	first, err := y.Of(fiscalYear, fiscalMonth, 1)
	if err != nil {
		return nil, err
	}
	var days []fiscal.Date
	for d := range date.NewRange(first.AsCalendarDate(), first.EndOfFiscalMonth().AsCalendarDate()).Days() {
		days = append(days, y.FromCalendarDate(d))
	}
	return days, nil
}
