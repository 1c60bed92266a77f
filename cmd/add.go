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

type addCmd struct {
	n    int
	unit string
	json bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add days, weeks, months or years to a fiscal date" }
func (*addCmd) Usage() string {
	return `fy [-start <month>] [-convention <early|late>] add -n <amount> [-unit <day|week|month|year>] [-json] [<date>]

  Adds an amount of time to a date (defaults to today) and displays the
  resulting fiscal date. Negative amounts go back in time.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.n, "n", 0, "Amount of units to add, negative to subtract")
	f.StringVar(&c.unit, "unit", "day", "Unit of the amount (day, week, month, year)")
	f.BoolVar(&c.json, "json", false, "Print the result as JSON")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	years, err := FiscalYears()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: add takes at most one date.")
		return subcommands.ExitUsageError
	}
	on := date.Today()
	if f.NArg() == 1 {
		if on, err = date.Parse(f.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	period, err := date.ParsePeriod(c.unit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing unit: %v\n", err)
		return subcommands.ExitUsageError
	}

	result, err := add(years.FromCalendarDate(on), c.n, period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		return printJSON(result)
	}
	printMarkdown(renderer.FiscalDate(result))
	return subcommands.ExitSuccess
}

// add adds n periods to d.
func add(d fiscal.Date, n int, unit date.Period) (fiscal.Date, error) {
	switch unit {
	case date.Daily:
		return d.PlusDays(n)
	case date.Weekly:
		return d.PlusWeeks(n)
	case date.Monthly:
		return d.PlusMonths(n)
	case date.Quarterly:
		return d.PlusMonths(3 * n)
	case date.Yearly:
		return d.PlusYears(n)
	default:
		return fiscal.Date{}, fmt.Errorf("unsupported unit %v", unit)
	}
}
