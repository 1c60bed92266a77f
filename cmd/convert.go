package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fiscal"
	"github.com/etnz/fiscal/date"
	"github.com/etnz/fiscal/renderer"
	"github.com/google/subcommands"
)

type convertCmd struct {
	json bool
}

func (*convertCmd) Name() string { return "convert" }
func (*convertCmd) Synopsis() string {
	return "display the fiscal year, quarter, month and week of dates"
}
func (*convertCmd) Usage() string {
	return `fy [-start <month>] [-convention <early|late>] convert [-json] [<date>...]

  Displays the fiscal coordinates of calendar dates (defaults to today).
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print one JSON object per date")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	years, err := FiscalYears()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	args := f.Args()
	if len(args) == 0 {
		args = []string{date.Today().String()}
	}
	dates := make([]fiscal.Date, 0, len(args))
	for _, arg := range args {
		d, err := date.Parse(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		dates = append(dates, years.FromCalendarDate(d))
	}

	if c.json {
		return printJSON(dates...)
	}
	if len(dates) == 1 {
		printMarkdown(renderer.FiscalDate(dates[0]))
	} else {
		printMarkdown(renderer.FiscalDates(dates))
	}
	return subcommands.ExitSuccess
}

// printJSON prints fiscal dates as JSON lines.
func printJSON(dates ...fiscal.Date) subcommands.ExitStatus {
	enc := json.NewEncoder(stdout)
	for _, d := range dates {
		if err := enc.Encode(d); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding %v: %v\n", d, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
