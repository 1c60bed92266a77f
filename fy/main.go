// Command fy converts calendar dates into fiscal dates.
//
// Run `fy help` for the list of commands, and `fy topic` for documentation.
// Shell completion is installed with `COMP_INSTALL=1 fy`.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/fiscal/cmd"
	"github.com/etnz/fiscal/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var months = predict.Set{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// completion describes the command line for shell completion.
func completion() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"start":      months,
			"convention": predict.Set{"early", "late"},
			"plain":      predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"convert": {Flags: map[string]complete.Predictor{"json": predict.Nothing}},
			"add": {Flags: map[string]complete.Predictor{
				"n":    predict.Something,
				"unit": predict.Set{"day", "week", "month", "quarter", "year"},
				"json": predict.Nothing,
			}},
			"calendar": {Flags: map[string]complete.Predictor{
				"y": predict.Something,
				"m": predict.Set{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12"},
			}},
			"topic":    {Args: predict.Set(docs.Names())},
			"help":     {},
			"commands": {},
			"flags":    {},
		},
	}
}

func main() {
	name := path.Base(os.Args[0])
	// Complete exits when the shell is asking for completions.
	completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
