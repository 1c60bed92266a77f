// Package cmd implements the CLI application to work with fiscal years.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/fiscal"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&convertCmd{}, "dates")
	c.Register(&addCmd{}, "dates")
	c.Register(&calendarCmd{}, "dates")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var startMonth = flag.String("start", "january", "Month fiscal years start on, as a number (1-12) or a name")
var convention = flag.String("convention", "early", "Fiscal year naming convention: early (year it starts in) or late (year it ends in)")
var plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")

// stdout is where commands write their output.
var stdout io.Writer = os.Stdout

// FiscalYears returns the fiscal years configured by the global flags.
func FiscalYears() (fiscal.Years, error) {
	m, err := fiscal.ParseMonth(*startMonth)
	if err != nil {
		return fiscal.Years{}, fmt.Errorf("invalid -start flag: %w", err)
	}
	c, err := fiscal.ParseConvention(*convention)
	if err != nil {
		return fiscal.Years{}, fmt.Errorf("invalid -convention flag: %w", err)
	}
	return fiscal.NewYears(m, c)
}

// printMarkdown renders md for the terminal. It falls back to the raw markdown
// if the rendering is disabled or fails.
func printMarkdown(md string) {
	if *plain {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		log.Printf("warning, cannot render markdown: %v", err)
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		log.Printf("warning, cannot render markdown: %v", err)
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
