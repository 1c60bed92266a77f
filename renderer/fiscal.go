package renderer

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/etnz/fiscal"
	"github.com/etnz/fiscal/date"
	md "github.com/nao1215/markdown"
)

// FiscalDate renders a fiscal date with its calendar and fiscal coordinates.
func FiscalDate(d fiscal.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	cal := d.AsCalendarDate()
	doc.H1(fmt.Sprintf("%s, %s", cal, d))
	doc.PlainText(fmt.Sprintf("Using the %s.", d.Years()))

	y := d.YearRange()
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Field"), md.Bold("Value")},
		Rows: [][]string{
			{"Calendar Date", fmt.Sprintf("%s (%s)", cal, cal.Weekday())},
			{"Calendar Week", fmt.Sprintf("W%02d", d.CalendarWeekOfWeekyear())},
			{"Fiscal Year", fmt.Sprintf("FY%d", d.FiscalYear())},
			{"Fiscal Quarter", fmt.Sprintf("Q%d", d.FiscalQuarter())},
			{"Fiscal Month", fmt.Sprintf("%d (%s)", d.FiscalMonth(), cal.Month())},
			{"Fiscal Day of Month", fmt.Sprint(d.FiscalDayOfMonth())},
			{"Fiscal Day of Year", fmt.Sprintf("%d / %d", d.FiscalDayOfYear(), y.Len())},
			{"Fiscal Week", fmt.Sprintf("W%02d", d.FiscalWeekOfYear())},
			{"Fiscal Year Span", fmt.Sprintf("%s to %s", y.From, y.To)},
			{"Elapsed", d.Elapsed().Shift(2).StringFixed(2) + "%"},
		},
	})
	return doc.String()
}

// FiscalDates renders a list of fiscal dates as a single table, one row per date.
func FiscalDates(dates []fiscal.Date) string {
	var b strings.Builder
	ConditionalBlock(&b, func(w io.Writer) bool {
		if len(dates) == 0 {
			return false
		}
		doc := md.NewMarkdown(w)
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Date", "Fiscal Year", "Quarter", "Month", "Day", "Week", "Calendar Week"},
		}
		for _, d := range dates {
			table.Rows = append(table.Rows, []string{
				d.AsCalendarDate().String(),
				fmt.Sprintf("FY%d", d.FiscalYear()),
				fmt.Sprintf("Q%d", d.FiscalQuarter()),
				fmt.Sprint(d.FiscalMonth()),
				fmt.Sprint(d.FiscalDayOfMonth()),
				fmt.Sprintf("W%02d", d.FiscalWeekOfYear()),
				fmt.Sprintf("W%02d", d.CalendarWeekOfWeekyear()),
			})
		}
		doc.Table(table)
		return doc.Build() == nil
	})
	return b.String()
}

// Calendar renders the twelve fiscal months of a fiscal year, and its quarters.
func Calendar(y fiscal.Years, fiscalYear int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	r := y.YearRange(fiscalYear)
	doc.H1(fmt.Sprintf("Fiscal Year %d", fiscalYear))
	summary := fmt.Sprintf("From %s to %s (%d days), %s.", r.From, r.To, r.Len(), y)
	if name := calendarPeriod(r); name != "" {
		summary += fmt.Sprintf(" It is the calendar year %s.", name)
	}
	doc.PlainText(summary)

	months := slices.Collect(r.Periods(date.Monthly))
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Month", "Quarter", "Calendar Month", "First Day", "Last Day", "Days"},
	}
	for _, month := range months {
		first := y.FromCalendarDate(month.From)
		table.Rows = append(table.Rows, []string{
			fmt.Sprint(first.FiscalMonth()),
			fmt.Sprintf("Q%d", first.FiscalQuarter()),
			month.From.Format("January 2006"),
			month.From.String(),
			month.To.String(),
			fmt.Sprint(month.Len()),
		})
	}
	doc.Table(table)

	quarters := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"Quarter", "First Day", "Last Day", "Days", "Calendar Quarter"},
	}
	for i := 0; i < len(months); i += 3 {
		q := date.NewRange(months[i].From, months[min(i+2, len(months)-1)].To)
		quarters.Rows = append(quarters.Rows, []string{
			fmt.Sprintf("Q%d", y.FromCalendarDate(q.From).FiscalQuarter()),
			q.From.String(),
			q.To.String(),
			fmt.Sprint(q.Len()),
			calendarPeriod(q),
		})
	}
	doc.Table(quarters)
	return doc.String()
}

// calendarPeriod names r when it is exactly a calendar quarter or year.
func calendarPeriod(r date.Range) string {
	p, ok := r.Period()
	switch {
	case !ok:
		return ""
	case p == date.Quarterly:
		return fmt.Sprintf("Q%d %d", (r.From.Month()-1)/3+1, r.From.Year())
	case p == date.Yearly:
		return fmt.Sprint(r.From.Year())
	}
	return ""
}
