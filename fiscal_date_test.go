package fiscal

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/etnz/fiscal/date"
	"github.com/shopspring/decimal"
	"pgregory.net/rapid"
)

// genOffset draws small steps and offsets spanning hundreds of millions of units.
func genOffset() *rapid.Generator[int] {
	return rapid.OneOf(
		rapid.SampledFrom([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 25, 50, 100, 5000}),
		rapid.IntRange(-292_275_054, 292_278_993),
	)
}

// native returns the time.Time of a calendar date, for comparisons against the standard library.
func native(d date.Date) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func TestFiscalDate_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		y := genYears().Draw(t, "years")
		d := genCalendarDate(31).Draw(t, "date")

		f := y.FromCalendarDate(d)
		if f.AsCalendarDate() != d {
			t.Fatalf("AsCalendarDate() = %v, want %v", f.AsCalendarDate(), d)
		}
		if f.CalendarYear() != d.Year() || f.CalendarMonth() != int(d.Month()) || f.CalendarDayOfMonth() != d.Day() {
			t.Fatalf("calendar fields of %v do not match %v", f, d)
		}
		if f != y.FromCalendarDate(d) {
			t.Fatalf("same date and configuration built unequal fiscal dates")
		}
	})
}

func TestFiscalDate_PlusDays(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		y := genYears().Draw(t, "years")
		f := y.FromCalendarDate(genCalendarDate(31).Draw(t, "date"))
		n := genOffset().Draw(t, "days")

		got, err := f.PlusDays(n)
		if err != nil {
			t.Fatalf("PlusDays(%d): %v", n, err)
		}
		want := date.New(native(f.AsCalendarDate()).AddDate(0, 0, n).Date())
		if got.AsCalendarDate() != want {
			t.Fatalf("%v.PlusDays(%d) = %v, want %v", f.AsCalendarDate(), n, got.AsCalendarDate(), want)
		}
		if got != y.FromCalendarDate(want) {
			t.Fatalf("PlusDays(%d) = %v did not derive fiscal fields from %v", n, got, want)
		}

		back, err := got.MinusDays(n)
		if err != nil {
			t.Fatalf("MinusDays(%d): %v", n, err)
		}
		if back != f {
			t.Fatalf("%v.PlusDays(%d).MinusDays(%d) = %v", f, n, n, back)
		}
	})
}

func TestFiscalDate_PlusWeeks(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		y := genYears().Draw(t, "years")
		f := y.FromCalendarDate(genCalendarDate(31).Draw(t, "date"))
		n := genOffset().Draw(t, "weeks")

		got, err := f.PlusWeeks(n)
		if err != nil {
			t.Fatalf("PlusWeeks(%d): %v", n, err)
		}
		want := date.New(native(f.AsCalendarDate()).AddDate(0, 0, 7*n).Date())
		if got.AsCalendarDate() != want {
			t.Fatalf("%v.PlusWeeks(%d) = %v, want %v", f.AsCalendarDate(), n, got.AsCalendarDate(), want)
		}
		if got.Years() != y {
			t.Fatalf("PlusWeeks(%d) changed the configuration", n)
		}

		back, err := got.MinusWeeks(n)
		if err != nil || back != f {
			t.Fatalf("%v.PlusWeeks(%d).MinusWeeks(%d) = %v, %v", f, n, n, back, err)
		}
	})
}

func TestFiscalDate_PlusMonths(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		y := genYears().Draw(t, "years")
		f := y.FromCalendarDate(genCalendarDate(28).Draw(t, "date"))
		n := genOffset().Draw(t, "months")

		got, err := f.PlusMonths(n)
		if err != nil {
			t.Fatalf("PlusMonths(%d): %v", n, err)
		}
		if between := date.MonthsBetween(f.AsCalendarDate(), got.AsCalendarDate()); between != n {
			t.Fatalf("%v.PlusMonths(%d) = %v is %d months away", f.AsCalendarDate(), n, got.AsCalendarDate(), between)
		}
		if got.FiscalDayOfMonth() != f.FiscalDayOfMonth() {
			t.Fatalf("PlusMonths(%d) changed the day of month from %d to %d", n, f.FiscalDayOfMonth(), got.FiscalDayOfMonth())
		}
		if want := ((f.FiscalMonth()-1+n)%12+12)%12 + 1; got.FiscalMonth() != want {
			t.Fatalf("%v.PlusMonths(%d).FiscalMonth() = %d, want %d", f, n, got.FiscalMonth(), want)
		}

		back, err := got.MinusMonths(n)
		if err != nil || back != f {
			t.Fatalf("%v.PlusMonths(%d).MinusMonths(%d) = %v, %v", f, n, n, back, err)
		}
	})
}

func TestFiscalDate_PlusYears(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		y := genYears().Draw(t, "years")
		f := y.FromCalendarDate(genCalendarDate(28).Draw(t, "date"))
		n := rapid.IntRange(-1_000_000, 1_000_000).Draw(t, "years offset")

		got, err := f.PlusYears(n)
		if err != nil {
			t.Fatalf("PlusYears(%d): %v", n, err)
		}
		if got.FiscalYear() != f.FiscalYear()+n || got.FiscalMonth() != f.FiscalMonth() || got.FiscalDayOfMonth() != f.FiscalDayOfMonth() {
			t.Fatalf("%v.PlusYears(%d) = %v", f, n, got)
		}
		if back, err := got.MinusYears(n); err != nil || back != f {
			t.Fatalf("%v.PlusYears(%d).MinusYears(%d) = %v, %v", f, n, n, back, err)
		}
	})
}

func TestFiscalDate_CalendarWeekOfWeekyear(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		y := genYears().Draw(t, "years")
		d := genCalendarDate(31).Draw(t, "date")

		_, want := native(d).ISOWeek()
		if got := y.FromCalendarDate(d).CalendarWeekOfWeekyear(); got != want {
			t.Fatalf("CalendarWeekOfWeekyear(%v) = %d, want %d", d, got, want)
		}
	})
}

func TestFiscalDate_PlusMonthsClamps(t *testing.T) {
	f := MustYears(time.July, Early).FromCalendarDate(date.New(2021, time.January, 31))
	got, err := f.PlusMonths(1)
	if err != nil {
		t.Fatal(err)
	}
	if want := date.New(2021, time.February, 28); got.AsCalendarDate() != want {
		t.Errorf("PlusMonths(1) = %v, want %v", got.AsCalendarDate(), want)
	}
	if got.FiscalMonth() != 8 || got.FiscalYear() != 2020 {
		t.Errorf("PlusMonths(1) = %v, want FY2020-M08-28", got)
	}
}

func TestFiscalDate_OutOfRange(t *testing.T) {
	y := MustYears(time.July, Late)
	last := y.FromCalendarDate(date.New(date.MaxYear, time.December, 31))
	first := y.FromCalendarDate(date.New(date.MinYear, time.January, 1))

	testCases := []struct {
		name string
		op   func() (Date, error)
	}{
		{"plus days", func() (Date, error) { return last.PlusDays(1) }},
		{"minus days", func() (Date, error) { return first.MinusDays(1) }},
		{"plus weeks", func() (Date, error) { return last.PlusWeeks(1) }},
		{"minus weeks", func() (Date, error) { return first.MinusWeeks(1) }},
		{"plus months", func() (Date, error) { return last.PlusMonths(1) }},
		{"minus months", func() (Date, error) { return first.MinusMonths(1) }},
		{"plus years", func() (Date, error) { return last.PlusYears(1) }},
		{"minus years", func() (Date, error) { return first.MinusYears(1) }},
		{"huge offset", func() (Date, error) { return first.PlusDays(1 << 60) }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.op()
			if !errors.Is(err, date.ErrOutOfRange) {
				t.Errorf("error = %v, want ErrOutOfRange", err)
			}
			if got != (Date{}) {
				t.Errorf("got %v along an error", got)
			}
		})
	}
}

func TestFiscalDate_BoundariesAtTheEdges(t *testing.T) {
	testCases := []struct {
		name  string
		years Years
		in    date.Date
		got   func(Date) Date
		want  date.Date
	}{
		{"end of last year", MustYears(time.July, Early), date.Max, Date.EndOfFiscalYear, date.Max},
		{"start of last year", MustYears(time.July, Early), date.Max, Date.StartOfFiscalYear, date.New(date.MaxYear, time.July, 1)},
		{"start of first year", MustYears(time.July, Late), date.Min, Date.StartOfFiscalYear, date.Min},
		{"end of last quarter", MustYears(time.February, Early), date.Max, Date.EndOfFiscalQuarter, date.Max},
		{"start of first quarter", MustYears(time.February, Early), date.New(date.MinYear, time.January, 15), Date.StartOfFiscalQuarter, date.Min},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.got(tc.years.FromCalendarDate(tc.in))
			if got.AsCalendarDate() != tc.want {
				t.Fatalf("%s of %v = %v, want %v", tc.name, tc.in, got.AsCalendarDate(), tc.want)
			}
			if same, err := got.PlusDays(0); err != nil || same != got {
				t.Errorf("%v.PlusDays(0) = %v, %v", got, same, err)
			}
		})
	}

	last := MustYears(time.July, Early).FromCalendarDate(date.Max)
	if got := last.Elapsed(); !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Elapsed() of the last representable day = %v, want 1", got)
	}
}

func TestFiscalDate_Boundaries(t *testing.T) {
	y := MustYears(time.July, Early)
	testCases := []struct {
		name string
		in   date.Date
		got  func(Date) Date
		want date.Date
	}{
		{"start of year", date.New(2020, time.March, 10), Date.StartOfFiscalYear, date.New(2019, time.July, 1)},
		{"end of year", date.New(2020, time.March, 10), Date.EndOfFiscalYear, date.New(2020, time.June, 30)},
		{"start of quarter", date.New(2020, time.March, 10), Date.StartOfFiscalQuarter, date.New(2020, time.January, 1)},
		{"end of quarter", date.New(2020, time.March, 10), Date.EndOfFiscalQuarter, date.New(2020, time.March, 31)},
		{"start of first quarter", date.New(2020, time.August, 15), Date.StartOfFiscalQuarter, date.New(2020, time.July, 1)},
		{"end of first quarter", date.New(2020, time.August, 15), Date.EndOfFiscalQuarter, date.New(2020, time.September, 30)},
		{"start of month", date.New(2020, time.February, 10), Date.StartOfFiscalMonth, date.New(2020, time.February, 1)},
		{"end of month", date.New(2020, time.February, 10), Date.EndOfFiscalMonth, date.New(2020, time.February, 29)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.got(y.FromCalendarDate(tc.in))
			if got.AsCalendarDate() != tc.want {
				t.Errorf("%s of %v = %v, want %v", tc.name, tc.in, got.AsCalendarDate(), tc.want)
			}
			if got.Years() != y {
				t.Errorf("%s changed the configuration", tc.name)
			}
		})
	}
}

func TestFiscalDate_QuarterBoundariesProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		y := genYears().Draw(t, "years")
		f := y.FromCalendarDate(genCalendarDate(31).Draw(t, "date"))

		start, end := f.StartOfFiscalQuarter(), f.EndOfFiscalQuarter()
		if start.FiscalQuarter() != f.FiscalQuarter() || end.FiscalQuarter() != f.FiscalQuarter() {
			t.Fatalf("quarter of %v is %v to %v", f, start, end)
		}
		if start.FiscalYear() != f.FiscalYear() || end.FiscalYear() != f.FiscalYear() {
			t.Fatalf("quarter of %v is %v to %v", f, start, end)
		}
		before, _ := start.MinusDays(1)
		after, _ := end.PlusDays(1)
		if before.FiscalQuarter() == f.FiscalQuarter() || after.FiscalQuarter() == f.FiscalQuarter() {
			t.Fatalf("quarter of %v is not maximal: %v to %v", f, start, end)
		}
	})
}

func TestFiscalDate_Elapsed(t *testing.T) {
	testCases := []struct {
		in   date.Date
		want string
	}{
		{date.New(2020, time.July, 1), "0.0027"},
		{date.New(2020, time.August, 15), "0.126"},
		{date.New(2021, time.June, 30), "1"},
	}
	y := MustYears(time.July, Late)
	for _, tc := range testCases {
		got := y.FromCalendarDate(tc.in).Elapsed()
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("Elapsed(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFiscalDate_String(t *testing.T) {
	f := MustYears(time.July, Late).FromCalendarDate(date.New(2020, time.August, 15))
	if got, want := f.String(), "FY2021-M02-15"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFiscalDate_JSON(t *testing.T) {
	f := MustYears(time.July, Early).FromCalendarDate(date.New(2020, time.August, 15))
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"date":"2020-08-15","start":"July","convention":"early","fiscalYear":2020,"fiscalQuarter":1,"fiscalMonth":2,"fiscalDayOfMonth":15,"fiscalDayOfYear":46,"fiscalWeekOfYear":7,"calendarWeekOfWeekyear":33}`
	if string(data) != want {
		t.Errorf("json.Marshal() =\n%s\nwant\n%s", data, want)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != f {
		t.Errorf("json.Unmarshal() = %v, want %v", back, f)
	}

	if err := json.Unmarshal([]byte(`{"date":"2020-08-15","start":"July","convention":"middle"}`), &back); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("json.Unmarshal() with bad convention error = %v, want ErrInvalidConfiguration", err)
	}
	if err := json.Unmarshal([]byte(`{"start":"July","convention":"early"}`), &back); !errors.Is(err, ErrInvalidFiscalDate) {
		t.Errorf("json.Unmarshal() without date error = %v, want ErrInvalidFiscalDate", err)
	}
}

func TestFiscalDate_Compare(t *testing.T) {
	y := MustYears(time.April, Late)
	a := y.FromCalendarDate(date.New(2020, time.March, 31))
	b := y.FromCalendarDate(date.New(2020, time.April, 1))
	if !a.Before(b) || !b.After(a) || a.Compare(b) != -1 || a.Compare(a) != 0 {
		t.Errorf("inconsistent comparison between %v and %v", a, b)
	}
	if a.FiscalYear() != 2020 || b.FiscalYear() != 2021 {
		t.Errorf("fiscal years = %d, %d, want 2020, 2021", a.FiscalYear(), b.FiscalYear())
	}
}
