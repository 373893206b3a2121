// Package report aggregates entries and expenses over calendar-month and
// tax-year periods. Period boundaries are [start, end): a record dated on
// a boundary belongs to the period that starts on that day.
package report

import (
	"sort"

	"cleantrack/internal/core"
)

// Input carries everything a summary needs. Labour is priced with the
// hourly rate from Settings at summarization time, never a per-entry rate.
type Input struct {
	Entries  []core.Entry
	Expenses []core.Expense
	Settings core.Settings
	ClientID string // empty means all clients
}

// Summary is the result of aggregating one period.
type Summary struct {
	Sessions  int
	Minutes   int
	Labour    core.Money
	Expenses  core.Money
	Entries   []core.Entry
	Items     []core.Expense
	Breakdown []MonthBreakdown // populated for tax-year summaries
}

// MonthBreakdown is one month's slice of a tax-year summary.
type MonthBreakdown struct {
	Year     int
	Month    int
	Sessions int
	Minutes  int
	Labour   core.Money
	Expenses core.Money
}

// MonthRef identifies a month that has at least one record.
type MonthRef struct {
	Year  int
	Month int
}

func (s Summary) Hours() float64 {
	return float64(s.Minutes) / 60.0
}

func (s Summary) Total() core.Money {
	return s.Labour.Add(s.Expenses)
}

func (b MonthBreakdown) Total() core.Money {
	return b.Labour.Add(b.Expenses)
}

func (b MonthBreakdown) Hours() float64 {
	return float64(b.Minutes) / 60.0
}

// Monthly summarizes a single calendar month.
func Monthly(in Input, year, month int) Summary {
	return summarize(in, func(d core.Date) bool {
		return d.Year() == year && d.Month() == month
	}, false)
}

// ForTaxYear summarizes the 12-month period beginning startYear's
// tax-year start month, with a per-month breakdown.
func ForTaxYear(in Input, startYear int) Summary {
	startMonth := in.Settings.TaxYearStartMonth
	return summarize(in, func(d core.Date) bool {
		return core.TaxYearFor(d, startMonth) == startYear
	}, true)
}

func summarize(in Input, within func(core.Date) bool, breakdown bool) Summary {
	var s Summary
	months := map[MonthRef]*MonthBreakdown{}

	monthOf := func(ref MonthRef) *MonthBreakdown {
		if b, ok := months[ref]; ok {
			return b
		}
		b := &MonthBreakdown{Year: ref.Year, Month: ref.Month}
		months[ref] = b
		return b
	}

	for _, e := range in.Entries {
		if !matchesClient(e.ClientID, in.ClientID) || !within(e.Date) {
			continue
		}
		minutes := e.DurationMinutes()
		labour := core.Billable(minutes, in.Settings.HourlyRate)
		s.Sessions++
		s.Minutes += minutes
		s.Labour = s.Labour.Add(labour)
		s.Entries = append(s.Entries, e)
		if breakdown {
			b := monthOf(MonthRef{Year: e.Date.Year(), Month: e.Date.Month()})
			b.Sessions++
			b.Minutes += minutes
			b.Labour = b.Labour.Add(labour)
		}
	}
	for _, x := range in.Expenses {
		if !matchesClient(x.ClientID, in.ClientID) || !within(x.Date) {
			continue
		}
		s.Expenses = s.Expenses.Add(x.Amount)
		s.Items = append(s.Items, x)
		if breakdown {
			b := monthOf(MonthRef{Year: x.Date.Year(), Month: x.Date.Month()})
			b.Expenses = b.Expenses.Add(x.Amount)
		}
	}

	sortByDate(s.Entries, func(e core.Entry) core.Date { return e.Date })
	sortByDate(s.Items, func(x core.Expense) core.Date { return x.Date })

	if breakdown {
		for _, b := range months {
			s.Breakdown = append(s.Breakdown, *b)
		}
		sort.Slice(s.Breakdown, func(i, j int) bool {
			if s.Breakdown[i].Year != s.Breakdown[j].Year {
				return s.Breakdown[i].Year < s.Breakdown[j].Year
			}
			return s.Breakdown[i].Month < s.Breakdown[j].Month
		})
	}
	return s
}

// AvailableMonths lists months that have records, newest first.
func AvailableMonths(in Input) []MonthRef {
	seen := map[MonthRef]struct{}{}
	for _, e := range in.Entries {
		if matchesClient(e.ClientID, in.ClientID) {
			seen[MonthRef{Year: e.Date.Year(), Month: e.Date.Month()}] = struct{}{}
		}
	}
	for _, x := range in.Expenses {
		if matchesClient(x.ClientID, in.ClientID) {
			seen[MonthRef{Year: x.Date.Year(), Month: x.Date.Month()}] = struct{}{}
		}
	}
	refs := make([]MonthRef, 0, len(seen))
	for ref := range seen {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Year != refs[j].Year {
			return refs[i].Year > refs[j].Year
		}
		return refs[i].Month > refs[j].Month
	})
	return refs
}

// AvailableTaxYears lists tax years that have records, newest first.
func AvailableTaxYears(in Input) []int {
	startMonth := in.Settings.TaxYearStartMonth
	seen := map[int]struct{}{}
	for _, e := range in.Entries {
		if matchesClient(e.ClientID, in.ClientID) {
			seen[core.TaxYearFor(e.Date, startMonth)] = struct{}{}
		}
	}
	for _, x := range in.Expenses {
		if matchesClient(x.ClientID, in.ClientID) {
			seen[core.TaxYearFor(x.Date, startMonth)] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

func matchesClient(recordClient, filter string) bool {
	return filter == "" || recordClient == filter
}

func sortByDate[T any](records []T, date func(T) core.Date) {
	sort.SliceStable(records, func(i, j int) bool {
		return date(records[i]).Before(date(records[j]).Time)
	})
}
