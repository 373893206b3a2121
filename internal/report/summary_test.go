package report

import (
	"testing"

	"cleantrack/internal/core"
)

func testSettings() core.Settings {
	s := core.DefaultSettings()
	s.HourlyRate = core.Money{Cents: 1500}
	s.TaxYearStartMonth = 4
	return s
}

func entry(clientID string, date core.Date, start, end core.ClockTime) core.Entry {
	return core.Entry{ClientID: clientID, Date: date, Start: start, End: end}
}

func at(h, m int) core.ClockTime { return core.ClockTime{Hour: h, Minute: m} }

func TestMonthly(t *testing.T) {
	in := Input{
		Entries: []core.Entry{
			entry("c1", core.NewDate(2024, 3, 15), at(9, 0), at(13, 0)),   // 4h
			entry("c1", core.NewDate(2024, 3, 22), at(10, 0), at(12, 30)), // 2.5h
			entry("c1", core.NewDate(2024, 4, 1), at(9, 0), at(10, 0)),    // next month
		},
		Expenses: []core.Expense{
			{ClientID: "c1", Date: core.NewDate(2024, 3, 20), Description: "supplies", Amount: core.Money{Cents: 1250}},
			{ClientID: "c1", Date: core.NewDate(2024, 4, 2), Description: "supplies", Amount: core.Money{Cents: 500}},
		},
		Settings: testSettings(),
	}

	s := Monthly(in, 2024, 3)

	if s.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", s.Sessions)
	}
	if s.Minutes != 390 {
		t.Errorf("Minutes = %d, want 390", s.Minutes)
	}
	// 6.5h at 15.00/h
	if s.Labour.Cents != 9750 {
		t.Errorf("Labour = %d cents, want 9750", s.Labour.Cents)
	}
	if s.Expenses.Cents != 1250 {
		t.Errorf("Expenses = %d cents, want 1250", s.Expenses.Cents)
	}
	if s.Total().Cents != 11000 {
		t.Errorf("Total() = %d cents, want 11000", s.Total().Cents)
	}
	if len(s.Entries) != 2 || len(s.Items) != 1 {
		t.Errorf("Entries/Items = %d/%d, want 2/1", len(s.Entries), len(s.Items))
	}
}

func TestMonthlyEmptyPeriod(t *testing.T) {
	s := Monthly(Input{Settings: testSettings()}, 2024, 3)
	if s.Sessions != 0 || s.Minutes != 0 || s.Labour.Cents != 0 || s.Expenses.Cents != 0 {
		t.Errorf("empty month summary = %+v, want all zero", s)
	}
}

func TestMonthlyClientFilter(t *testing.T) {
	in := Input{
		Entries: []core.Entry{
			entry("c1", core.NewDate(2024, 3, 15), at(9, 0), at(11, 0)),
			entry("c2", core.NewDate(2024, 3, 16), at(9, 0), at(17, 0)),
		},
		Expenses: []core.Expense{
			{ClientID: "c2", Date: core.NewDate(2024, 3, 16), Description: "supplies", Amount: core.Money{Cents: 900}},
		},
		Settings: testSettings(),
		ClientID: "c1",
	}

	s := Monthly(in, 2024, 3)
	if s.Sessions != 1 {
		t.Errorf("Sessions = %d, want 1", s.Sessions)
	}
	if s.Minutes != 120 {
		t.Errorf("Minutes = %d, want 120", s.Minutes)
	}
	if s.Expenses.Cents != 0 {
		t.Errorf("Expenses = %d cents, want 0", s.Expenses.Cents)
	}
}

func TestForTaxYear(t *testing.T) {
	in := Input{
		Entries: []core.Entry{
			// 2023/24 tax year: Apr 2023 - Mar 2024.
			entry("c1", core.NewDate(2023, 4, 1), at(9, 0), at(10, 0)),
			entry("c1", core.NewDate(2024, 3, 31), at(9, 0), at(10, 0)),
			// First day of the next tax year.
			entry("c1", core.NewDate(2024, 4, 1), at(9, 0), at(10, 0)),
		},
		Expenses: []core.Expense{
			{ClientID: "c1", Date: core.NewDate(2023, 6, 10), Description: "supplies", Amount: core.Money{Cents: 2000}},
		},
		Settings: testSettings(),
	}

	s := ForTaxYear(in, 2023)

	if s.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", s.Sessions)
	}
	if s.Labour.Cents != 3000 {
		t.Errorf("Labour = %d cents, want 3000", s.Labour.Cents)
	}
	if s.Expenses.Cents != 2000 {
		t.Errorf("Expenses = %d cents, want 2000", s.Expenses.Cents)
	}

	// Breakdown covers April 2023, June 2023, and March 2024, in order.
	if len(s.Breakdown) != 3 {
		t.Fatalf("Breakdown has %d months, want 3", len(s.Breakdown))
	}
	wantMonths := []MonthRef{{2023, 4}, {2023, 6}, {2024, 3}}
	for i, want := range wantMonths {
		b := s.Breakdown[i]
		if b.Year != want.Year || b.Month != want.Month {
			t.Errorf("Breakdown[%d] = %d-%02d, want %d-%02d", i, b.Year, b.Month, want.Year, want.Month)
		}
	}
	if s.Breakdown[1].Expenses.Cents != 2000 || s.Breakdown[1].Sessions != 0 {
		t.Errorf("June breakdown = %+v, want expense-only month", s.Breakdown[1])
	}
}

func TestSummaryEntriesSortedByDate(t *testing.T) {
	in := Input{
		Entries: []core.Entry{
			entry("c1", core.NewDate(2024, 3, 20), at(9, 0), at(10, 0)),
			entry("c1", core.NewDate(2024, 3, 5), at(9, 0), at(10, 0)),
			entry("c1", core.NewDate(2024, 3, 12), at(9, 0), at(10, 0)),
		},
		Settings: testSettings(),
	}

	s := Monthly(in, 2024, 3)
	days := []int{5, 12, 20}
	for i, day := range days {
		if s.Entries[i].Date.Day() != day {
			t.Errorf("Entries[%d] day = %d, want %d", i, s.Entries[i].Date.Day(), day)
		}
	}
}

func TestAvailableMonths(t *testing.T) {
	in := Input{
		Entries: []core.Entry{
			entry("c1", core.NewDate(2024, 1, 5), at(9, 0), at(10, 0)),
			entry("c1", core.NewDate(2024, 3, 5), at(9, 0), at(10, 0)),
			entry("c1", core.NewDate(2024, 3, 20), at(9, 0), at(10, 0)),
		},
		Expenses: []core.Expense{
			{ClientID: "c1", Date: core.NewDate(2023, 12, 1), Description: "supplies", Amount: core.Money{Cents: 100}},
		},
		Settings: testSettings(),
	}

	got := AvailableMonths(in)
	want := []MonthRef{{2024, 3}, {2024, 1}, {2023, 12}}
	if len(got) != len(want) {
		t.Fatalf("AvailableMonths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AvailableMonths()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAvailableTaxYears(t *testing.T) {
	in := Input{
		Entries: []core.Entry{
			entry("c1", core.NewDate(2023, 5, 1), at(9, 0), at(10, 0)),  // 2023
			entry("c1", core.NewDate(2024, 3, 31), at(9, 0), at(10, 0)), // still 2023
			entry("c1", core.NewDate(2024, 4, 1), at(9, 0), at(10, 0)),  // 2024
		},
		Settings: testSettings(),
	}

	got := AvailableTaxYears(in)
	want := []int{2024, 2023}
	if len(got) != len(want) {
		t.Fatalf("AvailableTaxYears() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AvailableTaxYears()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
