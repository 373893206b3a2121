// Package invoice turns a client's entries and expenses for a period into
// a printable invoice. Composing consumes exactly one invoice number;
// rendering the composed data is side-effect free and repeatable.
package invoice

import (
	"fmt"
	"sort"

	"cleantrack/internal/core"
)

// NumberSource hands out the next sequential invoice number. The settings
// store is the only production implementation; the counter never moves
// backwards, so issued numbers are strictly increasing and never reused.
type NumberSource interface {
	NextInvoiceNumber() (int, error)
}

// EntryLine is one work-session line item.
type EntryLine struct {
	Date    core.Date
	Start   core.ClockTime
	End     core.ClockTime
	Minutes int
	Rate    core.Money
	Amount  core.Money
}

// ExpenseLine is one expense line item.
type ExpenseLine struct {
	Date        core.Date
	Description string
	Amount      core.Money
}

// Invoice is the composed document. It is derived data: only the assigned
// number is persisted (inside the settings counter).
type Invoice struct {
	Number       int
	Reference    string
	Draft        bool
	Client       core.Client
	Settings     core.Settings
	PeriodLabel  string
	IssueDate    core.Date
	DueDate      core.Date
	Entries      []EntryLine
	Expenses     []ExpenseLine
	Minutes      int
	Labour       core.Money
	ExpenseTotal core.Money
}

func (inv Invoice) Total() core.Money {
	return inv.Labour.Add(inv.ExpenseTotal)
}

func (inv Invoice) Hours() float64 {
	return float64(inv.Minutes) / 60.0
}

// HoursLabel renders the worked time as "12h 30m".
func (inv Invoice) HoursLabel() string {
	return core.FormatMinutes(inv.Minutes)
}

// Compose builds an invoice and consumes the next invoice number. The
// number is drawn only after the document builds cleanly, so a failed
// composition never burns one.
func Compose(src NumberSource, settings core.Settings, client core.Client,
	entries []core.Entry, expenses []core.Expense, periodLabel string, issue core.Date) (Invoice, error) {

	inv := build(settings, client, entries, expenses, periodLabel, issue)
	n, err := src.NextInvoiceNumber()
	if err != nil {
		return Invoice{}, fmt.Errorf("assign invoice number: %w", err)
	}
	inv.Number = n
	inv.Reference = Reference(settings.InvoicePrefix, n)
	return inv, nil
}

// ComposeDraft builds a preview without touching the invoice counter.
func ComposeDraft(settings core.Settings, client core.Client,
	entries []core.Entry, expenses []core.Expense, periodLabel string, issue core.Date) Invoice {

	inv := build(settings, client, entries, expenses, periodLabel, issue)
	inv.Draft = true
	inv.Reference = "DRAFT"
	return inv
}

// Reference formats a display reference like "INV-000042".
func Reference(prefix string, number int) string {
	return fmt.Sprintf("%s-%06d", prefix, number)
}

func build(settings core.Settings, client core.Client,
	entries []core.Entry, expenses []core.Expense, periodLabel string, issue core.Date) Invoice {

	inv := Invoice{
		Client:      client,
		Settings:    settings,
		PeriodLabel: periodLabel,
		IssueDate:   issue,
		DueDate:     core.Date{Time: issue.AddDate(0, 0, settings.PaymentTermsDays)},
	}

	for _, e := range entries {
		minutes := e.DurationMinutes()
		amount := core.Billable(minutes, settings.HourlyRate)
		inv.Entries = append(inv.Entries, EntryLine{
			Date:    e.Date,
			Start:   e.Start,
			End:     e.End,
			Minutes: minutes,
			Rate:    settings.HourlyRate,
			Amount:  amount,
		})
		inv.Minutes += minutes
		inv.Labour = inv.Labour.Add(amount)
	}
	for _, x := range expenses {
		inv.Expenses = append(inv.Expenses, ExpenseLine{
			Date:        x.Date,
			Description: x.Description,
			Amount:      x.Amount,
		})
		inv.ExpenseTotal = inv.ExpenseTotal.Add(x.Amount)
	}

	sort.SliceStable(inv.Entries, func(i, j int) bool {
		return inv.Entries[i].Date.Before(inv.Entries[j].Date.Time)
	})
	sort.SliceStable(inv.Expenses, func(i, j int) bool {
		return inv.Expenses[i].Date.Before(inv.Expenses[j].Date.Time)
	})
	return inv
}
