package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"cleantrack/internal/core"
	"cleantrack/internal/report"
)

type monthOption struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"`
}

type taxYearOption struct {
	Year  int    `json:"year"`
	Label string `json:"label"`
}

type breakdownRow struct {
	Label     string     `json:"label"`
	Sessions  int        `json:"sessions"`
	Hours     float64    `json:"hours"`
	HoursFmt  string     `json:"hours_fmt"`
	Labour    core.Money `json:"labour"`
	Expenses  core.Money `json:"expenses"`
	Total     core.Money `json:"total"`
}

func (s *Server) reportInput(r *http.Request) (report.Input, error) {
	entries, err := s.stores.Entries.Load()
	if err != nil {
		return report.Input{}, err
	}
	expenses, err := s.stores.Expenses.Load()
	if err != nil {
		return report.Input{}, err
	}
	settings, err := s.stores.Settings.Load()
	if err != nil {
		return report.Input{}, err
	}
	return report.Input{
		Entries:  entries,
		Expenses: expenses,
		Settings: settings,
		ClientID: r.URL.Query().Get("client_id"),
	}, nil
}

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	in, err := s.reportInput(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly report failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	year, month := parseYearMonth(r)
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "invalid month, expected 1-12")
		return
	}
	summary := report.Monthly(in, year, month)

	available := []monthOption{}
	for _, ref := range report.AvailableMonths(in) {
		available = append(available, monthOption{
			Year:  ref.Year,
			Month: ref.Month,
			Label: core.MonthLabel(ref.Year, ref.Month),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"available_months": available,
		"sessions":         summary.Sessions,
		"total_hours":      roundHours(summary.Hours()),
		"total_hours_fmt":  core.FormatMinutes(summary.Minutes),
		"total_labour":     summary.Labour,
		"total_expenses":   summary.Expenses,
		"total_amount":     summary.Total(),
		"entries":          orEmptyEntries(summary.Entries),
		"expenses":         orEmptyExpenses(summary.Items),
		"currency":         in.Settings.CurrencySymbol,
	})
}

func (s *Server) handleTaxYearReport(w http.ResponseWriter, r *http.Request) {
	in, err := s.reportInput(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Tax year report failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	startMonth := in.Settings.TaxYearStartMonth

	available := []taxYearOption{}
	for _, y := range report.AvailableTaxYears(in) {
		available = append(available, taxYearOption{
			Year:  y,
			Label: core.TaxYearLabel(y, startMonth),
		})
	}

	var summary report.Summary
	if v := strings.TrimSpace(r.URL.Query().Get("tax_year")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid tax_year")
			return
		}
		summary = report.ForTaxYear(in, year)
	}

	breakdown := []breakdownRow{}
	for _, b := range summary.Breakdown {
		breakdown = append(breakdown, breakdownRow{
			Label:    core.MonthLabel(b.Year, b.Month),
			Sessions: b.Sessions,
			Hours:    roundHours(b.Hours()),
			HoursFmt: core.FormatMinutes(b.Minutes),
			Labour:   b.Labour,
			Expenses: b.Expenses,
			Total:    b.Total(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"available_tax_years": available,
		"sessions":            summary.Sessions,
		"total_hours":         roundHours(summary.Hours()),
		"total_hours_fmt":     core.FormatMinutes(summary.Minutes),
		"total_labour":        summary.Labour,
		"total_expenses":      summary.Expenses,
		"total_amount":        summary.Total(),
		"breakdown":           breakdown,
		"currency":            in.Settings.CurrencySymbol,
	})
}

func orEmptyEntries(entries []core.Entry) []core.Entry {
	if entries == nil {
		return []core.Entry{}
	}
	return entries
}

func orEmptyExpenses(expenses []core.Expense) []core.Expense {
	if expenses == nil {
		return []core.Expense{}
	}
	return expenses
}
