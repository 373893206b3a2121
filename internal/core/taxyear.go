package core

import (
	"fmt"
	"time"
)

// TaxYearFor returns the year in which the tax year containing d begins.
// A date on the first day of the start month belongs to the tax year
// beginning that year; the day before belongs to the prior one.
func TaxYearFor(d Date, startMonth int) int {
	if d.Month() >= startMonth {
		return d.Year()
	}
	return d.Year() - 1
}

// TaxYearLabel renders a human-readable label for a tax year, e.g.
// "2024/2025 (April 2024 - March 2025)".
func TaxYearLabel(taxYear, startMonth int) string {
	endMonth := startMonth - 1
	endYear := taxYear + 1
	if endMonth == 0 {
		endMonth = 12
		endYear = taxYear
	}
	return fmt.Sprintf("%d/%d (%s %d - %s %d)",
		taxYear, taxYear+1,
		time.Month(startMonth).String(), taxYear,
		time.Month(endMonth).String(), endYear)
}

// MonthLabel renders a year+month as "March 2024".
func MonthLabel(year, month int) string {
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}
