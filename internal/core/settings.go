package core

import (
	"fmt"
	"strings"
)

// Settings is the single global configuration object persisted in
// config.json. It owns the invoice-number counter: nothing outside the
// settings store may increment NextInvoiceNumber.
type Settings struct {
	HourlyRate        Money  `json:"hourly_rate"`
	CurrencySymbol    string `json:"currency_symbol"`
	TaxYearStartMonth int    `json:"tax_year_start_month"`
	PaymentTermsDays  int    `json:"payment_terms_days"`
	BusinessName      string `json:"business_name"`
	BusinessAddress   string `json:"business_address"`
	BusinessEmail     string `json:"business_email"`
	BusinessPhone     string `json:"business_phone"`
	BankName          string `json:"bank_name"`
	AccountName       string `json:"account_name"`
	SortCode          string `json:"sort_code"`
	AccountNumber     string `json:"account_number"`
	InvoicePrefix     string `json:"invoice_prefix"`
	NextInvoiceNumber int    `json:"next_invoice_number"`
}

// DefaultSettings returns the configuration used on first run. Persisted
// values are unmarshalled over these, so newly added keys pick up sane
// values without any migration step.
func DefaultSettings() Settings {
	return Settings{
		HourlyRate:        Money{Cents: 1500},
		CurrencySymbol:    "£",
		TaxYearStartMonth: 4,
		PaymentTermsDays:  14,
		BusinessName:      "Your Name",
		BusinessAddress:   "Your Address\nCity, Postcode",
		BusinessEmail:     "your.email@example.com",
		BusinessPhone:     "07xxx xxxxxx",
		BankName:          "Your Bank",
		AccountName:       "Your Name",
		SortCode:          "00-00-00",
		AccountNumber:     "00000000",
		InvoicePrefix:     "INV",
		NextInvoiceNumber: 1,
	}
}

func (s Settings) Validate() error {
	var problems []string
	if s.HourlyRate.Cents < 0 {
		problems = append(problems, "hourly rate cannot be negative")
	}
	if s.TaxYearStartMonth < 1 || s.TaxYearStartMonth > 12 {
		problems = append(problems, fmt.Sprintf("tax year start month %d: must be between 1 and 12", s.TaxYearStartMonth))
	}
	if s.PaymentTermsDays < 0 {
		problems = append(problems, "payment terms cannot be negative")
	}
	if s.NextInvoiceNumber < 1 {
		problems = append(problems, fmt.Sprintf("next invoice number %d: must be at least 1", s.NextInvoiceNumber))
	}
	if len(problems) > 0 {
		return fmt.Errorf("settings validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
