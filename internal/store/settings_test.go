package store

import (
	"os"
	"path/filepath"
	"testing"

	"cleantrack/internal/core"
)

func TestSettingsStore_LoadDefaults(t *testing.T) {
	s := NewSettingsStore(filepath.Join(t.TempDir(), ConfigFile))

	settings, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings != core.DefaultSettings() {
		t.Errorf("Load() on missing file = %+v, want defaults", settings)
	}
}

func TestSettingsStore_MergesDefaultsUnderPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	// Only two keys persisted; everything else keeps its default.
	partial := `{"hourly_rate": 20.50, "invoice_prefix": "CLN"}`
	if err := os.WriteFile(path, []byte(partial), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := NewSettingsStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.HourlyRate.Cents != 2050 {
		t.Errorf("HourlyRate = %d cents, want 2050", settings.HourlyRate.Cents)
	}
	if settings.InvoicePrefix != "CLN" {
		t.Errorf("InvoicePrefix = %q, want CLN", settings.InvoicePrefix)
	}
	if settings.TaxYearStartMonth != 4 {
		t.Errorf("TaxYearStartMonth = %d, want default 4", settings.TaxYearStartMonth)
	}
	if settings.NextInvoiceNumber != 1 {
		t.Errorf("NextInvoiceNumber = %d, want default 1", settings.NextInvoiceNumber)
	}
}

func TestSettingsStore_SaveRoundTrip(t *testing.T) {
	s := NewSettingsStore(filepath.Join(t.TempDir(), ConfigFile))

	settings := core.DefaultSettings()
	settings.BusinessName = "Sparkle Cleaning"
	settings.HourlyRate = core.Money{Cents: 1800}
	if err := s.Save(settings); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != settings {
		t.Errorf("Load() = %+v, want %+v", got, settings)
	}
}

func TestSettingsStore_NextInvoiceNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	s := NewSettingsStore(path)

	for want := 1; want <= 3; want++ {
		n, err := s.NextInvoiceNumber()
		if err != nil {
			t.Fatalf("NextInvoiceNumber() error = %v", err)
		}
		if n != want {
			t.Errorf("NextInvoiceNumber() = %d, want %d", n, want)
		}
	}

	// The advanced counter survives a fresh store over the same file.
	n, err := NewSettingsStore(path).NextInvoiceNumber()
	if err != nil {
		t.Fatalf("NextInvoiceNumber() error = %v", err)
	}
	if n != 4 {
		t.Errorf("NextInvoiceNumber() after reopen = %d, want 4", n)
	}
}
