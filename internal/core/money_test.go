package core

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole number", input: "15", want: 1500},
		{name: "two decimals", input: "12.34", want: 1234},
		{name: "one decimal", input: "12.3", want: 1230},
		{name: "comma separator", input: "12,34", want: 1234},
		{name: "third decimal rounds up", input: "0.125", want: 13},
		{name: "third decimal rounds down", input: "0.124", want: 12},
		{name: "leading dot", input: ".50", want: 50},
		{name: "whitespace trimmed", input: " 9.99 ", want: 999},
		{name: "zero", input: "0", want: 0},
		{name: "empty", input: "", wantErr: true},
		{name: "negative rejected", input: "-5", wantErr: true},
		{name: "plus sign rejected", input: "+5", wantErr: true},
		{name: "letters rejected", input: "12a", wantErr: true},
		{name: "two dots rejected", input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseAmount(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) error = %v", tt.input, err)
			}
			if got.Cents != tt.want {
				t.Errorf("ParseAmount(%q) = %d cents, want %d", tt.input, got.Cents, tt.want)
			}
		})
	}
}

func TestMoney_String(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1500, "15.00"},
		{123456, "1234.56"},
		{-250, "-2.50"},
	}
	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).String(); got != tt.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoney_Format(t *testing.T) {
	if got := (Money{Cents: 1500}).Format("£"); got != "£15.00" {
		t.Errorf("Format() = %q, want £15.00", got)
	}
	if got := (Money{Cents: -1500}).Format("£"); got != "-£15.00" {
		t.Errorf("Format() = %q, want -£15.00", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	// Marshals as a bare two-decimal number, matching the data files.
	data, err := json.Marshal(Money{Cents: 1500})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "15.00" {
		t.Errorf("Marshal() = %s, want 15.00", data)
	}

	// Accepts both number and string forms.
	for _, input := range []string{"15.00", `"15.00"`, "15"} {
		var m Money
		if err := json.Unmarshal([]byte(input), &m); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", input, err)
		}
		if m.Cents != 1500 {
			t.Errorf("Unmarshal(%s) = %d cents, want 1500", input, m.Cents)
		}
	}

	var m Money
	if err := json.Unmarshal([]byte("null"), &m); err != nil {
		t.Fatalf("Unmarshal(null) error = %v", err)
	}
	if m.Cents != 0 {
		t.Errorf("Unmarshal(null) = %d cents, want 0", m.Cents)
	}
}

func TestBillable(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		rate    int64
		want    int64
	}{
		{name: "four hours at 15.00", minutes: 240, rate: 1500, want: 6000},
		{name: "90 minutes at 15.00", minutes: 90, rate: 1500, want: 2250},
		{name: "rounds half up", minutes: 1, rate: 1500, want: 25},
		{name: "uneven rate", minutes: 50, rate: 1333, want: 1111},
		{name: "zero minutes", minutes: 0, rate: 1500, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Billable(tt.minutes, Money{Cents: tt.rate})
			if got.Cents != tt.want {
				t.Errorf("Billable(%d, %d) = %d cents, want %d", tt.minutes, tt.rate, got.Cents, tt.want)
			}
		})
	}
}
