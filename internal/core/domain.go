package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTime      = errors.New("invalid time")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyClientID    = errors.New("empty client id")
	ErrEmptyDescription = errors.New("empty description")
)

type (
	// Date is a calendar day. It serializes as "YYYY-MM-DD".
	Date struct {
		time.Time
	}

	// ClockTime is a wall-clock time of day. It serializes as "HH:MM".
	ClockTime struct {
		Hour   int
		Minute int
	}

	Client struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Address string `json:"address,omitempty"`
	}

	// Entry is one logged work session for a client.
	Entry struct {
		ID       string    `json:"id"`
		ClientID string    `json:"client_id"`
		Date     Date      `json:"date"`
		Start    ClockTime `json:"start_time"`
		End      ClockTime `json:"end_time"`
		Note     string    `json:"note,omitempty"`
	}

	// Expense is one logged cost item attributable to a client.
	Expense struct {
		ID          string `json:"id"`
		ClientID    string `json:"client_id"`
		Date        Date   `json:"date"`
		Description string `json:"description"`
		Amount      Money  `json:"amount"`
		Receipt     string `json:"receipt,omitempty"`
	}
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Year returns the calendar year.
func (d Date) Year() int { return d.Time.Year() }

// Month returns the calendar month, 1-12.
func (d Date) Month() int { return int(d.Time.Month()) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseClock parses an "HH:MM" string.
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return ClockTime{}, ErrInvalidTime
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the minutes elapsed since midnight.
func (t ClockTime) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t ClockTime) Validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return ErrInvalidTime
	}
	return nil
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *ClockTime) UnmarshalJSON(b []byte) error {
	parsed, err := ParseClock(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	return nil
}

// DurationMinutes returns the worked time in minutes. An end time earlier
// than the start wraps past midnight, so overnight sessions are supported.
func (e Entry) DurationMinutes() int {
	start := e.Start.Minutes()
	end := e.End.Minutes()
	if end < start {
		return 24*60 - start + end
	}
	return end - start
}

// Hours returns the worked time as fractional hours.
func (e Entry) Hours() float64 {
	return float64(e.DurationMinutes()) / 60.0
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.ClientID) == "" {
		return ErrEmptyClientID
	}
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Start.Validate(); err != nil {
		return err
	}
	if err := e.End.Validate(); err != nil {
		return err
	}
	if e.Start == e.End {
		return errors.New("end time equals start time")
	}
	if len(e.Note) > 500 {
		return errors.New("note too long (max 500 characters)")
	}
	return nil
}

func (x Expense) Validate() error {
	if strings.TrimSpace(x.ClientID) == "" {
		return ErrEmptyClientID
	}
	if err := x.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(x.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(x.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if x.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// FormatMinutes renders minutes as "3h 45m".
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
