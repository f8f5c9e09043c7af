// Package model defines domain types for the tally ledger.
package model

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payer identifies one of the two ledger participants.
type Payer string

const (
	PayerA Payer = "A"
	PayerB Payer = "B"

	// Nobody is only used as Balance.OwedBy when no settlement is due.
	Nobody Payer = "none"
)

// Valid reports whether p is one of the two participants.
func (p Payer) Valid() bool {
	return p == PayerA || p == PayerB
}

// Other returns the opposite participant.
func (p Payer) Other() Payer {
	switch p {
	case PayerA:
		return PayerB
	case PayerB:
		return PayerA
	}
	return Nobody
}

// UnmarshalText rejects anything other than A or B.
func (p *Payer) UnmarshalText(b []byte) error {
	v := Payer(b)
	if !v.Valid() {
		return fmt.Errorf("invalid payer %q", string(b))
	}
	*p = v
	return nil
}

// Kind tells whether an expense is split between both participants.
type Kind string

const (
	Individual Kind = "individual"
	Shared     Kind = "shared"
)

// Valid reports whether k is a known expense kind.
func (k Kind) Valid() bool {
	return k == Individual || k == Shared
}

// DisplayName returns the capitalized label used in exports and tables.
func (k Kind) DisplayName() string {
	switch k {
	case Individual:
		return "Individual"
	case Shared:
		return "Shared"
	}
	return string(k)
}

// UnmarshalText rejects unknown kinds.
func (k *Kind) UnmarshalText(b []byte) error {
	v := Kind(b)
	if !v.Valid() {
		return fmt.Errorf("invalid expense type %q", string(b))
	}
	*k = v
	return nil
}

// Amount is a currency value held at two decimal places.
// It encodes to JSON as a bare number.
type Amount struct {
	decimal.Decimal
}

// NewAmount rounds d half-up to cents.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{d.Round(2)}
}

// String returns the amount with exactly two decimals.
func (a Amount) String() string {
	return a.StringFixed(2)
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return fmt.Errorf("amount is null")
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	a.Decimal = d.Round(2)
	return nil
}

const dateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes the given fields (e.g. Feb 30 becomes Mar 2).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns midnight of the day in loc.
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// InMonth reports whether d falls in the given calendar month.
func (d Date) InMonth(year int, month time.Month) bool {
	return d.Year == year && d.Month == month
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Expense is one logged transaction.
type Expense struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Amount Amount `json:"amount"`
	PaidBy Payer  `json:"paidBy"`
	Type   Kind   `json:"type"`
	Date   Date   `json:"date"`
	Note   string `json:"note,omitempty"`
}

// NewID mints a fresh expense identifier.
func NewID() string {
	return uuid.NewString()
}
