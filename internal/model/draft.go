package model

import (
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Field names used as FieldErrors keys.
const (
	FieldTitle  = "title"
	FieldAmount = "amount"
	FieldPaidBy = "paidBy"
	FieldType   = "type"
	FieldDate   = "date"
)

// ErrInvalidAmount is returned by ParseAmount for non-positive or malformed input.
var ErrInvalidAmount = errors.New("invalid amount")

// FieldErrors maps a form field to its validation message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// Draft is unvalidated form input for a new or edited expense.
type Draft struct {
	Title  string
	Amount string
	PaidBy Payer
	Type   Kind
	Date   Date
	Note   string
}

// DraftOf returns a draft pre-filled from an existing expense, for editing.
func DraftOf(e Expense) Draft {
	return Draft{
		Title:  e.Title,
		Amount: e.Amount.String(),
		PaidBy: e.PaidBy,
		Type:   e.Type,
		Date:   e.Date,
		Note:   e.Note,
	}
}

// ParseAmount parses user input into a positive two-decimal amount.
// Both "12.34" and "12,34" are accepted; the third decimal rounds half-up.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return Amount{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	a := NewAmount(d)
	if !a.IsPositive() {
		return Amount{}, ErrInvalidAmount
	}
	return a, nil
}

// Validate returns the per-field problems with d, or nil.
func (d Draft) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.Title) == "" {
		errs[FieldTitle] = "Title is required"
	}
	if _, err := ParseAmount(d.Amount); err != nil {
		errs[FieldAmount] = "Amount must be greater than 0"
	}
	if !d.PaidBy.Valid() {
		errs[FieldPaidBy] = "Paid by must be A or B"
	}
	if !d.Type.Valid() {
		errs[FieldType] = "Type must be individual or shared"
	}
	if d.Date.IsZero() {
		errs[FieldDate] = "Date is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Expense validates d and builds the record under the given id.
func (d Draft) Expense(id string) (Expense, error) {
	if errs := d.Validate(); errs != nil {
		return Expense{}, errs
	}
	amount, _ := ParseAmount(d.Amount)
	return Expense{
		ID:     id,
		Title:  strings.TrimSpace(d.Title),
		Amount: amount,
		PaidBy: d.PaidBy,
		Type:   d.Type,
		Date:   d.Date,
		Note:   strings.TrimSpace(d.Note),
	}, nil
}

// Check reports whether a decoded record satisfies the collection invariants.
func (e Expense) Check() error {
	switch {
	case e.ID == "":
		return errors.New("missing id")
	case strings.TrimSpace(e.Title) == "":
		return errors.New("empty title")
	case !e.Amount.IsPositive():
		return ErrInvalidAmount
	case !e.PaidBy.Valid():
		return errors.New("invalid payer")
	case !e.Type.Valid():
		return errors.New("invalid expense type")
	case e.Date.IsZero():
		return errors.New("missing date")
	}
	return nil
}
