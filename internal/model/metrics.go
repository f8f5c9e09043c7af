package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the settlement view derived from a list of expenses.
type Balance struct {
	TotalA      decimal.Decimal
	TotalB      decimal.Decimal
	TotalShared decimal.Decimal

	SharedPaidByA decimal.Decimal
	SharedPaidByB decimal.Decimal
	FairShare     decimal.Decimal // each participant's half of TotalShared

	OwedBy     Payer // A, B or Nobody
	OwedAmount decimal.Decimal
}

// Settled reports whether nobody owes anything.
func (b Balance) Settled() bool {
	return b.OwedBy == Nobody
}

// MonthlyTotal holds the spend for one calendar month.
type MonthlyTotal struct {
	Month time.Time // first day of the month
	Label string
	Total decimal.Decimal
	Count int
}
