// Package pipeline holds the pure computations over expense lists:
// settlement balance, monthly totals and month views.
package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/model"
)

var two = decimal.NewFromInt(2)

// ComputeBalance totals spend per participant and works out who owes whom.
// Only shared expenses take part in the settlement.
func ComputeBalance(expenses []model.Expense) model.Balance {
	var b model.Balance

	for _, e := range expenses {
		amt := e.Amount.Decimal

		switch e.PaidBy {
		case model.PayerA:
			b.TotalA = b.TotalA.Add(amt)
		case model.PayerB:
			b.TotalB = b.TotalB.Add(amt)
		}

		if e.Type != model.Shared {
			continue
		}
		b.TotalShared = b.TotalShared.Add(amt)
		switch e.PaidBy {
		case model.PayerA:
			b.SharedPaidByA = b.SharedPaidByA.Add(amt)
		case model.PayerB:
			b.SharedPaidByB = b.SharedPaidByB.Add(amt)
		}
	}

	b.FairShare = b.TotalShared.Div(two)
	surplusA := b.SharedPaidByA.Sub(b.FairShare)
	surplusB := b.SharedPaidByB.Sub(b.FairShare)

	b.OwedAmount = surplusA.Sub(surplusB).Abs()
	switch surplusA.Cmp(surplusB) {
	case 1:
		b.OwedBy = model.PayerB
	case -1:
		b.OwedBy = model.PayerA
	default:
		b.OwedBy = model.Nobody
	}

	return b
}

// Names maps each participant to a display name.
type Names map[model.Payer]string

// Of returns the display name for p, falling back to "Person <tag>".
func (n Names) Of(p model.Payer) string {
	if name, ok := n[p]; ok && name != "" {
		return name
	}
	return "Person " + string(p)
}

// SettlementMessage describes the settlement in one sentence.
// format renders the owed amount (e.g. with a currency symbol).
func SettlementMessage(b model.Balance, names Names, format func(decimal.Decimal) string) string {
	if b.Settled() {
		return "All settled up! No one owes anyone."
	}
	return fmt.Sprintf("%s owes %s %s",
		names.Of(b.OwedBy), names.Of(b.OwedBy.Other()), format(b.OwedAmount))
}

// PayerShares returns each participant's percentage of total spend.
// Both are zero when nothing has been spent.
func PayerShares(b model.Balance) (shareA, shareB float64) {
	total := b.TotalA.Add(b.TotalB)
	if total.IsZero() {
		return 0, 0
	}
	hundred := decimal.NewFromInt(100)
	shareA = b.TotalA.Mul(hundred).Div(total).InexactFloat64()
	shareB = b.TotalB.Mul(hundred).Div(total).InexactFloat64()
	return shareA, shareB
}
