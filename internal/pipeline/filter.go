package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/tally/internal/model"
)

// FilterByMonth returns expenses dated in the given calendar month,
// most recent first.
func FilterByMonth(expenses []model.Expense, year int, month time.Month) []model.Expense {
	var result []model.Expense
	for _, e := range expenses {
		if e.Date.InMonth(year, month) {
			result = append(result, e)
		}
	}
	SortByDate(result, true)
	return result
}

// SortByDate orders expenses chronologically in place. Ties keep their order.
func SortByDate(expenses []model.Expense, desc bool) {
	sort.SliceStable(expenses, func(i, j int) bool {
		if desc {
			return expenses[j].Date.Before(expenses[i].Date)
		}
		return expenses[i].Date.Before(expenses[j].Date)
	})
}

// SumAmounts totals the amounts of expenses.
func SumAmounts(expenses []model.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount.Decimal)
	}
	return total
}

// DatesWithExpenses returns the set of days that carry at least one expense.
func DatesWithExpenses(expenses []model.Expense) map[model.Date]struct{} {
	dates := make(map[model.Date]struct{})
	for _, e := range expenses {
		dates[e.Date] = struct{}{}
	}
	return dates
}

// FilterByPayer returns expenses paid by p. An empty payer matches everything.
func FilterByPayer(expenses []model.Expense, p model.Payer) []model.Expense {
	if p == "" {
		return expenses
	}
	var result []model.Expense
	for _, e := range expenses {
		if e.PaidBy == p {
			result = append(result, e)
		}
	}
	return result
}

// FilterByKind returns expenses of kind k. An empty kind matches everything.
func FilterByKind(expenses []model.Expense, k model.Kind) []model.Expense {
	if k == "" {
		return expenses
	}
	var result []model.Expense
	for _, e := range expenses {
		if e.Type == k {
			result = append(result, e)
		}
	}
	return result
}

// SearchTitles matches query against titles, case-insensitively. A title
// matches when it contains the query or has a word within maxDistance edits.
func SearchTitles(expenses []model.Expense, query string, maxDistance int) []model.Expense {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return expenses
	}

	var result []model.Expense
	for _, e := range expenses {
		if titleMatches(strings.ToLower(e.Title), query, maxDistance) {
			result = append(result, e)
		}
	}
	return result
}

func titleMatches(title, query string, maxDistance int) bool {
	if strings.Contains(title, query) {
		return true
	}
	if maxDistance <= 0 {
		return false
	}
	for _, word := range strings.Fields(title) {
		if levenshtein.ComputeDistance(word, query) <= maxDistance {
			return true
		}
	}
	return false
}
