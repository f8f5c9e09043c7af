package pipeline

import (
	"time"

	"github.com/theirongolddev/tally/internal/model"
)

// MonthLabelLayout formats bucket labels, e.g. "Oct 2026".
const MonthLabelLayout = "Jan 2006"

// AggregateMonths buckets spend into monthsBack calendar months ending at the
// month containing now, oldest first. Empty months report a zero total.
func AggregateMonths(expenses []model.Expense, monthsBack int, now time.Time) []model.MonthlyTotal {
	if monthsBack <= 0 {
		return []model.MonthlyTotal{}
	}

	// Day 1 avoids AddDate overflow (Mar 31 - 1 month = Mar 3).
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	months := make([]model.MonthlyTotal, monthsBack)
	index := make(map[[2]int]int, monthsBack)
	for i := range months {
		start := current.AddDate(0, i-(monthsBack-1), 0)
		months[i] = model.MonthlyTotal{
			Month: start,
			Label: start.Format(MonthLabelLayout),
		}
		index[[2]int{start.Year(), int(start.Month())}] = i
	}

	for _, e := range expenses {
		i, ok := index[[2]int{e.Date.Year, int(e.Date.Month)}]
		if !ok {
			continue
		}
		months[i].Total = months[i].Total.Add(e.Amount.Decimal)
		months[i].Count++
	}

	return months
}
