// Package export renders the expense collection as downloadable JSON or CSV
// and reads JSON exports back in.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/theirongolddev/tally/internal/model"
)

// JSON returns the collection as a pretty-printed array with a two-space
// indent and a trailing newline. A nil collection renders as [].
func JSON(expenses []model.Expense) ([]byte, error) {
	if expenses == nil {
		expenses = []model.Expense{}
	}
	b, err := json.MarshalIndent(expenses, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling expenses: %w", err)
	}
	return append(b, '\n'), nil
}
