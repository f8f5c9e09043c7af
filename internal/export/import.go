package export

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/store"
)

// ErrDuplicateID is returned by Import when two records share an id.
var ErrDuplicateID = errors.New("duplicate expense id")

// Import decodes a JSON export. Unlike Repository.Load it reports every
// problem: malformed JSON, records that break the invariants and repeated ids.
func Import(data []byte) ([]model.Expense, error) {
	expenses, err := store.Decode(data)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(expenses))
	for i, e := range expenses {
		if err := e.Check(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("record %d: %w %q", i, ErrDuplicateID, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return expenses, nil
}

// Merge appends the incoming records whose id is not already in existing and
// reports how many were added.
func Merge(existing, incoming []model.Expense) ([]model.Expense, int) {
	ids := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		ids[e.ID] = struct{}{}
	}

	merged := make([]model.Expense, 0, len(existing)+len(incoming))
	merged = append(merged, existing...)
	added := 0
	for _, e := range incoming {
		if _, ok := ids[e.ID]; ok {
			continue
		}
		ids[e.ID] = struct{}{}
		merged = append(merged, e)
		added++
	}
	return merged, added
}
