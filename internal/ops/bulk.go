package ops

import (
	"github.com/trovekit/trove/internal/config"
	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/store"
)

// BulkInput contains the id set for a bulk operation.
type BulkInput struct {
	IDs []string
}

// BulkOutput contains the result of a bulk operation. There is no
// partial-failure reporting: missing ids are silently skipped and only the
// applied count is returned.
type BulkOutput struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
}

// BulkComplete transitions every addressed record into the completed state.
func BulkComplete(st *store.Store, cfg *config.Config, input BulkInput) (*BulkOutput, error) {
	if len(input.IDs) == 0 {
		return nil, errors.NewValidation("at least one id is required")
	}

	applied := 0
	for _, id := range input.IDs {
		_, ok, err := st.Update(id, func(r record.Record) record.Record {
			return applyStatus(r, record.StatusCompleted, cfg.PreserveFirst())
		})
		if err != nil {
			return nil, err
		}
		if ok {
			applied++
		}
	}

	return &BulkOutput{
		Applied: applied,
		Skipped: len(input.IDs) - applied,
	}, nil
}

// BulkDelete removes every addressed record.
func BulkDelete(st *store.Store, input BulkInput) (*BulkOutput, error) {
	if len(input.IDs) == 0 {
		return nil, errors.NewValidation("at least one id is required")
	}

	wanted := make(map[string]bool, len(input.IDs))
	for _, id := range input.IDs {
		wanted[id] = true
	}

	removed, err := st.RemoveWhere(func(r record.Record) bool { return wanted[r.ID] })
	if err != nil {
		return nil, err
	}

	return &BulkOutput{
		Applied: removed,
		Skipped: len(wanted) - removed,
	}, nil
}
