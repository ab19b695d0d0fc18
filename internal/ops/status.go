package ops

import (
	"strings"

	"github.com/trovekit/trove/internal/config"
	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/store"
)

// StatusInput contains parameters for the SetStatus operation.
type StatusInput struct {
	ID     string
	Status record.Status
}

// StatusOutput contains the result of the SetStatus operation.
type StatusOutput struct {
	Record record.Record `json:"record"`
}

// SetStatus transitions a record's lifecycle field and refreshes UpdatedAt.
//
// Completion timestamps follow the configured policy: with
// preserve_first_completion (the default) the first completion wins and
// CompletedAt survives later transitions; otherwise every completion
// re-stamps it and leaving the completed state clears it.
func SetStatus(st *store.Store, cfg *config.Config, input StatusInput) (*StatusOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewValidation("id is required")
	}
	if !record.ValidStatus(input.Status) {
		return nil, errors.NewValidation("status must be one of: pending, in-progress, completed")
	}

	updated, ok, err := st.Update(id, func(r record.Record) record.Record {
		return applyStatus(r, input.Status, cfg.PreserveFirst())
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFound(id)
	}

	return &StatusOutput{Record: updated}, nil
}

// applyStatus is the shared transition used by SetStatus and BulkComplete.
func applyStatus(r record.Record, status record.Status, preserveFirst bool) record.Record {
	now := nowMillis()

	if status == record.StatusCompleted {
		if r.CompletedAt == nil || !preserveFirst {
			completedAt := now
			r.CompletedAt = &completedAt
		}
	} else if !preserveFirst {
		r.CompletedAt = nil
	}

	r.Status = status
	r.UpdatedAt = now
	if r.UpdatedAt < r.CreatedAt {
		r.UpdatedAt = r.CreatedAt
	}
	return r
}
