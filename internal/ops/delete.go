package ops

import (
	"strings"

	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/store"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	ID string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Delete removes a record immediately and unrecoverably. Deleting an id that
// is already absent is a no-op, not an error.
func Delete(st *store.Store, input DeleteInput) (*DeleteOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewValidation("id is required")
	}

	removed, err := st.RemoveWhere(func(r record.Record) bool { return r.ID == id })
	if err != nil {
		return nil, err
	}

	return &DeleteOutput{
		Deleted: removed > 0,
		ID:      id,
	}, nil
}
