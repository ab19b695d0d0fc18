package ops

import (
	"strings"

	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/store"
)

// AdjustInput contains parameters for the AdjustQuantity operation.
type AdjustInput struct {
	ID    string
	Delta float64 // positive = incoming movement, negative = outgoing
}

// AdjustOutput contains the result of the AdjustQuantity operation.
type AdjustOutput struct {
	Record   record.Record `json:"record"`
	Quantity float64       `json:"quantity"`
}

// AdjustQuantity applies a signed stock movement to a record's quantity.
// An outgoing movement exceeding the available quantity is rejected and the
// store is unchanged.
func AdjustQuantity(st *store.Store, input AdjustInput) (*AdjustOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewValidation("id is required")
	}

	existing, ok := st.Get(id)
	if !ok {
		return nil, errors.NewNotFound(id)
	}
	if existing.Quantity == nil {
		return nil, errors.NewValidation("record has no quantity field")
	}

	next := *existing.Quantity + input.Delta
	if next < 0 {
		return nil, errors.NewInsufficientStock(id, *existing.Quantity, -input.Delta)
	}

	updated, _, err := st.Update(id, func(r record.Record) record.Record {
		r.Quantity = &next
		r.UpdatedAt = nowMillis()
		if r.UpdatedAt < existing.UpdatedAt {
			r.UpdatedAt = existing.UpdatedAt
		}
		return r
	})
	if err != nil {
		return nil, err
	}

	return &AdjustOutput{
		Record:   updated,
		Quantity: next,
	}, nil
}
