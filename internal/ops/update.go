package ops

import (
	"strings"

	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/store"
)

// UpdateInput contains parameters for the Update operation.
// Editable fields are pointers; nil means leave unchanged.
type UpdateInput struct {
	ID string // required

	Title       *string
	Description *string
	Priority    *record.Priority
	Category    *string
	Tags        *string // comma-separated, replaces the tag list
	DueDate     **int64 // outer nil = no change, inner nil = clear
	SKU         *string
	Quantity    *float64
	Extra       *map[string]string
}

// UpdateOutput contains the result of the Update operation.
type UpdateOutput struct {
	Record record.Record `json:"record"`
}

// Update merges the provided fields into an existing record and refreshes
// UpdatedAt. CreatedAt is never touched. Rejects an absent id or an empty
// title; on rejection the store is unchanged.
func Update(st *store.Store, input UpdateInput) (*UpdateOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewValidation("id is required")
	}

	existing, ok := st.Get(id)
	if !ok {
		return nil, errors.NewNotFound(id)
	}

	var title string
	if input.Title != nil {
		var err error
		title, err = requireTitle(*input.Title)
		if err != nil {
			return nil, err
		}
	}

	if input.Priority != nil && !record.ValidPriority(*input.Priority) {
		return nil, errors.NewValidation("priority must be one of: low, medium, high, urgent")
	}

	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, errors.NewValidation("quantity must not be negative")
	}

	// An explicitly empty SKU clears the field; a non-empty one must stay
	// unique across the other records.
	var sku *string
	clearSKU := false
	if input.SKU != nil {
		if trimmed := strings.TrimSpace(*input.SKU); trimmed == "" {
			clearSKU = true
		} else {
			sku = &trimmed
			if other, exists := st.FindBySKU(trimmed); exists && other.ID != id {
				return nil, errors.NewDuplicateSKU(trimmed)
			}
		}
	}

	updated, _, err := st.Update(id, func(r record.Record) record.Record {
		if input.Title != nil {
			r.Title = title
		}
		if input.Description != nil {
			r.Description = *input.Description
		}
		if input.Priority != nil {
			r.Priority = *input.Priority
		}
		if input.Category != nil {
			r.Category = *input.Category
		}
		if input.Tags != nil {
			r.Tags = record.ParseTags(*input.Tags)
		}
		if input.DueDate != nil {
			r.DueDate = *input.DueDate
		}
		if clearSKU {
			r.SKU = nil
		} else if sku != nil {
			r.SKU = sku
		}
		if input.Quantity != nil {
			q := *input.Quantity
			r.Quantity = &q
		}
		if input.Extra != nil {
			r.Extra = *input.Extra
		}
		r.UpdatedAt = nowMillis()
		if r.UpdatedAt < existing.UpdatedAt {
			r.UpdatedAt = existing.UpdatedAt
		}
		return r
	})
	if err != nil {
		return nil, err
	}

	return &UpdateOutput{Record: updated}, nil
}
