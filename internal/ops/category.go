package ops

import (
	"strings"

	"github.com/google/uuid"

	"github.com/trovekit/trove/internal/config"
	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/store"
)

// CategoryCreateInput contains parameters for the CategoryCreate operation.
type CategoryCreateInput struct {
	Name  string // required
	Color string
}

// CategoryCreateOutput contains the result of the CategoryCreate operation.
type CategoryCreateOutput struct {
	Category record.Category `json:"category"`
}

// CategoryCreate adds a category with a fresh id.
func CategoryCreate(cats *store.Categories, input CategoryCreateInput) (*CategoryCreateOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.NewValidation("name must not be empty")
	}

	c := record.Category{
		ID:    uuid.New().String(),
		Name:  name,
		Color: strings.TrimSpace(input.Color),
	}
	if err := cats.Add(c); err != nil {
		return nil, err
	}

	return &CategoryCreateOutput{Category: c}, nil
}

// CategoryListOutput contains the result of the CategoryList operation.
type CategoryListOutput struct {
	Categories []record.Category `json:"categories"`
}

// CategoryList returns all categories in insertion order.
func CategoryList(cats *store.Categories) (*CategoryListOutput, error) {
	all := cats.All()
	if all == nil {
		all = []record.Category{}
	}
	return &CategoryListOutput{Categories: all}, nil
}

// CategoryDeleteInput contains parameters for the CategoryDelete operation.
type CategoryDeleteInput struct {
	ID string
}

// CategoryDeleteOutput contains the result of the CategoryDelete operation.
type CategoryDeleteOutput struct {
	Deleted    bool   `json:"deleted"`
	Reassigned int    `json:"reassigned"`
	ReassignTo string `json:"reassign_to,omitempty"`
}

// CategoryDelete removes a category and applies the configured cascade policy
// to referencing records: reassign moves them to the first remaining category
// (or uncategorized when none remain), orphan leaves the dangling id in place.
func CategoryDelete(st *store.Store, cats *store.Categories, cfg *config.Config, input CategoryDeleteInput) (*CategoryDeleteOutput, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewValidation("id is required")
	}

	found, err := cats.Remove(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewNotFound(id)
	}

	out := &CategoryDeleteOutput{Deleted: true}

	if cfg.CategoryCascade == config.CascadeOrphan {
		return out, nil
	}

	// reassign: first remaining category, or uncategorized when none remain
	target := ""
	if remaining := cats.All(); len(remaining) > 0 {
		target = remaining[0].ID
	}

	records := st.Records()
	for _, r := range records {
		if r.Category != id {
			continue
		}
		_, _, err := st.Update(r.ID, func(r record.Record) record.Record {
			r.Category = target
			r.UpdatedAt = nowMillis()
			return r
		})
		if err != nil {
			return nil, err
		}
		out.Reassigned++
	}
	out.ReassignTo = target

	return out, nil
}
