package ops

import (
	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/query"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/store"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Search   string
	Status   string // "" or "all" = no constraint
	Category string
	Priority string
	Tag      string
	Sort     string // sort field, default: created_at
	Desc     bool
	Limit    int // default: 20, max: 100
	Offset   int // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []record.Record `json:"items"`
	Pagination Pagination      `json:"pagination"`
	Sort       string          `json:"sort"`
}

// List computes the derived view: filter, stable sort, then paginate.
// The store itself is never mutated.
func List(st *store.Store, input ListInput) (*ListOutput, error) {
	sortField := query.SortField(input.Sort)
	if sortField == "" {
		sortField = query.SortCreatedAt
	}
	if !query.ValidSortField(sortField) {
		return nil, errors.NewValidation("sort must be one of: title, created_at, updated_at, due_date, priority, status")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := max(input.Offset, 0)

	view := query.View(st.Records(), query.Query{
		Search:   input.Search,
		Status:   input.Status,
		Category: input.Category,
		Priority: input.Priority,
		Tag:      input.Tag,
		Sort:     query.Sort{Field: sortField, Desc: input.Desc},
	})

	total := len(view)
	if offset > total {
		offset = total
	}
	end := min(offset+limit, total)
	items := view[offset:end]
	if items == nil {
		items = []record.Record{}
	}

	sortLabel := string(sortField)
	if input.Desc {
		sortLabel += "_desc"
	} else {
		sortLabel += "_asc"
	}

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: end < total,
			Total:   total,
		},
		Sort: sortLabel,
	}, nil
}
