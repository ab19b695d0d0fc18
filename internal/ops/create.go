package ops

import (
	"github.com/trovekit/trove/internal/config"
	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/store"
)

// CreateInput contains parameters for the Create operation.
type CreateInput struct {
	Title       string // required
	Description string
	Status      record.Status   // default: pending
	Priority    record.Priority // default: medium
	Category    string          // Category id, optional
	Tags        string          // comma-separated
	DueDate     *int64
	SKU         *string
	Quantity    *float64
	Extra       map[string]string
}

// CreateOutput contains the result of the Create operation.
type CreateOutput struct {
	Record record.Record `json:"record"`
}

// Create validates input, assigns a fresh id and timestamps, and inserts the
// record at the configured position. On rejection the store is unchanged.
func Create(st *store.Store, cfg *config.Config, input CreateInput) (*CreateOutput, error) {
	title, err := requireTitle(input.Title)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = record.StatusPending
	}
	if !record.ValidStatus(status) {
		return nil, errors.NewValidation("status must be one of: pending, in-progress, completed")
	}

	priority := input.Priority
	if priority == "" {
		priority = record.PriorityMedium
	}
	if !record.ValidPriority(priority) {
		return nil, errors.NewValidation("priority must be one of: low, medium, high, urgent")
	}

	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, errors.NewValidation("quantity must not be negative")
	}

	sku := cleanOptionalString(input.SKU)
	if sku != nil {
		if _, exists := st.FindBySKU(*sku); exists {
			return nil, errors.NewDuplicateSKU(*sku)
		}
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	now := nowMillis()

	r := record.Record{
		ID:          id,
		Title:       title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		Category:    input.Category,
		Tags:        record.ParseTags(input.Tags),
		DueDate:     input.DueDate,
		SKU:         sku,
		Quantity:    input.Quantity,
		Extra:       input.Extra,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == record.StatusCompleted {
		completedAt := now
		r.CompletedAt = &completedAt
	}

	if err := st.Insert(r); err != nil {
		return nil, err
	}

	return &CreateOutput{Record: r.Clone()}, nil
}
