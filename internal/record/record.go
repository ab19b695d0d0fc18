package record

// Record represents a single domain entity (task, inventory item, shipment)
// held by the engine. Common fields are first-class; app-specific fields ride
// in the Extra map and are opaque to the engine.
type Record struct {
	// ID uniquely identifies this record, assigned at creation, immutable
	ID string `json:"id"`

	// Title is the required display name, trimmed, never empty once stored
	Title string `json:"title"`

	// Description is optional free text (Markdown in report output)
	Description string `json:"description,omitempty"`

	// Status is the lifecycle state
	Status Status `json:"status"`

	// Priority is the classification used by ranked sorting
	Priority Priority `json:"priority"`

	// Category references a Category by id; empty means uncategorized
	Category string `json:"category,omitempty"`

	// Tags is an ordered list of tags; insertion order is irrelevant for matching
	Tags []string `json:"tags,omitempty"`

	// DueDate is an epoch-millis deadline (nullable); undated records trail
	// in ascending due-date sorts
	DueDate *int64 `json:"due_date,omitempty"`

	// SKU is an optional identifying key, unique across the store when set
	SKU *string `json:"sku,omitempty"`

	// Quantity is an optional stock level, never negative
	Quantity *float64 `json:"quantity,omitempty"`

	// Extra holds app-specific fields the engine carries but never interprets
	Extra map[string]string `json:"extra,omitempty"`

	// CreatedAt is the epoch-millis creation timestamp
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the epoch-millis last-mutation timestamp, always >= CreatedAt
	UpdatedAt int64 `json:"updated_at"`

	// CompletedAt is the epoch-millis completion timestamp (nullable)
	CompletedAt *int64 `json:"completed_at,omitempty"`
}

// Category is a lookup target for Record.Category.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Clone returns a deep copy of the record, so callers can hand out records
// without aliasing the store's slices and maps.
func (r Record) Clone() Record {
	c := r
	if r.Tags != nil {
		c.Tags = append([]string(nil), r.Tags...)
	}
	if r.Extra != nil {
		c.Extra = make(map[string]string, len(r.Extra))
		for k, v := range r.Extra {
			c.Extra[k] = v
		}
	}
	if r.DueDate != nil {
		d := *r.DueDate
		c.DueDate = &d
	}
	if r.SKU != nil {
		s := *r.SKU
		c.SKU = &s
	}
	if r.Quantity != nil {
		q := *r.Quantity
		c.Quantity = &q
	}
	if r.CompletedAt != nil {
		at := *r.CompletedAt
		c.CompletedAt = &at
	}
	return c
}
