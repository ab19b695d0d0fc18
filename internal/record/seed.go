package record

// Seed timestamps are fixed so fallback loads are deterministic and a reseeded
// slot always round-trips to the same JSON.
const seedStamp int64 = 1735689600000 // 2025-01-01T00:00:00Z

// Seed returns the hardcoded default record set used when no valid persisted
// state exists. Callers receive fresh copies and may mutate freely.
func Seed() []Record {
	seed := []Record{
		{
			ID:        "01JGG0SEED0000000000000001",
			Title:     "Welcome to trove",
			Description: "Records live in local storage slots. Edit or delete " +
				"this sample to get started.",
			Status:    StatusPending,
			Priority:  PriorityMedium,
			Tags:      []string{"sample"},
			CreatedAt: seedStamp,
			UpdatedAt: seedStamp,
		},
		{
			ID:        "01JGG0SEED0000000000000002",
			Title:     "Try a filter",
			Status:    StatusInProgress,
			Priority:  PriorityHigh,
			Tags:      []string{"sample", "query"},
			CreatedAt: seedStamp,
			UpdatedAt: seedStamp,
		},
	}

	out := make([]Record, len(seed))
	for i, r := range seed {
		out[i] = r.Clone()
	}
	return out
}

// SeedCategories returns the default category set.
func SeedCategories() []Category {
	return []Category{
		{ID: "8c2f6f0e-6f4e-4f3a-9a21-9b1d2c8e4a01", Name: "General", Color: "#6b7280"},
		{ID: "8c2f6f0e-6f4e-4f3a-9a21-9b1d2c8e4a02", Name: "Work", Color: "#2563eb"},
	}
}
