package record

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", nil},
		{"whitespace only", "   ", nil},
		{"single tag", "home", []string{"home"}},
		{"multiple tags", "home,urgent,errand", []string{"home", "urgent", "errand"}},
		{"trims each tag", " home , urgent ", []string{"home", "urgent"}},
		{"drops empties", "home,,urgent,", []string{"home", "urgent"}},
		{"only commas", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTags(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHasTag(t *testing.T) {
	r := Record{Tags: []string{"Home", "errand"}}

	if !r.HasTag("home") {
		t.Error("HasTag should match case-insensitively")
	}
	if r.HasTag("work") {
		t.Error("HasTag matched a missing tag")
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityLow.Rank() >= PriorityMedium.Rank() {
		t.Error("low should rank below medium")
	}
	if PriorityHigh.Rank() >= PriorityUrgent.Rank() {
		t.Error("high should rank below urgent")
	}
	if Priority("bogus").Rank() != 0 {
		t.Errorf("unknown priority rank = %d, want 0", Priority("bogus").Rank())
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusCompleted} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	if ValidStatus("done") {
		t.Error(`ValidStatus("done") = true, want false`)
	}
}

func TestCloneIsDeep(t *testing.T) {
	due := int64(1700000000000)
	qty := 5.0
	r := Record{
		ID:       "01A",
		Title:    "original",
		Tags:     []string{"a"},
		Extra:    map[string]string{"weight": "2.5"},
		DueDate:  &due,
		Quantity: &qty,
	}

	c := r.Clone()
	c.Tags[0] = "mutated"
	c.Extra["weight"] = "9"
	*c.DueDate = 0
	*c.Quantity = 0

	if r.Tags[0] != "a" {
		t.Error("Clone shares the tags slice")
	}
	if r.Extra["weight"] != "2.5" {
		t.Error("Clone shares the extra map")
	}
	if *r.DueDate != due {
		t.Error("Clone shares the due date pointer")
	}
	if *r.Quantity != qty {
		t.Error("Clone shares the quantity pointer")
	}
}

// Round-trip: decode(encode(records)) preserves every field and the order.
func TestJSONRoundTrip(t *testing.T) {
	due := int64(1700000000000)
	sku := "SKU-1"
	qty := 3.5
	done := int64(1700000001000)

	records := []Record{
		{
			ID:          "01B",
			Title:       "full record",
			Description: "desc",
			Status:      StatusCompleted,
			Priority:    PriorityUrgent,
			Category:    "cat-1",
			Tags:        []string{"x", "y"},
			DueDate:     &due,
			SKU:         &sku,
			Quantity:    &qty,
			Extra:       map[string]string{"weight": "1.2"},
			CreatedAt:   1,
			UpdatedAt:   2,
			CompletedAt: &done,
		},
		{
			ID:        "01C",
			Title:     "sparse record",
			Status:    StatusPending,
			Priority:  PriorityLow,
			CreatedAt: 3,
			UpdatedAt: 3,
		},
	}

	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded []Record
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(records, decoded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, records)
	}
}

func TestSeedIsIndependent(t *testing.T) {
	a := Seed()
	b := Seed()

	a[0].Title = "mutated"
	a[0].Tags[0] = "mutated"

	if b[0].Title == "mutated" || b[0].Tags[0] == "mutated" {
		t.Error("Seed() returned aliased records")
	}
}
