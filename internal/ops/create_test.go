package ops

import (
	"reflect"
	"testing"

	"github.com/trovekit/trove/internal/config"
	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/store"
)

func TestCreateAssignsIDAndTimestamps(t *testing.T) {
	env := newTestEnv(t)

	out := mustCreate(t, env, CreateInput{Title: "Buy milk"})

	if out.ID == "" {
		t.Error("ID not assigned")
	}
	if out.CreatedAt == 0 || out.UpdatedAt != out.CreatedAt {
		t.Errorf("timestamps: created=%d updated=%d, want equal and non-zero", out.CreatedAt, out.UpdatedAt)
	}
	if out.Status != record.StatusPending {
		t.Errorf("Status = %q, want pending default", out.Status)
	}
	if out.Priority != record.PriorityMedium {
		t.Errorf("Priority = %q, want medium default", out.Priority)
	}
}

func TestCreateEmptyTitleIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := Create(env.st, env.cfg, CreateInput{Title: title})
		if !errors.Is(err, errors.ErrValidation) {
			t.Errorf("Create(%q) error = %v, want VALIDATION", title, err)
		}
	}

	if env.st.Len() != 0 {
		t.Errorf("store length = %d after rejected creates, want 0", env.st.Len())
	}
}

func TestCreateTrimsTitle(t *testing.T) {
	env := newTestEnv(t)

	out := mustCreate(t, env, CreateInput{Title: "  x  "})
	if out.Title != "x" {
		t.Errorf("Title = %q, want %q", out.Title, "x")
	}

	stored, ok := env.st.Get(out.ID)
	if !ok || stored.Title != "x" {
		t.Errorf("stored title = %q, want %q", stored.Title, "x")
	}
}

func TestCreateParsesTags(t *testing.T) {
	env := newTestEnv(t)

	out := mustCreate(t, env, CreateInput{Title: "tagged", Tags: " home , urgent ,, "})
	if !reflect.DeepEqual(out.Tags, []string{"home", "urgent"}) {
		t.Errorf("Tags = %v, want [home urgent]", out.Tags)
	}
}

func TestCreateRejectsUnknownEnums(t *testing.T) {
	env := newTestEnv(t)

	_, err := Create(env.st, env.cfg, CreateInput{Title: "x", Status: "archived"})
	if !errors.Is(err, errors.ErrValidation) {
		t.Errorf("unknown status error = %v, want VALIDATION", err)
	}

	_, err = Create(env.st, env.cfg, CreateInput{Title: "x", Priority: "extreme"})
	if !errors.Is(err, errors.ErrValidation) {
		t.Errorf("unknown priority error = %v, want VALIDATION", err)
	}
}

func TestCreateRejectsNegativeQuantity(t *testing.T) {
	env := newTestEnv(t)

	_, err := Create(env.st, env.cfg, CreateInput{Title: "widget", Quantity: float64Ptr(-1)})
	if !errors.Is(err, errors.ErrValidation) {
		t.Errorf("negative quantity error = %v, want VALIDATION", err)
	}
}

func TestCreateRejectsDuplicateSKU(t *testing.T) {
	env := newTestEnv(t)

	mustCreate(t, env, CreateInput{Title: "first", SKU: stringPtr("SKU-1")})

	_, err := Create(env.st, env.cfg, CreateInput{Title: "second", SKU: stringPtr("SKU-1")})
	if !errors.Is(err, errors.ErrDuplicateSKU) {
		t.Errorf("duplicate SKU error = %v, want DUPLICATE_SKU", err)
	}
	if env.st.Len() != 1 {
		t.Errorf("store length = %d after rejected create, want 1", env.st.Len())
	}
}

func TestCreateCompletedStampsCompletedAt(t *testing.T) {
	env := newTestEnv(t)

	out := mustCreate(t, env, CreateInput{Title: "done on arrival", Status: record.StatusCompleted})
	if out.CompletedAt == nil {
		t.Error("CompletedAt not stamped for a record created completed")
	}
}

func TestCreateInsertPosition(t *testing.T) {
	// Prepend (to-do app default): newest first.
	env := newTestEnv(t)
	mustCreate(t, env, CreateInput{Title: "first"})
	mustCreate(t, env, CreateInput{Title: "second"})

	records := env.st.Records()
	if records[0].Title != "second" {
		t.Errorf("prepend: records[0] = %q, want second", records[0].Title)
	}

	// Append (inventory app default): oldest first.
	slots := env.slots
	appendCfg := config.DefaultConfig()
	appendCfg.InsertPosition = config.InsertAppend
	st, err := store.Open(slots, "append.records", nil, appendCfg.InsertPosition)
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	if _, err := Create(st, appendCfg, CreateInput{Title: "first"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := Create(st, appendCfg, CreateInput{Title: "second"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	records = st.Records()
	if records[1].Title != "second" {
		t.Errorf("append: records[1] = %q, want second", records[1].Title)
	}
}
