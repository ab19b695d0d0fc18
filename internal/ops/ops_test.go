package ops

import (
	"testing"

	"github.com/trovekit/trove/internal/config"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/slot"
	"github.com/trovekit/trove/internal/store"
)

// testEnv bundles the stores and config most op tests need. The record store
// starts empty; categories start with the seed set.
type testEnv struct {
	slots slot.Store
	st    *store.Store
	cats  *store.Categories
	cfg   *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	slots, err := slot.OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	t.Cleanup(func() { slots.Close() })

	cfg := config.DefaultConfig()

	st, err := store.Open(slots, cfg.RecordsKey, nil, cfg.InsertPosition)
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	cats, err := store.OpenCategories(slots, cfg.CategoriesKey, record.SeedCategories())
	if err != nil {
		t.Fatalf("OpenCategories failed: %v", err)
	}

	return &testEnv{slots: slots, st: st, cats: cats, cfg: cfg}
}

// mustCreate creates a record with sensible defaults, failing the test on error.
func mustCreate(t *testing.T, env *testEnv, input CreateInput) record.Record {
	t.Helper()
	out, err := Create(env.st, env.cfg, input)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", input.Title, err)
	}
	return out.Record
}

func stringPtr(s string) *string    { return &s }
func float64Ptr(f float64) *float64 { return &f }
func int64Ptr(i int64) *int64       { return &i }
