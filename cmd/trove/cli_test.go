package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trovekit/trove/internal/config"
	"github.com/trovekit/trove/internal/ops"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/slot"
	"github.com/trovekit/trove/internal/store"
)

// setupTestEnv creates an env on the file backend with an empty record store.
func setupTestEnv(t *testing.T) *env {
	t.Helper()

	slots, err := slot.OpenFile(t.TempDir())
	if err != nil {
		t.Fatalf("failed to open slot backend: %v", err)
	}
	t.Cleanup(func() { slots.Close() })

	cfg := config.DefaultConfig()

	st, err := store.Open(slots, cfg.RecordsKey, nil, cfg.InsertPosition)
	if err != nil {
		t.Fatalf("failed to open record store: %v", err)
	}
	cats, err := store.OpenCategories(slots, cfg.CategoriesKey, record.SeedCategories())
	if err != nil {
		t.Fatalf("failed to open category store: %v", err)
	}

	return &env{slots: slots, st: st, cats: cats, cfg: cfg}
}

// runCLI executes a command against a fresh app and returns captured stdout.
func runCLI(t *testing.T, e *env, args ...string) (string, error) {
	t.Helper()

	app := newCLIApp(e)

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := app.Run(append([]string{"trove"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), err
}

func TestParseDate(t *testing.T) {
	millis, err := parseDate("2025-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if millis != 1740787200000 {
		t.Errorf("expected 1740787200000, got %d", millis)
	}

	if _, err := parseDate("March 1st"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestCLIAdd(t *testing.T) {
	e := setupTestEnv(t)

	out, err := runCLI(t, e, "add",
		"--priority=high", "--tags=warehouse,restock", "--due=2025-03-01", "--qty=12",
		"Restock shelf A")
	if err != nil {
		t.Fatalf("add command failed: %v", err)
	}

	var output ops.CreateOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}

	if output.Record.ID == "" {
		t.Error("expected non-empty id")
	}
	if output.Record.Priority != record.PriorityHigh {
		t.Errorf("expected priority high, got %s", output.Record.Priority)
	}
	if output.Record.DueDate == nil {
		t.Error("expected due date to be set")
	}
	if len(output.Record.Tags) != 2 {
		t.Errorf("expected 2 tags, got %v", output.Record.Tags)
	}
}

func TestCLIAddMissingTitle(t *testing.T) {
	e := setupTestEnv(t)

	_, err := runCLI(t, e, "add", "")
	if err == nil {
		t.Fatal("expected error for empty title")
	}
	if !strings.Contains(err.Error(), "VALIDATION") {
		t.Errorf("expected VALIDATION in error, got %v", err)
	}
}

func TestCLIGetUpdateDone(t *testing.T) {
	e := setupTestEnv(t)

	created, err := ops.Create(e.st, e.cfg, ops.CreateInput{Title: "lifecycle"})
	if err != nil {
		t.Fatalf("failed to create record: %v", err)
	}
	id := created.Record.ID

	out, err := runCLI(t, e, "get", id)
	if err != nil {
		t.Fatalf("get command failed: %v", err)
	}
	if !strings.Contains(out, "lifecycle") {
		t.Errorf("get output missing title: %s", out)
	}

	if _, err := runCLI(t, e, "update", "--title=renamed", id); err != nil {
		t.Fatalf("update command failed: %v", err)
	}
	if r, _ := e.st.Get(id); r.Title != "renamed" {
		t.Errorf("update did not apply, title = %q", r.Title)
	}

	if _, err := runCLI(t, e, "done", id); err != nil {
		t.Fatalf("done command failed: %v", err)
	}
	r, _ := e.st.Get(id)
	if r.Status != record.StatusCompleted {
		t.Errorf("expected completed, got %s", r.Status)
	}
	if r.CompletedAt == nil {
		t.Error("expected completion timestamp")
	}
}

func TestCLIDoneBulk(t *testing.T) {
	e := setupTestEnv(t)

	a, _ := ops.Create(e.st, e.cfg, ops.CreateInput{Title: "a"})
	b, _ := ops.Create(e.st, e.cfg, ops.CreateInput{Title: "b"})

	out, err := runCLI(t, e, "done", a.Record.ID, b.Record.ID, "missing-id")
	if err != nil {
		t.Fatalf("bulk done failed: %v", err)
	}

	var output ops.BulkOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Applied != 2 || output.Skipped != 1 {
		t.Errorf("expected applied=2 skipped=1, got %+v", output)
	}
}

func TestCLIDeleteBulk(t *testing.T) {
	e := setupTestEnv(t)

	a, _ := ops.Create(e.st, e.cfg, ops.CreateInput{Title: "a"})
	b, _ := ops.Create(e.st, e.cfg, ops.CreateInput{Title: "b"})

	if _, err := runCLI(t, e, "delete", a.Record.ID, b.Record.ID); err != nil {
		t.Fatalf("bulk delete failed: %v", err)
	}
	if e.st.Len() != 0 {
		t.Errorf("expected empty store, got %d records", e.st.Len())
	}
}

func TestCLIList(t *testing.T) {
	e := setupTestEnv(t)

	_, _ = ops.Create(e.st, e.cfg, ops.CreateInput{Title: "Buy milk"})
	done, _ := ops.Create(e.st, e.cfg, ops.CreateInput{Title: "Ship widget", Status: record.StatusCompleted})

	out, err := runCLI(t, e, "list", "--status=active")
	if err != nil {
		t.Fatalf("list command failed: %v", err)
	}

	var output ops.ListOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if len(output.Items) != 1 || output.Items[0].Title != "Buy milk" {
		t.Errorf("active filter returned wrong items: %+v", output.Items)
	}
	if output.Items[0].ID == done.Record.ID {
		t.Error("completed record leaked into active view")
	}
}

func TestCLIListBadSort(t *testing.T) {
	e := setupTestEnv(t)

	_, err := runCLI(t, e, "list", "--sort=bogus")
	if err == nil {
		t.Fatal("expected error for invalid sort field")
	}
	if !strings.Contains(err.Error(), "VALIDATION") {
		t.Errorf("expected VALIDATION in error, got %v", err)
	}
}

func TestCLIAdjust(t *testing.T) {
	e := setupTestEnv(t)

	qty := 10.0
	created, _ := ops.Create(e.st, e.cfg, ops.CreateInput{Title: "widget", Quantity: &qty})

	out, err := runCLI(t, e, "adjust", created.Record.ID, "-4")
	if err != nil {
		t.Fatalf("adjust command failed: %v", err)
	}

	var output ops.AdjustOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Quantity != 6 {
		t.Errorf("expected quantity 6, got %g", output.Quantity)
	}

	_, err = runCLI(t, e, "adjust", created.Record.ID, "-100")
	if err == nil {
		t.Fatal("expected error for overdraw")
	}
	if !strings.Contains(err.Error(), "INSUFFICIENT_STOCK") {
		t.Errorf("expected INSUFFICIENT_STOCK in error, got %v", err)
	}
}

func TestCLICategoryFlow(t *testing.T) {
	e := setupTestEnv(t)

	out, err := runCLI(t, e, "category", "add", "--color=#ff8800", "Errands")
	if err != nil {
		t.Fatalf("category add failed: %v", err)
	}
	var created ops.CategoryCreateOutput
	if err := json.Unmarshal([]byte(out), &created); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}

	out, err = runCLI(t, e, "category", "list")
	if err != nil {
		t.Fatalf("category list failed: %v", err)
	}
	if !strings.Contains(out, "Errands") {
		t.Errorf("category list missing new category: %s", out)
	}

	if _, err := runCLI(t, e, "category", "rm", created.Category.ID); err != nil {
		t.Fatalf("category rm failed: %v", err)
	}
	if _, ok := e.cats.Get(created.Category.ID); ok {
		t.Error("category still present after rm")
	}
}

func TestCLIExportImport(t *testing.T) {
	e := setupTestEnv(t)

	_, _ = ops.Create(e.st, e.cfg, ops.CreateInput{Title: "exported"})
	path := filepath.Join(t.TempDir(), "backup.csv")

	if _, err := runCLI(t, e, "export", "--path="+path); err != nil {
		t.Fatalf("export command failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export file missing: %v", err)
	}

	out, err := runCLI(t, e, "import", "--path="+path, "--mode=replace")
	if err != nil {
		t.Fatalf("import command failed: %v", err)
	}
	var output ops.ImportOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Imported != 1 {
		t.Errorf("expected 1 imported, got %d", output.Imported)
	}
}

func TestCLIReport(t *testing.T) {
	e := setupTestEnv(t)

	_, _ = ops.Create(e.st, e.cfg, ops.CreateInput{Title: "report me"})
	path := filepath.Join(t.TempDir(), "report.html")

	if _, err := runCLI(t, e, "report", "--path="+path); err != nil {
		t.Fatalf("report command failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	if !strings.Contains(string(data), "report me") {
		t.Error("report missing record title")
	}
}

func TestCLIPurge(t *testing.T) {
	e := setupTestEnv(t)

	_, _ = ops.Create(e.st, e.cfg, ops.CreateInput{Title: "gone"})

	if _, err := runCLI(t, e, "purge"); err != nil {
		t.Fatalf("purge command failed: %v", err)
	}
	if e.st.Len() != 0 {
		t.Errorf("expected empty store after purge, got %d", e.st.Len())
	}
}

func TestCLIDarkMode(t *testing.T) {
	e := setupTestEnv(t)

	out, err := runCLI(t, e, "dark-mode")
	if err != nil {
		t.Fatalf("dark-mode command failed: %v", err)
	}
	if !strings.Contains(out, `"dark_mode": false`) {
		t.Errorf("expected dark_mode false, got: %s", out)
	}

	if _, err := runCLI(t, e, "dark-mode", "on"); err != nil {
		t.Fatalf("dark-mode on failed: %v", err)
	}

	// The slot holds the literal string form.
	value, ok, err := e.slots.Get(e.cfg.DarkModeKey)
	if err != nil || !ok || value != "true" {
		t.Errorf("expected slot value \"true\", got %q (ok=%v err=%v)", value, ok, err)
	}
}
