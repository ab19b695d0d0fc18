package ops

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trovekit/trove/internal/config"
	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/store"
)

// ImportMode controls how imported rows combine with the existing store.
type ImportMode string

const (
	ImportModeReplace ImportMode = "replace" // imported rows become the whole store
	ImportModeMerge   ImportMode = "merge"   // imported rows are added to the store
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path   string       // required
	Format ExportFormat // default: inferred from extension
	Mode   ImportMode   // default: merge
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int        `json:"imported"`
	Mode     ImportMode `json:"mode"`
}

// Import reads records from a CSV or JSON file. The import is all-or-nothing:
// any malformed row abandons it with the store untouched. Input ids and
// timestamps are never trusted; every imported row gets a fresh id and fresh
// timestamps.
func Import(st *store.Store, cats *store.Categories, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewValidation("path is required")
	}
	mode := input.Mode
	if mode == "" {
		mode = ImportModeMerge
	}
	if mode != ImportModeReplace && mode != ImportModeMerge {
		return nil, errors.NewValidation("mode must be one of: replace, merge")
	}

	format := input.Format
	if format == "" {
		format = inferFormat(input.Path)
	}

	data, err := os.ReadFile(input.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound(input.Path)
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}

	var imported []record.Record
	var newCats []record.Category
	switch format {
	case FormatCSV:
		imported, newCats, err = decodeCSV(data, cats)
	case FormatJSON:
		imported, err = decodeJSON(data)
	default:
		return nil, errors.NewValidation("format must be one of: csv, json")
	}
	if err != nil {
		return nil, err
	}

	// Categories referenced by new names are created only once the whole file
	// has validated, so an abandoned import leaves nothing behind.
	for _, c := range newCats {
		if err := cats.Add(c); err != nil {
			return nil, err
		}
	}

	switch mode {
	case ImportModeReplace:
		if err := st.Replace(imported); err != nil {
			return nil, err
		}
	case ImportModeMerge:
		// The batch lands at the configured position as a block, keeping the
		// file's row order either way.
		existing := st.Records()
		var next []record.Record
		if cfg.InsertPosition == config.InsertAppend {
			next = append(existing, imported...)
		} else {
			next = append(append([]record.Record(nil), imported...), existing...)
		}
		if err := st.Replace(next); err != nil {
			return nil, err
		}
	}

	return &ImportOutput{
		Imported: len(imported),
		Mode:     mode,
	}, nil
}

// decodeCSV parses the fixed-header CSV format. Categories are matched to
// existing categories by name (case-insensitively); unmatched names become
// new categories, returned separately so the caller can apply them after the
// whole file validates.
func decodeCSV(data []byte, cats *store.Categories) ([]record.Record, []record.Category, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.NewImportFormat(fmt.Sprintf("invalid CSV: %v", err))
	}
	if len(rows) == 0 {
		return nil, nil, errors.NewImportFormat("file is empty")
	}

	header := rows[0]
	if len(header) != len(csvHeader) {
		return nil, nil, errors.NewImportFormat(fmt.Sprintf("expected header %v", csvHeader))
	}
	for i, col := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return nil, nil, errors.NewImportFormat(fmt.Sprintf("expected header %v", csvHeader))
		}
	}

	resolver := newCategoryResolver(cats)

	records := make([]record.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2

		title := strings.TrimSpace(row[0])
		if title == "" {
			return nil, nil, errors.NewImportFormat(fmt.Sprintf("line %d: title must not be empty", line))
		}

		priority := record.Priority(strings.TrimSpace(strings.ToLower(row[3])))
		if priority == "" {
			priority = record.PriorityMedium
		}
		if !record.ValidPriority(priority) {
			return nil, nil, errors.NewImportFormat(fmt.Sprintf("line %d: unknown priority %q", line, row[3]))
		}

		status := record.Status(strings.TrimSpace(strings.ToLower(row[4])))
		if status == "" {
			status = record.StatusPending
		}
		if !record.ValidStatus(status) {
			return nil, nil, errors.NewImportFormat(fmt.Sprintf("line %d: unknown status %q", line, row[4]))
		}

		due, err := parseDue(row[5])
		if err != nil {
			return nil, nil, errors.NewImportFormat(fmt.Sprintf("line %d: invalid due date %q", line, row[5]))
		}

		r, err := freshRecord(title)
		if err != nil {
			return nil, nil, err
		}
		r.Description = row[1]
		r.Status = status
		r.Priority = priority
		r.Category = resolver.resolve(row[2])
		r.Tags = record.ParseTags(row[6])
		r.DueDate = due
		if status == record.StatusCompleted {
			completedAt := r.CreatedAt
			r.CompletedAt = &completedAt
		}

		records = append(records, r)
	}
	return records, resolver.created, nil
}

// categoryResolver maps category names to ids without touching the category
// store until the import commits.
type categoryResolver struct {
	byName  map[string]string
	created []record.Category
}

func newCategoryResolver(cats *store.Categories) *categoryResolver {
	byName := make(map[string]string)
	for _, c := range cats.All() {
		byName[strings.ToLower(c.Name)] = c.ID
	}
	return &categoryResolver{byName: byName}
}

func (cr *categoryResolver) resolve(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if id, ok := cr.byName[strings.ToLower(name)]; ok {
		return id
	}
	c := record.Category{ID: uuid.New().String(), Name: name}
	cr.byName[strings.ToLower(name)] = c.ID
	cr.created = append(cr.created, c)
	return c.ID
}

// decodeJSON parses a raw record array. Field values are kept, but ids and
// timestamps are re-synthesized.
func decodeJSON(data []byte) ([]record.Record, error) {
	var rows []record.Record
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.NewImportFormat(fmt.Sprintf("invalid JSON: %v", err))
	}

	records := make([]record.Record, 0, len(rows))
	for i, row := range rows {
		title := strings.TrimSpace(row.Title)
		if title == "" {
			return nil, errors.NewImportFormat(fmt.Sprintf("record %d: title must not be empty", i))
		}
		if row.Status == "" {
			row.Status = record.StatusPending
		}
		if !record.ValidStatus(row.Status) {
			return nil, errors.NewImportFormat(fmt.Sprintf("record %d: unknown status %q", i, row.Status))
		}
		if row.Priority == "" {
			row.Priority = record.PriorityMedium
		}
		if !record.ValidPriority(row.Priority) {
			return nil, errors.NewImportFormat(fmt.Sprintf("record %d: unknown priority %q", i, row.Priority))
		}
		if row.Quantity != nil && *row.Quantity < 0 {
			return nil, errors.NewImportFormat(fmt.Sprintf("record %d: quantity must not be negative", i))
		}

		fresh, err := freshRecord(title)
		if err != nil {
			return nil, err
		}
		row.ID = fresh.ID
		row.Title = title
		row.CreatedAt = fresh.CreatedAt
		row.UpdatedAt = fresh.UpdatedAt
		row.CompletedAt = nil
		if row.Status == record.StatusCompleted {
			completedAt := fresh.CreatedAt
			row.CompletedAt = &completedAt
		}

		records = append(records, row.Clone())
	}
	return records, nil
}

// freshRecord builds the id/timestamp skeleton for an imported row.
func freshRecord(title string) (record.Record, error) {
	id, err := generateULID()
	if err != nil {
		return record.Record{}, errors.NewInternal(err)
	}
	now := nowMillis()
	return record.Record{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func parseDue(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	millis := t.UnixMilli()
	return &millis, nil
}
