package ops

import (
	"bytes"
	"crypto/rand"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/store"
)

// csvHeader is the fixed interchange header. Import validates against it
// column-for-column.
var csvHeader = []string{"Title", "Description", "Category", "Priority", "Status", "Due Date", "Tags"}

// ExportFormat selects the interchange format.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"  // spreadsheet interchange, common fields only
	FormatJSON ExportFormat = "json" // full-fidelity record array
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path   string       // required
	Format ExportFormat // default: inferred from extension, falling back to json
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path   string       `json:"path"`
	Format ExportFormat `json:"format"`
	Count  int          `json:"count"`
}

// Export writes the full record collection to a file. CSV carries the common
// fields with categories exported by name; JSON is a raw array dump that
// round-trips every field.
func Export(st *store.Store, cats *store.Categories, input ExportInput) (*ExportOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewValidation("path is required")
	}

	format := input.Format
	if format == "" {
		format = inferFormat(input.Path)
	}

	records := st.Records()

	var data []byte
	var err error
	switch format {
	case FormatCSV:
		data, err = encodeCSV(records, cats)
	case FormatJSON:
		data, err = encodeJSON(records)
	default:
		return nil, errors.NewValidation("format must be one of: csv, json")
	}
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(input.Path), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}
	if err := writeFileAtomic(input.Path, data); err != nil {
		return nil, err
	}

	return &ExportOutput{
		Path:   input.Path,
		Format: format,
		Count:  len(records),
	}, nil
}

func inferFormat(path string) ExportFormat {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatJSON
}

// encodeCSV renders the fixed-header CSV. encoding/csv quotes fields
// containing commas, so round-trips survive commas in titles and
// descriptions.
func encodeCSV(records []record.Record, cats *store.Categories) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, errors.NewInternal(err)
	}
	for _, r := range records {
		row := []string{
			r.Title,
			r.Description,
			categoryName(cats, r.Category),
			string(r.Priority),
			string(r.Status),
			formatDue(r.DueDate),
			record.JoinTags(r.Tags),
		}
		if err := w.Write(row); err != nil {
			return nil, errors.NewInternal(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return buf.Bytes(), nil
}

func encodeJSON(records []record.Record) ([]byte, error) {
	if records == nil {
		records = []record.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return append(data, '\n'), nil
}

// writeFileAtomic writes to a temp file first, then renames into place so a
// failure preserves any existing file.
func writeFileAtomic(path string, data []byte) error {
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to write export file: %w", err))
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.NewInternal(fmt.Errorf("failed to finalize export file: %w", err))
	}
	return nil
}
