package ops

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/query"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/store"
)

// ReportInput contains parameters for the Report operation.
type ReportInput struct {
	Path string // required output path (.html)
	ListInput
}

// ReportOutput contains the result of the Report operation.
type ReportOutput struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// reportTemplate renders the stats header and the current view. Descriptions
// are Markdown rendered through goldmark; everything else is escaped by
// html/template.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>trove report</title></head>
<body>
<h1>trove report</h1>
<p>{{.Stats.Total}} records, {{.Stats.Completed}} completed ({{.Stats.CompletionPct}}%), {{.Stats.Overdue}} overdue</p>
<table border="1" cellpadding="4">
<tr><th>Title</th><th>Status</th><th>Priority</th><th>Category</th><th>Due</th><th>Tags</th><th>Description</th></tr>
{{range .Items}}<tr>
<td>{{.Title}}</td>
<td>{{.Status}}</td>
<td>{{.Priority}}</td>
<td>{{.CategoryName}}</td>
<td>{{.Due}}</td>
<td>{{.Tags}}</td>
<td>{{.Description}}</td>
</tr>
{{end}}</table>
</body>
</html>
`))

type reportRow struct {
	Title        string
	Status       record.Status
	Priority     record.Priority
	CategoryName string
	Due          string
	Tags         string
	Description  template.HTML
}

// Report writes an HTML snapshot of the current view to a file.
func Report(st *store.Store, cats *store.Categories, input ReportInput) (*ReportOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewValidation("path is required")
	}

	sortField := query.SortField(input.Sort)
	if sortField == "" {
		sortField = query.SortCreatedAt
	}
	if !query.ValidSortField(sortField) {
		return nil, errors.NewValidation("sort must be one of: title, created_at, updated_at, due_date, priority, status")
	}

	// The report covers the whole view, not a page of it.
	items := query.View(st.Records(), query.Query{
		Search:   input.Search,
		Status:   input.Status,
		Category: input.Category,
		Priority: input.Priority,
		Tag:      input.Tag,
		Sort:     query.Sort{Field: sortField, Desc: input.Desc},
	})

	md := goldmark.New()
	rows := make([]reportRow, 0, len(items))
	for _, r := range items {
		var rendered bytes.Buffer
		if err := md.Convert([]byte(r.Description), &rendered); err != nil {
			return nil, errors.NewInternal(fmt.Errorf("failed to render description for %s: %w", r.ID, err))
		}

		rows = append(rows, reportRow{
			Title:        r.Title,
			Status:       r.Status,
			Priority:     r.Priority,
			CategoryName: categoryName(cats, r.Category),
			Due:          formatDue(r.DueDate),
			Tags:         record.JoinTags(r.Tags),
			Description:  template.HTML(rendered.String()),
		})
	}

	var out bytes.Buffer
	execErr := reportTemplate.Execute(&out, struct {
		Stats *StatsOutput
		Items []reportRow
	}{Stats: Stats(st), Items: rows})
	if execErr != nil {
		return nil, errors.NewInternal(execErr)
	}

	if err := os.MkdirAll(filepath.Dir(input.Path), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create report directory: %w", err))
	}
	if err := writeFileAtomic(input.Path, out.Bytes()); err != nil {
		return nil, err
	}

	return &ReportOutput{
		Path:  input.Path,
		Count: len(items),
	}, nil
}

func categoryName(cats *store.Categories, id string) string {
	if id == "" {
		return ""
	}
	if c, ok := cats.Get(id); ok {
		return c.Name
	}
	// Orphaned reference under the orphan cascade policy.
	return id
}

func formatDue(due *int64) string {
	if due == nil {
		return ""
	}
	return time.UnixMilli(*due).UTC().Format("2006-01-02")
}
