// Package query computes read-only derived views over a record sequence:
// free-text search, conjunctive categorical filters, and a stable sort.
// Views never mutate the underlying store.
package query

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/trovekit/trove/internal/record"
)

// SortField names a sortable record field.
type SortField string

const (
	SortTitle     SortField = "title"
	SortCreatedAt SortField = "created_at"
	SortUpdatedAt SortField = "updated_at"
	SortDueDate   SortField = "due_date"
	SortPriority  SortField = "priority"
	SortStatus    SortField = "status"
)

// ValidSortField reports whether f is a known sort field.
func ValidSortField(f SortField) bool {
	switch f {
	case SortTitle, SortCreatedAt, SortUpdatedAt, SortDueDate, SortPriority, SortStatus:
		return true
	}
	return false
}

// Sort is a sort specification: a field plus a direction.
type Sort struct {
	Field SortField
	Desc  bool
}

// Query collects the view parameters. Empty string (or "all") on a
// categorical filter means no constraint; active filters are conjunctive.
type Query struct {
	Search   string
	Status   string
	Category string
	Priority string
	Tag      string
	Sort     Sort
}

// collator performs locale-aware string comparison for title sorts.
// Und gives language-neutral collation that still orders accented and cased
// forms sensibly.
var collator = collate.New(language.Und)

// View returns a new filtered and sorted sequence. The input is never
// mutated; an empty store yields an empty result.
func View(records []record.Record, q Query) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, q) {
			out = append(out, r)
		}
	}

	if q.Sort.Field != "" {
		sortRecords(out, q.Sort)
	}
	return out
}

// Matches reports whether a single record passes the query's filters:
// the search term must appear (case-insensitively) in at least one searchable
// field, and every active categorical filter must match exactly.
func Matches(r record.Record, q Query) bool {
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		if !matchesSearch(r, term) {
			return false
		}
	}
	if active(q.Status) && !matchesStatus(r.Status, q.Status) {
		return false
	}
	if active(q.Category) && r.Category != q.Category {
		return false
	}
	if active(q.Priority) && string(r.Priority) != q.Priority {
		return false
	}
	if active(q.Tag) && !r.HasTag(q.Tag) {
		return false
	}
	return true
}

// active reports whether a categorical filter constrains the view.
// Both "" and the "all" sentinel mean unconstrained.
func active(filter string) bool {
	return filter != "" && filter != "all"
}

// matchesStatus compares a status filter exactly, except for the virtual
// "active" value which matches everything not yet completed.
func matchesStatus(s record.Status, filter string) bool {
	if filter == "active" {
		return s != record.StatusCompleted
	}
	return string(s) == filter
}

// matchesSearch checks the searchable fields (title, description, tags) as a
// union: substring containment in any one of them is a match.
func matchesSearch(r record.Record, term string) bool {
	if strings.Contains(strings.ToLower(r.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), term) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// sortRecords sorts in place with a stable comparator so records comparing
// equal keep their store order.
func sortRecords(records []record.Record, s Sort) {
	cmp := comparator(s.Field)
	sort.SliceStable(records, func(i, j int) bool {
		c := cmp(records[i], records[j])
		if s.Desc {
			c = -c
		}
		return c < 0
	})
}

// comparator returns a three-way comparison for the given field.
func comparator(field SortField) func(a, b record.Record) int {
	switch field {
	case SortCreatedAt:
		return func(a, b record.Record) int { return compareInt64(a.CreatedAt, b.CreatedAt) }
	case SortUpdatedAt:
		return func(a, b record.Record) int { return compareInt64(a.UpdatedAt, b.UpdatedAt) }
	case SortDueDate:
		return func(a, b record.Record) int {
			// An absent due date sorts as infinitely far in the future, so
			// undated records trail in ascending order.
			return compareInt64(dueOrMax(a), dueOrMax(b))
		}
	case SortPriority:
		return func(a, b record.Record) int { return a.Priority.Rank() - b.Priority.Rank() }
	case SortStatus:
		return func(a, b record.Record) int { return statusRank(a.Status) - statusRank(b.Status) }
	default: // SortTitle
		return func(a, b record.Record) int { return collator.CompareString(a.Title, b.Title) }
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func dueOrMax(r record.Record) int64 {
	if r.DueDate == nil {
		return math.MaxInt64
	}
	return *r.DueDate
}

// statusRank orders statuses by lifecycle progression.
func statusRank(s record.Status) int {
	switch s {
	case record.StatusPending:
		return 1
	case record.StatusInProgress:
		return 2
	case record.StatusCompleted:
		return 3
	}
	return 0
}
