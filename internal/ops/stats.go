package ops

import (
	"math"

	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/store"
)

// StatsOutput contains derived statistics over the full record set.
type StatsOutput struct {
	Total         int     `json:"total"`
	Pending       int     `json:"pending"`
	InProgress    int     `json:"in_progress"`
	Completed     int     `json:"completed"`
	CompletionPct float64 `json:"completion_pct"`
	Overdue       int     `json:"overdue"`
	TotalQuantity float64 `json:"total_quantity"`
	WithDueDate   int     `json:"with_due_date"`
	Uncategorized int     `json:"uncategorized"`
}

// Stats computes counts and percentages over the store. An empty store yields
// all zeros, not an error.
func Stats(st *store.Store) *StatsOutput {
	out := &StatsOutput{}
	now := nowMillis()

	for _, r := range st.Records() {
		out.Total++
		switch r.Status {
		case record.StatusPending:
			out.Pending++
		case record.StatusInProgress:
			out.InProgress++
		case record.StatusCompleted:
			out.Completed++
		}
		if r.DueDate != nil {
			out.WithDueDate++
			if *r.DueDate < now && r.Status != record.StatusCompleted {
				out.Overdue++
			}
		}
		if r.Quantity != nil {
			out.TotalQuantity += *r.Quantity
		}
		if r.Category == "" {
			out.Uncategorized++
		}
	}

	if out.Total > 0 {
		pct := float64(out.Completed) / float64(out.Total) * 100
		out.CompletionPct = math.Round(pct*10) / 10
	}
	return out
}
