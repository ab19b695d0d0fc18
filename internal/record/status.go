package record

// Status is a record's lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is a record's classification, compared via an explicit rank table
// rather than string order.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// priorityRank maps priorities to their sort rank. Unknown priorities rank
// below low so they sink to the bottom of ascending sorts.
var priorityRank = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

// Rank returns the priority's position in the rank table (low=1 .. urgent=4).
// Unknown priorities return 0.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// ValidPriority reports whether p is a known priority.
func ValidPriority(p Priority) bool {
	_, ok := priorityRank[p]
	return ok
}
