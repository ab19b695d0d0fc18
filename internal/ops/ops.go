// Package ops implements the engine's mutation and view operations. Each
// operation validates its input, applies a pure transformation to the record
// store, and relies on the store to mirror the result to its persistence
// slot. Failures are converted to coded errors at this boundary; nothing
// propagates as a panic.
package ops

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/trovekit/trove/internal/errors"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// generateULID generates a new ULID for a record id.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// nowMillis returns the current time in epoch milliseconds. Tests may stub it
// for deterministic timestamps.
var nowMillis = func() int64 {
	return time.Now().UnixMilli()
}

// requireTitle trims and validates the required title field.
func requireTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", errors.NewValidation("title must not be empty")
	}
	return trimmed, nil
}

// cleanOptionalString trims a *string and nils it out when empty.
func cleanOptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
