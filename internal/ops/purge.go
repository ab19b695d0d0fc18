package ops

import (
	"github.com/trovekit/trove/internal/store"
)

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	Removed int `json:"removed"`
}

// Purge implements "delete all data": the record slot is removed entirely and
// the working set emptied. The seed set returns on the next session.
func Purge(st *store.Store) (*PurgeOutput, error) {
	removed := st.Len()
	if err := st.Clear(); err != nil {
		return nil, err
	}
	return &PurgeOutput{Removed: removed}, nil
}
