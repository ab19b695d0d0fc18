// Package store holds the authoritative in-memory record sequence for a
// session and mirrors it to a persistence slot on every change.
package store

import (
	"encoding/json"
	"log"

	"github.com/trovekit/trove/internal/config"
	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/slot"
)

// Store binds an ordered record sequence to a persistence slot. All mutations
// go through pure transformations of the sequence followed by a full
// serialize-and-write, so the slot always reflects the last completed
// mutation (single writer, last write wins).
type Store struct {
	slots   slot.Store
	key     string
	seed    []record.Record
	pos     config.InsertPosition
	records []record.Record
}

// Open loads the record collection from its slot. A missing key or a decode
// failure falls back to the seed set, which is written back immediately so
// subsequent loads are deterministic.
func Open(slots slot.Store, key string, seed []record.Record, pos config.InsertPosition) (*Store, error) {
	st := &Store{
		slots: slots,
		key:   key,
		seed:  cloneAll(seed),
		pos:   pos,
	}

	raw, ok, err := slots.Get(key)
	if err != nil {
		return nil, err
	}

	if ok {
		var records []record.Record
		decodeErr := json.Unmarshal([]byte(raw), &records)
		if decodeErr == nil {
			st.records = records
			return st, nil
		}
		// Corrupt state is never fatal: log and reseed.
		log.Printf("trove: %v", errors.NewDecodeFailure(key, decodeErr))
	}

	st.records = cloneAll(seed)
	if err := st.save(); err != nil {
		return nil, err
	}
	return st, nil
}

// Records returns a deep copy of the working set, in store order.
func (st *Store) Records() []record.Record {
	return cloneAll(st.records)
}

// Len returns the number of records in the store.
func (st *Store) Len() int { return len(st.records) }

// Get returns a copy of the record with the given id.
func (st *Store) Get(id string) (record.Record, bool) {
	for _, r := range st.records {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return record.Record{}, false
}

// FindBySKU returns a copy of the record carrying the given SKU.
func (st *Store) FindBySKU(sku string) (record.Record, bool) {
	for _, r := range st.records {
		if r.SKU != nil && *r.SKU == sku {
			return r.Clone(), true
		}
	}
	return record.Record{}, false
}

// Insert adds a record at the configured position and persists.
func (st *Store) Insert(r record.Record) error {
	st.records = Insert(st.records, r, st.pos)
	return st.save()
}

// Update applies fn to the record with the given id and persists. The second
// return is false when the id is absent, in which case nothing is written.
func (st *Store) Update(id string, fn func(record.Record) record.Record) (record.Record, bool, error) {
	next, updated := Update(st.records, id, fn)
	if !updated {
		return record.Record{}, false, nil
	}
	st.records = next
	r, _ := st.Get(id)
	return r, true, st.save()
}

// RemoveWhere drops every record matching pred and persists. Returns the
// number removed. Removing nothing still counts as a completed mutation but
// skips the write.
func (st *Store) RemoveWhere(pred func(record.Record) bool) (int, error) {
	next, removed := RemoveWhere(st.records, pred)
	if removed == 0 {
		return 0, nil
	}
	st.records = next
	return removed, st.save()
}

// Replace swaps in a full replacement sequence and persists (import/reset).
func (st *Store) Replace(all []record.Record) error {
	st.records = cloneAll(all)
	return st.save()
}

// Clear removes the slot entirely and empties the working set ("delete all
// data"). The seed set returns on the next Open.
func (st *Store) Clear() error {
	st.records = nil
	return st.slots.Delete(st.key)
}

// save serializes the full sequence to its slot.
func (st *Store) save() error {
	records := st.records
	if records == nil {
		records = []record.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return errors.NewInternal(err)
	}
	return st.slots.Set(st.key, string(data))
}

// Insert returns a new sequence with r added. Prepend keeps newest-first
// presentation for to-do style apps; append suits inventory style apps.
// Unrelated records keep their relative order either way.
func Insert(records []record.Record, r record.Record, pos config.InsertPosition) []record.Record {
	next := make([]record.Record, 0, len(records)+1)
	if pos == config.InsertAppend {
		next = append(next, records...)
		return append(next, r)
	}
	next = append(next, r)
	return append(next, records...)
}

// Update returns a new sequence with fn applied to the record matching id,
// and reports whether a match was found. Unrelated records are untouched and
// keep their positions.
func Update(records []record.Record, id string, fn func(record.Record) record.Record) ([]record.Record, bool) {
	updated := false
	next := make([]record.Record, len(records))
	for i, r := range records {
		if r.ID == id {
			next[i] = fn(r.Clone())
			updated = true
			continue
		}
		next[i] = r
	}
	return next, updated
}

// RemoveWhere returns a new sequence without the records matching pred, plus
// the count removed.
func RemoveWhere(records []record.Record, pred func(record.Record) bool) ([]record.Record, int) {
	next := make([]record.Record, 0, len(records))
	removed := 0
	for _, r := range records {
		if pred(r) {
			removed++
			continue
		}
		next = append(next, r)
	}
	return next, removed
}

func cloneAll(records []record.Record) []record.Record {
	if records == nil {
		return nil
	}
	out := make([]record.Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
