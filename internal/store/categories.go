package store

import (
	"encoding/json"
	"log"

	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/slot"
)

// Categories binds the category list to its own slot, independent of the
// record collection.
type Categories struct {
	slots slot.Store
	key   string
	cats  []record.Category
}

// OpenCategories loads the category list from its slot with the same
// seed-fallback contract as Open.
func OpenCategories(slots slot.Store, key string, seed []record.Category) (*Categories, error) {
	cs := &Categories{slots: slots, key: key}

	raw, ok, err := slots.Get(key)
	if err != nil {
		return nil, err
	}

	if ok {
		var cats []record.Category
		decodeErr := json.Unmarshal([]byte(raw), &cats)
		if decodeErr == nil {
			cs.cats = cats
			return cs, nil
		}
		log.Printf("trove: %v", errors.NewDecodeFailure(key, decodeErr))
	}

	cs.cats = append([]record.Category(nil), seed...)
	if err := cs.save(); err != nil {
		return nil, err
	}
	return cs, nil
}

// All returns a copy of the category list in insertion order.
func (cs *Categories) All() []record.Category {
	return append([]record.Category(nil), cs.cats...)
}

// Get returns the category with the given id.
func (cs *Categories) Get(id string) (record.Category, bool) {
	for _, c := range cs.cats {
		if c.ID == id {
			return c, true
		}
	}
	return record.Category{}, false
}

// Add appends a category and persists.
func (cs *Categories) Add(c record.Category) error {
	cs.cats = append(cs.cats, c)
	return cs.save()
}

// Remove drops the category with the given id and persists. Returns false
// (without writing) when the id is absent.
func (cs *Categories) Remove(id string) (bool, error) {
	next := make([]record.Category, 0, len(cs.cats))
	found := false
	for _, c := range cs.cats {
		if c.ID == id {
			found = true
			continue
		}
		next = append(next, c)
	}
	if !found {
		return false, nil
	}
	cs.cats = next
	return true, cs.save()
}

func (cs *Categories) save() error {
	cats := cs.cats
	if cats == nil {
		cats = []record.Category{}
	}
	data, err := json.Marshal(cats)
	if err != nil {
		return errors.NewInternal(err)
	}
	return cs.slots.Set(cs.key, string(data))
}
