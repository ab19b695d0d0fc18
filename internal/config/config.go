package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// CascadePolicy controls what happens to records referencing a deleted category.
type CascadePolicy string

const (
	// CascadeReassign moves referencing records to the first remaining category.
	CascadeReassign CascadePolicy = "reassign"
	// CascadeOrphan leaves the dangling category id on referencing records.
	CascadeOrphan CascadePolicy = "orphan"
)

// InsertPosition controls where newly created records land in the store.
// This is a presentation default, not a correctness requirement.
type InsertPosition string

const (
	InsertPrepend InsertPosition = "prepend"
	InsertAppend  InsertPosition = "append"
)

// Backend selects the slot storage engine.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
)

// Config holds application configuration.
type Config struct {
	// PreserveFirstCompletion keeps the original CompletedAt when a record is
	// re-completed. When false, every completion re-stamps and leaving the
	// completed state clears the timestamp.
	PreserveFirstCompletion *bool `json:"preserve_first_completion,omitempty"`

	// CategoryCascade is the policy applied to referencing records when a
	// category is deleted.
	CategoryCascade CascadePolicy `json:"category_cascade,omitempty"`

	// InsertPosition is where Create places new records (prepend for to-do
	// style apps, append for inventory style apps).
	InsertPosition InsertPosition `json:"insert_position,omitempty"`

	// Backend selects the slot engine: "sqlite" or "file".
	Backend Backend `json:"backend,omitempty"`

	// RecordsKey is the slot key holding the serialized record collection.
	RecordsKey string `json:"records_key,omitempty"`

	// CategoriesKey is the slot key holding the serialized category list.
	CategoriesKey string `json:"categories_key,omitempty"`

	// DarkModeKey is the slot key holding the dark-mode setting.
	DarkModeKey string `json:"dark_mode_key,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	preserve := true
	return &Config{
		PreserveFirstCompletion: &preserve,
		CategoryCascade:         CascadeReassign,
		InsertPosition:          InsertPrepend,
		Backend:                 BackendSQLite,
		RecordsKey:              "trove.records",
		CategoriesKey:           "trove.categories",
		DarkModeKey:             "trove.darkMode",
	}
}

// PreserveFirst reports the effective first-completion-wins policy.
func (c *Config) PreserveFirst() bool {
	return c.PreserveFirstCompletion == nil || *c.PreserveFirstCompletion
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.trove.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs. Overlay values take precedence
// when set.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.PreserveFirstCompletion = overlay.PreserveFirstCompletion
	if result.PreserveFirstCompletion == nil {
		result.PreserveFirstCompletion = base.PreserveFirstCompletion
	}

	result.CategoryCascade = overlay.CategoryCascade
	if result.CategoryCascade == "" {
		result.CategoryCascade = base.CategoryCascade
	}

	result.InsertPosition = overlay.InsertPosition
	if result.InsertPosition == "" {
		result.InsertPosition = base.InsertPosition
	}

	result.Backend = overlay.Backend
	if result.Backend == "" {
		result.Backend = base.Backend
	}

	result.RecordsKey = overlay.RecordsKey
	if result.RecordsKey == "" {
		result.RecordsKey = base.RecordsKey
	}

	result.CategoriesKey = overlay.CategoriesKey
	if result.CategoriesKey == "" {
		result.CategoriesKey = base.CategoriesKey
	}

	result.DarkModeKey = overlay.DarkModeKey
	if result.DarkModeKey == "" {
		result.DarkModeKey = base.DarkModeKey
	}

	return result
}

// Validate checks enum-valued fields.
func (c *Config) Validate() error {
	switch c.CategoryCascade {
	case CascadeReassign, CascadeOrphan:
	default:
		return errors.New("category_cascade must be one of: reassign, orphan")
	}
	switch c.InsertPosition {
	case InsertPrepend, InsertAppend:
	default:
		return errors.New("insert_position must be one of: prepend, append")
	}
	switch c.Backend {
	case BackendSQLite, BackendFile:
	default:
		return errors.New("backend must be one of: sqlite, file")
	}
	return nil
}
