package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/trovekit/trove/internal/config"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/slot"
	"github.com/trovekit/trove/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// env bundles everything the commands need: the slot backend, the two stores
// loaded from it, and the merged config.
type env struct {
	slots slot.Store
	st    *store.Store
	cats  *store.Categories
	cfg   *config.Config
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return true
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// openEnv initializes the backend and stores under baseDir.
func openEnv(baseDir string) (*env, error) {
	cfg, err := config.Load(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var slots slot.Store
	switch cfg.Backend {
	case config.BackendFile:
		slots, err = slot.OpenFile(filepath.Join(baseDir, "slots"))
	default:
		slots, err = slot.OpenSQLite(baseDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s backend: %w", cfg.Backend, err)
	}

	st, err := store.Open(slots, cfg.RecordsKey, record.Seed(), cfg.InsertPosition)
	if err != nil {
		slots.Close()
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	cats, err := store.OpenCategories(slots, cfg.CategoriesKey, record.SeedCategories())
	if err != nil {
		slots.Close()
		return nil, fmt.Errorf("failed to open category store: %w", err)
	}

	return &env{slots: slots, st: st, cats: cats, cfg: cfg}, nil
}

func main() {
	// Handle --help/--version before touching the backend
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	baseDir := os.Getenv("TROVE_HOME")
	if baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
			os.Exit(1)
		}
		baseDir = filepath.Join(homeDir, ".trove")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		fmt.Fprintf(os.Stderr, "error: could not create %s: %v\n", baseDir, err)
		os.Exit(1)
	}

	e, err := openEnv(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer e.slots.Close()

	app := newCLIApp(e)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
