package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/trovekit/trove/internal/errors"
	"github.com/trovekit/trove/internal/ops"
	"github.com/trovekit/trove/internal/record"
	"github.com/trovekit/trove/internal/slot"
)

// newCLIApp creates the CLI application with all commands. e may be nil for
// the help/version path, which never runs an action.
func newCLIApp(e *env) *cli.App {
	app := &cli.App{
		Name:    "trove",
		Usage:   "Local record store with derived views",
		Version: Version,
		Commands: []*cli.Command{
			addCmd(e),
			getCmd(e),
			updateCmd(e),
			deleteCmd(e),
			doneCmd(e),
			statusCmd(e),
			listCmd(e),
			statsCmd(e),
			adjustCmd(e),
			categoryCmd(e),
			exportCmd(e),
			importCmd(e),
			reportCmd(e),
			purgeCmd(e),
			darkModeCmd(e),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addCmd creates the add command.
func addCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Create a new record (flags precede the title)",
		ArgsUsage: "<title>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "desc", Aliases: []string{"d"}, Usage: "Description (Markdown)"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Status: pending|in-progress|completed"},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "Priority: low|medium|high|urgent"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category id"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
			&cli.StringFlag{Name: "due", Usage: "Due date (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "sku", Usage: "Stock keeping unit (unique)"},
			&cli.Float64Flag{Name: "qty", Usage: "Quantity on hand"},
		},
		Action: func(c *cli.Context) error {
			input := ops.CreateInput{
				Title:       c.Args().First(),
				Description: c.String("desc"),
				Status:      record.Status(c.String("status")),
				Priority:    record.Priority(c.String("priority")),
				Category:    c.String("category"),
				Tags:        c.String("tags"),
			}

			if due := c.String("due"); due != "" {
				millis, err := parseDate(due)
				if err != nil {
					return outputError(errors.NewValidation(err.Error()))
				}
				input.DueDate = &millis
			}
			if sku := c.String("sku"); sku != "" {
				input.SKU = &sku
			}
			if c.IsSet("qty") {
				qty := c.Float64("qty")
				input.Quantity = &qty
			}

			output, err := ops.Create(e.st, e.cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// getCmd creates the get command.
func getCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Show a record by id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			r, ok := e.st.Get(id)
			if !ok {
				return outputError(errors.NewNotFound(id))
			}
			return outputJSON(r)
		},
	}
}

// updateCmd creates the update command.
func updateCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update fields of an existing record (flags precede the id)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "desc", Aliases: []string{"d"}, Usage: "New description"},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "New priority"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "New category id (empty string clears)"},
			&cli.StringFlag{Name: "tags", Usage: "New comma-separated tags (replaces the list)"},
			&cli.StringFlag{Name: "due", Usage: "New due date (YYYY-MM-DD)"},
			&cli.BoolFlag{Name: "clear-due", Usage: "Remove the due date"},
			&cli.StringFlag{Name: "sku", Usage: "New SKU (empty string clears it)"},
			&cli.Float64Flag{Name: "qty", Usage: "New quantity"},
		},
		Action: func(c *cli.Context) error {
			input := ops.UpdateInput{ID: c.Args().First()}

			if c.IsSet("title") {
				title := c.String("title")
				input.Title = &title
			}
			if c.IsSet("desc") {
				desc := c.String("desc")
				input.Description = &desc
			}
			if c.IsSet("priority") {
				priority := record.Priority(c.String("priority"))
				input.Priority = &priority
			}
			if c.IsSet("category") {
				category := c.String("category")
				input.Category = &category
			}
			if c.IsSet("tags") {
				tags := c.String("tags")
				input.Tags = &tags
			}
			if c.Bool("clear-due") {
				var cleared *int64
				input.DueDate = &cleared
			} else if c.IsSet("due") {
				millis, err := parseDate(c.String("due"))
				if err != nil {
					return outputError(errors.NewValidation(err.Error()))
				}
				due := &millis
				input.DueDate = &due
			}
			if c.IsSet("sku") {
				sku := c.String("sku")
				input.SKU = &sku
			}
			if c.IsSet("qty") {
				qty := c.Float64("qty")
				input.Quantity = &qty
			}

			output, err := ops.Update(e.st, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command. Multiple ids go through the bulk path.
func deleteCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete one or more records",
		ArgsUsage: "<id> [id...]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				output, err := ops.BulkDelete(e.st, ops.BulkInput{IDs: c.Args().Slice()})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			output, err := ops.Delete(e.st, ops.DeleteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// doneCmd creates the done command. Multiple ids go through the bulk path.
func doneCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "done",
		Usage:     "Mark one or more records completed",
		ArgsUsage: "<id> [id...]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 1 {
				output, err := ops.BulkComplete(e.st, e.cfg, ops.BulkInput{IDs: c.Args().Slice()})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			output, err := ops.SetStatus(e.st, e.cfg, ops.StatusInput{
				ID:     c.Args().First(),
				Status: record.StatusCompleted,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// statusCmd creates the status command.
func statusCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "Set a record's status",
		ArgsUsage: "<id> <pending|in-progress|completed>",
		Action: func(c *cli.Context) error {
			output, err := ops.SetStatus(e.st, e.cfg, ops.StatusInput{
				ID:     c.Args().First(),
				Status: record.Status(c.Args().Get(1)),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List records with search, filters, sort and pagination",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Substring match on title, description and tags"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Filter by status (all|active|pending|in-progress|completed)"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Filter by category id"},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "Filter by priority"},
			&cli.StringFlag{Name: "tag", Usage: "Filter by tag"},
			&cli.StringFlag{Name: "sort", Value: "created_at", Usage: "Sort field: title|created_at|updated_at|due_date|priority|status"},
			&cli.BoolFlag{Name: "desc", Usage: "Sort descending"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(e.st, ops.ListInput{
				Search:   c.String("search"),
				Status:   c.String("status"),
				Category: c.String("category"),
				Priority: c.String("priority"),
				Tag:      c.String("tag"),
				Sort:     c.String("sort"),
				Desc:     c.Bool("desc"),
				Limit:    c.Int("limit"),
				Offset:   c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show derived statistics for the collection",
		Action: func(_ *cli.Context) error {
			return outputJSON(ops.Stats(e.st))
		},
	}
}

// adjustCmd creates the adjust command.
func adjustCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "adjust",
		Usage:     "Apply a signed stock movement to a record's quantity",
		ArgsUsage: "<id> <delta>",
		Action: func(c *cli.Context) error {
			delta, err := strconv.ParseFloat(c.Args().Get(1), 64)
			if err != nil {
				return outputError(errors.NewValidation(fmt.Sprintf("invalid delta %q", c.Args().Get(1))))
			}

			output, err := ops.AdjustQuantity(e.st, ops.AdjustInput{
				ID:    c.Args().First(),
				Delta: delta,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// categoryCmd creates the category command group.
func categoryCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "category",
		Usage: "Manage categories",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Create a category (flags precede the name)",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "color", Usage: "Display color (#rrggbb)"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.CategoryCreate(e.cats, ops.CategoryCreateInput{
						Name:  c.Args().First(),
						Color: c.String("color"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "list",
				Usage: "List categories",
				Action: func(_ *cli.Context) error {
					output, err := ops.CategoryList(e.cats)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "rm",
				Usage:     "Delete a category (cascade policy applies to its records)",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					output, err := ops.CategoryDelete(e.st, e.cats, e.cfg, ops.CategoryDeleteInput{
						ID: c.Args().First(),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// exportCmd creates the export command.
func exportCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the collection to a CSV or JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Export file path (.csv or .json)"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Format: csv|json (default: inferred from extension)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(e.st, e.cats, ops.ExportInput{
				Path:   c.String("path"),
				Format: ops.ExportFormat(c.String("format")),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import records from a CSV or JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Format: csv|json (default: inferred from extension)"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "merge", Usage: "Mode: merge|replace"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Import(e.st, e.cats, e.cfg, ops.ImportInput{
				Path:   c.String("path"),
				Format: ops.ExportFormat(c.String("format")),
				Mode:   ops.ImportMode(c.String("mode")),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// reportCmd creates the report command.
func reportCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Write an HTML report of the current view",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Report file path (.html)"},
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Substring match on title, description and tags"},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Filter by status"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Filter by category id"},
			&cli.StringFlag{Name: "priority", Usage: "Filter by priority"},
			&cli.StringFlag{Name: "tag", Usage: "Filter by tag"},
			&cli.StringFlag{Name: "sort", Value: "created_at", Usage: "Sort field"},
			&cli.BoolFlag{Name: "desc", Usage: "Sort descending"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Report(e.st, e.cats, ops.ReportInput{
				Path: c.String("path"),
				ListInput: ops.ListInput{
					Search:   c.String("search"),
					Status:   c.String("status"),
					Category: c.String("category"),
					Priority: c.String("priority"),
					Tag:      c.String("tag"),
					Sort:     c.String("sort"),
					Desc:     c.Bool("desc"),
				},
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Delete all records (the seed set returns on the next run)",
		Action: func(_ *cli.Context) error {
			output, err := ops.Purge(e.st)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// darkModeCmd creates the dark-mode command.
func darkModeCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "dark-mode",
		Usage:     "Show or set the dark-mode preference",
		ArgsUsage: "[on|off]",
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				switch c.Args().First() {
				case "on":
					if err := slot.SetDarkMode(e.slots, e.cfg.DarkModeKey, true); err != nil {
						return outputError(err)
					}
				case "off":
					if err := slot.SetDarkMode(e.slots, e.cfg.DarkModeKey, false); err != nil {
						return outputError(err)
					}
				default:
					return outputError(errors.NewValidation("argument must be on or off"))
				}
			}

			enabled, err := slot.DarkMode(e.slots, e.cfg.DarkModeKey)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]bool{"dark_mode": enabled})
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if tErr, ok := err.(*errors.TroveError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", tErr.Code, tErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// parseDate parses a YYYY-MM-DD date to epoch milliseconds (midnight UTC).
func parseDate(s string) (int64, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t.UnixMilli(), nil
}
