package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strrl/unsplash-gallery/internal/db"
	"github.com/strrl/unsplash-gallery/internal/inspect"
)

// NewDebugCommand creates the debug-response command
func NewDebugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "debug-response <file.json>",
		Short: "Inspect a saved search response to see raw data",
		Long: `Load a saved search page (for example the output of "search --json")
through an in-memory DuckDB database and print its totals and rows.`,
		Args: cobra.ExactArgs(1),
		RunE: runDebugResponse,
	}
}

func runDebugResponse(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	database, err := db.GetDB()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	summary, err := inspect.ResponseFile(cmd.Context(), database, path)
	if err != nil {
		return fmt.Errorf("failed to inspect response: %w", err)
	}

	fmt.Fprintf(out, "Inspecting response: %s\n", path)
	fmt.Fprintln(out, "==========================================")
	fmt.Fprintf(out, "Total: %d\nTotal pages: %d\n", summary.Total, summary.TotalPages)

	if len(summary.Rows) == 0 {
		fmt.Fprintln(out, "No results in this response")
		return nil
	}

	fmt.Fprintf(out, "Found %d results:\n", len(summary.Rows))
	for i, row := range summary.Rows {
		fmt.Fprintf(out, "\n--- Result %d ---\n", i+1)
		fmt.Fprintf(out, "ID: %s\n", row.ID)
		fmt.Fprintf(out, "Description: %s\n", row.Description)
		fmt.Fprintf(out, "Author: %s\n", row.Author)
		fmt.Fprintf(out, "Size: %dx%d\n", row.Width, row.Height)
		fmt.Fprintf(out, "URL: %s\n", row.URL)
	}
	return nil
}
