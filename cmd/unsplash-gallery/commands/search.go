package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/strrl/unsplash-gallery/internal/gallery"
	"github.com/strrl/unsplash-gallery/pkg/models"
)

// NewSearchCommand creates the search command
func NewSearchCommand(flags *globalFlags) *cobra.Command {
	var (
		pages    int
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search photos without the TUI",
		Long: `Search Unsplash and print the results in a non-interactive format.
--pages loads additional pages the same way the gallery's "load more" does.
--json prints the combined results as a search page, suitable for debug-response.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pages < 1 {
				return fmt.Errorf("--pages must be at least 1, got %d", pages)
			}

			a, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer func() { _ = a.close() }()

			ctrl := gallery.NewController(a.client, a.log)
			return runSearch(cmd, ctrl, strings.Join(args, " "), pages, jsonMode)
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "Number of pages to load")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "Print results as JSON")

	return cmd
}

func runSearch(cmd *cobra.Command, ctrl *gallery.Controller, query string, pages int, jsonMode bool) error {
	ctx := cmd.Context()
	view := ctrl.StartSearch(ctx, query)
	for i := 1; i < pages && view.CanLoadMore; i++ {
		view, _ = ctrl.LoadMore(ctx)
		if view.ErrorMessage != "" {
			break
		}
	}

	// a failed load-more keeps the pages already fetched
	failed := view.ErrorMessage == gallery.MsgFetchFailed
	if failed && len(view.Items) == 0 {
		return errors.New(view.ErrorMessage)
	}

	out := cmd.OutOrStdout()
	if jsonMode {
		session := ctrl.Session()
		page := models.SearchPage{
			TotalPages: session.TotalPages,
			Results:    session.Items,
		}
		if page.Results == nil {
			page.Results = []models.Photo{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(page); err != nil {
			return err
		}
		if failed {
			return errors.New(view.ErrorMessage)
		}
		return nil
	}

	if failed {
		view.CanLoadMore = false
		printPhotos(out, view)
		return errors.New(view.ErrorMessage)
	}

	if view.ErrorMessage != "" {
		fmt.Fprintln(out, view.ErrorMessage)
		return nil
	}

	printPhotos(out, view)
	return nil
}

func printPhotos(out io.Writer, view gallery.View) {
	fmt.Fprintf(out, "Results for %q:\n", view.Query)
	fmt.Fprintln(out, strings.Repeat("=", len(view.Query)+15))
	for i, p := range view.Items {
		fmt.Fprintf(out, "%d. %s\n", i+1, p.Title())
		author := p.User.Name
		if p.User.Username != "" {
			author = strings.TrimSpace(author + " @" + p.User.Username)
		}
		if author != "" {
			fmt.Fprintf(out, "   By: %s\n", author)
		}
		if p.Width > 0 && p.Height > 0 {
			fmt.Fprintf(out, "   Size: %dx%d\n", p.Width, p.Height)
		}
		if u := p.FullURL(); u != "" {
			fmt.Fprintf(out, "   Image: %s\n", u)
		}
		if p.Links.HTML != "" {
			fmt.Fprintf(out, "   Page: %s\n", p.Links.HTML)
		}
		fmt.Fprintln(out)
	}
	if view.CanLoadMore {
		fmt.Fprintln(out, "More results available; use --pages to load them.")
	}
}
