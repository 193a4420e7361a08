package main

import (
	"fmt"
	"io"
	"product-browser/internal/core/model"
	"product-browser/internal/tui"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	listCategory string
	listSort     string
	listPage     int
)

// listCmd prints one derived page without entering the interactive view.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of the catalog",
	Long: `Loads the catalog, applies the category filter and sort, and prints the
requested page. A failed load prints an empty table; details go to the log.

Example:
  browser list --category electronics --sort price_desc --page 2`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", model.CategoryAll, `category filter ("all" for every product)`)
	listCmd.Flags().StringVar(&listSort, "sort", string(model.SortNone), "none, price_asc, price_desc, rating_asc or rating_desc")
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number, starting at 1")
}

func runList(cmd *cobra.Command, _ []string) error {
	mode, err := model.ParseSortMode(listSort)
	if err != nil {
		return err
	}
	st := model.ViewState{Page: listPage, Category: listCategory, Sort: mode}
	if err := st.Validate(); err != nil {
		return err
	}

	svc, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	// a failed load is logged by the service and renders as an empty page
	_ = svc.Load(cmd.Context())

	page, err := svc.Query(cmd.Context(), st)
	if err != nil {
		return err
	}
	renderPage(cmd.OutOrStdout(), st, page)
	return nil
}

func renderPage(w io.Writer, st model.ViewState, page model.Page[model.Product]) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tui.Border)).
		Headers("Image", "Title", "Price", "Rating")
	for _, p := range page.Data {
		t.Row(p.Image, p.Title, tui.FormatPrice(p.Price), tui.FormatRating(p.Rating))
	}

	fmt.Fprintf(w, "Category: %s    Sort by: %s\n", st.Category, st.Sort.Label())
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "page %d of %d (%d products)\n", st.Page, page.TotalPages, page.Total)
}
