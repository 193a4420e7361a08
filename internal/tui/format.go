package tui

import (
	"product-browser/internal/core/model"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
)

// FormatPrice renders a price as "$" plus its shortest decimal form, e.g. $22.3.
func FormatPrice(p float64) string {
	return "$" + strconv.FormatFloat(p, 'f', -1, 64)
}

// FormatRating renders the raw rating score.
func FormatRating(r model.Rating) string {
	return strconv.FormatFloat(r.Rate, 'f', -1, 64)
}

// Columns are the product table columns: image, title, price, rating.
func Columns() []table.Column {
	return []table.Column{
		{Title: "Image", Width: 36},
		{Title: "Title", Width: 44},
		{Title: "Price", Width: 10},
		{Title: "Rating", Width: 6},
	}
}

func Rows(ps []model.Product) []table.Row {
	rows := make([]table.Row, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, table.Row{p.Image, p.Title, FormatPrice(p.Price), FormatRating(p.Rating)})
	}
	return rows
}
