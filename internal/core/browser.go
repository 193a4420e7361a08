package core

import (
	"product-browser/internal/core/model"
)

// Browser owns one view state over a catalog. It is not safe for concurrent
// use; callers serialise access the way an event loop does.
type Browser struct {
	catalog *Catalog
	state   model.ViewState
}

// NewBrowser starts a browser at the default view state.
func NewBrowser(c *Catalog) *Browser {
	return ResumeBrowser(c, model.DefaultViewState())
}

// ResumeBrowser wraps an existing view state, e.g. one held by a session.
func ResumeBrowser(c *Catalog, st model.ViewState) *Browser {
	if c == nil {
		c = NewCatalog()
	}
	return &Browser{catalog: c, state: st}
}

func (b *Browser) State() model.ViewState { return b.state }

// View recomputes the visible page from scratch.
func (b *Browser) View() model.Page[model.Product] {
	return DeriveView(b.catalog.Products(), b.state)
}

// TotalPages is the page count under the current filter.
func (b *Browser) TotalPages() int {
	return PageCount(FilteredCount(b.catalog.Products(), b.state.Category))
}

// Next advances one page unless already on the last page of the filtered set.
// It reports whether the page changed.
func (b *Browser) Next() bool {
	if b.state.Page >= b.TotalPages() {
		return false
	}
	b.state.Page++
	return true
}

// Prev goes back one page unless already on page 1.
func (b *Browser) Prev() bool {
	if b.state.Page <= 1 {
		return false
	}
	b.state.Page--
	return true
}

// SetCategory changes the filter and always returns to page 1. The value is
// matched exactly, so it should come from CategoryOptions.
func (b *Browser) SetCategory(category string) {
	b.state.Category = category
	b.state.Page = 1
}

// SetSort changes the sort mode and always returns to page 1.
func (b *Browser) SetSort(mode model.SortMode) {
	b.state.Sort = mode
	b.state.Page = 1
}

// CategoryOptions is "all" followed by every category in first-seen order.
func (b *Browser) CategoryOptions() []string {
	return append([]string{model.CategoryAll}, Categories(b.catalog.Products())...)
}
