package core

import (
	"product-browser/internal/core/model"
	"sort"
)

// DeriveView produces the page of products visible for the given state.
// The flow is:
//
//  1. Filter by category ("all" keeps everything, otherwise exact match).
//  2. Stable sort by the selected mode; ties keep filtered order.
//  3. Slice out the requested page, clamped to what is available.
//
// The input slice is never modified and nothing is cached between calls.
func DeriveView(products []model.Product, st model.ViewState) model.Page[model.Product] {
	filtered := FilterByCategory(products, st.Category)
	SortProducts(filtered, st.Sort)
	return Paginate(filtered, st.Page)
}

// FilterByCategory returns a fresh slice holding the products in category.
func FilterByCategory(products []model.Product, category string) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if category != model.CategoryAll && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProducts sorts ps in place. SortNone and unknown modes leave the order untouched.
func SortProducts(ps []model.Product, mode model.SortMode) {
	var less func(a, b model.Product) bool
	switch mode {
	case model.SortPriceAsc:
		less = func(a, b model.Product) bool { return a.Price < b.Price }
	case model.SortPriceDesc:
		less = func(a, b model.Product) bool { return a.Price > b.Price }
	case model.SortRatingAsc:
		less = func(a, b model.Product) bool { return a.Rating.Rate < b.Rating.Rate }
	case model.SortRatingDesc:
		less = func(a, b model.Product) bool { return a.Rating.Rate > b.Rating.Rate }
	default:
		return
	}
	sort.SliceStable(ps, func(i, j int) bool { return less(ps[i], ps[j]) })
}

// Paginate returns page (1-based) of ps. Pages past the end come back empty.
func Paginate(ps []model.Product, page int) model.Page[model.Product] {
	if page < 1 {
		page = 1
	}
	total := len(ps)
	// compare in pages first so a huge page number cannot overflow the offset
	start := total
	if page-1 < PageCount(total) {
		start = (page - 1) * model.PageSize
	}
	end := start + model.PageSize
	if end > total {
		end = total
	}
	paged := make([]model.Product, end-start)
	copy(paged, ps[start:end])

	return model.Page[model.Product]{
		Data:       paged,
		Page:       page,
		PageSize:   model.PageSize,
		Total:      total,
		TotalPages: PageCount(total),
	}
}

// PageCount is ceil(n / PageSize); zero products means zero pages.
func PageCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + model.PageSize - 1) / model.PageSize
}

// FilteredCount counts the products a category filter keeps. Sorting never changes it.
func FilteredCount(products []model.Product, category string) int {
	if category == model.CategoryAll {
		return len(products)
	}
	n := 0
	for _, p := range products {
		if p.Category == category {
			n++
		}
	}
	return n
}

// Categories returns the distinct categories in first-seen order.
func Categories(products []model.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0)
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
