package model

import (
	"errors"
	"fmt"
	"time"
)

// All core models live here together for simplicity.

// PageSize is the number of products shown per page for the lifetime of a session.
const PageSize = 5

// CategoryAll is the filter sentinel that keeps every product.
const CategoryAll = "all"

var (
	ErrValidation  = errors.New("validation")
	ErrNotFound    = errors.New("not_found")
	ErrLoadFailure = errors.New("load_failure")
)

type Rating struct {
	Rate  float64
	Count int
}

type Product struct {
	ID          int
	Category    string
	Title       string
	Description string
	Price       float64
	Rating      Rating
	Image       string
}

type SortMode string

const (
	SortNone       SortMode = "none"
	SortPriceAsc   SortMode = "price_asc"
	SortPriceDesc  SortMode = "price_desc"
	SortRatingAsc  SortMode = "rating_asc"
	SortRatingDesc SortMode = "rating_desc"
)

// SortModes lists every sort mode in selector order.
var SortModes = []SortMode{SortNone, SortPriceAsc, SortPriceDesc, SortRatingAsc, SortRatingDesc}

var sortLabels = map[SortMode]string{
	SortNone:       "None",
	SortPriceAsc:   "Price: Low to High",
	SortPriceDesc:  "Price: High to Low",
	SortRatingAsc:  "Rating: Low to High",
	SortRatingDesc: "Rating: High to Low",
}

// ParseSortMode maps a wire value onto the closed set of sort modes.
func ParseSortMode(s string) (SortMode, error) {
	m := SortMode(s)
	if _, ok := sortLabels[m]; !ok {
		return "", fmt.Errorf("%w: unknown sort mode %q", ErrValidation, s)
	}
	return m, nil
}

func (m SortMode) Valid() bool {
	_, ok := sortLabels[m]
	return ok
}

func (m SortMode) Label() string {
	if l, ok := sortLabels[m]; ok {
		return l
	}
	return string(m)
}

// ViewState is the user-controlled part of a browse session.
type ViewState struct {
	Page     int
	Category string
	Sort     SortMode
}

func DefaultViewState() ViewState {
	return ViewState{Page: 1, Category: CategoryAll, Sort: SortNone}
}

// Validate checks the invariants a caller-supplied state must hold.
func (s ViewState) Validate() error {
	if s.Page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", ErrValidation, s.Page)
	}
	if s.Category == "" {
		return fmt.Errorf("%w: category must not be empty", ErrValidation)
	}
	if !s.Sort.Valid() {
		return fmt.Errorf("%w: unknown sort mode %q", ErrValidation, s.Sort)
	}
	return nil
}

type Page[T any] struct {
	Data       []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

type Session struct {
	ID        string
	State     ViewState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CatalogStatus describes the outcome of the one-shot catalog load.
type CatalogStatus struct {
	Loaded       bool
	ProductCount int
	Err          error
}
