package core

import (
	"product-browser/internal/core/model"
	"sync"
)

// Catalog holds the product collection. It is written once by the loader and
// read-only afterwards; Products hands out the shared slice, which callers
// must not modify.
type Catalog struct {
	mu       sync.RWMutex
	products []model.Product
	loaded   bool
	err      error
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

// NewLoadedCatalog returns a catalog that is already populated.
func NewLoadedCatalog(products []model.Product) *Catalog {
	c := &Catalog{}
	c.set(products)
	return c
}

func (c *Catalog) Products() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.products
}

func (c *Catalog) Status() model.CatalogStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.CatalogStatus{Loaded: c.loaded, ProductCount: len(c.products), Err: c.err}
}

// set stores the collection; only the first outcome (success or failure) sticks.
func (c *Catalog) set(products []model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded || c.err != nil {
		return
	}
	c.products = append([]model.Product(nil), products...)
	c.loaded = true
}

func (c *Catalog) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded || c.err != nil {
		return
	}
	c.err = err
}
