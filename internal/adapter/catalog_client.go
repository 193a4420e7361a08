package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"product-browser/internal/core/model"
	"strings"
)

const defaultCatalogURL = "https://fakestoreapi.com"

// CatalogClient retrieves the full product list in one GET. It never retries.
type CatalogClient struct {
	BaseURL string
	Client  *http.Client
}

func NewCatalogClient(baseURL string, httpClient *http.Client) *CatalogClient {
	if baseURL == "" {
		baseURL = defaultCatalogURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &CatalogClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  httpClient,
	}
}

// FetchProducts returns the decoded catalog. Every failure wraps model.ErrLoadFailure.
func (c *CatalogClient) FetchProducts(ctx context.Context) ([]model.Product, error) {
	url := c.BaseURL + "/products"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", model.ErrLoadFailure, err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrLoadFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: catalog: status %d: %s", model.ErrLoadFailure, resp.StatusCode, string(b))
	}

	var raw []catalogProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode catalog: %w", model.ErrLoadFailure, err)
	}
	// a literal null decodes into a nil slice without error
	if raw == nil {
		return nil, fmt.Errorf("%w: decode catalog: expected array, got null", model.ErrLoadFailure)
	}

	out := make([]model.Product, 0, len(raw))
	for i, cp := range raw {
		p, err := mapToProduct(cp)
		if err != nil {
			return nil, fmt.Errorf("%w: product %d: %w", model.ErrLoadFailure, i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

type catalogProduct struct {
	ID          *int           `json:"id"`
	Title       *string        `json:"title"`
	Price       *float64       `json:"price"`
	Description string         `json:"description"`
	Category    *string        `json:"category"`
	Image       string         `json:"image"`
	Rating      *catalogRating `json:"rating"`
}

type catalogRating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

func mapToProduct(cp catalogProduct) (model.Product, error) {
	switch {
	case cp.ID == nil:
		return model.Product{}, fmt.Errorf("missing id")
	case cp.Title == nil:
		return model.Product{}, fmt.Errorf("missing title")
	case cp.Category == nil || *cp.Category == "":
		return model.Product{}, fmt.Errorf("missing category")
	case cp.Price == nil:
		return model.Product{}, fmt.Errorf("missing price")
	case cp.Rating == nil:
		return model.Product{}, fmt.Errorf("missing rating")
	}
	if *cp.Price < 0 {
		return model.Product{}, fmt.Errorf("negative price %v", *cp.Price)
	}
	if cp.Rating.Count < 0 {
		return model.Product{}, fmt.Errorf("negative rating count %d", cp.Rating.Count)
	}

	return model.Product{
		ID:          *cp.ID,
		Category:    *cp.Category,
		Title:       *cp.Title,
		Description: cp.Description,
		Price:       *cp.Price,
		Rating:      model.Rating{Rate: cp.Rating.Rate, Count: cp.Rating.Count},
		Image:       cp.Image,
	}, nil
}
