//go:build unit

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"product-browser/api"
	"product-browser/internal/core"
	"product-browser/internal/core/model"
	"product-browser/internal/metrics"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	products []model.Product
	err      error
}

func (l stubLoader) FetchProducts(_ context.Context) ([]model.Product, error) {
	return l.products, l.err
}

func seedProducts() []model.Product {
	mk := func(id int, cat string, price, rate float64) model.Product {
		return model.Product{ID: id, Category: cat, Title: "T", Price: price, Rating: model.Rating{Rate: rate, Count: 1}, Image: "img"}
	}
	return []model.Product{
		mk(1, "a", 10, 4.5),
		mk(2, "b", 5, 3.0),
		mk(3, "c", 7.5, 4.0),
		mk(4, "b", 5, 2.0),
		mk(5, "c", 20, 4.0),
		mk(6, "a", 1, 5.0),
	}
}

// test wiring: router + real in-memory service (no network)
func newServer(t *testing.T, loader core.CatalogLoader) (http.Handler, *core.Service, *metrics.Registry) {
	t.Helper()
	repo := NewSessionRepo()
	reg := metrics.NewRegistry(repo.Count)
	svc := core.NewService(loader, repo, nil)
	_ = svc.Load(context.Background())
	h := NewHTTPHandler(svc, nil)
	return NewRouter(h, reg), svc, reg
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func productIDs(ps []api.Product) []int {
	out := make([]int, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Id)
	}
	return out
}

func TestListProducts_DefaultsAndPaging(t *testing.T) {
	h, _, _ := newServer(t, stubLoader{products: seedProducts()})

	w := do(t, h, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out api.ProductPage
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, productIDs(out.Data))
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 5, out.PageSize)
	assert.Equal(t, 6, out.Total)
	assert.Equal(t, 2, out.TotalPages)
	assert.Equal(t, "all", out.Category)
	assert.Equal(t, api.None, out.Sort)

	w = do(t, h, http.MethodGet, "/api/v1/products?page=2&sort=price_desc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out = api.ProductPage{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Equal(t, []int{6}, productIDs(out.Data))
}

func TestListProducts_FilterAndOutOfRangePage(t *testing.T) {
	h, _, _ := newServer(t, stubLoader{products: seedProducts()})

	w := do(t, h, http.MethodGet, "/api/v1/products?category=b&sort=rating_desc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out api.ProductPage
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Equal(t, []int{2, 4}, productIDs(out.Data))

	w = do(t, h, http.MethodGet, "/api/v1/products?page=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out = api.ProductPage{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Empty(t, out.Data)
	assert.Equal(t, 7, out.Page)

	w = do(t, h, http.MethodGet, "/api/v1/products?page=1844674407370955163", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out = api.ProductPage{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Empty(t, out.Data)
	assert.Equal(t, 2, out.TotalPages)
}

func TestListProducts_BadParams400(t *testing.T) {
	h, _, _ := newServer(t, stubLoader{products: seedProducts()})

	for _, path := range []string{
		"/api/v1/products?sort=cheapest",
		"/api/v1/products?page=0",
		"/api/v1/products?page=abc",
	} {
		w := do(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		var e api.Error
		require.NoError(t, json.NewDecoder(w.Body).Decode(&e))
		assert.NotEmpty(t, e.Error.Code)
	}
}

func TestCategoriesAndCatalogStatus(t *testing.T) {
	h, _, _ := newServer(t, stubLoader{products: seedProducts()})

	w := do(t, h, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cats []string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&cats))
	assert.Equal(t, []string{"all", "a", "b", "c"}, cats)

	w = do(t, h, http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var st api.CatalogStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&st))
	assert.True(t, st.Loaded)
	assert.Equal(t, 6, st.ProductCount)
	assert.Nil(t, st.Error)
}

func TestLoadFailure_DegradesToEmpty(t *testing.T) {
	h, _, _ := newServer(t, stubLoader{err: errors.New("dial tcp: refused")})

	w := do(t, h, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out api.ProductPage
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Empty(t, out.Data)
	assert.Equal(t, 0, out.TotalPages)

	w = do(t, h, http.MethodGet, "/api/v1/catalog", nil)
	var st api.CatalogStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&st))
	assert.False(t, st.Loaded)
	require.NotNil(t, st.Error)
	assert.Contains(t, *st.Error, "refused")
}

func TestSession_201_Navigate_Reset(t *testing.T) {
	h, _, _ := newServer(t, stubLoader{products: seedProducts()})

	w := do(t, h, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	loc := w.Header().Get("Location")
	require.NotEmpty(t, loc)
	var sv api.SessionView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sv))
	assert.Equal(t, "/api/v1/sessions/"+sv.Id, loc)
	assert.Equal(t, api.ViewState{Page: 1, Category: "all", Sort: api.None}, sv.State)
	assert.Equal(t, []string{"all", "a", "b", "c"}, sv.Categories)

	w = do(t, h, http.MethodPost, loc+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sv = api.SessionView{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sv))
	assert.Equal(t, 2, sv.State.Page)
	assert.Equal(t, []int{6}, productIDs(sv.Data))

	// last page: next is a no-op
	w = do(t, h, http.MethodPost, loc+"/next", nil)
	sv = api.SessionView{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sv))
	assert.Equal(t, 2, sv.State.Page)

	w = do(t, h, http.MethodPut, loc+"/sort", api.SetSortRequest{Sort: api.PriceAsc})
	require.Equal(t, http.StatusOK, w.Code)
	sv = api.SessionView{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sv))
	assert.Equal(t, 1, sv.State.Page)
	assert.Equal(t, []int{6, 2, 4, 3, 1}, productIDs(sv.Data))

	w = do(t, h, http.MethodPut, loc+"/category", api.SetCategoryRequest{Category: "a"})
	require.Equal(t, http.StatusOK, w.Code)
	sv = api.SessionView{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sv))
	assert.Equal(t, 1, sv.State.Page)
	assert.Equal(t, []int{6, 1}, productIDs(sv.Data))

	w = do(t, h, http.MethodPost, loc+"/prev", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodGet, loc, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSession_Errors(t *testing.T) {
	h, _, _ := newServer(t, stubLoader{products: seedProducts()})

	w := do(t, h, http.MethodGet, "/api/v1/sessions/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, h, http.MethodPost, "/api/v1/sessions/does-not-exist/next", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodPost, "/api/v1/sessions", nil)
	loc := w.Header().Get("Location")

	w = do(t, h, http.MethodPut, loc+"/sort", map[string]string{"sort": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	r := httptest.NewRequest(http.MethodPut, loc+"/category", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteSession_204_then_404(t *testing.T) {
	h, _, _ := newServer(t, stubLoader{products: seedProducts()})
	w := do(t, h, http.MethodPost, "/api/v1/sessions", nil)
	loc := w.Header().Get("Location")

	w = do(t, h, http.MethodDelete, loc, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, loc, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	h, _, reg := newServer(t, stubLoader{products: seedProducts()})

	w := do(t, h, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	_ = do(t, h, http.MethodPost, "/api/v1/sessions", nil)
	_ = do(t, h, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.HTTPRequests.WithLabelValues("/api/v1/products", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.HTTPRequests.WithLabelValues("/api/v1/sessions", "201")))

	w = do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "browse_sessions 1")
}

type panickingService struct {
	BrowseService
}

func (panickingService) Query(context.Context, model.ViewState) (model.Page[model.Product], error) {
	panic("query blew up")
}

func TestRouter_CountsRecoveredPanics(t *testing.T) {
	reg := metrics.NewRegistry(nil)
	h := NewRouter(NewHTTPHandler(panickingService{}, nil), reg)

	w := do(t, h, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.HTTPRequests.WithLabelValues("/api/v1/products", "500")))
}
