//go:build unit

package metrics

import (
	"context"
	"errors"
	"product-browser/internal/core/model"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	products []model.Product
	err      error
}

func (f fakeLoader) FetchProducts(_ context.Context) ([]model.Product, error) {
	return f.products, f.err
}

func TestInstrumentLoader_Success(t *testing.T) {
	reg := NewRegistry(nil)
	l := InstrumentLoader(reg, fakeLoader{products: make([]model.Product, 3)})

	ps, err := l.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, ps, 3)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.CatalogLoads.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(reg.CatalogLoads.WithLabelValues("failure")))
	assert.Equal(t, 3.0, testutil.ToFloat64(reg.CatalogProducts))
}

func TestInstrumentLoader_Failure(t *testing.T) {
	reg := NewRegistry(nil)
	l := InstrumentLoader(reg, fakeLoader{err: errors.New("down")})

	_, err := l.FetchProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.CatalogLoads.WithLabelValues("failure")))
	assert.Equal(t, 0.0, testutil.ToFloat64(reg.CatalogProducts))
}

func TestSessionsGauge(t *testing.T) {
	n := 0
	reg := NewRegistry(func() int { return n })
	n = 4
	assert.Equal(t, 4.0, testutil.ToFloat64(reg.Sessions))
}
