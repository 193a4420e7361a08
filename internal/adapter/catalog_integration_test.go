//go:build integration

package adapter

import (
	"context"
	"product-browser/pkg/http_client"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCatalog_Live(t *testing.T) {
	c := NewCatalogClient("https://fakestoreapi.com", http_client.CreateHTTPClient(10*time.Second))
	ps, err := c.FetchProducts(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, ps)
	require.NotEmpty(t, ps[0].Category)
}
