package shopify_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-snapshot/internal/domain"
	"github.com/jhoicas/Inventario-snapshot/internal/infrastructure/shopify"
	"github.com/jhoicas/Inventario-snapshot/pkg/config"
)

const (
	testToken   = "shpat_test_token"
	testVersion = "2024-07"
)

func newClient(srv *httptest.Server) *shopify.Client {
	return newClientWithLog(srv, zerolog.Nop())
}

func newClientWithLog(srv *httptest.Server, log zerolog.Logger) *shopify.Client {
	return shopify.NewClient(config.ShopifyConfig{
		ShopURL:        srv.URL,
		AccessToken:    testToken,
		APIVersion:     testVersion,
		TimeoutSeconds: 5,
	}, log)
}

func TestProductsPage_SigueCabeceraLink(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testToken, r.Header.Get("X-Shopify-Access-Token"))
		assert.Equal(t, "/admin/api/"+testVersion+"/products.json", r.URL.Path)
		assert.Equal(t, "250", r.URL.Query().Get("limit"))

		if r.URL.Query().Get("page_info") == "" {
			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/%s/products.json?limit=250&page_info=p2>; rel="next"`, srv.URL, testVersion))
			fmt.Fprint(w, `{"products":[{"id":1,"title":"Widget","variants":[
				{"id":11,"title":"Red","sku":"W-R","inventory_item_id":101},
				{"id":12,"title":null,"sku":null,"inventory_item_id":102}]}]}`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/%s/products.json?page_info=p1>; rel="previous"`, srv.URL, testVersion))
		fmt.Fprint(w, `{"products":[{"id":2,"title":"Gadget","variants":[]}]}`)
	}))
	defer srv.Close()

	c := newClient(srv)

	page, err := c.ProductsPage(context.Background(), "", 250)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Widget", page.Products[0].Title)
	require.Len(t, page.Products[0].Variants, 2)
	assert.Equal(t, int64(101), page.Products[0].Variants[0].InventoryItemID)
	assert.Equal(t, "", page.Products[0].Variants[1].SKU, "sku null se decodifica como vacío")
	require.NotEmpty(t, page.NextPageURL)
	assert.Contains(t, page.NextPageURL, "page_info=p2")

	page, err = c.ProductsPage(context.Background(), page.NextPageURL, 250)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Gadget", page.Products[0].Title)
	assert.Empty(t, page.NextPageURL, "rel=previous no es página siguiente")
}

func TestProductsPage_ErrorHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":"[API] Invalid API key or access token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newClient(srv).ProductsPage(context.Background(), "", 250)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamStatus))

	var statusErr *shopify.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "Invalid API key")
}

func TestInventoryLevels_LoteYValoresNulos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/api/"+testVersion+"/inventory_levels.json", r.URL.Path)
		assert.Equal(t, "101,102,103", r.URL.Query().Get("inventory_item_ids"))
		fmt.Fprint(w, `{"inventory_levels":[
			{"inventory_item_id":101,"location_id":9001,"available":7,"updated_at":"2025-08-29T10:00:00-05:00"},
			{"inventory_item_id":102,"location_id":9001,"available":null}]}`)
	}))
	defer srv.Close()

	levels, err := newClient(srv).InventoryLevels(context.Background(), []int64{101, 102, 103})
	require.NoError(t, err)
	require.Len(t, levels, 2)

	assert.Equal(t, int64(101), levels[0].InventoryItemID)
	assert.True(t, levels[0].Available.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, "9001", levels[0].LocationID)
	assert.False(t, levels[0].UpdatedAt.IsZero())

	assert.True(t, levels[1].Available.IsZero(), "available null se trata como 0")
}

func TestInventoryLevels_PaginaSiguienteSeRegistraSinPedirla(t *testing.T) {
	var calls int
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/%s/inventory_levels.json?page_info=n2>; rel="next"`, srv.URL, testVersion))
		fmt.Fprint(w, `{"inventory_levels":[{"inventory_item_id":101,"location_id":1,"available":3}]}`)
	}))
	defer srv.Close()

	var logs bytes.Buffer
	levels, err := newClientWithLog(srv, zerolog.New(&logs)).InventoryLevels(context.Background(), []int64{101})
	require.NoError(t, err)
	assert.Len(t, levels, 1)
	assert.Equal(t, 1, calls, "una sola petición por lote")
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), "truncado")
}

func TestInventoryLevels_JSONInvalido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>mantenimiento</html>`)
	}))
	defer srv.Close()

	_, err := newClient(srv).InventoryLevels(context.Background(), []int64{1})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrUpstreamStatus))
	assert.True(t, strings.Contains(err.Error(), "deserializar"))
}

func TestNextPageURL(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"vacía", "", ""},
		{"solo next", `<https://s/products.json?page_info=a>; rel="next"`, "https://s/products.json?page_info=a"},
		{"previous y next", `<https://s/p.json?page_info=a>; rel="previous", <https://s/p.json?page_info=b>; rel="next"`, "https://s/p.json?page_info=b"},
		{"solo previous", `<https://s/p.json?page_info=a>; rel="previous"`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shopify.NextPageURL(tc.header))
		})
	}
}
