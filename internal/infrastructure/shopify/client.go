// Package shopify implementa el puerto snapshot.Catalog sobre la Admin REST API de Shopify.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-snapshot/internal/application/dto"
	"github.com/jhoicas/Inventario-snapshot/internal/application/snapshot"
	"github.com/jhoicas/Inventario-snapshot/internal/domain"
	"github.com/jhoicas/Inventario-snapshot/internal/domain/entity"
	"github.com/jhoicas/Inventario-snapshot/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa snapshot.Catalog.
var _ snapshot.Catalog = (*Client)(nil)

const (
	accessTokenHeader = "X-Shopify-Access-Token"
	maxBodyBytes      = 32 << 20
	// Niveles por petición; con varias ubicaciones un lote de 50 items devuelve más de 50 niveles.
	levelsPageLimit = 250
)

// StatusError respuesta HTTP no exitosa de la API. Envuelve domain.ErrUpstreamStatus.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("shopify: HTTP %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return domain.ErrUpstreamStatus }

// Client cliente REST de Shopify. Usa net/http de la librería estándar; no requiere SDK.
type Client struct {
	baseURL    string
	token      string
	apiVersion string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el cliente a partir de la configuración.
func NewClient(cfg config.ShopifyConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.ShopURL, "/"),
		token:      cfg.AccessToken,
		apiVersion: cfg.APIVersion,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		log:        log,
	}
}

// ── Estructuras del protocolo REST ────────────────────────────────────────────

type productsResponse struct {
	Products []struct {
		ID       int64  `json:"id"`
		Title    string `json:"title"`
		Variants []struct {
			ID              int64  `json:"id"`
			Title           string `json:"title"`
			SKU             string `json:"sku"`
			InventoryItemID int64  `json:"inventory_item_id"`
		} `json:"variants"`
	} `json:"products"`
}

type levelsResponse struct {
	InventoryLevels []struct {
		InventoryItemID int64           `json:"inventory_item_id"`
		LocationID      int64           `json:"location_id"`
		Available       decimal.Decimal `json:"available"` // null = 0
		UpdatedAt       *time.Time      `json:"updated_at"`
	} `json:"inventory_levels"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// ProductsURL devuelve la URL de la primera página del listado de productos.
func (c *Client) ProductsURL() string {
	return fmt.Sprintf("%s/admin/api/%s/products.json", c.baseURL, c.apiVersion)
}

// LevelsURL devuelve la URL del endpoint de niveles de inventario.
func (c *Client) LevelsURL() string {
	return fmt.Sprintf("%s/admin/api/%s/inventory_levels.json", c.baseURL, c.apiVersion)
}

// ProductsPage pide una página de productos y extrae el cursor de la cabecera Link.
func (c *Client) ProductsPage(ctx context.Context, pageURL string, limit int) (*dto.ProductPage, error) {
	if pageURL == "" {
		pageURL = c.ProductsURL()
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("shopify: URL de página inválida %q: %w", pageURL, err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	raw, header, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}

	var resp productsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("shopify: deserializar productos: %w", err)
	}

	page := &dto.ProductPage{
		Products:    make([]entity.Product, 0, len(resp.Products)),
		NextPageURL: NextPageURL(header.Get("Link")),
	}
	for _, p := range resp.Products {
		product := entity.Product{ID: p.ID, Title: p.Title, Variants: make([]entity.Variant, 0, len(p.Variants))}
		for _, v := range p.Variants {
			product.Variants = append(product.Variants, entity.Variant{
				ID:              v.ID,
				Title:           v.Title,
				SKU:             v.SKU,
				InventoryItemID: v.InventoryItemID,
			})
		}
		page.Products = append(page.Products, product)
	}
	return page, nil
}

// InventoryLevels pide los niveles de un lote de inventory items en una sola petición.
func (c *Client) InventoryLevels(ctx context.Context, inventoryItemIDs []int64) ([]entity.InventoryLevel, error) {
	ids := make([]string, 0, len(inventoryItemIDs))
	for _, id := range inventoryItemIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	q := url.Values{}
	q.Set("inventory_item_ids", strings.Join(ids, ","))
	q.Set("limit", strconv.Itoa(levelsPageLimit))

	raw, header, err := c.get(ctx, c.LevelsURL()+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	// Una sola petición por lote: si hay más páginas se pierden, pero queda registrado.
	if NextPageURL(header.Get("Link")) != "" {
		c.log.Warn().
			Int("items", len(inventoryItemIDs)).
			Int("limit", levelsPageLimit).
			Msg("lote de niveles truncado: la respuesta trae página siguiente")
	}

	var resp levelsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("shopify: deserializar niveles de inventario: %w", err)
	}

	levels := make([]entity.InventoryLevel, 0, len(resp.InventoryLevels))
	for _, l := range resp.InventoryLevels {
		level := entity.InventoryLevel{
			InventoryItemID: l.InventoryItemID,
			Available:       l.Available,
		}
		if l.LocationID != 0 {
			level.LocationID = strconv.FormatInt(l.LocationID, 10)
		}
		if l.UpdatedAt != nil {
			level.UpdatedAt = *l.UpdatedAt
		}
		levels = append(levels, level)
	}
	return levels, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("shopify: crear HTTP request: %w", err)
	}
	req.Header.Set(accessTokenHeader, c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, fmt.Errorf("shopify: timeout o cancelación: %w", ctx.Err())
		}
		return nil, nil, fmt.Errorf("shopify: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("shopify: leer respuesta: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return raw, resp.Header, nil
}
