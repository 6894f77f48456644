package catalogapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumina-retail/storefront-backend/pkg/config"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
	"github.com/lumina-retail/storefront-backend/pkg/rest"
)

// Product is the catalog service wire representation.
type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	SKU              string          `json:"sku"`
	Description      string          `json:"description"`
	ManufacturerName string          `json:"manufacturer_name"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	StockQuantity    int             `json:"stock_quantity"`
	ImageURL         string          `json:"image_url"`
	Attributes       map[string]any  `json:"attributes"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Client consumes the product catalog service.
type Client struct {
	rest *rest.Client
}

func NewClient(cfg config.CatalogConfig, logg *logger.Logger) *Client {
	return &Client{rest: rest.NewClient(cfg.Upstream(), logg)}
}

// Health probes the catalog availability endpoint.
func (c *Client) Health(ctx context.Context) error {
	var resp healthResponse
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/health",
		Out:    &resp,
	}); err != nil {
		return err
	}
	if resp.Status != "healthy" {
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("catalog reported status %q", resp.Status))
	}
	return nil
}

// ListProducts fetches one page of the catalog.
func (c *Client) ListProducts(ctx context.Context, skip, limit int) ([]Product, error) {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var products []Product
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/products/",
		Query:  query,
		Out:    &products,
	}); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by identifier.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/products/" + url.PathEscape(id),
		Out:    &product,
	}); err != nil {
		return nil, err
	}
	return &product, nil
}
