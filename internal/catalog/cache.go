package catalog

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/lumina-retail/storefront-backend/pkg/catalogapi"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
	"github.com/lumina-retail/storefront-backend/pkg/metrics"
)

// State is the cache lifecycle phase.
type State string

const (
	StateIdle     State = "idle"
	StateLoading  State = "loading"
	StateReady    State = "ready"
	StateDegraded State = "degraded"
)

// Product is the display model served to the storefront.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Description  string          `json:"description"`
	Manufacturer string          `json:"manufacturer"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	ImageURL     string          `json:"image_url"`
	Alt          string          `json:"alt"`
	Attributes   map[string]any  `json:"attributes,omitempty"`
}

// Snapshot is the cache contents plus presentation state at one point in
// time.
type Snapshot struct {
	Products []Product `json:"products"`
	State    State     `json:"state"`
	Notice   string    `json:"notice,omitempty"`
}

type listClient interface {
	Health(ctx context.Context) error
	ListProducts(ctx context.Context, skip, limit int) ([]catalogapi.Product, error)
}

const fetchPageSize = 100

// Cache holds the one-shot catalog fetch with graceful degradation. A
// failed load before any in-session success is treated as "backend not
// ready" and suppressed; failures after a success surface a notice while
// the previously fetched list is retained.
type Cache struct {
	client  listClient
	logg    *logger.Logger
	metrics *metrics.GatewayMetrics

	mu            sync.RWMutex
	products      []Product
	state         State
	notice        string
	firstLoadDone bool
}

func NewCache(client listClient, logg *logger.Logger, gm *metrics.GatewayMetrics) *Cache {
	return &Cache{
		client:  client,
		logg:    logg,
		metrics: gm,
		state:   StateIdle,
	}
}

// Load probes the catalog and fetches the full product list. It may be
// called again to refresh from either terminal state.
func (c *Cache) Load(ctx context.Context) Snapshot {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	products, err := c.fetchAll(ctx)
	if err != nil {
		c.metrics.ObserveCatalogRefresh("failure")
		return c.degrade(ctx, err)
	}

	c.metrics.ObserveCatalogRefresh("success")
	c.mu.Lock()
	c.products = products
	c.state = StateReady
	c.notice = ""
	c.firstLoadDone = true
	snap := c.snapshotLocked()
	c.mu.Unlock()
	return snap
}

// Snapshot returns the current cache contents without triggering a fetch.
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Loaded reports whether any load attempt has reached a terminal state.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state == StateReady || c.state == StateDegraded
}

// ProductByID looks a product up in the cached list.
func (c *Cache) ProductByID(id string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, product := range c.products {
		if product.ID == id {
			return product, true
		}
	}
	return Product{}, false
}

func (c *Cache) fetchAll(ctx context.Context) ([]Product, error) {
	if err := c.client.Health(ctx); err != nil {
		return nil, err
	}

	products := []Product{}
	for skip := 0; ; skip += fetchPageSize {
		page, err := c.client.ListProducts(ctx, skip, fetchPageSize)
		if err != nil {
			return nil, err
		}
		for _, record := range page {
			products = append(products, toDisplay(record))
		}
		if len(page) < fetchPageSize {
			return products, nil
		}
	}
}

func (c *Cache) degrade(ctx context.Context, err error) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateDegraded
	if c.firstLoadDone {
		c.notice = "catalog is temporarily unavailable"
		c.logg.Error(ctx, "catalog refresh failed, retaining previous list", err)
	} else {
		// First load failing means the backend is not ready yet, not an
		// error worth surfacing.
		c.products = []Product{}
		c.notice = ""
		c.logg.Warn(ctx, "catalog not ready on first load")
	}
	return c.snapshotLocked()
}

func (c *Cache) snapshotLocked() Snapshot {
	products := make([]Product, len(c.products))
	copy(products, c.products)
	return Snapshot{
		Products: products,
		State:    c.state,
		Notice:   c.notice,
	}
}

func toDisplay(record catalogapi.Product) Product {
	alt := record.Name
	if value, ok := record.Attributes["alt"].(string); ok && value != "" {
		alt = value
	}
	return Product{
		ID:           record.ID,
		Name:         record.Name,
		SKU:          record.SKU,
		Description:  record.Description,
		Manufacturer: record.ManufacturerName,
		Price:        record.CurrentPrice,
		Stock:        record.StockQuantity,
		ImageURL:     record.ImageURL,
		Alt:          alt,
		Attributes:   record.Attributes,
	}
}
