package orderapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumina-retail/storefront-backend/pkg/config"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
	"github.com/lumina-retail/storefront-backend/pkg/rest"
	"github.com/lumina-retail/storefront-backend/pkg/types"
)

// OrderItem is one snapshotted cart line inside an order-creation request.
type OrderItem struct {
	ProductID            string          `json:"product_id"`
	ProductSnapshotName  string          `json:"product_snapshot_name"`
	ProductSnapshotPrice decimal.Decimal `json:"product_snapshot_price"`
	Quantity             int             `json:"quantity"`
}

// CreateOrderRequest is the order service creation payload.
type CreateOrderRequest struct {
	CustomerName     string                 `json:"customer_name"`
	CustomerEmail    string                 `json:"customer_email"`
	CustomerPhone    string                 `json:"customer_phone"`
	DeliveryMethodID string                 `json:"delivery_method_id"`
	PaymentMethodID  string                 `json:"payment_method_id"`
	CustomerNotes    string                 `json:"customer_notes,omitempty"`
	OrderItems       []OrderItem            `json:"order_items"`
	ShippingAddress  *types.ShippingAddress `json:"shipping_address,omitempty"`
}

// OrderItemResponse is a persisted order line with its computed subtotal.
type OrderItemResponse struct {
	ID                   string          `json:"id"`
	OrderID              string          `json:"order_id"`
	ProductID            string          `json:"product_id"`
	ProductSnapshotName  string          `json:"product_snapshot_name"`
	ProductSnapshotPrice decimal.Decimal `json:"product_snapshot_price"`
	Quantity             int             `json:"quantity"`
	SubtotalAmount       decimal.Decimal `json:"subtotal_amount"`
}

// Order is the persisted order returned on creation, including the
// generated human-readable order number.
type Order struct {
	ID              string                 `json:"id"`
	OrderNumber     string                 `json:"order_number"`
	CustomerName    string                 `json:"customer_name"`
	CustomerEmail   string                 `json:"customer_email"`
	CustomerPhone   string                 `json:"customer_phone"`
	ShippingAddress *types.ShippingAddress `json:"shipping_address,omitempty"`
	TotalAmount     decimal.Decimal        `json:"total_amount"`
	TaxAmount       decimal.Decimal        `json:"tax_amount"`
	ShippingCost    decimal.Decimal        `json:"shipping_cost"`
	Status          string                 `json:"status"`
	PaymentStatus   string                 `json:"payment_status"`
	PaymentMethod   string                 `json:"payment_method,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	Items           []OrderItemResponse    `json:"items"`
}

// Client consumes the order service.
type Client struct {
	rest *rest.Client
}

func NewClient(cfg config.OrderConfig, logg *logger.Logger) *Client {
	return &Client{rest: rest.NewClient(cfg.Upstream(), logg)}
}

// CreateOrder submits an order-creation request and returns the persisted order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var order Order
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/api/v1/orders/",
		Body:   req,
		Out:    &order,
	}); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder fetches a persisted order by identifier.
func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/api/v1/orders/" + url.PathEscape(id),
		Out:    &order,
	}); err != nil {
		return nil, err
	}
	return &order, nil
}
