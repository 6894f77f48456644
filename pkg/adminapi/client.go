package adminapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumina-retail/storefront-backend/pkg/config"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
	"github.com/lumina-retail/storefront-backend/pkg/rest"
	"github.com/lumina-retail/storefront-backend/pkg/types"
)

// AdminUser is a back-office account.
type AdminUser struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// LoginRequest carries back-office credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the admin service login payload.
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	User         AdminUser `json:"user"`
}

// Product mirrors the catalog record as exposed through the admin proxy.
type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	SKU              string          `json:"sku"`
	Description      string          `json:"description,omitempty"`
	ManufacturerName string          `json:"manufacturer_name,omitempty"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	StockQuantity    int             `json:"stock_quantity"`
	ImageURL         string          `json:"image_url,omitempty"`
	Attributes       map[string]any  `json:"attributes,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductInput is the create/update payload for the admin product proxy.
type ProductInput struct {
	Name             string           `json:"name,omitempty"`
	SKU              string           `json:"sku,omitempty"`
	Description      string           `json:"description,omitempty"`
	ManufacturerName string           `json:"manufacturer_name,omitempty"`
	CurrentPrice     *decimal.Decimal `json:"current_price,omitempty"`
	StockQuantity    *int             `json:"stock_quantity,omitempty"`
	ImageURL         string           `json:"image_url,omitempty"`
	Attributes       map[string]any   `json:"attributes,omitempty"`
}

// AdminUserInput is the create/update payload for back-office accounts.
type AdminUserInput struct {
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// OrderSummary is one row of the admin order listing.
type OrderSummary struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// StatusRef names an order status.
type StatusRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// OrderDetails is the full admin view of one order.
type OrderDetails struct {
	ID              string                 `json:"id"`
	OrderNumber     string                 `json:"order_number"`
	CustomerName    string                 `json:"customer_name"`
	CustomerPhone   string                 `json:"customer_phone"`
	CustomerEmail   string                 `json:"customer_email"`
	CustomerNotes   string                 `json:"customer_notes,omitempty"`
	StatusID        string                 `json:"status_id"`
	TotalAmount     decimal.Decimal        `json:"total_amount"`
	Currency        string                 `json:"currency"`
	ShippingAddress *types.ShippingAddress `json:"shipping_address,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	StatusRef       StatusRef              `json:"status_ref"`
	DeliveryRef     StatusRef              `json:"delivery_method_ref"`
}

// OrderStatus is one entry of the fixed status dictionary.
type OrderStatus struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// StatusHistoryEntry is one recorded order status transition.
type StatusHistoryEntry struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	StatusID     string    `json:"status_id"`
	StatusName   string    `json:"status_name"`
	StatusCode   string    `json:"status_code"`
	ChangedAt    time.Time `json:"changed_at"`
	ActorDetails string    `json:"actor_details,omitempty"`
	Notes        string    `json:"notes,omitempty"`
}

// StatusUpdateRequest moves an order to a new status.
type StatusUpdateRequest struct {
	StatusID     string `json:"status_id"`
	ActorDetails string `json:"actor_details,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// AuditLog is one recorded back-office action.
type AuditLog struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Username           string    `json:"username,omitempty"`
	Action             string    `json:"action"`
	TargetResourceType string    `json:"target_resource_type,omitempty"`
	TargetResourceID   string    `json:"target_resource_id,omitempty"`
	Details            string    `json:"details,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

type pagedResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Paged carries one page of an admin listing with its total row count.
type Paged[T any] struct {
	Items []T
	Total int
}

// Client consumes the admin service. Every call except Login requires the
// bearer token held by the admin session store.
type Client struct {
	rest *rest.Client
}

func NewClient(cfg config.AdminConfig, logg *logger.Logger) *Client {
	return &Client{rest: rest.NewClient(cfg.Upstream(), logg)}
}

// Login exchanges credentials for a token pair and the account profile.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/auth/login-json",
		Body:   req,
		Out:    &resp,
	}); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the token pair upstream. Errors are reported but the
// caller clears local credentials regardless.
func (c *Client) Logout(ctx context.Context, bearer string) error {
	return c.rest.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Bearer: bearer,
	})
}

func (c *Client) ListProducts(ctx context.Context, bearer string, skip, limit int) (*Paged[Product], error) {
	return listPaged[Product](ctx, c, bearer, "/admin/products", pageQuery(skip, limit))
}

func (c *Client) GetProduct(ctx context.Context, bearer, id string) (*Product, error) {
	var product Product
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/admin/products/" + url.PathEscape(id),
		Bearer: bearer,
		Out:    &product,
	}); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, bearer string, input ProductInput) (*Product, error) {
	var product Product
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/admin/products",
		Bearer: bearer,
		Body:   input,
		Out:    &product,
	}); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, bearer, id string, input ProductInput) (*Product, error) {
	var product Product
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   "/admin/products/" + url.PathEscape(id),
		Bearer: bearer,
		Body:   input,
		Out:    &product,
	}); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, bearer, id string) error {
	return c.rest.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   "/admin/products/" + url.PathEscape(id),
		Bearer: bearer,
	})
}

func (c *Client) ListUsers(ctx context.Context, bearer string, skip, limit int, search string) (*Paged[AdminUser], error) {
	query := pageQuery(skip, limit)
	if search != "" {
		query.Set("search", search)
	}
	return listPaged[AdminUser](ctx, c, bearer, "/admin/users", query)
}

func (c *Client) GetUser(ctx context.Context, bearer, id string) (*AdminUser, error) {
	var user AdminUser
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/admin/users/" + url.PathEscape(id),
		Bearer: bearer,
		Out:    &user,
	}); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, bearer string, input AdminUserInput) (*AdminUser, error) {
	var user AdminUser
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/admin/users",
		Bearer: bearer,
		Body:   input,
		Out:    &user,
	}); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateUser(ctx context.Context, bearer, id string, input AdminUserInput) (*AdminUser, error) {
	var user AdminUser
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   "/admin/users/" + url.PathEscape(id),
		Bearer: bearer,
		Body:   input,
		Out:    &user,
	}); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, bearer, id string) error {
	return c.rest.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   "/admin/users/" + url.PathEscape(id),
		Bearer: bearer,
	})
}

func (c *Client) ListOrders(ctx context.Context, bearer string, skip, limit int, statusCode string) (*Paged[OrderSummary], error) {
	query := pageQuery(skip, limit)
	if statusCode != "" {
		query.Set("status", statusCode)
	}
	return listPaged[OrderSummary](ctx, c, bearer, "/admin/orders", query)
}

func (c *Client) GetOrder(ctx context.Context, bearer, id string) (*OrderDetails, error) {
	var order OrderDetails
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/admin/orders/" + url.PathEscape(id),
		Bearer: bearer,
		Out:    &order,
	}); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrderStatuses(ctx context.Context, bearer string) ([]OrderStatus, error) {
	var statuses []OrderStatus
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/admin/order-statuses",
		Bearer: bearer,
		Out:    &statuses,
	}); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (c *Client) GetOrderStatusHistory(ctx context.Context, bearer, id string) ([]StatusHistoryEntry, error) {
	var history []StatusHistoryEntry
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/admin/orders/" + url.PathEscape(id) + "/status-history",
		Bearer: bearer,
		Out:    &history,
	}); err != nil {
		return nil, err
	}
	return history, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, bearer, id string, req StatusUpdateRequest) (*OrderDetails, error) {
	var order OrderDetails
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   "/admin/orders/" + url.PathEscape(id) + "/status",
		Bearer: bearer,
		Body:   req,
		Out:    &order,
	}); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListAuditLogs(ctx context.Context, bearer string, skip, limit int, filters url.Values) (*Paged[AuditLog], error) {
	query := pageQuery(skip, limit)
	for key, values := range filters {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	return listPaged[AuditLog](ctx, c, bearer, "/admin/audit/logs", query)
}

func listPaged[T any](ctx context.Context, c *Client, bearer, path string, query url.Values) (*Paged[T], error) {
	var resp pagedResponse[T]
	if err := c.rest.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
		Bearer: bearer,
		Out:    &resp,
	}); err != nil {
		return nil, err
	}
	return &Paged[T]{Items: resp.Items, Total: resp.Total}, nil
}

func pageQuery(skip, limit int) url.Values {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))
	return query
}
