package checkout

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lumina-retail/storefront-backend/internal/cart"
	"github.com/lumina-retail/storefront-backend/internal/orders"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
	"github.com/lumina-retail/storefront-backend/pkg/metrics"
	"github.com/lumina-retail/storefront-backend/pkg/orderapi"
	"github.com/lumina-retail/storefront-backend/pkg/types"
)

// Delivery and payment method keys form a fixed set. The identifiers are
// the order service's method records.
const (
	DeliveryStorePickup = "store_pickup"
	DeliveryCourier     = "courier"

	PaymentCashOnDelivery = "cash_on_delivery"
	PaymentOnlineWallet   = "online_apple_google"
	PaymentBankTransfer   = "bank_transfer"
)

var deliveryMethodIDs = map[string]string{
	DeliveryStorePickup: "fad12742-f0f9-4873-952e-3bd25cfdc562",
	DeliveryCourier:     "7cd59a83-1d98-450b-abef-b55a9838d3e3",
}

var paymentMethodIDs = map[string]string{
	PaymentCashOnDelivery: "7ed3c963-8440-4b57-9ca5-f80e8b150b74",
	PaymentOnlineWallet:   "d9dceffc-29d6-41e8-b861-2f5daf5a498b",
	PaymentBankTransfer:   "2cba9518-21a4-4e4d-9dbb-b395cc10a40c",
}

// Form is the checkout input. Address is required only for courier
// delivery; when present its city, street and apartment fields are
// mandatory.
type Form struct {
	Name           string                 `json:"name" validate:"required"`
	Surname        string                 `json:"surname" validate:"required"`
	Phone          string                 `json:"phone" validate:"required"`
	Email          string                 `json:"email" validate:"required,email"`
	DeliveryMethod string                 `json:"delivery_method" validate:"required,oneof=store_pickup courier"`
	PaymentMethod  string                 `json:"payment_method" validate:"required,oneof=cash_on_delivery online_apple_google bank_transfer"`
	Note           string                 `json:"note,omitempty"`
	Address        *types.ShippingAddress `json:"address,omitempty" validate:"required_if=DeliveryMethod courier"`
}

type orderClient interface {
	CreateOrder(ctx context.Context, req orderapi.CreateOrderRequest) (*orderapi.Order, error)
}

// Flow turns a validated checkout form plus the session's cart into an
// upstream order, reconciling cart state with the outcome. A failed
// submission never mutates the cart; clearing the cart is evidence of
// commit.
type Flow struct {
	carts      *cart.Store
	lastOrders *orders.LastOrderStore
	client     orderClient
	validate   *validator.Validate
	logg       *logger.Logger
	metrics    *metrics.GatewayMetrics
}

func NewFlow(carts *cart.Store, lastOrders *orders.LastOrderStore, client orderClient, logg *logger.Logger, gm *metrics.GatewayMetrics) *Flow {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonTagName)
	return &Flow{
		carts:      carts,
		lastOrders: lastOrders,
		client:     client,
		validate:   v,
		logg:       logg,
		metrics:    gm,
	}
}

// Submit runs the order submission flow for one session.
func (f *Flow) Submit(ctx context.Context, sessionID string, form Form) (*orderapi.Order, error) {
	lines, err := f.carts.Items(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty").
			WithDetails(map[string]string{"cart": "add at least one item before checkout"})
	}

	if err := f.validateForm(form); err != nil {
		return nil, err
	}

	req, err := buildRequest(form, lines)
	if err != nil {
		return nil, err
	}

	order, err := f.client.CreateOrder(ctx, req)
	if err != nil {
		f.metrics.ObserveOrder("failure")
		f.logg.Error(f.logg.WithSessionID(ctx, sessionID), "order submission failed", err)
		return nil, err
	}
	f.metrics.ObserveOrder("success")

	// The order is committed upstream; local cleanup failures must not
	// turn the outcome into an error.
	sctx := f.logg.WithSessionID(ctx, sessionID)
	if err := f.carts.Clear(ctx, sessionID); err != nil {
		f.logg.Error(sctx, "clearing cart after order placement", err)
	}
	if err := f.lastOrders.Save(ctx, sessionID, order); err != nil {
		f.logg.Error(sctx, "storing order confirmation", err)
	}
	return order, nil
}

func (f *Flow) validateForm(form Form) error {
	err := f.validate.Struct(form)
	if err == nil {
		return nil
	}

	violations, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "validating checkout form")
	}

	fields := map[string]string{}
	for _, violation := range violations {
		fields[fieldPath(violation)] = fieldMessage(violation)
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "checkout form is invalid").WithDetails(fields)
}

func buildRequest(form Form, lines []cart.Line) (orderapi.CreateOrderRequest, error) {
	deliveryID, ok := deliveryMethodIDs[form.DeliveryMethod]
	if !ok {
		return orderapi.CreateOrderRequest{}, pkgerrors.New(pkgerrors.CodeInternal, "unmapped delivery method "+form.DeliveryMethod)
	}
	paymentID, ok := paymentMethodIDs[form.PaymentMethod]
	if !ok {
		return orderapi.CreateOrderRequest{}, pkgerrors.New(pkgerrors.CodeInternal, "unmapped payment method "+form.PaymentMethod)
	}

	items := make([]orderapi.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, orderapi.OrderItem{
			ProductID:            line.ProductID,
			ProductSnapshotName:  line.Name,
			ProductSnapshotPrice: line.UnitPrice,
			Quantity:             line.Quantity,
		})
	}

	req := orderapi.CreateOrderRequest{
		CustomerName:     strings.TrimSpace(form.Name + " " + form.Surname),
		CustomerEmail:    form.Email,
		CustomerPhone:    form.Phone,
		DeliveryMethodID: deliveryID,
		PaymentMethodID:  paymentID,
		CustomerNotes:    form.Note,
		OrderItems:       items,
	}
	if form.DeliveryMethod == DeliveryCourier {
		req.ShippingAddress = form.Address
	}
	return req, nil
}

func jsonTagName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func fieldPath(violation validator.FieldError) string {
	// Namespace is "Form.address.city"; drop the root struct segment.
	parts := strings.SplitN(violation.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return violation.Field()
}

func fieldMessage(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required", "required_if":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + violation.Param()
	default:
		return "invalid value"
	}
}
