package admin

import (
	"context"
	"net/url"

	"github.com/lumina-retail/storefront-backend/internal/orders"
	"github.com/lumina-retail/storefront-backend/pkg/adminapi"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
)

type adminClient interface {
	ListProducts(ctx context.Context, bearer string, skip, limit int) (*adminapi.Paged[adminapi.Product], error)
	GetProduct(ctx context.Context, bearer, id string) (*adminapi.Product, error)
	CreateProduct(ctx context.Context, bearer string, input adminapi.ProductInput) (*adminapi.Product, error)
	UpdateProduct(ctx context.Context, bearer, id string, input adminapi.ProductInput) (*adminapi.Product, error)
	DeleteProduct(ctx context.Context, bearer, id string) error
	ListUsers(ctx context.Context, bearer string, skip, limit int, search string) (*adminapi.Paged[adminapi.AdminUser], error)
	GetUser(ctx context.Context, bearer, id string) (*adminapi.AdminUser, error)
	CreateUser(ctx context.Context, bearer string, input adminapi.AdminUserInput) (*adminapi.AdminUser, error)
	UpdateUser(ctx context.Context, bearer, id string, input adminapi.AdminUserInput) (*adminapi.AdminUser, error)
	DeleteUser(ctx context.Context, bearer, id string) error
	ListOrders(ctx context.Context, bearer string, skip, limit int, statusCode string) (*adminapi.Paged[adminapi.OrderSummary], error)
	GetOrder(ctx context.Context, bearer, id string) (*adminapi.OrderDetails, error)
	ListOrderStatuses(ctx context.Context, bearer string) ([]adminapi.OrderStatus, error)
	GetOrderStatusHistory(ctx context.Context, bearer, id string) ([]adminapi.StatusHistoryEntry, error)
	UpdateOrderStatus(ctx context.Context, bearer, id string, req adminapi.StatusUpdateRequest) (*adminapi.OrderDetails, error)
	ListAuditLogs(ctx context.Context, bearer string, skip, limit int, filters url.Values) (*adminapi.Paged[adminapi.AuditLog], error)
}

type tokenSource interface {
	Token(ctx context.Context, sessionID string) (string, error)
	Invalidate(ctx context.Context, sessionID string) error
}

// Service proxies back-office operations to the admin platform, attaching
// the session's bearer token. An upstream 401 invalidates the stored
// credentials so the next call forces re-login.
type Service struct {
	client adminClient
	tokens tokenSource
	logg   *logger.Logger
}

func NewService(client adminClient, tokens tokenSource, logg *logger.Logger) *Service {
	return &Service{client: client, tokens: tokens, logg: logg}
}

func (s *Service) ListProducts(ctx context.Context, sessionID string, skip, limit int) (*adminapi.Paged[adminapi.Product], error) {
	return call(ctx, s, sessionID, func(bearer string) (*adminapi.Paged[adminapi.Product], error) {
		return s.client.ListProducts(ctx, bearer, skip, limit)
	})
}

func (s *Service) GetProduct(ctx context.Context, sessionID, id string) (*adminapi.Product, error) {
	return call(ctx, s, sessionID, func(bearer string) (*adminapi.Product, error) {
		return s.client.GetProduct(ctx, bearer, id)
	})
}

func (s *Service) CreateProduct(ctx context.Context, sessionID string, input adminapi.ProductInput) (*adminapi.Product, error) {
	return call(ctx, s, sessionID, func(bearer string) (*adminapi.Product, error) {
		return s.client.CreateProduct(ctx, bearer, input)
	})
}

func (s *Service) UpdateProduct(ctx context.Context, sessionID, id string, input adminapi.ProductInput) (*adminapi.Product, error) {
	return call(ctx, s, sessionID, func(bearer string) (*adminapi.Product, error) {
		return s.client.UpdateProduct(ctx, bearer, id, input)
	})
}

func (s *Service) DeleteProduct(ctx context.Context, sessionID, id string) error {
	_, err := call(ctx, s, sessionID, func(bearer string) (struct{}, error) {
		return struct{}{}, s.client.DeleteProduct(ctx, bearer, id)
	})
	return err
}

func (s *Service) ListUsers(ctx context.Context, sessionID string, skip, limit int, search string) (*adminapi.Paged[adminapi.AdminUser], error) {
	return call(ctx, s, sessionID, func(bearer string) (*adminapi.Paged[adminapi.AdminUser], error) {
		return s.client.ListUsers(ctx, bearer, skip, limit, search)
	})
}

func (s *Service) GetUser(ctx context.Context, sessionID, id string) (*adminapi.AdminUser, error) {
	return call(ctx, s, sessionID, func(bearer string) (*adminapi.AdminUser, error) {
		return s.client.GetUser(ctx, bearer, id)
	})
}

func (s *Service) CreateUser(ctx context.Context, sessionID string, input adminapi.AdminUserInput) (*adminapi.AdminUser, error) {
	return call(ctx, s, sessionID, func(bearer string) (*adminapi.AdminUser, error) {
		return s.client.CreateUser(ctx, bearer, input)
	})
}

func (s *Service) UpdateUser(ctx context.Context, sessionID, id string, input adminapi.AdminUserInput) (*adminapi.AdminUser, error) {
	return call(ctx, s, sessionID, func(bearer string) (*adminapi.AdminUser, error) {
		return s.client.UpdateUser(ctx, bearer, id, input)
	})
}

func (s *Service) DeleteUser(ctx context.Context, sessionID, id string) error {
	_, err := call(ctx, s, sessionID, func(bearer string) (struct{}, error) {
		return struct{}{}, s.client.DeleteUser(ctx, bearer, id)
	})
	return err
}

func (s *Service) ListOrders(ctx context.Context, sessionID string, skip, limit int, statusCode string) (*adminapi.Paged[adminapi.OrderSummary], error) {
	return call(ctx, s, sessionID, func(bearer string) (*adminapi.Paged[adminapi.OrderSummary], error) {
		return s.client.ListOrders(ctx, bearer, skip, limit, statusCode)
	})
}

func (s *Service) GetOrder(ctx context.Context, sessionID, id string) (*adminapi.OrderDetails, error) {
	return call(ctx, s, sessionID, func(bearer string) (*adminapi.OrderDetails, error) {
		return s.client.GetOrder(ctx, bearer, id)
	})
}

func (s *Service) ListOrderStatuses(ctx context.Context, sessionID string) ([]adminapi.OrderStatus, error) {
	return call(ctx, s, sessionID, func(bearer string) ([]adminapi.OrderStatus, error) {
		return s.client.ListOrderStatuses(ctx, bearer)
	})
}

// OrderStatusHistory returns the presented timeline, newest first with the
// current status marked.
func (s *Service) OrderStatusHistory(ctx context.Context, sessionID, id string) ([]orders.HistoryEntry, error) {
	entries, err := call(ctx, s, sessionID, func(bearer string) ([]adminapi.StatusHistoryEntry, error) {
		return s.client.GetOrderStatusHistory(ctx, bearer, id)
	})
	if err != nil {
		return nil, err
	}
	return orders.PresentHistory(entries), nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, sessionID, id string, req adminapi.StatusUpdateRequest) (*adminapi.OrderDetails, error) {
	return call(ctx, s, sessionID, func(bearer string) (*adminapi.OrderDetails, error) {
		return s.client.UpdateOrderStatus(ctx, bearer, id, req)
	})
}

func (s *Service) ListAuditLogs(ctx context.Context, sessionID string, skip, limit int, filters url.Values) (*adminapi.Paged[adminapi.AuditLog], error) {
	return call(ctx, s, sessionID, func(bearer string) (*adminapi.Paged[adminapi.AuditLog], error) {
		return s.client.ListAuditLogs(ctx, bearer, skip, limit, filters)
	})
}

func call[T any](ctx context.Context, s *Service, sessionID string, fn func(bearer string) (T, error)) (T, error) {
	var zero T
	bearer, err := s.tokens.Token(ctx, sessionID)
	if err != nil {
		return zero, err
	}

	out, err := fn(bearer)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeUnauthorized {
			s.logg.Warn(s.logg.WithSessionID(ctx, sessionID), "upstream rejected token, dropping credentials")
			_ = s.tokens.Invalidate(ctx, sessionID)
		}
		return zero, err
	}
	return out, nil
}
