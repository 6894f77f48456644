package admin

import (
	"context"
	"testing"
	"time"

	"github.com/lumina-retail/storefront-backend/pkg/adminapi"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
)

type stubTokens struct {
	token       string
	tokenErr    error
	invalidated int
}

func (s *stubTokens) Token(context.Context, string) (string, error) {
	if s.tokenErr != nil {
		return "", s.tokenErr
	}
	return s.token, nil
}

func (s *stubTokens) Invalidate(context.Context, string) error {
	s.invalidated++
	return nil
}

type stubAdminClient struct {
	adminClient

	bearerSeen string
	listErr    error
	history    []adminapi.StatusHistoryEntry
	historyErr error
}

func (s *stubAdminClient) ListProducts(_ context.Context, bearer string, _, _ int) (*adminapi.Paged[adminapi.Product], error) {
	s.bearerSeen = bearer
	if s.listErr != nil {
		return nil, s.listErr
	}
	return &adminapi.Paged[adminapi.Product]{
		Items: []adminapi.Product{{ID: "p1", Name: "Brass pendant lamp"}},
		Total: 1,
	}, nil
}

func (s *stubAdminClient) GetOrderStatusHistory(_ context.Context, bearer, _ string) ([]adminapi.StatusHistoryEntry, error) {
	s.bearerSeen = bearer
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	return s.history, nil
}

func newTestService(client *stubAdminClient, tokens *stubTokens) *Service {
	return NewService(client, tokens, logger.New(logger.Options{ServiceName: "test"}))
}

func TestCallAttachesBearer(t *testing.T) {
	t.Parallel()

	client := &stubAdminClient{}
	tokens := &stubTokens{token: "bearer-1"}
	svc := newTestService(client, tokens)

	page, err := svc.ListProducts(context.Background(), "sid", 0, 10)
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if client.bearerSeen != "bearer-1" {
		t.Fatalf("expected bearer attached, got %q", client.bearerSeen)
	}
	if page.Total != 1 || page.Items[0].ID != "p1" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestCallWithoutTokenShortCircuits(t *testing.T) {
	t.Parallel()

	client := &stubAdminClient{}
	tokens := &stubTokens{tokenErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "not logged in")}
	svc := newTestService(client, tokens)

	_, err := svc.ListProducts(context.Background(), "sid", 0, 10)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	if client.bearerSeen != "" {
		t.Fatal("expected no upstream call without a token")
	}
}

func TestUpstream401InvalidatesCredentials(t *testing.T) {
	t.Parallel()

	client := &stubAdminClient{listErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "token rejected")}
	tokens := &stubTokens{token: "bearer-1"}
	svc := newTestService(client, tokens)

	_, err := svc.ListProducts(context.Background(), "sid", 0, 10)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	if tokens.invalidated != 1 {
		t.Fatalf("expected credentials invalidated once, got %d", tokens.invalidated)
	}
}

func TestUpstreamDependencyErrorKeepsCredentials(t *testing.T) {
	t.Parallel()

	client := &stubAdminClient{listErr: pkgerrors.New(pkgerrors.CodeDependency, "upstream 500")}
	tokens := &stubTokens{token: "bearer-1"}
	svc := newTestService(client, tokens)

	if _, err := svc.ListProducts(context.Background(), "sid", 0, 10); err == nil {
		t.Fatal("expected an error")
	}
	if tokens.invalidated != 0 {
		t.Fatalf("expected credentials kept, invalidated %d times", tokens.invalidated)
	}
}

func TestOrderStatusHistoryPresented(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	client := &stubAdminClient{history: []adminapi.StatusHistoryEntry{
		{StatusCode: "new", ChangedAt: base},
		{StatusCode: "confirmed", ChangedAt: base.Add(time.Hour)},
	}}
	tokens := &stubTokens{token: "bearer-1"}
	svc := newTestService(client, tokens)

	history, err := svc.OrderStatusHistory(context.Background(), "sid", "o1")
	if err != nil {
		t.Fatalf("OrderStatusHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].StatusCode != "confirmed" || !history[0].Current {
		t.Fatalf("expected newest first and current, got %+v", history[0])
	}
}
