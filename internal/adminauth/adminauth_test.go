package adminauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lumina-retail/storefront-backend/internal/session"
	"github.com/lumina-retail/storefront-backend/pkg/adminapi"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
)

type memoryStore struct {
	data map[string]string
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	value, ok := m.data[key]
	if !ok {
		return "", session.ErrNotFound
	}
	return value, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memoryStore) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

type stubAuthClient struct {
	token      string
	loginErr   error
	logoutErr  error
	logoutSeen string
}

func (s *stubAuthClient) Login(_ context.Context, req adminapi.LoginRequest) (*adminapi.LoginResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &adminapi.LoginResponse{
		AccessToken: s.token,
		User:        adminapi.AdminUser{ID: "u1", Username: req.Username},
	}, nil
}

func (s *stubAuthClient) Logout(_ context.Context, bearer string) error {
	s.logoutSeen = bearer
	return s.logoutErr
}

func signedToken(t *testing.T, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": expiry.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func newTestService(t *testing.T, client *stubAuthClient) (*Service, *memoryStore) {
	t.Helper()
	backend := &memoryStore{data: map[string]string{}}
	logg := logger.New(logger.Options{ServiceName: "test"})
	return NewService(backend, client, time.Hour, logg), backend
}

func TestLoginStoresTokenAndProfile(t *testing.T) {
	t.Parallel()

	client := &stubAuthClient{token: signedToken(t, time.Now().Add(time.Hour))}
	svc, _ := newTestService(t, client)
	ctx := context.Background()

	user, err := svc.Login(ctx, "sid", "admin", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "admin" {
		t.Fatalf("unexpected profile: %+v", user)
	}

	token, err := svc.Token(ctx, "sid")
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != client.token {
		t.Fatal("stored token does not match the issued one")
	}
}

func TestTokenWithoutLoginIsUnauthorized(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &stubAuthClient{})
	_, err := svc.Token(context.Background(), "sid")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestExpiredTokenIsDropped(t *testing.T) {
	t.Parallel()

	client := &stubAuthClient{token: signedToken(t, time.Now().Add(time.Hour))}
	svc, backend := newTestService(t, client)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "sid", "admin", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err := svc.Token(ctx, "sid")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	if _, ok := backend.data[session.AdminKey("sid")]; ok {
		t.Fatal("expected expired credentials removed")
	}
}

func TestLogoutClearsLocalCredentialsDespiteUpstreamFailure(t *testing.T) {
	t.Parallel()

	client := &stubAuthClient{
		token:     signedToken(t, time.Now().Add(time.Hour)),
		logoutErr: pkgerrors.New(pkgerrors.CodeDependency, "upstream down"),
	}
	svc, backend := newTestService(t, client)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "sid", "admin", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := svc.Logout(ctx, "sid"); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if client.logoutSeen != client.token {
		t.Fatal("expected upstream logout attempted with the stored token")
	}
	if _, ok := backend.data[session.AdminKey("sid")]; ok {
		t.Fatal("expected credentials cleared")
	}
}

func TestMalformedCredentialsTreatedAsAbsence(t *testing.T) {
	t.Parallel()

	svc, backend := newTestService(t, &stubAuthClient{})
	backend.data[session.AdminKey("sid")] = "{broken"

	_, err := svc.Token(context.Background(), "sid")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
	if _, ok := backend.data[session.AdminKey("sid")]; ok {
		t.Fatal("expected malformed credentials removed")
	}
}
