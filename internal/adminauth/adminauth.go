package adminauth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lumina-retail/storefront-backend/internal/session"
	"github.com/lumina-retail/storefront-backend/pkg/adminapi"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
)

// credentials is the persisted token schema shared by both surfaces.
type credentials struct {
	AccessToken string             `json:"access_token"`
	User        adminapi.AdminUser `json:"user"`
}

type authClient interface {
	Login(ctx context.Context, req adminapi.LoginRequest) (*adminapi.LoginResponse, error)
	Logout(ctx context.Context, bearer string) error
}

// Service owns back-office credentials per session. Tokens are issued and
// verified upstream; locally only the expiry claim is inspected so a stale
// token is dropped without a round trip.
type Service struct {
	sessions session.Store
	client   authClient
	ttl      time.Duration
	logg     *logger.Logger
	now      func() time.Time
}

func NewService(sessions session.Store, client authClient, ttl time.Duration, logg *logger.Logger) *Service {
	return &Service{
		sessions: sessions,
		client:   client,
		ttl:      ttl,
		logg:     logg,
		now:      time.Now,
	}
}

// Login exchanges credentials upstream and stores the resulting token and
// profile for the session.
func (s *Service) Login(ctx context.Context, sessionID, username, password string) (*adminapi.AdminUser, error) {
	resp, err := s.client.Login(ctx, adminapi.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(credentials{
		AccessToken: resp.AccessToken,
		User:        resp.User,
	})
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, session.AdminKey(sessionID), string(raw), s.ttl); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout invalidates the token upstream on a best-effort basis and always
// clears the local credentials.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	creds, err := s.load(ctx, sessionID)
	if err == nil {
		if logoutErr := s.client.Logout(ctx, creds.AccessToken); logoutErr != nil {
			s.logg.Warn(s.logg.WithSessionID(ctx, sessionID), "upstream logout failed, clearing local credentials anyway")
		}
	}
	return s.Invalidate(ctx, sessionID)
}

// Token returns the session's bearer token, dropping it first when the
// expiry claim has passed.
func (s *Service) Token(ctx context.Context, sessionID string) (string, error) {
	creds, err := s.load(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if s.expired(creds.AccessToken) {
		_ = s.Invalidate(ctx, sessionID)
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}
	return creds.AccessToken, nil
}

// Profile returns the stored account profile.
func (s *Service) Profile(ctx context.Context, sessionID string) (*adminapi.AdminUser, error) {
	creds, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &creds.User, nil
}

// Invalidate drops the stored credentials, forcing re-login.
func (s *Service) Invalidate(ctx context.Context, sessionID string) error {
	return s.sessions.Del(ctx, session.AdminKey(sessionID))
}

func (s *Service) load(ctx context.Context, sessionID string) (*credentials, error) {
	raw, err := s.sessions.Get(ctx, session.AdminKey(sessionID))
	if errors.Is(err, session.ErrNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not logged in")
	}
	if err != nil {
		return nil, err
	}

	var creds credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		// Malformed credentials are treated as absence.
		s.logg.Warn(s.logg.WithSessionID(ctx, sessionID), "discarding malformed credential snapshot")
		_ = s.Invalidate(ctx, sessionID)
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not logged in")
	}
	return &creds, nil
}

// expired inspects the token's exp claim without verifying the signature.
// Tokens without a parsable expiry are left to the upstream to reject.
func (s *Service) expired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return false
	}
	return expiry.Before(s.now())
}
