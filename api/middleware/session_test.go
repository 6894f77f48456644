package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lumina-retail/storefront-backend/pkg/config"
)

func sessionConfig() config.SessionConfig {
	return config.SessionConfig{
		CookieName: "lumina_session",
		CartTTL:    time.Hour,
	}
}

func TestSessionMintsIdentifier(t *testing.T) {
	var seen string
	handler := Session(sessionConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected a minted session id in context")
	}
	if got := w.Header().Get("X-Session-Id"); got != seen {
		t.Fatalf("expected header echo %q, got %q", seen, got)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != seen {
		t.Fatalf("expected session cookie set, got %+v", cookies)
	}
}

func TestSessionPrefersHeader(t *testing.T) {
	var seen string
	handler := Session(sessionConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session-Id", "sid-from-header")
	req.AddCookie(&http.Cookie{Name: "lumina_session", Value: "sid-from-cookie"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "sid-from-header" {
		t.Fatalf("expected header to win, got %q", seen)
	}
}

func TestSessionFallsBackToCookie(t *testing.T) {
	var seen string
	handler := Session(sessionConfig(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "lumina_session", Value: "sid-from-cookie"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "sid-from-cookie" {
		t.Fatalf("expected cookie session id, got %q", seen)
	}
}
