package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lumina-retail/storefront-backend/pkg/config"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.Upstream{
		Name:            "test",
		BaseURL:         server.URL,
		Timeout:         2 * time.Second,
		BreakerFailures: 3,
		BreakerCooldown: time.Second,
	}, nil)
}

func TestDoDecodesSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing bearer header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	var out struct {
		Status string `json:"status"`
	}
	err := client.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/health",
		Bearer: "tok",
		Out:    &out,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Status != "healthy" {
		t.Fatalf("unexpected payload %+v", out)
	}
}

func TestDoMapsStatuses(t *testing.T) {
	cases := []struct {
		status int
		code   pkgerrors.Code
	}{
		{http.StatusUnauthorized, pkgerrors.CodeUnauthorized},
		{http.StatusNotFound, pkgerrors.CodeNotFound},
		{http.StatusBadRequest, pkgerrors.CodeValidation},
		{http.StatusInternalServerError, pkgerrors.CodeDependency},
	}

	for _, tc := range cases {
		status := tc.status
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != tc.code {
			t.Fatalf("status %d: expected code %s, got %v", tc.status, tc.code, err)
		}
	}
}

func TestDoNonTwoXXDoesNotTripBreaker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	// Well past the consecutive-failure threshold.
	for i := 0; i < 10; i++ {
		err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeDependency {
			t.Fatalf("call %d: expected dependency error, got %v", i, err)
		}
	}
}

func TestDoTransportFailureOpensBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(config.Upstream{
		Name:            "dead",
		BaseURL:         server.URL,
		Timeout:         time.Second,
		BreakerFailures: 2,
		BreakerCooldown: time.Minute,
	}, nil)

	for i := 0; i < 5; i++ {
		err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/x"})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeDependency {
			t.Fatalf("call %d: expected dependency error, got %v", i, err)
		}
	}
}
