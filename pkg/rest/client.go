package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lumina-retail/storefront-backend/pkg/config"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
)

// Client is the shared base for the consumed JSON-over-HTTP services
// (catalog, order, admin). It owns transport instrumentation, circuit
// breaking, JSON codec work, and status-to-error mapping so the per-service
// clients stay thin.
type Client struct {
	name    string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*rawResponse]
	logg    *logger.Logger
}

type rawResponse struct {
	status int
	body   []byte
}

// Request describes one upstream call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Bearer string
	Out    any
}

func NewClient(cfg config.Upstream, logg *logger.Logger) *Client {
	failures := cfg.BreakerFailures
	if failures <= 0 {
		failures = 5
	}
	breaker := gobreaker.NewCircuitBreaker[*rawResponse](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: uint32(max(cfg.BreakerHalfCalls, 1)),
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failures)
		},
	})
	return &Client{
		name:    cfg.Name,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: breaker,
		logg:    logg,
	}
}

// Name reports the upstream identifier used in logs and breaker state.
func (c *Client) Name() string {
	return c.name
}

// Do executes the request and decodes a 2xx JSON body into req.Out.
// Transport failures and an open breaker map to DEPENDENCY_ERROR; HTTP
// statuses map through mapStatus. Non-2xx responses never trip the breaker.
func (c *Client) Do(ctx context.Context, req Request) error {
	raw, err := c.breaker.Execute(func() (*rawResponse, error) {
		return c.roundTrip(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, c.name+" circuit open")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, c.name+" request failed")
	}

	if raw.status < 200 || raw.status > 299 {
		return c.mapStatus(raw)
	}
	if req.Out == nil || raw.status == http.StatusNoContent || len(raw.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw.body, req.Out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, c.name+" returned malformed payload")
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, req Request) (*rawResponse, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var payload io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, payload)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Bearer)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return &rawResponse{status: resp.StatusCode, body: body}, nil
}

func (c *Client) mapStatus(raw *rawResponse) error {
	detail := strings.TrimSpace(string(raw.body))
	switch raw.status {
	case http.StatusUnauthorized:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, c.name+" rejected credentials")
	case http.StatusForbidden:
		return pkgerrors.New(pkgerrors.CodeForbidden, c.name+" denied access")
	case http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, c.name+" resource not found")
	case http.StatusConflict:
		return pkgerrors.New(pkgerrors.CodeConflict, c.name+" reported a conflict")
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		err := pkgerrors.New(pkgerrors.CodeValidation, c.name+" rejected the request")
		if detail != "" {
			err = err.WithDetails(map[string]any{"upstream": detail})
		}
		return err
	default:
		err := pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("%s returned status %d", c.name, raw.status))
		if detail != "" {
			err = err.WithDetails(map[string]any{"upstream": detail})
		}
		return err
	}
}
