package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lumina-retail/storefront-backend/internal/catalog"
	"github.com/lumina-retail/storefront-backend/internal/session"
)

// State holds one session's active search query. The query is stored
// verbatim; trimming only happens when deciding whether a search is active.
type State struct {
	sessions session.Store
	ttl      time.Duration
}

func NewState(sessions session.Store, ttl time.Duration) *State {
	return &State{sessions: sessions, ttl: ttl}
}

// SetQuery replaces the session's query verbatim.
func (s *State) SetQuery(ctx context.Context, sessionID, query string) error {
	if query == "" {
		return s.Clear(ctx, sessionID)
	}
	return s.sessions.Set(ctx, session.SearchKey(sessionID), query, s.ttl)
}

// Query returns the session's current query, or an empty string when none
// is set.
func (s *State) Query(ctx context.Context, sessionID string) (string, error) {
	query, err := s.sessions.Get(ctx, session.SearchKey(sessionID))
	if errors.Is(err, session.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return query, nil
}

// Clear removes the session's query.
func (s *State) Clear(ctx context.Context, sessionID string) error {
	return s.sessions.Del(ctx, session.SearchKey(sessionID))
}

// IsActive reports whether the query would filter anything.
func IsActive(query string) bool {
	return strings.TrimSpace(query) != ""
}

// Filter returns the products matching the query, preserving input order.
// An empty (trimmed) query returns the input unchanged. Matching is
// case-insensitive substring across name, description, SKU, manufacturer
// and stringified attribute values.
func Filter(products []catalog.Product, query string) []catalog.Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return products
	}

	matched := []catalog.Product{}
	for _, product := range products {
		if matches(product, needle) {
			matched = append(matched, product)
		}
	}
	return matched
}

func matches(product catalog.Product, needle string) bool {
	fields := []string{
		product.Name,
		product.Description,
		product.SKU,
		product.Manufacturer,
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	for _, value := range product.Attributes {
		if strings.Contains(strings.ToLower(fmt.Sprint(value)), needle) {
			return true
		}
	}
	return false
}
