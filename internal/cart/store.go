package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumina-retail/storefront-backend/internal/session"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
	"github.com/lumina-retail/storefront-backend/pkg/metrics"
)

// Line is one product entry in a session's cart.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Item carries the product fields captured when a line is first created.
type Item struct {
	ProductID string
	Name      string
	ImageURL  string
	UnitPrice decimal.Decimal
}

// Store owns the cart state of every session. Each mutation rewrites the
// full snapshot; reads always rehydrate from the snapshot so the line set
// survives process restarts.
type Store struct {
	sessions session.Store
	ttl      time.Duration
	logg     *logger.Logger
	metrics  *metrics.GatewayMetrics
}

func NewStore(sessions session.Store, ttl time.Duration, logg *logger.Logger, gm *metrics.GatewayMetrics) *Store {
	return &Store{
		sessions: sessions,
		ttl:      ttl,
		logg:     logg,
		metrics:  gm,
	}
}

// Items returns the current line set for the session. A missing, empty or
// malformed snapshot yields an empty cart, never an error.
func (s *Store) Items(ctx context.Context, sessionID string) ([]Line, error) {
	return s.load(ctx, sessionID)
}

// AddItem inserts a new line with quantity 1, or increments the existing
// line when the product is already in the cart.
func (s *Store) AddItem(ctx context.Context, sessionID string, item Item) ([]Line, error) {
	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lines {
		if lines[i].ProductID == item.ProductID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, Line{
			ProductID: item.ProductID,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
			UnitPrice: item.UnitPrice,
			Quantity:  1,
		})
	}

	if err := s.save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// UpdateQuantity adds delta to the named line's quantity, clamped to a
// minimum of 1. Absent product ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, sessionID, productID string, delta int) ([]Line, error) {
	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	changed := false
	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}
		quantity := lines[i].Quantity + delta
		if quantity < 1 {
			quantity = 1
		}
		changed = lines[i].Quantity != quantity
		lines[i].Quantity = quantity
		break
	}
	if !changed {
		return lines, nil
	}

	if err := s.save(ctx, sessionID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// RemoveItem deletes the line with the given product id. Absent ids are a
// no-op.
func (s *Store) RemoveItem(ctx context.Context, sessionID, productID string) ([]Line, error) {
	lines, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := lines[:0]
	for _, line := range lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return lines, nil
	}

	if err := s.save(ctx, sessionID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Clear empties the session's cart, both in memory and in the snapshot.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.sessions.Del(ctx, session.CartKey(sessionID))
}

// Count is the sum of all line quantities. It is recomputed on every call
// and never stored alongside the snapshot.
func Count(lines []Line) int {
	total := 0
	for _, line := range lines {
		total += line.Quantity
	}
	return total
}

func (s *Store) load(ctx context.Context, sessionID string) ([]Line, error) {
	raw, err := s.sessions.Get(ctx, session.CartKey(sessionID))
	if errors.Is(err, session.ErrNotFound) {
		return []Line{}, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.metrics.IncSnapshotFailure()
		s.logg.Warn(s.logg.WithSessionID(ctx, sessionID), "discarding malformed cart snapshot")
		return []Line{}, nil
	}
	if lines == nil {
		lines = []Line{}
	}
	return lines, nil
}

func (s *Store) save(ctx context.Context, sessionID string, lines []Line) error {
	if len(lines) == 0 {
		return s.sessions.Del(ctx, session.CartKey(sessionID))
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.sessions.Set(ctx, session.CartKey(sessionID), string(raw), s.ttl)
}
