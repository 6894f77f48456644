package orders

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/lumina-retail/storefront-backend/internal/session"
	"github.com/lumina-retail/storefront-backend/pkg/adminapi"
	pkgerrors "github.com/lumina-retail/storefront-backend/pkg/errors"
	"github.com/lumina-retail/storefront-backend/pkg/logger"
	"github.com/lumina-retail/storefront-backend/pkg/orderapi"
)

// LastOrderStore keeps the transient confirmation payload produced by a
// successful checkout until the confirmation view has consumed it.
type LastOrderStore struct {
	sessions session.Store
	ttl      time.Duration
	logg     *logger.Logger
}

func NewLastOrderStore(sessions session.Store, ttl time.Duration, logg *logger.Logger) *LastOrderStore {
	return &LastOrderStore{sessions: sessions, ttl: ttl, logg: logg}
}

// Save persists the confirmation payload for the session.
func (s *LastOrderStore) Save(ctx context.Context, sessionID string, order *orderapi.Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.sessions.Set(ctx, session.LastOrderKey(sessionID), string(raw), s.ttl)
}

// Last returns the most recent confirmation payload. A missing or
// malformed payload maps to NOT_FOUND.
func (s *LastOrderStore) Last(ctx context.Context, sessionID string) (*orderapi.Order, error) {
	raw, err := s.sessions.Get(ctx, session.LastOrderKey(sessionID))
	if errors.Is(err, session.ErrNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no recent order for this session")
	}
	if err != nil {
		return nil, err
	}

	var order orderapi.Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		s.logg.Warn(s.logg.WithSessionID(ctx, sessionID), "discarding malformed order snapshot")
		_ = s.sessions.Del(ctx, session.LastOrderKey(sessionID))
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no recent order for this session")
	}
	return &order, nil
}

// Clear drops the stored confirmation payload.
func (s *LastOrderStore) Clear(ctx context.Context, sessionID string) error {
	return s.sessions.Del(ctx, session.LastOrderKey(sessionID))
}

// HistoryEntry is one row of the presented status timeline.
type HistoryEntry struct {
	StatusName   string    `json:"status_name"`
	StatusCode   string    `json:"status_code"`
	ChangedAt    time.Time `json:"changed_at"`
	ActorDetails string    `json:"actor_details,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Current      bool      `json:"current"`
}

// PresentHistory orders status transitions newest first and marks the
// latest one as current. The input is never mutated.
func PresentHistory(entries []adminapi.StatusHistoryEntry) []HistoryEntry {
	sorted := make([]adminapi.StatusHistoryEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ChangedAt.After(sorted[j].ChangedAt)
	})

	presented := make([]HistoryEntry, 0, len(sorted))
	for i, entry := range sorted {
		presented = append(presented, HistoryEntry{
			StatusName:   entry.StatusName,
			StatusCode:   entry.StatusCode,
			ChangedAt:    entry.ChangedAt,
			ActorDetails: entry.ActorDetails,
			Notes:        entry.Notes,
			Current:      i == 0,
		})
	}
	return presented
}
