package session

import (
	"context"
	"errors"
	"time"

	"github.com/lumina-retail/storefront-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists session values in the embedded sqlite snapshot table.
// Expiry is enforced lazily on read.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

func (s *GormStore) Get(ctx context.Context, key string) (string, error) {
	var blob models.SessionBlob
	err := s.db.WithContext(ctx).First(&blob, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if blob.ExpiresAt != nil && blob.ExpiresAt.Before(s.now()) {
		_ = s.db.WithContext(ctx).Delete(&models.SessionBlob{}, "key = ?", key).Error
		return "", ErrNotFound
	}
	return blob.Value, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	blob := models.SessionBlob{
		Key:       key,
		Value:     value,
		UpdatedAt: s.now(),
	}
	if ttl > 0 {
		expires := s.now().Add(ttl)
		blob.ExpiresAt = &expires
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&blob).Error
}

func (s *GormStore) Del(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&models.SessionBlob{}, "key = ?", key).Error
}
