package models

import "time"

// SessionBlob is one persisted session value (cart snapshot, search query,
// last order payload, admin credentials) in embedded mode. Key carries the
// logical key, e.g. "cart:<session-id>".
type SessionBlob struct {
	Key       string     `gorm:"primaryKey;size:255"`
	Value     string     `gorm:"type:text;not null"`
	ExpiresAt *time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (SessionBlob) TableName() string {
	return "session_blobs"
}
