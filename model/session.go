package model

import (
	"encoding/json"
	"time"
)

type Session struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	DeviceID     string    `json:"device_id" gorm:"uniqueIndex;not null"`
	SessionStart time.Time `json:"session_start" gorm:"not null"`
	LastActivity time.Time `json:"last_activity" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"not null"`
}

// StateSlot is one persisted slot of a session's app state. Value holds the
// slot's JSON document verbatim; corrupt documents are tolerated on read and
// replaced by defaults.
type StateSlot struct {
	ID        string          `json:"id" gorm:"primaryKey"`
	SessionID string          `json:"session_id" gorm:"uniqueIndex:idx_session_slot;not null"`
	Key       string          `json:"key" gorm:"uniqueIndex:idx_session_slot;not null"`
	Value     json.RawMessage `json:"value" gorm:"not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"not null"`
}
