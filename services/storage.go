package services

import (
	"encoding/json"
	"errors"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/skillbites-ai/bites_api/model"
)

// StorageService is the persistence adapter for per-session state slots.
// Reads never fail: a missing row, a DB error or a corrupt document all
// degrade to "not found" so callers fall back to defaults. Writes are
// fire-and-forget; a failed write is logged and the in-memory state stays
// authoritative for the request.
type StorageService struct {
	context.DefaultService

	sqlSvc *SqliteService
}

const STORAGE_SVC = "storage_svc"

func (svc StorageService) Id() string {
	return STORAGE_SVC
}

func (svc *StorageService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *StorageService) Start() error {
	svc.sqlSvc = svc.Service(SQLITE_SVC).(*SqliteService)
	return nil
}

// LoadRaw returns the slot's JSON document, or ok=false when the slot is
// absent or unreadable.
func (svc *StorageService) LoadRaw(sessionID, key string) (json.RawMessage, bool) {
	slot, err := svc.sqlSvc.GetStateSlot(sessionID, key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			// Classifies and logs; the read still degrades to a miss.
			_ = svc.sqlSvc.HandleError(err)
		}
		return nil, false
	}
	return slot.Value, true
}

// LoadMap decodes an object slot. Corrupt documents count as absent.
func (svc *StorageService) LoadMap(sessionID, key string) map[string]interface{} {
	raw, ok := svc.LoadRaw(sessionID, key)
	if !ok {
		return nil
	}

	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		log.WithFields(log.Fields{
			"session_id": sessionID,
			"slot":       key,
			"error":      err.Error(),
		}).Warn("Corrupt state slot, falling back to defaults")
		return nil
	}
	return m
}

// LoadString decodes a scalar string slot, returning the fallback on any
// miss or decode failure.
func (svc *StorageService) LoadString(sessionID, key, fallback string) string {
	raw, ok := svc.LoadRaw(sessionID, key)
	if !ok {
		return fallback
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fallback
	}
	return s
}

// LoadBool decodes a scalar bool slot.
func (svc *StorageService) LoadBool(sessionID, key string, fallback bool) bool {
	raw, ok := svc.LoadRaw(sessionID, key)
	if !ok {
		return fallback
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return fallback
	}
	return b
}

// Save writes a slot document. Failures are logged, never surfaced.
func (svc *StorageService) Save(sessionID, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		log.WithFields(log.Fields{
			"session_id": sessionID,
			"slot":       key,
			"error":      err.Error(),
		}).Error("Failed to marshal state slot")
		return
	}

	slot := &model.StateSlot{
		SessionID: sessionID,
		Key:       key,
		Value:     data,
	}
	if err := svc.sqlSvc.UpsertStateSlot(slot); err != nil {
		log.WithFields(log.Fields{
			"session_id": sessionID,
			"slot":       key,
			"error":      err.Error(),
		}).Error("Failed to write state slot")
	}
}

// Delete removes the named slots of a session atomically. Reset is the one
// caller that needs the error surfaced.
func (svc *StorageService) Delete(sessionID string, keys ...string) error {
	return svc.sqlSvc.DeleteStateSlots(sessionID, keys)
}
