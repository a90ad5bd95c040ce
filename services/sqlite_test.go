package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/skillbites-ai/bites_api/model"
)

func TestGetSession(t *testing.T) {
	sql := newTestSqlite(t)

	now := time.Now()
	created, err := sql.CreateSession(&model.Session{
		ID:           "sess-1",
		DeviceID:     "device-1",
		SessionStart: now,
		LastActivity: now,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	got, err := sql.GetSession(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "device-1", got.DeviceID)

	_, err = sql.GetSession("sess-unknown")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCreateSessionDuplicateDeviceClassified(t *testing.T) {
	sql := newTestSqlite(t)

	now := time.Now()
	session := model.Session{
		ID:           "sess-1",
		DeviceID:     "device-1",
		SessionStart: now,
		LastActivity: now,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	_, err := sql.CreateSession(&session)
	require.NoError(t, err)

	dup := session
	dup.ID = "sess-2"
	_, err = sql.CreateSession(&dup)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "UNIQUE_CONSTRAINT:"))
}

func TestHandleErrorClassification(t *testing.T) {
	sql := newTestSqlite(t)

	assert.NoError(t, sql.HandleError(nil))

	err := sql.HandleError(gorm.ErrRecordNotFound)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "NOT_FOUND:"))
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	err = sql.HandleError(errors.New("UNIQUE constraint failed: state_slots.session_id"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "UNIQUE_CONSTRAINT:"))

	err = sql.HandleError(errors.New("disk I/O error"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "INTERNAL_ERROR:"))
}

func TestUpsertStateSlotReplacesOnConflict(t *testing.T) {
	sql := newTestSqlite(t)

	first := &model.StateSlot{SessionID: "s1", Key: "k", Value: []byte(`"a"`)}
	require.NoError(t, sql.UpsertStateSlot(first))

	second := &model.StateSlot{SessionID: "s1", Key: "k", Value: []byte(`"b"`)}
	require.NoError(t, sql.UpsertStateSlot(second))

	slot, err := sql.GetStateSlot("s1", "k")
	require.NoError(t, err)
	assert.Equal(t, `"b"`, string(slot.Value))
}
