package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/skillbites-ai/bites_api/model"
)

type SqliteService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const SQLITE_SVC = "sqlite_svc"

// Id returns Service ID
func (ds SqliteService) Id() string {
	return SQLITE_SVC
}

// Configure the service
func (ds *SqliteService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DB_DATABASE")

	return ds.DefaultService.Configure(ctx)
}

// Start the service and open connection to the database
// Migrate any tables that have changed since last runtime
func (ds *SqliteService) Start() (err error) {
	ds.db, err = gorm.Open(sqlite.Open(ds.database), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return err
	}
	models := []interface{}{
		&model.Session{},
		&model.StateSlot{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *SqliteService) Shutdown() {
}

// ==================== SESSIONS ====================

func (ds *SqliteService) GetSessionByDeviceID(deviceID string) (*model.Session, error) {
	var session model.Session
	if err := ds.db.Where("device_id = ?", deviceID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (ds *SqliteService) GetSession(sessionID string) (*model.Session, error) {
	var session model.Session
	if err := ds.db.Where("id = ?", sessionID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (ds *SqliteService) CreateSession(session *model.Session) (*model.Session, error) {
	if err := ds.db.Create(session).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return session, nil
}

func (ds *SqliteService) UpdateSession(session *model.Session) error {
	return ds.HandleError(ds.db.Save(session).Error)
}

// ==================== STATE SLOTS ====================

func (ds *SqliteService) GetStateSlot(sessionID, key string) (*model.StateSlot, error) {
	var slot model.StateSlot
	if err := ds.db.Where("session_id = ? AND key = ?", sessionID, key).First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// UpsertStateSlot writes a slot's document, inserting or replacing on the
// (session_id, key) unique index.
func (ds *SqliteService) UpsertStateSlot(slot *model.StateSlot) error {
	now := time.Now()
	if slot.ID == "" {
		slot.ID = uuid.New().String()
		slot.CreatedAt = now
	}
	slot.UpdatedAt = now

	return ds.HandleError(ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(slot).Error)
}

// DeleteStateSlots removes the named slots of a session in one transaction.
func (ds *SqliteService) DeleteStateSlots(sessionID string, keys []string) error {
	return ds.HandleError(ds.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("session_id = ? AND key IN ?", sessionID, keys).
			Delete(&model.StateSlot{}).Error
	}))
}

func (ds *SqliteService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound // 404
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict // 409
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest // 400
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError // 500
		errorType = "TRANSACTION_ERROR"
	default:
		// Check for SQLite-specific errors
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			statusCode = http.StatusConflict // 409
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "no such table") {
			statusCode = http.StatusInternalServerError // 500
			errorType = "SCHEMA_ERROR"
		} else {
			statusCode = http.StatusInternalServerError // 500
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}
