package audit

import (
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	description string,
	requestID string,
) error {

	entry := models.AuditLog{
		UserID:      userID,
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
		Description: description,
		RequestID:   requestID,
	}

	return l.db.Create(&entry).Error
}
