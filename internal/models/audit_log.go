package models

import "time"

// AuditLog registra acciones relevantes para revisión de administradores.
// La escritura es best-effort: nunca bloquea la operación principal.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint  `json:"user_id"`
	Action string `gorm:"size:150;not null" json:"action"`

	Entity      string `gorm:"size:100" json:"entity"`
	EntityID    *uint  `json:"entity_id"`
	Description string `gorm:"type:text" json:"description"`
	RequestID   string `gorm:"size:36" json:"request_id"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
