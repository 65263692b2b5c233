package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var ServiceCategories = []string{
	"corte", "tinte", "lavado", "peinado", "manicura", "tratamiento", "otros",
}

// Service es un servicio del catálogo (corte, tinte, etc.).
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:20;not null" json:"category"`

	BasePrice       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	DurationMinutes int             `gorm:"default:30" json:"duration_minutes"`

	Status string `gorm:"size:10;default:'activo'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
