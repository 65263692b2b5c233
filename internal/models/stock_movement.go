package models

import "time"

// StockMovement es una entrada del libro de inventario. El libro es solo
// de inserción; el efecto sobre el stock del producto se aplica con
// inventory.Apply dentro de la misma transacción que crea la entrada.
type StockMovement struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`

	// Type: entrada | salida | ajuste
	Type     string `gorm:"size:10;not null" json:"type"`
	Quantity int    `gorm:"not null" json:"quantity"`
	Reason   string `gorm:"size:200;not null" json:"reason"`

	UserID *uint `json:"user_id"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (StockMovement) TableName() string { return "stock_movements" }
