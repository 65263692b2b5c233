package models

import "time"

// Tipos de reporte que quedan en el historial.
const (
	ReportTypeInventory   = "inventario"
	ReportTypeClients     = "clientes"
	ReportTypeTopProducts = "productos_mas_vendidos"
	ReportTypeLowStock    = "stock_bajo"
)

// ReportRecord es el historial de reportes generados: quién pidió qué y
// con qué parámetros. El contenido no se guarda, solo los parámetros
// para poder regenerarlo.
type ReportRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100;not null" json:"name"`
	Type string `gorm:"size:50;not null;index" json:"type"`

	// Parameters guarda los filtros de la consulta como JSON.
	Parameters string `gorm:"type:text" json:"parameters"`

	UserID uint  `gorm:"index" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
