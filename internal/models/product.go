package models

import (
	"time"

	"github.com/shopspring/decimal"
)

var ProductCategories = []string{
	"champu", "acondicionador", "tinte", "laca", "crema", "tratamiento", "otros",
}

// Product es un producto de inventario. El stock solo se modifica a través
// de movimientos de inventario (ver usecase/inventory), nunca directo.
type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:20;not null" json:"category"`

	CostPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cost_price"`
	SalePrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"sale_price"`

	CurrentStock int `gorm:"not null;default:0" json:"current_stock"`
	MinimumStock int `gorm:"not null;default:5" json:"minimum_stock"`

	SupplierID *uint     `gorm:"index" json:"supplier_id"`
	Supplier   *Supplier `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"supplier,omitempty"`

	Status string `gorm:"size:10;default:'activo'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BelowMinimum: stock actual en o bajo el mínimo configurado.
func (p *Product) BelowMinimum() bool {
	return p.CurrentStock <= p.MinimumStock
}

// MinimumShortfall es la cantidad que falta para llegar al stock mínimo
// (cero cuando no falta nada).
func (p *Product) MinimumShortfall() int {
	if diff := p.MinimumStock - p.CurrentStock; diff > 0 {
		return diff
	}
	return 0
}

// ProfitMarginPct = (venta - costo) / costo * 100.
func (p *Product) ProfitMarginPct() decimal.Decimal {
	if p.CostPrice.IsPositive() {
		return p.SalePrice.Sub(p.CostPrice).
			Div(p.CostPrice).
			Mul(decimal.NewFromInt(100))
	}
	return decimal.Zero
}

// InventoryValue = costo * stock actual.
func (p *Product) InventoryValue() decimal.Decimal {
	return p.CostPrice.Mul(decimal.NewFromInt(int64(p.CurrentStock)))
}
