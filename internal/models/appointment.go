package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Appointment es una cita: un cliente atendido por un colaborador para un
// servicio. FinalPrice queda nulo hasta que se calcula; una vez persistido
// no se recalcula (el precio queda congelado).
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`

	ServiceID uint    `gorm:"index;not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	StaffID uint        `gorm:"index;not null" json:"staff_id"`
	Staff   StaffMember `gorm:"foreignKey:StaffID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff"`

	ScheduledAt         time.Time `gorm:"index;not null" json:"scheduled_at"`
	RealDurationMinutes *int      `json:"real_duration_minutes"`

	FinalPrice      *decimal.Decimal `gorm:"type:decimal(10,2)" json:"final_price"`
	DiscountApplied decimal.Decimal  `gorm:"type:decimal(10,2);default:0" json:"discount_applied"`

	// Status: programada | en_proceso | completada | cancelada
	Status string `gorm:"size:15;default:'programada'" json:"status"`
	Notes  string `gorm:"type:text" json:"notes"`

	ConsumedProducts []ConsumedProduct `gorm:"constraint:OnDelete:CASCADE;" json:"consumed_products,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConsumedProduct es una línea de consumo de producto dentro de una cita.
// El precio unitario es una foto del precio de venta al momento del consumo.
type ConsumedProduct struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`

	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`

	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`

	CreatedAt time.Time `json:"created_at"`
}

func (cp *ConsumedProduct) Subtotal() decimal.Decimal {
	return cp.UnitPrice.Mul(decimal.NewFromInt(int64(cp.Quantity)))
}
