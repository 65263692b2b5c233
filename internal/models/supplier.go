package models

import "time"

type Supplier struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RUT         string `gorm:"size:12;uniqueIndex;not null" json:"rut"`
	CompanyName string `gorm:"size:100;not null" json:"company_name"`
	ContactName string `gorm:"size:100;not null" json:"contact_name"`
	Email       string `gorm:"size:100" json:"email"`
	Phone       string `gorm:"size:15" json:"phone"`
	Address     string `gorm:"type:text" json:"address"`

	// Texto libre con los productos que provee.
	SuppliedProducts string `gorm:"type:text" json:"supplied_products"`

	Status string `gorm:"size:10;default:'activo'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
