package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StaffMember es un colaborador de la clínica. Puede tener una cuenta
// de acceso asociada (UserID), pero no es obligatorio.
type StaffMember struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RUT       string `gorm:"size:12;uniqueIndex;not null" json:"rut"`
	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Email     string `gorm:"size:100" json:"email"`
	Phone     string `gorm:"size:15" json:"phone"`

	// Position: estilista | recepcionista | administrador
	Position string          `gorm:"size:20;not null" json:"position"`
	HireDate time.Time       `json:"hire_date"`
	Salary   decimal.Decimal `gorm:"type:decimal(10,2)" json:"salary"`
	Address  string          `gorm:"type:text" json:"address"`

	Status string `gorm:"size:10;default:'activo'" json:"status"`

	UserID *uint `gorm:"uniqueIndex" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *StaffMember) FullName() string {
	return s.FirstName + " " + s.LastName
}
