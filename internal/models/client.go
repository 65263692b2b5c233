package models

import "time"

const (
	StatusActive   = "activo"
	StatusInactive = "inactivo"
)

// Client es un cliente de la clínica. La fecha de nacimiento alimenta
// el descuento de cumpleaños, por eso puede ser nula.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RUT       string `gorm:"size:12;uniqueIndex;not null" json:"rut"`
	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Email     string `gorm:"size:100" json:"email"`
	Phone     string `gorm:"size:15" json:"phone"`

	BirthDate *time.Time `json:"birth_date"`
	Address   string     `gorm:"type:text" json:"address"`

	Status string `gorm:"size:10;default:'activo'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// IsBirthday reporta si ref cae en el mes y día de nacimiento del cliente.
// Sin fecha de nacimiento registrada nunca hay cumpleaños.
func (c *Client) IsBirthday(ref time.Time) bool {
	if c.BirthDate == nil {
		return false
	}
	return c.BirthDate.Month() == ref.Month() && c.BirthDate.Day() == ref.Day()
}
