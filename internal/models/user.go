package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:100" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// Superuser siempre clasifica como administrador, tenga o no perfil.
	Superuser bool `gorm:"default:false" json:"superuser"`
	Active    bool `gorm:"default:true" json:"active"`

	Profile *UserProfile `gorm:"constraint:OnDelete:CASCADE;" json:"profile,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserProfile existe exactamente uno por cuenta; se crea en la misma
// transacción que el usuario. El rol del perfil gobierna la autorización.
type UserProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	// Role: administrador | estilista | recepcionista
	Role string `gorm:"size:15;default:'recepcionista'" json:"role"`

	Phone     string     `gorm:"size:15" json:"phone"`
	Address   string     `gorm:"type:text" json:"address"`
	BirthDate *time.Time `json:"birth_date"`
	HireDate  *time.Time `json:"hire_date"`
	Active    bool       `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
