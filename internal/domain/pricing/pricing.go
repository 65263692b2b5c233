// Package pricing implementa la regla de precio de citas: 20% de
// descuento cuando la fecha de referencia coincide con el cumpleaños
// del cliente. Toda la aritmética de dinero es decimal exacta.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

var birthdayDiscountRate = decimal.RequireFromString("0.20")

type Quote struct {
	Final    decimal.Decimal `json:"final_price"`
	Discount decimal.Decimal `json:"discount"`
	Birthday bool            `json:"birthday"`
}

// ForService calcula el precio que debe un cliente por un servicio.
// Sin fecha de nacimiento registrada nunca aplica descuento (y no es error).
// El descuento se calcula como base * 0.20 y se resta una sola vez.
func ForService(birthDate *time.Time, basePrice decimal.Decimal, ref time.Time) Quote {
	q := Quote{
		Final:    basePrice,
		Discount: decimal.Zero,
	}

	if birthDate == nil {
		return q
	}
	if birthDate.Month() != ref.Month() || birthDate.Day() != ref.Day() {
		return q
	}

	q.Birthday = true
	q.Discount = basePrice.Mul(birthdayDiscountRate)
	q.Final = basePrice.Sub(q.Discount)
	return q
}
