// Package inventory define los tipos de movimiento del libro de
// inventario y la única operación que traduce un movimiento a un cambio
// de stock.
package inventory

import "github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"

type MovementType string

const (
	MovementIn  MovementType = "entrada"
	MovementOut MovementType = "salida"
	// MovementAdjust se registra en el libro pero no altera el stock:
	// una corrección con efecto neto debe expresarse como entrada o salida.
	MovementAdjust MovementType = "ajuste"
)

func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(s) {
	case MovementIn, MovementOut, MovementAdjust:
		return MovementType(s), nil
	}
	return "", httperr.ErrBusiness("invalid_movement_type")
}

// Apply es el único punto que muta stock a partir de un movimiento.
// Devuelve el stock resultante y el delta aplicado (cero para ajustes).
func Apply(currentStock int, t MovementType, quantity int) (newStock int, delta int) {
	switch t {
	case MovementIn:
		return currentStock + quantity, quantity
	case MovementOut:
		return currentStock - quantity, -quantity
	default:
		return currentStock, 0
	}
}
