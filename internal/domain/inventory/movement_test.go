package inventory

import (
	"testing"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
)

func TestParseMovementType(t *testing.T) {
	for _, s := range []string{"entrada", "salida", "ajuste"} {
		mt, err := ParseMovementType(s)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", s, err)
		}
		if string(mt) != s {
			t.Fatalf("expected %q, got %q", s, mt)
		}
	}

	if _, err := ParseMovementType("devolucion"); !httperr.IsBusiness(err, "invalid_movement_type") {
		t.Fatalf("expected invalid_movement_type, got %v", err)
	}
}

func TestApply_InAndOut(t *testing.T) {
	newStock, delta := Apply(10, MovementIn, 4)
	if newStock != 14 || delta != 4 {
		t.Fatalf("entrada: expected (14, 4), got (%d, %d)", newStock, delta)
	}

	newStock, delta = Apply(newStock, MovementOut, 4)
	if newStock != 10 || delta != -4 {
		t.Fatalf("salida: expected (10, -4), got (%d, %d)", newStock, delta)
	}
}

func TestApply_OutCanGoNegative(t *testing.T) {
	newStock, delta := Apply(2, MovementOut, 5)
	if newStock != -3 || delta != -5 {
		t.Fatalf("expected (-3, -5), got (%d, %d)", newStock, delta)
	}
}

func TestApply_AdjustIsRecordOnly(t *testing.T) {
	newStock, delta := Apply(7, MovementAdjust, 99)
	if newStock != 7 || delta != 0 {
		t.Fatalf("ajuste must not touch stock, got (%d, %d)", newStock, delta)
	}
}
