package reports

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

func TestWriteInventoryCSV(t *testing.T) {
	products := []models.Product{
		{
			Name:         "Shampoo Reparador",
			Category:     "champu",
			CostPrice:    decimal.RequireFromString("3.50"),
			SalePrice:    decimal.RequireFromString("7.9"),
			CurrentStock: 12,
			MinimumStock: 5,
			Supplier:     &models.Supplier{CompanyName: "Distribuidora Sur"},
			Status:       models.StatusActive,
		},
		{
			Name:         "Esmalte Rojo",
			Category:     "laca",
			CostPrice:    decimal.RequireFromString("1.00"),
			SalePrice:    decimal.RequireFromString("2.50"),
			CurrentStock: 0,
			MinimumStock: 5,
			Status:       models.StatusInactive,
		},
	}

	var buf bytes.Buffer
	if err := WriteInventoryCSV(&buf, products); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != 8 {
		t.Fatalf("expected 8 columns, got %d", len(rows[0]))
	}

	first := rows[1]
	if first[0] != "Shampoo Reparador" || first[3] != "7.90" || first[6] != "Distribuidora Sur" {
		t.Fatalf("unexpected first row: %v", first)
	}

	// Sin proveedor la columna queda vacía.
	second := rows[2]
	if second[6] != "" || second[7] != models.StatusInactive {
		t.Fatalf("unexpected second row: %v", second)
	}
}
