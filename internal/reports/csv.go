package reports

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

// WriteInventoryCSV vuelca el conjunto filtrado de productos como CSV
// compatible con Excel, una fila por producto.
func WriteInventoryCSV(w io.Writer, products []models.Product) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Nombre", "Categoria", "Precio Costo", "Precio Venta",
		"Stock Actual", "Stock Minimo", "Proveedor", "Estado",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, p := range products {
		supplier := ""
		if p.Supplier != nil {
			supplier = p.Supplier.CompanyName
		}
		row := []string{
			p.Name,
			p.Category,
			p.CostPrice.StringFixed(2),
			p.SalePrice.StringFixed(2),
			strconv.Itoa(p.CurrentStock),
			strconv.Itoa(p.MinimumStock),
			supplier,
			p.Status,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
