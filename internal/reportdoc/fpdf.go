package reportdoc

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

type FPDFRenderer struct{}

func NewFPDFRenderer() *FPDFRenderer {
	return &FPDFRenderer{}
}

func (r *FPDFRenderer) RenderLowStock(w io.Writer, rows []LowStockRow) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Reporte de Inventario - Stock Bajo", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		supplier := row.Supplier
		if supplier == "" {
			supplier = "-"
		}
		line := fmt.Sprintf(
			"%s | Stock: %d | Min: %d | Proveedor: %s",
			row.Name, row.CurrentStock, row.MinimumStock, supplier,
		)
		if len(line) > 110 {
			line = line[:110]
		}
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return err
	}
	return pdf.Error()
}
