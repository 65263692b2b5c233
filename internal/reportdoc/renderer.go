// Package reportdoc genera la versión imprimible (PDF) de los reportes.
// El renderer se inyecta como interfaz: si no hay uno configurado, la
// exportación falla con un mensaje accionable en vez de caerse.
package reportdoc

import "io"

type LowStockRow struct {
	Name         string
	CurrentStock int
	MinimumStock int
	Supplier     string
}

type Renderer interface {
	// RenderLowStock escribe el documento paginado de productos bajo
	// stock mínimo.
	RenderLowStock(w io.Writer, rows []LowStockRow) error
}
