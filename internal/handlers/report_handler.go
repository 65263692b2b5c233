package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httpresp"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/middleware"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/reportdoc"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/reports"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/timezone"
)

type ReportHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher

	// renderer puede ser nil cuando el binario se compila sin soporte
	// PDF; en ese caso la exportación responde con un error accionable.
	renderer reportdoc.Renderer
}

func NewReportHandler(db *gorm.DB, audit *audit.Dispatcher, renderer reportdoc.Renderer) *ReportHandler {
	return &ReportHandler{db: db, audit: audit, renderer: renderer}
}

// --------- Inventario ---------

type InventoryReportStats struct {
	TotalProducts     int             `json:"total_products"`
	BelowMinimumCount int             `json:"below_minimum_count"`
	InventoryValue    decimal.Decimal `json:"inventory_value"`
}

type InventoryReportResponse struct {
	Products []ProductView        `json:"products"`
	Stats    InventoryReportStats `json:"stats"`
}

func (h *ReportHandler) inventoryProducts(c *gin.Context) ([]models.Product, bool) {
	q := h.db.Model(&models.Product{}).Preload("Supplier")

	if c.Query("incluir_inactivos") != "true" {
		q = q.Where("status = ?", models.StatusActive)
	}

	switch tipo := c.DefaultQuery("tipo", "general"); tipo {
	case "general":
		// todos los productos del alcance
	case "bajo_minimo":
		q = q.Where("current_stock <= minimum_stock")
	case "categoria":
		categoria := c.Query("categoria")
		if categoria == "" {
			httperr.BadRequest(c, "missing_category", "Indique la categoría a reportar.")
			return nil, false
		}
		q = q.Where("category = ?", categoria)
	case "proveedor":
		supplierID, err := strconv.ParseUint(c.Query("proveedor_id"), 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_supplier_id", "Indique un proveedor válido.")
			return nil, false
		}
		q = q.Where("supplier_id = ?", supplierID)
	default:
		httperr.BadRequest(c, "invalid_report_type", "Tipo de reporte desconocido: "+tipo)
		return nil, false
	}

	var products []models.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "No se pudo generar el reporte.")
		return nil, false
	}
	return products, true
}

func (h *ReportHandler) Inventory(c *gin.Context) {
	products, ok := h.inventoryProducts(c)
	if !ok {
		return
	}

	stats := InventoryReportStats{
		TotalProducts:  len(products),
		InventoryValue: decimal.Zero,
	}
	for i := range products {
		if products[i].BelowMinimum() {
			stats.BelowMinimumCount++
		}
		stats.InventoryValue = stats.InventoryValue.Add(products[i].InventoryValue())
	}

	h.recordReport(c, models.ReportTypeInventory, map[string]string{
		"tipo":              c.DefaultQuery("tipo", "general"),
		"incluir_inactivos": c.Query("incluir_inactivos"),
		"categoria":         c.Query("categoria"),
		"proveedor_id":      c.Query("proveedor_id"),
	})

	httpresp.OK(c, InventoryReportResponse{
		Products: toProductViews(products),
		Stats:    stats,
	})
}

func (h *ReportHandler) ExportInventoryCSV(c *gin.Context) {
	products, ok := h.inventoryProducts(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteInventoryCSV(&buf, products); err != nil {
		httperr.Internal(c, "failed_to_export", "No se pudo generar el archivo.")
		return
	}

	h.dispatch(c, "exportar_csv", fmt.Sprintf("Reporte de inventario exportado a CSV (%d productos)", len(products)))
	h.recordReport(c, models.ReportTypeInventory, map[string]string{
		"tipo":    c.DefaultQuery("tipo", "general"),
		"formato": "csv",
	})

	filename := "inventario_" + timezone.Today().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ReportHandler) ExportLowStockPDF(c *gin.Context) {
	if h.renderer == nil {
		httperr.ServiceUnavailable(c, "pdf_renderer_unavailable",
			"La exportación a PDF no está disponible en esta instalación.")
		return
	}

	var products []models.Product
	if err := h.db.Preload("Supplier").
		Where("status = ?", models.StatusActive).
		Where("current_stock <= minimum_stock").
		Order("name ASC").
		Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "No se pudo generar el reporte.")
		return
	}

	rows := make([]reportdoc.LowStockRow, 0, len(products))
	for _, p := range products {
		supplier := ""
		if p.Supplier != nil {
			supplier = p.Supplier.CompanyName
		}
		rows = append(rows, reportdoc.LowStockRow{
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
			MinimumStock: p.MinimumStock,
			Supplier:     supplier,
		})
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderLowStock(&buf, rows); err != nil {
		httperr.Internal(c, "failed_to_export", "No se pudo generar el PDF.")
		return
	}

	h.dispatch(c, "exportar_pdf", fmt.Sprintf("Reporte de stock bajo exportado a PDF (%d productos)", len(rows)))
	h.recordReport(c, models.ReportTypeLowStock, map[string]string{"formato": "pdf"})

	filename := "stock_bajo_" + timezone.Today().Format("2006-01-02") + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// --------- Clientes ---------

type ClientReportResponse struct {
	Clients []models.Client `json:"clients"`
	Total   int             `json:"total"`
}

func (h *ReportHandler) Clients(c *gin.Context) {
	q := h.db.Model(&models.Client{})

	tipo := c.DefaultQuery("tipo", "todos")
	cumpleanos := false
	switch tipo {
	case "activos":
		q = q.Where("status = ?", models.StatusActive)
	case "inactivos":
		q = q.Where("status = ?", models.StatusInactive)
	case "todos":
		// sin filtro
	case "cumpleanos":
		cumpleanos = true
	default:
		httperr.BadRequest(c, "invalid_report_type", "Tipo de reporte desconocido: "+tipo)
		return
	}

	order := "first_name ASC, last_name ASC"
	switch c.Query("orden") {
	case "reciente":
		order = "created_at DESC"
	case "estado":
		order = "status ASC, first_name ASC"
	}

	var clients []models.Client
	if err := q.Order(order).Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "No se pudo generar el reporte.")
		return
	}

	// Cumpleañeros del mes en curso; el mes se compara en memoria porque
	// la extracción de mes no es portable entre postgres y sqlite.
	if cumpleanos {
		month := timezone.Today().Month()
		filtered := clients[:0]
		for _, cl := range clients {
			if cl.BirthDate != nil && cl.BirthDate.Month() == month {
				filtered = append(filtered, cl)
			}
		}
		clients = filtered
	}

	h.recordReport(c, models.ReportTypeClients, map[string]string{
		"tipo":  tipo,
		"orden": c.Query("orden"),
	})

	httpresp.OK(c, ClientReportResponse{Clients: clients, Total: len(clients)})
}

// --------- Productos más consumidos ---------

type TopProductRow struct {
	ProductID     uint   `json:"product_id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	TotalConsumed int    `json:"total_consumed"`
}

type TopProductsResponse struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Products []TopProductRow `json:"products"`
}

func (h *ReportHandler) TopProducts(c *gin.Context) {
	period := reports.Period(c.DefaultQuery("periodo", string(reports.PeriodMonth)))

	customStart, ok := parseDateQuery(c, "fecha_inicio")
	if !ok {
		return
	}
	customEnd, ok := parseDateQuery(c, "fecha_fin")
	if !ok {
		return
	}

	from, to, err := reports.ResolvePeriod(period, customStart, customEnd, timezone.Today())
	if err != nil {
		httperr.Business(c, http.StatusBadRequest, err)
		return
	}

	limit := reports.ClampTopN(parseIntQuery(c, "limite"))

	var rows []TopProductRow
	if err := h.db.Model(&models.StockMovement{}).
		Select("stock_movements.product_id, products.name, products.category, SUM(stock_movements.quantity) AS total_consumed").
		Joins("JOIN products ON products.id = stock_movements.product_id").
		Where("stock_movements.type = ?", "salida").
		Where("stock_movements.created_at >= ? AND stock_movements.created_at < ?", from, to.AddDate(0, 0, 1)).
		Group("stock_movements.product_id, products.name, products.category").
		Order("total_consumed DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_build_report", "No se pudo generar el reporte.")
		return
	}

	h.recordReport(c, models.ReportTypeTopProducts, map[string]string{
		"periodo":      string(period),
		"fecha_inicio": c.Query("fecha_inicio"),
		"fecha_fin":    c.Query("fecha_fin"),
		"limite":       strconv.Itoa(limit),
	})

	httpresp.OK(c, TopProductsResponse{From: from, To: to, Products: rows})
}

// --------- Historial ---------

// recordReport deja constancia de cada reporte generado con los filtros
// usados, para poder repetir la consulta después.
func (h *ReportHandler) recordReport(c *gin.Context, reportType string, params map[string]string) {
	encoded, err := json.Marshal(params)
	if err != nil {
		encoded = []byte("{}")
	}
	record := models.ReportRecord{
		Name:       fmt.Sprintf("Reporte %s - %s", reportType, timezone.Today().Format("2006-01-02")),
		Type:       reportType,
		Parameters: string(encoded),
		UserID:     middleware.CurrentUserID(c),
	}
	if err := h.db.Create(&record).Error; err != nil {
		// El historial nunca bloquea la entrega del reporte.
		log.Printf("report history: could not save record: %v", err)
	}
}

func (h *ReportHandler) History(c *gin.Context) {
	var records []models.ReportRecord
	if err := h.db.
		Where("user_id = ?", middleware.CurrentUserID(c)).
		Order("created_at DESC").
		Limit(100).
		Find(&records).Error; err != nil {
		httperr.Internal(c, "failed_to_list_history", "No se pudo listar el historial.")
		return
	}
	httpresp.List(c, records)
}

func (h *ReportHandler) dispatch(c *gin.Context, action, description string) {
	actorID := middleware.CurrentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:      &actorID,
		Action:      action,
		Entity:      "Report",
		Description: description,
		RequestID:   middleware.CurrentRequestID(c),
	})
}

func parseIntQuery(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
