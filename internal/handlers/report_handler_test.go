package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/reportdoc"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/roles"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/timezone"
)

func newReportRouter(t *testing.T, renderer reportdoc.Renderer) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newHandlerTestDB(t)
	h := NewReportHandler(db, audit.NewDispatcher(audit.New(db)), renderer)

	r := gin.New()
	r.Use(asUser(1, roles.Administrator))
	r.GET("/reports/inventory", h.Inventory)
	r.GET("/reports/inventory/export.csv", h.ExportInventoryCSV)
	r.GET("/reports/inventory/export.pdf", h.ExportLowStockPDF)
	r.GET("/reports/clients", h.Clients)
	r.GET("/reports/top-products", h.TopProducts)
	r.GET("/reports/history", h.History)
	return r, db
}

func seedReportProducts(t *testing.T, db *gorm.DB) {
	t.Helper()
	products := []models.Product{
		{
			Name: "Shampoo", Category: "champu",
			CostPrice: decimal.RequireFromString("2.00"), SalePrice: decimal.RequireFromString("4.00"),
			CurrentStock: 10, MinimumStock: 5, Status: models.StatusActive,
		},
		{
			Name: "Tinte Rubio", Category: "tinte",
			CostPrice: decimal.RequireFromString("3.00"), SalePrice: decimal.RequireFromString("6.00"),
			CurrentStock: 2, MinimumStock: 5, Status: models.StatusActive,
		},
		{
			Name: "Crema Vieja", Category: "crema",
			CostPrice: decimal.RequireFromString("1.00"), SalePrice: decimal.RequireFromString("2.00"),
			CurrentStock: 0, MinimumStock: 5, Status: models.StatusInactive,
		},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
}

func TestInventoryReport_StatsOverActiveSet(t *testing.T) {
	r, db := newReportRouter(t, nil)
	seedReportProducts(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/inventory", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp InventoryReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	// El producto inactivo queda fuera del alcance por defecto.
	if resp.Stats.TotalProducts != 2 {
		t.Fatalf("expected 2 products, got %d", resp.Stats.TotalProducts)
	}
	if resp.Stats.BelowMinimumCount != 1 {
		t.Fatalf("expected 1 below minimum, got %d", resp.Stats.BelowMinimumCount)
	}
	// 2.00*10 + 3.00*2
	if resp.Stats.InventoryValue.StringFixed(2) != "26.00" {
		t.Fatalf("expected inventory value 26.00, got %s", resp.Stats.InventoryValue.StringFixed(2))
	}
}

func TestInventoryReport_IncludeInactive(t *testing.T) {
	r, db := newReportRouter(t, nil)
	seedReportProducts(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/inventory?incluir_inactivos=true", nil)
	r.ServeHTTP(w, req)

	var resp InventoryReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Stats.TotalProducts != 3 {
		t.Fatalf("expected 3 products, got %d", resp.Stats.TotalProducts)
	}
}

func TestExportCSV_ReturnsAttachment(t *testing.T) {
	r, db := newReportRouter(t, nil)
	seedReportProducts(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/inventory/export.csv", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "attachment") {
		t.Fatalf("expected attachment disposition, got %q", w.Header().Get("Content-Disposition"))
	}
	if !strings.HasPrefix(w.Body.String(), "Nombre,Categoria,") {
		t.Fatalf("unexpected csv header: %s", w.Body.String())
	}
}

func TestExportPDF_NoRendererFailsActionably(t *testing.T) {
	r, db := newReportRouter(t, nil)
	seedReportProducts(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/inventory/export.pdf", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "pdf_renderer_unavailable") {
		t.Fatalf("expected pdf_renderer_unavailable, got %s", w.Body.String())
	}
}

func TestExportPDF_WithRenderer(t *testing.T) {
	r, db := newReportRouter(t, reportdoc.NewFPDFRenderer())
	seedReportProducts(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/inventory/export.pdf", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Fatalf("expected a pdf document, got %q", w.Body.String()[:16])
	}
}

func TestClientsReport_BirthdayMonth(t *testing.T) {
	r, db := newReportRouter(t, nil)

	month := timezone.Today().Month()
	thisMonth := time.Date(1990, month, 12, 0, 0, 0, 0, time.UTC)
	otherMonth := thisMonth.AddDate(0, 1, 0)

	clients := []models.Client{
		{FirstName: "Ana", LastName: "Rojas", RUT: "11111111-1", BirthDate: &thisMonth, Status: models.StatusActive},
		{FirstName: "Berta", LastName: "Soto", RUT: "22222222-2", BirthDate: &otherMonth, Status: models.StatusActive},
		{FirstName: "Carmen", LastName: "Luna", RUT: "33333333-3", Status: models.StatusActive},
	}
	for i := range clients {
		if err := db.Create(&clients[i]).Error; err != nil {
			t.Fatalf("seed client: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/clients?tipo=cumpleanos", nil)
	r.ServeHTTP(w, req)

	var resp ClientReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Clients) != 1 || resp.Clients[0].FirstName != "Ana" {
		t.Fatalf("expected only Ana in the birthday month, got %+v", resp.Clients)
	}
}

func TestTopProducts_OrdersByConsumption(t *testing.T) {
	r, db := newReportRouter(t, nil)
	seedReportProducts(t, db)

	movements := []models.StockMovement{
		{ProductID: 1, Type: "salida", Quantity: 3, Reason: "Consumo en cita #1"},
		{ProductID: 2, Type: "salida", Quantity: 5, Reason: "Consumo en cita #2"},
		{ProductID: 2, Type: "salida", Quantity: 2, Reason: "Consumo en cita #3"},
		{ProductID: 1, Type: "entrada", Quantity: 50, Reason: "Compra"},
	}
	for i := range movements {
		if err := db.Create(&movements[i]).Error; err != nil {
			t.Fatalf("seed movement: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/top-products?periodo=hoy", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp TopProductsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Products) != 2 {
		t.Fatalf("expected 2 consumed products, got %d", len(resp.Products))
	}
	// Solo salidas cuentan, y el más consumido va primero.
	if resp.Products[0].ProductID != 2 || resp.Products[0].TotalConsumed != 7 {
		t.Fatalf("unexpected top row: %+v", resp.Products[0])
	}
	if resp.Products[1].ProductID != 1 || resp.Products[1].TotalConsumed != 3 {
		t.Fatalf("unexpected second row: %+v", resp.Products[1])
	}
}

func TestTopProducts_InvertedCustomRange(t *testing.T) {
	r, _ := newReportRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/reports/top-products?periodo=personalizado&fecha_inicio=2026-05-10&fecha_fin=2026-05-01", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "invalid_date_range") {
		t.Fatalf("expected invalid_date_range, got %s", w.Body.String())
	}
}

func TestReportHistory_RecordsAndScopesByUser(t *testing.T) {
	r, db := newReportRouter(t, nil)
	seedReportProducts(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reports/inventory?tipo=bajo_minimo", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("generate report: expected 200, got %d", w.Code)
	}

	var records []models.ReportRecord
	if err := db.Order("id ASC").Find(&records).Error; err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(records))
	}
	if records[0].Type != models.ReportTypeInventory {
		t.Fatalf("expected type inventario, got %s", records[0].Type)
	}
	if records[0].UserID != 1 {
		t.Fatalf("expected record for user 1, got %d", records[0].UserID)
	}
	if !strings.Contains(records[0].Parameters, `"tipo":"bajo_minimo"`) {
		t.Fatalf("expected parameters to keep the filter, got %s", records[0].Parameters)
	}

	// El historial solo muestra los reportes del usuario autenticado.
	other := models.ReportRecord{Name: "Reporte ajeno", Type: models.ReportTypeClients, UserID: 99}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed foreign record: %v", err)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/reports/history", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("history: expected 200, got %d", w.Code)
	}

	var resp struct {
		Data  []models.ReportRecord `json:"data"`
		Total int                   `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected only own records, got %d", resp.Total)
	}
	if resp.Data[0].Type != models.ReportTypeInventory {
		t.Fatalf("unexpected record in history: %+v", resp.Data[0])
	}
}
