package handlers

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httpresp"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/middleware"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/roles"
)

type ProductHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewProductHandler(db *gorm.DB, audit *audit.Dispatcher) *ProductHandler {
	return &ProductHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	Category     string          `json:"category" binding:"required"`
	CostPrice    decimal.Decimal `json:"cost_price" binding:"required"`
	SalePrice    decimal.Decimal `json:"sale_price" binding:"required"`
	CurrentStock int             `json:"current_stock" binding:"min=0"`
	MinimumStock *int            `json:"minimum_stock"`
	SupplierID   *uint           `json:"supplier_id"`
}

type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Category     *string          `json:"category,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	SalePrice    *decimal.Decimal `json:"sale_price,omitempty"`
	MinimumStock *int             `json:"minimum_stock,omitempty"`
	SupplierID   *uint            `json:"supplier_id,omitempty"`
}

// ProductView agrega los derivados de stock a la respuesta.
type ProductView struct {
	models.Product
	EstaBajoMinimo   bool            `json:"esta_bajo_minimo"`
	DiferenciaMinima int             `json:"diferencia_minima"`
	MargenGanancia   decimal.Decimal `json:"margen_ganancia"`
}

func toProductView(p models.Product) ProductView {
	return ProductView{
		Product:          p,
		EstaBajoMinimo:   p.BelowMinimum(),
		DiferenciaMinima: p.MinimumShortfall(),
		MargenGanancia:   p.ProfitMarginPct(),
	}
}

func toProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	return views
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Product{}).Preload("Supplier")

	// Los no administradores solo ven productos activos.
	if middleware.CurrentRole(c) != roles.Administrator {
		q = q.Where("status = ?", models.StatusActive)
	}

	switch c.Query("search_by") {
	case "nombre":
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(c.Query("term"))+"%")
	case "categoria":
		q = q.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(c.Query("term"))+"%")
	case "bajo_minimo":
		q = q.Where("current_stock <= minimum_stock AND status = ?", models.StatusActive)
	}

	var products []models.Product
	if err := q.Order("name").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "No se pudieron listar los productos.")
		return
	}

	httpresp.List(c, toProductViews(products))
}

// LowStock lista los productos activos en o bajo su stock mínimo.
func (h *ProductHandler) LowStock(c *gin.Context) {
	var products []models.Product
	if err := h.db.Preload("Supplier").
		Where("current_stock <= minimum_stock AND status = ?", models.StatusActive).
		Order("current_stock").
		Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "No se pudieron listar los productos.")
		return
	}

	httpresp.List(c, toProductViews(products))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	category := strings.ToLower(req.Category)
	if !slices.Contains(models.ProductCategories, category) {
		httperr.BadRequest(c, "invalid_category", "Categoría de producto desconocida.")
		return
	}

	if !req.SalePrice.GreaterThan(req.CostPrice) {
		httperr.BadRequest(c, "sale_price_not_above_cost", "El precio de venta debe ser mayor al precio de costo.")
		return
	}

	minimum := 5
	if req.MinimumStock != nil {
		if *req.MinimumStock < 0 {
			httperr.BadRequest(c, "invalid_minimum_stock", "El stock mínimo no puede ser negativo.")
			return
		}
		minimum = *req.MinimumStock
	}

	product := models.Product{
		Name:         req.Name,
		Description:  req.Description,
		Category:     category,
		CostPrice:    req.CostPrice,
		SalePrice:    req.SalePrice,
		CurrentStock: req.CurrentStock,
		MinimumStock: minimum,
		SupplierID:   req.SupplierID,
		Status:       models.StatusActive,
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "No se pudo crear el producto.")
		return
	}

	h.dispatch(c, "crear_producto", product.ID, "Producto "+product.Name+" creado")
	httpresp.Created(c, toProductView(product))
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		httperr.NotFound(c, "product_not_found", "Producto no encontrado.")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Category != nil {
		category := strings.ToLower(*req.Category)
		if !slices.Contains(models.ProductCategories, category) {
			httperr.BadRequest(c, "invalid_category", "Categoría de producto desconocida.")
			return
		}
		product.Category = category
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.SalePrice != nil {
		product.SalePrice = *req.SalePrice
	}
	if req.MinimumStock != nil {
		if *req.MinimumStock < 0 {
			httperr.BadRequest(c, "invalid_minimum_stock", "El stock mínimo no puede ser negativo.")
			return
		}
		product.MinimumStock = *req.MinimumStock
	}
	if req.SupplierID != nil {
		product.SupplierID = req.SupplierID
	}

	if !product.SalePrice.GreaterThan(product.CostPrice) {
		httperr.BadRequest(c, "sale_price_not_above_cost", "El precio de venta debe ser mayor al precio de costo.")
		return
	}

	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "No se pudo actualizar el producto.")
		return
	}

	h.dispatch(c, "modificar_producto", product.ID, "Producto "+product.Name+" modificado")
	httpresp.OK(c, toProductView(product))
}

func (h *ProductHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		httperr.NotFound(c, "product_not_found", "Producto no encontrado.")
		return
	}

	product.Status = models.StatusInactive
	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "No se pudo desactivar el producto.")
		return
	}

	h.dispatch(c, "desactivar_producto", product.ID, "Producto "+product.Name+" dado de baja")
	httpresp.OK(c, toProductView(product))
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var product models.Product
	if err := h.db.First(&product, id).Error; err != nil {
		httperr.NotFound(c, "product_not_found", "Producto no encontrado.")
		return
	}

	if !guardHardDelete(c, product.Status) {
		return
	}

	if err := h.db.Delete(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_product", "No se pudo eliminar el producto.")
		return
	}

	h.dispatch(c, "eliminar_producto", id, "Producto "+product.Name+" eliminado")
	httpresp.OK(c, gin.H{"deleted": id})
}

func (h *ProductHandler) dispatch(c *gin.Context, action string, entityID uint, description string) {
	actorID := middleware.CurrentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:      &actorID,
		Action:      action,
		Entity:      "Product",
		EntityID:    &entityID,
		Description: description,
		RequestID:   middleware.CurrentRequestID(c),
	})
}
