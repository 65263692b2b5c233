package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httpresp"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/middleware"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/validators"
)

type SupplierHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewSupplierHandler(db *gorm.DB, audit *audit.Dispatcher) *SupplierHandler {
	return &SupplierHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateSupplierRequest struct {
	RUT              string `json:"rut" binding:"required"`
	CompanyName      string `json:"company_name" binding:"required"`
	ContactName      string `json:"contact_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone" binding:"required"`
	Address          string `json:"address"`
	SuppliedProducts string `json:"supplied_products"`
}

type UpdateSupplierRequest struct {
	CompanyName      *string `json:"company_name,omitempty"`
	ContactName      *string `json:"contact_name,omitempty"`
	Email            *string `json:"email,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Address          *string `json:"address,omitempty"`
	SuppliedProducts *string `json:"supplied_products,omitempty"`
}

// --------- Handlers ---------

func (h *SupplierHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Supplier{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var suppliers []models.Supplier
	if err := q.Order("company_name").Find(&suppliers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_suppliers", "No se pudieron listar los proveedores.")
		return
	}

	httpresp.List(c, suppliers)
}

// Get incluye la cantidad de productos activos asociados al proveedor.
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var supplier models.Supplier
	if err := h.db.First(&supplier, id).Error; err != nil {
		httperr.NotFound(c, "supplier_not_found", "Proveedor no encontrado.")
		return
	}

	var productCount int64
	h.db.Model(&models.Product{}).
		Where("supplier_id = ? AND status = ?", supplier.ID, models.StatusActive).
		Count(&productCount)

	httpresp.OK(c, gin.H{
		"supplier":      supplier,
		"product_count": productCount,
	})
}

func (h *SupplierHandler) Create(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validators.IsValidRUT(req.RUT) {
		httperr.BadRequest(c, "invalid_rut", "El RUT debe tener el formato: 12345678-9")
		return
	}

	var count int64
	h.db.Model(&models.Supplier{}).Where("rut = ?", req.RUT).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "rut_taken", "Este RUT ya está registrado.")
		return
	}

	supplier := models.Supplier{
		RUT:              req.RUT,
		CompanyName:      req.CompanyName,
		ContactName:      req.ContactName,
		Email:            req.Email,
		Phone:            req.Phone,
		Address:          req.Address,
		SuppliedProducts: req.SuppliedProducts,
		Status:           models.StatusActive,
	}

	if err := h.db.Create(&supplier).Error; err != nil {
		httperr.Internal(c, "failed_to_create_supplier", "No se pudo crear el proveedor.")
		return
	}

	h.dispatch(c, "crear_proveedor", supplier.ID, "Proveedor "+supplier.CompanyName+" creado")
	httpresp.Created(c, supplier)
}

func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var supplier models.Supplier
	if err := h.db.First(&supplier, id).Error; err != nil {
		httperr.NotFound(c, "supplier_not_found", "Proveedor no encontrado.")
		return
	}

	var req UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.CompanyName != nil {
		supplier.CompanyName = *req.CompanyName
	}
	if req.ContactName != nil {
		supplier.ContactName = *req.ContactName
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.SuppliedProducts != nil {
		supplier.SuppliedProducts = *req.SuppliedProducts
	}

	if err := h.db.Save(&supplier).Error; err != nil {
		httperr.Internal(c, "failed_to_update_supplier", "No se pudo actualizar el proveedor.")
		return
	}

	h.dispatch(c, "modificar_proveedor", supplier.ID, "Proveedor "+supplier.CompanyName+" modificado")
	httpresp.OK(c, supplier)
}

func (h *SupplierHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var supplier models.Supplier
	if err := h.db.First(&supplier, id).Error; err != nil {
		httperr.NotFound(c, "supplier_not_found", "Proveedor no encontrado.")
		return
	}

	supplier.Status = models.StatusInactive
	if err := h.db.Save(&supplier).Error; err != nil {
		httperr.Internal(c, "failed_to_update_supplier", "No se pudo desactivar el proveedor.")
		return
	}

	h.dispatch(c, "desactivar_proveedor", supplier.ID, "Proveedor "+supplier.CompanyName+" desactivado")
	httpresp.OK(c, supplier)
}

func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var supplier models.Supplier
	if err := h.db.First(&supplier, id).Error; err != nil {
		httperr.NotFound(c, "supplier_not_found", "Proveedor no encontrado.")
		return
	}

	if !guardHardDelete(c, supplier.Status) {
		return
	}

	if err := h.db.Delete(&supplier).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_supplier", "No se pudo eliminar el proveedor.")
		return
	}

	h.dispatch(c, "eliminar_proveedor", id, "Proveedor "+supplier.CompanyName+" eliminado")
	httpresp.OK(c, gin.H{"deleted": id})
}

func (h *SupplierHandler) dispatch(c *gin.Context, action string, entityID uint, description string) {
	actorID := middleware.CurrentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:      &actorID,
		Action:      action,
		Entity:      "Supplier",
		EntityID:    &entityID,
		Description: description,
		RequestID:   middleware.CurrentRequestID(c),
	})
}
