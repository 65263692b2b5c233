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

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	Category        string          `json:"category" binding:"required"`
	BasePrice       decimal.Decimal `json:"base_price" binding:"required"`
	DurationMinutes int             `json:"duration_minutes" binding:"required,min=1"`
}

type UpdateServiceRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Category        *string          `json:"category,omitempty"`
	BasePrice       *decimal.Decimal `json:"base_price,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Service{})

	if middleware.CurrentRole(c) != roles.Administrator {
		q = q.Where("status = ?", models.StatusActive)
	}

	switch c.Query("search_by") {
	case "nombre":
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(c.Query("term"))+"%")
	case "categoria":
		q = q.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(c.Query("term"))+"%")
	case "precio":
		if maxPrice, err := decimal.NewFromString(c.Query("term")); err == nil {
			q = q.Where("base_price <= ?", maxPrice)
		}
	}

	var services []models.Service
	if err := q.Order("name").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "No se pudieron listar los servicios.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	category := strings.ToLower(req.Category)
	if !slices.Contains(models.ServiceCategories, category) {
		httperr.BadRequest(c, "invalid_category", "Categoría de servicio desconocida.")
		return
	}

	if !req.BasePrice.IsPositive() {
		httperr.BadRequest(c, "invalid_price", "El precio base debe ser positivo.")
		return
	}

	svc := models.Service{
		Name:            req.Name,
		Description:     req.Description,
		Category:        category,
		BasePrice:       req.BasePrice,
		DurationMinutes: req.DurationMinutes,
		Status:          models.StatusActive,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "No se pudo crear el servicio.")
		return
	}

	h.dispatch(c, "crear_servicio", svc.ID, "Servicio "+svc.Name+" creado")
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Category != nil {
		category := strings.ToLower(*req.Category)
		if !slices.Contains(models.ServiceCategories, category) {
			httperr.BadRequest(c, "invalid_category", "Categoría de servicio desconocida.")
			return
		}
		svc.Category = category
	}
	if req.BasePrice != nil {
		if !req.BasePrice.IsPositive() {
			httperr.BadRequest(c, "invalid_price", "El precio base debe ser positivo.")
			return
		}
		svc.BasePrice = *req.BasePrice
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "No se pudo actualizar el servicio.")
		return
	}

	h.dispatch(c, "modificar_servicio", svc.ID, "Servicio "+svc.Name+" modificado")
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	svc.Status = models.StatusInactive
	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "No se pudo desactivar el servicio.")
		return
	}

	h.dispatch(c, "desactivar_servicio", svc.ID, "Servicio "+svc.Name+" dado de baja")
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	if !guardHardDelete(c, svc.Status) {
		return
	}

	if err := h.db.Delete(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "No se pudo eliminar el servicio.")
		return
	}

	h.dispatch(c, "eliminar_servicio", id, "Servicio "+svc.Name+" eliminado")
	httpresp.OK(c, gin.H{"deleted": id})
}

func (h *ServiceHandler) dispatch(c *gin.Context, action string, entityID uint, description string) {
	actorID := middleware.CurrentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:      &actorID,
		Action:      action,
		Entity:      "Service",
		EntityID:    &entityID,
		Description: description,
		RequestID:   middleware.CurrentRequestID(c),
	})
}
