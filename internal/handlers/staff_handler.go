package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httpresp"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/middleware"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/validators"
)

type StaffHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewStaffHandler(db *gorm.DB, audit *audit.Dispatcher) *StaffHandler {
	return &StaffHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateStaffRequest struct {
	RUT       string          `json:"rut" binding:"required"`
	FirstName string          `json:"first_name" binding:"required"`
	LastName  string          `json:"last_name" binding:"required"`
	Email     string          `json:"email" binding:"required,email"`
	Phone     string          `json:"phone" binding:"required"`
	Position  string          `json:"position" binding:"required,oneof=estilista recepcionista administrador"`
	HireDate  string          `json:"hire_date" binding:"required"`
	Salary    decimal.Decimal `json:"salary" binding:"required"`
	Address   string          `json:"address"`
	UserID    *uint           `json:"user_id"`
}

type UpdateStaffRequest struct {
	FirstName *string          `json:"first_name,omitempty"`
	LastName  *string          `json:"last_name,omitempty"`
	Email     *string          `json:"email,omitempty"`
	Phone     *string          `json:"phone,omitempty"`
	Position  *string          `json:"position,omitempty"`
	Salary    *decimal.Decimal `json:"salary,omitempty"`
	Address   *string          `json:"address,omitempty"`
	UserID    *uint            `json:"user_id,omitempty"`
}

// --------- Handlers ---------

func (h *StaffHandler) List(c *gin.Context) {
	q := h.db.Model(&models.StaffMember{})

	if position := c.Query("position"); position != "" {
		q = q.Where("position = ?", position)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var staff []models.StaffMember
	if err := q.Order("first_name, last_name").Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "No se pudieron listar los colaboradores.")
		return
	}

	httpresp.List(c, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validators.IsValidRUT(req.RUT) {
		httperr.BadRequest(c, "invalid_rut", "El RUT debe tener el formato: 12345678-9")
		return
	}

	var count int64
	h.db.Model(&models.StaffMember{}).Where("rut = ?", req.RUT).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "rut_taken", "Este RUT ya está registrado.")
		return
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Formato de fecha esperado: AAAA-MM-DD.")
		return
	}

	staff := models.StaffMember{
		RUT:       req.RUT,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Position:  req.Position,
		HireDate:  hireDate,
		Salary:    req.Salary,
		Address:   req.Address,
		Status:    models.StatusActive,
		UserID:    req.UserID,
	}

	if err := h.db.Create(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_create_staff", "No se pudo crear el colaborador.")
		return
	}

	h.dispatch(c, "crear_colaborador", staff.ID, "Colaborador "+staff.FullName()+" creado")
	httpresp.Created(c, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var staff models.StaffMember
	if err := h.db.First(&staff, id).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Colaborador no encontrado.")
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.FirstName != nil {
		staff.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		staff.LastName = *req.LastName
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.Position != nil {
		staff.Position = *req.Position
	}
	if req.Salary != nil {
		staff.Salary = *req.Salary
	}
	if req.Address != nil {
		staff.Address = *req.Address
	}
	if req.UserID != nil {
		staff.UserID = req.UserID
	}

	if err := h.db.Save(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "No se pudo actualizar el colaborador.")
		return
	}

	h.dispatch(c, "modificar_colaborador", staff.ID, "Colaborador "+staff.FullName()+" modificado")
	httpresp.OK(c, staff)
}

func (h *StaffHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var staff models.StaffMember
	if err := h.db.First(&staff, id).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Colaborador no encontrado.")
		return
	}

	staff.Status = models.StatusInactive
	if err := h.db.Save(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "No se pudo desactivar el colaborador.")
		return
	}

	h.dispatch(c, "desactivar_colaborador", staff.ID, "Colaborador "+staff.FullName()+" desactivado")
	httpresp.OK(c, staff)
}

func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var staff models.StaffMember
	if err := h.db.First(&staff, id).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Colaborador no encontrado.")
		return
	}

	if !guardHardDelete(c, staff.Status) {
		return
	}

	if err := h.db.Delete(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_staff", "No se pudo eliminar el colaborador.")
		return
	}

	h.dispatch(c, "eliminar_colaborador", id, "Colaborador "+staff.FullName()+" eliminado")
	httpresp.OK(c, gin.H{"deleted": id})
}

func (h *StaffHandler) dispatch(c *gin.Context, action string, entityID uint, description string) {
	actorID := middleware.CurrentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:      &actorID,
		Action:      action,
		Entity:      "StaffMember",
		EntityID:    &entityID,
		Description: description,
		RequestID:   middleware.CurrentRequestID(c),
	})
}
