package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httpresp"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/middleware"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/roles"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/timezone"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/validators"
)

type ClientHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateClientRequest struct {
	RUT       string `json:"rut" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birth_date"`
	Address   string `json:"address"`
}

type UpdateClientRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Client{})

	// Solo administradores ven clientes inactivos.
	if middleware.CurrentRole(c) != roles.Administrator {
		q = q.Where("status = ?", models.StatusActive)
	}

	switch c.Query("search_by") {
	case "nombre":
		like := "%" + strings.ToLower(c.Query("term")) + "%"
		q = q.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like)
	case "rut":
		q = q.Where("rut = ?", c.Query("term"))
	case "telefono":
		q = q.Where("phone LIKE ?", "%"+c.Query("term")+"%")
	}

	var clients []models.Client
	if err := q.Order("first_name, last_name").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "No se pudieron listar los clientes.")
		return
	}

	httpresp.List(c, clients)
}

// Birthdays lista los clientes activos que están de cumpleaños hoy.
func (h *ClientHandler) Birthdays(c *gin.Context) {
	today := timezone.Today()

	var clients []models.Client
	if err := h.db.
		Where("status = ?", models.StatusActive).
		Where("birth_date IS NOT NULL").
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "No se pudieron listar los clientes.")
		return
	}

	birthdays := clients[:0]
	for _, cl := range clients {
		if cl.IsBirthday(today) {
			birthdays = append(birthdays, cl)
		}
	}

	httpresp.List(c, birthdays)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validators.IsValidRUT(req.RUT) {
		httperr.BadRequest(c, "invalid_rut", "El RUT debe tener el formato: 12345678-9")
		return
	}
	if !validators.IsValidPhone(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Formato de teléfono inválido.")
		return
	}

	var count int64
	h.db.Model(&models.Client{}).Where("rut = ?", req.RUT).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "rut_taken", "Este RUT ya está registrado.")
		return
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		t, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Formato de fecha esperado: AAAA-MM-DD.")
			return
		}
		birthDate = &t
	}

	client := models.Client{
		RUT:       req.RUT,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		BirthDate: birthDate,
		Address:   req.Address,
		Status:    models.StatusActive,
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "No se pudo crear el cliente.")
		return
	}

	h.dispatch(c, "crear_cliente", client.ID, "Cliente "+client.FullName()+" creado")
	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.FirstName != nil {
		client.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		client.LastName = *req.LastName
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		if !validators.IsValidPhone(*req.Phone) {
			httperr.BadRequest(c, "invalid_phone", "Formato de teléfono inválido.")
			return
		}
		client.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		t, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Formato de fecha esperado: AAAA-MM-DD.")
			return
		}
		client.BirthDate = &t
	}
	if req.Address != nil {
		client.Address = *req.Address
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "No se pudo actualizar el cliente.")
		return
	}

	h.dispatch(c, "modificar_cliente", client.ID, "Cliente "+client.FullName()+" modificado")
	httpresp.OK(c, client)
}

func (h *ClientHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
		return
	}

	client.Status = models.StatusInactive
	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "No se pudo desactivar el cliente.")
		return
	}

	h.dispatch(c, "desactivar_cliente", client.ID, "Cliente "+client.FullName()+" desactivado")
	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente no encontrado.")
		return
	}

	if !guardHardDelete(c, client.Status) {
		return
	}

	if err := h.db.Delete(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_client", "No se pudo eliminar el cliente.")
		return
	}

	h.dispatch(c, "eliminar_cliente", id, "Cliente "+client.FullName()+" eliminado")
	httpresp.OK(c, gin.H{"deleted": id})
}

func (h *ClientHandler) dispatch(c *gin.Context, action string, entityID uint, description string) {
	actorID := middleware.CurrentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:      &actorID,
		Action:      action,
		Entity:      "Client",
		EntityID:    &entityID,
		Description: description,
		RequestID:   middleware.CurrentRequestID(c),
	})
}
