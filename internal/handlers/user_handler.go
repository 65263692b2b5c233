package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httpresp"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/middleware"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

// UserHandler administra cuentas; todas sus rutas son solo para
// administradores. Las cuentas no se eliminan: se desactivan.
type UserHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewUserHandler(db *gorm.DB, audit *audit.Dispatcher) *UserHandler {
	return &UserHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=8"`

	Role      string `json:"role" binding:"required,oneof=administrador recepcionista estilista"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	BirthDate string `json:"birth_date"`
	HireDate  string `json:"hire_date"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`

	Role    *string `json:"role" binding:"omitempty,oneof=administrador recepcionista estilista"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

// --------- Handlers ---------

func (h *UserHandler) List(c *gin.Context) {
	q := h.db.Model(&models.User{}).Preload("Profile")

	if c.Query("incluir_inactivos") != "true" {
		q = q.Where("active = ?", true)
	}
	if role := c.Query("role"); role != "" {
		q = q.Joins("JOIN user_profiles ON user_profiles.user_id = users.id").
			Where("user_profiles.role = ?", role)
	}

	var users []models.User
	if err := q.Order("username ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "No se pudieron listar los usuarios.")
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.Preload("Profile").First(&user, id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	httpresp.OK(c, user)
}

// Create crea la cuenta y su perfil en la misma transacción: nunca queda
// un usuario sin perfil.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	var count int64
	h.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "username_taken", "Ya existe un usuario con ese nombre.")
		return
	}

	birthDate, ok := parseOptionalDate(c, req.BirthDate, "birth_date")
	if !ok {
		return
	}
	hireDate, ok := parseOptionalDate(c, req.HireDate, "hire_date")
	if !ok {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	user := models.User{
		Username:     username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Active:       true,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.UserProfile{
			UserID:    user.ID,
			Role:      req.Role,
			Phone:     req.Phone,
			Address:   req.Address,
			BirthDate: birthDate,
			HireDate:  hireDate,
			Active:    true,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		user.Profile = &profile
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_create_user", "No se pudo crear el usuario.")
		return
	}

	h.dispatch(c, "crear_usuario", user.ID, "Usuario "+user.Username+" creado con rol "+req.Role)
	httpresp.Created(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.Preload("Profile").First(&user, id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			httperr.Internal(c, "internal_error", "Error interno.")
			return
		}
		user.PasswordHash = string(hash)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if user.Profile != nil {
			if req.Role != nil {
				user.Profile.Role = *req.Role
			}
			if req.Phone != nil {
				user.Profile.Phone = *req.Phone
			}
			if req.Address != nil {
				user.Profile.Address = *req.Address
			}
			return tx.Save(user.Profile).Error
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_user", "No se pudo actualizar el usuario.")
		return
	}

	h.dispatch(c, "modificar_usuario", user.ID, "Usuario "+user.Username+" modificado")
	httpresp.OK(c, user)
}

// Deactivate apaga la cuenta sin borrarla; el historial de auditoría y
// las citas asociadas al colaborador quedan intactos.
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if id == middleware.CurrentUserID(c) {
		httperr.Conflict(c, "cannot_deactivate_self", "No puede desactivar su propia cuenta.")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	user.Active = false
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "No se pudo actualizar el usuario.")
		return
	}

	h.dispatch(c, "desactivar_usuario", user.ID, "Usuario "+user.Username+" desactivado")
	httpresp.OK(c, user)
}

func (h *UserHandler) dispatch(c *gin.Context, action string, entityID uint, description string) {
	actorID := middleware.CurrentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:      &actorID,
		Action:      action,
		Entity:      "User",
		EntityID:    &entityID,
		Description: description,
		RequestID:   middleware.CurrentRequestID(c),
	})
}

func parseOptionalDate(c *gin.Context, value, field string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Formato de fecha esperado para "+field+": AAAA-MM-DD.")
		return nil, false
	}
	return &t, true
}
