package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httpresp"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/middleware"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var user models.User
	if err := h.db.Preload("Profile").First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	httpresp.OK(c, gin.H{
		"user": user,
		"role": middleware.CurrentRole(c),
	})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword permite al usuario autenticado cambiar su propia clave.
// Exige la clave vigente; los tokens ya emitidos siguen siendo válidos.
func (h *MeHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	userID := middleware.CurrentUserID(c)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuario no encontrado.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		httperr.BadRequest(c, "invalid_current_password", "La contraseña actual no es correcta.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "No se pudo actualizar la contraseña.")
		return
	}

	user.PasswordHash = string(hash)
	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_password", "No se pudo actualizar la contraseña.")
		return
	}

	httpresp.OK(c, gin.H{"message": "Contraseña actualizada."})
}
