package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/config"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))

	var user models.User
	if err := h.db.Preload("Profile").
		Where("username = ?", username).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "invalid_credentials", "Usuario o contraseña incorrectos.")
			return
		}
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	if !user.Active {
		httperr.Unauthorized(c, "user_inactive", "La cuenta está desactivada.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Usuario o contraseña incorrectos.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "No se pudo generar el token.")
		return
	}

	role := ""
	if user.Profile != nil {
		role = user.Profile.Role
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"role":      role,
			"superuser": user.Superuser,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	role := ""
	if user.Profile != nil {
		role = user.Profile.Role
	}

	claims := jwt.MapClaims{
		"sub":       user.ID,
		"role":      role,
		"superuser": user.Superuser,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
