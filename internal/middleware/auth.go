package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/config"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/roles"
)

const (
	ContextUserID    = "userID"
	ContextUserRole  = "userRole"
	ContextSuperuser = "superuser"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		userID, ok := claims["sub"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}
		role, _ := claims["role"].(string)
		superuser, _ := claims["superuser"].(bool)

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, roles.Classify(superuser, role))
		c.Set(ContextSuperuser, superuser)

		c.Next()
	}
}

// CurrentUserID devuelve el actor autenticado del contexto.
func CurrentUserID(c *gin.Context) uint {
	return c.MustGet(ContextUserID).(uint)
}

// CurrentRole devuelve el rol ya clasificado (superuser incluido).
func CurrentRole(c *gin.Context) roles.Role {
	return c.MustGet(ContextUserRole).(roles.Role)
}
