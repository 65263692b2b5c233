package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/roles"
)

// RequireRole corta la request con 403 cuando el actor no tiene ninguno
// de los roles requeridos. La denegación es total: la operación no corre.
func RequireRole(required ...roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !roles.Allowed(CurrentRole(c), required...) {
			httperr.Forbidden(c, "forbidden", "No tiene permisos para esta operación.")
			c.Abort()
			return
		}
		c.Next()
	}
}
