package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ContextRequestID = "requestID"

// RequestID asigna un identificador a cada request. Se devuelve en el
// header de la respuesta y viaja con los eventos de auditoría.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ContextRequestID, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func CurrentRequestID(c *gin.Context) string {
	if v, ok := c.Get(ContextRequestID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
