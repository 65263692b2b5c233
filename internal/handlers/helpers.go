package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "El identificador no es válido.")
		return 0, false
	}
	return uint(id), true
}

// guardHardDelete aplica la regla de borrado referencial: un registro
// activo no se elimina, primero hay que desactivarlo.
func guardHardDelete(c *gin.Context, status string) bool {
	if status == models.StatusActive {
		httperr.Conflict(
			c,
			"record_active_deactivate_first",
			"No se puede eliminar un registro activo. Primero desactívelo.",
		)
		return false
	}
	return true
}

func parseDateQuery(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Formato de fecha esperado: AAAA-MM-DD.")
		return nil, false
	}
	return &t, true
}

func parsePagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return page, limit, (page - 1) * limit
}
