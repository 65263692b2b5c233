package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httpresp"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

// AuditLogsHandler expone el historial de auditoría, solo lectura y solo
// para administradores.
type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	q := h.db.Model(&models.AuditLog{})

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if userID := c.Query("user_id"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}
	if to != nil {
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	_, limit, offset := parsePagination(c)

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "No se pudo listar la auditoría.")
		return
	}

	httpresp.List(c, logs)
}
