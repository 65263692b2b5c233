package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/domain/inventory"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httpresp"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/middleware"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
	ucInventory "github.com/SabrinAmbar14/clinica-estetica-api/internal/usecase/inventory"
)

type InventoryHandler struct {
	db               *gorm.DB
	registerMovement *ucInventory.RegisterMovement
}

func NewInventoryHandler(
	db *gorm.DB,
	registerMovement *ucInventory.RegisterMovement,
) *InventoryHandler {
	return &InventoryHandler{
		db:               db,
		registerMovement: registerMovement,
	}
}

// --------- Requests ---------

type CreateMovementRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Reason    string `json:"reason" binding:"required"`
}

type AddStockRequest struct {
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Reason   string `json:"reason"`
}

// --------- Handlers ---------

func (h *InventoryHandler) CreateMovement(c *gin.Context) {
	var req CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	movement, err := h.registerMovement.Execute(c.Request.Context(), ucInventory.RegisterMovementInput{
		ProductID: req.ProductID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		ActorID:   middleware.CurrentUserID(c),
		RequestID: middleware.CurrentRequestID(c),
	})
	if err != nil {
		if httperr.IsBusiness(err, "product_not_found") {
			httperr.Business(c, http.StatusNotFound, err)
			return
		}
		httperr.Business(c, http.StatusBadRequest, err)
		return
	}

	httpresp.Created(c, movement)
}

// AddStock es el atajo de reposición: registra una entrada para el
// producto de la ruta.
func (h *InventoryHandler) AddStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "Reposición de stock"
	}

	movement, err := h.registerMovement.Execute(c.Request.Context(), ucInventory.RegisterMovementInput{
		ProductID: id,
		Type:      string(inventory.MovementIn),
		Quantity:  req.Quantity,
		Reason:    reason,
		ActorID:   middleware.CurrentUserID(c),
		RequestID: middleware.CurrentRequestID(c),
	})
	if err != nil {
		if httperr.IsBusiness(err, "product_not_found") {
			httperr.Business(c, http.StatusNotFound, err)
			return
		}
		httperr.Business(c, http.StatusBadRequest, err)
		return
	}

	httpresp.Created(c, movement)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	page, limit, offset := parsePagination(c)

	q := h.db.Model(&models.StockMovement{})

	if productID := c.Query("product_id"); productID != "" {
		q = q.Where("product_id = ?", productID)
	}
	if movType := c.Query("type"); movType != "" {
		q = q.Where("type = ?", movType)
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

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "movement_count_failed", "No se pudieron contar los movimientos.")
		return
	}

	var movements []models.StockMovement
	if err := q.Preload("Product").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&movements).Error; err != nil {
		httperr.Internal(c, "movement_list_failed", "No se pudieron listar los movimientos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":      page,
		"limit":     limit,
		"total":     total,
		"movements": movements,
	})
}
