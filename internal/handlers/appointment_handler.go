package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httpresp"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/middleware"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/roles"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/timezone"
	ucAppointment "github.com/SabrinAmbar14/clinica-estetica-api/internal/usecase/appointment"
)

type AppointmentHandler struct {
	db *gorm.DB

	register      *ucAppointment.RegisterAppointment
	registerBatch *ucAppointment.RegisterMultiple
	consume       *ucAppointment.ConsumeProduct
	transition    *ucAppointment.TransitionAppointment
	quote         *ucAppointment.Quote
}

func NewAppointmentHandler(
	db *gorm.DB,
	register *ucAppointment.RegisterAppointment,
	registerBatch *ucAppointment.RegisterMultiple,
	consume *ucAppointment.ConsumeProduct,
	transition *ucAppointment.TransitionAppointment,
	quote *ucAppointment.Quote,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:            db,
		register:      register,
		registerBatch: registerBatch,
		consume:       consume,
		transition:    transition,
		quote:         quote,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ClientID    uint             `json:"client_id" binding:"required"`
	ServiceID   uint             `json:"service_id" binding:"required"`
	StaffID     uint             `json:"staff_id" binding:"required"`
	ScheduledAt time.Time        `json:"scheduled_at" binding:"required"`
	Notes       string           `json:"notes"`
	FinalPrice  *decimal.Decimal `json:"final_price"`
}

type CreateBatchRequest struct {
	ClientID   uint   `json:"client_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required,min=1"`
	StaffID    uint   `json:"staff_id"`
	// PerformedAt por defecto es ahora: el caso típico es dejar
	// registrados servicios recién realizados en recepción.
	PerformedAt *time.Time `json:"performed_at"`
	Notes       string     `json:"notes"`
}

type ConsumeProductRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CompleteAppointmentRequest struct {
	RealDurationMinutes int `json:"real_duration_minutes"`
}

type QuoteRequest struct {
	ClientID      uint   `json:"client_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	ReferenceDate string `json:"reference_date"`
	ProductIDs    []uint `json:"product_ids"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.register.Execute(c.Request.Context(), ucAppointment.RegisterAppointmentInput{
		ClientID:    req.ClientID,
		ServiceID:   req.ServiceID,
		StaffID:     req.StaffID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
		FinalPrice:  req.FinalPrice,
		ActorID:     middleware.CurrentUserID(c),
		RequestID:   middleware.CurrentRequestID(c),
	})
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// CreateBatch registra varios servicios ya realizados en una sola
// llamada: una cita completada por servicio.
func (h *AppointmentHandler) CreateBatch(c *gin.Context) {
	var req CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	performedAt := timezone.Now()
	if req.PerformedAt != nil {
		performedAt = *req.PerformedAt
	}

	created, err := h.registerBatch.Execute(c.Request.Context(), ucAppointment.RegisterMultipleInput{
		ClientID:    req.ClientID,
		ServiceIDs:  req.ServiceIDs,
		StaffID:     req.StaffID,
		PerformedAt: performedAt,
		Notes:       req.Notes,
		ActorID:     middleware.CurrentUserID(c),
		RequestID:   middleware.CurrentRequestID(c),
	})
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, created)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Appointment{}).
		Preload("Client").
		Preload("Service").
		Preload("Staff")

	// Alcance por rol: estilistas ven solo sus citas, recepcionistas las
	// próximas, administradores todo.
	switch middleware.CurrentRole(c) {
	case roles.Stylist:
		q = q.Joins("JOIN staff_members ON staff_members.id = appointments.staff_id").
			Where("staff_members.user_id = ?", middleware.CurrentUserID(c))
	case roles.Receptionist:
		q = q.Where("scheduled_at >= ?", timezone.Today())
	}

	date, ok := parseDateQuery(c, "date")
	if !ok {
		return
	}
	if date != nil {
		q = q.Where("scheduled_at >= ? AND scheduled_at < ?", *date, date.AddDate(0, 0, 1))
	}

	if status := c.Query("status"); status != "" {
		q = q.Where("appointments.status = ?", status)
	}

	var appointments []models.Appointment
	if err := q.Order("scheduled_at DESC").Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "No se pudieron listar las citas.")
		return
	}

	httpresp.List(c, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Client").
		Preload("Service").
		Preload("Staff").
		Preload("ConsumedProducts").
		Preload("ConsumedProducts.Product").
		First(&ap, id).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Cita no encontrada.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ConsumeProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ConsumeProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	line, err := h.consume.Execute(c.Request.Context(), ucAppointment.ConsumeProductInput{
		AppointmentID: id,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		ActorID:       middleware.CurrentUserID(c),
		RequestID:     middleware.CurrentRequestID(c),
	})
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, line)
}

func (h *AppointmentHandler) Start(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ap, err := h.transition.Start(
		c.Request.Context(), id,
		middleware.CurrentUserID(c), middleware.CurrentRequestID(c),
	)
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.transition.Complete(
		c.Request.Context(), id, req.RealDurationMinutes,
		middleware.CurrentUserID(c), middleware.CurrentRequestID(c),
	)
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ap, err := h.transition.Cancel(
		c.Request.Context(), id,
		middleware.CurrentUserID(c), middleware.CurrentRequestID(c),
	)
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// Quote cotiza un servicio sin persistir nada.
func (h *AppointmentHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var refDate *time.Time
	if req.ReferenceDate != "" {
		t, err := time.Parse("2006-01-02", req.ReferenceDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Formato de fecha esperado: AAAA-MM-DD.")
			return
		}
		refDate = &t
	}

	result, err := h.quote.Execute(c.Request.Context(), ucAppointment.QuoteInput{
		ClientID:      req.ClientID,
		ServiceID:     req.ServiceID,
		ReferenceDate: refDate,
		ProductIDs:    req.ProductIDs,
	})
	if err != nil {
		h.writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, result)
}

func (h *AppointmentHandler) writeBusinessError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"),
		httperr.IsBusiness(err, "client_not_found"),
		httperr.IsBusiness(err, "service_not_found"),
		httperr.IsBusiness(err, "staff_not_found"),
		httperr.IsBusiness(err, "product_not_found"):
		httperr.Business(c, http.StatusNotFound, err)
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.Business(c, http.StatusConflict, err)
	default:
		httperr.Business(c, http.StatusBadRequest, err)
	}
}
