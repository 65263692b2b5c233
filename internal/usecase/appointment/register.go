package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	domain "github.com/SabrinAmbar14/clinica-estetica-api/internal/domain/appointment"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/domain/pricing"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RegisterAppointmentInput struct {
	ClientID  uint
	ServiceID uint
	StaffID   uint

	ScheduledAt time.Time
	Notes       string

	// FinalPrice viene informado cuando el precio ya fue pactado; en ese
	// caso la regla de cumpleaños no corre y el valor queda congelado.
	FinalPrice *decimal.Decimal

	ActorID   uint
	RequestID string
}

// ======================================================
// USE CASE
// ======================================================

type RegisterAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRegisterAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RegisterAppointment {
	return &RegisterAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RegisterAppointment) Execute(
	ctx context.Context,
	in RegisterAppointmentInput,
) (*models.Appointment, error) {

	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if svc.Status != models.StatusActive {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	staff, err := uc.repo.GetStaffMember(ctx, in.StaffID)
	if err != nil {
		return nil, httperr.ErrBusiness("staff_not_found")
	}
	if staff.Status != models.StatusActive {
		return nil, httperr.ErrBusiness("staff_inactive")
	}

	ap := &models.Appointment{
		ClientID:    client.ID,
		ServiceID:   svc.ID,
		StaffID:     staff.ID,
		ScheduledAt: in.ScheduledAt,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	// El precio se calcula solo cuando no viene informado; una vez
	// persistido no se recalcula.
	if in.FinalPrice != nil {
		ap.FinalPrice = in.FinalPrice
	} else {
		q := pricing.ForService(client.BirthDate, svc.BasePrice, in.ScheduledAt)
		ap.FinalPrice = &q.Final
		ap.DiscountApplied = q.Discount
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:      &in.ActorID,
		Action:      "registrar_cita",
		Entity:      "Appointment",
		EntityID:    &ap.ID,
		Description: "Cita registrada para " + client.FullName(),
		RequestID:   in.RequestID,
	})

	return ap, nil
}
