package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	domain "github.com/SabrinAmbar14/clinica-estetica-api/internal/domain/appointment"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/domain/pricing"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RegisterMultipleInput struct {
	ClientID   uint
	ServiceIDs []uint

	// StaffID es opcional: si viene en cero se usa el colaborador
	// asociado a la cuenta del actor, y en su defecto el primer
	// estilista activo.
	StaffID uint

	PerformedAt time.Time
	Notes       string

	ActorID   uint
	RequestID string
}

// ======================================================
// USE CASE
// ======================================================

// RegisterMultiple registra de una vez varios servicios ya realizados a
// un cliente: una cita completada por cada servicio, con el precio
// calculado a la fecha de realización. Todo o nada.
type RegisterMultiple struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRegisterMultiple(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RegisterMultiple {
	return &RegisterMultiple{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RegisterMultiple) Execute(
	ctx context.Context,
	in RegisterMultipleInput,
) ([]models.Appointment, error) {

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("no_services_selected")
	}

	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}

	staff, err := uc.resolveStaff(ctx, in)
	if err != nil {
		return nil, err
	}

	var created []models.Appointment
	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		for _, serviceID := range in.ServiceIDs {
			svc, err := tx.GetService(ctx, serviceID)
			if err != nil {
				return httperr.ErrBusiness("service_not_found")
			}
			if svc.Status != models.StatusActive {
				return httperr.ErrBusiness("service_inactive")
			}

			q := pricing.ForService(client.BirthDate, svc.BasePrice, in.PerformedAt)

			ap := models.Appointment{
				ClientID:        client.ID,
				ServiceID:       svc.ID,
				StaffID:         staff.ID,
				ScheduledAt:     in.PerformedAt,
				Status:          string(domain.StatusCompleted),
				Notes:           in.Notes,
				FinalPrice:      &q.Final,
				DiscountApplied: q.Discount,
			}
			if err := tx.CreateAppointment(ctx, &ap); err != nil {
				return err
			}
			created = append(created, ap)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:      &in.ActorID,
		Action:      "registrar_servicios_multiple",
		Entity:      "Appointment",
		Description: fmt.Sprintf("%d servicios registrados para %s", len(created), client.FullName()),
		RequestID:   in.RequestID,
	})

	return created, nil
}

func (uc *RegisterMultiple) resolveStaff(
	ctx context.Context,
	in RegisterMultipleInput,
) (*models.StaffMember, error) {

	if in.StaffID != 0 {
		staff, err := uc.repo.GetStaffMember(ctx, in.StaffID)
		if err != nil {
			return nil, httperr.ErrBusiness("staff_not_found")
		}
		if staff.Status != models.StatusActive {
			return nil, httperr.ErrBusiness("staff_inactive")
		}
		return staff, nil
	}

	if staff, err := uc.repo.GetStaffMemberByUserID(ctx, in.ActorID); err == nil {
		if staff.Status == models.StatusActive {
			return staff, nil
		}
	}

	staff, err := uc.repo.FirstActiveStylist(ctx)
	if err != nil {
		return nil, httperr.ErrBusiness("no_stylist_available")
	}
	return staff, nil
}
