package appointment

import (
	"context"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	domain "github.com/SabrinAmbar14/clinica-estetica-api/internal/domain/appointment"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

// TransitionAppointment agrupa los cambios de estado de una cita
// (iniciar, completar, cancelar). Las reglas de transición viven en el
// dominio; aquí solo se orquesta carga, acción y persistencia.
type TransitionAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransitionAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *TransitionAppointment) Start(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
	requestID string,
) (*models.Appointment, error) {
	return uc.apply(ctx, appointmentID, actorID, requestID, "iniciar_cita",
		func(ap *models.Appointment) error {
			return domain.Start(ap)
		})
}

func (uc *TransitionAppointment) Complete(
	ctx context.Context,
	appointmentID uint,
	realDurationMinutes int,
	actorID uint,
	requestID string,
) (*models.Appointment, error) {
	return uc.apply(ctx, appointmentID, actorID, requestID, "completar_cita",
		func(ap *models.Appointment) error {
			return domain.Complete(ap, realDurationMinutes)
		})
}

func (uc *TransitionAppointment) Cancel(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
	requestID string,
) (*models.Appointment, error) {
	return uc.apply(ctx, appointmentID, actorID, requestID, "cancelar_cita",
		func(ap *models.Appointment) error {
			return domain.Cancel(ap)
		})
}

func (uc *TransitionAppointment) apply(
	ctx context.Context,
	appointmentID uint,
	actorID uint,
	requestID string,
	action string,
	fn func(*models.Appointment) error,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := fn(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:    &actorID,
		Action:    action,
		Entity:    "Appointment",
		EntityID:  &ap.ID,
		RequestID: requestID,
	})

	return ap, nil
}
