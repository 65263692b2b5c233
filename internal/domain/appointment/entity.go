package appointment

import (
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Start pasa la cita a en_proceso.
func Start(ap *models.Appointment) error {
	if err := CanStart(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusInProgress)
	return nil
}

// Complete cierra la cita registrando la duración real. El precio ya
// persistido no se toca: queda congelado desde el registro.
func Complete(ap *models.Appointment, realDurationMinutes int) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCompleted)
	if realDurationMinutes > 0 {
		ap.RealDurationMinutes = &realDurationMinutes
	}
	return nil
}

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCancelled)
	return nil
}
