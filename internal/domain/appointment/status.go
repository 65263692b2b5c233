package appointment

import "github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "programada"
	StatusInProgress Status = "en_proceso"
	StatusCompleted  Status = "completada"
	StatusCancelled  Status = "cancelada"
)

func InitialStatus() Status {
	return StatusScheduled
}

// ===============================
// Validations
// ===============================

func CanStart(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusScheduled && current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusScheduled && current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
