package audit

import (
	"log"
	"sync/atomic"
)

type Event struct {
	UserID      *uint
	Action      string
	Entity      string
	EntityID    *uint
	Description string
	RequestID   string
}

// Dispatcher desacopla la escritura de auditoría de la operación
// principal: el envío nunca bloquea y una falla del log jamás la aborta.
// A diferencia del registro silencioso original, cada pérdida queda
// contada y reportada en el log del proceso.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
	lost   atomic.Uint64
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Description,
			ev.RequestID,
		); err != nil {
			n := d.lost.Add(1)
			log.Printf("audit: write failed (lost=%d): %v", n, err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// cola llena: descartamos antes que frenar la API
		n := d.lost.Add(1)
		log.Printf("audit: queue full, dropping %q (lost=%d)", ev.Action, n)
	}
}

// Lost devuelve el total de eventos de auditoría perdidos desde el inicio.
func (d *Dispatcher) Lost() uint64 {
	return d.lost.Load()
}
