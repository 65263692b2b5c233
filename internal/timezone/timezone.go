package timezone

import "time"

// La clínica opera en un único huso horario; todos los cortes de fecha
// (cumpleaños, períodos de reportes) se evalúan en él.
const DefaultTimezone = "America/Santiago"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Today devuelve la medianoche local de hoy.
func Today() time.Time {
	now := Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
