// Package reports contiene la lógica pura de los reportes: resolución
// de períodos y serialización tabular. Las consultas viven en el handler.
package reports

import (
	"time"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
)

type Period string

const (
	PeriodToday   Period = "hoy"
	PeriodWeek    Period = "semana"
	PeriodMonth   Period = "mes"
	PeriodQuarter Period = "trimestre"
	PeriodYear    Period = "anio"
	PeriodCustom  Period = "personalizado"
)

// ResolvePeriod traduce un preset a un rango [start, end] de fechas
// (ambos a medianoche local). Para personalizado valida que el rango no
// esté invertido ni supere un año; sin fechas cae a los últimos 30 días.
func ResolvePeriod(p Period, customStart, customEnd *time.Time, today time.Time) (time.Time, time.Time, error) {
	switch p {
	case PeriodToday:
		return today, today, nil

	case PeriodWeek:
		// lunes a domingo
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6), nil

	case PeriodMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return start, start.AddDate(0, 1, -1), nil

	case PeriodQuarter:
		quarter := (int(today.Month()) - 1) / 3
		start := time.Date(today.Year(), time.Month(3*quarter+1), 1, 0, 0, 0, 0, today.Location())
		return start, start.AddDate(0, 3, -1), nil

	case PeriodYear:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		return start, time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, today.Location()), nil

	case PeriodCustom:
		start := today.AddDate(0, 0, -30)
		end := today
		if customStart != nil {
			start = *customStart
		}
		if customEnd != nil {
			end = *customEnd
		}
		if err := ValidateDateRange(start, end); err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, end, nil
	}

	return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_period")
}

// ValidateDateRange rechaza rangos invertidos o mayores a un año. La
// comparación es por días de calendario, no por duración: un cambio de
// hora dentro del rango no altera el resultado.
func ValidateDateRange(start, end time.Time) error {
	if start.After(end) {
		return httperr.ErrBusiness("invalid_date_range")
	}
	sd := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	ed := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if sd.AddDate(0, 0, 365).Before(ed) {
		return httperr.ErrBusiness("date_range_too_long")
	}
	return nil
}

// ClampTopN acota el top-N pedido al rango 5..50 con 10 por defecto.
func ClampTopN(n int) int {
	if n <= 0 {
		return 10
	}
	if n < 5 {
		return 5
	}
	if n > 50 {
		return 50
	}
	return n
}
