package reports

import (
	"testing"
	"time"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriod_Presets(t *testing.T) {
	// miércoles
	today := day(2026, time.August, 26)

	cases := []struct {
		period Period
		start  time.Time
		end    time.Time
	}{
		{PeriodToday, today, today},
		{PeriodWeek, day(2026, time.August, 24), day(2026, time.August, 30)},
		{PeriodMonth, day(2026, time.August, 1), day(2026, time.August, 31)},
		{PeriodQuarter, day(2026, time.July, 1), day(2026, time.September, 30)},
		{PeriodYear, day(2026, time.January, 1), day(2026, time.December, 31)},
	}

	for _, tc := range cases {
		start, end, err := ResolvePeriod(tc.period, nil, nil, today)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.period, err)
		}
		if !start.Equal(tc.start) || !end.Equal(tc.end) {
			t.Fatalf("%s: expected [%s, %s], got [%s, %s]",
				tc.period, tc.start, tc.end, start, end)
		}
	}
}

func TestResolvePeriod_CustomDefaultsToLast30Days(t *testing.T) {
	today := day(2026, time.August, 26)

	start, end, err := ResolvePeriod(PeriodCustom, nil, nil, today)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !end.Equal(today) || !start.Equal(today.AddDate(0, 0, -30)) {
		t.Fatalf("expected last 30 days, got [%s, %s]", start, end)
	}
}

func TestResolvePeriod_InvertedRange(t *testing.T) {
	today := day(2026, time.August, 26)
	start := day(2026, time.May, 10)
	end := day(2026, time.May, 1)

	_, _, err := ResolvePeriod(PeriodCustom, &start, &end, today)
	if !httperr.IsBusiness(err, "invalid_date_range") {
		t.Fatalf("expected invalid_date_range, got %v", err)
	}
}

func TestResolvePeriod_RangeTooLong(t *testing.T) {
	today := day(2026, time.August, 26)
	start := day(2024, time.January, 1)
	end := day(2026, time.January, 2)

	_, _, err := ResolvePeriod(PeriodCustom, &start, &end, today)
	if !httperr.IsBusiness(err, "date_range_too_long") {
		t.Fatalf("expected date_range_too_long, got %v", err)
	}
}

func TestValidateDateRange_CalendarDayBoundary(t *testing.T) {
	start := day(2026, time.January, 1)

	// Exactamente 365 días de calendario: permitido.
	if err := ValidateDateRange(start, day(2027, time.January, 1)); err != nil {
		t.Fatalf("365-day range must be valid, got %v", err)
	}

	// Un día más: rechazado.
	if err := ValidateDateRange(start, day(2027, time.January, 2)); !httperr.IsBusiness(err, "date_range_too_long") {
		t.Fatalf("expected date_range_too_long, got %v", err)
	}
}

func TestValidateDateRange_IgnoresClockOffsets(t *testing.T) {
	// El rango cubre 365 días de calendario aunque el reloj del extremo
	// final venga corrido (como tras un cambio de hora).
	start := day(2026, time.January, 1)
	end := time.Date(2027, time.January, 1, 1, 0, 0, 0, time.UTC)

	if err := ValidateDateRange(start, end); err != nil {
		t.Fatalf("expected calendar-day comparison to accept the range, got %v", err)
	}
}

func TestResolvePeriod_UnknownPreset(t *testing.T) {
	_, _, err := ResolvePeriod(Period("quincena"), nil, nil, day(2026, time.August, 26))
	if !httperr.IsBusiness(err, "invalid_period") {
		t.Fatalf("expected invalid_period, got %v", err)
	}
}

func TestClampTopN(t *testing.T) {
	cases := []struct{ in, out int }{
		{0, 10},
		{-3, 10},
		{3, 5},
		{5, 5},
		{25, 25},
		{50, 50},
		{500, 50},
	}
	for _, tc := range cases {
		if got := ClampTopN(tc.in); got != tc.out {
			t.Fatalf("ClampTopN(%d): expected %d, got %d", tc.in, tc.out, got)
		}
	}
}
