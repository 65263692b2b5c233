package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestForService_BirthdayDiscount(t *testing.T) {
	birth := date(1990, time.June, 15)
	base := decimal.RequireFromString("100.00")

	q := ForService(&birth, base, date(2026, time.June, 15))

	if !q.Birthday {
		t.Fatalf("expected birthday quote")
	}
	if q.Final.StringFixed(2) != "80.00" {
		t.Fatalf("expected final 80.00, got %s", q.Final.StringFixed(2))
	}
	if q.Discount.StringFixed(2) != "20.00" {
		t.Fatalf("expected discount 20.00, got %s", q.Discount.StringFixed(2))
	}
}

func TestForService_NonBirthday(t *testing.T) {
	birth := date(1990, time.June, 15)
	base := decimal.RequireFromString("100.00")

	q := ForService(&birth, base, date(2026, time.June, 16))

	if q.Birthday {
		t.Fatalf("expected no birthday quote")
	}
	if !q.Final.Equal(base) {
		t.Fatalf("expected final %s, got %s", base, q.Final)
	}
	if !q.Discount.IsZero() {
		t.Fatalf("expected zero discount, got %s", q.Discount)
	}
}

func TestForService_NilBirthDate(t *testing.T) {
	base := decimal.RequireFromString("45.50")

	q := ForService(nil, base, date(2026, time.June, 15))

	if q.Birthday {
		t.Fatalf("client without birth date must not get the discount")
	}
	if !q.Final.Equal(base) {
		t.Fatalf("expected final %s, got %s", base, q.Final)
	}
}

func TestForService_DiscountIsExact(t *testing.T) {
	// 33.33 * 0.20 = 6.666; el redondeo a dos decimales es del lado de la
	// presentación, la cotización mantiene el valor exacto.
	birth := date(2000, time.January, 1)
	base := decimal.RequireFromString("33.33")

	q := ForService(&birth, base, date(2026, time.January, 1))

	if !q.Discount.Add(q.Final).Equal(base) {
		t.Fatalf("discount + final must equal the base price, got %s + %s != %s",
			q.Discount, q.Final, base)
	}
}
