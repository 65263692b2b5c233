package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	infraRepo "github.com/SabrinAmbar14/clinica-estetica-api/internal/infra/repository"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

type registerFixture struct {
	db     *gorm.DB
	uc     *RegisterAppointment
	client models.Client
	svc    models.Service
	staff  models.StaffMember
}

func newRegisterFixture(t *testing.T) *registerFixture {
	t.Helper()

	db := newTestDB(t)

	birth := time.Date(1992, time.September, 10, 0, 0, 0, 0, time.UTC)
	client := models.Client{
		FirstName: "Paula", LastName: "Vidal", RUT: "18765432-1",
		BirthDate: &birth, Status: models.StatusActive,
	}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}

	svc := models.Service{
		Name:      "Tinte completo",
		Category:  "tinte",
		BasePrice: decimal.RequireFromString("100.00"),
		Status:    models.StatusActive,
	}
	if err := db.Create(&svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}

	staff := models.StaffMember{
		FirstName: "Carla", LastName: "Mena", RUT: "11111111-1",
		Position: "estilista", Status: models.StatusActive,
	}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	repo := infraRepo.NewAppointmentGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))

	return &registerFixture{
		db:     db,
		uc:     NewRegisterAppointment(repo, dispatcher),
		client: client,
		svc:    svc,
		staff:  staff,
	}
}

func TestRegisterAppointment_BirthdayDiscountApplied(t *testing.T) {
	f := newRegisterFixture(t)

	ap, err := f.uc.Execute(context.Background(), RegisterAppointmentInput{
		ClientID:    f.client.ID,
		ServiceID:   f.svc.ID,
		StaffID:     f.staff.ID,
		ScheduledAt: time.Date(2026, time.September, 10, 11, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.FinalPrice == nil || ap.FinalPrice.StringFixed(2) != "80.00" {
		t.Fatalf("expected final price 80.00, got %v", ap.FinalPrice)
	}
	if ap.DiscountApplied.StringFixed(2) != "20.00" {
		t.Fatalf("expected discount 20.00, got %s", ap.DiscountApplied.StringFixed(2))
	}
	if ap.Status != "programada" {
		t.Fatalf("expected initial status programada, got %s", ap.Status)
	}
}

func TestRegisterAppointment_AgreedPriceIsFrozen(t *testing.T) {
	f := newRegisterFixture(t)

	agreed := decimal.RequireFromString("75.00")
	ap, err := f.uc.Execute(context.Background(), RegisterAppointmentInput{
		ClientID:  f.client.ID,
		ServiceID: f.svc.ID,
		StaffID:   f.staff.ID,
		// Cae en el cumpleaños, pero el precio pactado manda.
		ScheduledAt: time.Date(2026, time.September, 10, 11, 0, 0, 0, time.UTC),
		FinalPrice:  &agreed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.FinalPrice.StringFixed(2) != "75.00" {
		t.Fatalf("expected agreed price 75.00, got %s", ap.FinalPrice.StringFixed(2))
	}
	if !ap.DiscountApplied.IsZero() {
		t.Fatalf("expected no discount on an agreed price, got %s", ap.DiscountApplied)
	}
}

func TestRegisterAppointment_InactiveStaffRejected(t *testing.T) {
	f := newRegisterFixture(t)

	f.staff.Status = models.StatusInactive
	if err := f.db.Save(&f.staff).Error; err != nil {
		t.Fatalf("deactivate staff: %v", err)
	}

	_, err := f.uc.Execute(context.Background(), RegisterAppointmentInput{
		ClientID:    f.client.ID,
		ServiceID:   f.svc.ID,
		StaffID:     f.staff.ID,
		ScheduledAt: time.Now(),
	})
	if !httperr.IsBusiness(err, "staff_inactive") {
		t.Fatalf("expected staff_inactive, got %v", err)
	}
}

func TestRegisterAppointment_InactiveServiceRejected(t *testing.T) {
	f := newRegisterFixture(t)

	f.svc.Status = models.StatusInactive
	if err := f.db.Save(&f.svc).Error; err != nil {
		t.Fatalf("deactivate service: %v", err)
	}

	_, err := f.uc.Execute(context.Background(), RegisterAppointmentInput{
		ClientID:    f.client.ID,
		ServiceID:   f.svc.ID,
		StaffID:     f.staff.ID,
		ScheduledAt: time.Now(),
	})
	if !httperr.IsBusiness(err, "service_inactive") {
		t.Fatalf("expected service_inactive, got %v", err)
	}
}

func TestRegisterAppointment_UnknownClient(t *testing.T) {
	f := newRegisterFixture(t)

	_, err := f.uc.Execute(context.Background(), RegisterAppointmentInput{
		ClientID:    9999,
		ServiceID:   f.svc.ID,
		StaffID:     f.staff.ID,
		ScheduledAt: time.Now(),
	})
	if !httperr.IsBusiness(err, "client_not_found") {
		t.Fatalf("expected client_not_found, got %v", err)
	}
}

func TestQuote_IncludesSelectedProducts(t *testing.T) {
	f := newRegisterFixture(t)

	product := models.Product{
		Name:         "Ampolla Keratina",
		Category:     "tratamiento",
		CostPrice:    decimal.RequireFromString("4.00"),
		SalePrice:    decimal.RequireFromString("9.50"),
		CurrentStock: 3,
		MinimumStock: 5,
		Status:       models.StatusActive,
	}
	if err := f.db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	ref := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	uc := NewQuote(infraRepo.NewAppointmentGormRepository(f.db), func() time.Time { return ref })

	result, err := uc.Execute(context.Background(), QuoteInput{
		ClientID:   f.client.ID,
		ServiceID:  f.svc.ID,
		ProductIDs: []uint{product.ID},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Birthday {
		t.Fatalf("expected a birthday quote on the reference date")
	}
	// 100.00 - 20% + 9.50
	if result.Total.StringFixed(2) != "89.50" {
		t.Fatalf("expected total 89.50, got %s", result.Total.StringFixed(2))
	}
	if result.Products.StringFixed(2) != "9.50" {
		t.Fatalf("expected products total 9.50, got %s", result.Products.StringFixed(2))
	}

	// La cotización no toca el stock.
	var reloaded models.Product
	if err := f.db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if reloaded.CurrentStock != 3 {
		t.Fatalf("expected stock untouched at 3, got %d", reloaded.CurrentStock)
	}
}

func TestQuote_RejectsInactiveCatalogEntries(t *testing.T) {
	f := newRegisterFixture(t)

	product := models.Product{
		Name:         "Laca fijación fuerte",
		Category:     "laca",
		CostPrice:    decimal.RequireFromString("2.00"),
		SalePrice:    decimal.RequireFromString("5.00"),
		CurrentStock: 4,
		MinimumStock: 1,
		Status:       models.StatusInactive,
	}
	if err := f.db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	uc := NewQuote(infraRepo.NewAppointmentGormRepository(f.db), time.Now)

	_, err := uc.Execute(context.Background(), QuoteInput{
		ClientID:   f.client.ID,
		ServiceID:  f.svc.ID,
		ProductIDs: []uint{product.ID},
	})
	if !httperr.IsBusiness(err, "product_inactive") {
		t.Fatalf("expected product_inactive, got %v", err)
	}

	f.svc.Status = models.StatusInactive
	if err := f.db.Save(&f.svc).Error; err != nil {
		t.Fatalf("deactivate service: %v", err)
	}

	_, err = uc.Execute(context.Background(), QuoteInput{
		ClientID:  f.client.ID,
		ServiceID: f.svc.ID,
	})
	if !httperr.IsBusiness(err, "service_inactive") {
		t.Fatalf("expected service_inactive, got %v", err)
	}
}
