package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	dbpkg "github.com/SabrinAmbar14/clinica-estetica-api/internal/db"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	infraRepo "github.com/SabrinAmbar14/clinica-estetica-api/internal/infra/repository"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

func newMovementFixture(t *testing.T) (*gorm.DB, *RegisterMovement, models.Product) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	product := models.Product{
		Name:         "Laca Fijadora",
		Category:     "laca",
		CostPrice:    decimal.RequireFromString("2.00"),
		SalePrice:    decimal.RequireFromString("4.50"),
		CurrentStock: 10,
		MinimumStock: 5,
		Status:       models.StatusActive,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	uc := NewRegisterMovement(
		infraRepo.NewInventoryGormRepository(db),
		audit.NewDispatcher(audit.New(db)),
	)
	return db, uc, product
}

func reloadStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p models.Product
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return p.CurrentStock
}

func TestRegisterMovement_InThenOutRoundTrip(t *testing.T) {
	db, uc, product := newMovementFixture(t)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, RegisterMovementInput{
		ProductID: product.ID, Type: "entrada", Quantity: 5, Reason: "Compra a proveedor",
	}); err != nil {
		t.Fatalf("entrada: %v", err)
	}
	if got := reloadStock(t, db, product.ID); got != 15 {
		t.Fatalf("expected stock 15 after entrada, got %d", got)
	}

	if _, err := uc.Execute(ctx, RegisterMovementInput{
		ProductID: product.ID, Type: "salida", Quantity: 5, Reason: "Merma",
	}); err != nil {
		t.Fatalf("salida: %v", err)
	}
	if got := reloadStock(t, db, product.ID); got != 10 {
		t.Fatalf("expected stock back at 10, got %d", got)
	}

	var count int64
	db.Model(&models.StockMovement{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", count)
	}
}

func TestRegisterMovement_AdjustLeavesStockAlone(t *testing.T) {
	db, uc, product := newMovementFixture(t)

	movement, err := uc.Execute(context.Background(), RegisterMovementInput{
		ProductID: product.ID, Type: "ajuste", Quantity: 3, Reason: "Recuento físico",
	})
	if err != nil {
		t.Fatalf("ajuste: %v", err)
	}
	if movement.ID == 0 {
		t.Fatalf("expected the adjustment to be persisted")
	}
	if got := reloadStock(t, db, product.ID); got != 10 {
		t.Fatalf("expected stock untouched at 10, got %d", got)
	}
}

func TestRegisterMovement_ManualOutMayGoNegative(t *testing.T) {
	db, uc, product := newMovementFixture(t)

	if _, err := uc.Execute(context.Background(), RegisterMovementInput{
		ProductID: product.ID, Type: "salida", Quantity: 12, Reason: "Pérdida en bodega",
	}); err != nil {
		t.Fatalf("salida: %v", err)
	}
	if got := reloadStock(t, db, product.ID); got != -2 {
		t.Fatalf("expected stock -2, got %d", got)
	}
}

func TestRegisterMovement_Validation(t *testing.T) {
	_, uc, product := newMovementFixture(t)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, RegisterMovementInput{
		ProductID: product.ID, Type: "devolucion", Quantity: 1, Reason: "x",
	}); !httperr.IsBusiness(err, "invalid_movement_type") {
		t.Fatalf("expected invalid_movement_type, got %v", err)
	}

	if _, err := uc.Execute(ctx, RegisterMovementInput{
		ProductID: product.ID, Type: "entrada", Quantity: 0, Reason: "x",
	}); !httperr.IsBusiness(err, "invalid_quantity") {
		t.Fatalf("expected invalid_quantity, got %v", err)
	}

	if _, err := uc.Execute(ctx, RegisterMovementInput{
		ProductID: product.ID, Type: "entrada", Quantity: 1,
	}); !httperr.IsBusiness(err, "reason_required") {
		t.Fatalf("expected reason_required, got %v", err)
	}

	if _, err := uc.Execute(ctx, RegisterMovementInput{
		ProductID: 9999, Type: "entrada", Quantity: 1, Reason: "x",
	}); !httperr.IsBusiness(err, "product_not_found") {
		t.Fatalf("expected product_not_found, got %v", err)
	}
}
