package appointment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	domain "github.com/SabrinAmbar14/clinica-estetica-api/internal/domain/appointment"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/domain/inventory"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type ConsumeProductInput struct {
	AppointmentID uint
	ProductID     uint
	Quantity      int

	ActorID   uint
	RequestID string
}

// ======================================================
// USE CASE
// ======================================================

// ConsumeProduct registra el consumo de un producto dentro de una cita:
// congela el precio unitario, crea exactamente un movimiento de salida,
// aplica el descuento de stock y suma el subtotal al precio de la cita.
// Todo ocurre en una transacción con la fila del producto bloqueada, de
// modo que dos consumos simultáneos no puedan sobregirar el stock.
// Este es el único punto que crea el movimiento del libro: no existe una
// segunda vía ni bandera de supresión.
type ConsumeProduct struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConsumeProduct(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConsumeProduct {
	return &ConsumeProduct{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ConsumeProduct) Execute(
	ctx context.Context,
	in ConsumeProductInput,
) (*models.ConsumedProduct, error) {

	if in.Quantity <= 0 {
		return nil, httperr.ErrBusiness("invalid_quantity")
	}

	var line *models.ConsumedProduct

	err := uc.repo.WithTx(ctx, func(tx domain.Repository) error {

		ap, err := tx.GetAppointment(ctx, in.AppointmentID)
		if err != nil {
			return httperr.ErrBusiness("appointment_not_found")
		}

		product, err := tx.GetProductForUpdate(ctx, in.ProductID)
		if err != nil {
			return httperr.ErrBusiness("product_not_found")
		}

		if in.Quantity > product.CurrentStock {
			return httperr.ErrBusinessf(
				"insufficient_stock",
				fmt.Sprintf("Stock insuficiente: disponible %d", product.CurrentStock),
			)
		}

		line = &models.ConsumedProduct{
			AppointmentID: ap.ID,
			ProductID:     product.ID,
			Quantity:      in.Quantity,
			UnitPrice:     product.SalePrice,
		}
		if err := tx.CreateConsumedProduct(ctx, line); err != nil {
			return err
		}

		movement := &models.StockMovement{
			ProductID: product.ID,
			Type:      string(inventory.MovementOut),
			Quantity:  in.Quantity,
			Reason:    fmt.Sprintf("Consumo en cita #%d", ap.ID),
			UserID:    &in.ActorID,
		}
		if err := tx.CreateStockMovement(ctx, movement); err != nil {
			return err
		}

		product.CurrentStock, _ = inventory.Apply(
			product.CurrentStock,
			inventory.MovementOut,
			in.Quantity,
		)
		if err := tx.SaveProduct(ctx, product); err != nil {
			return err
		}

		total := decimal.Zero
		if ap.FinalPrice != nil {
			total = *ap.FinalPrice
		}
		total = total.Add(line.Subtotal())
		ap.FinalPrice = &total

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "agregar_producto_consumido",
		Entity:   "ConsumedProduct",
		EntityID: &line.ID,
		Description: fmt.Sprintf(
			"Producto %d x%d agregado a cita %d",
			in.ProductID, in.Quantity, in.AppointmentID,
		),
		RequestID: in.RequestID,
	})

	return line, nil
}
