package inventory

import (
	"context"
	"fmt"
	"log"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	domain "github.com/SabrinAmbar14/clinica-estetica-api/internal/domain/inventory"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/httperr"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type RegisterMovementInput struct {
	ProductID uint
	Type      string
	Quantity  int
	Reason    string

	ActorID   uint
	RequestID string
}

// ======================================================
// USE CASE
// ======================================================

// RegisterMovement es el punto único de mutación de stock: crea la
// entrada del libro y le aplica su efecto al producto dentro de la misma
// transacción, con la fila bloqueada. Una salida manual puede dejar el
// stock negativo (se corrige luego con un recuento físico); solo queda
// la advertencia en el log.
type RegisterMovement struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRegisterMovement(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RegisterMovement {
	return &RegisterMovement{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RegisterMovement) Execute(
	ctx context.Context,
	in RegisterMovementInput,
) (*models.StockMovement, error) {

	movType, err := domain.ParseMovementType(in.Type)
	if err != nil {
		return nil, err
	}

	if in.Quantity <= 0 {
		return nil, httperr.ErrBusiness("invalid_quantity")
	}
	if in.Reason == "" {
		return nil, httperr.ErrBusiness("reason_required")
	}

	var movement *models.StockMovement

	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {

		product, err := tx.GetProductForUpdate(ctx, in.ProductID)
		if err != nil {
			return httperr.ErrBusiness("product_not_found")
		}

		movement = &models.StockMovement{
			ProductID: product.ID,
			Type:      string(movType),
			Quantity:  in.Quantity,
			Reason:    in.Reason,
			UserID:    &in.ActorID,
		}
		if err := tx.CreateMovement(ctx, movement); err != nil {
			return err
		}

		newStock, delta := domain.Apply(product.CurrentStock, movType, in.Quantity)
		if delta == 0 {
			// ajuste: queda en el libro, el stock no cambia
			return nil
		}

		if newStock < 0 {
			log.Printf(
				"inventory: product %d stock went negative (%d) after movement %q",
				product.ID, newStock, in.Reason,
			)
		}

		product.CurrentStock = newStock
		return tx.SaveProduct(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "registrar_movimiento",
		Entity:   "StockMovement",
		EntityID: &movement.ID,
		Description: fmt.Sprintf(
			"%s x%d producto %d: %s",
			movType, in.Quantity, in.ProductID, in.Reason,
		),
		RequestID: in.RequestID,
	})

	return movement, nil
}
