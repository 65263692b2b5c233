package inventory

import (
	"context"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

type Repository interface {
	GetProductForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Product, error)

	CreateMovement(
		ctx context.Context,
		m *models.StockMovement,
	) error

	SaveProduct(
		ctx context.Context,
		p *models.Product,
	) error

	WithTx(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
