package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/SabrinAmbar14/clinica-estetica-api/internal/domain/inventory"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

func (r *InventoryGormRepository) GetProductForUpdate(
	ctx context.Context,
	id uint,
) (*models.Product, error) {

	q := r.db.WithContext(ctx)
	// sqlite no tiene SELECT FOR UPDATE; ahí la transacción ya serializa.
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var product models.Product
	if err := q.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *InventoryGormRepository) CreateMovement(
	ctx context.Context,
	m *models.StockMovement,
) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *InventoryGormRepository) SaveProduct(
	ctx context.Context,
	p *models.Product,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *InventoryGormRepository) WithTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&InventoryGormRepository{db: tx})
	})
}
