package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/SabrinAmbar14/clinica-estetica-api/internal/domain/appointment"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetStaffMember(
	ctx context.Context,
	id uint,
) (*models.StaffMember, error) {

	var staff models.StaffMember
	if err := r.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *AppointmentGormRepository) GetStaffMemberByUserID(
	ctx context.Context,
	userID uint,
) (*models.StaffMember, error) {

	var staff models.StaffMember
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *AppointmentGormRepository) FirstActiveStylist(
	ctx context.Context,
) (*models.StaffMember, error) {

	var staff models.StaffMember
	if err := r.db.WithContext(ctx).
		Where("position = ? AND status = ?", "estilista", models.StatusActive).
		Order("id ASC").
		First(&staff).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *AppointmentGormRepository) GetProduct(
	ctx context.Context,
	id uint,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *AppointmentGormRepository) GetProductForUpdate(
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

func (r *AppointmentGormRepository) SaveProduct(
	ctx context.Context,
	p *models.Product,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Consumption
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateConsumedProduct(
	ctx context.Context,
	cp *models.ConsumedProduct,
) error {
	return r.db.WithContext(ctx).Create(cp).Error
}

func (r *AppointmentGormRepository) CreateStockMovement(
	ctx context.Context,
	m *models.StockMovement,
) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) WithTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}
