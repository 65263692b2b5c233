package appointment

import (
	"context"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetStaffMember(
		ctx context.Context,
		id uint,
	) (*models.StaffMember, error)

	// GetStaffMemberByUserID resuelve el colaborador asociado a una
	// cuenta de acceso, si existe.
	GetStaffMemberByUserID(
		ctx context.Context,
		userID uint,
	) (*models.StaffMember, error)

	// FirstActiveStylist devuelve el primer estilista activo, usado
	// como asignación por omisión en registros retroactivos.
	FirstActiveStylist(
		ctx context.Context,
	) (*models.StaffMember, error)

	GetProduct(
		ctx context.Context,
		id uint,
	) (*models.Product, error)

	// GetProductForUpdate bloquea la fila del producto (SELECT ... FOR
	// UPDATE) para serializar chequeo y descuento de stock.
	GetProductForUpdate(
		ctx context.Context,
		id uint,
	) (*models.Product, error)

	SaveProduct(
		ctx context.Context,
		p *models.Product,
	) error

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Consumption --------
	CreateConsumedProduct(
		ctx context.Context,
		cp *models.ConsumedProduct,
	) error

	CreateStockMovement(
		ctx context.Context,
		m *models.StockMovement,
	) error

	// WithTx ejecuta fn contra un repositorio ligado a una única
	// transacción; un error revierte todo.
	WithTx(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
