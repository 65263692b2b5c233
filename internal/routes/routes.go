package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/audit"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/config"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/handlers"
	infraRepo "github.com/SabrinAmbar14/clinica-estetica-api/internal/infra/repository"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/middleware"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/reportdoc"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/roles"
	"github.com/SabrinAmbar14/clinica-estetica-api/internal/timezone"
	ucAppointment "github.com/SabrinAmbar14/clinica-estetica-api/internal/usecase/appointment"
	ucInventory "github.com/SabrinAmbar14/clinica-estetica-api/internal/usecase/inventory"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	inventoryRepo := infraRepo.NewInventoryGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES
	// ======================================================
	registerAppointmentUC := ucAppointment.NewRegisterAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	registerMultipleUC := ucAppointment.NewRegisterMultiple(
		appointmentRepo,
		auditDispatcher,
	)

	consumeProductUC := ucAppointment.NewConsumeProduct(
		appointmentRepo,
		auditDispatcher,
	)

	transitionAppointmentUC := ucAppointment.NewTransitionAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	quoteUC := ucAppointment.NewQuote(appointmentRepo, timezone.Now)

	registerMovementUC := ucInventory.NewRegisterMovement(
		inventoryRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	clientHandler := handlers.NewClientHandler(db, auditDispatcher)
	staffHandler := handlers.NewStaffHandler(db, auditDispatcher)
	supplierHandler := handlers.NewSupplierHandler(db, auditDispatcher)
	productHandler := handlers.NewProductHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	userHandler := handlers.NewUserHandler(db, auditDispatcher)

	inventoryHandler := handlers.NewInventoryHandler(db, registerMovementUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		registerAppointmentUC,
		registerMultipleUC,
		consumeProductUC,
		transitionAppointmentUC,
		quoteUC,
	)

	reportHandler := handlers.NewReportHandler(db, auditDispatcher, reportdoc.NewFPDFRenderer())

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	admin := middleware.RequireRole(roles.Administrator)
	adminOrReception := middleware.RequireRole(roles.Administrator, roles.Receptionist)
	anyStaff := middleware.RequireRole(
		roles.Administrator,
		roles.Receptionist,
		roles.Stylist,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/me/password", meHandler.ChangePassword)

			// ------------------------------
			// CLIENTES
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/birthdays", clientHandler.Birthdays)
			secured.POST("/clients", admin, clientHandler.Create)
			secured.PUT("/clients/:id", admin, clientHandler.Update)
			secured.PATCH("/clients/:id/deactivate", admin, clientHandler.Deactivate)
			secured.DELETE("/clients/:id", admin, clientHandler.Delete)

			// ------------------------------
			// COLABORADORES
			// ------------------------------
			secured.GET("/staff", staffHandler.List)
			secured.POST("/staff", admin, staffHandler.Create)
			secured.PUT("/staff/:id", admin, staffHandler.Update)
			secured.PATCH("/staff/:id/deactivate", admin, staffHandler.Deactivate)
			secured.DELETE("/staff/:id", admin, staffHandler.Delete)

			// ------------------------------
			// PROVEEDORES
			// ------------------------------
			secured.GET("/suppliers", supplierHandler.List)
			secured.GET("/suppliers/:id", supplierHandler.Get)
			secured.POST("/suppliers", admin, supplierHandler.Create)
			secured.PUT("/suppliers/:id", admin, supplierHandler.Update)
			secured.PATCH("/suppliers/:id/deactivate", admin, supplierHandler.Deactivate)
			secured.DELETE("/suppliers/:id", admin, supplierHandler.Delete)

			// ------------------------------
			// PRODUCTOS E INVENTARIO
			// ------------------------------
			secured.GET("/products", productHandler.List)
			secured.GET("/products/low-stock", anyStaff, productHandler.LowStock)
			secured.POST("/products", admin, productHandler.Create)
			secured.PUT("/products/:id", admin, productHandler.Update)
			secured.PATCH("/products/:id/deactivate", admin, productHandler.Deactivate)
			secured.DELETE("/products/:id", admin, productHandler.Delete)
			secured.POST("/products/:id/stock", admin, inventoryHandler.AddStock)

			secured.POST("/inventory/movements", admin, inventoryHandler.CreateMovement)
			secured.GET("/inventory/movements", adminOrReception, inventoryHandler.ListMovements)

			// ------------------------------
			// SERVICIOS
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", admin, serviceHandler.Create)
			secured.PUT("/services/:id", admin, serviceHandler.Update)
			secured.PATCH("/services/:id/deactivate", admin, serviceHandler.Deactivate)
			secured.DELETE("/services/:id", admin, serviceHandler.Delete)

			// ------------------------------
			// CITAS
			// ------------------------------
			secured.POST("/appointments", anyStaff, appointmentHandler.Create)
			secured.POST("/appointments/batch", anyStaff, appointmentHandler.CreateBatch)
			secured.GET("/appointments", anyStaff, appointmentHandler.List)
			secured.GET("/appointments/:id", anyStaff, appointmentHandler.Get)
			secured.POST("/appointments/quote", anyStaff, appointmentHandler.Quote)
			secured.POST("/appointments/:id/products",
				middleware.RequireRole(roles.Administrator, roles.Stylist),
				appointmentHandler.ConsumeProduct)
			secured.PATCH("/appointments/:id/start", anyStaff, appointmentHandler.Start)
			secured.PATCH("/appointments/:id/complete", anyStaff, appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", anyStaff, appointmentHandler.Cancel)

			// ------------------------------
			// REPORTES
			// ------------------------------
			secured.GET("/reports/inventory", anyStaff, reportHandler.Inventory)
			secured.GET("/reports/inventory/export.csv", anyStaff, reportHandler.ExportInventoryCSV)
			secured.GET("/reports/inventory/export.pdf", anyStaff, reportHandler.ExportLowStockPDF)
			secured.GET("/reports/clients", adminOrReception, reportHandler.Clients)
			secured.GET("/reports/top-products", anyStaff, reportHandler.TopProducts)
			secured.GET("/reports/history", anyStaff, reportHandler.History)

			// ------------------------------
			// USUARIOS Y AUDITORIA
			// ------------------------------
			secured.GET("/users", admin, userHandler.List)
			secured.GET("/users/:id", admin, userHandler.Get)
			secured.POST("/users", admin, userHandler.Create)
			secured.PUT("/users/:id", admin, userHandler.Update)
			secured.PATCH("/users/:id/deactivate", admin, userHandler.Deactivate)

			secured.GET("/audit-logs", admin, auditLogsHandler.List)
		}
	}
}
