package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/motherindia/millstock-api/internal/application/auth"
	"github.com/motherindia/millstock-api/internal/application/report"
	"github.com/motherindia/millstock-api/internal/application/usecase"
	"github.com/motherindia/millstock-api/internal/domain/entity"
	"github.com/motherindia/millstock-api/internal/infrastructure/export"
	"github.com/motherindia/millstock-api/internal/infrastructure/pdf"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	MovementUC       *usecase.MovementUseCase
	RiceProductionUC *usecase.RiceProductionUseCase
	OutturnUC        *usecase.OutturnUseCase
	WarehouseUC      *usecase.WarehouseUseCase
	HamaliUC         *usecase.HamaliUseCase
	PaddyReportUC    *report.PaddyStockUseCase
	RiceReportUC     *report.RiceStockUseCase
	AuthUC           *auth.AuthUseCase
	PDF              *pdf.StatementGenerator
	Exporter         *export.ExcelExporter
	JWTSecret        string
	RolloverHour     int
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleAdmin)
	canApprove := RequireRole(entity.RoleAdmin, entity.RoleManager)

	// Auth (login is public; the rest runs behind the middleware)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	authProtected := protected.Group("/auth")
	authProtected.Get("/me", authHandler.Me)
	authProtected.Post("/register", adminOnly, authHandler.Register)
	authProtected.Get("/users", adminOnly, authHandler.ListUsers)

	// Paddy movements
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Create)
	movements.Get("/", movementHandler.List)
	movements.Get("/pending", movementHandler.ListPending)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Post("/:id/approve", canApprove, movementHandler.Approve)
	movements.Post("/:id/admin-approve", adminOnly, movementHandler.AdminApprove)
	movements.Post("/:id/reject", canApprove, movementHandler.Reject)
	movements.Delete("/:id", canApprove, movementHandler.Delete)

	// Rice production and loading
	rice := protected.Group("/rice-productions")
	riceHandler := NewRiceProductionHandler(deps.RiceProductionUC)
	rice.Post("/", riceHandler.Create)
	rice.Get("/", riceHandler.List)
	rice.Get("/pending", riceHandler.ListPending)
	rice.Get("/:id", riceHandler.GetByID)
	rice.Post("/:id/approve", canApprove, riceHandler.Approve)
	rice.Post("/:id/reject", canApprove, riceHandler.Reject)
	rice.Delete("/:id", canApprove, riceHandler.Delete)

	// Outturns (milling lots)
	outturns := protected.Group("/outturns")
	outturnHandler := NewOutturnHandler(deps.OutturnUC)
	outturns.Post("/", outturnHandler.Create)
	outturns.Get("/", outturnHandler.List)
	outturns.Get("/:code", outturnHandler.GetByCode)
	outturns.Post("/:code/clear", adminOnly, outturnHandler.Clear)

	// Godowns and kunchinittu stacks
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:code", warehouseHandler.GetByCode)
	warehouses.Post("/:code/units", adminOnly, warehouseHandler.CreateStorageUnit)
	warehouses.Get("/:code/units", warehouseHandler.ListStorageUnits)

	// Hamali labor
	hamali := protected.Group("/hamali")
	hamaliHandler := NewHamaliHandler(deps.HamaliUC)
	hamali.Post("/rates", adminOnly, hamaliHandler.SetRate)
	hamali.Get("/rates", hamaliHandler.ListRates)
	hamali.Post("/entries", hamaliHandler.CreateEntry)
	hamali.Get("/entries", hamaliHandler.ListEntries)
	hamali.Delete("/entries/:id", adminOnly, hamaliHandler.DeleteEntry)

	// Stock reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(
		deps.PaddyReportUC, deps.RiceReportUC, deps.PDF, deps.Exporter, deps.RolloverHour,
	)
	reports.Get("/paddy", reportHandler.Paddy)
	reports.Get("/paddy/pdf", reportHandler.PaddyPDF)
	reports.Get("/paddy/export", reportHandler.PaddyExport)
	reports.Get("/rice", reportHandler.Rice)
	reports.Get("/rice/pdf", reportHandler.RicePDF)
	reports.Get("/rice/export", reportHandler.RiceExport)
}
