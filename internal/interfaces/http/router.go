package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	EntityUC *usecase.EntityUseCase
	LedgerUC *inventory.LedgerUseCase
	ReportUC *inventory.ReportUseCase
	PDFUC    *inventory.BalancePDFUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Movements y reports antes que las entidades para que /:id no los capture.
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements.Post("/", movementHandler.Record)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.PDFUC)
	reports.Get("/balance", reportHandler.Balance)
	reports.Get("/balance/pdf", reportHandler.BalancePDF)
	reports.Get("/location-totals/:id", reportHandler.LocationTotals)

	// Products, locations y customers comparten handler.
	for _, kind := range entity.Kinds {
		group := api.Group("/" + kind.Plural())
		h := NewEntityHandler(kind, deps.EntityUC)
		group.Post("/", h.Create)
		group.Get("/", h.List)
		group.Get("/:id/exists", h.Exists)
		group.Get("/:id", h.GetByID)
		group.Put("/:id", h.Rename)
		group.Delete("/:id", h.Delete)
	}
}
