package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pesquera-erp/internal/application/documents"
	"github.com/jhoicas/pesquera-erp/internal/application/treasury"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ContractUC  *documents.ContractUseCase
	QuotationUC *documents.SalesQuotationUseCase
	WorkOrderUC *documents.WorkOrderUseCase
	Treasury    *treasury.Service
	JWTSecret   string
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	contracts := protected.Group("/contracts")
	contractHandler := NewContractHandler(deps.ContractUC, deps.Log)
	contracts.Post("/", contractHandler.Create)
	contracts.Get("/:id", contractHandler.GetByID)
	contracts.Put("/:id", contractHandler.Update)

	quotations := protected.Group("/sales-quotations")
	quotationHandler := NewSalesQuotationHandler(deps.QuotationUC, deps.Log)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Put("/:id", quotationHandler.Update)

	workOrders := protected.Group("/work-orders")
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC, deps.Log)
	workOrders.Post("/", workOrderHandler.Create)
	workOrders.Get("/:id", workOrderHandler.GetByID)
	workOrders.Put("/:id", workOrderHandler.Update)

	// Tesorería
	movements := protected.Group("/treasury/movements")
	treasuryHandler := NewTreasuryHandler(deps.Treasury, deps.Log)
	movements.Post("/", treasuryHandler.Create)
	movements.Get("/:id", treasuryHandler.GetByID)
	movements.Put("/:id", treasuryHandler.Update)
	movements.Delete("/:id", treasuryHandler.Delete)
	movements.Post("/:id/validate", treasuryHandler.Validate)
}
