package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ObraStock-api/internal/application/anomalies"
	"github.com/jhoicas/ObraStock-api/internal/application/auth"
	"github.com/jhoicas/ObraStock-api/internal/application/catalog"
	"github.com/jhoicas/ObraStock-api/internal/application/checks"
	"github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/application/reports"
	"github.com/jhoicas/ObraStock-api/internal/application/threshold"
	"github.com/jhoicas/ObraStock-api/internal/domain/entity"
	"github.com/jhoicas/ObraStock-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CatalogUC      *catalog.UseCase
	ThresholdUC    *threshold.AdminUseCase
	IssueUC        *inventory.IssueUseCase
	RejectionUC    *inventory.RejectionUseCase
	TransferUC     *inventory.TransferUseCase
	ProcurementUC  *inventory.ProcurementUseCase
	ProductionUC   *inventory.ProductionUseCase
	FinishedUC     *inventory.FinishedGoodsUseCase
	Expected       *inventory.ExpectedCalculator
	AuditUC        *checks.AuditUseCase
	ReconUC        *checks.ReconciliationUseCase
	AnomalyUC      *anomalies.UseCase
	ReportsUC      *reports.ReportsUseCase
	IssuanceRepo   repository.IssuanceRepository
	TransferRepo   repository.TransferRepository
	PORepo         repository.PurchaseOrderRepository
	CheckRepo      repository.CheckRepository
	WarehouseStock repository.WarehouseInventoryRepository
	ContractorInv  repository.ContractorInventoryRepository
	FinishedStock  repository.FinishedGoodsInventoryRepository
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	manager := RequireRole(entity.RoleManager)
	managerOrAuditor := RequireRole(entity.RoleManager, entity.RoleAuditor)
	managerOrContractor := RequireRole(entity.RoleManager, entity.RoleContractor)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo: lecturas para cualquier autenticado, escrituras solo manager
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	stockHandler := NewStockHandler(deps.WarehouseStock, deps.ContractorInv, deps.FinishedStock, deps.Expected)
	issuanceHandler := NewIssuanceHandler(deps.IssueUC, deps.IssuanceRepo)
	checkHandler := NewCheckHandler(deps.AuditUC, deps.ReconUC, deps.CheckRepo)

	materials := protected.Group("/materials")
	materials.Post("/", manager, catalogHandler.CreateMaterial)
	materials.Get("/", catalogHandler.ListMaterials)
	materials.Post("/:id/conversions", manager, catalogHandler.CreateConversion)
	materials.Get("/:id/conversions", catalogHandler.ListConversions)

	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", manager, catalogHandler.CreateWarehouse)
	warehouses.Get("/", catalogHandler.ListWarehouses)
	warehouses.Get("/:id/stock", managerOrAuditor, stockHandler.WarehouseStock)
	warehouses.Get("/:id/finished-stock", managerOrAuditor, stockHandler.FinishedStock)

	contractors := protected.Group("/contractors")
	contractors.Post("/", manager, catalogHandler.CreateContractor)
	contractors.Get("/", catalogHandler.ListContractors)
	contractors.Get("/:id/stock", stockHandler.ContractorStock)
	contractors.Get("/:id/expected", stockHandler.ExpectedStock)
	contractors.Get("/:id/issuances", issuanceHandler.ListByContractor)
	contractors.Get("/:id/checks", checkHandler.ListByContractor)

	suppliers := protected.Group("/suppliers", manager)
	suppliers.Post("/", catalogHandler.CreateSupplier)

	finishedGoods := protected.Group("/finished-goods")
	finishedGoods.Get("/", catalogHandler.ListFinishedGoods)
	finishedGoods.Get("/:id/bom", catalogHandler.GetBOM)

	// Umbrales de varianza (solo manager)
	thresholds := protected.Group("/thresholds", manager)
	thresholdHandler := NewThresholdHandler(deps.ThresholdUC)
	thresholds.Post("/", thresholdHandler.Set)
	thresholds.Delete("/", thresholdHandler.Deactivate)
	thresholds.Get("/", thresholdHandler.List)

	// Entregas de material
	issuances := protected.Group("/issuances", manager)
	issuances.Post("/", issuanceHandler.Issue)

	// Devoluciones de material rechazado
	rejections := protected.Group("/rejections")
	rejectionHandler := NewRejectionHandler(deps.RejectionUC)
	rejections.Post("/", managerOrContractor, rejectionHandler.Report)
	rejections.Get("/", managerOrAuditor, rejectionHandler.ListByStatus)
	rejections.Post("/:id/approve", manager, rejectionHandler.Approve)
	rejections.Post("/:id/dispute", manager, rejectionHandler.Dispute)
	rejections.Post("/:id/receive", manager, rejectionHandler.Receive)

	// Traslados entre bodegas (solo manager)
	transfers := protected.Group("/transfers", manager)
	transferHandler := NewTransferHandler(deps.TransferUC, deps.TransferRepo)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/:id/submit", transferHandler.Submit)
	transfers.Post("/:id/cancel", transferHandler.Cancel)
	transfers.Post("/:id/complete", transferHandler.Complete)

	// Compras (solo manager)
	procurementHandler := NewProcurementHandler(deps.ProcurementUC, deps.PORepo)
	purchaseOrders := protected.Group("/purchase-orders", manager)
	purchaseOrders.Post("/", procurementHandler.CreatePO)
	purchaseOrders.Get("/", procurementHandler.List)
	purchaseOrders.Get("/:id", procurementHandler.GetByID)
	purchaseOrders.Post("/:id/approve", procurementHandler.Approve)
	purchaseOrders.Post("/:id/cancel", procurementHandler.Cancel)
	protected.Post("/goods-receipts", manager, procurementHandler.ReceiveGoods)

	// Producción y producto terminado
	productionHandler := NewProductionHandler(deps.ProductionUC, deps.FinishedUC)
	protected.Post("/production", managerOrContractor, productionHandler.Report)
	protected.Post("/finished-goods-receipts", manager, productionHandler.ReceiveFinishedGoods)

	// Auditorías ciegas (auditor ejecuta, manager resuelve)
	audits := protected.Group("/audits")
	audits.Post("/", RequireRole(entity.RoleAuditor), checkHandler.StartAudit)
	audits.Get("/:id", managerOrAuditor, checkHandler.GetAudit)
	audits.Post("/:id/counts", RequireRole(entity.RoleAuditor), checkHandler.EnterCount)
	audits.Post("/:id/submit", RequireRole(entity.RoleAuditor), checkHandler.SubmitAudit)
	audits.Post("/:id/analyze", managerOrAuditor, checkHandler.AnalyzeAudit)
	audits.Post("/:id/accept", manager, checkHandler.AcceptAuditCounts)
	audits.Post("/:id/close", manager, checkHandler.CloseAudit)

	// Auto-reportes de reconciliación
	reconciliations := protected.Group("/reconciliations")
	reconciliations.Post("/", managerOrContractor, checkHandler.SubmitReconciliation)
	reconciliations.Post("/:id/review", manager, checkHandler.ReviewReconciliation)

	// Conteos (vista transversal)
	protected.Get("/checks", managerOrAuditor, checkHandler.ListChecks)

	// Anomalías
	anomalyHandler := NewAnomalyHandler(deps.AnomalyUC)
	anomaliesGroup := protected.Group("/anomalies", managerOrAuditor)
	anomaliesGroup.Get("/", anomalyHandler.List)
	anomaliesGroup.Get("/:id", anomalyHandler.Get)
	anomaliesGroup.Post("/:id/resolve", manager, anomalyHandler.Resolve)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup := protected.Group("/reports", managerOrAuditor)
	reportsGroup.Get("/variance", reportHandler.Variance)
	reportsGroup.Get("/anomalies", reportHandler.Anomalies)
	reportsGroup.Get("/reorder", reportHandler.Reorder)
}
