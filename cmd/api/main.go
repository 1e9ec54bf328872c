package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/ObraStock-api/internal/application/anomalies"
	"github.com/jhoicas/ObraStock-api/internal/application/auth"
	"github.com/jhoicas/ObraStock-api/internal/application/catalog"
	"github.com/jhoicas/ObraStock-api/internal/application/checks"
	"github.com/jhoicas/ObraStock-api/internal/application/conversion"
	appinv "github.com/jhoicas/ObraStock-api/internal/application/inventory"
	"github.com/jhoicas/ObraStock-api/internal/application/reports"
	"github.com/jhoicas/ObraStock-api/internal/application/threshold"
	"github.com/jhoicas/ObraStock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ObraStock-api/internal/interfaces/http"
	"github.com/jhoicas/ObraStock-api/pkg/config"
	"github.com/jhoicas/ObraStock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	epoch, err := time.Parse("2006-01-02", cfg.Inventory.MovementEpoch)
	if err != nil {
		log.Fatal().Err(err).Msg("MOVEMENT_EPOCH inválida")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Catálogo
	materialRepo := postgres.NewMaterialRepository(pool)
	conversionRepo := postgres.NewConversionRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	contractorRepo := postgres.NewContractorRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	finishedGoodRepo := postgres.NewFinishedGoodRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	// Libro de movimientos y saldos (lecturas fuera de transacción)
	warehouseStockRepo := postgres.NewWarehouseInventoryRepository(pool)
	contractorStockRepo := postgres.NewContractorInventoryRepository(pool)
	finishedStockRepo := postgres.NewFinishedGoodsInventoryRepository(pool)
	issuanceRepo := postgres.NewIssuanceRepository(pool)
	consumptionRepo := postgres.NewConsumptionRepository(pool)
	rejectionRepo := postgres.NewRejectionRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	checkRepo := postgres.NewCheckRepository(pool)
	anomalyRepo := postgres.NewAnomalyRepository(pool)
	thresholdRepo := postgres.NewThresholdRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	conversions := conversion.NewService(conversionRepo)
	thresholds := threshold.NewResolver(thresholdRepo, cfg.Inventory.SystemThresholdPct)
	expected := appinv.NewExpectedCalculator(issuanceRepo, consumptionRepo, rejectionRepo, checkRepo, epoch)

	catalogUC := catalog.NewUseCase(materialRepo, conversionRepo, warehouseRepo, contractorRepo, supplierRepo, finishedGoodRepo)
	issueUC := appinv.NewIssueUseCase(txRunner, conversions, materialRepo, warehouseRepo, contractorRepo, log)
	rejectionUC := appinv.NewRejectionUseCase(txRunner, conversions, materialRepo, warehouseRepo, contractorRepo, rejectionRepo)
	transferUC := appinv.NewTransferUseCase(txRunner, conversions, warehouseRepo, materialRepo, transferRepo)
	procurementUC := appinv.NewProcurementUseCase(txRunner, conversions, materialRepo, warehouseRepo, supplierRepo, poRepo)
	productionUC := appinv.NewProductionUseCase(txRunner, contractorRepo, finishedGoodRepo)
	finishedUC := appinv.NewFinishedGoodsUseCase(txRunner, contractorRepo, warehouseRepo, finishedGoodRepo)
	auditUC := checks.NewAuditUseCase(txRunner, thresholds, contractorRepo, materialRepo, checkRepo, epoch)
	reconUC := checks.NewReconciliationUseCase(txRunner, thresholds, contractorRepo, materialRepo, checkRepo, epoch)
	anomalyUC := anomalies.NewUseCase(anomalyRepo)
	thresholdUC := threshold.NewAdminUseCase(thresholdRepo, materialRepo, contractorRepo)
	reportsUC := reports.NewReportsUseCase(checkRepo, anomalyRepo, warehouseStockRepo, materialRepo, contractorRepo)
	authUC := auth.NewAuthUseCase(userRepo, contractorRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ObraStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CatalogUC:      catalogUC,
		ThresholdUC:    thresholdUC,
		IssueUC:        issueUC,
		RejectionUC:    rejectionUC,
		TransferUC:     transferUC,
		ProcurementUC:  procurementUC,
		ProductionUC:   productionUC,
		FinishedUC:     finishedUC,
		Expected:       expected,
		AuditUC:        auditUC,
		ReconUC:        reconUC,
		AnomalyUC:      anomalyUC,
		ReportsUC:      reportsUC,
		IssuanceRepo:   issuanceRepo,
		TransferRepo:   transferRepo,
		PORepo:         poRepo,
		CheckRepo:      checkRepo,
		WarehouseStock: warehouseStockRepo,
		ContractorInv:  contractorStockRepo,
		FinishedStock:  finishedStockRepo,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
