package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/afero"

	"github.com/jhoicas/pesquera-erp/internal/application/documents"
	"github.com/jhoicas/pesquera-erp/internal/application/masterdata"
	"github.com/jhoicas/pesquera-erp/internal/application/numbering"
	"github.com/jhoicas/pesquera-erp/internal/application/treasury"
	"github.com/jhoicas/pesquera-erp/internal/infrastructure/cache"
	"github.com/jhoicas/pesquera-erp/internal/infrastructure/evidence"
	"github.com/jhoicas/pesquera-erp/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pesquera-erp/internal/interfaces/http"
	"github.com/jhoicas/pesquera-erp/pkg/config"
	"github.com/jhoicas/pesquera-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)
	repos := postgres.NewUnitOfWork(pool)
	refs := masterdata.NewChecker(cache.NewMasterData(repos.MasterData(), cfg.Documents.MasterDataCacheTTL))

	// Documentos numerados
	issuer := documents.NewIssuer(txRunner, refs, numbering.NewAllocator(log.Component("numbering")), log.Component("documents"))
	defaults := documents.Defaults{
		ContractValidityDays:  cfg.Documents.ContractValidityDays,
		QuotationValidityDays: cfg.Documents.QuotationValidityDays,
		WorkOrderDueDays:      cfg.Documents.WorkOrderDueDays,
	}
	contractUC := documents.NewContractUseCase(issuer, txRunner, repos.Contracts(), refs, defaults)
	quotationUC := documents.NewSalesQuotationUseCase(issuer, txRunner, repos.SalesQuotations(), refs, defaults)
	workOrderUC := documents.NewWorkOrderUseCase(issuer, txRunner, repos.WorkOrders(), refs, defaults)

	// Archivo de comprobantes: lee de STORAGE_ROOT y copia al destino configurado
	uploads := afero.NewBasePathFs(afero.NewOsFs(), cfg.Storage.Root)
	var dest evidence.Destination
	switch cfg.Storage.Driver {
	case "s3":
		s3Dest, err := evidence.NewS3Destination(ctx, evidence.S3Config{
			Endpoint:     cfg.Storage.S3.Endpoint,
			Region:       cfg.Storage.S3.Region,
			Bucket:       cfg.Storage.S3.Bucket,
			AccessKey:    cfg.Storage.S3.AccessKey,
			SecretKey:    cfg.Storage.S3.SecretKey,
			UsePathStyle: cfg.Storage.S3.UsePathStyle,
			Prefix:       cfg.Storage.ArchiveDir,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("cliente S3")
		}
		dest = s3Dest
	default:
		dest = evidence.NewLocalDestination(uploads, filepath.ToSlash(cfg.Storage.ArchiveDir))
	}
	archiver := evidence.NewArchiver(uploads, dest, log.Component("archiver"))
	archiveQueue := evidence.NewQueue(archiver, evidence.QueueConfig{
		Size:        cfg.Storage.QueueSize,
		MaxAttempts: cfg.Storage.RetryAttempts,
		Workers:     2,
	}, log.Zerolog())
	queueCtx, stopQueue := context.WithCancel(ctx)
	archiveQueue.Start(queueCtx)

	// Tesorería
	reconciler, err := treasury.NewReconciler(treasury.DefaultHandlers()...)
	if err != nil {
		log.Fatal().Err(err).Msg("registro de conciliación")
	}
	treasurySvc := treasury.NewService(txRunner, repos.Movements(), refs, reconciler, archiveQueue, log.Component("treasury"))

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(httpLog),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(httpLog))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pesquera ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ContractUC:  contractUC,
		QuotationUC: quotationUC,
		WorkOrderUC: workOrderUC,
		Treasury:    treasurySvc,
		JWTSecret:   cfg.JWT.Secret,
		Log:         httpLog,
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

	// los trabajos de archivo en curso terminan antes de cerrar el pool
	archiveQueue.Stop()
	stopQueue()

	log.Info().Msg("aplicación detenida")
}
