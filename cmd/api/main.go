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
	appalerting "github.com/tu-usuario/farmacia-api/internal/application/alerting"
	appanalytics "github.com/tu-usuario/farmacia-api/internal/application/analytics"
	"github.com/tu-usuario/farmacia-api/internal/application/billing"
	"github.com/tu-usuario/farmacia-api/internal/application/inventory"
	"github.com/tu-usuario/farmacia-api/internal/application/patient"
	"github.com/tu-usuario/farmacia-api/internal/application/prescription"
	"github.com/tu-usuario/farmacia-api/internal/infrastructure/mailer"
	infrapdf "github.com/tu-usuario/farmacia-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/farmacia-api/internal/infrastructure/postgres"
	infraqr "github.com/tu-usuario/farmacia-api/internal/infrastructure/qr"
	httpRouter "github.com/tu-usuario/farmacia-api/internal/interfaces/http"
	"github.com/tu-usuario/farmacia-api/pkg/config"
	"github.com/tu-usuario/farmacia-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	lotRepo := postgres.NewStockLotRepository(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	prescriptionRepo := postgres.NewPrescriptionRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	qrGenerator, err := infraqr.NewGenerator(cfg.Artifacts.QRDir, cfg.Artifacts.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de códigos QR")
	}
	notifier := mailer.New(cfg.SMTP, log)
	pdfGenerator := infrapdf.NewPrescriptionPDFGenerator(cfg.App.Name, cfg.Artifacts.BaseURL)

	inventoryUC := inventory.NewUseCase(txRunner, lotRepo)
	ingestBillUC := billing.NewIngestBillUseCase(inventoryUC)
	alertUC := appalerting.NewUseCase(lotRepo, cfg.Alert.ExpiryDays)
	patientUC := patient.NewUseCase(patientRepo)
	prescriptionUC := prescription.NewUseCase(
		txRunner, prescriptionRepo, patientRepo, lotRepo,
		qrGenerator, notifier, cfg.Alert.ExpiryDays,
	)
	historyUC := prescription.NewHistoryUseCase(
		prescriptionRepo, patientRepo, movementRepo, lotRepo, cfg.Alert.ExpiryDays,
	)
	pdfUC := prescription.NewPDFUseCase(prescriptionRepo, patientRepo, pdfGenerator)
	analyticsUC := appanalytics.NewDashboardUseCase(analyticsRepo, cfg.Alert.ExpiryDays, cfg.Alert.LowStock)

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
		Title:    "Farmacia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC:    inventoryUC,
		IngestBillUC:   ingestBillUC,
		AlertUC:        alertUC,
		PatientUC:      patientUC,
		PrescriptionUC: prescriptionUC,
		HistoryUC:      historyUC,
		PDFUC:          pdfUC,
		AnalyticsUC:    analyticsUC,
		QRLocator:      qrGenerator,
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
