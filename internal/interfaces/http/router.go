package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-api/internal/application/alerting"
	"github.com/tu-usuario/farmacia-api/internal/application/analytics"
	"github.com/tu-usuario/farmacia-api/internal/application/billing"
	"github.com/tu-usuario/farmacia-api/internal/application/inventory"
	"github.com/tu-usuario/farmacia-api/internal/application/patient"
	"github.com/tu-usuario/farmacia-api/internal/application/prescription"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC    *inventory.UseCase
	IngestBillUC   *billing.IngestBillUseCase
	AlertUC        *alerting.UseCase
	PatientUC      *patient.UseCase
	PrescriptionUC *prescription.UseCase
	HistoryUC      *prescription.HistoryUseCase
	PDFUC          *prescription.PDFUseCase
	AnalyticsUC    *analytics.DashboardUseCase
	QRLocator      QRLocator
}

// Router registra las rutas de la API. Las rutas conservan los nombres de
// operación que usan los clientes existentes (upload_bill, scan_qr, etc.).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Inventario y facturas de compra
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.IngestBillUC)
	api.Get("/inventory", inventoryHandler.List)
	api.Get("/medicine/search", inventoryHandler.Search)
	api.Get("/medicine/:batch/info", inventoryHandler.BatchInfo)
	api.Post("/delete_stock", inventoryHandler.DeleteStock)
	api.Post("/upload_bill", inventoryHandler.UploadBill)

	// Alertas de vencimiento
	alertHandler := NewAlertHandler(deps.AlertUC)
	api.Get("/alerts", alertHandler.List)

	// Pacientes
	patientHandler := NewPatientHandler(deps.PatientUC, deps.PrescriptionUC, deps.HistoryUC)
	api.Post("/register_patient", patientHandler.Register)
	api.Get("/patients", patientHandler.List)
	api.Get("/patient/:id", patientHandler.GetByID)
	api.Get("/patient/:id/prescriptions", patientHandler.Prescriptions)
	api.Get("/patient/:id/medicine-history", patientHandler.MedicineHistory)
	api.Get("/patient/:id/alerts", patientHandler.Alerts)

	// Prescripciones
	prescriptionHandler := NewPrescriptionHandler(deps.PrescriptionUC, deps.PDFUC, deps.QRLocator)
	api.Post("/create_prescription", prescriptionHandler.Create)
	api.Get("/prescriptions", prescriptionHandler.List)
	api.Get("/prescription/:id", prescriptionHandler.GetByID)
	api.Get("/prescription/:id/pdf", prescriptionHandler.GetPDF)
	api.Post("/scan_qr", prescriptionHandler.ScanQR)
	api.Get("/qr/:id.png", prescriptionHandler.GetQR)

	// Analítica
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	api.Get("/analytics", analyticsHandler.Dashboard)
}
