package prescription

import (
	"context"

	"github.com/tu-usuario/farmacia-api/internal/domain/alerting"
	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
)

// QRGenerator renderiza el artefacto QR de una prescripción y devuelve la
// ruta pública del PNG. El QR codifica la URL de consulta por ID.
type QRGenerator interface {
	Generate(prescriptionID string) (path string, err error)
}

// Notifier avisa al paciente cuando algún medicamento dispensado está
// vencido o por vencer. Best-effort: un fallo de notificación nunca
// revierte la dispensación.
type Notifier interface {
	NotifyDispensed(patient *entity.Patient, p *entity.Prescription, alerts []alerting.ExpiryAlert) error
}

// PDFGenerator genera la hoja imprimible de la prescripción.
type PDFGenerator interface {
	GeneratePrescriptionPDF(ctx context.Context, p *entity.Prescription, patient *entity.Patient) ([]byte, error)
}
