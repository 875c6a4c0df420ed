package prescription

import (
	"context"
	"strings"

	"github.com/tu-usuario/farmacia-api/internal/domain"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

// PDFUseCase genera la hoja imprimible de una prescripción.
type PDFUseCase struct {
	prescriptionRepo repository.PrescriptionRepository
	patientRepo      repository.PatientRepository
	generator        PDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	prescriptionRepo repository.PrescriptionRepository,
	patientRepo repository.PatientRepository,
	generator PDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		generator:        generator,
	}
}

// GetPDF carga la prescripción y su paciente y delega el render.
func (uc *PDFUseCase) GetPDF(ctx context.Context, id string) ([]byte, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("prescription_id")
	}
	p, err := uc.prescriptionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	patient, err := uc.patientRepo.GetByID(p.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.GeneratePrescriptionPDF(ctx, p, patient)
}
