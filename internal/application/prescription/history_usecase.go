package prescription

import (
	"context"
	"strings"
	"time"

	"github.com/tu-usuario/farmacia-api/internal/application/dto"
	"github.com/tu-usuario/farmacia-api/internal/domain"
	domalerting "github.com/tu-usuario/farmacia-api/internal/domain/alerting"
	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

// HistoryUseCase vistas de solo lectura centradas en el paciente: el
// historial de medicamentos que recibió y las alertas de vencimiento
// restringidas a los lotes que le fueron prescritos.
type HistoryUseCase struct {
	prescriptionRepo repository.PrescriptionRepository
	patientRepo      repository.PatientRepository
	movementRepo     repository.StockMovementRepository
	lotRepo          repository.StockLotRepository
	thresholdDays    int
}

// NewHistoryUseCase construye el caso de uso. thresholdDays <= 0 usa el
// umbral por defecto.
func NewHistoryUseCase(
	prescriptionRepo repository.PrescriptionRepository,
	patientRepo repository.PatientRepository,
	movementRepo repository.StockMovementRepository,
	lotRepo repository.StockLotRepository,
	thresholdDays int,
) *HistoryUseCase {
	if thresholdDays <= 0 {
		thresholdDays = domalerting.DefaultThresholdDays
	}
	return &HistoryUseCase{
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		movementRepo:     movementRepo,
		lotRepo:          lotRepo,
		thresholdDays:    thresholdDays,
	}
}

// MedicineHistory reconstruye qué recibió efectivamente el paciente a partir
// de los movimientos OUT de sus prescripciones dispensadas. El registro de
// movimientos es la fuente de verdad, no las líneas prescritas: así el
// historial refleja lo entregado aunque la prescripción cambie de forma.
func (uc *HistoryUseCase) MedicineHistory(ctx context.Context, patientID string) ([]dto.MedicineHistoryEntry, error) {
	prescriptions, err := uc.patientPrescriptions(ctx, patientID)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.MedicineHistoryEntry, 0)
	for i := range prescriptions {
		p := &prescriptions[i]
		if !p.Dispensed() {
			continue
		}
		movements, err := uc.movementRepo.ListByReference(p.ID)
		if err != nil {
			return nil, err
		}
		for _, mov := range movements {
			if mov.Type != entity.MovementTypeOUT {
				continue
			}
			entries = append(entries, dto.MedicineHistoryEntry{
				PrescriptionID: p.ID,
				ProductName:    mov.ProductName,
				Batch:          mov.Batch,
				Qty:            -mov.Quantity,
				DoctorName:     p.DoctorName,
				DispensedAt:    p.DispensedAt,
			})
		}
	}
	return entries, nil
}

// Alerts computa las alertas de vencimiento vigentes restringidas a los
// lotes que aparecen en las prescripciones del paciente.
func (uc *HistoryUseCase) Alerts(ctx context.Context, patientID string) ([]domalerting.ExpiryAlert, error) {
	prescriptions, err := uc.patientPrescriptions(ctx, patientID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var lots []entity.StockLot
	for i := range prescriptions {
		for _, m := range prescriptions[i].Medications {
			key := m.ProductName + "\x00" + m.Batch
			if seen[key] {
				continue
			}
			seen[key] = true
			lot, err := uc.lotRepo.Get(m.ProductName, m.Batch)
			if err != nil {
				return nil, err
			}
			if lot == nil {
				continue
			}
			lots = append(lots, *lot)
		}
	}
	return domalerting.ComputeAlerts(lots, time.Now(), uc.thresholdDays), nil
}

func (uc *HistoryUseCase) patientPrescriptions(_ context.Context, patientID string) ([]entity.Prescription, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, domain.NewValidationError("patient_id")
	}
	patient, err := uc.patientRepo.GetByID(patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}
	return uc.prescriptionRepo.ListByPatient(patientID)
}
