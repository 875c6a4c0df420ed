package prescription

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/farmacia-api/internal/application/dto"
	"github.com/tu-usuario/farmacia-api/internal/application/inventory"
	"github.com/tu-usuario/farmacia-api/internal/domain"
	domalerting "github.com/tu-usuario/farmacia-api/internal/domain/alerting"
	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

// UseCase motor de prescripciones: creación (intención, sin tocar inventario)
// y dispensación transaccional todo-o-nada.
type UseCase struct {
	txRunner         inventory.TxRunner
	prescriptionRepo repository.PrescriptionRepository
	patientRepo      repository.PatientRepository
	lotRepo          repository.StockLotRepository
	qr               QRGenerator
	notifier         Notifier
	thresholdDays    int
}

// NewUseCase construye el motor. qr y notifier pueden ser nil (sin artefacto
// QR / sin notificaciones); thresholdDays <= 0 usa el umbral por defecto.
func NewUseCase(
	txRunner inventory.TxRunner,
	prescriptionRepo repository.PrescriptionRepository,
	patientRepo repository.PatientRepository,
	lotRepo repository.StockLotRepository,
	qr QRGenerator,
	notifier Notifier,
	thresholdDays int,
) *UseCase {
	if thresholdDays <= 0 {
		thresholdDays = domalerting.DefaultThresholdDays
	}
	return &UseCase{
		txRunner:         txRunner,
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		lotRepo:          lotRepo,
		qr:               qr,
		notifier:         notifier,
		thresholdDays:    thresholdDays,
	}
}

// Create registra una prescripción en estado created. No descuenta
// inventario: la existencia y el stock de cada línea se verifican recién al
// dispensar. Si el cliente trae su propio prescription_id (p. ej. derivado
// de timestamp) no se confía en él: la unicidad la impone la BD y una
// colisión responde Conflict.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	var invalid []string
	if strings.TrimSpace(in.PatientID) == "" {
		invalid = append(invalid, "patient_id")
	}
	if strings.TrimSpace(in.DoctorName) == "" {
		invalid = append(invalid, "doctor_name")
	}
	if len(in.Medications) == 0 {
		invalid = append(invalid, "medications")
	}
	for i, m := range in.Medications {
		if strings.TrimSpace(m.ProductName) == "" {
			invalid = append(invalid, fmt.Sprintf("medications[%d].product_name", i))
		}
		if strings.TrimSpace(m.Batch) == "" {
			invalid = append(invalid, fmt.Sprintf("medications[%d].batch", i))
		}
		if m.Qty < 1 {
			invalid = append(invalid, fmt.Sprintf("medications[%d].qty", i))
		}
	}
	if len(invalid) > 0 {
		return nil, domain.NewValidationError(invalid...)
	}

	patient, err := uc.patientRepo.GetByID(in.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}

	id := strings.TrimSpace(in.PrescriptionID)
	if id == "" {
		id = uuid.New().String()
	}
	meds := make([]entity.Medication, 0, len(in.Medications))
	for _, m := range in.Medications {
		meds = append(meds, entity.Medication{
			ProductName: strings.TrimSpace(m.ProductName),
			Batch:       strings.TrimSpace(m.Batch),
			Qty:         m.Qty,
			Dosage:      m.Dosage,
		})
	}
	p := &entity.Prescription{
		ID:          id,
		PatientID:   in.PatientID,
		DoctorName:  strings.TrimSpace(in.DoctorName),
		PharmacyID:  in.PharmacyID,
		Medications: meds,
		Status:      entity.PrescriptionStatusCreated,
		CreatedAt:   time.Now(),
	}
	if err := uc.prescriptionRepo.Create(p); err != nil {
		return nil, err
	}

	// Artefacto QR best-effort: la prescripción ya quedó persistida y el PNG
	// se puede regenerar bajo demanda al servirlo.
	if uc.qr != nil {
		path, err := uc.qr.Generate(p.ID)
		if err != nil {
			log.Warn().Err(err).Str("prescription_id", p.ID).Msg("generación de QR falló")
		} else {
			p.QRPath = path
			if err := uc.prescriptionRepo.SetQRPath(p.ID, path); err != nil {
				log.Warn().Err(err).Str("prescription_id", p.ID).Msg("no se pudo guardar qr_path")
			}
		}
	}
	return toResponse(p), nil
}

// Get obtiene el registro completo de una prescripción.
func (uc *UseCase) Get(_ context.Context, id string) (*dto.PrescriptionResponse, error) {
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
	return toResponse(p), nil
}

// List devuelve todas las prescripciones.
func (uc *UseCase) List(_ context.Context) ([]dto.PrescriptionResponse, error) {
	list, err := uc.prescriptionRepo.List()
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// ListByPatient devuelve las prescripciones de un paciente.
func (uc *UseCase) ListByPatient(_ context.Context, patientID string) ([]dto.PrescriptionResponse, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, domain.NewValidationError("patient_id")
	}
	list, err := uc.prescriptionRepo.ListByPatient(patientID)
	if err != nil {
		return nil, err
	}
	return toResponses(list), nil
}

// Dispense ejecuta la transición created → dispensed en una sola transacción:
// bloquea la fila de la prescripción (serializa escaneos concurrentes del
// mismo QR), verifica y descuenta cada línea con su lote bloqueado FOR UPDATE
// y registra los movimientos OUT. Cualquier línea sin stock suficiente aborta
// la transacción completa: nunca queda una dispensación parcial.
// Las líneas se procesan en orden (producto, lote) para que dos dispensaciones
// con lotes solapados tomen los bloqueos en el mismo orden.
func (uc *UseCase) Dispense(ctx context.Context, id, pharmacyID string) (*dto.PrescriptionResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("prescription_id")
	}

	var dispensed *entity.Prescription
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		prescriptionRepo repository.PrescriptionRepository,
	) error {
		p, err := prescriptionRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.Dispensed() {
			return domain.ErrAlreadyDispensed
		}

		meds := make([]entity.Medication, len(p.Medications))
		copy(meds, p.Medications)
		sort.Slice(meds, func(i, j int) bool {
			if meds[i].ProductName != meds[j].ProductName {
				return meds[i].ProductName < meds[j].ProductName
			}
			return meds[i].Batch < meds[j].Batch
		})

		now := time.Now()
		for _, m := range meds {
			lot, err := lotRepo.GetForUpdate(m.ProductName, m.Batch)
			if err != nil {
				return err
			}
			if lot == nil {
				return &domain.StockShortageError{
					ProductName: m.ProductName, Batch: m.Batch,
					Available: 0, Requested: m.Qty,
				}
			}
			if lot.Quantity < m.Qty {
				return &domain.StockShortageError{
					ProductName: m.ProductName, Batch: m.Batch,
					Available: lot.Quantity, Requested: m.Qty,
				}
			}
			if err := lotRepo.UpdateQuantity(m.ProductName, m.Batch, lot.Quantity-m.Qty); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.StockMovement{
				ID:          uuid.New().String(),
				ProductName: m.ProductName,
				Batch:       m.Batch,
				Type:        entity.MovementTypeOUT,
				Quantity:    -m.Qty,
				Reference:   p.ID,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
		}

		if err := prescriptionRepo.MarkDispensed(p.ID, pharmacyID, now); err != nil {
			return err
		}
		p.Status = entity.PrescriptionStatusDispensed
		p.DispensedAt = &now
		if pharmacyID != "" {
			p.PharmacyID = pharmacyID
		}
		dispensed = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifyExpiring(dispensed)
	return toResponse(dispensed), nil
}

// notifyExpiring revisa, ya fuera de la transacción, si algún medicamento
// dispensado está vencido o por vencer y avisa al paciente.
func (uc *UseCase) notifyExpiring(p *entity.Prescription) {
	if uc.notifier == nil {
		return
	}
	patient, err := uc.patientRepo.GetByID(p.PatientID)
	if err != nil || patient == nil {
		log.Warn().Err(err).Str("patient_id", p.PatientID).Msg("paciente no disponible para notificar")
		return
	}
	now := time.Now()
	var lots []entity.StockLot
	for _, m := range p.Medications {
		lot, err := uc.lotRepo.Get(m.ProductName, m.Batch)
		if err != nil || lot == nil {
			continue
		}
		lots = append(lots, *lot)
	}
	alerts := domalerting.ComputeAlerts(lots, now, uc.thresholdDays)
	if len(alerts) == 0 {
		return
	}
	if err := uc.notifier.NotifyDispensed(patient, p, alerts); err != nil {
		log.Warn().Err(err).Str("prescription_id", p.ID).Msg("notificación al paciente falló")
	}
}

func toResponse(p *entity.Prescription) *dto.PrescriptionResponse {
	meds := make([]dto.MedicationDTO, 0, len(p.Medications))
	for _, m := range p.Medications {
		meds = append(meds, dto.MedicationDTO{
			ProductName: m.ProductName,
			Batch:       m.Batch,
			Qty:         m.Qty,
			Dosage:      m.Dosage,
		})
	}
	return &dto.PrescriptionResponse{
		PrescriptionID: p.ID,
		PatientID:      p.PatientID,
		DoctorName:     p.DoctorName,
		PharmacyID:     p.PharmacyID,
		Medications:    meds,
		Status:         p.Status,
		QRPath:         p.QRPath,
		CreatedAt:      p.CreatedAt,
		DispensedAt:    p.DispensedAt,
	}
}

func toResponses(list []entity.Prescription) []dto.PrescriptionResponse {
	out := make([]dto.PrescriptionResponse, 0, len(list))
	for i := range list {
		out = append(out, *toResponse(&list[i]))
	}
	return out
}
