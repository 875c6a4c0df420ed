package repository

import (
	"time"

	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
)

// PrescriptionRepository define el puerto de persistencia para prescripciones.
// GetByID y GetForUpdate devuelven (nil, nil) si no existe.
type PrescriptionRepository interface {
	// Create persiste la prescripción; domain.ErrDuplicate si el ID ya existe
	// (el ID puede venir del cliente y no se confía en su unicidad).
	Create(p *entity.Prescription) error
	GetByID(id string) (*entity.Prescription, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); serializa dispensaciones
	// concurrentes de la misma prescripción. Usar solo dentro de una transacción.
	GetForUpdate(id string) (*entity.Prescription, error)
	List() ([]entity.Prescription, error)
	ListByPatient(patientID string) ([]entity.Prescription, error)
	// MarkDispensed fija status=dispensed, dispensed_at y la farmacia que dispensó.
	MarkDispensed(id, pharmacyID string, at time.Time) error
	SetQRPath(id, path string) error
}
