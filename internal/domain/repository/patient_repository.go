package repository

import "github.com/tu-usuario/farmacia-api/internal/domain/entity"

// PatientRepository define el puerto de persistencia para pacientes.
type PatientRepository interface {
	Create(patient *entity.Patient) error
	// GetByID devuelve (nil, nil) si el paciente no existe.
	GetByID(id string) (*entity.Patient, error)
	List() ([]entity.Patient, error)
}
