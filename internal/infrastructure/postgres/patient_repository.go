package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/farmacia-api/internal/domain"
	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

// PatientRepo implementación de PatientRepository (usable con pool o tx).
type PatientRepo struct {
	q Querier
}

// NewPatientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

// Create persiste un nuevo paciente.
func (r *PatientRepo) Create(patient *entity.Patient) error {
	query := `
		INSERT INTO patients (id, name, age, gender, contact, email, notes, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		patient.ID, patient.Name, patient.Age, patient.Gender,
		patient.Contact, patient.Email, patient.Notes, patient.RegisteredAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

// GetByID obtiene un paciente por ID. Devuelve (nil, nil) si no existe.
func (r *PatientRepo) GetByID(id string) (*entity.Patient, error) {
	query := `
		SELECT id, name, age, gender, contact, email, notes, registered_at
		FROM patients WHERE id = $1`
	var p entity.Patient
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Age, &p.Gender, &p.Contact, &p.Email, &p.Notes, &p.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return &p, nil
}

// List devuelve todos los pacientes ordenados por fecha de registro.
func (r *PatientRepo) List() ([]entity.Patient, error) {
	query := `
		SELECT id, name, age, gender, contact, email, notes, registered_at
		FROM patients ORDER BY registered_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()
	var list []entity.Patient
	for rows.Next() {
		var p entity.Patient
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Age, &p.Gender, &p.Contact, &p.Email, &p.Notes, &p.RegisteredAt,
		); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
