package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/farmacia-api/internal/domain"
	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

var _ repository.PrescriptionRepository = (*PrescriptionRepo)(nil)

// PrescriptionRepo implementación de PrescriptionRepository (usable con pool o tx).
// Las líneas de medicamento se guardan como JSONB en la misma fila: se leen
// y escriben siempre como unidad y no se consultan por separado.
type PrescriptionRepo struct {
	q Querier
}

// NewPrescriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPrescriptionRepository(q Querier) *PrescriptionRepo {
	return &PrescriptionRepo{q: q}
}

const prescriptionColumns = `id, patient_id, doctor_name, pharmacy_id, medications, status, qr_path, created_at, dispensed_at`

// Create persiste la prescripción. domain.ErrDuplicate si el ID ya existe:
// el ID puede venir del cliente y la unicidad se impone aquí.
func (r *PrescriptionRepo) Create(p *entity.Prescription) error {
	query := `
		INSERT INTO prescriptions (` + prescriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.PatientID, p.DoctorName, p.PharmacyID, p.Medications,
		p.Status, p.QRPath, p.CreatedAt, p.DispensedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert prescription: %w", err)
	}
	return nil
}

// GetByID obtiene una prescripción. Devuelve (nil, nil) si no existe.
func (r *PrescriptionRepo) GetByID(id string) (*entity.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate obtiene la prescripción y bloquea la fila (SELECT FOR UPDATE):
// dos escaneos concurrentes del mismo QR se serializan aquí.
func (r *PrescriptionRepo) GetForUpdate(id string) (*entity.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *PrescriptionRepo) getOne(query, id string) (*entity.Prescription, error) {
	var p entity.Prescription
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.PatientID, &p.DoctorName, &p.PharmacyID, &p.Medications,
		&p.Status, &p.QRPath, &p.CreatedAt, &p.DispensedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prescription: %w", err)
	}
	return &p, nil
}

// List devuelve todas las prescripciones, más recientes primero.
func (r *PrescriptionRepo) List() ([]entity.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions ORDER BY created_at DESC`
	return r.list(query)
}

// ListByPatient devuelve las prescripciones de un paciente, más recientes primero.
func (r *PrescriptionRepo) ListByPatient(patientID string) ([]entity.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE patient_id = $1 ORDER BY created_at DESC`
	return r.list(query, patientID)
}

func (r *PrescriptionRepo) list(query string, args ...any) ([]entity.Prescription, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	defer rows.Close()
	var list []entity.Prescription
	for rows.Next() {
		var p entity.Prescription
		if err := rows.Scan(
			&p.ID, &p.PatientID, &p.DoctorName, &p.PharmacyID, &p.Medications,
			&p.Status, &p.QRPath, &p.CreatedAt, &p.DispensedAt,
		); err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// MarkDispensed fija el estado terminal. pharmacy_id solo se sobreescribe
// si la farmacia que dispensa viene informada.
func (r *PrescriptionRepo) MarkDispensed(id, pharmacyID string, at time.Time) error {
	query := `
		UPDATE prescriptions
		SET status = $2, dispensed_at = $3,
		    pharmacy_id = CASE WHEN $4 = '' THEN pharmacy_id ELSE $4 END
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.PrescriptionStatusDispensed, at, pharmacyID)
	if err != nil {
		return fmt.Errorf("mark prescription dispensed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetQRPath guarda la ruta del artefacto QR generado.
func (r *PrescriptionRepo) SetQRPath(id, path string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE prescriptions SET qr_path = $2 WHERE id = $1`, id, path)
	if err != nil {
		return fmt.Errorf("set prescription qr_path: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
