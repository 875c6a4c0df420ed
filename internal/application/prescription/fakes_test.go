package prescription

import (
	"context"
	"sort"
	"time"

	"github.com/tu-usuario/farmacia-api/internal/domain"
	"github.com/tu-usuario/farmacia-api/internal/domain/alerting"
	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: el runner toma una copia del
// estado antes de ejecutar el callback y la restaura si este devuelve error,
// imitando el rollback de PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	lots          map[string]*entity.StockLot
	movements     []entity.StockMovement
	prescriptions map[string]*entity.Prescription
	patients      map[string]*entity.Patient
}

func newMemStore() *memStore {
	return &memStore{
		lots:          make(map[string]*entity.StockLot),
		prescriptions: make(map[string]*entity.Prescription),
		patients:      make(map[string]*entity.Patient),
	}
}

func lotKey(productName, batch string) string { return productName + "|" + batch }

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.lots {
		lot := *v
		cp.lots[k] = &lot
	}
	cp.movements = append(cp.movements, s.movements...)
	for k, v := range s.prescriptions {
		cp.prescriptions[k] = clonePrescription(v)
	}
	for k, v := range s.patients {
		p := *v
		cp.patients[k] = &p
	}
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.lots = from.lots
	s.movements = from.movements
	s.prescriptions = from.prescriptions
	s.patients = from.patients
}

func clonePrescription(p *entity.Prescription) *entity.Prescription {
	cp := *p
	cp.Medications = append([]entity.Medication(nil), p.Medications...)
	if p.DispensedAt != nil {
		at := *p.DispensedAt
		cp.DispensedAt = &at
	}
	return &cp
}

// ── repos ─────────────────────────────────────────────────────────────────────

type memLotRepo struct{ s *memStore }

func (r *memLotRepo) Upsert(lot *entity.StockLot) error {
	key := lotKey(lot.ProductName, lot.Batch)
	if existing, ok := r.s.lots[key]; ok {
		existing.Quantity += lot.Quantity
		existing.Expiry = lot.Expiry
		existing.UpdatedAt = time.Now()
		return nil
	}
	cp := *lot
	r.s.lots[key] = &cp
	return nil
}

func (r *memLotRepo) Get(productName, batch string) (*entity.StockLot, error) {
	lot, ok := r.s.lots[lotKey(productName, batch)]
	if !ok {
		return nil, nil
	}
	cp := *lot
	return &cp, nil
}

func (r *memLotRepo) GetForUpdate(productName, batch string) (*entity.StockLot, error) {
	return r.Get(productName, batch)
}

func (r *memLotRepo) UpdateQuantity(productName, batch string, quantity int64) error {
	lot, ok := r.s.lots[lotKey(productName, batch)]
	if !ok {
		return domain.ErrNotFound
	}
	lot.Quantity = quantity
	lot.UpdatedAt = time.Now()
	return nil
}

func (r *memLotRepo) List() ([]entity.StockLot, error) {
	out := make([]entity.StockLot, 0, len(r.s.lots))
	for _, lot := range r.s.lots {
		out = append(out, *lot)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductName != out[j].ProductName {
			return out[i].ProductName < out[j].ProductName
		}
		return out[i].Batch < out[j].Batch
	})
	return out, nil
}

func (r *memLotRepo) Delete(productName, batch string) (bool, error) {
	key := lotKey(productName, batch)
	if _, ok := r.s.lots[key]; !ok {
		return false, nil
	}
	delete(r.s.lots, key)
	return true, nil
}

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(mov *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, *mov)
	return nil
}

func (r *memMovementRepo) ListByReference(reference string) ([]entity.StockMovement, error) {
	var out []entity.StockMovement
	for _, m := range r.s.movements {
		if m.Reference == reference {
			out = append(out, m)
		}
	}
	return out, nil
}

type memPrescriptionRepo struct{ s *memStore }

func (r *memPrescriptionRepo) Create(p *entity.Prescription) error {
	if _, ok := r.s.prescriptions[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.prescriptions[p.ID] = clonePrescription(p)
	return nil
}

func (r *memPrescriptionRepo) GetByID(id string) (*entity.Prescription, error) {
	p, ok := r.s.prescriptions[id]
	if !ok {
		return nil, nil
	}
	return clonePrescription(p), nil
}

func (r *memPrescriptionRepo) GetForUpdate(id string) (*entity.Prescription, error) {
	return r.GetByID(id)
}

func (r *memPrescriptionRepo) List() ([]entity.Prescription, error) {
	out := make([]entity.Prescription, 0, len(r.s.prescriptions))
	for _, p := range r.s.prescriptions {
		out = append(out, *clonePrescription(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memPrescriptionRepo) ListByPatient(patientID string) ([]entity.Prescription, error) {
	all, _ := r.List()
	var out []entity.Prescription
	for _, p := range all {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPrescriptionRepo) MarkDispensed(id, pharmacyID string, at time.Time) error {
	p, ok := r.s.prescriptions[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = entity.PrescriptionStatusDispensed
	p.DispensedAt = &at
	if pharmacyID != "" {
		p.PharmacyID = pharmacyID
	}
	return nil
}

func (r *memPrescriptionRepo) SetQRPath(id, path string) error {
	p, ok := r.s.prescriptions[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.QRPath = path
	return nil
}

type memPatientRepo struct{ s *memStore }

func (r *memPatientRepo) Create(patient *entity.Patient) error {
	if _, ok := r.s.patients[patient.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *patient
	r.s.patients[patient.ID] = &cp
	return nil
}

func (r *memPatientRepo) GetByID(id string) (*entity.Patient, error) {
	p, ok := r.s.patients[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPatientRepo) List() ([]entity.Patient, error) {
	out := make([]entity.Patient, 0, len(r.s.patients))
	for _, p := range r.s.patients {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.Before(out[j].RegisteredAt) })
	return out, nil
}

// ── tx runner ─────────────────────────────────────────────────────────────────

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(_ context.Context, fn func(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	prescriptionRepo repository.PrescriptionRepository,
) error) error {
	before := t.s.snapshot()
	err := fn(&memLotRepo{t.s}, &memMovementRepo{t.s}, &memPrescriptionRepo{t.s})
	if err != nil {
		t.s.restore(before)
	}
	return err
}

// ── puertos ───────────────────────────────────────────────────────────────────

type fakeQR struct{ generated []string }

func (q *fakeQR) Generate(prescriptionID string) (string, error) {
	q.generated = append(q.generated, prescriptionID)
	return "/qr/" + prescriptionID + ".png", nil
}

type fakeNotifier struct {
	notified []string
	alerts   []alerting.ExpiryAlert
}

func (n *fakeNotifier) NotifyDispensed(patient *entity.Patient, p *entity.Prescription, alerts []alerting.ExpiryAlert) error {
	n.notified = append(n.notified, p.ID)
	n.alerts = alerts
	return nil
}
