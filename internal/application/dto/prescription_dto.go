package dto

import "time"

// MedicationDTO línea de medicamento en requests y respuestas.
type MedicationDTO struct {
	ProductName string `json:"product_name"`
	Batch       string `json:"batch"`
	Qty         int64  `json:"qty"`
	Dosage      string `json:"dosage,omitempty"`
}

// CreatePrescriptionRequest body para POST /api/create_prescription.
// PrescriptionID es opcional: si el cliente lo envía (p. ej. token derivado
// de timestamp para pre-generar el QR) el servidor igualmente valida unicidad.
type CreatePrescriptionRequest struct {
	PrescriptionID string          `json:"prescription_id,omitempty"`
	PatientID      string          `json:"patient_id"`
	DoctorName     string          `json:"doctor_name"`
	PharmacyID     string          `json:"pharmacy_id,omitempty"`
	Medications    []MedicationDTO `json:"medications"`
}

// PrescriptionResponse registro completo de una prescripción.
type PrescriptionResponse struct {
	PrescriptionID string          `json:"prescription_id"`
	PatientID      string          `json:"patient_id"`
	DoctorName     string          `json:"doctor_name"`
	PharmacyID     string          `json:"pharmacy_id,omitempty"`
	Medications    []MedicationDTO `json:"medications"`
	Status         string          `json:"status"`
	QRPath         string          `json:"qr_path,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	DispensedAt    *time.Time      `json:"dispensed_at,omitempty"`
}

// MedicineHistoryEntry una línea del historial de medicamentos dispensados
// a un paciente, reconstruida desde los movimientos OUT de sus prescripciones.
type MedicineHistoryEntry struct {
	PrescriptionID string     `json:"prescription_id"`
	ProductName    string     `json:"product_name"`
	Batch          string     `json:"batch"`
	Qty            int64      `json:"qty"`
	DoctorName     string     `json:"doctor_name"`
	DispensedAt    *time.Time `json:"dispensed_at,omitempty"`
}

// ScanQRRequest body para POST /api/scan_qr (operación de dispensación).
type ScanQRRequest struct {
	PrescriptionID string `json:"prescription_id"`
	PharmacyID     string `json:"pharmacy_id,omitempty"`
}
