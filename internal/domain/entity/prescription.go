package entity

import "time"

// Estados de una prescripción. La única transición válida es
// created → dispensed, y es irreversible.
const (
	PrescriptionStatusCreated   = "created"
	PrescriptionStatusDispensed = "dispensed"
)

// Medication es una línea de medicamento dentro de una prescripción.
// Referencia un StockLot por (ProductName, Batch); la existencia y el
// stock suficiente se verifican al dispensar, no al crear.
// Se persiste como JSONB, de ahí las etiquetas json.
type Medication struct {
	ProductName string `json:"product_name"`
	Batch       string `json:"batch"`
	Qty         int64  `json:"qty"`
	Dosage      string `json:"dosage,omitempty"`
}

// Prescription representa una prescripción médica. Crear una prescripción
// solo registra la intención: el inventario se descuenta al dispensar.
type Prescription struct {
	ID          string
	PatientID   string
	DoctorName  string
	PharmacyID  string
	Medications []Medication
	Status      string
	QRPath      string
	CreatedAt   time.Time
	DispensedAt *time.Time
}

// Dispensed indica si la prescripción ya alcanzó su estado terminal.
func (p *Prescription) Dispensed() bool {
	return p.Status == PrescriptionStatusDispensed
}
