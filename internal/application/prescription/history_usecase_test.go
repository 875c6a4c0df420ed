package prescription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-api/internal/application/dto"
	"github.com/tu-usuario/farmacia-api/internal/domain"
	domalerting "github.com/tu-usuario/farmacia-api/internal/domain/alerting"
)

func newHistoryFixture(t *testing.T) (*fixture, *HistoryUseCase) {
	t.Helper()
	f := newFixture(t)
	huc := NewHistoryUseCase(
		&memPrescriptionRepo{f.store}, &memPatientRepo{f.store},
		&memMovementRepo{f.store}, &memLotRepo{f.store}, 15,
	)
	return f, huc
}

// ──────────────────────────────────────────────────────────────────────────────
// MedicineHistory
// ──────────────────────────────────────────────────────────────────────────────

func TestHistorial_ReconstruyeDesdeMovimientosOUT(t *testing.T) {
	f, huc := newHistoryFixture(t)
	f.addPatient("pac-1")
	f.addLot("Paracetamol 500mg", "L-100", 10, time.Now().AddDate(1, 0, 0))
	f.addLot("Ibuprofeno 400mg", "L-300", 5, time.Now().AddDate(1, 0, 0))

	req := validRequest()
	req.Medications = append(req.Medications, dto.MedicationDTO{
		ProductName: "Ibuprofeno 400mg", Batch: "L-300", Qty: 1,
	})
	created, err := f.uc.Create(context.Background(), req)
	require.NoError(t, err)
	_, err = f.uc.Dispense(context.Background(), created.PrescriptionID, "far-1")
	require.NoError(t, err)

	entries, err := huc.MedicineHistory(context.Background(), "pac-1")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	byProduct := map[string]dto.MedicineHistoryEntry{}
	for _, e := range entries {
		byProduct[e.ProductName] = e
	}
	assert.Equal(t, int64(2), byProduct["Paracetamol 500mg"].Qty, "las cantidades se reportan en positivo")
	assert.Equal(t, int64(1), byProduct["Ibuprofeno 400mg"].Qty)
	assert.Equal(t, created.PrescriptionID, byProduct["Paracetamol 500mg"].PrescriptionID)
	assert.Equal(t, "Dra. Ruiz", byProduct["Paracetamol 500mg"].DoctorName)
	require.NotNil(t, byProduct["Paracetamol 500mg"].DispensedAt)
}

func TestHistorial_IgnoraPrescripcionesSinDispensar(t *testing.T) {
	f, huc := newHistoryFixture(t)
	f.addPatient("pac-1")

	_, err := f.uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	entries, err := huc.MedicineHistory(context.Background(), "pac-1")

	require.NoError(t, err)
	assert.Empty(t, entries, "solo lo dispensado forma parte del historial")
}

func TestHistorial_PacienteInexistente(t *testing.T) {
	_, huc := newHistoryFixture(t)

	_, err := huc.MedicineHistory(context.Background(), "pac-999")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas por paciente
// ──────────────────────────────────────────────────────────────────────────────

func TestAlertasDePaciente_SoloLotesPrescritos(t *testing.T) {
	f, huc := newHistoryFixture(t)
	f.addPatient("pac-1")
	// Lote prescrito por vencer y otro lote igual de urgente que el
	// paciente nunca recibió: solo el primero debe alertarse.
	f.addLot("Paracetamol 500mg", "L-100", 10, time.Now().AddDate(0, 0, 5))
	f.addLot("Omeprazol 20mg", "L-500", 10, time.Now().AddDate(0, 0, 3))

	_, err := f.uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	alerts, err := huc.Alerts(context.Background(), "pac-1")

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Paracetamol 500mg", alerts[0].ProductName)
	assert.Equal(t, domalerting.AlertTypeExpiringSoon, alerts[0].AlertType)
}

func TestAlertasDePaciente_SinVencimientosEsListaVacia(t *testing.T) {
	f, huc := newHistoryFixture(t)
	f.addPatient("pac-1")
	f.addLot("Paracetamol 500mg", "L-100", 10, time.Now().AddDate(1, 0, 0))

	_, err := f.uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	alerts, err := huc.Alerts(context.Background(), "pac-1")

	require.NoError(t, err)
	assert.Empty(t, alerts)
}
