package inventory

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/farmacia-api/internal/application/dto"
	"github.com/tu-usuario/farmacia-api/internal/domain"
	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	lots      map[string]*entity.StockLot
	movements []entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{lots: make(map[string]*entity.StockLot)}
}

func lotKey(productName, batch string) string { return productName + "|" + batch }

type memLotRepo struct{ s *memStore }

func (r *memLotRepo) Upsert(lot *entity.StockLot) error {
	key := lotKey(lot.ProductName, lot.Batch)
	if existing, ok := r.s.lots[key]; ok {
		existing.Quantity += lot.Quantity
		existing.Expiry = lot.Expiry
		existing.UpdatedAt = lot.UpdatedAt
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

type memTxRunner struct{ s *memStore }

func (t *memTxRunner) Run(_ context.Context, fn func(
	lotRepo repository.StockLotRepository,
	movRepo repository.StockMovementRepository,
	prescriptionRepo repository.PrescriptionRepository,
) error) error {
	return fn(&memLotRepo{t.s}, &memMovementRepo{t.s}, nil)
}

func newUC() (*UseCase, *memStore) {
	s := newMemStore()
	return NewUseCase(&memTxRunner{s}, &memLotRepo{s}), s
}

func validInput() dto.UpsertLotInput {
	return dto.UpsertLotInput{
		ProductName: "Paracetamol 500mg",
		Batch:       "L-100",
		Expiry:      time.Now().AddDate(1, 0, 0),
		Quantity:    10,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// UpsertLot
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsertLot_CreaLoteYMovimientoIN(t *testing.T) {
	uc, s := newUC()

	err := uc.UpsertLot(context.Background(), validInput(), "factura-01.csv")

	require.NoError(t, err)
	lot := s.lots[lotKey("Paracetamol 500mg", "L-100")]
	require.NotNil(t, lot)
	assert.Equal(t, int64(10), lot.Quantity)

	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.MovementTypeIN, s.movements[0].Type)
	assert.Equal(t, int64(10), s.movements[0].Quantity)
	assert.Equal(t, "factura-01.csv", s.movements[0].Reference)
}

func TestUpsertLot_SumaCantidadAlLoteExistente(t *testing.T) {
	uc, s := newUC()

	require.NoError(t, uc.UpsertLot(context.Background(), validInput(), "factura-01.csv"))
	require.NoError(t, uc.UpsertLot(context.Background(), validInput(), "factura-02.csv"))

	assert.Len(t, s.lots, 1, "misma clave product_name+batch: un solo lote")
	assert.Equal(t, int64(20), s.lots[lotKey("Paracetamol 500mg", "L-100")].Quantity)
	assert.Len(t, s.movements, 2)
}

func TestUpsertLot_MismoProductoOtroLoteEsFilaSeparada(t *testing.T) {
	uc, s := newUC()

	require.NoError(t, uc.UpsertLot(context.Background(), validInput(), "factura-01.csv"))
	in := validInput()
	in.Batch = "L-200"
	require.NoError(t, uc.UpsertLot(context.Background(), in, "factura-01.csv"))

	assert.Len(t, s.lots, 2)
}

func TestUpsertLot_ValidaEntrada(t *testing.T) {
	uc, s := newUC()

	err := uc.UpsertLot(context.Background(), dto.UpsertLotInput{Quantity: -3}, "factura-01.csv")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "product_name")
	assert.Contains(t, vErr.Fields, "batch")
	assert.Contains(t, vErr.Fields, "expiry_date")
	assert.Contains(t, vErr.Fields, "quantity")
	assert.Empty(t, s.lots)
	assert.Empty(t, s.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListLots
// ──────────────────────────────────────────────────────────────────────────────

func TestListLots_AnotaDiasYVencido(t *testing.T) {
	uc, _ := newUC()

	vencido := validInput()
	vencido.Expiry = time.Now().AddDate(0, 0, -3)
	require.NoError(t, uc.UpsertLot(context.Background(), vencido, "factura-01.csv"))

	vigente := validInput()
	vigente.Batch = "L-200"
	vigente.Expiry = time.Now().AddDate(0, 0, 30)
	require.NoError(t, uc.UpsertLot(context.Background(), vigente, "factura-01.csv"))

	lots, err := uc.ListLots(context.Background())

	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.True(t, lots[0].Expired)
	assert.Equal(t, -3, lots[0].DaysToExpiry)
	assert.False(t, lots[1].Expired)
	assert.Equal(t, 30, lots[1].DaysToExpiry)
}

// Un lote con cantidad cero sigue listándose: la identidad del lote no
// desaparece al agotarse el stock.
func TestListLots_IncluyeLotesAgotados(t *testing.T) {
	uc, s := newUC()

	require.NoError(t, uc.UpsertLot(context.Background(), validInput(), "factura-01.csv"))
	require.NoError(t, (&memLotRepo{s}).UpdateQuantity("Paracetamol 500mg", "L-100", 0))

	lots, err := uc.ListLots(context.Background())

	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, int64(0), lots[0].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// SearchLots
// ──────────────────────────────────────────────────────────────────────────────

func TestSearchLots_SubcadenaInsensibleAMayusculas(t *testing.T) {
	uc, _ := newUC()
	require.NoError(t, uc.UpsertLot(context.Background(), validInput(), "factura-01.csv"))
	otro := validInput()
	otro.ProductName = "Ibuprofeno 400mg"
	otro.Batch = "L-300"
	require.NoError(t, uc.UpsertLot(context.Background(), otro, "factura-01.csv"))

	lots, err := uc.SearchLots(context.Background(), "  PARACE ")

	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "Paracetamol 500mg", lots[0].ProductName)
}

func TestSearchLots_SinCoincidenciasEsListaVacia(t *testing.T) {
	uc, _ := newUC()
	require.NoError(t, uc.UpsertLot(context.Background(), validInput(), "factura-01.csv"))

	lots, err := uc.SearchLots(context.Background(), "omeprazol")

	require.NoError(t, err)
	assert.Empty(t, lots)
}

func TestSearchLots_TerminoVacioEsInvalido(t *testing.T) {
	uc, _ := newUC()

	_, err := uc.SearchLots(context.Background(), "   ")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// BatchInfo
// ──────────────────────────────────────────────────────────────────────────────

func TestBatchInfo_DevuelveTodosLosProductosDelLote(t *testing.T) {
	uc, _ := newUC()
	require.NoError(t, uc.UpsertLot(context.Background(), validInput(), "factura-01.csv"))
	// Mismo número de lote en otro producto: ambos deben aparecer.
	otro := validInput()
	otro.ProductName = "Ibuprofeno 400mg"
	require.NoError(t, uc.UpsertLot(context.Background(), otro, "factura-01.csv"))

	lots, err := uc.BatchInfo(context.Background(), "L-100")

	require.NoError(t, err)
	require.Len(t, lots, 2)
	assert.Equal(t, "L-100", lots[0].Batch)
	assert.Equal(t, "L-100", lots[1].Batch)
}

func TestBatchInfo_InexistenteEsNotFound(t *testing.T) {
	uc, _ := newUC()

	_, err := uc.BatchInfo(context.Background(), "L-999")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteLot
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteLot_EliminaPorClaveCompuesta(t *testing.T) {
	uc, s := newUC()
	require.NoError(t, uc.UpsertLot(context.Background(), validInput(), "factura-01.csv"))

	err := uc.DeleteLot(context.Background(), "Paracetamol 500mg", "L-100")

	require.NoError(t, err)
	assert.Empty(t, s.lots)
}

func TestDeleteLot_ClaveIncompletaEsInvalida(t *testing.T) {
	uc, _ := newUC()

	err := uc.DeleteLot(context.Background(), "Paracetamol 500mg", "")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"batch"}, vErr.Fields)
}

func TestDeleteLot_InexistenteEsNotFound(t *testing.T) {
	uc, _ := newUC()

	err := uc.DeleteLot(context.Background(), "Paracetamol 500mg", "L-999")

	require.ErrorIs(t, err, domain.ErrNotFound)
}
