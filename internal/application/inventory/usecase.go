package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/farmacia-api/internal/application/dto"
	"github.com/tu-usuario/farmacia-api/internal/domain"
	"github.com/tu-usuario/farmacia-api/internal/domain/alerting"
	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

// UseCase operaciones sobre el almacén de lotes: alta/incremento por ingesta,
// listado anotado y eliminación explícita.
type UseCase struct {
	txRunner TxRunner
	lotRepo  repository.StockLotRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, lotRepo repository.StockLotRepository) *UseCase {
	return &UseCase{txRunner: txRunner, lotRepo: lotRepo}
}

// UpsertLot crea el lote o suma la cantidad al existente, y registra el
// movimiento IN en la misma transacción. reference identifica el origen
// (nombre del archivo de factura o "seed").
func (uc *UseCase) UpsertLot(ctx context.Context, in dto.UpsertLotInput, reference string) error {
	var missing []string
	if strings.TrimSpace(in.ProductName) == "" {
		missing = append(missing, "product_name")
	}
	if strings.TrimSpace(in.Batch) == "" {
		missing = append(missing, "batch")
	}
	if in.Expiry.IsZero() {
		missing = append(missing, "expiry_date")
	}
	if in.Quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if len(missing) > 0 {
		return domain.NewValidationError(missing...)
	}

	now := time.Now()
	lot := &entity.StockLot{
		ProductName:  strings.TrimSpace(in.ProductName),
		Batch:        strings.TrimSpace(in.Batch),
		Expiry:       in.Expiry,
		Quantity:     in.Quantity,
		HSN:          in.HSN,
		MRP:          in.MRP,
		Rate:         in.Rate,
		Manufacturer: in.Manufacturer,
		GTIN:         in.GTIN,
		UpdatedAt:    now,
	}
	return uc.txRunner.Run(ctx, func(
		lotRepo repository.StockLotRepository,
		movRepo repository.StockMovementRepository,
		_ repository.PrescriptionRepository,
	) error {
		if err := lotRepo.Upsert(lot); err != nil {
			return err
		}
		return movRepo.Create(&entity.StockMovement{
			ID:          uuid.New().String(),
			ProductName: lot.ProductName,
			Batch:       lot.Batch,
			Type:        entity.MovementTypeIN,
			Quantity:    in.Quantity,
			Reference:   reference,
			CreatedAt:   now,
		})
	})
}

// ListLots devuelve todos los lotes anotados con días al vencimiento y la
// marca expired, calculados contra la fecha actual.
func (uc *UseCase) ListLots(_ context.Context) ([]dto.StockLotResponse, error) {
	lots, err := uc.lotRepo.List()
	if err != nil {
		return nil, err
	}
	return annotateLots(lots, time.Now()), nil
}

// SearchLots busca medicamentos por subcadena del nombre de producto,
// sin distinguir mayúsculas. La consulta en blanco es inválida: un
// término vacío devolvería el inventario completo por accidente.
func (uc *UseCase) SearchLots(_ context.Context, query string) ([]dto.StockLotResponse, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, domain.NewValidationError("q")
	}
	lots, err := uc.lotRepo.List()
	if err != nil {
		return nil, err
	}
	matched := make([]entity.StockLot, 0)
	for _, lot := range lots {
		if strings.Contains(strings.ToLower(lot.ProductName), q) {
			matched = append(matched, lot)
		}
	}
	return annotateLots(matched, time.Now()), nil
}

// BatchInfo devuelve los lotes registrados bajo un número de lote. Un mismo
// número puede repetirse entre productos distintos, así que la respuesta es
// una lista; si no hay ninguno, NotFound.
func (uc *UseCase) BatchInfo(_ context.Context, batch string) ([]dto.StockLotResponse, error) {
	b := strings.TrimSpace(batch)
	if b == "" {
		return nil, domain.NewValidationError("batch")
	}
	lots, err := uc.lotRepo.List()
	if err != nil {
		return nil, err
	}
	matched := make([]entity.StockLot, 0)
	for _, lot := range lots {
		if lot.Batch == b {
			matched = append(matched, lot)
		}
	}
	if len(matched) == 0 {
		return nil, domain.ErrNotFound
	}
	return annotateLots(matched, time.Now()), nil
}

func annotateLots(lots []entity.StockLot, now time.Time) []dto.StockLotResponse {
	out := make([]dto.StockLotResponse, 0, len(lots))
	for _, lot := range lots {
		days := alerting.DaysToExpiry(lot.Expiry, now)
		out = append(out, dto.StockLotResponse{
			ProductName:  lot.ProductName,
			Batch:        lot.Batch,
			Expiry:       lot.Expiry,
			Quantity:     lot.Quantity,
			DaysToExpiry: days,
			Expired:      days < 0,
			HSN:          lot.HSN,
			MRP:          lot.MRP,
			Rate:         lot.Rate,
			Manufacturer: lot.Manufacturer,
			GTIN:         lot.GTIN,
			UpdatedAt:    lot.UpdatedAt,
		})
	}
	return out
}

// DeleteLot elimina el lote identificado por (product_name, batch).
// Ambas claves son obligatorias: nunca se hace no-op silencioso sobre una
// identidad incompleta o inexistente.
func (uc *UseCase) DeleteLot(_ context.Context, productName, batch string) error {
	var missing []string
	if strings.TrimSpace(productName) == "" {
		missing = append(missing, "product_name")
	}
	if strings.TrimSpace(batch) == "" {
		missing = append(missing, "batch")
	}
	if len(missing) > 0 {
		return domain.NewValidationError(missing...)
	}
	deleted, err := uc.lotRepo.Delete(strings.TrimSpace(productName), strings.TrimSpace(batch))
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}
