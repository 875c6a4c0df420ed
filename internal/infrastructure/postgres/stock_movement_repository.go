package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository. Los movimientos
// son append-only: se insertan en la misma transacción que el cambio de stock
// y nunca se actualizan.
type StockMovementRepo struct {
	q Querier
}

func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento de inventario.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_name, batch, movement_type, quantity, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductName, m.Batch, m.Type, m.Quantity, m.Reference, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByReference devuelve los movimientos asociados a una referencia
// (nombre de factura o ID de prescripción), en orden de registro.
func (r *StockMovementRepo) ListByReference(reference string) ([]entity.StockMovement, error) {
	query := `
		SELECT id, product_name, batch, movement_type, quantity, reference, created_at
		FROM stock_movements
		WHERE reference = $1
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, reference)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductName, &m.Batch, &m.Type, &m.Quantity, &m.Reference, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
