package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/farmacia-api/internal/domain/entity"
	"github.com/tu-usuario/farmacia-api/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

// StockLotRepo implementación de StockLotRepository sobre PostgreSQL
// (usable con pool o tx).
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

const stockLotColumns = `product_name, batch, expiry_date, quantity, hsn, mrp, rate, manufacturer, gtin, updated_at`

// Upsert inserta el lote o suma la cantidad al existente (clave product_name+batch).
// Los campos descriptivos quedan con los valores del último ingreso.
func (r *StockLotRepo) Upsert(lot *entity.StockLot) error {
	query := `
		INSERT INTO stock_lots (` + stockLotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (product_name, batch)
		DO UPDATE SET
			quantity     = stock_lots.quantity + EXCLUDED.quantity,
			expiry_date  = EXCLUDED.expiry_date,
			hsn          = EXCLUDED.hsn,
			mrp          = EXCLUDED.mrp,
			rate         = EXCLUDED.rate,
			manufacturer = EXCLUDED.manufacturer,
			gtin         = EXCLUDED.gtin,
			updated_at   = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		lot.ProductName, lot.Batch, lot.Expiry, lot.Quantity,
		lot.HSN, lot.MRP, lot.Rate, lot.Manufacturer, lot.GTIN, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock lot: %w", err)
	}
	return nil
}

// Get obtiene un lote por clave. Devuelve (nil, nil) si no existe.
func (r *StockLotRepo) Get(productName, batch string) (*entity.StockLot, error) {
	query := `SELECT ` + stockLotColumns + ` FROM stock_lots WHERE product_name = $1 AND batch = $2`
	return r.getOne(query, productName, batch)
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *StockLotRepo) GetForUpdate(productName, batch string) (*entity.StockLot, error) {
	query := `SELECT ` + stockLotColumns + ` FROM stock_lots WHERE product_name = $1 AND batch = $2 FOR UPDATE`
	return r.getOne(query, productName, batch)
}

func (r *StockLotRepo) getOne(query, productName, batch string) (*entity.StockLot, error) {
	var lot entity.StockLot
	err := r.q.QueryRow(context.Background(), query, productName, batch).Scan(
		&lot.ProductName, &lot.Batch, &lot.Expiry, &lot.Quantity,
		&lot.HSN, &lot.MRP, &lot.Rate, &lot.Manufacturer, &lot.GTIN, &lot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock lot: %w", err)
	}
	return &lot, nil
}

// UpdateQuantity fija la cantidad absoluta del lote. El CHECK quantity >= 0
// de la tabla respalda el invariante aunque el caso de uso ya lo valide.
func (r *StockLotRepo) UpdateQuantity(productName, batch string, quantity int64) error {
	query := `
		UPDATE stock_lots SET quantity = $3, updated_at = now()
		WHERE product_name = $1 AND batch = $2`
	tag, err := r.q.Exec(context.Background(), query, productName, batch, quantity)
	if err != nil {
		return fmt.Errorf("update stock lot quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock lot quantity: lote %s/%s no existe", productName, batch)
	}
	return nil
}

// List devuelve todos los lotes ordenados por producto y lote.
func (r *StockLotRepo) List() ([]entity.StockLot, error) {
	query := `SELECT ` + stockLotColumns + ` FROM stock_lots ORDER BY product_name, batch`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock lots: %w", err)
	}
	defer rows.Close()
	var list []entity.StockLot
	for rows.Next() {
		var lot entity.StockLot
		if err := rows.Scan(
			&lot.ProductName, &lot.Batch, &lot.Expiry, &lot.Quantity,
			&lot.HSN, &lot.MRP, &lot.Rate, &lot.Manufacturer, &lot.GTIN, &lot.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock lot: %w", err)
		}
		list = append(list, lot)
	}
	return list, rows.Err()
}

// Delete elimina el lote; devuelve false si no existía.
func (r *StockLotRepo) Delete(productName, batch string) (bool, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_lots WHERE product_name = $1 AND batch = $2`, productName, batch)
	if err != nil {
		return false, fmt.Errorf("delete stock lot: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
