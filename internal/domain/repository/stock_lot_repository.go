package repository

import "github.com/tu-usuario/farmacia-api/internal/domain/entity"

// StockLotRepository define el puerto de persistencia para lotes de inventario.
// Get y GetForUpdate devuelven (nil, nil) si el lote no existe.
type StockLotRepository interface {
	// Upsert inserta el lote o suma lot.Quantity al existente (misma clave
	// product_name+batch). Los campos descriptivos se actualizan con los
	// del último ingreso.
	Upsert(lot *entity.StockLot) error
	Get(productName, batch string) (*entity.StockLot, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Usar solo dentro de una transacción.
	GetForUpdate(productName, batch string) (*entity.StockLot, error)
	// UpdateQuantity fija la cantidad absoluta del lote.
	UpdateQuantity(productName, batch string, quantity int64) error
	List() ([]entity.StockLot, error)
	// Delete elimina el lote; devuelve false si no existía.
	Delete(productName, batch string) (bool, error)
}
