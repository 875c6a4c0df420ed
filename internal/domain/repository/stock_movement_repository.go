package repository

import "github.com/tu-usuario/farmacia-api/internal/domain/entity"

// StockMovementRepository define el puerto para el registro de movimientos.
// Los movimientos son inmutables: solo inserción y lectura.
type StockMovementRepository interface {
	Create(mov *entity.StockMovement) error
	ListByReference(reference string) ([]entity.StockMovement, error)
}
